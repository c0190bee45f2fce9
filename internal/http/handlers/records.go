package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/portfolio-backend/internal/http/response"
	"github.com/yungbote/portfolio-backend/internal/platform/ctxutil"
	"github.com/yungbote/portfolio-backend/internal/services"
)

// RecordsHandler exposes the caller's activity and work records so the
// editor can pick a reference for a block.
type RecordsHandler struct {
	refs services.ReferenceStore
}

func NewRecordsHandler(refs services.ReferenceStore) *RecordsHandler {
	return &RecordsHandler{refs: refs}
}

// GET /api/records/activities
func (h *RecordsHandler) ListActivities(c *gin.Context) {
	owner := ctxutil.UserID(c.Request.Context())
	acts, err := h.refs.ListActivities(c.Request.Context(), owner)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"activities": acts})
}

// GET /api/records/works
func (h *RecordsHandler) ListWorks(c *gin.Context) {
	owner := ctxutil.UserID(c.Request.Context())
	works, err := h.refs.ListWorks(c.Request.Context(), owner)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"works": works})
}
