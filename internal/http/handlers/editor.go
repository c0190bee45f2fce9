package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/portfolio-backend/internal/http/response"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type EditorHandler struct {
	log    *logger.Logger
	editor services.EditorService
}

func NewEditorHandler(log *logger.Logger, editor services.EditorService) *EditorHandler {
	return &EditorHandler{log: log.With("handler", "EditorHandler"), editor: editor}
}

// POST /api/portfolios/:id/sections
func (h *EditorHandler) AddSection(c *gin.Context) {
	portfolioID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.SectionInput
	if !bindJSON(c, &in) {
		return
	}
	sec, err := h.editor.AddSection(c.Request.Context(), portfolioID, in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"section": sec})
}

// PATCH /api/sections/:id
func (h *EditorHandler) UpdateSection(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.SectionPatch
	if !bindJSON(c, &in) {
		return
	}
	sec, err := h.editor.UpdateSection(c.Request.Context(), id, in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"section": sec})
}

// DELETE /api/sections/:id
func (h *EditorHandler) DeleteSection(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.editor.DeleteSection(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/sections/:id/move {"direction":"up"|"down"}
func (h *EditorHandler) MoveSection(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in moveRequest
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.editor.MoveSection(c.Request.Context(), id, in.Direction)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"portfolio": p})
}

// POST /api/sections/:id/blocks
func (h *EditorHandler) AddBlock(c *gin.Context) {
	sectionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.BlockInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := h.editor.AddBlock(c.Request.Context(), sectionID, in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"block": b})
}

// PATCH /api/blocks/:id
func (h *EditorHandler) UpdateBlock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.BlockPatch
	if !bindJSON(c, &in) {
		return
	}
	b, err := h.editor.UpdateBlock(c.Request.Context(), id, in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"block": b})
}

// DELETE /api/blocks/:id
func (h *EditorHandler) DeleteBlock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.editor.DeleteBlock(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/blocks/:id/move
func (h *EditorHandler) MoveBlock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in moveRequest
	if !bindJSON(c, &in) {
		return
	}
	sec, err := h.editor.MoveBlock(c.Request.Context(), id, in.Direction)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"section": sec})
}
