package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/http/response"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// pathID parses a uuid route param. It writes the 400 itself.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil || id == uuid.Nil {
		response.RespondError(c, fmt.Errorf("%s %q: %w", name, c.Param(name), perrors.ErrInvalidArgument))
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional uuid query param. Empty means nil.
func queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondError(c, fmt.Errorf("%s %q: %w", name, raw, perrors.ErrInvalidArgument))
		return nil, false
	}
	return &id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		response.RespondError(c, fmt.Errorf("request body: %w: %w", perrors.ErrInvalidArgument, err))
		return false
	}
	return true
}

type moveRequest struct {
	Direction string `json:"direction"`
}
