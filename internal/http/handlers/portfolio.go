package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/portfolio-backend/internal/http/response"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type PortfolioHandler struct {
	log        *logger.Logger
	portfolios services.PortfolioService
	names      services.NameService
}

func NewPortfolioHandler(log *logger.Logger, portfolios services.PortfolioService, names services.NameService) *PortfolioHandler {
	return &PortfolioHandler{
		log:        log.With("handler", "PortfolioHandler"),
		portfolios: portfolios,
		names:      names,
	}
}

// GET /api/portfolios
func (h *PortfolioHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	ps, total, err := h.portfolios.List(c.Request.Context(), page, limit)
	if err != nil {
		h.log.Warn("List failed", "error", err)
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"portfolios": ps, "total": total, "page": page, "limit": limit})
}

// POST /api/portfolios
func (h *PortfolioHandler) Create(c *gin.Context) {
	var in services.CreatePortfolioInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.portfolios.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"portfolio": p})
}

// GET /api/portfolios/:id
func (h *PortfolioHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.portfolios.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"portfolio": p})
}

// PATCH /api/portfolios/:id
func (h *PortfolioHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.PortfolioPatch
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.portfolios.Patch(c.Request.Context(), id, in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"portfolio": p})
}

// DELETE /api/portfolios/:id
func (h *PortfolioHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.portfolios.Delete(c.Request.Context(), id); err != nil {
		h.log.Warn("Delete failed", "portfolio_id", id, "error", err)
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/portfolios/:id/render
func (h *PortfolioHandler) Render(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	doc, err := h.portfolios.Render(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"document": doc})
}

// PUT /api/portfolios/:id/theme
func (h *PortfolioHandler) SaveTheme(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.ThemeSelectionInput
	if !bindJSON(c, &in) {
		return
	}
	cs, err := h.portfolios.SaveTheme(c.Request.Context(), id, in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"color_changed":  cs.ColorChanged,
		"color_theme_id": cs.ColorThemeID,
		"font_changed":   cs.FontChanged,
		"font_theme_id":  cs.FontThemeID,
	})
}

// POST /api/portfolios/:id/snapshot
func (h *PortfolioHandler) Snapshot(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	url, err := h.portfolios.Snapshot(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"snapshot_url": url})
}

// GET /api/portfolios/name-available?name=
func (h *PortfolioHandler) NameAvailable(c *gin.Context) {
	name := c.Query("name")
	ok, err := h.names.Available(c.Request.Context(), name)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"name": name, "available": ok})
}
