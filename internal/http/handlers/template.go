package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/http/response"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type TemplateHandler struct {
	log       *logger.Logger
	templates services.TemplateService
}

func NewTemplateHandler(log *logger.Logger, templates services.TemplateService) *TemplateHandler {
	return &TemplateHandler{log: log.With("handler", "TemplateHandler"), templates: templates}
}

// GET /api/templates
func (h *TemplateHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	ts, total, err := h.templates.List(c.Request.Context(), page, limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"templates": ts, "total": total, "page": page, "limit": limit})
}

// GET /api/templates/:id
func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	t, err := h.templates.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"template": t})
}

// GET /api/templates/:id/preview?color_theme_id=&font_theme_id=
func (h *TemplateHandler) Preview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	colorID, ok := queryID(c, "color_theme_id")
	if !ok {
		return
	}
	fontID, ok := queryID(c, "font_theme_id")
	if !ok {
		return
	}
	doc, err := h.templates.Preview(c.Request.Context(), id, colorID, fontID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"document": doc})
}

// POST /api/templates/:id/use
//
// 201 with a new portfolio, or 200 with the caller's existing fork.
func (h *TemplateHandler) Use(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, created, err := h.templates.Use(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"portfolio": p, "created": created})
}

// POST /api/templates (admin)
func (h *TemplateHandler) Create(c *gin.Context) {
	var t types.Template
	if !bindJSON(c, &t) {
		return
	}
	out, err := h.templates.Create(c.Request.Context(), &t)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"template": out})
}

// PUT /api/templates/:id (admin)
func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var t types.Template
	if !bindJSON(c, &t) {
		return
	}
	out, err := h.templates.Update(c.Request.Context(), id, &t)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"template": out})
}

// DELETE /api/templates/:id (admin)
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.templates.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/templates/:id/thumbnail (admin)
func (h *TemplateHandler) RenderThumbnail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	url, err := h.templates.RenderThumbnail(c.Request.Context(), id)
	if err != nil {
		h.log.Warn("RenderThumbnail failed", "template_id", id, "error", err)
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"thumbnail": url})
}
