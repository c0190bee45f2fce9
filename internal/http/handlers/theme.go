package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/portfolio-backend/internal/http/response"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type ThemeHandler struct {
	themes services.ThemeService
}

func NewThemeHandler(themes services.ThemeService) *ThemeHandler {
	return &ThemeHandler{themes: themes}
}

// GET /api/themes/colors
func (h *ThemeHandler) ListColors(c *gin.Context) {
	colors, err := h.themes.ListColors(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"colors": colors})
}

// GET /api/themes/fonts
func (h *ThemeHandler) ListFonts(c *gin.Context) {
	fonts, err := h.themes.ListActiveFonts(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"fonts": fonts})
}
