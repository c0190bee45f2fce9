package theme

import (
	"github.com/google/uuid"

	types "github.com/yungbote/portfolio-backend/internal/domain"
)

const (
	DefaultPrimaryColor    = "#000000"
	DefaultSecondaryColor  = "#FFFFFF"
	DefaultBackgroundColor = "#F0F0F0"
	DefaultFontFamily      = "Roboto, sans-serif"

	BadgeLightenPct   = 85
	BorderDarkenPct   = 20
	PreviewLightenPct = 100
)

// RenderContext is the single theme value handed to every renderer.
type RenderContext struct {
	ColorThemeID *uuid.UUID `json:"color_theme_id,omitempty"`
	FontThemeID  *uuid.UUID `json:"font_theme_id,omitempty"`

	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	BackgroundColor string `json:"background_color"`
	FontFamily      string `json:"font_family"`
	FontURL         string `json:"font_url,omitempty"`
}

// Activate merges an optional color and font theme into a render context.
// Missing themes and blank fields take the defaults.
func Activate(color *types.ColorTheme, font *types.FontTheme) RenderContext {
	rc := RenderContext{
		PrimaryColor:    DefaultPrimaryColor,
		SecondaryColor:  DefaultSecondaryColor,
		BackgroundColor: DefaultBackgroundColor,
		FontFamily:      DefaultFontFamily,
	}
	if color != nil {
		id := color.ID
		rc.ColorThemeID = &id
		if color.PrimaryColor != "" {
			rc.PrimaryColor = color.PrimaryColor
		}
		if color.SecondaryColor != "" {
			rc.SecondaryColor = color.SecondaryColor
		}
		if color.BackgroundColor != "" {
			rc.BackgroundColor = color.BackgroundColor
		}
	}
	if font != nil {
		id := font.ID
		rc.FontThemeID = &id
		if font.FontFamily != "" {
			rc.FontFamily = font.FontFamily
		}
		rc.FontURL = font.FontURL
	}
	return rc
}

func (rc RenderContext) BadgeColor() string  { return Lighten(rc.PrimaryColor, BadgeLightenPct) }
func (rc RenderContext) BorderColor() string { return Darken(rc.PrimaryColor, BorderDarkenPct) }

// PageBackground is the preview page color.
func (rc RenderContext) PageBackground() string {
	return Lighten(rc.BackgroundColor, PreviewLightenPct)
}

type Shades struct {
	Badge          string `json:"badge"`
	Border         string `json:"border"`
	PageBackground string `json:"page_background"`
}

func (rc RenderContext) Shades() Shades {
	return Shades{Badge: rc.BadgeColor(), Border: rc.BorderColor(), PageBackground: rc.PageBackground()}
}
