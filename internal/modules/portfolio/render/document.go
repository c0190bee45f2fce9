package render

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/content"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/layout"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/theme"
)

const (
	GlyphImage = "image"
	GlyphText  = "text"
)

// Cell is one placed block. Item is set for resolved portfolio blocks;
// template previews carry the default content instead.
type Cell struct {
	BlockID   uuid.UUID               `json:"block_id"`
	BlockType string                  `json:"block_type"`
	Glyph     string                  `json:"glyph"`
	Circular  bool                    `json:"circular,omitempty"`
	Item      *content.RenderableItem `json:"item,omitempty"`
	Content   json.RawMessage         `json:"content,omitempty"`
	Style     json.RawMessage         `json:"style,omitempty"`
}

type SectionView struct {
	SectionID  uuid.UUID `json:"section_id"`
	Title      string    `json:"title"`
	LayoutType string    `json:"layout_type"`
	OrderIndex int       `json:"order_index"`
	Profile    bool      `json:"profile,omitempty"`
	Mirrored   bool      `json:"mirrored,omitempty"`

	Layout layout.Assignment[Cell] `json:"layout"`
	// BlockCount includes blocks that failed to resolve; Visible does not.
	BlockCount int `json:"block_count"`
	Visible    int `json:"visible"`
}

// Document is the composed, themed tree shared by the editor canvas, the
// read-only preview and the snapshot rasterizer.
type Document struct {
	PortfolioID *uuid.UUID `json:"portfolio_id,omitempty"`
	TemplateID  *uuid.UUID `json:"template_id,omitempty"`
	Title       string     `json:"title"`
	// Empty marks a composition with no sections at all, as opposed to one
	// still loading.
	Empty bool `json:"empty"`

	Theme  theme.RenderContext `json:"theme"`
	Shades theme.Shades        `json:"shades"`

	Profile  []SectionView `json:"profile,omitempty"`
	Sections []SectionView `json:"sections"`
}

// VisibleBlocks counts placed cells across profile and generic sections.
func (d Document) VisibleBlocks() int {
	n := 0
	for _, s := range d.Profile {
		n += s.Layout.Len()
	}
	for _, s := range d.Sections {
		n += s.Layout.Len()
	}
	return n
}

// AllSections returns profile sections first, then the generic list.
func (d Document) AllSections() []SectionView {
	out := make([]SectionView, 0, len(d.Profile)+len(d.Sections))
	out = append(out, d.Profile...)
	out = append(out, d.Sections...)
	return out
}

func GlyphFor(blockType string) string {
	if blockType == GlyphImage {
		return GlyphImage
	}
	return GlyphText
}
