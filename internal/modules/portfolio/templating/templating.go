package templating

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/layout"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/render"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/theme"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/platform/validate"
)

// MinSections is the smallest template an admin may publish.
const MinSections = 2

// SortedLinks returns links with a section, ordered by order index.
func SortedLinks(t *types.Template) []*types.TemplateSectionLink {
	if t == nil {
		return nil
	}
	out := make([]*types.TemplateSectionLink, 0, len(t.Links))
	for _, l := range t.Links {
		if l != nil && l.Section != nil {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}

func sortedBlocks(s *types.TemplateSection) []*types.TemplateBlock {
	out := make([]*types.TemplateBlock, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		if b != nil {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}

// Preview renders a template read-only. It never mutates t. A template with
// no sections yields a document marked Empty.
func Preview(t *types.Template, rc theme.RenderContext) render.Document {
	doc := render.Document{
		Theme:    rc,
		Shades:   rc.Shades(),
		Sections: []render.SectionView{},
	}
	if t == nil {
		doc.Empty = true
		return doc
	}
	id := t.ID
	doc.TemplateID = &id
	doc.Title = t.Name

	links := SortedLinks(t)
	for i, l := range links {
		sec := l.Section
		blocks := sortedBlocks(sec)
		entries := make([]layout.Entry[render.Cell], 0, len(blocks))
		for _, b := range blocks {
			entries = append(entries, layout.Entry[render.Cell]{
				Item: render.Cell{
					BlockID:   b.ID,
					BlockType: b.BlockType,
					Glyph:     render.GlyphFor(b.BlockType),
					Circular:  render.IsCircular(b.DefaultStyle),
					Content:   json.RawMessage(cloneJSON(b.DefaultContent)),
					Style:     json.RawMessage(cloneJSON(b.DefaultStyle)),
				},
				Kind:       b.BlockType,
				OrderIndex: b.OrderIndex,
			})
		}
		doc.Sections = append(doc.Sections, render.SectionView{
			SectionID:  sec.ID,
			Title:      sec.Name,
			LayoutType: sec.LayoutType,
			OrderIndex: i,
			Layout:     layout.Arrange(sec.LayoutType, entries),
			BlockCount: len(blocks),
			Visible:    len(blocks),
		})
	}
	doc.Empty = len(doc.Sections) == 0
	return doc
}

// Fork copies every linked section and its blocks into new, disconnected
// rows owned by portfolioID. Indexes are renumbered densely in link order and
// all sections start enabled.
func Fork(t *types.Template, portfolioID uuid.UUID) []*types.Section {
	links := SortedLinks(t)
	out := make([]*types.Section, 0, len(links))
	for i, l := range links {
		src := l.Section
		sec := &types.Section{
			ID:          uuid.New(),
			PortfolioID: portfolioID,
			SectionKey:  SectionKey(src),
			Title:       src.Name,
			OrderIndex:  i,
			IsEnabled:   true,
			LayoutType:  src.LayoutType,
		}
		if sec.LayoutType == "" {
			sec.LayoutType = layout.Default
		}
		for j, b := range sortedBlocks(src) {
			sec.Blocks = append(sec.Blocks, &types.Block{
				ID:         uuid.New(),
				SectionID:  sec.ID,
				BlockType:  b.BlockType,
				OrderIndex: j,
				Content:    cloneJSON(b.DefaultContent),
				Style:      cloneJSON(b.DefaultStyle),
			})
		}
		out = append(out, sec)
	}
	return out
}

// SectionKey is the stable slug used to match a section across forks.
func SectionKey(s *types.TemplateSection) string {
	if s == nil {
		return ""
	}
	if k := strings.TrimSpace(s.SectionKey); k != "" {
		return k
	}
	return slug.Make(s.Name)
}

func cloneJSON(in datatypes.JSON) datatypes.JSON {
	if in == nil {
		return nil
	}
	return datatypes.JSON(bytes.Clone(in))
}

// ValidationError carries per-field messages keyed by json path.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid template: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return perrors.ErrInvalidArgument }

func (e *ValidationError) FieldMessages() map[string]string { return e.Fields }

// Validate checks admin input: a non-blank name of at most 50 characters, a
// description of at most 100, an optional image thumbnail URL, and at least
// MinSections sections.
func Validate(t *types.Template) error {
	if t == nil {
		return fmt.Errorf("nil template: %w", perrors.ErrInvalidArgument)
	}
	v := validate.Default()
	if err := v.Struct(t); err != nil {
		if fields := v.Fields(err); len(fields) > 0 {
			return &ValidationError{Fields: fields}
		}
		return fmt.Errorf("validate template: %v: %w", err, perrors.ErrInvalidArgument)
	}
	return nil
}
