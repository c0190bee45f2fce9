package render

import (
	"encoding/json"
	"sort"

	"go.uber.org/multierr"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/content"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/layout"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/theme"
)

// Compose builds the published view of a portfolio. Disabled sections are
// skipped, profile sections are split out, and every enabled section's blocks
// are resolved and arranged. The returned error only carries per-block
// diagnostics; the document is always usable.
func Compose(p *types.Portfolio, live *content.Live, rc theme.RenderContext) (Document, error) {
	doc := Document{
		Theme:    rc,
		Shades:   rc.Shades(),
		Sections: []SectionView{},
	}
	if p == nil {
		doc.Empty = true
		return doc, nil
	}
	id := p.ID
	doc.PortfolioID = &id
	doc.TemplateID = p.TemplateID
	doc.Title = p.Name

	var diags error
	enabled := 0
	for _, s := range SortedSections(p.Sections) {
		if !s.IsEnabled {
			continue
		}
		enabled++
		view, err := composeSection(s, live)
		diags = multierr.Append(diags, err)
		if view.Profile {
			doc.Profile = append(doc.Profile, view)
		} else {
			doc.Sections = append(doc.Sections, view)
		}
	}
	doc.Empty = enabled == 0
	return doc, diags
}

func composeSection(s *types.Section, live *content.Live) (SectionView, error) {
	blocks := SortedBlocks(s.Blocks)
	items, err := content.ResolveAll(blocks, live)

	entries := make([]layout.Entry[Cell], 0, len(blocks))
	for i, b := range blocks {
		if items[i] == nil {
			continue
		}
		entries = append(entries, layout.Entry[Cell]{
			Item: Cell{
				BlockID:   b.ID,
				BlockType: b.BlockType,
				Glyph:     GlyphFor(b.BlockType),
				Circular:  IsCircular(b.Style),
				Item:      items[i],
				Style:     json.RawMessage(b.Style),
			},
			Kind:       b.BlockType,
			OrderIndex: b.OrderIndex,
		})
	}

	profile, mirrored := layout.IsProfileSection(s.Title, s.LayoutType)
	return SectionView{
		SectionID:  s.ID,
		Title:      s.Title,
		LayoutType: s.LayoutType,
		OrderIndex: s.OrderIndex,
		Profile:    profile,
		Mirrored:   mirrored,
		Layout:     layout.Arrange(s.LayoutType, entries),
		BlockCount: len(blocks),
		Visible:    content.Visible(items),
	}, err
}

func SortedSections(in []*types.Section) []*types.Section {
	out := make([]*types.Section, 0, len(in))
	for _, s := range in {
		if s != nil {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}

func SortedBlocks(in []*types.Block) []*types.Block {
	out := make([]*types.Block, 0, len(in))
	for _, b := range in {
		if b != nil {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}
