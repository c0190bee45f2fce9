package templating

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/layout"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/theme"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

func sampleTemplate() *types.Template {
	mk := func(name, layoutType string, order int) *types.TemplateSectionLink {
		sec := &types.TemplateSection{ID: uuid.New(), Name: name, LayoutType: layoutType}
		sec.Blocks = []*types.TemplateBlock{
			{ID: uuid.New(), TemplateSectionID: sec.ID, BlockType: "text", OrderIndex: 1,
				DefaultContent: datatypes.JSON([]byte(`{"text":"bio"}`))},
			{ID: uuid.New(), TemplateSectionID: sec.ID, BlockType: "image", OrderIndex: 0,
				DefaultContent: datatypes.JSON([]byte(`{"src":""}`)),
				DefaultStyle:   datatypes.JSON([]byte(`{"borderRadius":"50%"}`))},
		}
		return &types.TemplateSectionLink{ID: uuid.New(), TemplateSectionID: sec.ID, OrderIndex: order, Section: sec}
	}
	return &types.Template{
		ID:   uuid.New(),
		Name: "Academic",
		Links: []*types.TemplateSectionLink{
			mk("Works Grid", layout.TwoPicturesTwoTexts, 5),
			mk("My Profile", layout.ProfileHeaderLeft, 1),
		},
	}
}

func TestPreviewSortsAndArranges(t *testing.T) {
	tpl := sampleTemplate()
	doc := Preview(tpl, theme.Activate(nil, nil))
	if doc.Empty || len(doc.Sections) != 2 {
		t.Fatalf("Preview: empty=%v sections=%d", doc.Empty, len(doc.Sections))
	}
	first := doc.Sections[0]
	if first.Title != "My Profile" || first.Layout.Portrait == nil {
		t.Fatalf("Preview first section: %+v", first)
	}
	if !first.Layout.Portrait.Item.Circular || first.Layout.Portrait.Item.Glyph != "image" {
		t.Fatalf("portrait cell: %+v", first.Layout.Portrait.Item)
	}
	if tpl.Links[0].Section.Name != "Works Grid" {
		t.Fatalf("Preview mutated the template")
	}
}

func TestPreviewEmptyMarker(t *testing.T) {
	doc := Preview(&types.Template{ID: uuid.New(), Name: "blank"}, theme.Activate(nil, nil))
	if !doc.Empty || doc.Sections == nil {
		t.Fatalf("Preview: want Empty with non-nil sections got empty=%v sections=%v", doc.Empty, doc.Sections)
	}
}

func TestForkIsolation(t *testing.T) {
	tpl := sampleTemplate()
	portfolioID := uuid.New()
	sections := Fork(tpl, portfolioID)

	if len(sections) != 2 || sections[0].Title != "My Profile" || sections[1].OrderIndex != 1 {
		t.Fatalf("Fork order: %+v", sections)
	}
	if sections[0].SectionKey != "my-profile" || !sections[0].IsEnabled || sections[0].PortfolioID != portfolioID {
		t.Fatalf("Fork section fields: %+v", sections[0])
	}
	blk := sections[0].Blocks[0]
	if blk.OrderIndex != 0 || blk.BlockType != "image" || blk.SectionID != sections[0].ID {
		t.Fatalf("Fork block: %+v", blk)
	}
	before := append([]byte(nil), blk.Style...)

	// mutate the template in place
	src := tpl.Links[1].Section.Blocks[1]
	src.DefaultStyle[2] = 'X'
	src.DefaultContent = datatypes.JSON([]byte(`{"src":"changed"}`))
	tpl.Links[1].Section.Name = "Renamed"

	if !bytes.Equal(blk.Style, before) || string(blk.Content) != `{"src":""}` || sections[0].Title != "My Profile" {
		t.Fatalf("forked data changed with the template: style=%s content=%s", blk.Style, blk.Content)
	}
	if blk.ID == src.ID || sections[0].ID == tpl.Links[1].Section.ID {
		t.Fatalf("Fork reused template ids")
	}
}

func TestValidate(t *testing.T) {
	ok := sampleTemplate()
	if err := Validate(ok); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	pdf := "http://localhost:8080/uploads/document.pdf"
	cases := []struct {
		name  string
		mut   func(*types.Template)
		field string
	}{
		{"blank name", func(t *types.Template) { t.Name = "   " }, "name"},
		{"long name", func(t *types.Template) { t.Name = strings.Repeat("a", 51) }, "name"},
		{"long description", func(t *types.Template) { t.Description = strings.Repeat("d", 101) }, "description"},
		{"pdf thumbnail", func(t *types.Template) { t.Thumbnail = &pdf }, "thumbnail"},
		{"one section", func(t *types.Template) { t.Links = t.Links[:1] }, "links"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tpl := sampleTemplate()
			tc.mut(tpl)
			err := Validate(tpl)
			if !errors.Is(err, perrors.ErrInvalidArgument) {
				t.Fatalf("Validate: want ErrInvalidArgument got=%v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate: want *ValidationError got=%T", err)
			}
			if _, ok := verr.Fields[tc.field]; !ok {
				t.Fatalf("Validate: want field %q in %v", tc.field, verr.Fields)
			}
		})
	}
}
