package services

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/portfolio-backend/internal/data/repos/testutil"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/ordering"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

func TestUseForksOncePerOwner(t *testing.T) {
	f := newFixture(t)
	tpl := testutil.SeedTemplate(t, f.ctx, f.tx, "Classic", "profile_header_left", "two_pictures_two_texts")

	p, created, err := f.templates.Use(f.ctx, tpl.ID)
	if err != nil {
		t.Fatalf("Use: %v", err)
	}
	if !created || len(p.Sections) != 2 || !ordering.Dense(p.Sections) {
		t.Fatalf("Use: created=%v sections=%d", created, len(p.Sections))
	}
	if p.TemplateID == nil || *p.TemplateID != tpl.ID {
		t.Fatalf("Use: template id not recorded")
	}

	again, created, err := f.templates.Use(f.ctx, tpl.ID)
	if err != nil {
		t.Fatalf("Use again: %v", err)
	}
	if created || again.ID != p.ID {
		t.Fatalf("Use again: want existing fork %s got=%s created=%v", p.ID, again.ID, created)
	}

	// editing the fork leaves the template alone
	if err := f.editor.DeleteSection(f.ctx, p.Sections[0].ID); err != nil {
		t.Fatalf("DeleteSection: %v", err)
	}
	stored, err := f.templates.Get(f.ctx, tpl.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(stored.Links) != 2 || len(stored.Links[0].Section.Blocks) != 2 {
		t.Fatalf("template changed by fork edit: links=%d", len(stored.Links))
	}
}

func newTemplateInput(name string, sections int) *types.Template {
	t := &types.Template{Name: name, Description: "made by admin"}
	for i := 0; i < sections; i++ {
		t.Links = append(t.Links, &types.TemplateSectionLink{
			OrderIndex: i,
			Section: &types.TemplateSection{
				Name:       "Section",
				LayoutType: "default",
				Blocks: []*types.TemplateBlock{
					{BlockType: "text", DefaultContent: datatypes.JSON([]byte(`{"type":"profile","title":"hello"}`))},
				},
			},
		})
	}
	return t
}

func TestTemplateCreateValidates(t *testing.T) {
	f := newFixture(t)

	if _, err := f.templates.Create(f.ctx, newTemplateInput("Thin", 1)); !errors.Is(err, perrors.ErrInvalidArgument) {
		t.Fatalf("Create one section: want ErrInvalidArgument got=%v", err)
	}
	long := newTemplateInput(strings.Repeat("n", 51), 2)
	if _, err := f.templates.Create(f.ctx, long); !errors.Is(err, perrors.ErrInvalidArgument) {
		t.Fatalf("Create long name: want ErrInvalidArgument got=%v", err)
	}

	created, err := f.templates.Create(f.ctx, newTemplateInput("Fresh", 2))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := f.templates.Get(f.ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Links) != 2 || got.Links[0].Section.SectionKey != "section" {
		t.Fatalf("Get: links=%d", len(got.Links))
	}

	replacement := newTemplateInput("Fresh v2", 3)
	updated, err := f.templates.Update(f.ctx, created.ID, replacement)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Fresh v2" || len(updated.Links) != 3 {
		t.Fatalf("Update: name=%q links=%d", updated.Name, len(updated.Links))
	}

	if err := f.templates.Delete(f.ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.templates.Get(f.ctx, created.ID); !errors.Is(err, perrors.ErrNotFound) {
		t.Fatalf("Get after delete: want ErrNotFound got=%v", err)
	}
}

func TestTemplatePreviewAndThumbnail(t *testing.T) {
	f := newFixture(t)
	tpl := testutil.SeedTemplate(t, f.ctx, f.tx, "Gallery", "default", "default")
	color := testutil.SeedColorTheme(t, f.ctx, f.tx, "sunset", "#FF7043")

	doc, err := f.templates.Preview(f.ctx, tpl.ID, &color.ID, nil)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if doc.Empty || len(doc.Sections) != 2 || doc.Theme.PrimaryColor != "#FF7043" {
		t.Fatalf("Preview: empty=%v sections=%d theme=%+v", doc.Empty, len(doc.Sections), doc.Theme)
	}

	url, err := f.templates.RenderThumbnail(f.ctx, tpl.ID)
	if err != nil {
		t.Fatalf("RenderThumbnail: %v", err)
	}
	got, err := f.templates.Get(f.ctx, tpl.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Thumbnail == nil || *got.Thumbnail != url {
		t.Fatalf("thumbnail: want %q got=%v", url, got.Thumbnail)
	}
}
