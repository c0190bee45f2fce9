package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/data/repos/testutil"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/render"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/platform/ctxutil"
)

func strPtr(s string) *string { return &s }

func TestPortfolioCRUD(t *testing.T) {
	f := newFixture(t)

	if _, err := f.portfolio.Create(context.Background(), CreatePortfolioInput{Name: "x"}); !errors.Is(err, perrors.ErrUnauthorized) {
		t.Fatalf("Create anonymous: want ErrUnauthorized got=%v", err)
	}
	if _, err := f.portfolio.Create(f.ctx, CreatePortfolioInput{Name: "   "}); !errors.Is(err, perrors.ErrInvalidArgument) {
		t.Fatalf("Create blank: want ErrInvalidArgument got=%v", err)
	}

	p, err := f.portfolio.Create(f.ctx, CreatePortfolioInput{Name: " Mine ", Description: "d"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Mine" || p.Status != "draft" {
		t.Fatalf("Create: got name=%q status=%q", p.Name, p.Status)
	}

	other := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: uuid.New()})
	if _, err := f.portfolio.Get(other, p.ID); !errors.Is(err, perrors.ErrNotFound) {
		t.Fatalf("Get by other owner: want ErrNotFound got=%v", err)
	}

	if _, err := f.portfolio.Patch(f.ctx, p.ID, PortfolioPatch{Status: strPtr("archived")}); !errors.Is(err, perrors.ErrInvalidArgument) {
		t.Fatalf("Patch bad status: want ErrInvalidArgument got=%v", err)
	}
	patched, err := f.portfolio.Patch(f.ctx, p.ID, PortfolioPatch{Name: strPtr("Renamed"), Status: strPtr("published")})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if patched.Name != "Renamed" || patched.Description != "d" || patched.Status != "published" {
		t.Fatalf("Patch: got %+v", patched)
	}

	list, total, err := f.portfolio.List(f.ctx, 1, 10)
	if err != nil || total != 1 || len(list) != 1 {
		t.Fatalf("List: total=%d len=%d err=%v", total, len(list), err)
	}
}

func TestPortfolioDeleteCascades(t *testing.T) {
	f := newFixture(t)
	p := testutil.SeedPortfolio(t, f.ctx, f.tx, f.owner, "gone")
	sec := testutil.SeedSection(t, f.ctx, f.tx, p.ID, "About", 0, true)
	testutil.SeedBlock(t, f.ctx, f.tx, sec.ID, 0, `{"type":"profile"}`)

	if err := f.portfolio.Delete(f.ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.portfolio.Get(f.ctx, p.ID); !errors.Is(err, perrors.ErrNotFound) {
		t.Fatalf("Get after delete: want ErrNotFound got=%v", err)
	}
	secs, err := f.sectionRepo.GetByPortfolioIDs(f.ctx, nil, []uuid.UUID{p.ID})
	if err != nil || len(secs) != 0 {
		t.Fatalf("sections after delete: %d err=%v", len(secs), err)
	}
	blocks, err := f.blockRepo.GetBySectionIDs(f.ctx, nil, []uuid.UUID{sec.ID})
	if err != nil || len(blocks) != 0 {
		t.Fatalf("blocks after delete: %d err=%v", len(blocks), err)
	}
}

func TestRenderResolvesLiveRecords(t *testing.T) {
	f := newFixture(t)
	act := testutil.SeedActivity(t, f.ctx, f.tx, f.owner, "Science Fair", "https://cdn.test/a.png")
	p, err := f.portfolio.Create(f.ctx, CreatePortfolioInput{Name: "render"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	sec, err := f.editor.AddSection(f.ctx, p.ID, SectionInput{Title: "Awards", LayoutType: "two_pictures_two_texts"})
	if err != nil {
		t.Fatalf("AddSection: %v", err)
	}
	good := fmt.Sprintf(`{"type":"activity","data_id":%q}`, act.ID)
	if _, err := f.editor.AddBlock(f.ctx, sec.ID, BlockInput{BlockType: "image", Content: []byte(good)}); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}
	if _, err := f.editor.AddBlock(f.ctx, sec.ID, BlockInput{BlockType: "text", Content: []byte(`{"type":"working","data_id":"missing"}`)}); err != nil {
		t.Fatalf("AddBlock dangling: %v", err)
	}

	doc, err := f.portfolio.Render(f.ctx, p.ID)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].BlockCount != 2 || doc.VisibleBlocks() != 1 {
		t.Fatalf("Render: sections=%d visible=%d", len(doc.Sections), doc.VisibleBlocks())
	}
	entries := doc.Sections[0].Layout.Entries()
	if len(entries) != 1 || entries[0].Item.Item.Name != "Science Fair" {
		t.Fatalf("Render: entries=%+v", entries)
	}
}

func TestSaveThemeSendsOnlyChanges(t *testing.T) {
	f := newFixture(t)
	c1 := testutil.SeedColorTheme(t, f.ctx, f.tx, "ocean", "#1E88E5")
	c2 := testutil.SeedColorTheme(t, f.ctx, f.tx, "forest", "#2E7D32")
	font := testutil.SeedFontTheme(t, f.ctx, f.tx, "inter", "Inter", true)

	p, err := f.portfolio.Create(f.ctx, CreatePortfolioInput{Name: "themed", ColorThemeID: &c1.ID, FontThemeID: &font.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	cs, err := f.portfolio.SaveTheme(f.ctx, p.ID, ThemeSelectionInput{ColorThemeID: &c1.ID, FontThemeID: &font.ID})
	if err != nil || !cs.Empty() {
		t.Fatalf("SaveTheme unchanged: cs=%+v err=%v", cs, err)
	}

	cs, err = f.portfolio.SaveTheme(f.ctx, p.ID, ThemeSelectionInput{ColorThemeID: &c2.ID, FontThemeID: &font.ID})
	if err != nil {
		t.Fatalf("SaveTheme: %v", err)
	}
	if !cs.ColorChanged || cs.FontChanged {
		t.Fatalf("SaveTheme: want color only got=%+v", cs)
	}
	got, err := f.portfolio.Get(f.ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ColorThemeID == nil || *got.ColorThemeID != c2.ID || got.FontThemeID == nil || *got.FontThemeID != font.ID {
		t.Fatalf("stored themes: color=%v font=%v", got.ColorThemeID, got.FontThemeID)
	}

	doc, err := f.portfolio.Render(f.ctx, p.ID)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if doc.Theme.PrimaryColor != "#2E7D32" || doc.Theme.FontFamily != "Inter" {
		t.Fatalf("Render theme: %+v", doc.Theme)
	}
}

func TestSnapshotKeepsLastGoodURL(t *testing.T) {
	f := newFixture(t)
	p, err := f.portfolio.Create(f.ctx, CreatePortfolioInput{Name: "snap"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := f.portfolio.Snapshot(f.ctx, p.ID); !errors.Is(err, perrors.ErrEmptyComposition) {
		t.Fatalf("Snapshot empty: want ErrEmptyComposition got=%v", err)
	}
	if f.capturer.calls != 0 {
		t.Fatalf("Snapshot empty: capturer called")
	}

	sec, _ := f.editor.AddSection(f.ctx, p.ID, SectionInput{Title: "Me"})
	if _, err := f.editor.AddBlock(f.ctx, sec.ID, BlockInput{BlockType: "text", Content: []byte(`{"type":"profile","title":"hi"}`)}); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}

	url, err := f.portfolio.Snapshot(f.ctx, p.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.test/thumbnail/portfolio/") {
		t.Fatalf("Snapshot url: %q", url)
	}

	f.capturer.err = errors.New("renderer crashed")
	if _, err := f.portfolio.Snapshot(f.ctx, p.ID); err == nil {
		t.Fatalf("Snapshot: want capture error")
	}
	got, err := f.portfolio.Get(f.ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SnapshotURL == nil || *got.SnapshotURL != url {
		t.Fatalf("SnapshotURL: want %q got=%v", url, got.SnapshotURL)
	}
}

func TestRenderSwitchSupersedesOwnersPendingRender(t *testing.T) {
	f := newFixture(t)
	next, err := f.portfolio.Create(f.ctx, CreatePortfolioInput{Name: "next"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	renders := f.portfolio.(*portfolioService).renders

	started := make(chan struct{})
	pending := make(chan error, 1)
	go func() {
		_, err := renders.Load(f.ctx, f.owner.String(), func(ctx context.Context) (render.Document, error) {
			close(started)
			<-ctx.Done()
			return render.Document{}, ctx.Err()
		})
		pending <- err
	}()
	<-started

	doc, err := f.portfolio.Render(f.ctx, next.ID)
	if err != nil {
		t.Fatalf("Render(next): %v", err)
	}
	if doc.PortfolioID == nil || *doc.PortfolioID != next.ID {
		t.Fatalf("Render(next): portfolio=%v", doc.PortfolioID)
	}
	select {
	case err := <-pending:
		if !errors.Is(err, perrors.ErrSuperseded) {
			t.Fatalf("pending render: want ErrSuperseded got=%v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pending render never released")
	}
}
