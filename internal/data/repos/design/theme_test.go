package design

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/data/repos/testutil"
)

func TestThemeRepos(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	colors := NewColorThemeRepo(db, testutil.Logger(t))
	fonts := NewFontThemeRepo(db, testutil.Logger(t))

	ocean := testutil.SeedColorTheme(t, ctx, tx, "Ocean-"+uuid.NewString(), "#1E88E5")
	testutil.SeedFontTheme(t, ctx, tx, "Roboto-"+uuid.NewString(), "Roboto, sans-serif", true)
	off := testutil.SeedFontTheme(t, ctx, tx, "Comic-"+uuid.NewString(), "Comic Sans MS", false)

	if rows, err := colors.GetByIDs(ctx, tx, []uuid.UUID{ocean.ID}); err != nil || len(rows) != 1 || rows[0].PrimaryColor != "#1E88E5" {
		t.Fatalf("GetByIDs: err=%v rows=%v", err, rows)
	}
	if rows, err := colors.GetByNames(ctx, tx, []string{ocean.Name}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByNames: err=%v len=%d", err, len(rows))
	}
	if rows, err := colors.List(ctx, tx); err != nil || len(rows) == 0 {
		t.Fatalf("List: err=%v len=%d", err, len(rows))
	}

	active, err := fonts.ListActive(ctx, tx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	for _, f := range active {
		if f.ID == off.ID {
			t.Fatalf("ListActive: inactive font returned")
		}
	}
	if len(active) == 0 {
		t.Fatalf("ListActive: want at least one active font")
	}
}
