package theme

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/portfolio-backend/internal/domain"
)

func TestLightenDarken(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string, int) string
		in   string
		pct  int
		want string
	}{
		{"lighten half", Lighten, "#000000", 50, "#7F7F7F"},
		{"lighten full", Lighten, "#1E88E5", 100, "#FFFFFF"},
		{"lighten zero", Lighten, "#1E88E5", 0, "#1E88E5"},
		{"lighten floors", Lighten, "#FF6B35", 20, "#FF885D"},
		{"short form", Lighten, "#fff", 10, "#FFFFFF"},
		{"darken half", Darken, "#FFFFFF", 50, "#7F7F7F"},
		{"darken full", Darken, "#1E88E5", 100, "#000000"},
		{"darken floors", Darken, "#FF6B35", 20, "#CC552A"},
		{"invalid passthrough", Darken, "teal", 20, "teal"},
		{"pct clamped", Lighten, "#000000", 250, "#FFFFFF"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.in, tc.pct); got != tc.want {
				t.Fatalf("want=%s got=%s", tc.want, got)
			}
		})
	}
}

func TestActivateDefaults(t *testing.T) {
	rc := Activate(nil, nil)
	if rc.PrimaryColor != "#000000" || rc.SecondaryColor != "#FFFFFF" || rc.BackgroundColor != "#F0F0F0" || rc.FontFamily != "Roboto, sans-serif" {
		t.Fatalf("Activate defaults: %+v", rc)
	}
	if rc.PageBackground() != "#FFFFFF" {
		t.Fatalf("PageBackground: %s", rc.PageBackground())
	}
}

func TestActivateMergesThemes(t *testing.T) {
	c := &types.ColorTheme{ID: uuid.New(), PrimaryColor: "#1E88E5", BackgroundColor: "#E3F2FD"}
	f := &types.FontTheme{ID: uuid.New(), FontFamily: "Kanit, sans-serif", FontURL: "https://fonts/kanit"}
	rc := Activate(c, f)
	if rc.PrimaryColor != "#1E88E5" || rc.SecondaryColor != DefaultSecondaryColor || rc.BackgroundColor != "#E3F2FD" {
		t.Fatalf("Activate colors: %+v", rc)
	}
	if rc.FontFamily != "Kanit, sans-serif" || rc.FontURL != "https://fonts/kanit" {
		t.Fatalf("Activate font: %+v", rc)
	}
	if rc.ColorThemeID == nil || *rc.ColorThemeID != c.ID || rc.FontThemeID == nil || *rc.FontThemeID != f.ID {
		t.Fatalf("Activate ids: %+v", rc)
	}
}

func TestDiffMinimality(t *testing.T) {
	colorA, fontA, fontB := uuid.New(), uuid.New(), uuid.New()
	tr := NewTracker(SelectionOf(&colorA, &fontA))

	if cs := tr.Pending(); !cs.Empty() || len(cs.Fields()) != 0 {
		t.Fatalf("Pending without changes: %+v", cs)
	}

	tr.SelectColor(&colorA)
	if !tr.Pending().Empty() {
		t.Fatalf("reselecting the same color must not be a change")
	}

	tr.SelectFont(&fontB)
	fields := tr.Pending().Fields()
	if len(fields) != 1 {
		t.Fatalf("Fields: want only font got=%v", fields)
	}
	if got, ok := fields["font_theme_id"].(uuid.UUID); !ok || got != fontB {
		t.Fatalf("Fields font_theme_id: %v", fields["font_theme_id"])
	}
}

func TestTrackerCommitAndFailedSave(t *testing.T) {
	colorA, colorB, fontA := uuid.New(), uuid.New(), uuid.New()
	tr := NewTracker(SelectionOf(&colorA, &fontA))

	tr.SelectColor(&colorB)
	cs := tr.Pending()
	// failed save: nothing committed
	if !tr.Dirty() {
		t.Fatalf("Dirty: want true after selection")
	}

	tr.SelectFont(nil)
	tr.Commit(cs)
	pending := tr.Pending()
	if pending.ColorChanged || !pending.FontChanged || pending.FontThemeID != nil {
		t.Fatalf("after Commit: %+v", pending)
	}
	if v, ok := pending.Fields()["font_theme_id"]; !ok || v != nil {
		t.Fatalf("clearing font: want font_theme_id=nil got=%v (present=%v)", v, ok)
	}
}
