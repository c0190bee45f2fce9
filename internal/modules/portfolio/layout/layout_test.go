package layout

import "testing"

func entries(kinds ...string) []Entry[string] {
	out := make([]Entry[string], 0, len(kinds))
	for i, k := range kinds {
		out = append(out, Entry[string]{Item: string(rune('a' + i)), Kind: k, OrderIndex: i})
	}
	return out
}

func TestProfileTieBreak(t *testing.T) {
	a := Arrange(ProfileHeaderLeft, entries(KindImage, KindText, KindImage))
	if a.Shape != ShapeProfile || a.Side != SideLeft {
		t.Fatalf("Arrange: shape=%s side=%s", a.Shape, a.Side)
	}
	if a.Portrait == nil || a.Portrait.Item != "a" {
		t.Fatalf("portrait: want block at index 0 got=%v", a.Portrait)
	}
	if len(a.TextColumn) != 2 || a.TextColumn[0].Item != "b" || a.TextColumn[1].Item != "c" {
		t.Fatalf("text column: %v", a.TextColumn)
	}
	if a.PortraitWidth != 25 || a.TextWidth != 75 {
		t.Fatalf("widths: %d/%d", a.PortraitWidth, a.TextWidth)
	}
}

func TestProfileUsesOrderIndexNotArrival(t *testing.T) {
	in := []Entry[string]{
		{Item: "late", Kind: KindImage, OrderIndex: 2},
		{Item: "early", Kind: KindImage, OrderIndex: 0},
		{Item: "text", Kind: KindText, OrderIndex: 1},
	}
	a := Arrange(ProfileHeaderRight, in)
	if a.Side != SideRight || a.Portrait == nil || a.Portrait.Item != "early" {
		t.Fatalf("Arrange: side=%s portrait=%v", a.Side, a.Portrait)
	}
	if a.TextColumn[0].Item != "text" || a.TextColumn[1].Item != "late" {
		t.Fatalf("text column: %v", a.TextColumn)
	}
}

func TestProfileWithoutImage(t *testing.T) {
	a := Arrange(ProfileHeaderLeft, entries(KindText, KindText))
	if a.Portrait != nil || len(a.TextColumn) != 2 {
		t.Fatalf("Arrange: portrait=%v text=%d", a.Portrait, len(a.TextColumn))
	}
}

func TestGridTwoPerRow(t *testing.T) {
	a := Arrange(TwoPicturesTwoTexts, entries(KindImage, KindImage, KindText, KindText, KindText))
	if a.Shape != ShapeGrid || a.Columns != 2 || len(a.Rows) != 3 {
		t.Fatalf("Arrange: shape=%s cols=%d rows=%d", a.Shape, a.Columns, len(a.Rows))
	}
	if len(a.Rows[2]) != 1 || a.Rows[2][0].Item != "e" {
		t.Fatalf("last row: %v", a.Rows[2])
	}
	if a.Len() != 5 {
		t.Fatalf("Len: want=5 got=%d", a.Len())
	}
}

func TestUnknownFallsBackToStack(t *testing.T) {
	for _, tag := range []string{"", "default", "masonry_v9"} {
		a := Arrange(tag, entries(KindText, KindImage))
		if a.Shape != ShapeStack || a.LayoutType != Default || len(a.Rows) != 2 {
			t.Fatalf("Arrange(%q): shape=%s layout=%s rows=%d", tag, a.Shape, a.LayoutType, len(a.Rows))
		}
	}
}

func TestIsProfileSection(t *testing.T) {
	cases := []struct {
		title, layout    string
		profile, mirrors bool
	}{
		{"My Profile", "default", true, false},
		{"Profile (right)", "", true, true},
		{"Header", ProfileHeaderRight, true, true},
		{"Header", ProfileHeaderLeft, true, false},
		{"Awards", "default", false, false},
		{"Right stuff", "default", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.title+"/"+tc.layout, func(t *testing.T) {
			p, m := IsProfileSection(tc.title, tc.layout)
			if p != tc.profile || m != tc.mirrors {
				t.Fatalf("IsProfileSection: want=(%v,%v) got=(%v,%v)", tc.profile, tc.mirrors, p, m)
			}
		})
	}
}
