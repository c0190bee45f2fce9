package layout

import (
	"sort"
	"strings"
)

const (
	ProfileHeaderLeft   = "profile_header_left"
	ProfileHeaderRight  = "profile_header_right"
	TwoPicturesTwoTexts = "two_pictures_two_texts"
	Default             = "default"
)

const (
	KindImage = "image"
	KindText  = "text"
)

type Shape string

const (
	ShapeProfile Shape = "profile"
	ShapeGrid    Shape = "grid"
	ShapeStack   Shape = "stack"
)

type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

const (
	PortraitWidthPct = 25
	TextWidthPct     = 75
)

// Entry is one block as the layout sees it. Item is carried through
// untouched.
type Entry[T any] struct {
	Item       T
	Kind       string
	OrderIndex int
}

// Assignment says which entries go in which visual region. For ShapeProfile
// the Portrait and TextColumn fields are set; for grid and stack every entry
// is in Rows.
type Assignment[T any] struct {
	LayoutType string `json:"layout_type"`
	Shape      Shape  `json:"shape"`

	Side          Side       `json:"side,omitempty"`
	Portrait      *Entry[T]  `json:"portrait,omitempty"`
	PortraitWidth int        `json:"portrait_width,omitempty"`
	TextColumn    []Entry[T] `json:"text_column,omitempty"`
	TextWidth     int        `json:"text_width,omitempty"`

	Columns int          `json:"columns,omitempty"`
	Rows    [][]Entry[T] `json:"rows,omitempty"`
}

// Len is the number of entries placed.
func (a Assignment[T]) Len() int {
	n := len(a.TextColumn)
	if a.Portrait != nil {
		n++
	}
	for _, r := range a.Rows {
		n += len(r)
	}
	return n
}

// Entries returns the placed entries in reading order.
func (a Assignment[T]) Entries() []Entry[T] {
	out := make([]Entry[T], 0, a.Len())
	if a.Portrait != nil {
		out = append(out, *a.Portrait)
	}
	out = append(out, a.TextColumn...)
	for _, r := range a.Rows {
		out = append(out, r...)
	}
	return out
}

func Known(layoutType string) bool {
	switch normalize(layoutType) {
	case ProfileHeaderLeft, ProfileHeaderRight, TwoPicturesTwoTexts, Default:
		return true
	}
	return false
}

// Arrange maps a layout tag and a section's entries to slot assignments.
// Unknown tags fall back to the single vertical stack.
func Arrange[T any](layoutType string, entries []Entry[T]) Assignment[T] {
	tag := normalize(layoutType)
	switch tag {
	case ProfileHeaderLeft:
		return arrangeProfile(tag, SideLeft, entries)
	case ProfileHeaderRight:
		return arrangeProfile(tag, SideRight, entries)
	case TwoPicturesTwoTexts:
		return arrangeGrid(tag, 2, entries)
	default:
		return arrangeStack(Default, entries)
	}
}

func byOrder[T any](entries []Entry[T]) []Entry[T] {
	out := make([]Entry[T], len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}

// The first image by order index takes the portrait slot; later images are
// demoted into the text column.
func arrangeProfile[T any](tag string, side Side, entries []Entry[T]) Assignment[T] {
	a := Assignment[T]{
		LayoutType:    tag,
		Shape:         ShapeProfile,
		Side:          side,
		PortraitWidth: PortraitWidthPct,
		TextWidth:     TextWidthPct,
		TextColumn:    []Entry[T]{},
	}
	for _, e := range byOrder(entries) {
		if a.Portrait == nil && strings.EqualFold(e.Kind, KindImage) {
			p := e
			a.Portrait = &p
			continue
		}
		a.TextColumn = append(a.TextColumn, e)
	}
	return a
}

// Grid cells are filled in arrival order, two per row.
func arrangeGrid[T any](tag string, cols int, entries []Entry[T]) Assignment[T] {
	a := Assignment[T]{LayoutType: tag, Shape: ShapeGrid, Columns: cols, Rows: [][]Entry[T]{}}
	for i := 0; i < len(entries); i += cols {
		end := i + cols
		if end > len(entries) {
			end = len(entries)
		}
		row := make([]Entry[T], end-i)
		copy(row, entries[i:end])
		a.Rows = append(a.Rows, row)
	}
	return a
}

func arrangeStack[T any](tag string, entries []Entry[T]) Assignment[T] {
	a := Assignment[T]{LayoutType: tag, Shape: ShapeStack, Columns: 1, Rows: [][]Entry[T]{}}
	for _, e := range byOrder(entries) {
		a.Rows = append(a.Rows, []Entry[T]{e})
	}
	return a
}

// IsProfileSection reports whether a section goes to the dedicated profile
// renderer, and whether that renderer is mirrored to the right.
func IsProfileSection(title, layoutType string) (profile bool, mirrored bool) {
	t := strings.ToLower(title)
	tag := normalize(layoutType)
	profile = strings.Contains(t, "profile") || tag == ProfileHeaderLeft || tag == ProfileHeaderRight
	if !profile {
		return false, false
	}
	mirrored = strings.Contains(t, "right") || tag == ProfileHeaderRight
	return profile, mirrored
}

func normalize(layoutType string) string {
	return strings.ToLower(strings.TrimSpace(layoutType))
}
