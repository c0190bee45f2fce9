package theme

import (
	"sync"

	"github.com/google/uuid"
)

// Selection is the pair of theme references a portfolio points at.
type Selection struct {
	ColorThemeID *uuid.UUID `json:"color_theme_id"`
	FontThemeID  *uuid.UUID `json:"font_theme_id"`
}

func SelectionOf(colorID, fontID *uuid.UUID) Selection {
	return Selection{ColorThemeID: clone(colorID), FontThemeID: clone(fontID)}
}

// ChangeSet holds only the references that differ. A changed reference may
// be nil, which clears it.
type ChangeSet struct {
	ColorChanged bool
	ColorThemeID *uuid.UUID
	FontChanged  bool
	FontThemeID  *uuid.UUID
}

func (c ChangeSet) Empty() bool { return !c.ColorChanged && !c.FontChanged }

// Fields is the partial update for the portfolio row.
func (c ChangeSet) Fields() map[string]interface{} {
	out := map[string]interface{}{}
	if c.ColorChanged {
		out["color_theme_id"] = idValue(c.ColorThemeID)
	}
	if c.FontChanged {
		out["font_theme_id"] = idValue(c.FontThemeID)
	}
	return out
}

func idValue(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func Diff(initial, active Selection) ChangeSet {
	var c ChangeSet
	if !sameID(initial.ColorThemeID, active.ColorThemeID) {
		c.ColorChanged = true
		c.ColorThemeID = clone(active.ColorThemeID)
	}
	if !sameID(initial.FontThemeID, active.FontThemeID) {
		c.FontChanged = true
		c.FontThemeID = clone(active.FontThemeID)
	}
	return c
}

// Tracker remembers the pair loaded at session start so saves carry only
// what the user changed. A failed save leaves the selection dirty.
type Tracker struct {
	mu      sync.Mutex
	initial Selection
	active  Selection
}

func NewTracker(initial Selection) *Tracker {
	return &Tracker{initial: copySel(initial), active: copySel(initial)}
}

func (t *Tracker) SelectColor(id *uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active.ColorThemeID = clone(id)
}

func (t *Tracker) SelectFont(id *uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active.FontThemeID = clone(id)
}

func (t *Tracker) Active() Selection {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copySel(t.active)
}

func (t *Tracker) Pending() ChangeSet {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Diff(t.initial, t.active)
}

func (t *Tracker) Dirty() bool { return !t.Pending().Empty() }

// Commit rebases the initial pair onto the saved change set. Only the
// fields in cs move, so a selection made while the save was in flight stays
// pending.
func (t *Tracker) Commit(cs ChangeSet) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cs.ColorChanged {
		t.initial.ColorThemeID = clone(cs.ColorThemeID)
	}
	if cs.FontChanged {
		t.initial.FontThemeID = clone(cs.FontThemeID)
	}
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func clone(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copySel(s Selection) Selection {
	return Selection{ColorThemeID: clone(s.ColorThemeID), FontThemeID: clone(s.FontThemeID)}
}
