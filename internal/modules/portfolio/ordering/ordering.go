package ordering

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

// Item is anything that carries a dense, zero-based position among siblings.
type Item interface {
	OrderID() uuid.UUID
	Order() int
	SetOrder(int)
}

type Toggler interface {
	SetEnabled(bool)
}

// Manager keeps each parent's children as a list whose positions are the
// order indexes. Every mutation ends by rewriting indexes to 0..n-1 and
// reporting the items whose index changed so callers can persist them.
//
// Manager is not safe for concurrent use.
type Manager[T Item] struct {
	children map[uuid.UUID][]T
	parentOf map[uuid.UUID]uuid.UUID
}

func NewManager[T Item]() *Manager[T] {
	return &Manager[T]{
		children: map[uuid.UUID][]T{},
		parentOf: map[uuid.UUID]uuid.UUID{},
	}
}

// Load replaces the children of parentID. Persisted rows may carry gaps or
// duplicate indexes; they are stable-sorted by their stored index and then
// renumbered.
func (m *Manager[T]) Load(parentID uuid.UUID, items []T) []T {
	for _, old := range m.children[parentID] {
		delete(m.parentOf, old.OrderID())
	}
	list := make([]T, 0, len(items))
	list = append(list, items...)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Order() < list[j].Order() })
	for _, it := range list {
		m.parentOf[it.OrderID()] = parentID
	}
	m.children[parentID] = list
	return m.reindex(parentID)
}

// Insert appends item to parentID and returns its order index. An item that
// is already placed, under any parent, is rejected; Remove it first.
func (m *Manager[T]) Insert(parentID uuid.UUID, item T) (int, error) {
	if prev, ok := m.parentOf[item.OrderID()]; ok {
		return 0, fmt.Errorf("insert %s: already under %s: %w", item.OrderID(), prev, perrors.ErrInvalidArgument)
	}
	m.children[parentID] = append(m.children[parentID], item)
	m.parentOf[item.OrderID()] = parentID
	m.reindex(parentID)
	return item.Order(), nil
}

// Remove drops itemID from its parent. A missing id is a no-op reported as
// ErrNotFound.
func (m *Manager[T]) Remove(itemID uuid.UUID) (T, []T, error) {
	var zero T
	parentID, ok := m.parentOf[itemID]
	if !ok {
		return zero, nil, fmt.Errorf("remove %s: %w", itemID, perrors.ErrNotFound)
	}
	removed := m.detach(parentID, itemID)
	return removed, m.reindex(parentID), nil
}

// Swap exchanges two adjacent siblings.
func (m *Manager[T]) Swap(parentID uuid.UUID, indexA, indexB int) ([]T, error) {
	list, ok := m.children[parentID]
	if !ok {
		return nil, fmt.Errorf("swap in %s: %w", parentID, perrors.ErrNotFound)
	}
	if indexA < 0 || indexB < 0 || indexA >= len(list) || indexB >= len(list) {
		return nil, fmt.Errorf("swap %d<->%d of %d: %w", indexA, indexB, len(list), perrors.ErrInvalidArgument)
	}
	if d := indexA - indexB; d != 1 && d != -1 {
		return nil, fmt.Errorf("swap %d<->%d: only adjacent items can be swapped: %w", indexA, indexB, perrors.ErrInvalidArgument)
	}
	list[indexA], list[indexB] = list[indexB], list[indexA]
	return m.reindex(parentID), nil
}

func (m *Manager[T]) MoveUp(itemID uuid.UUID) ([]T, error) {
	return m.move(itemID, -1)
}

func (m *Manager[T]) MoveDown(itemID uuid.UUID) ([]T, error) {
	return m.move(itemID, 1)
}

func (m *Manager[T]) move(itemID uuid.UUID, delta int) ([]T, error) {
	parentID, ok := m.parentOf[itemID]
	if !ok {
		return nil, fmt.Errorf("move %s: %w", itemID, perrors.ErrNotFound)
	}
	idx := m.indexOf(parentID, itemID)
	return m.Swap(parentID, idx, idx+delta)
}

// SetEnabled toggles visibility. The order index is left alone.
func (m *Manager[T]) SetEnabled(itemID uuid.UUID, enabled bool) (T, error) {
	var zero T
	it, ok := m.Get(itemID)
	if !ok {
		return zero, fmt.Errorf("set enabled %s: %w", itemID, perrors.ErrNotFound)
	}
	tg, ok := any(it).(Toggler)
	if !ok {
		return zero, fmt.Errorf("set enabled %s: item cannot be toggled: %w", itemID, perrors.ErrInvalidArgument)
	}
	tg.SetEnabled(enabled)
	return it, nil
}

// Drop forgets parentID and all of its children.
func (m *Manager[T]) Drop(parentID uuid.UUID) []T {
	list := m.children[parentID]
	for _, it := range list {
		delete(m.parentOf, it.OrderID())
	}
	delete(m.children, parentID)
	return list
}

func (m *Manager[T]) Children(parentID uuid.UUID) []T {
	list := m.children[parentID]
	out := make([]T, len(list))
	copy(out, list)
	return out
}

func (m *Manager[T]) Get(itemID uuid.UUID) (T, bool) {
	var zero T
	parentID, ok := m.parentOf[itemID]
	if !ok {
		return zero, false
	}
	idx := m.indexOf(parentID, itemID)
	if idx < 0 {
		return zero, false
	}
	return m.children[parentID][idx], true
}

func (m *Manager[T]) Parent(itemID uuid.UUID) (uuid.UUID, bool) {
	p, ok := m.parentOf[itemID]
	return p, ok
}

func (m *Manager[T]) indexOf(parentID, itemID uuid.UUID) int {
	for i, it := range m.children[parentID] {
		if it.OrderID() == itemID {
			return i
		}
	}
	return -1
}

func (m *Manager[T]) detach(parentID, itemID uuid.UUID) T {
	var removed T
	list := m.children[parentID]
	out := list[:0]
	for _, it := range list {
		if it.OrderID() == itemID {
			removed = it
			continue
		}
		out = append(out, it)
	}
	m.children[parentID] = out
	delete(m.parentOf, itemID)
	return removed
}

func (m *Manager[T]) reindex(parentID uuid.UUID) []T {
	var changed []T
	for i, it := range m.children[parentID] {
		if it.Order() != i {
			it.SetOrder(i)
			changed = append(changed, it)
		}
	}
	return changed
}

// Dense reports whether items carry exactly the indexes 0..n-1.
func Dense[T Item](items []T) bool {
	seen := make([]bool, len(items))
	for _, it := range items {
		i := it.Order()
		if i < 0 || i >= len(items) || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}
