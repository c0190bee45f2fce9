package services

import (
	"sync"

	"github.com/google/uuid"
)

// portfolioLocks serializes structural edits per portfolio within this
// process.
type portfolioLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newPortfolioLocks() *portfolioLocks {
	return &portfolioLocks{locks: map[uuid.UUID]*lockEntry{}}
}

func (l *portfolioLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	e := l.locks[id]
	if e == nil {
		e = &lockEntry{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
