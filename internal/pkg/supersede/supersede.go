package supersede

import (
	"context"
	"sync"

	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

type call struct {
	seq    uint64
	cancel context.CancelFunc
}

// Loader runs at most one live load per key. Starting a load cancels the
// previous one for the same key, and a load that finishes after being
// replaced returns ErrSuperseded instead of its result.
type Loader[T any] struct {
	mu       sync.Mutex
	seq      uint64
	inflight map[string]*call
}

func NewLoader[T any]() *Loader[T] {
	return &Loader[T]{inflight: map[string]*call{}}
}

func (l *Loader[T]) Load(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.inflight == nil {
		l.inflight = map[string]*call{}
	}
	l.seq++
	mine := &call{seq: l.seq, cancel: cancel}
	if prev := l.inflight[key]; prev != nil {
		prev.cancel()
	}
	l.inflight[key] = mine
	l.mu.Unlock()

	v, err := fn(loadCtx)

	l.mu.Lock()
	cur := l.inflight[key]
	stale := cur == nil || cur.seq != mine.seq
	if !stale {
		delete(l.inflight, key)
	}
	l.mu.Unlock()

	if stale {
		return zero, perrors.ErrSuperseded
	}
	if err != nil {
		return zero, err
	}
	return v, nil
}

// Cancel aborts the in-flight load for key, if any. Its caller sees
// ErrSuperseded.
func (l *Loader[T]) Cancel(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c := l.inflight[key]; c != nil {
		c.cancel()
		delete(l.inflight, key)
	}
}

func (l *Loader[T]) InFlight(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.inflight[key]
	return ok
}
