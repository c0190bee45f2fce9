package debounce

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultDelay = 500 * time.Millisecond
	MinDelay     = 300 * time.Millisecond
	MaxDelay     = 800 * time.Millisecond
)

// ClampDelay maps a zero delay to DefaultDelay and clamps everything else
// into [MinDelay, MaxDelay].
func ClampDelay(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultDelay
	case d < MinDelay:
		return MinDelay
	case d > MaxDelay:
		return MaxDelay
	default:
		return d
	}
}

type Func[V any] func(ctx context.Context, input string) (V, error)

type Result[V any] struct {
	Input string
	Value V
	Err   error
}

// Lookup runs fn for the last input submitted within a quiet window. Every
// Submit restarts the timer and cancels a lookup already in flight, so only
// the result for the most recent input reaches deliver. deliver runs with the
// internal lock held and must not call back into the Lookup.
type Lookup[V any] struct {
	delay   time.Duration
	fn      Func[V]
	deliver func(Result[V])

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
}

func New[V any](delay time.Duration, fn Func[V], deliver func(Result[V])) *Lookup[V] {
	return &Lookup[V]{delay: ClampDelay(delay), fn: fn, deliver: deliver}
}

func (l *Lookup[V]) Delay() time.Duration { return l.delay }

func (l *Lookup[V]) Submit(input string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.seq++
	seq := l.seq
	l.stopLocked()
	l.timer = time.AfterFunc(l.delay, func() { l.fire(seq, input) })
}

// Stop drops the pending timer and any in-flight lookup. Later Submits are
// ignored.
func (l *Lookup[V]) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.seq++
	l.stopLocked()
}

func (l *Lookup[V]) stopLocked() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *Lookup[V]) fire(seq uint64, input string) {
	l.mu.Lock()
	if seq != l.seq {
		l.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.mu.Unlock()

	v, err := l.fn(ctx, input)
	cancel()

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		return
	}
	l.cancel = nil
	if l.deliver != nil {
		l.deliver(Result[V]{Input: input, Value: v, Err: err})
	}
}
