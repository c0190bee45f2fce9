package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/portfolio-backend/internal/pkg/debounce"
)

// NameChecker reports whether a value is already taken.
type NameChecker func(ctx context.Context, value string) (bool, error)

// NameCheck debounces keystroke-driven availability checks. Only the result
// for the latest value is kept.
type NameCheck struct {
	lookup *debounce.Lookup[bool]

	mu     sync.Mutex
	last   debounce.Result[bool]
	notify func(debounce.Result[bool])
}

func NewNameCheck(delay time.Duration, check NameChecker, notify func(debounce.Result[bool])) *NameCheck {
	nc := &NameCheck{notify: notify}
	nc.lookup = debounce.New(delay, func(ctx context.Context, input string) (bool, error) {
		return check(ctx, input)
	}, nc.deliver)
	return nc
}

func (nc *NameCheck) deliver(r debounce.Result[bool]) {
	nc.mu.Lock()
	nc.last = r
	notify := nc.notify
	nc.mu.Unlock()
	if notify != nil {
		notify(r)
	}
}

// Type records the field's current value.
func (nc *NameCheck) Type(value string) {
	nc.lookup.Submit(strings.TrimSpace(value))
}

func (nc *NameCheck) Last() debounce.Result[bool] {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.last
}

func (nc *NameCheck) Delay() time.Duration { return nc.lookup.Delay() }

func (nc *NameCheck) Stop() { nc.lookup.Stop() }
