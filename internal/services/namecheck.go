package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/session"
	"github.com/yungbote/portfolio-backend/internal/observability"
	"github.com/yungbote/portfolio-backend/internal/pkg/debounce"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

// NameService answers "is this portfolio name free" for keystroke-driven
// clients. Requests from one caller share a debounced lookup: a newer
// request inside the quiet window supersedes the older one.
type NameService interface {
	Available(ctx context.Context, name string) (bool, error)
	Stop()
}

var errNameServiceStopped = fmt.Errorf("name service stopped: %w", perrors.ErrSuperseded)

type nameWaiter struct {
	input string
	ch    chan debounce.Result[bool]
}

type ownerNameCheck struct {
	nc     *session.NameCheck
	mu     sync.Mutex
	waiter *nameWaiter
}

type nameService struct {
	log           *logger.Logger
	portfolioRepo repos.PortfolioRepo
	delay         time.Duration

	mu     sync.Mutex
	checks map[uuid.UUID]*ownerNameCheck
}

func NewNameService(baseLog *logger.Logger, portfolioRepo repos.PortfolioRepo, delay time.Duration) NameService {
	return &nameService{
		log:           baseLog.With("service", "NameService"),
		portfolioRepo: portfolioRepo,
		delay:         debounce.ClampDelay(delay),
		checks:        map[uuid.UUID]*ownerNameCheck{},
	}
}

func (s *nameService) checkFor(owner uuid.UUID) *ownerNameCheck {
	s.mu.Lock()
	defer s.mu.Unlock()
	if oc, ok := s.checks[owner]; ok {
		return oc
	}
	oc := &ownerNameCheck{}
	oc.nc = session.NewNameCheck(s.delay, func(ctx context.Context, value string) (bool, error) {
		return s.taken(ctx, owner, value)
	}, oc.deliver)
	s.checks[owner] = oc
	return oc
}

func (oc *ownerNameCheck) deliver(r debounce.Result[bool]) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.waiter != nil && oc.waiter.input == r.Input {
		oc.waiter.ch <- r
		oc.waiter = nil
	}
}

func (s *nameService) taken(ctx context.Context, owner uuid.UUID, name string) (bool, error) {
	ps, err := s.portfolioRepo.GetByOwnerIDs(ctx, nil, []uuid.UUID{owner})
	if err != nil {
		return false, err
	}
	for _, p := range ps {
		if strings.EqualFold(strings.TrimSpace(p.Name), name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *nameService) Available(ctx context.Context, name string) (bool, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return false, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("name: empty: %w", perrors.ErrInvalidArgument)
	}

	oc := s.checkFor(owner)
	w := &nameWaiter{input: name, ch: make(chan debounce.Result[bool], 1)}
	oc.mu.Lock()
	if prev := oc.waiter; prev != nil {
		prev.ch <- debounce.Result[bool]{Input: prev.input, Err: perrors.ErrSuperseded}
	}
	oc.waiter = w
	oc.mu.Unlock()
	oc.nc.Type(name)

	m := observability.Current()
	select {
	case r := <-w.ch:
		switch {
		case r.Err != nil:
			m.IncNameCheck("error")
			return false, r.Err
		case r.Value:
			m.IncNameCheck("taken")
		default:
			m.IncNameCheck("available")
		}
		return !r.Value, nil
	case <-ctx.Done():
		oc.mu.Lock()
		if oc.waiter == w {
			oc.waiter = nil
		}
		oc.mu.Unlock()
		return false, ctx.Err()
	}
}

func (s *nameService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for owner, oc := range s.checks {
		oc.nc.Stop()
		oc.mu.Lock()
		if w := oc.waiter; w != nil {
			w.ch <- debounce.Result[bool]{Input: w.input, Err: errNameServiceStopped}
			oc.waiter = nil
		}
		oc.mu.Unlock()
		delete(s.checks, owner)
	}
}
