package services

import (
	"errors"
	"testing"
	"time"

	"github.com/yungbote/portfolio-backend/internal/data/repos/testutil"
	"github.com/yungbote/portfolio-backend/internal/pkg/debounce"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

func TestNameAvailable(t *testing.T) {
	f := newFixture(t)
	testutil.SeedPortfolio(t, f.ctx, f.tx, f.owner, "Science Fair")
	names := NewNameService(testutil.Logger(t), f.portfolioRepo, debounce.MinDelay)
	defer names.Stop()

	ok, err := names.Available(f.ctx, " science fair ")
	if err != nil {
		t.Fatalf("Available: %v", err)
	}
	if ok {
		t.Fatalf("Available: want taken")
	}
	ok, err = names.Available(f.ctx, "Robotics")
	if err != nil || !ok {
		t.Fatalf("Available(Robotics): ok=%v err=%v", ok, err)
	}
	if _, err := names.Available(f.ctx, "  "); !errors.Is(err, perrors.ErrInvalidArgument) {
		t.Fatalf("Available(blank): want ErrInvalidArgument got=%v", err)
	}
}

func TestNameAvailableSupersedes(t *testing.T) {
	f := newFixture(t)
	names := NewNameService(testutil.Logger(t), f.portfolioRepo, debounce.MaxDelay)
	defer names.Stop()

	first := make(chan error, 1)
	go func() {
		_, err := names.Available(f.ctx, "G123")
		first <- err
	}()
	time.Sleep(50 * time.Millisecond)

	ok, err := names.Available(f.ctx, "G1234567")
	if err != nil || !ok {
		t.Fatalf("Available(latest): ok=%v err=%v", ok, err)
	}
	select {
	case err := <-first:
		if !errors.Is(err, perrors.ErrSuperseded) {
			t.Fatalf("stale Available: want ErrSuperseded got=%v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("stale Available never returned")
	}
}

func TestNameServiceStopReleasesWaiters(t *testing.T) {
	f := newFixture(t)
	names := NewNameService(testutil.Logger(t), f.portfolioRepo, debounce.MaxDelay)

	pending := make(chan error, 1)
	go func() {
		_, err := names.Available(f.ctx, "Robotics")
		pending <- err
	}()
	time.Sleep(50 * time.Millisecond)
	names.Stop()

	select {
	case err := <-pending:
		if !errors.Is(err, errNameServiceStopped) || !errors.Is(err, perrors.ErrSuperseded) {
			t.Fatalf("Available after Stop: want errNameServiceStopped got=%v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Available still blocked after Stop")
	}
}
