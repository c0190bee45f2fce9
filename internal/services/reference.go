package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/content"
	"github.com/yungbote/portfolio-backend/internal/observability"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

const DefaultReferenceCacheTTL = 2 * time.Minute

// ReferenceStore reads a student's activity and work records. The list
// endpoints are cached in redis when a client is configured; a cache failure
// falls back to the database. Portfolio lists are never cached.
type ReferenceStore interface {
	ListActivities(ctx context.Context, ownerID uuid.UUID) ([]*types.Activity, error)
	ListWorks(ctx context.Context, ownerID uuid.UUID) ([]*types.Work, error)
	ListPortfolios(ctx context.Context, ownerID uuid.UUID) ([]*types.Portfolio, error)
	// LoadLive always reads the database so record edits and deletions show
	// up on the next render. The fresh lists are written back to the cache.
	LoadLive(ctx context.Context, ownerID uuid.UUID) (*content.Live, error)
}

type referenceStore struct {
	log           *logger.Logger
	activityRepo  repos.ActivityRepo
	workRepo      repos.WorkRepo
	portfolioRepo repos.PortfolioRepo
	rdb           *goredis.Client
	ttl           time.Duration
}

func NewReferenceStore(log *logger.Logger, activityRepo repos.ActivityRepo, workRepo repos.WorkRepo, portfolioRepo repos.PortfolioRepo, rdb *goredis.Client, ttl time.Duration) ReferenceStore {
	if ttl <= 0 {
		ttl = DefaultReferenceCacheTTL
	}
	return &referenceStore{
		log:           log.With("service", "ReferenceStore"),
		activityRepo:  activityRepo,
		workRepo:      workRepo,
		portfolioRepo: portfolioRepo,
		rdb:           rdb,
		ttl:           ttl,
	}
}

func activitiesKey(ownerID uuid.UUID) string { return "portfolio:ref:activities:" + ownerID.String() }
func worksKey(ownerID uuid.UUID) string      { return "portfolio:ref:works:" + ownerID.String() }

func (s *referenceStore) ListActivities(ctx context.Context, ownerID uuid.UUID) ([]*types.Activity, error) {
	return cached(ctx, s, "activities", activitiesKey(ownerID), func() ([]*types.Activity, error) {
		return s.activityRepo.GetByOwnerIDs(ctx, nil, []uuid.UUID{ownerID})
	})
}

func (s *referenceStore) ListWorks(ctx context.Context, ownerID uuid.UUID) ([]*types.Work, error) {
	return cached(ctx, s, "works", worksKey(ownerID), func() ([]*types.Work, error) {
		return s.workRepo.GetByOwnerIDs(ctx, nil, []uuid.UUID{ownerID})
	})
}

func (s *referenceStore) ListPortfolios(ctx context.Context, ownerID uuid.UUID) ([]*types.Portfolio, error) {
	return s.portfolioRepo.GetByOwnerIDs(ctx, nil, []uuid.UUID{ownerID})
}

func (s *referenceStore) LoadLive(ctx context.Context, ownerID uuid.UUID) (*content.Live, error) {
	var (
		acts  []*types.Activity
		works []*types.Work
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		acts, err = s.activityRepo.GetByOwnerIDs(gctx, nil, []uuid.UUID{ownerID})
		return err
	})
	g.Go(func() error {
		var err error
		works, err = s.workRepo.GetByOwnerIDs(gctx, nil, []uuid.UUID{ownerID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load reference records: %w", err)
	}
	store(ctx, s, activitiesKey(ownerID), acts)
	store(ctx, s, worksKey(ownerID), works)
	return content.NewLive(acts, works), nil
}

func cached[T any](ctx context.Context, s *referenceStore, kind, key string, load func() ([]T, error)) ([]T, error) {
	m := observability.Current()
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var out []T
			jerr := json.Unmarshal(raw, &out)
			if jerr == nil {
				m.IncReferenceCache(kind, true)
				return out, nil
			}
			s.log.Warn("cache decode failed", "key", key, "error", jerr)
		case !errors.Is(err, goredis.Nil):
			s.log.Warn("cache read failed", "key", key, "error", err)
		}
	}

	out, err := load()
	if err != nil {
		return nil, err
	}
	if s.rdb != nil {
		m.IncReferenceCache(kind, false)
	}
	store(ctx, s, key, out)
	return out, nil
}

func store[T any](ctx context.Context, s *referenceStore, key string, v []T) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
}
