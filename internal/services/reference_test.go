package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/data/repos/testutil"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/content"
)

func TestLoadLiveFetchesBothKinds(t *testing.T) {
	f := newFixture(t)
	act := testutil.SeedActivity(t, f.ctx, f.tx, f.owner, "Olympiad")
	work := testutil.SeedWork(t, f.ctx, f.tx, f.owner, "Robot")
	testutil.SeedActivity(t, f.ctx, f.tx, uuid.New(), "someone else")

	acts, err := f.refs.ListActivities(f.ctx, f.owner)
	if err != nil || len(acts) != 1 {
		t.Fatalf("ListActivities: n=%d err=%v", len(acts), err)
	}

	live, err := f.refs.LoadLive(f.ctx, f.owner)
	if err != nil {
		t.Fatalf("LoadLive: %v", err)
	}
	item, err := content.ResolvePayload(uuid.New(), &content.Payload{Type: content.KindActivity, DataID: act.ID.String()}, live)
	if err != nil || item.Name != "Olympiad" || item.Source != content.SourceLive {
		t.Fatalf("resolve activity: item=%+v err=%v", item, err)
	}
	item, err = content.ResolvePayload(uuid.New(), &content.Payload{Type: content.KindWorking, DataID: work.ID.String()}, live)
	if err != nil || item.Name != "Robot" {
		t.Fatalf("resolve work: item=%+v err=%v", item, err)
	}
}

func TestListPortfoliosScopedToOwner(t *testing.T) {
	f := newFixture(t)
	testutil.SeedPortfolio(t, f.ctx, f.tx, f.owner, "Mine")
	testutil.SeedPortfolio(t, f.ctx, f.tx, uuid.New(), "Theirs")

	ps, err := f.refs.ListPortfolios(f.ctx, f.owner)
	if err != nil {
		t.Fatalf("ListPortfolios: %v", err)
	}
	if len(ps) != 1 || ps[0].Name != "Mine" {
		t.Fatalf("ListPortfolios: got %d portfolios", len(ps))
	}
}

func TestLoadLiveSeesRecordEditsPastTheCache(t *testing.T) {
	f := newFixture(t)
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	log := testutil.Logger(t)
	refs := NewReferenceStore(log, repos.NewActivityRepo(f.tx, log), repos.NewWorkRepo(f.tx, log), repos.NewPortfolioRepo(f.tx, log), rdb, time.Minute)

	act := testutil.SeedActivity(t, f.ctx, f.tx, f.owner, "Olympiad")
	if _, err := refs.ListActivities(f.ctx, f.owner); err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if !mr.Exists(activitiesKey(f.owner)) {
		t.Fatalf("ListActivities: want cached list")
	}
	payload := &content.Payload{Type: content.KindActivity, DataID: act.ID.String(), Data: content.SnapshotActivity(act)}

	if err := f.tx.WithContext(f.ctx).Model(&types.Activity{}).Where("id = ?", act.ID).Update("activity_name", "Regional Olympiad").Error; err != nil {
		t.Fatalf("rename activity: %v", err)
	}
	live, err := refs.LoadLive(f.ctx, f.owner)
	if err != nil {
		t.Fatalf("LoadLive: %v", err)
	}
	item, err := content.ResolvePayload(uuid.New(), payload, live)
	if err != nil || item.Source != content.SourceLive || item.Name != "Regional Olympiad" {
		t.Fatalf("after rename: item=%+v err=%v", item, err)
	}
	acts, err := refs.ListActivities(f.ctx, f.owner)
	if err != nil || len(acts) != 1 || acts[0].ActivityName != "Regional Olympiad" {
		t.Fatalf("ListActivities after LoadLive: want refreshed cache got=%+v err=%v", acts, err)
	}

	if err := f.tx.WithContext(f.ctx).Delete(&types.Activity{}, "id = ?", act.ID).Error; err != nil {
		t.Fatalf("delete activity: %v", err)
	}
	live, err = refs.LoadLive(f.ctx, f.owner)
	if err != nil {
		t.Fatalf("LoadLive: %v", err)
	}
	item, err = content.ResolvePayload(uuid.New(), payload, live)
	if err != nil || item.Source != content.SourceSnapshot || item.Name != "Olympiad" {
		t.Fatalf("after delete: item=%+v err=%v", item, err)
	}
}
