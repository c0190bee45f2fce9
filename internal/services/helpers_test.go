package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/data/repos/testutil"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/render"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/snapshot"
	"github.com/yungbote/portfolio-backend/internal/platform/ctxutil"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/gcp"
)

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	failAt  int
	calls   int
}

func newFakeBucket() *fakeBucket { return &fakeBucket{objects: map[string][]byte{}, failAt: -1} }

func (b *fakeBucket) UploadFile(dbc dbctx.Context, category gcp.BucketCategory, key string, file io.Reader, contentType string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.failAt >= 0 && b.calls-1 == b.failAt {
		return fmt.Errorf("bucket unavailable")
	}
	raw, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	b.objects[string(category)+"/"+key] = raw
	return nil
}

func (b *fakeBucket) GetPublicURL(category gcp.BucketCategory, key string) string {
	return "https://cdn.test/" + string(category) + "/" + key
}

type fakeCapturer struct {
	err   error
	calls int
}

func (c *fakeCapturer) Capture(ctx context.Context, doc render.Document, opts snapshot.Options) ([]byte, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []byte("png"), nil
}

type fixture struct {
	tx        *gorm.DB
	ctx       context.Context
	owner     uuid.UUID
	bucket    *fakeBucket
	capturer  *fakeCapturer
	refs      ReferenceStore
	themes    ThemeService
	portfolio PortfolioService
	editor    EditorService
	templates TemplateService
	catalog   CatalogService

	portfolioRepo repos.PortfolioRepo
	sectionRepo   repos.SectionRepo
	blockRepo     repos.BlockRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	f := &fixture{
		tx:       tx,
		owner:    uuid.New(),
		bucket:   newFakeBucket(),
		capturer: &fakeCapturer{},
	}
	f.ctx = ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: f.owner})

	f.portfolioRepo = repos.NewPortfolioRepo(tx, log)
	f.sectionRepo = repos.NewSectionRepo(tx, log)
	f.blockRepo = repos.NewBlockRepo(tx, log)
	templateRepo := repos.NewTemplateRepo(tx, log)
	colorRepo := repos.NewColorThemeRepo(tx, log)
	fontRepo := repos.NewFontThemeRepo(tx, log)

	pipeline := snapshot.NewPipeline(f.capturer, NewThumbnailUploader(f.bucket, "portfolio"))

	f.refs = NewReferenceStore(log, repos.NewActivityRepo(tx, log), repos.NewWorkRepo(tx, log), repos.NewPortfolioRepo(tx, log), nil, 0)
	f.themes = NewThemeService(tx, log, colorRepo, fontRepo)
	f.portfolio = NewPortfolioService(tx, log, f.portfolioRepo, f.sectionRepo, f.blockRepo, f.refs, f.themes, pipeline)
	f.editor = NewEditorService(tx, log, f.portfolioRepo, f.sectionRepo, f.blockRepo, f.refs)
	f.templates = NewTemplateService(tx, log, templateRepo, f.portfolioRepo, f.themes, pipeline)
	f.catalog = NewCatalogService(tx, log, colorRepo, fontRepo, templateRepo)
	return f
}
