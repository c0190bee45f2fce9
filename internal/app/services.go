package app

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/snapshot"
	"github.com/yungbote/portfolio-backend/internal/platform/gcp"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	References services.ReferenceStore
	Themes     services.ThemeService
	Portfolios services.PortfolioService
	Editor     services.EditorService
	Templates  services.TemplateService
	Catalog    services.CatalogService
	Names      services.NameService
	// Uploads is nil when object storage is disabled.
	Uploads services.UploadService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, rdb *goredis.Client, bucket gcp.BucketService) (Services, error) {
	log.Info("Wiring services...")

	var pipeline *snapshot.Pipeline
	var uploads services.UploadService
	if bucket != nil {
		rasterizer, err := snapshot.NewRasterizer(cfg.ThumbnailMaxWidth)
		if err != nil {
			return Services{}, fmt.Errorf("init rasterizer: %w", err)
		}
		pipeline = snapshot.NewPipeline(rasterizer, services.NewThumbnailUploader(bucket, cfg.ThumbnailPrefix))
		uploads = services.NewUploadService(log, bucket)
	}

	refs := services.NewReferenceStore(log, r.Activity, r.Work, r.Portfolio, rdb, cfg.ReferenceCacheTTL)
	themes := services.NewThemeService(db, log, r.ColorTheme, r.FontTheme)

	return Services{
		Auth:       services.NewAuthService(log, cfg.JWTSecretKey),
		References: refs,
		Themes:     themes,
		Portfolios: services.NewPortfolioService(db, log, r.Portfolio, r.Section, r.Block, refs, themes, pipeline),
		Editor:     services.NewEditorService(db, log, r.Portfolio, r.Section, r.Block, refs),
		Templates:  services.NewTemplateService(db, log, r.Template, r.Portfolio, themes, pipeline),
		Catalog:    services.NewCatalogService(db, log, r.ColorTheme, r.FontTheme, r.Template),
		Names:      services.NewNameService(log, r.Portfolio, cfg.NameCheckDebounce),
		Uploads:    uploads,
	}, nil
}
