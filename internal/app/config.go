package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/portfolio-backend/internal/observability"
	"github.com/yungbote/portfolio-backend/internal/pkg/debounce"
	"github.com/yungbote/portfolio-backend/internal/platform/envutil"
	"github.com/yungbote/portfolio-backend/internal/platform/gcp"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/services"
)

// StorageModeDisabled turns off uploads and snapshots for local runs
// without a bucket.
const StorageModeDisabled = "disabled"

type Config struct {
	Port         string
	LogMode      string
	JWTSecretKey string
	CORSOrigins  []string

	DBDriver   string
	SQLitePath string

	RedisAddr         string
	ReferenceCacheTTL time.Duration

	StorageEnabled    bool
	Storage           gcp.StorageConfig
	ThumbnailPrefix   string
	ThumbnailMaxWidth int

	CatalogSeedPath   string
	NameCheckDebounce time.Duration

	// MetricsAddr serves /metrics on its own listener when set.
	MetricsAddr string
	Otel        observability.OtelConfig
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:              envutil.String("PORT", "8080"),
		LogMode:           envutil.String("LOG_MODE", "development"),
		JWTSecretKey:      envutil.String("JWT_SECRET_KEY", ""),
		CORSOrigins:       splitList(envutil.String("CORS_ALLOWED_ORIGINS", "")),
		DBDriver:          strings.ToLower(envutil.String("DB_DRIVER", "postgres")),
		SQLitePath:        envutil.String("SQLITE_PATH", "portfolio.db"),
		RedisAddr:         envutil.String("REDIS_ADDR", ""),
		ReferenceCacheTTL: envutil.Duration("REFERENCE_CACHE_TTL", services.DefaultReferenceCacheTTL),
		ThumbnailPrefix:   envutil.String("THUMBNAIL_PREFIX", "portfolio"),
		ThumbnailMaxWidth: envutil.Int("THUMBNAIL_MAX_WIDTH", 640),
		CatalogSeedPath:   envutil.String("CATALOG_SEED_PATH", ""),
		NameCheckDebounce: debounce.ClampDelay(envutil.Duration("NAME_CHECK_DEBOUNCE", debounce.DefaultDelay)),
		MetricsAddr:       envutil.String("METRICS_ADDR", ""),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "portfolio"),
			Environment: envutil.String("OTEL_ENVIRONMENT", envutil.String("ENVIRONMENT", "")),
			Version:     envutil.String("OTEL_SERVICE_VERSION", ""),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", ""),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1),
		},
	}

	if cfg.JWTSecretKey == "" {
		return cfg, fmt.Errorf("JWT_SECRET_KEY is required")
	}
	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return cfg, fmt.Errorf("invalid DB_DRIVER=%q (allowed: postgres, sqlite)", cfg.DBDriver)
	}

	if strings.EqualFold(envutil.String("OBJECT_STORAGE_MODE", ""), StorageModeDisabled) {
		log.Warn("Object storage disabled; uploads and snapshots are unavailable")
	} else {
		storageCfg, err := gcp.ResolveStorageConfigFromEnv()
		if err != nil {
			return cfg, fmt.Errorf("object storage config: %w", err)
		}
		cfg.StorageEnabled = true
		cfg.Storage = storageCfg
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
