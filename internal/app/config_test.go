package app

import (
	"strings"
	"testing"
	"time"

	"github.com/yungbote/portfolio-backend/internal/platform/gcp"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestLoadConfigStorageDisabled(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("OBJECT_STORAGE_MODE", "disabled")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.test , ,https://b.test")
	t.Setenv("NAME_CHECK_DEBOUNCE", "5s")

	cfg, err := LoadConfig(testLogger(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("DBDriver: want=sqlite got=%q", cfg.DBDriver)
	}
	if cfg.StorageEnabled {
		t.Fatalf("StorageEnabled: want=false")
	}
	if got := strings.Join(cfg.CORSOrigins, "|"); got != "https://a.test|https://b.test" {
		t.Fatalf("CORSOrigins: got=%q", got)
	}
	if cfg.NameCheckDebounce != 800*time.Millisecond {
		t.Fatalf("NameCheckDebounce: want=800ms got=%v", cfg.NameCheckDebounce)
	}
}

func TestLoadConfigEmulatorStorage(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("OBJECT_STORAGE_MODE", "gcs_emulator")
	t.Setenv("STORAGE_EMULATOR_HOST", "http://localhost:4443/")
	t.Setenv("OBJECT_STORAGE_PUBLIC_BASE_URL", "")
	t.Setenv("THUMBNAIL_GCS_BUCKET_NAME", "thumbs")
	t.Setenv("IMAGE_GCS_BUCKET_NAME", "images")

	cfg, err := LoadConfig(testLogger(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("DBDriver: want=postgres got=%q", cfg.DBDriver)
	}
	if !cfg.StorageEnabled || cfg.Storage.Mode != gcp.ObjectStorageModeGCSEmulator {
		t.Fatalf("Storage: got enabled=%v mode=%q", cfg.StorageEnabled, cfg.Storage.Mode)
	}
	if cfg.Storage.PublicBaseURL != "http://localhost:4443" {
		t.Fatalf("PublicBaseURL: got=%q", cfg.Storage.PublicBaseURL)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	cases := []struct {
		name   string
		env    map[string]string
		errSub string
	}{
		{"missing secret", map[string]string{"JWT_SECRET_KEY": ""}, "JWT_SECRET_KEY"},
		{"bad driver", map[string]string{"DB_DRIVER": "mysql"}, "DB_DRIVER"},
		{"bad storage mode", map[string]string{"OBJECT_STORAGE_MODE": "s3"}, "OBJECT_STORAGE_MODE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET_KEY", "secret")
			t.Setenv("DB_DRIVER", "sqlite")
			t.Setenv("OBJECT_STORAGE_MODE", "disabled")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(testLogger(t))
			if err == nil || !strings.Contains(err.Error(), tc.errSub) {
				t.Fatalf("LoadConfig: want error containing %q, got %v", tc.errSub, err)
			}
		})
	}
}
