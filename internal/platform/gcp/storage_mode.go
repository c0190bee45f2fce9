package gcp

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

type ObjectStorageMode string

const (
	ObjectStorageModeGCS         ObjectStorageMode = "gcs"
	ObjectStorageModeGCSEmulator ObjectStorageMode = "gcs_emulator"
)

// StorageConfig is everything the bucket service needs from the environment.
type StorageConfig struct {
	Mode          ObjectStorageMode
	EmulatorHost  string
	PublicBaseURL string
	Buckets       map[BucketCategory]BucketConfig
}

type BucketConfig struct {
	Name      string
	CDNDomain string
}

func (cfg StorageConfig) IsEmulatorMode() bool {
	return cfg.Mode == ObjectStorageModeGCSEmulator
}

// ResolveStorageConfigFromEnv reads OBJECT_STORAGE_MODE, STORAGE_EMULATOR_HOST,
// OBJECT_STORAGE_PUBLIC_BASE_URL and the per-category bucket variables. An
// unset mode with an emulator host falls back to emulator mode.
func ResolveStorageConfigFromEnv() (StorageConfig, error) {
	cfg := StorageConfig{
		EmulatorHost: strings.TrimRight(strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")), "/"),
		Buckets: map[BucketCategory]BucketConfig{
			BucketCategoryThumbnail: {
				Name:      strings.TrimSpace(os.Getenv("THUMBNAIL_GCS_BUCKET_NAME")),
				CDNDomain: strings.TrimSpace(os.Getenv("THUMBNAIL_CDN_DOMAIN")),
			},
			BucketCategoryImage: {
				Name:      strings.TrimSpace(os.Getenv("IMAGE_GCS_BUCKET_NAME")),
				CDNDomain: strings.TrimSpace(os.Getenv("IMAGE_CDN_DOMAIN")),
			},
		},
	}

	rawMode := strings.ToLower(strings.TrimSpace(os.Getenv("OBJECT_STORAGE_MODE")))
	switch ObjectStorageMode(rawMode) {
	case "":
		cfg.Mode = ObjectStorageModeGCS
		if cfg.EmulatorHost != "" {
			cfg.Mode = ObjectStorageModeGCSEmulator
		}
	case ObjectStorageModeGCS, ObjectStorageModeGCSEmulator:
		cfg.Mode = ObjectStorageMode(rawMode)
	default:
		return cfg, fmt.Errorf("invalid OBJECT_STORAGE_MODE=%q (allowed: %q, %q)", rawMode, ObjectStorageModeGCS, ObjectStorageModeGCSEmulator)
	}

	if raw := strings.TrimSpace(os.Getenv("OBJECT_STORAGE_PUBLIC_BASE_URL")); raw != "" {
		if !isAbsoluteURL(raw) {
			return cfg, fmt.Errorf("invalid OBJECT_STORAGE_PUBLIC_BASE_URL=%q; expected absolute URL", raw)
		}
		cfg.PublicBaseURL = strings.TrimRight(raw, "/")
	} else if cfg.IsEmulatorMode() {
		cfg.PublicBaseURL = cfg.EmulatorHost
	}

	return cfg, ValidateStorageConfig(cfg)
}

func ValidateStorageConfig(cfg StorageConfig) error {
	switch cfg.Mode {
	case ObjectStorageModeGCS:
	case ObjectStorageModeGCSEmulator:
		if cfg.EmulatorHost == "" {
			return fmt.Errorf("OBJECT_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST", cfg.Mode)
		}
		if !isAbsoluteURL(cfg.EmulatorHost) {
			return fmt.Errorf("invalid STORAGE_EMULATOR_HOST=%q; expected absolute URL like http://fake-gcs:4443", cfg.EmulatorHost)
		}
	default:
		return fmt.Errorf("unsupported object storage mode %q", cfg.Mode)
	}
	for category, b := range cfg.Buckets {
		if b.Name == "" {
			return fmt.Errorf("missing bucket name for category %q", category)
		}
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
