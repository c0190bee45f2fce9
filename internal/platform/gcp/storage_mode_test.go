package gcp

import (
	"testing"
)

func setBucketEnv(t *testing.T) {
	t.Helper()
	t.Setenv("THUMBNAIL_GCS_BUCKET_NAME", "thumbs")
	t.Setenv("IMAGE_GCS_BUCKET_NAME", "images")
	t.Setenv("OBJECT_STORAGE_PUBLIC_BASE_URL", "")
}

func TestResolveStorageConfigFromEnv(t *testing.T) {
	cases := []struct {
		name     string
		mode     string
		emulator string
		wantMode ObjectStorageMode
		wantBase string
		wantErr  bool
	}{
		{name: "default gcs", wantMode: ObjectStorageModeGCS},
		{name: "explicit gcs ignores emulator", mode: "gcs", emulator: "http://fake-gcs:4443", wantMode: ObjectStorageModeGCS},
		{name: "explicit emulator", mode: "gcs_emulator", emulator: "http://fake-gcs:4443", wantMode: ObjectStorageModeGCSEmulator, wantBase: "http://fake-gcs:4443"},
		{name: "emulator fallback", emulator: "http://fake-gcs:4443/", wantMode: ObjectStorageModeGCSEmulator, wantBase: "http://fake-gcs:4443"},
		{name: "emulator without host", mode: "gcs_emulator", wantErr: true},
		{name: "emulator relative host", mode: "gcs_emulator", emulator: "fake-gcs:4443", wantErr: true},
		{name: "unknown mode", mode: "local", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setBucketEnv(t)
			t.Setenv("OBJECT_STORAGE_MODE", tc.mode)
			t.Setenv("STORAGE_EMULATOR_HOST", tc.emulator)

			cfg, err := ResolveStorageConfigFromEnv()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ResolveStorageConfigFromEnv: expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveStorageConfigFromEnv: %v", err)
			}
			if cfg.Mode != tc.wantMode {
				t.Fatalf("mode: want=%q got=%q", tc.wantMode, cfg.Mode)
			}
			if cfg.PublicBaseURL != tc.wantBase {
				t.Fatalf("public base: want=%q got=%q", tc.wantBase, cfg.PublicBaseURL)
			}
		})
	}
}

func TestResolveStorageConfigMissingBucket(t *testing.T) {
	setBucketEnv(t)
	t.Setenv("OBJECT_STORAGE_MODE", "gcs")
	t.Setenv("STORAGE_EMULATOR_HOST", "")
	t.Setenv("IMAGE_GCS_BUCKET_NAME", "")

	if _, err := ResolveStorageConfigFromEnv(); err == nil {
		t.Fatalf("ResolveStorageConfigFromEnv: expected missing bucket error")
	}
}
