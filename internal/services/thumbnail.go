package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/snapshot"
	"github.com/yungbote/portfolio-backend/internal/platform/ctxutil"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/gcp"
)

// NewThumbnailUploader stores captured PNGs in the thumbnail bucket under a
// versioned key so CDNs never serve a stale image.
func NewThumbnailUploader(bucket gcp.BucketService, prefix string) snapshot.Uploader {
	return snapshot.UploaderFunc(func(ctx context.Context, data []byte) (string, error) {
		key := fmt.Sprintf("%s/%s/%d.png", prefix, ctxutil.UserID(ctx), time.Now().UnixNano())
		if err := bucket.UploadFile(dbctx.Context{Ctx: ctx}, gcp.BucketCategoryThumbnail, key, bytes.NewReader(data), "image/png"); err != nil {
			return "", fmt.Errorf("upload thumbnail: %w", err)
		}
		return bucket.GetPublicURL(gcp.BucketCategoryThumbnail, key), nil
	})
}
