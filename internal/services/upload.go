package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/yungbote/portfolio-backend/internal/observability"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/platform/ctxutil"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/gcp"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

// MaxUploadDimension bounds the longer side of stored raster uploads.
const MaxUploadDimension = 2048

type UploadService interface {
	// Upload stores one image and returns its public URL. Non-image bytes are
	// rejected with ErrInvalidArgument.
	Upload(ctx context.Context, data []byte) (string, error)
	// UploadImages uploads in order and stops at the first failure. The URLs
	// uploaded before the failure are returned with the error.
	UploadImages(ctx context.Context, files [][]byte) ([]string, error)
}

type uploadService struct {
	log    *logger.Logger
	bucket gcp.BucketService
	maxDim int
}

func NewUploadService(baseLog *logger.Logger, bucket gcp.BucketService) UploadService {
	return &uploadService{
		log:    baseLog.With("service", "UploadService"),
		bucket: bucket,
		maxDim: MaxUploadDimension,
	}
}

func (s *uploadService) Upload(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("upload: empty file: %w", perrors.ErrInvalidArgument)
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return "", fmt.Errorf("upload: not an image: %w", perrors.ErrInvalidArgument)
	}

	body, ext, mime := s.downscale(data, kind.Extension, kind.MIME.Value)

	owner := ctxutil.UserID(ctx)
	key := fmt.Sprintf("uploads/%s/%d-%s.%s", owner, time.Now().UnixNano(), uuid.NewString()[:8], ext)
	err = s.bucket.UploadFile(dbctx.Context{Ctx: ctx}, gcp.BucketCategoryImage, key, bytes.NewReader(body), mime)
	observability.Current().ObserveUpload(err, len(body))
	if err != nil {
		s.log.Warn("Upload: bucket write failed", "key", key, "error", err)
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.bucket.GetPublicURL(gcp.BucketCategoryImage, key), nil
}

func (s *uploadService) UploadImages(ctx context.Context, files [][]byte) ([]string, error) {
	urls := make([]string, 0, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return urls, err
		}
		url, err := s.Upload(ctx, f)
		if err != nil {
			return urls, fmt.Errorf("file %d: %w", i, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// downscale shrinks oversized raster images. Anything that cannot be
// decoded (svg, ico) is stored as sent.
func (s *uploadService) downscale(data []byte, ext, mime string) ([]byte, string, string) {
	if ext != "jpg" && ext != "png" {
		return data, ext, mime
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || (cfg.Width <= s.maxDim && cfg.Height <= s.maxDim) {
		return data, ext, mime
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, ext, mime
	}
	img = imaging.Fit(img, s.maxDim, s.maxDim, imaging.Lanczos)

	format := imaging.PNG
	if ext == "jpg" {
		format = imaging.JPEG
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(90)); err != nil {
		s.log.Warn("downscale: encode failed, storing original", "error", err)
		return data, ext, mime
	}
	return buf.Bytes(), ext, mime
}
