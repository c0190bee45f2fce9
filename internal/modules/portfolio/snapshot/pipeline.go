package snapshot

import (
	"context"
	"fmt"

	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/render"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

const DefaultScale = 2.0

type Options struct {
	BackgroundColor string
	Scale           float64
}

// Capturer turns a composed document into an encoded bitmap.
type Capturer interface {
	Capture(ctx context.Context, doc render.Document, opts Options) ([]byte, error)
}

// Uploader stores a bitmap and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

type UploaderFunc func(ctx context.Context, data []byte) (string, error)

func (f UploaderFunc) Upload(ctx context.Context, data []byte) (string, error) { return f(ctx, data) }

// Pipeline captures and uploads. It never touches portfolio rows; the
// caller decides whether to record the URL.
type Pipeline struct {
	capturer Capturer
	uploader Uploader
	scale    float64
}

func NewPipeline(capturer Capturer, uploader Uploader) *Pipeline {
	return &Pipeline{capturer: capturer, uploader: uploader, scale: DefaultScale}
}

func (p *Pipeline) WithScale(scale float64) *Pipeline {
	if scale > 0 {
		p.scale = scale
	}
	return p
}

func (p *Pipeline) Capture(ctx context.Context, doc render.Document) (string, error) {
	if doc.VisibleBlocks() == 0 {
		return "", fmt.Errorf("capture %q: %w", doc.Title, perrors.ErrEmptyComposition)
	}
	img, err := p.capturer.Capture(ctx, doc, Options{BackgroundColor: doc.Theme.BackgroundColor, Scale: p.scale})
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	url, err := p.uploader.Upload(ctx, img)
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	return url, nil
}
