package main

import (
	"context"
	"fmt"
	"strings"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/snapshot"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/templating"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/theme"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type previewOptions struct {
	Template string
	Color    string
	Font     string
	MaxWidth int
}

// renderPreview rasterizes a catalog template. Blank theme names use the
// default render context.
func renderPreview(ctx context.Context, c *services.Catalog, opts previewOptions) ([]byte, error) {
	tpl, err := c.Template(opts.Template)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fmt.Errorf("template %q: %w", opts.Template, perrors.ErrNotFound)
	}

	var color *types.ColorTheme
	if opts.Color != "" {
		if color = findColor(c.Colors, opts.Color); color == nil {
			return nil, fmt.Errorf("color theme %q: %w", opts.Color, perrors.ErrNotFound)
		}
	}
	var font *types.FontTheme
	if opts.Font != "" {
		if font = findFont(c.Fonts, opts.Font); font == nil {
			return nil, fmt.Errorf("font theme %q: %w", opts.Font, perrors.ErrNotFound)
		}
	}

	doc := templating.Preview(tpl, theme.Activate(color, font))
	if doc.VisibleBlocks() == 0 {
		return nil, fmt.Errorf("template %q: %w", opts.Template, perrors.ErrEmptyComposition)
	}
	r, err := snapshot.NewRasterizer(opts.MaxWidth)
	if err != nil {
		return nil, err
	}
	return r.Capture(ctx, doc, snapshot.Options{
		BackgroundColor: doc.Theme.BackgroundColor,
		Scale:           snapshot.DefaultScale,
	})
}

func findColor(in []*types.ColorTheme, name string) *types.ColorTheme {
	for _, c := range in {
		if c != nil && strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

func findFont(in []*types.FontTheme, name string) *types.FontTheme {
	for _, f := range in {
		if f != nil && strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}
