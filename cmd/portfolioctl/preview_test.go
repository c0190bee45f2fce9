package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/services"
)

const previewCatalog = `
colors:
  - name: ocean
    primary: "#1E88E5"
    secondary: "#FFFFFF"
    background: "#E3F2FD"
templates:
  - name: Classic
    sections:
      - name: Profile
        layout: profile_header_left
        blocks:
          - type: image
            content: {type: profile}
          - type: text
            content: {type: profile, title: About me}
  - name: Blank
`

func TestRenderPreview(t *testing.T) {
	c, err := services.ParseCatalog([]byte(previewCatalog))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}

	data, err := renderPreview(context.Background(), c, previewOptions{Template: "classic", Color: "Ocean", MaxWidth: 320})
	if err != nil {
		t.Fatalf("renderPreview: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if w := img.Bounds().Dx(); w > 320 {
		t.Fatalf("width: want<=320 got=%d", w)
	}

	cases := []struct {
		name string
		opts previewOptions
		want error
	}{
		{"unknown template", previewOptions{Template: "Nope"}, perrors.ErrNotFound},
		{"unknown color", previewOptions{Template: "Classic", Color: "lava"}, perrors.ErrNotFound},
		{"unknown font", previewOptions{Template: "Classic", Font: "serif"}, perrors.ErrNotFound},
		{"empty template", previewOptions{Template: "Blank"}, perrors.ErrEmptyComposition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := renderPreview(context.Background(), c, tc.opts)
			if !errors.Is(err, tc.want) {
				t.Fatalf("renderPreview: want %v got %v", tc.want, err)
			}
		})
	}
}
