package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/layout"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/render"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/theme"
)

const (
	canvasWidth      = 800
	canvasPadding    = 32
	titleHeight      = 56
	sectionHeader    = 36
	cardHeight       = 88
	cardGap          = 12
	maxBlocksPerSect = 3
	titleSize        = 24
	bodySize         = 14

	DefaultBackground = "#f0f0f0"
)

// Rasterizer draws a simplified thumbnail of a document in-process. Blocks
// are drawn as image or text glyphs; remote images are not fetched.
type Rasterizer struct {
	font     *truetype.Font
	maxWidth int
}

// NewRasterizer parses the bundled Go font. maxWidth caps the encoded
// thumbnail width; zero keeps the full scaled size.
func NewRasterizer(maxWidth int) (*Rasterizer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Rasterizer{font: f, maxWidth: maxWidth}, nil
}

func (r *Rasterizer) face(size, scale float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{
		Size:    size * scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

type plannedSection struct {
	title   string
	cells   []render.Cell
	columns int
}

func plan(doc render.Document) ([]plannedSection, int) {
	var out []plannedSection
	height := canvasPadding*2 + titleHeight
	for _, s := range doc.AllSections() {
		entries := s.Layout.Entries()
		if len(entries) > maxBlocksPerSect {
			entries = entries[:maxBlocksPerSect]
		}
		ps := plannedSection{title: s.Title, columns: 1}
		if s.Layout.Shape == layout.ShapeGrid {
			ps.columns = 2
		}
		for _, e := range entries {
			ps.cells = append(ps.cells, e.Item)
		}
		rows := (len(ps.cells) + ps.columns - 1) / ps.columns
		height += sectionHeader + rows*(cardHeight+cardGap)
		out = append(out, ps)
	}
	return out, height
}

func (r *Rasterizer) Capture(ctx context.Context, doc render.Document, opts Options) ([]byte, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	bg, ok := theme.NRGBA(opts.BackgroundColor)
	if !ok {
		bg, _ = theme.NRGBA(DefaultBackground)
	}
	primary, ok := theme.NRGBA(doc.Theme.PrimaryColor)
	if !ok {
		primary, _ = theme.NRGBA(theme.DefaultPrimaryColor)
	}
	badge, _ := theme.NRGBA(doc.Theme.BadgeColor())
	border, _ := theme.NRGBA(doc.Theme.BorderColor())

	sections, height := plan(doc)
	w, h := int(canvasWidth*scale), int(float64(height)*scale)
	dc := gg.NewContext(w, h)
	dc.Scale(scale, scale)

	dc.SetColor(bg)
	dc.DrawRectangle(0, 0, canvasWidth, float64(height))
	dc.Fill()

	titleFace := r.face(titleSize, scale)
	bodyFace := r.face(bodySize, scale)
	defer titleFace.Close()
	defer bodyFace.Close()

	inner := float64(canvasWidth - canvasPadding*2)
	y := float64(canvasPadding)

	dc.SetFontFace(titleFace)
	dc.SetColor(primary)
	drawText(dc, doc.Title, canvasPadding, y+titleHeight/2, inner, titleSize, scale)
	y += titleHeight

	for _, s := range sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dc.SetFontFace(bodyFace)
		dc.SetColor(primary)
		drawText(dc, s.title, canvasPadding, y+sectionHeader/2, inner, bodySize, scale)
		y += sectionHeader

		colW := (inner - float64(cardGap*(s.columns-1))) / float64(s.columns)
		for i, c := range s.cells {
			col, row := i%s.columns, i/s.columns
			x := float64(canvasPadding) + float64(col)*(colW+cardGap)
			cy := y + float64(row)*(cardHeight+cardGap)
			drawCard(dc, c, x, cy, colW, scale, badge, border)
		}
		rows := (len(s.cells) + s.columns - 1) / s.columns
		y += float64(rows * (cardHeight + cardGap))
	}

	return r.encode(dc.Image())
}

func drawCard(dc *gg.Context, c render.Cell, x, y, w, scale float64, badge, border color.NRGBA) {
	dc.SetColor(color.White)
	dc.DrawRoundedRectangle(x, y, w, cardHeight, 8)
	dc.FillPreserve()
	dc.SetColor(border)
	dc.SetLineWidth(1)
	dc.Stroke()

	glyph := float64(cardHeight - 24)
	gx, gy := x+12, y+12
	dc.SetColor(badge)
	switch {
	case c.Glyph == render.GlyphImage && c.Circular:
		dc.DrawCircle(gx+glyph/2, gy+glyph/2, glyph/2)
		dc.Fill()
	case c.Glyph == render.GlyphImage:
		dc.DrawRoundedRectangle(gx, gy, glyph, glyph, 6)
		dc.Fill()
		dc.SetColor(border)
		dc.MoveTo(gx+8, gy+glyph-8)
		dc.LineTo(gx+glyph/2, gy+glyph/3)
		dc.LineTo(gx+glyph-8, gy+glyph-8)
		dc.ClosePath()
		dc.Fill()
	default:
		for i := 0; i < 3; i++ {
			lw := glyph
			if i == 2 {
				lw = glyph * 0.6
			}
			dc.DrawRectangle(gx, gy+8+float64(i)*18, lw, 8)
		}
		dc.Fill()
	}

	label := cellLabel(c)
	if label == "" {
		return
	}
	tx := gx + glyph + 16
	dc.SetColor(border)
	drawText(dc, label, tx, y+cardHeight/2, x+w-tx-12, bodySize, scale)
}

// drawText writes s vertically centred on cy. Faces are sized in device
// pixels while coordinates are logical, so measurements are divided by scale.
func drawText(dc *gg.Context, s string, x, cy, maxW, size, scale float64) {
	s = fit(dc, printable(s), maxW*scale)
	if s == "" {
		return
	}
	dc.DrawString(s, x, cy+size*0.35)
}

func cellLabel(c render.Cell) string {
	if c.Item != nil {
		for _, s := range []string{c.Item.Name, c.Item.Title} {
			if strings.TrimSpace(s) != "" {
				return s
			}
		}
		return string(c.Item.Kind)
	}
	return c.BlockType
}

// printable drops symbols the bundled font cannot draw, emoji included.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF || unicode.Is(unicode.So, r) || unicode.Is(unicode.Cs, r) {
			return -1
		}
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, s)
}

func fit(dc *gg.Context, s string, maxW float64) string {
	if maxW <= 0 {
		return ""
	}
	if w, _ := dc.MeasureString(s); w <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		cand := strings.TrimSpace(string(runes)) + "..."
		if w, _ := dc.MeasureString(cand); w <= maxW {
			return cand
		}
	}
	return ""
}

func (r *Rasterizer) encode(img image.Image) ([]byte, error) {
	if r.maxWidth > 0 && img.Bounds().Dx() > r.maxWidth {
		img = imaging.Resize(img, r.maxWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
