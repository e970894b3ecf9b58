// Package render draws layout output onto raster pages. One PageWriter
// instance accumulates the pages of a single report; coordinates coming from
// the layout core are points and get scaled to pixels by the configured DPI.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"rbg/layout"
)

// PageWriter implements layout.DocWriter on top of a gg raster context per
// page. Not safe for concurrent use.
type PageWriter struct {
	geom  layout.PageGeometry
	scale float64 // pixels per point

	font  *truetype.Font // nil falls back to the builtin bitmap face
	faces map[float64]font.Face

	pages []*gg.Context
	cur   *gg.Context

	log *zap.Logger
}

// NewPageWriter creates a writer for the given page geometry. fontPath may be
// empty; the builtin bitmap face is used then, which keeps unit tests and
// minimal deployments free of font assets.
func NewPageWriter(geom layout.PageGeometry, dpi float64, fontPath string, log *zap.Logger) (*PageWriter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dpi <= 0 {
		dpi = 72
	}
	p := &PageWriter{
		geom:  geom,
		scale: dpi / 72.0,
		faces: make(map[float64]font.Face),
		log:   log.Named("render"),
	}
	if fontPath != "" {
		data, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read font: %w", err)
		}
		p.font, err = truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("unable to parse font %s: %w", fontPath, err)
		}
	}
	return p, nil
}

// AddPage starts a fresh page; all subsequent draw calls target it.
func (p *PageWriter) AddPage() {
	w := int(p.geom.PageWidth*p.scale + 0.5)
	h := int(p.geom.PageHeight*p.scale + 0.5)
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	p.pages = append(p.pages, dc)
	p.cur = dc
}

func (p *PageWriter) PageCount() int { return len(p.pages) }

// Page returns the rendered raster of page i.
func (p *PageWriter) Page(i int) image.Image { return p.pages[i].Image() }

func (p *PageWriter) face(size float64) font.Face {
	if p.font == nil {
		return basicfont.Face7x13
	}
	if f, ok := p.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(p.font, &truetype.Options{Size: size * p.scale})
	p.faces[size] = f
	return f
}

func solid(c color.Color) color.Color {
	if c == nil {
		return color.Black
	}
	return c
}

func (p *PageWriter) FillRect(x, y, width, height float64, c color.Color) {
	p.cur.SetColor(solid(c))
	p.cur.DrawRectangle(x*p.scale, y*p.scale, width*p.scale, height*p.scale)
	p.cur.Fill()
}

func (p *PageWriter) StrokeRect(x, y, width, height, lineWidth float64, c color.Color) {
	p.cur.SetColor(solid(c))
	p.cur.SetLineWidth(lineWidth * p.scale)
	p.cur.DrawRectangle(x*p.scale, y*p.scale, width*p.scale, height*p.scale)
	p.cur.Stroke()
}

func (p *PageWriter) Line(x1, y1, x2, y2, width float64, c color.Color) {
	p.cur.SetColor(solid(c))
	p.cur.SetLineWidth(width * p.scale)
	p.cur.DrawLine(x1*p.scale, y1*p.scale, x2*p.scale, y2*p.scale)
	p.cur.Stroke()
}

// Text draws s anchored at the top of its line box, the convention of the
// layout core. The baseline offset is the face ascent.
func (p *PageWriter) Text(x, y float64, s string, st layout.TextStyle) {
	face := p.face(st.Size)
	p.cur.SetFontFace(face)
	p.cur.SetColor(solid(st.Color))
	ascent := float64(face.Metrics().Ascent) / 64.0
	p.cur.DrawString(s, x*p.scale, y*p.scale+ascent)
}

func (p *PageWriter) Image(x, y, width, height float64, img image.Image) {
	w := int(width*p.scale + 0.5)
	h := int(height*p.scale + 0.5)
	if w <= 0 || h <= 0 {
		return
	}
	b := img.Bounds()
	if b.Dx() != w || b.Dy() != h {
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}
	p.cur.DrawImage(img, int(x*p.scale+0.5), int(y*p.scale+0.5))
}

// MeasureString returns the advance of s in points. It works before the first
// page exists so elements can size themselves during Prepare.
func (p *PageWriter) MeasureString(s string, st layout.TextStyle) float64 {
	adv := font.MeasureString(p.face(st.Size), s)
	return float64(adv) / 64.0 / p.scale
}

// EncodePage writes page i as PNG.
func (p *PageWriter) EncodePage(i int, w io.Writer) error {
	if err := png.Encode(w, p.pages[i].Image()); err != nil {
		return fmt.Errorf("unable to encode page %d: %w", i+1, err)
	}
	return nil
}

// SavePages writes every page as a PNG file. pattern must contain a single
// %d verb which receives the 1-based page number.
func (p *PageWriter) SavePages(pattern string) error {
	if !strings.Contains(pattern, "%d") {
		return fmt.Errorf("page pattern %q has no %%d verb", pattern)
	}
	for i := range p.pages {
		name := fmt.Sprintf(pattern, i+1)
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("unable to create %s: %w", name, err)
		}
		if err := p.EncodePage(i, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("unable to finish %s: %w", name, err)
		}
		p.log.Debug("Page written", zap.String("file", name))
	}
	return nil
}
