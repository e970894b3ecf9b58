package element

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"go.uber.org/zap"

	"rbg/common"
	"rbg/eval"
	"rbg/layout"
	"rbg/utils/images"
)

var placeholderColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// Image places a raster or SVG image in a fixed box. The source is a file
// path, a data URL or a ${...} placeholder resolving to either. Images never
// split: when the box does not fit the remaining page it moves whole to the
// next one.
type Image struct {
	base
	source    string
	fit       common.ImageFit
	style     Style
	useBroken bool
	log       *zap.Logger

	img image.Image // nil when the source failed and useBroken is set
}

func (e *Image) Prepare(ctx *eval.Context, doc layout.DocWriter, verifyOnly bool) error {
	e.img = nil
	e.ResetRenderState()
	if doc == nil && !verifyOnly {
		return nil
	}

	data, err := e.loadSource(ctx)
	if err == nil && len(data) > 0 {
		var img image.Image
		img, err = images.Decode(data)
		if err == nil {
			e.img = images.Sized(img, int(e.width), int(e.height), e.fit)
		}
	}
	if err != nil {
		if !e.useBroken {
			return fmt.Errorf("image %d: %w", e.id, err)
		}
		e.log.Warn("Unable to load image, using placeholder",
			zap.Int("id", e.id), zap.Error(err))
	}
	return nil
}

func (e *Image) loadSource(ctx *eval.Context) ([]byte, error) {
	src := e.source
	if ctx != nil {
		s, err := ctx.Substitute(src)
		if err != nil {
			return nil, err
		}
		src = s
	}
	if src == "" {
		return nil, fmt.Errorf("empty image source")
	}
	if strings.HasPrefix(src, "data:") {
		comma := strings.IndexByte(src, ',')
		if comma < 0 {
			return nil, fmt.Errorf("malformed data URL")
		}
		data, err := base64.StdEncoding.DecodeString(src[comma+1:])
		if err != nil {
			return nil, fmt.Errorf("malformed data URL: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("unable to read image source: %w", err)
	}
	return data, nil
}

func (e *Image) NextRenderFragment(offsetY, containerHeight float64, ctx *eval.Context, doc layout.DocWriter) (layout.Fragment, bool, error) {
	if e.height > containerHeight-offsetY {
		return nil, false, nil
	}
	frag := &imageFragment{
		x: e.x, y: offsetY, width: e.width, height: e.height,
		img: e.img, style: e.style,
	}
	e.firstRender = false
	e.complete = true
	e.renderBottom = offsetY + e.height
	return frag, true, nil
}

func (e *Image) RenderSpreadsheet(row, col int, ctx *eval.Context, sheet layout.SheetWriter) (int, int, error) {
	// spreadsheets carry the source reference, not pixels
	src := e.source
	if ctx != nil {
		s, err := ctx.Substitute(src)
		if err != nil {
			return row, col, err
		}
		src = s
	}
	if strings.HasPrefix(src, "data:") {
		src = "image"
	}
	sheet.SetCell(row, col, src)
	return row + 1, col + e.colspan(), nil
}

type imageFragment struct {
	x, y, width, height float64
	img                 image.Image
	style               Style
}

func (f *imageFragment) RenderBottom() float64 { return f.y + f.height }

func (f *imageFragment) RenderDocument(offsetX, offsetY float64, doc layout.DocWriter) error {
	x, y := offsetX+f.x, offsetY+f.y
	if f.style.Background != nil {
		doc.FillRect(x, y, f.width, f.height, f.style.Background)
	}
	if f.img != nil {
		b := f.img.Bounds()
		w, h := float64(b.Dx()), float64(b.Dy())
		if w > f.width {
			w = f.width
		}
		if h > f.height {
			h = f.height
		}
		ix := x
		switch f.style.HAlign {
		case common.HAlignCenter:
			ix += (f.width - w) / 2
		case common.HAlignRight:
			ix += f.width - w
		}
		iy := y
		switch f.style.VAlign {
		case common.VAlignMiddle:
			iy += (f.height - h) / 2
		case common.VAlignBottom:
			iy += f.height - h
		}
		doc.Image(ix, iy, w, h, f.img)
	} else {
		// broken image placeholder: crossed box
		doc.StrokeRect(x, y, f.width, f.height, 0.5, placeholderColor)
		doc.Line(x, y, x+f.width, y+f.height, 0.5, placeholderColor)
		doc.Line(x+f.width, y, x, y+f.height, 0.5, placeholderColor)
	}
	if f.style.BorderWidth > 0 {
		doc.StrokeRect(x, y, f.width, f.height, f.style.BorderWidth, f.style.BorderColor)
	}
	return nil
}

func (f *imageFragment) Cleanup() { f.img = nil }

func (e *Image) Cleanup() { e.img = nil }
