package element

import (
	"image/color"

	"rbg/eval"
	"rbg/layout"
)

// Line is a horizontal rule filling the element box. It never splits.
type Line struct {
	base
	color color.Color
}

func (e *Line) Prepare(ctx *eval.Context, doc layout.DocWriter, verifyOnly bool) error {
	e.ResetRenderState()
	return nil
}

func (e *Line) NextRenderFragment(offsetY, containerHeight float64, ctx *eval.Context, doc layout.DocWriter) (layout.Fragment, bool, error) {
	if e.height > containerHeight-offsetY {
		return nil, false, nil
	}
	frag := &lineFragment{x: e.x, y: offsetY, width: e.width, height: e.height, color: e.color}
	e.firstRender = false
	e.complete = true
	e.renderBottom = offsetY + e.height
	return frag, true, nil
}

func (e *Line) RenderSpreadsheet(row, col int, ctx *eval.Context, sheet layout.SheetWriter) (int, int, error) {
	// pure decoration, occupies no cells
	return row, col, nil
}

type lineFragment struct {
	x, y, width, height float64
	color               color.Color
}

func (f *lineFragment) RenderBottom() float64 { return f.y + f.height }

func (f *lineFragment) RenderDocument(offsetX, offsetY float64, doc layout.DocWriter) error {
	x, y := offsetX+f.x, offsetY+f.y
	mid := y + f.height/2
	doc.Line(x, mid, x+f.width, mid, f.height, f.color)
	return nil
}

func (f *lineFragment) Cleanup() {}

// Rect is a filled and/or stroked rectangle. It never splits.
type Rect struct {
	base
	style Style
}

func (e *Rect) Prepare(ctx *eval.Context, doc layout.DocWriter, verifyOnly bool) error {
	e.ResetRenderState()
	return nil
}

func (e *Rect) NextRenderFragment(offsetY, containerHeight float64, ctx *eval.Context, doc layout.DocWriter) (layout.Fragment, bool, error) {
	if e.height > containerHeight-offsetY {
		return nil, false, nil
	}
	frag := &rectFragment{x: e.x, y: offsetY, width: e.width, height: e.height, style: e.style}
	e.firstRender = false
	e.complete = true
	e.renderBottom = offsetY + e.height
	return frag, true, nil
}

func (e *Rect) RenderSpreadsheet(row, col int, ctx *eval.Context, sheet layout.SheetWriter) (int, int, error) {
	return row, col, nil
}

type rectFragment struct {
	x, y, width, height float64
	style               Style
}

func (f *rectFragment) RenderBottom() float64 { return f.y + f.height }

func (f *rectFragment) RenderDocument(offsetX, offsetY float64, doc layout.DocWriter) error {
	x, y := offsetX+f.x, offsetY+f.y
	if f.style.Background != nil {
		doc.FillRect(x, y, f.width, f.height, f.style.Background)
	}
	if f.style.BorderWidth > 0 {
		doc.StrokeRect(x, y, f.width, f.height, f.style.BorderWidth, f.style.BorderColor)
	}
	return nil
}

func (f *rectFragment) Cleanup() {}
