package element

import (
	"rbg/eval"
	"rbg/layout"
)

// Frame is a sub-region with its own flow of child elements. The frame box
// draws background and border; the children flow inside it with the same
// pagination rules as a band, so a frame whose content overruns the page
// continues on the next one.
type Frame struct {
	base
	style Style
	inner *layout.Container
}

// Inner exposes the child container for element registration.
func (e *Frame) Inner() *layout.Container { return e.inner }

func (e *Frame) Prepare(ctx *eval.Context, doc layout.DocWriter, verifyOnly bool) error {
	e.ResetRenderState()
	return e.inner.Prepare(ctx, doc, verifyOnly)
}

func (e *Frame) NextRenderFragment(offsetY, containerHeight float64, ctx *eval.Context, doc layout.DocWriter) (layout.Fragment, bool, error) {
	avail := containerHeight - offsetY
	if e.firstRender && e.height > avail && e.height <= containerHeight {
		// whole frame still fits on a fresh page, keep it in one piece
		return nil, false, nil
	}

	done, err := e.inner.CreateRenderElements(avail, ctx, doc)
	if err != nil {
		return nil, false, err
	}
	bottom := e.inner.RenderBottom()
	if bottom == 0 && !done {
		// nothing fit; drop the empty page prefix the pass queued
		if err := e.inner.RenderDocument(0, 0, doc, false); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	height := bottom
	if done && e.firstRender && height < e.height {
		height = e.height
	}
	frag := &frameFragment{
		x: e.x, y: offsetY, width: e.width, height: height,
		style: e.style, inner: e.inner,
	}
	e.firstRender = false
	e.complete = done
	e.renderBottom = offsetY + height
	return frag, done, nil
}

func (e *Frame) RenderSpreadsheet(row, col int, ctx *eval.Context, sheet layout.SheetWriter) (int, int, error) {
	return e.inner.RenderSpreadsheet(row, col, ctx, sheet)
}

func (e *Frame) Cleanup() { e.inner.Cleanup() }

type frameFragment struct {
	x, y, width, height float64
	style               Style
	inner               *layout.Container
}

func (f *frameFragment) RenderBottom() float64 { return f.y + f.height }

func (f *frameFragment) RenderDocument(offsetX, offsetY float64, doc layout.DocWriter) error {
	x, y := offsetX+f.x, offsetY+f.y
	if f.style.Background != nil {
		doc.FillRect(x, y, f.width, f.height, f.style.Background)
	}
	if err := f.inner.RenderDocument(x, y, doc, false); err != nil {
		return err
	}
	if f.style.BorderWidth > 0 {
		doc.StrokeRect(x, y, f.width, f.height, f.style.BorderWidth, f.style.BorderColor)
	}
	return nil
}

func (f *frameFragment) Cleanup() {}
