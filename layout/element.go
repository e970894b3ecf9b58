// Package layout is the page/region flow core: it decides, element by
// element, what fits on the current page, what continues on a subsequent one
// and what ordering constraints hold between vertically chained elements.
// Rendering of an individual element and the encoding of the output belong to
// collaborators behind the DocWriter/SheetWriter interfaces.
package layout

import (
	"image"
	"image/color"

	"rbg/eval"
)

// Element is the contract between the flow engine and anything it places.
// Positions are in points, relative to the owning container.
type Element interface {
	// identity and designed geometry
	ID() int
	X() float64
	Y() float64
	Width() float64
	Height() float64
	// Bottom is the designed bottom edge (Y + Height). The actually rendered
	// bottom may differ once dynamic content and pagination kick in.
	Bottom() float64
	// SortOrder breaks ties between elements sharing the same Y - stable
	// submission order.
	SortOrder() int

	// Prepare lets the element compute its own layout/size. doc is nil for
	// spreadsheet output; verifyOnly requests a pure verification pass.
	Prepare(ctx *eval.Context, doc DocWriter, verifyOnly bool) error
	// IsPrinted evaluates the element's print condition.
	IsPrinted(ctx *eval.Context) (bool, error)

	// render continuation state
	FirstRender() bool
	RenderingComplete() bool
	// ResetRenderState forces a fresh, repeatable render state so the element
	// can be drawn unchanged on every page (header/footer bands).
	ResetRenderState()
	// RenderBottom is the bottom edge the last produced fragment ended at,
	// relative to the container of the page it rendered on.
	RenderBottom() float64

	// NextRenderFragment produces a render fragment starting at offsetY and
	// bounded by containerHeight. A nil fragment with complete == false means
	// the element does not fit and defers to the next page.
	NextRenderFragment(offsetY, containerHeight float64, ctx *eval.Context, doc DocWriter) (Fragment, bool, error)
	// FinishEmpty marks a conditionally suppressed element complete with a
	// zero footprint at the given offset.
	FinishEmpty(offsetY float64)

	// spreadsheet output
	SpreadsheetHidden() bool
	RenderSpreadsheet(row, col int, ctx *eval.Context, sheet SheetWriter) (int, int, error)

	Cleanup()
}

// Fragment is a partial or complete visual rendering of one element, bounded
// to fit the remaining page height.
type Fragment interface {
	// RenderBottom is the container-relative bottom edge of the fragment.
	RenderBottom() float64
	// RenderDocument draws the fragment onto doc at the given page offset of
	// the owning container.
	RenderDocument(offsetX, offsetY float64, doc DocWriter) error
	Cleanup()
}

// TextStyle describes how the document sink should draw a string.
type TextStyle struct {
	Size       float64
	Bold       bool
	Italic     bool
	Color      color.Color
	LineHeight float64 // multiplier of Size; <= 0 means 1
}

// Leading returns the vertical advance of one line box.
func (st TextStyle) Leading() float64 {
	lh := st.LineHeight
	if lh <= 0 {
		lh = 1
	}
	return st.Size * lh
}

// DocWriter is the page-oriented document sink. Coordinates are points on the
// current page; y grows downwards and text is anchored at the top of its line
// box.
type DocWriter interface {
	FillRect(x, y, width, height float64, c color.Color)
	StrokeRect(x, y, width, height, lineWidth float64, c color.Color)
	Line(x1, y1, x2, y2, width float64, c color.Color)
	Text(x, y float64, s string, st TextStyle)
	Image(x, y, width, height float64, img image.Image)
	MeasureString(s string, st TextStyle) float64
}

// SheetWriter is the row/column spreadsheet sink.
type SheetWriter interface {
	SetCell(row, col int, value any)
}
