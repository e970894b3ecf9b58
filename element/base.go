package element

import (
	"go.uber.org/zap"

	"rbg/common"
	"rbg/eval"
)

// Options carries the document-level defaults element construction needs:
// font metrics for text sizing and image handling policy.
type Options struct {
	FontSize   float64
	LineHeight float64
	// ImageFit applies when an image element does not specify its own fit.
	ImageFit common.ImageFit
	// UseBrokenImage renders a placeholder instead of failing the report when
	// an image source cannot be loaded.
	UseBrokenImage bool
	Log            *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

// base carries identity, designed geometry and render continuation state
// shared by every element kind.
type base struct {
	id        int
	x, y      float64
	width     float64
	height    float64
	sortOrder int
	printIf   string

	firstRender  bool
	complete     bool
	renderBottom float64

	spreadsheetHide    bool
	spreadsheetColspan int
}

func (b *base) ID() int           { return b.id }
func (b *base) X() float64        { return b.x }
func (b *base) Y() float64        { return b.y }
func (b *base) Width() float64    { return b.width }
func (b *base) Height() float64   { return b.height }
func (b *base) Bottom() float64   { return b.y + b.height }
func (b *base) SortOrder() int    { return b.sortOrder }
func (b *base) FirstRender() bool { return b.firstRender }
func (b *base) RenderingComplete() bool {
	return b.complete
}
func (b *base) RenderBottom() float64 { return b.renderBottom }

func (b *base) ResetRenderState() {
	b.firstRender = true
	b.complete = false
	b.renderBottom = 0
}

func (b *base) IsPrinted(ctx *eval.Context) (bool, error) {
	if b.printIf == "" || ctx == nil {
		return true, nil
	}
	return ctx.EvalBool(b.printIf)
}

func (b *base) FinishEmpty(offsetY float64) {
	b.firstRender = false
	b.complete = true
	b.renderBottom = offsetY
}

func (b *base) SpreadsheetHidden() bool { return b.spreadsheetHide }

func (b *base) colspan() int {
	if b.spreadsheetColspan > 1 {
		return b.spreadsheetColspan
	}
	return 1
}

func (b *base) Cleanup() {}
