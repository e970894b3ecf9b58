package layout

import "rbg/eval"

// PageBreak is the manual page break marker. It carries only a vertical
// origin: elements placed after the break are positioned relative to it.
type PageBreak struct {
	id        int
	y         float64
	sortOrder int
}

func NewPageBreak(id int, y float64, sortOrder int) *PageBreak {
	return &PageBreak{id: id, y: y, sortOrder: sortOrder}
}

func (p *PageBreak) ID() int                 { return p.id }
func (p *PageBreak) X() float64              { return 0 }
func (p *PageBreak) Y() float64              { return p.y }
func (p *PageBreak) Width() float64          { return 0 }
func (p *PageBreak) Height() float64         { return 0 }
func (p *PageBreak) Bottom() float64         { return p.y }
func (p *PageBreak) SortOrder() int          { return p.sortOrder }
func (p *PageBreak) FirstRender() bool       { return true }
func (p *PageBreak) RenderingComplete() bool { return false }
func (p *PageBreak) ResetRenderState()       {}
func (p *PageBreak) RenderBottom() float64   { return 0 }

func (p *PageBreak) Prepare(*eval.Context, DocWriter, bool) error { return nil }
func (p *PageBreak) IsPrinted(*eval.Context) (bool, error)        { return true, nil }

func (p *PageBreak) NextRenderFragment(float64, float64, *eval.Context, DocWriter) (Fragment, bool, error) {
	// the container consumes page breaks before asking for fragments
	return nil, false, nil
}

func (p *PageBreak) FinishEmpty(float64) {}

func (p *PageBreak) SpreadsheetHidden() bool { return true }

func (p *PageBreak) RenderSpreadsheet(row, col int, _ *eval.Context, _ SheetWriter) (int, int, error) {
	return row, col, nil
}

func (p *PageBreak) Cleanup() {}

// pageBreakMarker terminates the fragment queue of the current page. The
// reserved y of -1 only ever shows up in debug output.
type pageBreakMarker struct{}

func (pageBreakMarker) RenderBottom() float64                          { return -1 }
func (pageBreakMarker) RenderDocument(_, _ float64, _ DocWriter) error { return nil }
func (pageBreakMarker) Cleanup()                                       {}
