package layout

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"rbg/common"
	"rbg/eval"
)

// ErrNoProgress reports a flow pass that could not place anything on a fresh
// page: some pending element can never fit within the container height.
var ErrNoProgress = errors.New("layout: container cannot make progress")

// PageGeometry describes the page box a band derives its bounds from. All
// values are points.
type PageGeometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginLeft   float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	// ContentHeight is the page height minus margins and enabled bands.
	ContentHeight float64
	HeaderSize    float64
	FooterSize    float64
	Header        bool
	Footer        bool
}

// Container owns the elements assigned to one rectangular region and flows
// them across output pages. A container is created once per report render;
// Prepare runs once before any output pass, CreateRenderElements once per
// page until it reports the container drained, and RenderDocument /
// RenderSpreadsheet consume what those passes queued up.
type Container struct {
	id     string
	Width  float64
	Height float64

	band   common.BandType
	isBand bool
	geom   PageGeometry

	// false for header/footer bands - they must render identically, in
	// full, on every page
	allowPageBreak bool

	// elements is the owning arena, insertion order. pred/succ are chaining
	// links kept as slot indices into it, never element aliases.
	elements []Element
	pred     []int
	succ     [][]int

	// sorted is the pending queue of arena slots, re-derived by Prepare.
	sorted []int
	// renderQueue holds fragments for the current page, possibly terminated
	// by a page break marker.
	renderQueue []Fragment

	explicitPageBreak bool
	pageY             float64

	log *zap.Logger
}

func newContainer(id string, log *zap.Logger) *Container {
	if log == nil {
		log = zap.NewNop()
	}
	return &Container{
		id:                id,
		allowPageBreak:    true,
		explicitPageBreak: true,
		log:               log.Named("layout"),
	}
}

// NewFrame creates an embeddable sub-region with externally supplied bounds.
func NewFrame(id string, width, height float64, log *zap.Logger) *Container {
	c := newContainer(id, log)
	c.Width, c.Height = width, height
	return c
}

// NewBand creates a page band container deriving its bounds and page break
// policy from page geometry and band kind.
func NewBand(band common.BandType, id string, geom PageGeometry, log *zap.Logger) *Container {
	c := newContainer(id, log)
	c.band, c.isBand, c.geom = band, true, geom
	c.Width = geom.PageWidth - geom.MarginLeft - geom.MarginRight
	switch band {
	case common.BandTypeContent:
		c.Height = geom.ContentHeight
	case common.BandTypeHeader:
		c.allowPageBreak = false
		c.Height = geom.HeaderSize
	case common.BandTypeFooter:
		c.allowPageBreak = false
		c.Height = geom.FooterSize
	}
	return c
}

func (c *Container) ID() string            { return c.id }
func (c *Container) Band() common.BandType { return c.band }
func (c *Container) AllowPageBreak() bool  { return c.allowPageBreak }

// Add hands the element over to the container. Elements are placed in
// submission order when their Y and tie-break keys are equal.
func (c *Container) Add(elem Element) {
	c.elements = append(c.elements, elem)
	c.pred = append(c.pred, -1)
	c.succ = append(c.succ, nil)
}

// Visible reports whether the container takes part in output at all.
// Header/footer bands are toggled by the page-level enable flags.
func (c *Container) Visible() bool {
	if !c.isBand {
		return true
	}
	switch c.band {
	case common.BandTypeHeader:
		return c.geom.Header
	case common.BandTypeFooter:
		return c.geom.Footer
	}
	return true
}

func (c *Container) setPredecessor(slot, pred int) {
	c.pred[slot] = pred
	c.succ[pred] = append(c.succ[pred], slot)
}

// Prepare sizes the surviving elements and derives the pending queue ordered
// for the requested output mode: (y, sort order) for document output,
// (y, x) for spreadsheet output. For document output it also computes every
// element's nearest predecessor - the element directly above whose actual
// rendered bottom the dependent will be re-anchored to.
func (c *Container) Prepare(ctx *eval.Context, doc DocWriter, verifyOnly bool) error {
	c.sorted = c.sorted[:0]
	for slot, elem := range c.elements {
		c.pred[slot] = -1
		c.succ[slot] = nil
		if doc == nil && elem.SpreadsheetHidden() && !verifyOnly {
			continue
		}
		if err := elem.Prepare(ctx, doc, verifyOnly); err != nil {
			return fmt.Errorf("container %s: prepare element %d: %w", c.id, elem.ID(), err)
		}
		if !c.allowPageBreak {
			// make sure element can be rendered multiple times (for header/footer)
			elem.ResetRenderState()
		}
		c.sorted = append(c.sorted, slot)
	}

	if doc != nil {
		slices.SortStableFunc(c.sorted, func(a, b int) int {
			ea, eb := c.elements[a], c.elements[b]
			if d := cmp.Compare(ea.Y(), eb.Y()); d != 0 {
				return d
			}
			return cmp.Compare(ea.SortOrder(), eb.SortOrder())
		})
		// predecessors are only needed when rendering a paginated document
		for i, slot := range c.sorted {
			elem := c.elements[slot]
			pred := -1
			for j := i - 1; j >= 0; j-- {
				s2 := c.sorted[j]
				e2 := c.elements[s2]
				if e2.Bottom() <= elem.Y() && (pred < 0 || e2.Bottom() > c.elements[pred].Bottom()) {
					pred = s2
				}
			}
			if pred >= 0 {
				if _, ok := c.elements[pred].(*PageBreak); !ok {
					c.setPredecessor(slot, pred)
				}
			}
		}
		c.renderQueue = c.renderQueue[:0]
	} else {
		slices.SortStableFunc(c.sorted, func(a, b int) int {
			ea, eb := c.elements[a], c.elements[b]
			if d := cmp.Compare(ea.Y(), eb.Y()); d != 0 {
				return d
			}
			return cmp.Compare(ea.X(), eb.X())
		})
	}
	return nil
}

// CreateRenderElements drains as much of the pending queue as fits into
// containerHeight, appending fragments to the render queue. It returns true
// once the container has no pending elements left.
//
// A single pass stops early on any page boundary event: a dependent element
// whose predecessor has not finished, a consumed manual page break, or an
// element that no longer fits.
func (c *Container) CreateRenderElements(containerHeight float64, ctx *eval.Context, doc DocWriter) (bool, error) {
	var (
		i                    int
		newPage              bool
		emitted              bool
		setExplicitPageBreak bool
	)
	completed := make(map[int]bool)
	prevExplicit := c.explicitPageBreak

	for !newPage && i < len(c.sorted) {
		slot := c.sorted[i]
		elem := c.elements[slot]

		if p := c.pred[slot]; p >= 0 && (!completed[p] || !c.elements[p].RenderingComplete()) {
			// predecessor is not completed yet -> start new page; a dependent
			// element never starts before its predecessor has finished
			newPage = true
			break
		}

		deleted := false
		if pb, ok := elem.(*PageBreak); ok {
			if c.allowPageBreak {
				c.sorted = slices.Delete(c.sorted, i, i+1)
				deleted = true
				newPage = true
				setExplicitPageBreak = true
				c.pageY = pb.Y()
			} else {
				// a manual break cannot be honored inside a fixed band:
				// discard everything and report the container drained
				c.log.Warn("Manual page break inside fixed band, dropping pending elements",
					zap.String("container", c.id), zap.Int("pending", len(c.sorted)))
				c.sorted = c.sorted[:0]
				return true, nil
			}
		} else {
			var offsetY float64
			switch {
			case c.pred[slot] >= 0:
				// element is on the same page as its predecessor, so the
				// offset is relative to where the predecessor actually ended
				p := c.elements[c.pred[slot]]
				offsetY = p.RenderBottom() + (elem.Y() - p.Bottom())
			case c.allowPageBreak:
				if elem.FirstRender() && c.explicitPageBreak {
					offsetY = elem.Y() - c.pageY
				}
			default:
				offsetY = elem.Y()
			}

			complete := false
			printed, err := elem.IsPrinted(ctx)
			if err != nil {
				return false, fmt.Errorf("container %s: element %d print condition: %w", c.id, elem.ID(), err)
			}
			if printed {
				if offsetY >= containerHeight {
					newPage = true
				}
				if !newPage {
					frag, done, err := elem.NextRenderFragment(offsetY, containerHeight, ctx, doc)
					if err != nil {
						return false, fmt.Errorf("container %s: element %d render: %w", c.id, elem.ID(), err)
					}
					if frag != nil {
						c.renderQueue = append(c.renderQueue, frag)
						emitted = true
					}
					complete = done
				}
			} else {
				elem.FinishEmpty(offsetY)
				complete = true
			}
			if complete {
				completed[slot] = true
				c.sorted = slices.Delete(c.sorted, i, i+1)
				deleted = true
			}
		}
		if !deleted {
			i++
		}
	}

	// after a manual page break the elements on the next page are positioned
	// relative to the break origin; fixed bands begin fresh every page
	if c.allowPageBreak {
		c.explicitPageBreak = setExplicitPageBreak
	} else {
		c.explicitPageBreak = true
	}

	if len(c.sorted) > 0 {
		c.renderQueue = append(c.renderQueue, pageBreakMarker{})
		// successors must not treat an element as still blocking once it has
		// either been placed or itself deferred past the page boundary
		for slot := range completed {
			for _, s := range c.succ[slot] {
				if c.pred[s] == slot {
					c.pred[s] = -1
				}
			}
		}
		if !emitted && len(completed) == 0 && !setExplicitPageBreak && !prevExplicit {
			return false, fmt.Errorf("%w: container %s, %d pending, height %g",
				ErrNoProgress, c.id, len(c.sorted), containerHeight)
		}
	}

	c.log.Debug("Flow pass finished",
		zap.String("container", c.id),
		zap.Int("queued", len(c.renderQueue)),
		zap.Int("completed", len(completed)),
		zap.Int("pending", len(c.sorted)))
	return len(c.sorted) == 0, nil
}

// RenderDocument emits the queued fragments of the current page at the given
// container offset and consumes them, sentinel included. Fragments past the
// sentinel belong to the next page and stay queued.
func (c *Container) RenderDocument(offsetX, offsetY float64, doc DocWriter, cleanup bool) error {
	consumed := 0
	for _, frag := range c.renderQueue {
		consumed++
		if _, ok := frag.(pageBreakMarker); ok {
			break
		}
		if err := frag.RenderDocument(offsetX, offsetY, doc); err != nil {
			return fmt.Errorf("container %s: %w", c.id, err)
		}
		if cleanup {
			frag.Cleanup()
		}
	}
	c.renderQueue = slices.Delete(c.renderQueue, 0, consumed)
	return nil
}

// RenderSpreadsheet walks the pending queue once, clustering elements that
// share a top coordinate into one logical row. It returns the next free row
// and the maximum column used across the whole container.
func (c *Container) RenderSpreadsheet(row, col int, ctx *eval.Context, sheet SheetWriter) (int, int, error) {
	maxCol := col
	i := 0
	count := len(c.sorted)
	for i < count {
		elem := c.elements[c.sorted[i]]
		rowElements := []Element{elem}
		j := i + 1
		for j < count {
			e2 := c.elements[c.sorted[j]]
			if e2.Y() != elem.Y() {
				break
			}
			rowElements = append(rowElements, e2)
			j++
		}
		i = j
		currentRow, currentCol := row, col
		for _, re := range rowElements {
			tmpRow, nextCol, err := re.RenderSpreadsheet(currentRow, currentCol, ctx, sheet)
			if err != nil {
				return row, maxCol, fmt.Errorf("container %s: element %d: %w", c.id, re.ID(), err)
			}
			if tmpRow > row {
				row = tmpRow
			}
			currentCol = nextCol
			if currentCol > maxCol {
				maxCol = currentCol
			}
		}
	}
	return row, maxCol, nil
}

// RenderBottom returns the bottom edge of the last queued fragment, 0 when
// nothing is queued.
func (c *Container) RenderBottom() float64 {
	for i := len(c.renderQueue) - 1; i >= 0; i-- {
		if _, ok := c.renderQueue[i].(pageBreakMarker); ok {
			continue
		}
		return c.renderQueue[i].RenderBottom()
	}
	return 0
}

// Finished reports whether every queued fragment has been emitted.
func (c *Container) Finished() bool {
	return len(c.renderQueue) == 0
}

func (c *Container) Cleanup() {
	for _, elem := range c.elements {
		elem.Cleanup()
	}
}
