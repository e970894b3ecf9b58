package element

import (
	"strings"

	"rbg/common"
	"rbg/eval"
	"rbg/layout"
)

// Text is a positioned text box. The content may contain ${...} placeholders
// expanded against the report parameters. A growing text box extends past its
// designed height when the wrapped content needs more room and may split
// across pages at line granularity; a fixed one always keeps its designed box.
type Text struct {
	base
	content    string
	growHeight bool
	style      Style

	text  string   // content after placeholder expansion
	lines []string // wrapped lines, document output only
	next  int      // index of the next line to emit
}

func (e *Text) Prepare(ctx *eval.Context, doc layout.DocWriter, verifyOnly bool) error {
	e.text = e.content
	if ctx != nil {
		s, err := ctx.Substitute(e.content)
		if err != nil {
			return err
		}
		e.text = s
	}
	if doc != nil {
		e.lines = wrapText(e.text, e.width, e.style.Text, doc)
	}
	e.next = 0
	e.ResetRenderState()
	return nil
}

func (e *Text) ResetRenderState() {
	e.base.ResetRenderState()
	e.next = 0
}

func (e *Text) totalHeight() float64 {
	h := e.height
	if e.growHeight {
		if th := float64(len(e.lines)) * e.style.Text.Leading(); th > h {
			h = th
		}
	}
	return h
}

func (e *Text) NextRenderFragment(offsetY, containerHeight float64, ctx *eval.Context, doc layout.DocWriter) (layout.Fragment, bool, error) {
	avail := containerHeight - offsetY

	if e.firstRender {
		if total := e.totalHeight(); total <= avail {
			frag := &textFragment{
				x: e.x, y: offsetY, width: e.width, height: total,
				lines: e.lines, style: e.style,
			}
			e.firstRender = false
			e.complete = true
			e.next = len(e.lines)
			e.renderBottom = offsetY + total
			return frag, true, nil
		}
		if !e.growHeight || len(e.lines) == 0 {
			// fixed boxes never split, wait for a page with enough room
			return nil, false, nil
		}
	}

	// line-granular continuation of a growing box
	leading := e.style.Text.Leading()
	fit := int(avail / leading)
	if fit <= 0 {
		return nil, false, nil
	}
	remaining := len(e.lines) - e.next
	if fit > remaining {
		fit = remaining
	}
	frag := &textFragment{
		x: e.x, y: offsetY, width: e.width, height: float64(fit) * leading,
		lines: e.lines[e.next : e.next+fit], style: e.style,
	}
	e.firstRender = false
	e.next += fit
	e.complete = e.next == len(e.lines)
	e.renderBottom = offsetY + frag.height
	return frag, e.complete, nil
}

func (e *Text) RenderSpreadsheet(row, col int, ctx *eval.Context, sheet layout.SheetWriter) (int, int, error) {
	text := e.content
	if ctx != nil {
		s, err := ctx.Substitute(e.content)
		if err != nil {
			return row, col, err
		}
		text = s
	}
	sheet.SetCell(row, col, text)
	return row + 1, col + e.colspan(), nil
}

type textFragment struct {
	x, y, width, height float64
	lines               []string
	style               Style
}

func (f *textFragment) RenderBottom() float64 { return f.y + f.height }

func (f *textFragment) RenderDocument(offsetX, offsetY float64, doc layout.DocWriter) error {
	x, y := offsetX+f.x, offsetY+f.y
	if f.style.Background != nil {
		doc.FillRect(x, y, f.width, f.height, f.style.Background)
	}

	leading := f.style.Text.Leading()
	textHeight := float64(len(f.lines)) * leading
	ty := y
	switch f.style.VAlign {
	case common.VAlignMiddle:
		if d := (f.height - textHeight) / 2; d > 0 {
			ty += d
		}
	case common.VAlignBottom:
		if d := f.height - textHeight; d > 0 {
			ty += d
		}
	}
	for _, line := range f.lines {
		lx := x
		switch f.style.HAlign {
		case common.HAlignCenter:
			lx += (f.width - doc.MeasureString(line, f.style.Text)) / 2
		case common.HAlignRight:
			lx += f.width - doc.MeasureString(line, f.style.Text)
		}
		doc.Text(lx, ty, line, f.style.Text)
		ty += leading
	}

	if f.style.BorderWidth > 0 {
		doc.StrokeRect(x, y, f.width, f.height, f.style.BorderWidth, f.style.BorderColor)
	}
	return nil
}

func (f *textFragment) Cleanup() {}

// wrapText splits s on newlines, then word-wraps every paragraph to maxWidth
// using the sink's font metrics. Words wider than the box get a line of their
// own rather than being broken mid-word.
func wrapText(s string, maxWidth float64, st layout.TextStyle, doc layout.DocWriter) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			joined := line + " " + word
			if doc.MeasureString(joined, st) <= maxWidth {
				line = joined
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}
