package element

import (
	"fmt"
	"image/color"
	"strings"

	"rbg/common"
	"rbg/layout"
	"rbg/template"
)

// New builds a flow element from its template definition. Geometry is
// converted from template units to points; sortOrder preserves submission
// order for equal-Y tie breaking.
func New(def *template.DocElement, tpl *template.Template, opts Options, sortOrder int) (layout.Element, error) {
	pts := tpl.DocumentProperties.Points
	b := base{
		id:                 def.ID,
		x:                  pts(def.X),
		y:                  pts(def.Y),
		width:              pts(def.Width),
		height:             pts(def.Height),
		sortOrder:          sortOrder,
		printIf:            def.PrintIf,
		spreadsheetHide:    def.SpreadsheetHide,
		spreadsheetColspan: def.SpreadsheetColspan,
	}
	b.ResetRenderState()

	kind := strings.ToLower(def.Type)
	if kind == "page_break" {
		return layout.NewPageBreak(def.ID, pts(def.Y), sortOrder), nil
	}

	st, err := resolveStyle(def, tpl, opts)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "text":
		return &Text{base: b, content: def.Content, growHeight: def.GrowHeight, style: st}, nil

	case "image":
		fit := opts.ImageFit
		if def.Fit != "" {
			fit, err = common.ParseImageFit(def.Fit)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", def.ID, err)
			}
		}
		return &Image{
			base: b, source: def.Source, fit: fit, style: st,
			useBroken: opts.UseBrokenImage, log: opts.logger(),
		}, nil

	case "line":
		c := st.Text.Color
		if c == nil {
			c = color.Black
		}
		return &Line{base: b, color: c}, nil

	case "rect":
		return &Rect{base: b, style: st}, nil

	case "frame":
		inner := layout.NewFrame(fmt.Sprintf("frame-%d", def.ID), b.width, b.height, opts.Log)
		for i := range def.Elements {
			child, err := New(&def.Elements[i], tpl, opts, i)
			if err != nil {
				return nil, err
			}
			inner.Add(child)
		}
		return &Frame{base: b, style: st, inner: inner}, nil
	}
	return nil, fmt.Errorf("element %d has unknown type %q", def.ID, def.Type)
}
