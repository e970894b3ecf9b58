// Package element provides the concrete positioned elements the flow core
// places: text, images, lines, rectangles, nested frames and page breaks.
package element

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"rbg/common"
	"rbg/layout"
	"rbg/template"
)

// Style is the fully resolved visual style of one element: defaults overlaid
// with a referenced named style overlaid with inline settings.
type Style struct {
	Text        layout.TextStyle
	HAlign      common.HAlign
	VAlign      common.VAlign
	Background  color.Color // nil when transparent
	BorderWidth float64
	BorderColor color.Color
}

// ParseColor understands #rgb and #rrggbb. Empty input means "no color".
func ParseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("malformed color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("malformed color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func resolveStyle(def *template.DocElement, tpl *template.Template, opts Options) (Style, error) {
	st := Style{
		Text: layout.TextStyle{
			Size:       opts.FontSize,
			Color:      color.Black,
			LineHeight: opts.LineHeight,
		},
	}

	apply := func(fontSize float64, bold, italic bool, col, bg, halign, valign string, lineHeight, borderWidth float64, borderColor string) error {
		if fontSize > 0 {
			st.Text.Size = fontSize
		}
		if bold {
			st.Text.Bold = true
		}
		if italic {
			st.Text.Italic = true
		}
		if lineHeight > 0 {
			st.Text.LineHeight = lineHeight
		}
		if col != "" {
			c, err := ParseColor(col)
			if err != nil {
				return err
			}
			st.Text.Color = c
		}
		if bg != "" {
			c, err := ParseColor(bg)
			if err != nil {
				return err
			}
			st.Background = c
		}
		if halign != "" {
			a, err := common.ParseHAlign(halign)
			if err != nil {
				return err
			}
			st.HAlign = a
		}
		if valign != "" {
			a, err := common.ParseVAlign(valign)
			if err != nil {
				return err
			}
			st.VAlign = a
		}
		if borderWidth > 0 {
			st.BorderWidth = borderWidth
		}
		if borderColor != "" {
			c, err := ParseColor(borderColor)
			if err != nil {
				return err
			}
			st.BorderColor = c
		}
		return nil
	}

	if def.StyleID != 0 {
		ref := tpl.StyleByID(def.StyleID)
		if ref == nil {
			return st, fmt.Errorf("element %d references unknown style %d", def.ID, def.StyleID)
		}
		if err := apply(ref.FontSize, ref.Bold, ref.Italic, ref.Color, ref.BackgroundColor,
			ref.HAlign, ref.VAlign, ref.LineHeight, ref.BorderWidth, ref.BorderColor); err != nil {
			return st, fmt.Errorf("element %d style %d: %w", def.ID, def.StyleID, err)
		}
	}
	if err := apply(def.FontSize, def.Bold, def.Italic, def.Color, def.BackgroundColor,
		def.HAlign, def.VAlign, def.LineHeight, def.BorderWidth, def.BorderColor); err != nil {
		return st, fmt.Errorf("element %d: %w", def.ID, err)
	}
	if st.BorderWidth > 0 && st.BorderColor == nil {
		st.BorderColor = color.Black
	}
	return st, nil
}
