// Package template defines the declarative report definition - document
// properties, parameters, styles and positioned elements - and parses it from
// its JSON form.
package template

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"rbg/common"
	"rbg/layout"
)

// Template is the root of a parsed report definition.
type Template struct {
	Version            int                `json:"version"`
	DocumentProperties DocumentProperties `json:"documentProperties"`
	Parameters         []Parameter        `json:"parameters"`
	Styles             []Style            `json:"styles"`
	DocElements        []DocElement       `json:"docElements"`
}

// DocumentProperties carries page geometry in template units.
type DocumentProperties struct {
	PageFormat   string  `json:"pageFormat"` // A4, A5, letter or user_defined
	PageWidth    float64 `json:"pageWidth"`
	PageHeight   float64 `json:"pageHeight"`
	Unit         string  `json:"unit"`        // pt, mm or inch
	Orientation  string  `json:"orientation"` // portrait or landscape
	MarginLeft   float64 `json:"marginLeft"`
	MarginTop    float64 `json:"marginTop"`
	MarginRight  float64 `json:"marginRight"`
	MarginBottom float64 `json:"marginBottom"`
	Header       bool    `json:"header"`
	HeaderSize   float64 `json:"headerSize"`
	Footer       bool    `json:"footer"`
	FooterSize   float64 `json:"footerSize"`
}

// Parameter declares a named report input. When Expression is set the value
// is computed from other parameters instead of being supplied with the data.
type Parameter struct {
	Name       string `json:"name"`
	Type       string `json:"type"` // string, number, boolean, array, map
	Expression string `json:"expression,omitempty"`
}

// Style is a reusable visual style elements can reference by id.
type Style struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	FontSize        float64 `json:"fontSize"`
	Bold            bool    `json:"bold"`
	Italic          bool    `json:"italic"`
	Color           string  `json:"color"`
	BackgroundColor string  `json:"backgroundColor"`
	HAlign          string  `json:"horizontalAlignment"`
	VAlign          string  `json:"verticalAlignment"`
	LineHeight      float64 `json:"lineHeight"`
	BorderWidth     float64 `json:"borderWidth"`
	BorderColor     string  `json:"borderColor"`
}

// DocElement is one positioned element of the report. Geometry is in
// template units relative to the owning band or frame.
type DocElement struct {
	ID     int     `json:"id"`
	Type   string  `json:"elementType"` // text, image, line, rect, frame, page_break
	Band   string  `json:"band,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Content    string `json:"content,omitempty"`
	PrintIf    string `json:"printIf,omitempty"`
	GrowHeight bool   `json:"growHeight,omitempty"`

	StyleID         int     `json:"styleId,omitempty"`
	FontSize        float64 `json:"fontSize,omitempty"`
	Bold            bool    `json:"bold,omitempty"`
	Italic          bool    `json:"italic,omitempty"`
	Color           string  `json:"color,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	HAlign          string  `json:"horizontalAlignment,omitempty"`
	VAlign          string  `json:"verticalAlignment,omitempty"`
	LineHeight      float64 `json:"lineHeight,omitempty"`
	BorderWidth     float64 `json:"borderWidth,omitempty"`
	BorderColor     string  `json:"borderColor,omitempty"`

	// image specific
	Source string `json:"source,omitempty"` // file path, data URL or ${param}
	Fit    string `json:"fit,omitempty"`

	SpreadsheetHide    bool `json:"spreadsheetHide,omitempty"`
	SpreadsheetColspan int  `json:"spreadsheetColspan,omitempty"`

	// frame children
	Elements []DocElement `json:"elements,omitempty"`
}

var pageFormats = map[string][2]float64{
	"A4":     {595, 842},
	"A5":     {420, 595},
	"letter": {612, 792},
}

func (p *DocumentProperties) unitFactor() (float64, error) {
	switch p.Unit {
	case "", "pt":
		return 1, nil
	case "mm":
		return 72.0 / 25.4, nil
	case "inch":
		return 72, nil
	default:
		return 0, fmt.Errorf("unknown unit %q", p.Unit)
	}
}

// Points converts a value in template units to points.
func (p *DocumentProperties) Points(v float64) float64 {
	f, err := p.unitFactor()
	if err != nil {
		return v
	}
	return v * f
}

// Geometry resolves page format, orientation and margins into the page box
// the bands derive their bounds from. All returned values are points.
func (p *DocumentProperties) Geometry() (layout.PageGeometry, error) {
	var g layout.PageGeometry

	f, err := p.unitFactor()
	if err != nil {
		return g, err
	}

	width, height := p.PageWidth*f, p.PageHeight*f
	if p.PageFormat != "" && p.PageFormat != "user_defined" {
		wh, ok := pageFormats[p.PageFormat]
		if !ok {
			return g, fmt.Errorf("unknown page format %q", p.PageFormat)
		}
		width, height = wh[0], wh[1]
	}
	if p.Orientation == "landscape" {
		width, height = height, width
	}
	if width <= 0 || height <= 0 {
		return g, fmt.Errorf("page size %gx%g is not usable", width, height)
	}

	g.PageWidth, g.PageHeight = width, height
	g.MarginLeft, g.MarginTop = p.MarginLeft*f, p.MarginTop*f
	g.MarginRight, g.MarginBottom = p.MarginRight*f, p.MarginBottom*f
	g.Header, g.Footer = p.Header, p.Footer
	if p.Header {
		g.HeaderSize = p.HeaderSize * f
	}
	if p.Footer {
		g.FooterSize = p.FooterSize * f
	}
	g.ContentHeight = g.PageHeight - g.MarginTop - g.MarginBottom - g.HeaderSize - g.FooterSize
	if g.ContentHeight <= 0 {
		return g, fmt.Errorf("margins and bands leave no room for content (%g)", g.ContentHeight)
	}
	return g, nil
}

// BandType resolves the element's band, defaulting to content.
func (e *DocElement) BandType() (common.BandType, error) {
	if e.Band == "" {
		return common.BandTypeContent, nil
	}
	return common.ParseBandType(e.Band)
}

var elementTypes = map[string]bool{
	"text": true, "image": true, "line": true, "rect": true,
	"frame": true, "page_break": true,
}

// Load parses and validates a report definition.
func Load(r io.Reader) (*Template, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var tpl Template
	if err := dec.Decode(&tpl); err != nil {
		return nil, fmt.Errorf("unable to decode report template: %w", err)
	}
	if err := tpl.validate(); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// LoadFile reads a report definition from disk.
func LoadFile(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open report template: %w", err)
	}
	defer f.Close()

	tpl, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tpl, nil
}

func (t *Template) validate() error {
	if t.Version != 1 {
		return fmt.Errorf("unsupported template version %d", t.Version)
	}
	seen := make(map[int]bool)
	var walk func(elems []DocElement, inFrame bool) error
	walk = func(elems []DocElement, inFrame bool) error {
		for i := range elems {
			e := &elems[i]
			if !elementTypes[strings.ToLower(e.Type)] {
				return fmt.Errorf("element %d has unknown type %q", e.ID, e.Type)
			}
			if e.ID != 0 {
				if seen[e.ID] {
					return fmt.Errorf("duplicate element id %d", e.ID)
				}
				seen[e.ID] = true
			}
			if inFrame && e.Band != "" {
				return fmt.Errorf("element %d: band is meaningless inside a frame", e.ID)
			}
			if !inFrame {
				if _, err := e.BandType(); err != nil {
					return fmt.Errorf("element %d: %w", e.ID, err)
				}
			}
			if len(e.Elements) > 0 {
				if strings.ToLower(e.Type) != "frame" {
					return fmt.Errorf("element %d: only frames hold child elements", e.ID)
				}
				if err := walk(e.Elements, true); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(t.DocElements, false); err != nil {
		return err
	}
	for i := range t.Parameters {
		if t.Parameters[i].Name == "" {
			return fmt.Errorf("parameter %d has no name", i)
		}
	}
	return nil
}

// StyleByID returns the referenced style or nil.
func (t *Template) StyleByID(id int) *Style {
	for i := range t.Styles {
		if t.Styles[i].ID == id {
			return &t.Styles[i]
		}
	}
	return nil
}

// Dump renders the parsed template back to indented JSON for debug reports.
func (t *Template) Dump() ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("unable to dump template: %w", err)
	}
	return data, nil
}
