// Enums are kept in their own package so that configuration, layout and
// rendering can share them without import cycles.
package common

// Placement of a page-level container.
// ENUM(content, header, footer)
type BandType int

// Repeatable reports whether a band of this type must render identically on
// every page and therefore cannot flow across page boundaries.
func (b BandType) Repeatable() bool {
	return b == BandTypeHeader || b == BandTypeFooter
}

// Specification of requested output type.
// ENUM(pages, xlsx)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtPages:
		return ".png"
	case OutputFmtXlsx:
		return ".xlsx"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Specification of image fitting mode.
// ENUM(none, keepAR, stretch)
type ImageFit int

// Horizontal text alignment.
// ENUM(left, center, right)
type HAlign int

// Vertical text alignment.
// ENUM(top, middle, bottom)
type VAlign int
