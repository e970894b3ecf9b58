package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"go.uber.org/zap/zaptest"

	"rbg/layout"
)

func testWriter(t *testing.T, dpi float64) *PageWriter {
	t.Helper()
	geom := layout.PageGeometry{PageWidth: 100, PageHeight: 50}
	p, err := NewPageWriter(geom, dpi, "", zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPageSizeFollowsDPI(t *testing.T) {
	p := testWriter(t, 144)
	p.AddPage()
	b := p.Page(0).Bounds()
	if b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("page bounds = %v, want 200x100", b)
	}
}

func TestFillRect(t *testing.T) {
	p := testWriter(t, 144)
	p.AddPage()
	red := color.RGBA{R: 255, A: 255}
	p.FillRect(10, 10, 20, 20, red)

	// rect center is at (40, 40) pixels after the 2x scale
	r, g, b, _ := p.Page(0).At(40, 40).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Fatalf("pixel inside rect = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = p.Page(0).At(10, 10).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Fatalf("pixel outside rect = %d,%d,%d, want white", r>>8, g>>8, b>>8)
	}
}

func TestMeasureStringIsInPoints(t *testing.T) {
	// the builtin face advances 7px per glyph; at 2x scale that is 3.5pt
	p := testWriter(t, 144)
	got := p.MeasureString("abcd", layout.TextStyle{Size: 10})
	if math.Abs(got-14) > 1e-9 {
		t.Fatalf("MeasureString = %g, want 14", got)
	}
}

func TestTextDrawsInk(t *testing.T) {
	p := testWriter(t, 72)
	p.AddPage()
	p.Text(5, 5, "XXXX", layout.TextStyle{Size: 10, Color: color.Black})

	ink := 0
	img := p.Page(0)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r>>8 < 128 {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Fatal("no dark pixels after drawing text")
	}
}

func TestEncodePage(t *testing.T) {
	p := testWriter(t, 72)
	p.AddPage()
	p.AddPage()
	if p.PageCount() != 2 {
		t.Fatalf("PageCount = %d, want 2", p.PageCount())
	}

	var buf bytes.Buffer
	if err := p.EncodePage(1, &buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("decoded bounds = %v, want 100x50", b)
	}
}
