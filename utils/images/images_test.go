package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"rbg/common"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 120, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	img, err := Decode(testPNG(t, 40, 20))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("bounds = %v, want 40x20", b)
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("definitely not an image")); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestDecode_SVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 20"><rect width="10" height="20" fill="#ff0000"/></svg>`)
	if !IsSVG(svg) {
		t.Fatal("IsSVG = false")
	}
	img, err := Decode(svg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 20 {
		t.Fatalf("bounds = %v, want 10x20", b)
	}
}

func TestSized(t *testing.T) {
	img, err := Decode(testPNG(t, 100, 50))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name  string
		mode  common.ImageFit
		w, h  int
		wantW int
		wantH int
	}{
		{"none keeps size", common.ImageFitNone, 10, 10, 100, 50},
		{"keepAR fits box", common.ImageFitKeepAR, 50, 50, 50, 25},
		{"stretch fills box", common.ImageFitStretch, 30, 40, 30, 40},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Sized(img, tc.w, tc.h, tc.mode)
			if b := got.Bounds(); b.Dx() != tc.wantW || b.Dy() != tc.wantH {
				t.Fatalf("bounds = %v, want %dx%d", b, tc.wantW, tc.wantH)
			}
		})
	}
}
