// Package images decodes and sizes report images: raster formats through
// imaging, SVG through the oksvg rasterizer.
package images

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"

	"rbg/common"
)

// IsSVG sniffs for an SVG document - filetype only understands binary magic.
func IsSVG(data []byte) bool {
	head := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(head, []byte("<svg")) {
		return true
	}
	return bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(data, []byte("<svg"))
}

// Decode turns raw image bytes into an image. SVG data is rasterized at its
// intrinsic size.
func Decode(data []byte) (image.Image, error) {
	if IsSVG(data) {
		return RasterizeSVGToImage(data, 0, 0)
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("unable to detect image type: %w", err)
	}
	if kind == filetype.Unknown || kind.MIME.Type != "image" {
		return nil, fmt.Errorf("unsupported image data (%s)", kind.MIME.Value)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s image: %w", kind.Extension, err)
	}
	return img, nil
}

// Sized returns img sized for a width x height pixel box according to mode.
func Sized(img image.Image, width, height int, mode common.ImageFit) image.Image {
	if width <= 0 || height <= 0 {
		return img
	}
	switch mode {
	case common.ImageFitKeepAR:
		return imaging.Fit(img, width, height, imaging.Lanczos)
	case common.ImageFitStretch:
		return imaging.Resize(img, width, height, imaging.Lanczos)
	default:
		return img
	}
}
