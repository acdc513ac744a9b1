// Package dimage provides the raster containers used for document image
// analysis: packed bilevel bitmaps, 8-bit greyscale maps, and float maps on
// the same nominal 0..255 scale, along with file IO, thresholding, and
// interchange with gonum matrices.
package dimage

import (
	"fmt"
	"image"
	"strings"

	"github.com/pkg/errors"
)

// PixelType enumerates the pixel representations a container can hold.
type PixelType int

const (
	// PixelBilevel is one bit per pixel; 1 is foreground (ink), 0 background.
	PixelBilevel PixelType = iota
	// PixelGray is 8-bit greyscale; 0 is black and 255 is white.
	PixelGray
	// PixelFloat is float64 greyscale on the nominal 0..255 scale.
	PixelFloat
)

func (pt PixelType) String() string {
	switch pt {
	case PixelBilevel:
		return "bilevel"
	case PixelGray:
		return "gray"
	case PixelFloat:
		return "float"
	default:
		return fmt.Sprintf("PixelType(%d)", int(pt))
	}
}

// ParsePixelType maps a name such as "gray" onto its PixelType. It accepts
// a few historical aliases so command lines stay friendly.
func ParsePixelType(name string) (PixelType, error) {
	switch strings.ToLower(name) {
	case "bilevel", "onebit", "bitmap":
		return PixelBilevel, nil
	case "gray", "grey", "greyscale", "grayscale":
		return PixelGray, nil
	case "float", "float64":
		return PixelFloat, nil
	default:
		return 0, errors.Errorf("unknown pixel type %q", name)
	}
}

// Image is the read-only surface shared by every pixel container.
type Image interface {
	Kind() PixelType
	Rows() int
	Cols() int
	Bounds() image.Rectangle
}

// Equal reports whether two images have the same kind, dimensions, and
// pixel values. Float comparison is exact.
func Equal(a, b Image) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch am := a.(type) {
	case *Bitmap:
		bm, ok := b.(*Bitmap)
		return ok && am.Equal(bm)
	case *GrayMap:
		bm, ok := b.(*GrayMap)
		return ok && am.Equal(bm)
	case *FloatMap:
		bm, ok := b.(*FloatMap)
		return ok && am.Equal(bm)
	default:
		return false
	}
}
