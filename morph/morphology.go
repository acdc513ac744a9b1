// Package morph implements neighborhood filtering over dimage containers:
// erosion, dilation, iterated erode/dilate sequences, rank-order filtering,
// and mean filtering.
//
// Every operation validates its arguments and the input's pixel type before
// touching any pixel, allocates a fresh output of the same kind and
// dimensions, and leaves the input untouched. Borders are edge-clamped; see
// border.go. For bilevel images foreground is 1 (ink), so erosion shrinks
// ink regions and dilation grows them.
package morph

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/pagescan/dimage"
)

const (
	// MaxPasses bounds the ErodeDilate iteration count.
	MaxPasses = 10

	// every single-pass operation runs a radius-1 (3x3-equivalent) element
	defaultRadius = 1
)

// Direction selects which primitive an ErodeDilate pass applies.
type Direction int

const (
	// DirectionDilate grows foreground by taking neighborhood maxima.
	DirectionDilate Direction = iota
	// DirectionErode shrinks foreground by taking neighborhood minima.
	DirectionErode
)

func (d Direction) String() string {
	switch d {
	case DirectionDilate:
		return "dilate"
	case DirectionErode:
		return "erode"
	default:
		return "unknown"
	}
}

// ParseDirection maps a name such as "erode" onto its Direction.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(name) {
	case "dilate":
		return DirectionDilate, nil
	case "erode":
		return DirectionErode, nil
	default:
		return 0, errors.Wrapf(ErrInvalidArgument, "unknown direction %q", name)
	}
}

var (
	erodeDilateKinds = []dimage.PixelType{dimage.PixelBilevel, dimage.PixelGray, dimage.PixelFloat}
	rankMeanKinds    = []dimage.PixelType{dimage.PixelGray, dimage.PixelFloat}
)

// Erode replaces every pixel with the minimum over its 3x3 neighborhood.
func Erode(img dimage.Image) (dimage.Image, error) {
	return singlePass("erode", img, DirectionErode)
}

// Dilate replaces every pixel with the maximum over its 3x3 neighborhood.
func Dilate(img dimage.Image) (dimage.Image, error) {
	return singlePass("dilate", img, DirectionDilate)
}

// ErodeDilate applies the direction's primitive count times with a radius-1
// structuring element of the given shape, each pass consuming the previous
// pass's output. A count of 0 returns an untouched copy of the input.
func ErodeDilate(img dimage.Image, count int, dir Direction, shape Shape) (dimage.Image, error) {
	if err := checkKind("erode_dilate", img, erodeDilateKinds); err != nil {
		return nil, err
	}
	if count < 0 || count > MaxPasses {
		return nil, errors.Wrapf(ErrInvalidArgument, "count %d is outside 0..%d", count, MaxPasses)
	}
	if dir != DirectionErode && dir != DirectionDilate {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown direction %v", dir)
	}
	se, err := buildElem(shape, defaultRadius)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return cloneImage(img)
	}
	out := img
	for i := 0; i < count; i++ {
		out, err = applyDirection(out, se, dir)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Rank replaces every pixel with the k-th smallest value of its nine-cell
// neighborhood. k runs 1..9; 1 selects the minimum, 5 the median, and 9 the
// maximum.
func Rank(img dimage.Image, k int) (dimage.Image, error) {
	if err := checkKind("rank", img, rankMeanKinds); err != nil {
		return nil, err
	}
	se, err := buildElem(ShapeRectangular, defaultRadius)
	if err != nil {
		return nil, err
	}
	if k < 1 || k > se.size() {
		return nil, errors.Wrapf(ErrInvalidArgument, "rank %d is outside 1..%d", k, se.size())
	}
	return applyPass(img, se, rankWindow[uint8](k), rankWindow[float64](k))
}

// Mean replaces every pixel with the average of its nine-cell neighborhood.
// Greyscale averages round to nearest with halves up.
func Mean(img dimage.Image) (dimage.Image, error) {
	if err := checkKind("mean", img, rankMeanKinds); err != nil {
		return nil, err
	}
	se, err := buildElem(ShapeRectangular, defaultRadius)
	if err != nil {
		return nil, err
	}
	return applyPass(img, se, meanWindowGray, meanWindowFloat)
}

func singlePass(op string, img dimage.Image, dir Direction) (dimage.Image, error) {
	if err := checkKind(op, img, erodeDilateKinds); err != nil {
		return nil, err
	}
	se, err := buildElem(ShapeRectangular, defaultRadius)
	if err != nil {
		return nil, err
	}
	return applyDirection(img, se, dir)
}

func applyDirection(img dimage.Image, se *structElem, dir Direction) (dimage.Image, error) {
	if dir == DirectionErode {
		return applyPass(img, se, minWindow[uint8], minWindow[float64])
	}
	return applyPass(img, se, maxWindow[uint8], maxWindow[float64])
}

// applyPass dispatches one reducer pass to the container's concrete type,
// handing uint8-backed containers redU8 and float containers redF64.
func applyPass(img dimage.Image, se *structElem, redU8 reducer[uint8], redF64 reducer[float64]) (dimage.Image, error) {
	switch m := img.(type) {
	case *dimage.Bitmap:
		out := reduceRows(m.Rows(), m.Cols(), se, m.RowBits, redU8)
		return bitmapFromGrid(out), nil
	case *dimage.GrayMap:
		out := reduceRows(m.Rows(), m.Cols(), se, m.Row, redU8)
		return dimage.NewGrayMapFromData(out.rows, out.cols, out.pix), nil
	case *dimage.FloatMap:
		out := reduceRows(m.Rows(), m.Cols(), se, m.Row, redF64)
		return dimage.NewFloatMapFromData(out.rows, out.cols, out.pix), nil
	default:
		return nil, unsupportedPixelTypeError("filter", img.Kind())
	}
}

func checkKind(op string, img dimage.Image, allowed []dimage.PixelType) error {
	kind := img.Kind()
	for _, k := range allowed {
		if k == kind {
			return nil
		}
	}
	return unsupportedPixelTypeError(op, kind)
}

func cloneImage(img dimage.Image) (dimage.Image, error) {
	switch m := img.(type) {
	case *dimage.Bitmap:
		return m.Clone(), nil
	case *dimage.GrayMap:
		return m.Clone(), nil
	case *dimage.FloatMap:
		return m.Clone(), nil
	default:
		return nil, unsupportedPixelTypeError("copy", img.Kind())
	}
}

func bitmapFromGrid(g *grid[uint8]) *dimage.Bitmap {
	out := dimage.NewBitmap(g.rows, g.cols)
	for r := 0; r < g.rows; r++ {
		out.SetRowBits(r, g.pix[r*g.stride:(r+1)*g.stride])
	}
	return out
}
