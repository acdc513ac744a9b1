package morph

import (
	"image"
	"strings"

	"github.com/pkg/errors"
)

// Shape selects the neighborhood geometry of a structuring element.
type Shape int

const (
	// ShapeRectangular is the full square window of side 2*radius+1.
	ShapeRectangular Shape = iota
	// ShapeOctagonal removes the square's corner cells past the hybrid bound
	// |dy|+|dx| <= radius + radius/2, approximating a disc.
	ShapeOctagonal
)

func (s Shape) String() string {
	switch s {
	case ShapeRectangular:
		return "rectangular"
	case ShapeOctagonal:
		return "octagonal"
	default:
		return "unknown"
	}
}

// ParseShape maps a name such as "octagonal" onto its Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(name) {
	case "rectangular", "rect", "square":
		return ShapeRectangular, nil
	case "octagonal", "oct":
		return ShapeOctagonal, nil
	default:
		return 0, errors.Wrapf(ErrInvalidArgument, "unknown shape %q", name)
	}
}

// structElem is a materialized neighborhood: an ordered set of offsets
// around the center, symmetric under 180 degree rotation and always
// containing the center itself.
type structElem struct {
	shape  Shape
	radius int
	points []image.Point // X is the column offset, Y the row offset
}

func buildElem(shape Shape, radius int) (*structElem, error) {
	if shape != ShapeRectangular && shape != ShapeOctagonal {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown shape %v", shape)
	}
	if radius < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "radius %d is negative", radius)
	}
	span := makeRangeArray(2*radius + 1)
	e := &structElem{shape: shape, radius: radius}
	for _, dy := range span {
		for _, dx := range span {
			if shape == ShapeOctagonal && abs(dy)+abs(dx) > radius+radius/2 {
				continue
			}
			e.points = append(e.points, image.Point{X: dx, Y: dy})
		}
	}
	return e, nil
}

func (e *structElem) size() int { return len(e.points) }

// linearOffsets flattens the offsets against a row stride, so a window
// gather is a walk of index deltas from the center pixel.
func (e *structElem) linearOffsets(stride int) []int {
	offs := make([]int, len(e.points))
	for i, p := range e.points {
		offs[i] = p.Y*stride + p.X
	}
	return offs
}

// makeRangeArray returns the centered offsets for an odd window side, so
// position i within the window maps to its offset from the center.
func makeRangeArray(length int) []int {
	if length <= 0 {
		return nil
	}
	span := (length - 1) / 2
	rangeArray := make([]int, length)
	for i := range rangeArray {
		rangeArray[i] = i - span
	}
	return rangeArray
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
