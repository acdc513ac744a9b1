package dimage

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"

	"github.com/pagescan/dimage/utils"
)

// GrayMap is an 8-bit greyscale image backed by a flat row-major slice.
type GrayMap struct {
	rows, cols int
	data       []uint8
}

// NewGrayMap returns an all-black map with the given dimensions.
func NewGrayMap(rows, cols int) *GrayMap {
	if rows < 0 || cols < 0 {
		panic(ErrShape)
	}
	return &GrayMap{rows: rows, cols: cols, data: make([]uint8, rows*cols)}
}

// NewGrayMapFromData wraps a row-major slice without copying it. It panics
// with ErrShape unless len(data) == rows*cols.
func NewGrayMapFromData(rows, cols int, data []uint8) *GrayMap {
	if len(data) != rows*cols {
		panic(ErrShape)
	}
	return &GrayMap{rows: rows, cols: cols, data: data}
}

// NewGrayMapFromImage collapses any image to 8-bit luminance. Color inputs
// are converted with the usual BT.601 weights.
func NewGrayMapFromImage(img image.Image) *GrayMap {
	bounds := img.Bounds()
	out := NewGrayMap(bounds.Dy(), bounds.Dx())
	if gray, ok := img.(*image.Gray); ok {
		for r := 0; r < out.rows; r++ {
			i := gray.PixOffset(bounds.Min.X, bounds.Min.Y+r)
			copy(out.data[r*out.cols:(r+1)*out.cols], gray.Pix[i:i+out.cols])
		}
		return out
	}
	flat := imaging.Grayscale(img)
	utils.ParallelForEachPixel(image.Point{X: out.cols, Y: out.rows}, func(x, y int) {
		out.data[y*out.cols+x] = flat.Pix[y*flat.Stride+4*x]
	})
	return out
}

// Kind returns PixelGray.
func (g *GrayMap) Kind() PixelType { return PixelGray }

// Rows returns the number of rows.
func (g *GrayMap) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *GrayMap) Cols() int { return g.cols }

// Bounds returns the image rectangle in stdlib convention.
func (g *GrayMap) Bounds() image.Rectangle { return image.Rect(0, 0, g.cols, g.rows) }

func (g *GrayMap) k(r, c int) int { return r*g.cols + c }

// At returns the pixel at row r, column c. It panics with
// ErrIndexOutOfBounds outside the image.
func (g *GrayMap) At(r, c int) uint8 {
	if uint(r) >= uint(g.rows) || uint(c) >= uint(g.cols) {
		panic(ErrIndexOutOfBounds)
	}
	return g.data[g.k(r, c)]
}

// Set writes the pixel at row r, column c. It panics with
// ErrIndexOutOfBounds outside the image.
func (g *GrayMap) Set(r, c int, v uint8) {
	if uint(r) >= uint(g.rows) || uint(c) >= uint(g.cols) {
		panic(ErrIndexOutOfBounds)
	}
	g.data[g.k(r, c)] = v
}

// Row copies row r into dst, reusing it when it has enough capacity, and
// returns the filled slice.
func (g *GrayMap) Row(r int, dst []uint8) []uint8 {
	if uint(r) >= uint(g.rows) {
		panic(ErrIndexOutOfBounds)
	}
	if cap(dst) < g.cols {
		dst = make([]uint8, g.cols)
	}
	dst = dst[:g.cols]
	copy(dst, g.data[r*g.cols:(r+1)*g.cols])
	return dst
}

// SetRow copies the first Cols values of src into row r. It panics with
// ErrShape when src is too short.
func (g *GrayMap) SetRow(r int, src []uint8) {
	if uint(r) >= uint(g.rows) {
		panic(ErrIndexOutOfBounds)
	}
	if len(src) < g.cols {
		panic(ErrShape)
	}
	copy(g.data[r*g.cols:(r+1)*g.cols], src[:g.cols])
}

// Fill sets every pixel to v.
func (g *GrayMap) Fill(v uint8) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy.
func (g *GrayMap) Clone() *GrayMap {
	out := NewGrayMap(g.rows, g.cols)
	copy(out.data, g.data)
	return out
}

// Equal reports whether o has the same dimensions and pixels.
func (g *GrayMap) Equal(o *GrayMap) bool {
	return g.rows == o.rows && g.cols == o.cols && bytes.Equal(g.data, o.data)
}

// ToGray copies the map into a standard library greyscale image.
func (g *GrayMap) ToGray() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, g.cols, g.rows))
	for r := 0; r < g.rows; r++ {
		copy(out.Pix[r*out.Stride:r*out.Stride+g.cols], g.data[r*g.cols:(r+1)*g.cols])
	}
	return out
}
