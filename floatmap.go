package dimage

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/mat"

	"github.com/pagescan/dimage/utils"
)

// FloatMap is a float64 greyscale image on the nominal 0..255 scale, backed
// by a flat row-major slice.
type FloatMap struct {
	rows, cols int
	data       []float64
}

// NewFloatMap returns an all-zero map with the given dimensions.
func NewFloatMap(rows, cols int) *FloatMap {
	if rows < 0 || cols < 0 {
		panic(ErrShape)
	}
	return &FloatMap{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// NewFloatMapFromData wraps a row-major slice without copying it. It panics
// with ErrShape unless len(data) == rows*cols.
func NewFloatMapFromData(rows, cols int, data []float64) *FloatMap {
	if len(data) != rows*cols {
		panic(ErrShape)
	}
	return &FloatMap{rows: rows, cols: cols, data: data}
}

// NewFloatMapFromImage collapses any image to float64 luminance on the
// 0..255 scale.
func NewFloatMapFromImage(img image.Image) *FloatMap {
	bounds := img.Bounds()
	out := NewFloatMap(bounds.Dy(), bounds.Dx())
	if gray, ok := img.(*image.Gray); ok {
		for r := 0; r < out.rows; r++ {
			i := gray.PixOffset(bounds.Min.X, bounds.Min.Y+r)
			for c := 0; c < out.cols; c++ {
				out.data[r*out.cols+c] = float64(gray.Pix[i+c])
			}
		}
		return out
	}
	flat := imaging.Grayscale(img)
	utils.ParallelForEachPixel(image.Point{X: out.cols, Y: out.rows}, func(x, y int) {
		out.data[y*out.cols+x] = float64(flat.Pix[y*flat.Stride+4*x])
	})
	return out
}

// NewFloatMapFromDense copies a dense matrix into a fresh map. A nil matrix
// yields an empty map.
func NewFloatMapFromDense(d *mat.Dense) *FloatMap {
	if d == nil {
		return NewFloatMap(0, 0)
	}
	rows, cols := d.Dims()
	out := NewFloatMap(rows, cols)
	raw := d.RawMatrix()
	for r := 0; r < rows; r++ {
		copy(out.data[r*cols:(r+1)*cols], raw.Data[r*raw.Stride:r*raw.Stride+cols])
	}
	return out
}

// Kind returns PixelFloat.
func (f *FloatMap) Kind() PixelType { return PixelFloat }

// Rows returns the number of rows.
func (f *FloatMap) Rows() int { return f.rows }

// Cols returns the number of columns.
func (f *FloatMap) Cols() int { return f.cols }

// Bounds returns the image rectangle in stdlib convention.
func (f *FloatMap) Bounds() image.Rectangle { return image.Rect(0, 0, f.cols, f.rows) }

// At returns the pixel at row r, column c. It panics with
// ErrIndexOutOfBounds outside the image.
func (f *FloatMap) At(r, c int) float64 {
	if uint(r) >= uint(f.rows) || uint(c) >= uint(f.cols) {
		panic(ErrIndexOutOfBounds)
	}
	return f.data[r*f.cols+c]
}

// Set writes the pixel at row r, column c. It panics with
// ErrIndexOutOfBounds outside the image.
func (f *FloatMap) Set(r, c int, v float64) {
	if uint(r) >= uint(f.rows) || uint(c) >= uint(f.cols) {
		panic(ErrIndexOutOfBounds)
	}
	f.data[r*f.cols+c] = v
}

// Row copies row r into dst, reusing it when it has enough capacity, and
// returns the filled slice.
func (f *FloatMap) Row(r int, dst []float64) []float64 {
	if uint(r) >= uint(f.rows) {
		panic(ErrIndexOutOfBounds)
	}
	if cap(dst) < f.cols {
		dst = make([]float64, f.cols)
	}
	dst = dst[:f.cols]
	copy(dst, f.data[r*f.cols:(r+1)*f.cols])
	return dst
}

// SetRow copies the first Cols values of src into row r. It panics with
// ErrShape when src is too short.
func (f *FloatMap) SetRow(r int, src []float64) {
	if uint(r) >= uint(f.rows) {
		panic(ErrIndexOutOfBounds)
	}
	if len(src) < f.cols {
		panic(ErrShape)
	}
	copy(f.data[r*f.cols:(r+1)*f.cols], src[:f.cols])
}

// Fill sets every pixel to v.
func (f *FloatMap) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

// Clone returns a deep copy.
func (f *FloatMap) Clone() *FloatMap {
	out := NewFloatMap(f.rows, f.cols)
	copy(out.data, f.data)
	return out
}

// Equal reports whether o has the same dimensions and exactly equal pixels.
// NaN compares unequal to itself.
func (f *FloatMap) Equal(o *FloatMap) bool {
	if f.rows != o.rows || f.cols != o.cols {
		return false
	}
	for i, v := range f.data {
		if v != o.data[i] {
			return false
		}
	}
	return true
}

// Dense returns a matrix view sharing this map's backing slice; writes on
// either side are visible to both. It returns nil for an empty map because
// gonum rejects zero-sized matrices.
func (f *FloatMap) Dense() *mat.Dense {
	if f.rows == 0 || f.cols == 0 {
		return nil
	}
	return mat.NewDense(f.rows, f.cols, f.data)
}

// ToGray quantizes the map to 8-bit greyscale, clamping to 0..255 and
// rounding half away from zero.
func (f *FloatMap) ToGray() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, f.cols, f.rows))
	for r := 0; r < f.rows; r++ {
		for c := 0; c < f.cols; c++ {
			v := math.Round(f.data[r*f.cols+c])
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			out.SetGray(c, r, color.Gray{Y: uint8(v)})
		}
	}
	return out
}
