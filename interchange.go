package dimage

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ToDense copies any image into a freshly allocated dense matrix. Bilevel
// pixels become 0 or 1, greyscale pixels keep their 0..255 values, and float
// pixels are copied as-is. Empty images yield nil because gonum rejects
// zero-sized matrices.
func ToDense(img Image) *mat.Dense {
	rows, cols := img.Rows(), img.Cols()
	if rows == 0 || cols == 0 {
		return nil
	}
	return mat.NewDense(rows, cols, pixelValues(img))
}

// pixelValues flattens an image into row-major float64 values.
func pixelValues(img Image) []float64 {
	rows, cols := img.Rows(), img.Cols()
	data := make([]float64, rows*cols)
	switch m := img.(type) {
	case *Bitmap:
		row := make([]uint8, cols)
		for r := 0; r < rows; r++ {
			row = m.RowBits(r, row)
			for c, v := range row {
				data[r*cols+c] = float64(v)
			}
		}
	case *GrayMap:
		for i, v := range m.data {
			data[i] = float64(v)
		}
	case *FloatMap:
		copy(data, m.data)
	default:
		panic(errors.Errorf("dimage: no dense conversion for %T", img))
	}
	return data
}

// FromDense copies a dense matrix into a fresh image of the requested kind.
// Values outside the kind's domain are rejected rather than clamped: bilevel
// accepts exactly 0 and 1, greyscale accepts whole numbers in 0..255, and
// float accepts anything. A nil matrix yields an empty image.
func FromDense(d *mat.Dense, kind PixelType) (Image, error) {
	if d == nil {
		return newEmpty(kind)
	}
	rows, cols := d.Dims()
	switch kind {
	case PixelBilevel:
		out := NewBitmap(rows, cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				v := d.At(r, c)
				if v != 0 && v != 1 {
					return nil, errors.Errorf("bilevel pixels must be 0 or 1, got %v at (%d, %d)", v, r, c)
				}
				if v == 1 {
					out.SetBit(r, c, 1)
				}
			}
		}
		return out, nil
	case PixelGray:
		out := NewGrayMap(rows, cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				v := d.At(r, c)
				if v != math.Trunc(v) || v < 0 || v > 255 {
					return nil, errors.Errorf("greyscale pixels must be whole numbers in 0..255, got %v at (%d, %d)", v, r, c)
				}
				out.data[r*cols+c] = uint8(v)
			}
		}
		return out, nil
	case PixelFloat:
		return NewFloatMapFromDense(d), nil
	default:
		return nil, errors.Errorf("unknown pixel type %v", kind)
	}
}

func newEmpty(kind PixelType) (Image, error) {
	switch kind {
	case PixelBilevel:
		return NewBitmap(0, 0), nil
	case PixelGray:
		return NewGrayMap(0, 0), nil
	case PixelFloat:
		return NewFloatMap(0, 0), nil
	default:
		return nil, errors.Errorf("unknown pixel type %v", kind)
	}
}
