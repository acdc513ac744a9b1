package dimage

import (
	"bytes"
	"image"
	"image/color"
	"math/bits"
)

// Bitmap is a bilevel image packed eight pixels per byte, most significant
// bit first. A set bit (1) is foreground ink, a clear bit (0) is background.
// Padding bits past the last column of each row are always zero.
type Bitmap struct {
	rows, cols int
	stride     int // bytes per row
	data       []byte
}

// NewBitmap returns an all-background bitmap with the given dimensions.
func NewBitmap(rows, cols int) *Bitmap {
	if rows < 0 || cols < 0 {
		panic(ErrShape)
	}
	stride := (cols + 7) / 8
	return &Bitmap{
		rows:   rows,
		cols:   cols,
		stride: stride,
		data:   make([]byte, rows*stride),
	}
}

// NewBitmapFromBits packs one value per pixel in row-major order; any nonzero
// value becomes 1. It panics with ErrShape unless len(pix) == rows*cols.
func NewBitmapFromBits(rows, cols int, pix []uint8) *Bitmap {
	if len(pix) != rows*cols {
		panic(ErrShape)
	}
	b := NewBitmap(rows, cols)
	for r := 0; r < rows; r++ {
		b.SetRowBits(r, pix[r*cols:(r+1)*cols])
	}
	return b
}

// Kind returns PixelBilevel.
func (b *Bitmap) Kind() PixelType { return PixelBilevel }

// Rows returns the number of rows.
func (b *Bitmap) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Bitmap) Cols() int { return b.cols }

// Bounds returns the image rectangle in stdlib convention.
func (b *Bitmap) Bounds() image.Rectangle { return image.Rect(0, 0, b.cols, b.rows) }

func (b *Bitmap) inRange(r, c int) bool {
	return uint(r) < uint(b.rows) && uint(c) < uint(b.cols)
}

// Bit returns the pixel at row r, column c as 0 or 1. It panics with
// ErrIndexOutOfBounds outside the image.
func (b *Bitmap) Bit(r, c int) uint8 {
	if !b.inRange(r, c) {
		panic(ErrIndexOutOfBounds)
	}
	return (b.data[r*b.stride+c>>3] >> uint(7-c&7)) & 1
}

// SetBit sets the pixel at row r, column c; any nonzero v sets the bit. It
// panics with ErrIndexOutOfBounds outside the image.
func (b *Bitmap) SetBit(r, c int, v uint8) {
	if !b.inRange(r, c) {
		panic(ErrIndexOutOfBounds)
	}
	mask := byte(0x80) >> uint(c&7)
	i := r*b.stride + c>>3
	if v != 0 {
		b.data[i] |= mask
	} else {
		b.data[i] &^= mask
	}
}

// RowBits unpacks row r into one value per pixel. The result is dst if it has
// enough capacity, otherwise a fresh slice of length Cols.
func (b *Bitmap) RowBits(r int, dst []uint8) []uint8 {
	if uint(r) >= uint(b.rows) {
		panic(ErrIndexOutOfBounds)
	}
	if cap(dst) < b.cols {
		dst = make([]uint8, b.cols)
	}
	dst = dst[:b.cols]
	row := b.data[r*b.stride : (r+1)*b.stride]
	for c := 0; c < b.cols; c++ {
		dst[c] = (row[c>>3] >> uint(7-c&7)) & 1
	}
	return dst
}

// SetRowBits packs the first Cols values of src into row r; any nonzero value
// becomes 1. It panics with ErrShape when src is too short.
func (b *Bitmap) SetRowBits(r int, src []uint8) {
	if uint(r) >= uint(b.rows) {
		panic(ErrIndexOutOfBounds)
	}
	if len(src) < b.cols {
		panic(ErrShape)
	}
	row := b.data[r*b.stride : (r+1)*b.stride]
	for i := range row {
		row[i] = 0
	}
	for c, v := range src[:b.cols] {
		if v != 0 {
			row[c>>3] |= byte(0x80) >> uint(c&7)
		}
	}
}

// Fill sets every pixel to v.
func (b *Bitmap) Fill(v uint8) {
	var fill byte
	if v != 0 {
		fill = 0xFF
	}
	for i := range b.data {
		b.data[i] = fill
	}
	b.clearPadBits()
}

// Invert flips every pixel in place.
func (b *Bitmap) Invert() {
	for i := range b.data {
		b.data[i] = ^b.data[i]
	}
	b.clearPadBits()
}

// Count returns the number of foreground pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.data {
		n += bits.OnesCount8(v)
	}
	return n
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	out := NewBitmap(b.rows, b.cols)
	copy(out.data, b.data)
	return out
}

// Equal reports whether o has the same dimensions and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	return b.rows == o.rows && b.cols == o.cols && bytes.Equal(b.data, o.data)
}

// ToGray renders the bitmap as an 8-bit greyscale image with ink black (0)
// and background white (255).
func (b *Bitmap) ToGray() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, b.cols, b.rows))
	for r := 0; r < b.rows; r++ {
		row := b.data[r*b.stride : (r+1)*b.stride]
		for c := 0; c < b.cols; c++ {
			v := uint8(255)
			if (row[c>>3]>>uint(7-c&7))&1 != 0 {
				v = 0
			}
			out.SetGray(c, r, color.Gray{Y: v})
		}
	}
	return out
}

// keeps padding bits at zero so byte-level Equal and Count stay valid
func (b *Bitmap) clearPadBits() {
	rem := b.cols & 7
	if rem == 0 || b.stride == 0 {
		return
	}
	mask := byte(0xFF) << uint(8-rem)
	for r := 0; r < b.rows; r++ {
		b.data[(r+1)*b.stride-1] &= mask
	}
}
