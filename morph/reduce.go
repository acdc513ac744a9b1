package morph

import (
	"github.com/pagescan/dimage/utils"
)

// elem constrains the engine to the value types the pixel containers hold.
type elem interface {
	~uint8 | ~float64
}

// grid is a flat row-major buffer backing one filtering pass.
type grid[T elem] struct {
	rows, cols int
	stride     int
	pix        []T
}

func newGrid[T elem](rows, cols int) *grid[T] {
	return &grid[T]{rows: rows, cols: cols, stride: cols, pix: make([]T, rows*cols)}
}

// reducer collapses one gathered window into a single output value.
type reducer[T elem] func(window []T) T

// reduceRows runs one filtering pass over a rows x cols source read through
// readRow: every output pixel is red applied to the window the structuring
// element spans around it, with borders edge-clamped. Rows are distributed
// over parallel worker groups; each group reuses one scratch window.
func reduceRows[T elem](rows, cols int, se *structElem, readRow func(r int, dst []T) []T, red reducer[T]) *grid[T] {
	out := newGrid[T](rows, cols)
	if rows == 0 || cols == 0 {
		return out
	}
	padded := newPaddedGrid(rows, cols, se.radius, readRow)
	offs := se.linearOffsets(padded.stride)
	utils.GroupWorkParallel(rows, nil,
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			window := make([]T, len(offs))
			return func(memberNum, rowNum int) {
				srcBase := (rowNum+se.radius)*padded.stride + se.radius
				dstBase := rowNum * out.stride
				for c := 0; c < cols; c++ {
					for i, off := range offs {
						window[i] = padded.pix[srcBase+c+off]
					}
					out.pix[dstBase+c] = red(window)
				}
			}, nil
		})
	return out
}

func minWindow[T elem](window []T) T {
	m := window[0]
	for _, v := range window[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxWindow[T elem](window []T) T {
	m := window[0]
	for _, v := range window[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// rankWindow returns a reducer selecting the k-th smallest window value,
// 1-based. The median of a nine-cell window goes through a sorting network;
// other ranks insertion sort the scratch window in place. Windows must not
// contain IEEE NaN.
func rankWindow[T elem](k int) reducer[T] {
	return func(window []T) T {
		if k == 5 && len(window) == 9 {
			return medianOfNine(window)
		}
		insertionSort(window)
		return window[k-1]
	}
}

func insertionSort[T elem](a []T) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

// medianOfNine selects the median of a nine-element slice with a 19-step
// min/max network, modifying the elements in place.
func medianOfNine[T elem](a []T) T {
	if a[0] > a[1] {
		a[0], a[1] = a[1], a[0]
	}
	if a[3] > a[4] {
		a[3], a[4] = a[4], a[3]
	}
	if a[6] > a[7] {
		a[6], a[7] = a[7], a[6]
	}
	if a[1] > a[2] {
		a[1], a[2] = a[2], a[1]
	}
	if a[4] > a[5] {
		a[4], a[5] = a[5], a[4]
	}
	if a[7] > a[8] {
		a[7], a[8] = a[8], a[7]
	}
	if a[0] > a[1] {
		a[0], a[1] = a[1], a[0]
	}
	if a[3] > a[4] {
		a[3], a[4] = a[4], a[3]
	}
	if a[6] > a[7] {
		a[6], a[7] = a[7], a[6]
	}
	if a[0] > a[3] {
		a[3] = a[0]
	}
	if a[3] > a[6] {
		a[6] = a[3]
	}
	if a[1] > a[4] {
		a[1], a[4] = a[4], a[1]
	}
	if a[4] > a[7] {
		a[4] = a[7]
	}
	if a[1] > a[4] {
		a[4] = a[1]
	}
	if a[5] > a[8] {
		a[5] = a[8]
	}
	if a[2] > a[5] {
		a[2] = a[5]
	}
	if a[2] > a[4] {
		a[2], a[4] = a[4], a[2]
	}
	if a[4] > a[6] {
		a[4] = a[6]
	}
	if a[2] > a[4] {
		a[4] = a[2]
	}
	return a[4]
}

// meanWindowGray averages to the nearest representable value with halves
// rounding up, so constant regions are exact fixed points.
func meanWindowGray(window []uint8) uint8 {
	sum := 0
	for _, v := range window {
		sum += int(v)
	}
	n := len(window)
	return uint8((sum + n/2) / n)
}

func meanWindowFloat(window []float64) float64 {
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}
