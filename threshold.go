package dimage

import (
	"github.com/pagescan/dimage/utils"
)

// Histogram accumulates the 256-bin intensity histogram over row groups in
// parallel, each group merging a private histogram once its rows are done.
func (g *GrayMap) Histogram() [256]int {
	var partials [][256]int
	utils.GroupWorkParallel(
		g.rows,
		func(numGroups int) {
			partials = make([][256]int, numGroups)
		},
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			var local [256]int
			return func(memberNum, rowNum int) {
					for _, v := range g.data[rowNum*g.cols : (rowNum+1)*g.cols] {
						local[v]++
					}
				}, func() {
					partials[groupNum] = local
				}
		},
	)
	var hist [256]int
	for i := range partials {
		for v := 0; v < 256; v++ {
			hist[v] += partials[i][v]
		}
	}
	return hist
}

// OtsuLevel returns the threshold maximizing the between-class variance of
// the intensity histogram. Empty images yield 0.
func (g *GrayMap) OtsuLevel() uint8 {
	total := g.rows * g.cols
	if total == 0 {
		return 0
	}
	hist := g.Histogram()

	var sum float64
	for v, n := range hist {
		sum += float64(v) * float64(n)
	}

	var sumB, weightB float64
	var best float64
	var level uint8
	for v := 0; v < 256; v++ {
		weightB += float64(hist[v])
		if weightB == 0 {
			continue
		}
		weightF := float64(total) - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(v) * float64(hist[v])
		meanB := sumB / weightB
		meanF := (sum - sumB) / weightF
		between := weightB * weightF * (meanB - meanF) * (meanB - meanF)
		if between > best {
			best = between
			level = uint8(v)
		}
	}
	return level
}

// Threshold binarizes the map: pixels at or below level become foreground
// ink (1), everything brighter becomes background (0).
func (g *GrayMap) Threshold(level uint8) *Bitmap {
	out := NewBitmap(g.rows, g.cols)
	row := make([]uint8, g.cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.data[r*g.cols+c] <= level {
				row[c] = 1
			} else {
				row[c] = 0
			}
		}
		out.SetRowBits(r, row)
	}
	return out
}
