package dimage

import "github.com/fogleman/gg"

// Synthetic fixtures for tests across packages, drawn with gg so the shapes
// under test read geometrically instead of as pixel literals.

// DrawDiscGrayMap returns a rows x cols white map with a centered black disc
// of the given radius.
func DrawDiscGrayMap(rows, cols int, radius float64) *GrayMap {
	dc := gg.NewContext(cols, rows)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(float64(cols)/2, float64(rows)/2, radius)
	dc.Fill()
	return NewGrayMapFromImage(dc.Image())
}

// DrawDiscBitmap returns a rows x cols bitmap whose foreground is a centered
// disc of the given radius.
func DrawDiscBitmap(rows, cols int, radius float64) *Bitmap {
	return DrawDiscGrayMap(rows, cols, radius).Threshold(128)
}

// DrawBandsGrayMap returns a rows x cols map of vertical bands cycling
// through the given intensities, each band bandCols wide.
func DrawBandsGrayMap(rows, cols, bandCols int, levels []uint8) *GrayMap {
	dc := gg.NewContext(cols, rows)
	for c := 0; c*bandCols < cols; c++ {
		v := float64(levels[c%len(levels)]) / 255
		dc.SetRGB(v, v, v)
		dc.DrawRectangle(float64(c*bandCols), 0, float64(bandCols), float64(rows))
		dc.Fill()
	}
	return NewGrayMapFromImage(dc.Image())
}
