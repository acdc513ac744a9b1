package morph

// The engine's single border policy is edge clamping: a window cell past the
// image boundary takes the value of the nearest edge pixel. Clamping keeps
// erosion and dilation duals of each other and makes every constant image a
// fixed point of every filter, so borders never bleed foreign values into
// the output.

// newPaddedGrid copies a rows x cols source into a grid with a margin of
// radius cells on every side, replicating edge pixels into the margin.
// readRow fills one source row at a time; rows and cols must be positive.
func newPaddedGrid[T elem](rows, cols, radius int, readRow func(r int, dst []T) []T) *grid[T] {
	stride := cols + 2*radius
	g := &grid[T]{
		rows:   rows + 2*radius,
		cols:   stride,
		stride: stride,
		pix:    make([]T, (rows+2*radius)*stride),
	}
	row := make([]T, cols)
	for r := 0; r < rows; r++ {
		row = readRow(r, row)
		base := (r + radius) * stride
		copy(g.pix[base+radius:base+radius+cols], row)
		for c := 0; c < radius; c++ {
			g.pix[base+c] = row[0]
			g.pix[base+radius+cols+c] = row[cols-1]
		}
	}
	top := g.pix[radius*stride : (radius+1)*stride]
	bottom := g.pix[(radius+rows-1)*stride : (radius+rows)*stride]
	for r := 0; r < radius; r++ {
		copy(g.pix[r*stride:(r+1)*stride], top)
		copy(g.pix[(radius+rows+r)*stride:(radius+rows+r+1)*stride], bottom)
	}
	return g
}
