package dimage

import "github.com/pkg/errors"

var (
	// ErrIndexOutOfBounds is the panic value used by pixel accessors given
	// coordinates outside the image.
	ErrIndexOutOfBounds = errors.New("dimage: pixel index out of bounds")

	// ErrShape is the panic value used by constructors whose data length does
	// not match the given dimensions.
	ErrShape = errors.New("dimage: dimensions do not match data length")
)
