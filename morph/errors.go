package morph

import (
	"github.com/pkg/errors"

	"github.com/pagescan/dimage"
)

var (
	// ErrUnsupportedPixelType is when an operation is invoked on a pixel type
	// outside its allow-list.
	ErrUnsupportedPixelType = errors.New("unsupported pixel type for this operation")

	// ErrInvalidArgument is when an operation parameter is outside its
	// declared range.
	ErrInvalidArgument = errors.New("operation argument out of range")
)

func unsupportedPixelTypeError(op string, kind dimage.PixelType) error {
	return errors.Wrapf(ErrUnsupportedPixelType, "%s cannot run on %s images", op, kind)
}
