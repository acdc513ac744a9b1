package morph

import (
	"github.com/pkg/errors"

	"github.com/pagescan/dimage"
)

// Args carries the per-operation parameters an Op may consume. Operations
// ignore fields they have no use for. K has no default; Rank rejects a zero
// K, so callers driving the table must set it explicitly.
type Args struct {
	Count     int
	Direction Direction
	Shape     Shape
	K         int
}

// DefaultArgs returns the argument set the command line starts from: one
// rectangular dilate pass.
func DefaultArgs() Args {
	return Args{Count: 1, Direction: DirectionDilate, Shape: ShapeRectangular}
}

// Op describes one filtering operation: its wire name, the pixel types it
// accepts, and how to run it.
type Op struct {
	Name  string
	Kinds []dimage.PixelType
	Apply func(img dimage.Image, args Args) (dimage.Image, error)
}

// ops is the closed operation table. Dispatch is by name lookup only; no
// operations register at runtime.
var ops = []Op{
	{
		Name:  "erode_dilate",
		Kinds: erodeDilateKinds,
		Apply: func(img dimage.Image, args Args) (dimage.Image, error) {
			return ErodeDilate(img, args.Count, args.Direction, args.Shape)
		},
	},
	{
		Name:  "erode",
		Kinds: erodeDilateKinds,
		Apply: func(img dimage.Image, args Args) (dimage.Image, error) {
			return Erode(img)
		},
	},
	{
		Name:  "dilate",
		Kinds: erodeDilateKinds,
		Apply: func(img dimage.Image, args Args) (dimage.Image, error) {
			return Dilate(img)
		},
	},
	{
		Name:  "rank",
		Kinds: rankMeanKinds,
		Apply: func(img dimage.Image, args Args) (dimage.Image, error) {
			return Rank(img, args.K)
		},
	},
	{
		Name:  "mean",
		Kinds: rankMeanKinds,
		Apply: func(img dimage.Image, args Args) (dimage.Image, error) {
			return Mean(img)
		},
	},
}

// Operations returns a copy of the operation table in declaration order.
func Operations() []Op {
	out := make([]Op, len(ops))
	copy(out, ops)
	return out
}

// Lookup finds the named operation.
func Lookup(name string) (Op, error) {
	for _, op := range ops {
		if op.Name == name {
			return op, nil
		}
	}
	return Op{}, errors.Wrapf(ErrInvalidArgument, "unknown operation %q", name)
}

// Names lists the operation names in declaration order.
func Names() []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}
