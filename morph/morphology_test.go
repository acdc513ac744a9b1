package morph

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/pagescan/dimage"
)

func gradientGrayMap() *dimage.GrayMap {
	return dimage.NewGrayMapFromData(3, 3, []uint8{
		10, 20, 30,
		40, 50, 60,
		70, 80, 90,
	})
}

func invertGray(g *dimage.GrayMap) *dimage.GrayMap {
	out := dimage.NewGrayMap(g.Rows(), g.Cols())
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			out.Set(r, c, 255-g.At(r, c))
		}
	}
	return out
}

func TestDirection(t *testing.T) {
	d, err := ParseDirection("erode")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d, test.ShouldEqual, DirectionErode)
	d, err = ParseDirection("DILATE")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d, test.ShouldEqual, DirectionDilate)
	_, err = ParseDirection("sideways")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrInvalidArgument), test.ShouldBeTrue)

	test.That(t, DirectionErode.String(), test.ShouldEqual, "erode")
	test.That(t, DirectionDilate.String(), test.ShouldEqual, "dilate")
	test.That(t, Direction(9).String(), test.ShouldEqual, "unknown")
}

func TestErodeDilateGray(t *testing.T) {
	src := gradientGrayMap()

	out, err := Erode(src)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dimage.Equal(out, dimage.NewGrayMapFromData(3, 3, []uint8{
		10, 10, 20,
		10, 10, 20,
		40, 40, 50,
	})), test.ShouldBeTrue)

	out, err = Dilate(src)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dimage.Equal(out, dimage.NewGrayMapFromData(3, 3, []uint8{
		50, 60, 60,
		80, 90, 90,
		80, 90, 90,
	})), test.ShouldBeTrue)
}

func TestRankGray(t *testing.T) {
	src := gradientGrayMap()
	out, err := Rank(src, 5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dimage.Equal(out, dimage.NewGrayMapFromData(3, 3, []uint8{
		20, 30, 30,
		40, 50, 60,
		70, 70, 80,
	})), test.ShouldBeTrue)

	// the extreme ranks are erosion and dilation
	disc := dimage.DrawDiscGrayMap(21, 34, 7)
	low, err := Rank(disc, 1)
	test.That(t, err, test.ShouldBeNil)
	eroded, err := Erode(disc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dimage.Equal(low, eroded), test.ShouldBeTrue)

	high, err := Rank(disc, 9)
	test.That(t, err, test.ShouldBeNil)
	dilated, err := Dilate(disc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dimage.Equal(high, dilated), test.ShouldBeTrue)
}

func TestMeanGray(t *testing.T) {
	src := gradientGrayMap()
	out, err := Mean(src)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dimage.Equal(out, dimage.NewGrayMapFromData(3, 3, []uint8{
		23, 30, 37,
		43, 50, 57,
		63, 70, 77,
	})), test.ShouldBeTrue)

	// constant images are fixed points
	flat := dimage.NewGrayMap(9, 14)
	flat.Fill(77)
	out, err = Mean(flat)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dimage.Equal(out, flat), test.ShouldBeTrue)
}

func TestErodeDilateBitmap(t *testing.T) {
	ones := dimage.NewBitmap(3, 3)
	ones.Fill(1)
	out, err := Erode(ones)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.(*dimage.Bitmap).Count(), test.ShouldEqual, 9)

	center := dimage.NewBitmap(3, 3)
	center.SetBit(1, 1, 1)
	out, err = Erode(center)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.(*dimage.Bitmap).Count(), test.ShouldEqual, 0)
	out, err = Dilate(center)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.(*dimage.Bitmap).Count(), test.ShouldEqual, 9)

	// octagonal dilation of a lone pixel is the 4-connected cross
	wide := dimage.NewBitmap(5, 5)
	wide.SetBit(2, 2, 1)
	out, err = ErodeDilate(wide, 1, DirectionDilate, ShapeOctagonal)
	test.That(t, err, test.ShouldBeNil)
	ob := out.(*dimage.Bitmap)
	test.That(t, ob.Count(), test.ShouldEqual, 5)
	for _, rc := range [][2]int{{1, 2}, {2, 1}, {2, 2}, {2, 3}, {3, 2}} {
		test.That(t, ob.Bit(rc[0], rc[1]), test.ShouldEqual, 1)
	}
}

func TestErodeDilateCount(t *testing.T) {
	t.Run("zero returns a copy", func(t *testing.T) {
		b := dimage.DrawDiscBitmap(18, 25, 6)
		out, err := ErodeDilate(b, 0, DirectionErode, ShapeRectangular)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, dimage.Equal(out, b), test.ShouldBeTrue)
		ob := out.(*dimage.Bitmap)
		ob.SetBit(0, 0, 1-b.Bit(0, 0))
		test.That(t, dimage.Equal(out, b), test.ShouldBeFalse)

		g := gradientGrayMap()
		gout, err := ErodeDilate(g, 0, DirectionDilate, ShapeOctagonal)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, dimage.Equal(gout, g), test.ShouldBeTrue)
		gout.(*dimage.GrayMap).Set(0, 0, 200)
		test.That(t, g.At(0, 0), test.ShouldEqual, 10)

		f := dimage.NewFloatMap(2, 2)
		f.Fill(1.25)
		fout, err := ErodeDilate(f, 0, DirectionErode, ShapeRectangular)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, dimage.Equal(fout, f), test.ShouldBeTrue)
	})

	t.Run("passes compose", func(t *testing.T) {
		disc := dimage.DrawDiscGrayMap(27, 27, 9)
		twice, err := ErodeDilate(disc, 2, DirectionErode, ShapeRectangular)
		test.That(t, err, test.ShouldBeNil)
		once, err := Erode(disc)
		test.That(t, err, test.ShouldBeNil)
		again, err := Erode(once)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, dimage.Equal(twice, again), test.ShouldBeTrue)

		dtwice, err := ErodeDilate(disc, 2, DirectionDilate, ShapeOctagonal)
		test.That(t, err, test.ShouldBeNil)
		dstep, err := ErodeDilate(disc, 1, DirectionDilate, ShapeOctagonal)
		test.That(t, err, test.ShouldBeNil)
		dstep, err = ErodeDilate(dstep, 1, DirectionDilate, ShapeOctagonal)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, dimage.Equal(dtwice, dstep), test.ShouldBeTrue)
	})

	t.Run("max count accepted", func(t *testing.T) {
		disc := dimage.DrawDiscBitmap(16, 16, 5)
		out, err := ErodeDilate(disc, MaxPasses, DirectionErode, ShapeRectangular)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out.(*dimage.Bitmap).Count(), test.ShouldEqual, 0)
	})
}

func TestDuality(t *testing.T) {
	t.Run("bilevel", func(t *testing.T) {
		b := dimage.DrawDiscBitmap(40, 56, 13)
		for _, shape := range []Shape{ShapeRectangular, ShapeOctagonal} {
			for _, count := range []int{1, 3} {
				eroded, err := ErodeDilate(b, count, DirectionErode, shape)
				test.That(t, err, test.ShouldBeNil)
				inv := b.Clone()
				inv.Invert()
				dilated, err := ErodeDilate(inv, count, DirectionDilate, shape)
				test.That(t, err, test.ShouldBeNil)
				db := dilated.(*dimage.Bitmap)
				db.Invert()
				test.That(t, db.Equal(eroded.(*dimage.Bitmap)), test.ShouldBeTrue)
			}
		}
	})

	t.Run("gray", func(t *testing.T) {
		g := dimage.DrawDiscGrayMap(30, 41, 10)
		for _, shape := range []Shape{ShapeRectangular, ShapeOctagonal} {
			eroded, err := ErodeDilate(g, 1, DirectionErode, shape)
			test.That(t, err, test.ShouldBeNil)
			dilated, err := ErodeDilate(invertGray(g), 1, DirectionDilate, shape)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, invertGray(dilated.(*dimage.GrayMap)).Equal(eroded.(*dimage.GrayMap)), test.ShouldBeTrue)
		}
	})
}

func TestOrderingAcrossOps(t *testing.T) {
	src := dimage.DrawDiscGrayMap(25, 38, 8)
	eroded, err := Erode(src)
	test.That(t, err, test.ShouldBeNil)
	dilated, err := Dilate(src)
	test.That(t, err, test.ShouldBeNil)
	meaned, err := Mean(src)
	test.That(t, err, test.ShouldBeNil)
	ranked, err := Rank(src, 4)
	test.That(t, err, test.ShouldBeNil)

	em := eroded.(*dimage.GrayMap)
	dm := dilated.(*dimage.GrayMap)
	mm := meaned.(*dimage.GrayMap)
	rm := ranked.(*dimage.GrayMap)
	for r := 0; r < src.Rows(); r++ {
		for c := 0; c < src.Cols(); c++ {
			v := src.At(r, c)
			test.That(t, em.At(r, c), test.ShouldBeLessThanOrEqualTo, v)
			test.That(t, dm.At(r, c), test.ShouldBeGreaterThanOrEqualTo, v)
			test.That(t, mm.At(r, c), test.ShouldBeGreaterThanOrEqualTo, em.At(r, c))
			test.That(t, mm.At(r, c), test.ShouldBeLessThanOrEqualTo, dm.At(r, c))
			test.That(t, rm.At(r, c), test.ShouldBeGreaterThanOrEqualTo, em.At(r, c))
			test.That(t, rm.At(r, c), test.ShouldBeLessThanOrEqualTo, dm.At(r, c))
		}
	}
}

func TestOctagonalVsRectangular(t *testing.T) {
	src := dimage.DrawDiscGrayMap(29, 43, 9)
	rectEroded, err := ErodeDilate(src, 1, DirectionErode, ShapeRectangular)
	test.That(t, err, test.ShouldBeNil)
	octEroded, err := ErodeDilate(src, 1, DirectionErode, ShapeOctagonal)
	test.That(t, err, test.ShouldBeNil)
	rectDilated, err := ErodeDilate(src, 1, DirectionDilate, ShapeRectangular)
	test.That(t, err, test.ShouldBeNil)
	octDilated, err := ErodeDilate(src, 1, DirectionDilate, ShapeOctagonal)
	test.That(t, err, test.ShouldBeNil)

	re := rectEroded.(*dimage.GrayMap)
	oe := octEroded.(*dimage.GrayMap)
	rd := rectDilated.(*dimage.GrayMap)
	od := octDilated.(*dimage.GrayMap)
	for r := 0; r < src.Rows(); r++ {
		for c := 0; c < src.Cols(); c++ {
			test.That(t, oe.At(r, c), test.ShouldBeGreaterThanOrEqualTo, re.At(r, c))
			test.That(t, od.At(r, c), test.ShouldBeLessThanOrEqualTo, rd.At(r, c))
		}
	}

	// a smaller neighborhood erodes less ink
	b := dimage.DrawDiscBitmap(32, 32, 11)
	rb, err := ErodeDilate(b, 1, DirectionErode, ShapeRectangular)
	test.That(t, err, test.ShouldBeNil)
	ob, err := ErodeDilate(b, 1, DirectionErode, ShapeOctagonal)
	test.That(t, err, test.ShouldBeNil)
	rbm := rb.(*dimage.Bitmap)
	obm := ob.(*dimage.Bitmap)
	test.That(t, obm.Count(), test.ShouldBeGreaterThanOrEqualTo, rbm.Count())
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if rbm.Bit(r, c) == 1 {
				test.That(t, obm.Bit(r, c), test.ShouldEqual, 1)
			}
		}
	}
}

func TestFloatOps(t *testing.T) {
	src := dimage.NewFloatMapFromData(2, 2, []float64{
		1.5, 2.5,
		0.5, 3.5,
	})

	out, err := Erode(src)
	test.That(t, err, test.ShouldBeNil)
	fm := out.(*dimage.FloatMap)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			test.That(t, fm.At(r, c), test.ShouldEqual, 0.5)
		}
	}

	out, err = Dilate(src)
	test.That(t, err, test.ShouldBeNil)
	fm = out.(*dimage.FloatMap)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			test.That(t, fm.At(r, c), test.ShouldEqual, 3.5)
		}
	}

	out, err = Mean(src)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.(*dimage.FloatMap).At(0, 0), test.ShouldAlmostEqual, 15.5/9)

	out, err = Rank(src, 9)
	test.That(t, err, test.ShouldBeNil)
	dilated, err := Dilate(src)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dimage.Equal(out, dilated), test.ShouldBeTrue)

	flat := dimage.NewFloatMap(6, 11)
	flat.Fill(3.25)
	out, err = Mean(flat)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dimage.Equal(out, flat), test.ShouldBeTrue)
}

func TestInputUntouched(t *testing.T) {
	g := dimage.DrawDiscGrayMap(22, 30, 7)
	before := g.Clone()
	for _, run := range []func() (dimage.Image, error){
		func() (dimage.Image, error) { return Erode(g) },
		func() (dimage.Image, error) { return Dilate(g) },
		func() (dimage.Image, error) { return Rank(g, 5) },
		func() (dimage.Image, error) { return Mean(g) },
		func() (dimage.Image, error) { return ErodeDilate(g, 3, DirectionErode, ShapeOctagonal) },
	} {
		_, err := run()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, g.Equal(before), test.ShouldBeTrue)
	}

	b := dimage.DrawDiscBitmap(22, 30, 7)
	bBefore := b.Clone()
	_, err := ErodeDilate(b, 2, DirectionDilate, ShapeRectangular)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.Equal(bBefore), test.ShouldBeTrue)
}

func TestEmptyImages(t *testing.T) {
	for _, dims := range [][2]int{{0, 0}, {0, 5}, {5, 0}} {
		g := dimage.NewGrayMap(dims[0], dims[1])
		for _, run := range []func() (dimage.Image, error){
			func() (dimage.Image, error) { return Erode(g) },
			func() (dimage.Image, error) { return Dilate(g) },
			func() (dimage.Image, error) { return Rank(g, 5) },
			func() (dimage.Image, error) { return Mean(g) },
			func() (dimage.Image, error) { return ErodeDilate(g, 3, DirectionDilate, ShapeOctagonal) },
		} {
			out, err := run()
			test.That(t, err, test.ShouldBeNil)
			test.That(t, out.Kind(), test.ShouldEqual, dimage.PixelGray)
			test.That(t, out.Rows(), test.ShouldEqual, dims[0])
			test.That(t, out.Cols(), test.ShouldEqual, dims[1])
		}

		b := dimage.NewBitmap(dims[0], dims[1])
		out, err := ErodeDilate(b, 1, DirectionErode, ShapeRectangular)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out.Rows(), test.ShouldEqual, dims[0])
		test.That(t, out.Cols(), test.ShouldEqual, dims[1])

		f := dimage.NewFloatMap(dims[0], dims[1])
		out, err = Mean(f)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out.Kind(), test.ShouldEqual, dimage.PixelFloat)
		test.That(t, out.Rows(), test.ShouldEqual, dims[0])
	}
}

func TestArgumentValidation(t *testing.T) {
	g := gradientGrayMap()

	for _, count := range []int{-1, 11, 100} {
		out, err := ErodeDilate(g, count, DirectionErode, ShapeRectangular)
		test.That(t, out, test.ShouldBeNil)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, errors.Is(err, ErrInvalidArgument), test.ShouldBeTrue)
	}

	out, err := ErodeDilate(g, 1, Direction(3), ShapeRectangular)
	test.That(t, out, test.ShouldBeNil)
	test.That(t, errors.Is(err, ErrInvalidArgument), test.ShouldBeTrue)

	out, err = ErodeDilate(g, 1, DirectionErode, Shape(5))
	test.That(t, out, test.ShouldBeNil)
	test.That(t, errors.Is(err, ErrInvalidArgument), test.ShouldBeTrue)

	for _, k := range []int{0, 10, -4} {
		out, err = Rank(g, k)
		test.That(t, out, test.ShouldBeNil)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, errors.Is(err, ErrInvalidArgument), test.ShouldBeTrue)
	}

	b := dimage.NewBitmap(4, 4)
	out, err = Rank(b, 5)
	test.That(t, out, test.ShouldBeNil)
	test.That(t, errors.Is(err, ErrUnsupportedPixelType), test.ShouldBeTrue)

	out, err = Mean(b)
	test.That(t, out, test.ShouldBeNil)
	test.That(t, errors.Is(err, ErrUnsupportedPixelType), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bilevel")
}
