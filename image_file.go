package dimage

import (
	"bufio"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmittmann/ppm"
	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
	"golang.org/x/image/tiff"
)

// IsImageFile returns whether the file has an extension this package can
// decode.
func IsImageFile(fn string) bool {
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".ppm", ".qoi":
		return true
	default:
		return false
	}
}

// ReadImageFromFile decodes the file at path into a container of the
// requested kind. Color inputs are collapsed to luminance; bilevel reads
// binarize at the image's Otsu level.
func ReadImageFromFile(path string, kind PixelType) (Image, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	switch kind {
	case PixelBilevel:
		gray := NewGrayMapFromImage(img)
		return gray.Threshold(gray.OtsuLevel()), nil
	case PixelGray:
		return NewGrayMapFromImage(img), nil
	case PixelFloat:
		return NewFloatMapFromImage(img), nil
	default:
		return nil, errors.Errorf("unknown pixel type %v", kind)
	}
}

func decodeFile(path string) (image.Image, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	r := bufio.NewReader(f)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".tif", ".tiff":
		return tiff.Decode(r)
	case ".ppm":
		return ppm.Decode(r)
	case ".qoi":
		return qoi.Decode(r)
	default:
		img, _, err := image.Decode(r)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot decode %s", path)
		}
		return img, nil
	}
}

// ToGrayImage renders any container as a standard library greyscale image.
// Bilevel ink becomes black on white; float values are clamped and rounded.
func ToGrayImage(img Image) *image.Gray {
	switch m := img.(type) {
	case *Bitmap:
		return m.ToGray()
	case *GrayMap:
		return m.ToGray()
	case *FloatMap:
		return m.ToGray()
	default:
		panic(errors.Errorf("dimage: no greyscale rendering for %T", img))
	}
}

// WriteImageToFile encodes img to path in the format named by its extension.
// All formats write 8-bit greyscale pixels; see ToGrayImage for how each
// kind is rendered.
func WriteImageToFile(path string, img Image) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	gray := ToGrayImage(img)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(f, gray)
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, gray, nil)
	case ".tif", ".tiff":
		return tiff.Encode(f, gray, nil)
	case ".ppm":
		return ppm.Encode(f, gray)
	case ".qoi":
		return qoi.Encode(f, gray)
	default:
		return errors.Errorf("%s has an unsupported image extension", path)
	}
}

// Info describes an image file without decoding all of its pixels.
type Info struct {
	Cols     int
	Rows     int
	BitDepth int
	Format   string
}

// ImageInfo probes the file header at path. The format name is the one the
// decoder registered, such as "png" or "tiff".
func ImageInfo(path string) (Info, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	cfg, format, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return Info{}, errors.Wrapf(err, "cannot probe %s", path)
	}
	return Info{
		Cols:     cfg.Width,
		Rows:     cfg.Height,
		BitDepth: bitDepth(cfg.ColorModel),
		Format:   format,
	}, nil
}

func bitDepth(model color.Model) int {
	switch model {
	case color.GrayModel:
		return 8
	case color.Gray16Model:
		return 16
	case color.RGBAModel, color.NRGBAModel, color.CMYKModel:
		return 32
	case color.RGBA64Model, color.NRGBA64Model:
		return 64
	case color.YCbCrModel:
		return 24
	default:
		if _, ok := model.(color.Palette); ok {
			return 8
		}
		return 24
	}
}
