// Package main is a command that runs neighborhood filters over image files
// and inspects the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/edaniels/golog"

	"github.com/pagescan/dimage"
	"github.com/pagescan/dimage/morph"
	"github.com/pagescan/dimage/utils"
)

var logger = golog.NewDevelopmentLogger("morph")

func main() {
	err := realMain(os.Args[1:])
	if err != nil {
		logger.Fatal(err)
	}
}

func apply(args []string) error {
	flags := flag.NewFlagSet("apply", flag.ContinueOnError)
	opName := flags.String("op", "erode_dilate", "operation to run, one of "+strings.Join(morph.Names(), ", "))
	kindName := flags.String("kind", "gray", "pixel type to load the input as (bilevel, gray, float)")
	count := flags.Int("count", 1, "number of passes for erode_dilate, 0..10")
	dirName := flags.String("direction", "dilate", "erode_dilate primitive, erode or dilate")
	shapeName := flags.String("shape", "rectangular", "neighborhood shape, rectangular or octagonal")
	rank := flags.Int("rank", 5, "rank to select, 1..9; 5 is the median")
	threshold := flags.Int("threshold", -1, "bilevel binarization level 0..255; -1 picks one from the histogram")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 2 {
		return fmt.Errorf("apply needs <in> <out>")
	}

	kind, err := dimage.ParsePixelType(*kindName)
	if err != nil {
		return err
	}
	dir, err := morph.ParseDirection(*dirName)
	if err != nil {
		return err
	}
	shape, err := morph.ParseShape(*shapeName)
	if err != nil {
		return err
	}
	op, err := morph.Lookup(*opName)
	if err != nil {
		return err
	}

	img, err := readInput(flags.Arg(0), kind, *threshold)
	if err != nil {
		return err
	}
	out, err := op.Apply(img, morph.Args{Count: *count, Direction: dir, Shape: shape, K: *rank})
	if err != nil {
		return err
	}
	logger.Debugf("%s on %dx%d %s image", op.Name, img.Rows(), img.Cols(), img.Kind())
	return dimage.WriteImageToFile(flags.Arg(1), out)
}

func readInput(path string, kind dimage.PixelType, threshold int) (dimage.Image, error) {
	if kind == dimage.PixelBilevel && threshold >= 0 {
		if threshold > 255 {
			return nil, fmt.Errorf("threshold %d is outside 0..255", threshold)
		}
		gray, err := dimage.ReadImageFromFile(path, dimage.PixelGray)
		if err != nil {
			return nil, err
		}
		return gray.(*dimage.GrayMap).Threshold(uint8(threshold)), nil
	}
	return dimage.ReadImageFromFile(path, kind)
}

func info(args []string) error {
	flags := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 1 {
		return fmt.Errorf("info needs at least one image file")
	}
	for _, path := range flags.Args() {
		fi, err := dimage.ImageInfo(path)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %dx%d %d-bit %s\n", path, fi.Cols, fi.Rows, fi.BitDepth, fi.Format)
	}
	return nil
}

func stats(args []string) error {
	flags := flag.NewFlagSet("stats", flag.ContinueOnError)
	kindName := flags.String("kind", "gray", "pixel type to load the inputs as (bilevel, gray, float)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 1 {
		return fmt.Errorf("stats needs at least one image file")
	}
	kind, err := dimage.ParsePixelType(*kindName)
	if err != nil {
		return err
	}

	lines := make([]string, flags.NArg())
	fs := make([]utils.SimpleFunc, 0, flags.NArg())
	for i, path := range flags.Args() {
		i, path := i, path
		fs = append(fs, func(ctx context.Context) error {
			img, err := dimage.ReadImageFromFile(path, kind)
			if err != nil {
				return err
			}
			s, err := dimage.ImageStats(img)
			if err != nil {
				return err
			}
			lines[i] = fmt.Sprintf("%s: min %.2f max %.2f mean %.2f median %.2f stddev %.2f",
				path, s.Min, s.Max, s.Mean, s.Median, s.StdDev)
			return nil
		})
	}
	elapsed, err := utils.RunInParallel(context.Background(), fs)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	logger.Debugf("processed %d files in %v", flags.NArg(), elapsed)
	return nil
}

func list(args []string) error {
	for _, op := range morph.Operations() {
		kinds := make([]string, len(op.Kinds))
		for i, k := range op.Kinds {
			kinds[i] = k.String()
		}
		fmt.Printf("%s (%s)\n", op.Name, strings.Join(kinds, ", "))
	}
	return nil
}

func realMain(args []string) error {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	err := flags.Parse(args)
	if err != nil {
		return err
	}

	if flags.NArg() < 1 {
		return fmt.Errorf("need to specify a command")
	}

	cmd := flags.Arg(0)

	switch cmd {
	case "apply":
		return apply(flags.Args()[1:])
	case "info":
		return info(flags.Args()[1:])
	case "stats":
		return stats(flags.Args()[1:])
	case "list":
		return list(flags.Args()[1:])
	default:
		return fmt.Errorf("unknown command: [%s]", cmd)
	}
}
