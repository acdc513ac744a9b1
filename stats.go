package dimage

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// Stats summarizes the pixel intensities of an image on its native scale.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
}

// ImageStats computes summary statistics over every pixel of img. Bilevel
// pixels contribute 0 or 1. Empty images are an error.
func ImageStats(img Image) (Stats, error) {
	if img.Rows() == 0 || img.Cols() == 0 {
		return Stats{}, errors.New("cannot summarize an empty image")
	}
	data := pixelValues(img)

	var s Stats
	var err error
	if s.Min, err = stats.Min(data); err != nil {
		return Stats{}, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Stats{}, err
	}
	if s.Mean, err = stats.Mean(data); err != nil {
		return Stats{}, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Stats{}, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Stats{}, err
	}
	return s, nil
}
