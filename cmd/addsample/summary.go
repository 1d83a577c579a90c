package main

import (
	"fmt"
	"io"
	"math"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/tcgaexpr/nearest"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

func checkBins(bins int) error {
	if bins < 1 {
		return fmt.Errorf("-bins must be at least 1, got %d", bins)
	}
	return nil
}

// finiteDistances returns the distances that are not NaN and how many were
// left out.
func finiteDistances(distances []float64) ([]float64, int) {
	out := make([]float64, 0, len(distances))
	for _, v := range distances {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}

	return out, len(distances) - len(out)
}

// summarizeDistances computes the median of the non-NaN distances and, if
// hist is not nil, prints their histogram to it. It also returns the number
// of NaN distances.
func summarizeDistances(hist io.Writer, result *nearest.Membership, bins int) (float64, int, error) {
	if err := checkBins(bins); err != nil {
		return 0, 0, err
	}

	distances, missing := finiteDistances(result.Distances.RawMatrix().Data)
	if len(distances) == 0 {
		return math.NaN(), missing, nil
	}

	median, err := stats.Median(distances)
	if err != nil {
		return 0, missing, err
	}

	if hist != nil {
		if lo, hi := floats.Min(distances), floats.Max(distances); lo == hi {
			// Hist divides by the range
			fmt.Fprintf(hist, "All %d distances are %g\n", len(distances), lo)
			return median, missing, nil
		}

		h := histogram.Hist(bins, distances)
		if err := histogram.Fprint(hist, h, histogram.Linear(40)); err != nil {
			return 0, missing, err
		}
	}

	return median, missing, nil
}
