package main

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/carbocation/tcgaexpr/nearest"
)

var outputHeader = []string{"sample", "nearest", "min_rank", "min_distance"}

func writeMembership(w io.Writer, result *nearest.Membership) error {
	out := csv.NewWriter(w)
	out.Comma = '\t'

	if err := out.Write(outputHeader); err != nil {
		return err
	}

	for i, sample := range result.Samples {
		if err := out.Write([]string{
			sample,
			strconv.FormatBool(result.Nearest[i]),
			strconv.FormatFloat(result.MinRank(i), 'g', -1, 64),
			strconv.FormatFloat(result.MinDistance(i), 'g', -1, 64),
		}); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}
