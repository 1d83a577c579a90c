package decompose

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ComponentColumn names the i'th component column.
func ComponentColumn(i int) string {
	return fmt.Sprintf("comp %d", i)
}

// WriteProjection writes one row per sample: the sample id, its coordinates
// and, when set, its label in a final tissue column.
func WriteProjection(w io.Writer, p *Projection) error {
	out := csv.NewWriter(w)
	out.Comma = '\t'

	k := p.Components()
	header := []string{"sample"}
	for c := 0; c < k; c++ {
		header = append(header, ComponentColumn(c))
	}
	if p.Labels != nil {
		header = append(header, "tissue")
	}
	if err := out.Write(header); err != nil {
		return err
	}

	for i, sample := range p.Samples {
		row := []string{sample}
		for c := 0; c < k; c++ {
			row = append(row, strconv.FormatFloat(p.Coords.At(i, c), 'g', -1, 64))
		}
		if p.Labels != nil {
			row = append(row, p.Labels[i])
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}
