// Package merge combines per-sample expression count files, as downloaded
// from the GDC, into a single genes x samples matrix.
package merge

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/tcgaexpr/exprmatrix"
)

// DefaultScale is the total each sample is normalized to.
const DefaultScale = 10e6

// Sample is one normalized expression profile.
type Sample struct {
	Barcode string
	Genes   []string
	Values  []float64

	// RawTotal is the sum of all counts in the file, before any gene was
	// dropped.
	RawTotal float64
}

// ReadSample parses a headerless gene<TAB>count file. Ensembl versions are
// stripped from the gene identifiers and counts of genes that collapse onto
// the same identifier are summed. Counts are scaled so that the whole file,
// including rows that are later dropped, sums to scale. If keep is non-nil,
// only genes in keep are returned.
func ReadSample(r io.Reader, barcode string, keep map[string]struct{}, scale float64) (*Sample, error) {
	var (
		order  []string
		counts = make(map[string]float64)
		total  float64
	)

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		cols := strings.Split(text, "\t")
		if len(cols) < 2 {
			return nil, fmt.Errorf("%s line %d: expected gene and count, got %q", barcode, line, text)
		}

		count, err := strconv.ParseFloat(strings.TrimSpace(cols[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", barcode, line, err)
		}
		total += count

		gene := exprmatrix.StripVersion(cols[0])
		if _, seen := counts[gene]; !seen {
			order = append(order, gene)
		}
		counts[gene] += count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", barcode, err)
	}

	if total <= 0 {
		return nil, fmt.Errorf("%s: counts sum to %v, cannot normalize", barcode, total)
	}

	out := &Sample{Barcode: barcode, RawTotal: total}
	for _, gene := range order {
		if keep != nil {
			if _, wanted := keep[gene]; !wanted {
				continue
			}
		}
		out.Genes = append(out.Genes, gene)
		out.Values = append(out.Values, counts[gene]/total*scale)
	}

	if len(out.Genes) == 0 {
		return nil, fmt.Errorf("%s: no genes remained after filtering", barcode)
	}

	return out, nil
}

// GeneSet builds the keep set for ReadSample from a list of identifiers,
// stripping Ensembl versions.
func GeneSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[exprmatrix.StripVersion(id)] = struct{}{}
	}
	return out
}
