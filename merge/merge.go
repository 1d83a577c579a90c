package merge

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/tcgaexpr"
	"github.com/carbocation/tcgaexpr/exprmatrix"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// Merge builds a matrix over the genes present in every sample, in the order
// of the first sample. Sample barcodes must be unique.
func Merge(samples []*Sample) (*exprmatrix.Matrix, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples to merge")
	}

	// gene => number of samples it appears in
	seen := make(map[string]int)
	lookups := make([]map[string]float64, len(samples))
	for i, s := range samples {
		lookups[i] = make(map[string]float64, len(s.Genes))
		for j, gene := range s.Genes {
			lookups[i][gene] = s.Values[j]
			seen[gene]++
		}
	}

	var genes []string
	for _, gene := range samples[0].Genes {
		if seen[gene] == len(samples) {
			genes = append(genes, gene)
		}
	}
	if dropped := len(seen) - len(genes); dropped > 0 {
		log.Printf("Dropped %d genes that were not present in all %d samples\n", dropped, len(samples))
	}
	if len(genes) == 0 {
		return nil, fmt.Errorf("no gene is present in all %d samples", len(samples))
	}

	barcodes := make([]string, len(samples))
	for j, s := range samples {
		barcodes[j] = s.Barcode
	}

	data := make([]float64, 0, len(genes)*len(samples))
	for _, gene := range genes {
		for j := range samples {
			data = append(data, lookups[j][gene])
		}
	}

	return exprmatrix.New(genes, barcodes, data)
}

// Loader reads the per-sample files named in a sample sheet.
type Loader struct {
	Dir    string
	Keep   map[string]struct{}
	Scale  float64
	Client *storage.Client

	// Concurrency bounds the number of files open at once. Values below 1
	// mean one at a time.
	Concurrency int
}

// Load reads every sample in the sheet, preserving the sheet's order.
func (l Loader) Load(ctx context.Context, sheet []SampleSheetRow) ([]*Sample, error) {
	scale := l.Scale
	if scale == 0 {
		scale = DefaultScale
	}
	limit := l.Concurrency
	if limit < 1 {
		limit = 1
	}

	out := make([]*Sample, len(sheet))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, row := range sheet {
		i, row := i, row
		g.Go(func() error {
			rc, err := tcgaexpr.Open(ctx, row.Path(l.Dir), l.Client)
			if err != nil {
				return pfx.Err(err)
			}
			defer rc.Close()

			s, err := ReadSample(rc, row.SampleID, l.Keep, scale)
			if err != nil {
				return pfx.Err(err)
			}
			out[i] = s

			if (i+1)%100 == 0 {
				log.Println("Loaded", i+1, "of", len(sheet), "samples")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// LibrarySizes summarizes the raw count totals across samples.
func LibrarySizes(samples []*Sample) (median, min, max float64, err error) {
	totals := make([]float64, len(samples))
	for i, s := range samples {
		totals[i] = s.RawTotal
	}

	if median, err = stats.Median(totals); err != nil {
		return
	}
	if min, err = stats.Min(totals); err != nil {
		return
	}
	max, err = stats.Max(totals)
	return
}
