// Package exprmatrix holds gene expression tables: genes as rows, samples as
// columns, each identified by a unique label.
package exprmatrix

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrNoCommonGenes is returned by Intersect when two matrices share no gene
// identifiers.
var ErrNoCommonGenes = errors.New("no common genes")

// Matrix is an expression table. Gene and sample identifiers are unique. A
// Matrix is never modified after construction; the transforming methods
// return copies.
type Matrix struct {
	genes   []string
	samples []string
	geneIdx map[string]int
	data    *mat.Dense
}

// New builds a matrix from row-major values with len(genes) rows and
// len(samples) columns.
func New(genes, samples []string, data []float64) (*Matrix, error) {
	if len(genes) == 0 || len(samples) == 0 {
		return nil, fmt.Errorf("matrix needs at least one gene and one sample, got %d genes and %d samples", len(genes), len(samples))
	}
	if x, want := len(data), len(genes)*len(samples); x != want {
		return nil, fmt.Errorf("%d genes x %d samples needs %d values, got %d", len(genes), len(samples), want, x)
	}

	geneIdx, err := indexUnique("gene", genes)
	if err != nil {
		return nil, err
	}
	if _, err := indexUnique("sample", samples); err != nil {
		return nil, err
	}

	return &Matrix{
		genes:   append([]string(nil), genes...),
		samples: append([]string(nil), samples...),
		geneIdx: geneIdx,
		data:    mat.NewDense(len(genes), len(samples), append([]float64(nil), data...)),
	}, nil
}

// FromVector builds a single-column matrix for one sample, the matrix form of
// a one-dimensional expression profile.
func FromVector(genes []string, sample string, values []float64) (*Matrix, error) {
	if len(values) != len(genes) {
		return nil, fmt.Errorf("sample %s: %d values for %d genes", sample, len(values), len(genes))
	}

	return New(genes, []string{sample}, values)
}

func indexUnique(kind string, ids []string) (map[string]int, error) {
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		if prior, exists := idx[id]; exists {
			return nil, fmt.Errorf("duplicate %s identifier %q (positions %d and %d)", kind, id, prior, i)
		}
		idx[id] = i
	}

	return idx, nil
}

// Empty reports whether m holds no values, as with a nil or zero Matrix.
func (m *Matrix) Empty() bool {
	return m == nil || m.data == nil
}

// Dims returns the number of genes and samples.
func (m *Matrix) Dims() (genes, samples int) {
	return m.data.Dims()
}

// Genes returns a copy of the gene identifiers in row order.
func (m *Matrix) Genes() []string {
	return append([]string(nil), m.genes...)
}

// Samples returns a copy of the sample identifiers in column order.
func (m *Matrix) Samples() []string {
	return append([]string(nil), m.samples...)
}

// HasGene reports whether the gene is a row of m.
func (m *Matrix) HasGene(gene string) bool {
	_, exists := m.geneIdx[gene]
	return exists
}

func (m *Matrix) At(gene, sample int) float64 {
	return m.data.At(gene, sample)
}

// Col returns a copy of the expression profile of sample j.
func (m *Matrix) Col(j int) []float64 {
	return mat.Col(nil, j, m.data)
}

// Dense exposes the values as a read-only gonum matrix.
func (m *Matrix) Dense() mat.Matrix {
	return m.data
}

// SelectGenes returns a matrix with only the named genes, in the given order.
func (m *Matrix) SelectGenes(genes []string) (*Matrix, error) {
	_, c := m.Dims()
	data := make([]float64, 0, len(genes)*c)
	for _, gene := range genes {
		i, exists := m.geneIdx[gene]
		if !exists {
			return nil, fmt.Errorf("gene %q is not in the matrix", gene)
		}
		data = append(data, m.data.RawRowView(i)...)
	}

	return New(genes, m.samples, data)
}

// Log1p returns a copy with log(1+x) applied to every value.
func (m *Matrix) Log1p() *Matrix {
	out := *m
	out.data = mat.DenseCopyOf(m.data)
	out.data.Apply(func(_, _ int, v float64) float64 { return math.Log1p(v) }, out.data)

	return &out
}

// Intersect restricts a and b to the genes they share, keeping a's row order.
// ErrNoCommonGenes is returned if there are none.
func Intersect(a, b *Matrix) (*Matrix, *Matrix, error) {
	common := make([]string, 0, len(a.genes))
	for _, gene := range a.genes {
		if b.HasGene(gene) {
			common = append(common, gene)
		}
	}
	if len(common) == 0 {
		return nil, nil, ErrNoCommonGenes
	}

	// Nothing to drop on either side
	if len(common) == len(a.genes) && len(common) == len(b.genes) && sameOrder(common, b.genes) {
		return a, b, nil
	}

	ra, err := a.SelectGenes(common)
	if err != nil {
		return nil, nil, err
	}
	rb, err := b.SelectGenes(common)
	if err != nil {
		return nil, nil, err
	}

	return ra, rb, nil
}

func sameOrder(x, y []string) bool {
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// StripVersion removes the version suffix from an Ensembl identifier, e.g.
// ENSG00000141510.16 becomes ENSG00000141510.
func StripVersion(id string) string {
	if i := strings.IndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return id
}
