// Package decompose projects expression matrices onto a few components so
// that samples can be plotted by tissue.
package decompose

import (
	"fmt"
	"math"

	"github.com/carbocation/runningvariance"
	"github.com/carbocation/tcgaexpr/exprmatrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Projection holds one row of coordinates per sample.
type Projection struct {
	Samples []string

	// Labels are the per-sample group names used for coloring, such as
	// tissues. Nil until set by the caller.
	Labels []string

	// Coords has one row per sample and one column per component.
	Coords *mat.Dense

	// ExplainedVarianceRatio has one entry per principal component found,
	// which may be more than the number of columns in Coords.
	ExplainedVarianceRatio []float64
}

// Components is the number of projected dimensions.
func (p *Projection) Components() int {
	_, c := p.Coords.Dims()
	return c
}

// DropConstantGenes removes genes whose expression does not vary across
// samples, or that have any missing value. Neither can inform a projection.
// It returns the filtered matrix and the number of genes removed.
func DropConstantGenes(m *exprmatrix.Matrix) (*exprmatrix.Matrix, int, error) {
	genes, samples := m.Dims()
	all := m.Genes()

	keep := make([]string, 0, genes)
Genes:
	for i := 0; i < genes; i++ {
		rs := runningvariance.NewRunningStat()
		for j := 0; j < samples; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) {
				continue Genes
			}
			rs.Push(v)
		}
		if sd := rs.StandardDeviation(); sd > 0 && !math.IsNaN(sd) {
			keep = append(keep, all[i])
		}
	}

	if len(keep) == 0 {
		return nil, genes, fmt.Errorf("all %d genes are constant or incomplete across %d samples", genes, samples)
	}
	if len(keep) == genes {
		return m, 0, nil
	}

	out, err := m.SelectGenes(keep)
	return out, genes - len(keep), err
}

// PCA treats samples as observations and genes as variables and projects the
// mean-centered samples onto the first components principal components.
func PCA(m *exprmatrix.Matrix, components int) (*Projection, error) {
	if components < 1 {
		return nil, fmt.Errorf("need at least 1 component, got %d", components)
	}

	genes, samples := m.Dims()
	if samples < 2 {
		return nil, fmt.Errorf("need at least 2 samples for PCA, got %d", samples)
	}

	// samples x genes
	obs := mat.DenseCopyOf(m.Dense().T())

	var pc stat.PC
	if ok := pc.PrincipalComponents(obs, nil); !ok {
		return nil, fmt.Errorf("principal component analysis of %d samples x %d genes failed", samples, genes)
	}

	vars := pc.VarsTo(nil)
	if components > len(vars) {
		return nil, fmt.Errorf("asked for %d components but only %d exist for %d samples x %d genes", components, len(vars), samples, genes)
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	for j := 0; j < genes; j++ {
		col := mat.Col(nil, j, obs)
		mean := floats.Sum(col) / float64(samples)
		floats.AddConst(-mean, col)
		obs.SetCol(j, col)
	}

	var coords mat.Dense
	coords.Mul(obs, vecs.Slice(0, genes, 0, components))

	ratio := make([]float64, len(vars))
	if total := floats.Sum(vars); total > 0 {
		floats.ScaleTo(ratio, 1/total, vars)
	}

	return &Projection{
		Samples:                m.Samples(),
		Coords:                 &coords,
		ExplainedVarianceRatio: ratio,
	}, nil
}
