// Package nearest ranks reference expression profiles by their distance to one
// or more new samples and reports which reference samples fall within the k
// closest.
//
// By default all reference/query distances are ranked together, so a single
// top-k threshold is shared by every query sample. PerQueryTopK ranks each
// query sample's distances on their own instead.
//
// Tied distances get the average of the ranks they span, as
// scipy.stats.rankdata does. Two reference samples tied for closest both rank
// 1.5 and so are not flagged when k is 1. Use WithTies(TiesMin) to give every
// tied distance the lowest rank instead.
package nearest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/carbocation/tcgaexpr/exprmatrix"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidK         = errors.New("k must be a positive integer")
	ErrNoCommonFeatures = errors.New("no common features between reference and query")
	ErrQueryShape       = errors.New("query must be addressable as a 2-D sample matrix")
)

// Policy decides which distances compete for the k lowest ranks.
type Policy int

const (
	// JointTopK ranks the flattened reference x query distance matrix.
	JointTopK Policy = iota
	// PerQueryTopK ranks each query sample's column separately.
	PerQueryTopK
)

func (p Policy) String() string {
	switch p {
	case JointTopK:
		return "joint"
	case PerQueryTopK:
		return "perquery"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(name) {
	case "joint":
		return JointTopK, nil
	case "perquery", "per-query":
		return PerQueryTopK, nil
	}
	return JointTopK, fmt.Errorf("policy %q is not known. Valid policies include: joint, perquery", name)
}

// ParseK parses a neighbor count given as text. Anything other than a
// positive integer is rejected with ErrInvalidK.
func ParseK(s string) (int, error) {
	k, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || k <= 0 {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidK, s)
	}
	return k, nil
}

type config struct {
	metric     Metric
	metricName string
	policy     Policy
	ties       Ties
}

type Option func(*config)

// WithMetric replaces the Euclidean distance. name is only used for
// reporting.
func WithMetric(name string, m Metric) Option {
	return func(c *config) {
		c.metricName = name
		c.metric = m
	}
}

func WithPolicy(p Policy) Option {
	return func(c *config) { c.policy = p }
}

func WithTies(t Ties) Option {
	return func(c *config) { c.ties = t }
}

// Membership is the outcome of FindNearest. Nearest[i] reports whether
// Samples[i] ranked within the k closest.
type Membership struct {
	Samples []string
	Nearest []bool

	// Queries are the query sample names. Distances and Ranks have one row
	// per reference sample and one column per query sample.
	Queries   []string
	Distances *mat.Dense
	Ranks     *mat.Dense

	// Genes is the number of shared genes the distances were computed over.
	Genes int

	K      int
	Metric string
	Policy Policy
	Ties   Ties
}

// Map returns reference sample => nearest.
func (m *Membership) Map() map[string]bool {
	out := make(map[string]bool, len(m.Samples))
	for i, sample := range m.Samples {
		out[sample] = m.Nearest[i]
	}
	return out
}

// Count is the number of reference samples flagged as nearest.
func (m *Membership) Count() int {
	n := 0
	for _, v := range m.Nearest {
		if v {
			n++
		}
	}
	return n
}

// MinRank is the best rank reference sample i achieved against any query.
func (m *Membership) MinRank(i int) float64 {
	return minOf(m.Ranks.RawRowView(i))
}

// MinDistance is the distance from reference sample i to its closest query.
func (m *Membership) MinDistance(i int) float64 {
	return minOf(m.Distances.RawRowView(i))
}

func minOf(x []float64) float64 {
	best := x[0]
	for _, v := range x[1:] {
		if less(v, best) {
			best = v
		}
	}
	return best
}

// FindNearest flags the reference samples whose distance to any query sample
// ranks within the k lowest. Both matrices are first restricted to the genes
// they share. Neither input is modified.
func FindNearest(reference, query *exprmatrix.Matrix, k int, opts ...Option) (*Membership, error) {
	cfg := config{
		metric:     Euclidean,
		metricName: DefaultMetric,
		policy:     JointTopK,
		ties:       TiesAverage,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if reference.Empty() {
		return nil, errors.New("reference must have at least one gene and one sample")
	}
	if query.Empty() {
		return nil, ErrQueryShape
	}

	ref, qry, err := exprmatrix.Intersect(reference, query)
	if errors.Is(err, exprmatrix.ErrNoCommonGenes) {
		return nil, ErrNoCommonFeatures
	} else if err != nil {
		return nil, err
	}

	genes, n := ref.Dims()
	_, m := qry.Dims()

	queryCols := make([][]float64, m)
	for j := range queryCols {
		queryCols[j] = qry.Col(j)
	}

	dist := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		refCol := ref.Col(i)
		for j, queryCol := range queryCols {
			dist.Set(i, j, cfg.metric(refCol, queryCol))
		}
	}

	ranks := rankDistances(dist, cfg.policy, cfg.ties)

	out := &Membership{
		Samples:   ref.Samples(),
		Nearest:   make([]bool, n),
		Queries:   qry.Samples(),
		Distances: dist,
		Ranks:     ranks,
		Genes:     genes,
		K:         k,
		Metric:    cfg.metricName,
		Policy:    cfg.policy,
		Ties:      cfg.ties,
	}

	threshold := float64(k)
	for i := 0; i < n; i++ {
		for _, r := range ranks.RawRowView(i) {
			if r <= threshold {
				out.Nearest[i] = true
				break
			}
		}
	}

	return out, nil
}

// FindNearestProfile is FindNearest for a single new sample given as a
// one-dimensional profile over genes.
func FindNearestProfile(reference *exprmatrix.Matrix, genes []string, sample string, values []float64, k int, opts ...Option) (*Membership, error) {
	query, err := exprmatrix.FromVector(genes, sample, values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryShape, err)
	}

	return FindNearest(reference, query, k, opts...)
}

func rankDistances(dist *mat.Dense, policy Policy, ties Ties) *mat.Dense {
	n, m := dist.Dims()

	if policy == PerQueryTopK {
		ranks := mat.NewDense(n, m, nil)
		for j := 0; j < m; j++ {
			ranks.SetCol(j, Rank(mat.Col(nil, j, dist), ties))
		}
		return ranks
	}

	// RawMatrix of a freshly allocated Dense is contiguous and row-major, so
	// this is the flattened matrix.
	return mat.NewDense(n, m, Rank(dist.RawMatrix().Data, ties))
}
