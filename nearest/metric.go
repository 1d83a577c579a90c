package nearest

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Metric is the distance between two expression profiles of equal length.
type Metric func(x, y []float64) float64

// Metrics are the distances available by name. The names match
// scipy.spatial.distance.cdist.
var Metrics = map[string]Metric{
	"euclidean": Euclidean,
	"sqeuclidean": func(x, y []float64) float64 {
		d := floats.Distance(x, y, 2)
		return d * d
	},
	"cityblock": func(x, y []float64) float64 {
		return floats.Distance(x, y, 1)
	},
	"chebyshev": func(x, y []float64) float64 {
		return floats.Distance(x, y, math.Inf(1))
	},
	"cosine":      Cosine,
	"correlation": Correlation,
}

// DefaultMetric is used unless WithMetric says otherwise.
const DefaultMetric = "euclidean"

func Euclidean(x, y []float64) float64 {
	return floats.Distance(x, y, 2)
}

// Cosine is one minus the cosine similarity. It is NaN if either profile is
// all zeros.
func Cosine(x, y []float64) float64 {
	return 1 - floats.Dot(x, y)/(floats.Norm(x, 2)*floats.Norm(y, 2))
}

// Correlation is one minus the Pearson correlation. It is NaN if either
// profile is constant.
func Correlation(x, y []float64) float64 {
	return 1 - stat.Correlation(x, y, nil)
}

// LookupMetric finds a metric by name.
func LookupMetric(name string) (Metric, error) {
	m, exists := Metrics[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("Metric %s is not found. Valid metric names include: %s", name, MetricNames())
	}

	return m, nil
}

// MetricNames lists the known metrics, sorted and comma separated.
func MetricNames() string {
	names := make([]string, 0, len(Metrics))
	for name := range Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}
