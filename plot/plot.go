// Package plot renders projections of expression data as PNG charts.
package plot

import (
	"fmt"
	"io"
	"sort"

	"github.com/carbocation/tcgaexpr/decompose"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	Width  = 1024
	Height = 768

	// Unlabeled is the legend entry for a projection without labels.
	Unlabeled = "samples"
)

// Projection draws the first two components of p as a scatter plot, one
// color per label.
func Projection(w io.Writer, p *decompose.Projection, title string) error {
	if p.Components() < 2 {
		return fmt.Errorf("need at least 2 components to plot, have %d", p.Components())
	}

	groups := make(map[string]*chart.ContinuousSeries)
	for i := range p.Samples {
		label := Unlabeled
		if p.Labels != nil {
			label = p.Labels[i]
		}

		s, exists := groups[label]
		if !exists {
			s = &chart.ContinuousSeries{Name: label}
			groups[label] = s
		}
		s.XValues = append(s.XValues, p.Coords.At(i, 0))
		s.YValues = append(s.YValues, p.Coords.At(i, 1))
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	series := make([]chart.Series, 0, len(labels))
	for i, label := range labels {
		s := groups[label]
		s.Style = chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    3,
			DotColor:    chart.GetDefaultColor(i),
		}
		series = append(series, *s)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis:  chart.XAxis{Name: decompose.ComponentColumn(0)},
		YAxis:  chart.YAxis{Name: decompose.ComponentColumn(1)},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// ExplainedVariance draws the fraction of variance explained by each
// component, in component order.
func ExplainedVariance(w io.Writer, ratios []float64, title string) error {
	if len(ratios) == 0 {
		return fmt.Errorf("no explained variance ratios to plot")
	}

	x := make([]float64, len(ratios))
	for i := range x {
		x[i] = float64(i)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  Width,
		Height: Height / 2,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "component",
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(ratios)) - 0.5},
		},
		YAxis: chart.YAxis{
			Name:  "explained variance ratio",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: x,
				YValues: ratios,
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 2,
					DotWidth:    4,
					DotColor:    chart.GetDefaultColor(0),
				},
			},
		},
	}

	return graph.Render(chart.PNG, w)
}
