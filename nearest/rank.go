package nearest

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Ties selects how tied values share ranks. The names follow
// scipy.stats.rankdata.
type Ties int

const (
	// TiesAverage gives every member of a tie the mean of the ranks it spans.
	TiesAverage Ties = iota
	// TiesMin gives every member of a tie the lowest rank it spans.
	TiesMin
	// TiesMax gives every member of a tie the highest rank it spans.
	TiesMax
	// TiesDense is like TiesMin, but the next distinct value gets the next
	// integer rank rather than skipping over the tie.
	TiesDense
	// TiesOrdinal breaks ties by position.
	TiesOrdinal
)

var tiesNames = map[Ties]string{
	TiesAverage: "average",
	TiesMin:     "min",
	TiesMax:     "max",
	TiesDense:   "dense",
	TiesOrdinal: "ordinal",
}

func (t Ties) String() string {
	if name, exists := tiesNames[t]; exists {
		return name
	}
	return fmt.Sprintf("Ties(%d)", int(t))
}

// ParseTies maps a tie method name to its Ties value.
func ParseTies(name string) (Ties, error) {
	for t, n := range tiesNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return TiesAverage, fmt.Errorf("tie method %q is not known. Valid tie methods include: average, min, max, dense, ordinal", name)
}

// Rank returns the 1-based rank of every value in x, in x's order. NaN sorts
// after every other value and NaNs tie with each other.
func Rank(x []float64, ties Ties) []float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return less(x[idx[a]], x[idx[b]]) })

	ranks := make([]float64, len(x))
	dense := 0
	for start := 0; start < len(idx); {
		end := start + 1
		for end < len(idx) && same(x[idx[start]], x[idx[end]]) {
			end++
		}
		dense++

		// The tie spans sorted positions start..end-1, i.e. ranks start+1..end
		for pos := start; pos < end; pos++ {
			var r float64
			switch ties {
			case TiesMin:
				r = float64(start + 1)
			case TiesMax:
				r = float64(end)
			case TiesDense:
				r = float64(dense)
			case TiesOrdinal:
				r = float64(pos + 1)
			default:
				r = float64(start+1+end) / 2
			}
			ranks[idx[pos]] = r
		}

		start = end
	}

	return ranks
}

func less(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}

func same(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
