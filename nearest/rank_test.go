package nearest

import (
	"math"
	"testing"
)

// Expected values from scipy.stats.rankdata([0, 2, 3, 2], method=...)
func TestRank(t *testing.T) {
	x := []float64{0, 2, 3, 2}
	for _, v := range []struct {
		ties Ties
		want []float64
	}{
		{TiesAverage, []float64{1, 2.5, 4, 2.5}},
		{TiesMin, []float64{1, 2, 4, 2}},
		{TiesMax, []float64{1, 3, 4, 3}},
		{TiesDense, []float64{1, 2, 3, 2}},
		{TiesOrdinal, []float64{1, 2, 4, 3}},
	} {
		got := Rank(x, v.ties)
		for i := range got {
			if got[i] != v.want[i] {
				t.Errorf("%s: got %v, expected %v", v.ties, got, v.want)
				break
			}
		}
	}
}

func TestRankNaNLast(t *testing.T) {
	got := Rank([]float64{math.NaN(), 1, math.NaN(), 0}, TiesAverage)
	want := []float64{3.5, 2, 3.5, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, expected %v", got, want)
		}
	}
}

func TestRankEmpty(t *testing.T) {
	if got := Rank(nil, TiesAverage); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}

func TestParseTies(t *testing.T) {
	for _, name := range []string{"average", "min", "max", "dense", "ordinal", "MIN"} {
		ties, err := ParseTies(name)
		if err != nil {
			t.Fatal(err)
		}
		if ties.String() != name && name != "MIN" {
			t.Errorf("round trip of %q gave %q", name, ties)
		}
	}
	if _, err := ParseTies("first"); err == nil {
		t.Error("expected an error for an unknown tie method")
	}
}
