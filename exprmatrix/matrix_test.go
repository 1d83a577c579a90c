package exprmatrix

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const tcgaSnippet = "gene\tTCGA-A1\tTCGA-A2\tTCGA-A3\n" +
	"ENSG01\t1.5\t0\t12\n" +
	"ENSG02\t3\t4.25\tNA\n"

func TestRead(t *testing.T) {
	m, err := Read(strings.NewReader(tcgaSnippet))
	if err != nil {
		t.Fatal(err)
	}

	if g, s := m.Dims(); g != 2 || s != 3 {
		t.Fatalf("got %d genes x %d samples, expected 2 x 3", g, s)
	}
	if got := m.Samples(); got[0] != "TCGA-A1" || got[2] != "TCGA-A3" {
		t.Errorf("samples %v", got)
	}
	if got := m.Genes(); got[1] != "ENSG02" {
		t.Errorf("genes %v", got)
	}
	if m.At(1, 1) != 4.25 {
		t.Errorf("At(1,1) = %v", m.At(1, 1))
	}
	if !math.IsNaN(m.At(1, 2)) {
		t.Errorf("expected NA to parse as NaN, got %v", m.At(1, 2))
	}
	if col := m.Col(0); col[0] != 1.5 || col[1] != 3 {
		t.Errorf("Col(0) = %v", col)
	}
}

func TestReadUnlabeledIndex(t *testing.T) {
	// pandas writes an index without a name as a header that is one field
	// shorter than the data rows.
	m, err := Read(strings.NewReader("S1\tS2\nG1\t1\t2\nG2\t3\t4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Samples(); len(got) != 2 || got[0] != "S1" {
		t.Errorf("samples %v", got)
	}
}

func TestReadRejects(t *testing.T) {
	for name, input := range map[string]string{
		"empty":            "",
		"header only":      "gene\tS1\n",
		"duplicate gene":   "gene\tS1\nG1\t1\nG1\t2\n",
		"duplicate sample": "gene\tS1\tS1\nG1\t1\t2\n",
		"ragged":           "gene\tS1\tS2\nG1\t1\t2\nG2\t1\n",
		"not numeric":      "gene\tS1\nG1\thigh\n",
	} {
		if _, err := Read(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	m, err := New([]string{"G1", "G2"}, []string{"S1", "S2"}, []float64{1, 2.5, 0, 1e-7})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "gene\tS1\tS2\nG1\t1\t2.5\n") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	back, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if back.At(1, 1) != 1e-7 {
		t.Errorf("got %v", back.At(1, 1))
	}
}

func TestReadWriteFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merged_tcga_data.txt.gz")
	m, err := Read(strings.NewReader(tcgaSnippet))
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, m); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if raw[0] != 0x1f || raw[1] != 0x8b {
		t.Fatal("expected a gzip file")
	}

	back, err := ReadFile(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g, s := back.Dims(); g != 2 || s != 3 {
		t.Fatalf("got %d x %d", g, s)
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New(nil, []string{"S1"}, nil); err == nil {
		t.Error("expected an error for no genes")
	}
	if _, err := New([]string{"G1"}, []string{"S1"}, []float64{1, 2}); err == nil {
		t.Error("expected an error for a shape mismatch")
	}
}

func TestFromVector(t *testing.T) {
	m, err := FromVector([]string{"G1", "G2"}, "new", []float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if g, s := m.Dims(); g != 2 || s != 1 {
		t.Fatalf("got %d x %d", g, s)
	}

	if _, err := FromVector([]string{"G1", "G2"}, "new", []float64{1}); err == nil {
		t.Error("expected an error for a length mismatch")
	}
}

func TestIntersect(t *testing.T) {
	ref, _ := New([]string{"G1", "G2", "G3"}, []string{"R1"}, []float64{1, 2, 3})
	query, _ := New([]string{"G3", "G9", "G1"}, []string{"Q1"}, []float64{30, 90, 10})

	a, b, err := Intersect(ref, query)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Genes(); len(got) != 2 || got[0] != "G1" || got[1] != "G3" {
		t.Errorf("reference genes %v", got)
	}
	if got := b.Col(0); got[0] != 10 || got[1] != 30 {
		t.Errorf("query values should follow reference order, got %v", got)
	}

	// Inputs are untouched
	if g, _ := query.Dims(); g != 3 {
		t.Error("query was modified")
	}

	other, _ := New([]string{"X"}, []string{"Q1"}, []float64{1})
	if _, _, err := Intersect(ref, other); !errors.Is(err, ErrNoCommonGenes) {
		t.Errorf("expected ErrNoCommonGenes, got %v", err)
	}
}

func TestLog1p(t *testing.T) {
	m, _ := New([]string{"G1"}, []string{"S1", "S2"}, []float64{0, math.E - 1})
	l := m.Log1p()
	if l.At(0, 0) != 0 || math.Abs(l.At(0, 1)-1) > 1e-12 {
		t.Errorf("got %v %v", l.At(0, 0), l.At(0, 1))
	}
	if m.At(0, 1) != math.E-1 {
		t.Error("Log1p modified its receiver")
	}
}

func TestStripVersion(t *testing.T) {
	for in, want := range map[string]string{
		"ENSG00000141510.16": "ENSG00000141510",
		"ENSG00000141510":    "ENSG00000141510",
		"__no_feature":       "__no_feature",
	} {
		if got := StripVersion(in); got != want {
			t.Errorf("StripVersion(%q) = %q, expected %q", in, got, want)
		}
	}
}
