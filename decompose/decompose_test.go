package decompose

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/tcgaexpr/exprmatrix"
	"gonum.org/v1/gonum/mat"
)

func TestDropConstantGenes(t *testing.T) {
	m, err := exprmatrix.New(
		[]string{"varies", "flat", "missing"},
		[]string{"S1", "S2", "S3"},
		[]float64{
			1, 2, 3,
			5, 5, 5,
			1, math.NaN(), 2,
		})
	if err != nil {
		t.Fatal(err)
	}

	out, dropped, err := DropConstantGenes(m)
	if err != nil {
		t.Fatal(err)
	}
	if dropped != 2 {
		t.Errorf("dropped %d genes, expected 2", dropped)
	}
	if got := out.Genes(); len(got) != 1 || got[0] != "varies" {
		t.Errorf("kept %v", got)
	}

	flat, _ := exprmatrix.New([]string{"flat"}, []string{"S1", "S2"}, []float64{4, 4})
	if _, _, err := DropConstantGenes(flat); err == nil {
		t.Error("expected an error when every gene is constant")
	}
}

func TestPCA(t *testing.T) {
	// Samples lie on a line in gene space, so one component explains all of
	// the variance.
	m, err := exprmatrix.New(
		[]string{"G1", "G2"},
		[]string{"S1", "S2", "S3", "S4"},
		[]float64{
			1, 2, 3, 4,
			2, 4, 6, 8,
		})
	if err != nil {
		t.Fatal(err)
	}

	p, err := PCA(m, 2)
	if err != nil {
		t.Fatal(err)
	}

	if n, c := p.Coords.Dims(); n != 4 || c != 2 {
		t.Fatalf("coords are %d x %d, expected 4 x 2", n, c)
	}
	if r := p.ExplainedVarianceRatio; math.Abs(r[0]-1) > 1e-9 || math.Abs(r[1]) > 1e-9 {
		t.Errorf("explained variance ratio %v", r)
	}

	// Centered scores along the first component are +/- 0.5*sqrt(5) and
	// +/- 1.5*sqrt(5), in sample order up to sign.
	first := mat.Col(nil, 0, p.Coords)
	want := []float64{-1.5, -0.5, 0.5, 1.5}
	sign := 1.0
	if first[0] > 0 {
		sign = -1
	}
	for i := range want {
		if got := sign * first[i]; math.Abs(got-want[i]*math.Sqrt(5)) > 1e-9 {
			t.Errorf("sample %d: score %v, expected %v", i, got, want[i]*math.Sqrt(5))
		}
	}

	if p.Samples[3] != "S4" {
		t.Errorf("samples %v", p.Samples)
	}
}

func TestPCARejects(t *testing.T) {
	m, _ := exprmatrix.New([]string{"G1", "G2"}, []string{"S1", "S2"}, []float64{1, 2, 3, 5})

	if _, err := PCA(m, 0); err == nil {
		t.Error("expected an error for 0 components")
	}
	if _, err := PCA(m, 5); err == nil {
		t.Error("expected an error for more components than exist")
	}

	one, _ := exprmatrix.New([]string{"G1", "G2"}, []string{"S1"}, []float64{1, 2})
	if _, err := PCA(one, 1); err == nil {
		t.Error("expected an error for a single sample")
	}
}

func TestReadProjects(t *testing.T) {
	sheet := "File ID\tFile Name\tData Category\tData Type\tProject ID\tCase ID\tSample ID\tSample Type\n" +
		"f1\ta.tsv\tTranscriptome Profiling\tGene Expression Quantification\tTCGA-BRCA\tc1\tTCGA-A1\tPrimary Tumor\n" +
		"f2\tb.tsv\tTranscriptome Profiling\tGene Expression Quantification\tTCGA-LUAD\tc2\tTCGA-A2\tPrimary Tumor\n"

	projects, err := ReadProjects(strings.NewReader(sheet))
	if err != nil {
		t.Fatal(err)
	}
	if projects["TCGA-A1"] != "TCGA-BRCA" || projects["TCGA-A2"] != "TCGA-LUAD" {
		t.Errorf("got %v", projects)
	}
}

func TestReadTissueMap(t *testing.T) {
	tissues, err := ReadTissueMap(strings.NewReader("TCGA-BRCA\tBreast\n\nTCGA-LUAD\tLung adenocarcinoma\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tissues) != 2 || tissues["TCGA-BRCA"] != "Breast" || tissues["TCGA-LUAD"] != "Lung adenocarcinoma" {
		t.Errorf("got %v", tissues)
	}
}

func TestRelabel(t *testing.T) {
	projects := map[string]string{"S1": "P1", "S2": "P2", "S3": "P9"}
	tissues := map[string]string{"P1": "Breast", "P2": "Lung"}

	labels, err := Relabel([]string{"S2", "S1"}, projects, tissues)
	if err != nil {
		t.Fatal(err)
	}
	if labels[0] != "Lung" || labels[1] != "Breast" {
		t.Errorf("got %v", labels)
	}

	if _, err := Relabel([]string{"S4"}, projects, tissues); err == nil {
		t.Error("expected an error for a sample with no project")
	}
	if _, err := Relabel([]string{"S3"}, projects, tissues); err == nil {
		t.Error("expected an error for a project with no tissue")
	}
}

func TestWriteProjection(t *testing.T) {
	p := &Projection{
		Samples: []string{"S1", "S2"},
		Coords:  mat.NewDense(2, 2, []float64{1, -0.5, 2, 3}),
	}

	var buf bytes.Buffer
	if err := WriteProjection(&buf, p); err != nil {
		t.Fatal(err)
	}
	if want := "sample\tcomp 0\tcomp 1\nS1\t1\t-0.5\nS2\t2\t3\n"; buf.String() != want {
		t.Errorf("got\n%q\nexpected\n%q", buf.String(), want)
	}

	p.Labels = []string{"Breast", "Lung"}
	buf.Reset()
	if err := WriteProjection(&buf, p); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "sample\tcomp 0\tcomp 1\ttissue\nS1\t1\t-0.5\tBreast\n") {
		t.Errorf("got\n%s", buf.String())
	}
}
