// decompose projects the samples of an expression table onto their principal
// components and plots them colored by tissue.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/tcgaexpr"
	_ "github.com/carbocation/tcgaexpr/compileinfoprint"
	"github.com/carbocation/tcgaexpr/decompose"
	"github.com/carbocation/tcgaexpr/exprmatrix"
	"github.com/carbocation/tcgaexpr/plot"
)

// Methods are the decompositions that can be requested with -pca.
var Methods = []string{"PCA"}

func main() {
	var (
		expressionFile string
		projectFile    string
		tissueMapFile  string
		imagePrefix    string
		method         string
		components     int
		threeD         bool
		log1p          bool
	)

	flag.StringVar(&expressionFile, "expression", "", "Expression table with genes as rows and samples as columns")
	flag.StringVar(&projectFile, "project", "", "GDC sample sheet with 'Sample ID' and 'Project ID' columns")
	flag.StringVar(&tissueMapFile, "tissue_map", "", "Two-column file mapping Project ID to tissue name")
	flag.StringVar(&imagePrefix, "image_prefix", "", "Prefix for the output .tsv and .png files")
	flag.StringVar(&method, "pca", "PCA", fmt.Sprint("Decomposition to use. Options: ", Methods))
	flag.IntVar(&components, "components", 0, "Number of components to write. 0 means all of them.")
	flag.BoolVar(&threeD, "threeD", false, "Require at least 3 components")
	flag.BoolVar(&log1p, "log1p", false, "Transform values with log(1+x) before decomposing")
	flag.Parse()

	if expressionFile == "" || projectFile == "" || tissueMapFile == "" || imagePrefix == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if method != "PCA" {
		log.Fatalf("Decomposition %q is not supported. Options: %v\n", method, Methods)
	}

	ctx := context.Background()
	client, err := tcgaexpr.NewStorageClientFor(ctx, expressionFile, projectFile, tissueMapFile)
	if err != nil {
		log.Fatalln(err)
	}
	if client != nil {
		defer client.Close()
	}

	data, err := exprmatrix.ReadFile(ctx, expressionFile, client)
	if err != nil {
		log.Fatalln(err)
	}
	if log1p {
		data = data.Log1p()
	}

	data, dropped, err := decompose.DropConstantGenes(data)
	if err != nil {
		log.Fatalln(err)
	}
	genes, samples := data.Dims()
	log.Printf("Dropped %d constant or incomplete genes. Decomposing %d samples over %d genes\n", dropped, samples, genes)

	var projects, tissues map[string]string
	if err := readWith(ctx, projectFile, client, func(r io.Reader) (err error) {
		projects, err = decompose.ReadProjects(r)
		return
	}); err != nil {
		log.Fatalln(err)
	}
	if err := readWith(ctx, tissueMapFile, client, func(r io.Reader) (err error) {
		tissues, err = decompose.ReadTissueMap(r)
		return
	}); err != nil {
		log.Fatalln(err)
	}

	labels, err := decompose.Relabel(data.Samples(), projects, tissues)
	if err != nil {
		log.Fatalln(err)
	}

	if components == 0 {
		components = genes
		if samples < components {
			components = samples
		}
	}
	if threeD && components < 3 {
		log.Fatalf("-threeD needs at least 3 components, but only %d are available\n", components)
	}

	projected, err := decompose.PCA(data, components)
	if err != nil {
		log.Fatalln(err)
	}
	projected.Labels = labels

	prefix := imagePrefix + "." + method
	if err := writeFile(prefix+".tsv", func(w io.Writer) error {
		return decompose.WriteProjection(w, projected)
	}); err != nil {
		log.Fatalln(err)
	}
	if err := writeFile(prefix+".png", func(w io.Writer) error {
		return plot.Projection(w, projected, method)
	}); err != nil {
		log.Fatalln(err)
	}
	if err := writeFile(prefix+".explained_var.png", func(w io.Writer) error {
		return plot.ExplainedVariance(w, projected.ExplainedVarianceRatio, method)
	}); err != nil {
		log.Fatalln(err)
	}

	log.Printf("Wrote %s.tsv, %s.png and %s.explained_var.png\n", prefix, prefix, prefix)
}

func readWith(ctx context.Context, path string, client *storage.Client, parse func(io.Reader) error) error {
	rc, err := tcgaexpr.Open(ctx, path, client)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := parse(rc); err != nil {
		return pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := write(f); err != nil {
		return pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return f.Close()
}
