// mergetcga combines the per-sample gene count files listed in a GDC sample
// sheet into one normalized expression table with genes as rows and sample
// barcodes as columns.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"runtime"

	"cloud.google.com/go/storage"
	"github.com/carbocation/tcgaexpr"
	_ "github.com/carbocation/tcgaexpr/compileinfoprint"
	"github.com/carbocation/tcgaexpr/exprmatrix"
	"github.com/carbocation/tcgaexpr/merge"
)

func main() {
	var (
		sampleSheet string
		dir         string
		genesFile   string
		outFile     string
		scale       float64
		concurrency int
	)

	flag.StringVar(&sampleSheet, "samplesheet", "", "GDC sample sheet (tab-delimited, with 'File ID', 'File Name' and 'Sample ID' columns)")
	flag.StringVar(&dir, "dir", "", "Directory (local or gs://) holding one subdirectory per File ID")
	flag.StringVar(&genesFile, "genes", "", "Optional. File with one gene ID per line. If set, only these genes are kept.")
	flag.StringVar(&outFile, "out", "merged_tcga_data.txt.gz", "Output path. Gzip compressed if it ends in .gz")
	flag.Float64Var(&scale, "scale", merge.DefaultScale, "Each sample's counts are scaled to sum to this value")
	flag.IntVar(&concurrency, "concurrency", runtime.NumCPU(), "Number of sample files to read at once")
	flag.Parse()

	if sampleSheet == "" || dir == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := tcgaexpr.NewStorageClientFor(ctx, sampleSheet, dir, genesFile)
	if err != nil {
		log.Fatalln(err)
	}
	if client != nil {
		defer client.Close()
	}

	sheet, err := readSampleSheet(ctx, sampleSheet, client)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Found", len(sheet), "samples in", sampleSheet)

	var keep map[string]struct{}
	if genesFile != "" {
		ids, err := readGeneList(ctx, genesFile, client)
		if err != nil {
			log.Fatalln(err)
		}
		keep = merge.GeneSet(ids)
		log.Println("Restricting to", len(keep), "genes from", genesFile)
	}

	loader := merge.Loader{
		Dir:         dir,
		Keep:        keep,
		Scale:       scale,
		Client:      client,
		Concurrency: concurrency,
	}
	samples, err := loader.Load(ctx, sheet)
	if err != nil {
		log.Fatalln(err)
	}

	median, min, max, err := merge.LibrarySizes(samples)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Raw library sizes: median %.0f, min %.0f, max %.0f\n", median, min, max)

	merged, err := merge.Merge(samples)
	if err != nil {
		log.Fatalln(err)
	}

	genes, n := merged.Dims()
	if err := exprmatrix.WriteFile(outFile, merged); err != nil {
		log.Fatalln(err)
	}
	log.Printf("Wrote %d genes x %d samples to %s\n", genes, n, outFile)
}

func readSampleSheet(ctx context.Context, path string, client *storage.Client) ([]merge.SampleSheetRow, error) {
	rc, err := tcgaexpr.Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return merge.ReadSampleSheet(rc)
}

func readGeneList(ctx context.Context, path string, client *storage.Client) ([]string, error) {
	rc, err := tcgaexpr.Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return tcgaexpr.ReadIDList(rc)
}
