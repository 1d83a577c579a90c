// addsample reports which reference samples are among the k nearest to one or
// more new samples, based on their expression profiles over shared genes.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/carbocation/tcgaexpr"
	_ "github.com/carbocation/tcgaexpr/compileinfoprint"
	"github.com/carbocation/tcgaexpr/exprmatrix"
	"github.com/carbocation/tcgaexpr/nearest"
)

const BufferSize = 4096 * 8

var STDOUT = bufio.NewWriterSize(os.Stdout, BufferSize)

func main() {
	defer STDOUT.Flush()

	var (
		referenceFile string
		datasetFile   string
		kn            string
		metricName    string
		policyName    string
		tiesName      string
		showHist      bool
		histBins      int
	)

	flag.StringVar(&referenceFile, "reference", "", "Reference expression table (genes as rows, samples as columns). Local path or gs:// URL, optionally compressed.")
	flag.StringVar(&datasetFile, "dataset", "", "Expression table of the new sample(s) in the same layout as the reference.")
	flag.StringVar(&kn, "kn", "15", "Number of nearest reference samples to flag. Must be a positive integer.")
	flag.StringVar(&metricName, "metric", nearest.DefaultMetric, fmt.Sprintf("Distance metric. One of: %s", nearest.MetricNames()))
	flag.StringVar(&policyName, "policy", nearest.JointTopK.String(), "joint: rank all reference/query distances together. perquery: rank each new sample's distances separately.")
	flag.StringVar(&tiesName, "ties", nearest.TiesAverage.String(), "How tied distances are ranked. One of: average, min, max, dense, ordinal")
	flag.BoolVar(&showHist, "hist", false, "Print a histogram of the distances to stderr.")
	flag.IntVar(&histBins, "bins", 20, "Number of histogram bins, if -hist is set.")
	flag.Parse()

	if referenceFile == "" || datasetFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := checkBins(histBins); err != nil {
		log.Fatalln(err)
	}

	k, err := nearest.ParseK(kn)
	if err != nil {
		log.Fatalln(err)
	}

	metric, err := nearest.LookupMetric(metricName)
	if err != nil {
		log.Fatalln(err)
	}

	policy, err := nearest.ParsePolicy(policyName)
	if err != nil {
		log.Fatalln(err)
	}

	ties, err := nearest.ParseTies(tiesName)
	if err != nil {
		log.Fatalln(err)
	}

	ctx := context.Background()
	client, err := tcgaexpr.NewStorageClientFor(ctx, referenceFile, datasetFile)
	if err != nil {
		log.Fatalln(err)
	}
	if client != nil {
		defer client.Close()
	}

	reference, err := exprmatrix.ReadFile(ctx, referenceFile, client)
	if err != nil {
		log.Fatalln(err)
	}
	dataset, err := exprmatrix.ReadFile(ctx, datasetFile, client)
	if err != nil {
		log.Fatalln(err)
	}

	rg, rs := reference.Dims()
	dg, ds := dataset.Dims()
	log.Printf("Loaded %d reference samples over %d genes and %d new samples over %d genes\n", rs, rg, ds, dg)

	result, err := nearest.FindNearest(reference, dataset, k,
		nearest.WithMetric(metricName, metric),
		nearest.WithPolicy(policy),
		nearest.WithTies(ties),
	)
	if err != nil {
		log.Fatalln(err)
	}

	var histOut io.Writer
	if showHist {
		histOut = os.Stderr
	}
	median, missing, err := summarizeDistances(histOut, result, histBins)
	if err != nil {
		log.Fatalln(err)
	}
	if missing > 0 {
		log.Printf("%d of %d distances are NaN (missing values or constant profiles) and were left out of the summary\n", missing, len(result.Samples)*len(result.Queries))
	}
	log.Printf("Compared over %d shared genes with %s distance (%s ranking, %s ties). Median distance: %g\n", result.Genes, result.Metric, result.Policy, result.Ties, median)
	log.Printf("%d of %d reference samples are within the %d nearest\n", result.Count(), len(result.Samples), k)

	if err := writeMembership(STDOUT, result); err != nil {
		log.Fatalln(err)
	}
}
