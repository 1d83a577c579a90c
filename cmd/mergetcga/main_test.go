package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestReadInputs(t *testing.T) {
	dir := t.TempDir()

	genes := filepath.Join(dir, "protein_coding.txt")
	if err := os.WriteFile(genes, []byte("# header\nENSG01\nENSG02\textra\n\n"), 0644); err != nil {
		t.Fatal(err)
	}
	ids, err := readGeneList(context.Background(), genes, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[1] != "ENSG02" {
		t.Errorf("got %v", ids)
	}

	sheet := filepath.Join(dir, "gdc_sample_sheet.tsv")
	if err := os.WriteFile(sheet, []byte("File ID\tFile Name\tSample ID\nf1\ta.counts\tTCGA-A1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	rows, err := readSampleSheet(context.Background(), sheet, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].SampleID != "TCGA-A1" {
		t.Errorf("got %+v", rows)
	}
}
