package exprmatrix

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/tcgaexpr"
)

// GeneColumn is the label written in the first header cell.
const GeneColumn = "gene"

const sniffBytes = 64 * 1024

// ReadFile reads a matrix from a local path or gs:// object, compressed or
// not. client may be nil for local paths.
func ReadFile(ctx context.Context, path string, client *storage.Client) (*Matrix, error) {
	rc, err := tcgaexpr.Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	m, err := Read(rc)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return m, nil
}

// Read parses a delimited table whose header row names the samples and whose
// first column names the genes. The header may or may not carry a label for
// the gene column. NA, NaN and empty cells become NaN.
func Read(r io.Reader) (*Matrix, error) {
	br := bufio.NewReaderSize(r, sniffBytes)
	sample, err := br.Peek(sniffBytes)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	fileCSV := csv.NewReader(br)
	fileCSV.Comma = tcgaexpr.SniffDelimiter(sample)
	fileCSV.LazyQuotes = true
	fileCSV.FieldsPerRecord = -1

	header, err := fileCSV.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty expression table")
	} else if err != nil {
		return nil, fmt.Errorf("header parsing error: %w", err)
	}

	var (
		samples []string
		genes   []string
		data    []float64
	)

	for line := 2; ; line++ {
		row, err := fileCSV.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if samples == nil {
			switch len(row) - len(header) {
			case 0:
				samples = header[1:]
			case 1:
				samples = header
			default:
				return nil, fmt.Errorf("header has %d fields but line %d has %d", len(header), line, len(row))
			}
		}

		if x := len(row); x != len(samples)+1 {
			return nil, fmt.Errorf("line %d has %d fields, expected %d", line, x, len(samples)+1)
		}

		genes = append(genes, row[0])
		for j, cell := range row[1:] {
			v, err := parseValue(cell)
			if err != nil {
				return nil, fmt.Errorf("line %d, sample %s: %w", line, samples[j], err)
			}
			data = append(data, v)
		}
	}

	if len(genes) == 0 {
		return nil, fmt.Errorf("expression table has a header but no genes")
	}

	return New(genes, samples, data)
}

func parseValue(cell string) (float64, error) {
	switch strings.TrimSpace(cell) {
	case "", "NA", "NaN", "nan":
		return math.NaN(), nil
	}

	return strconv.ParseFloat(strings.TrimSpace(cell), 64)
}

// Write emits m as a tab-separated table in the layout Read understands.
func Write(w io.Writer, m *Matrix) error {
	out := csv.NewWriter(w)
	out.Comma = '\t'

	if err := out.Write(append([]string{GeneColumn}, m.samples...)); err != nil {
		return err
	}

	_, c := m.Dims()
	row := make([]string, c+1)
	for i, gene := range m.genes {
		row[0] = gene
		for j := 0; j < c; j++ {
			row[j+1] = strconv.FormatFloat(m.data.At(i, j), 'g', -1, 64)
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}

// WriteFile writes m to path, gzip compressed if the path ends in .gz.
func WriteFile(path string, m *Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".gz") {
		if err := Write(f, m); err != nil {
			return err
		}
		return f.Close()
	}

	gw := gzip.NewWriter(f)
	if err := Write(gw, m); err != nil {
		return err
	}
	if err := gw.Close(); err != nil {
		return err
	}

	return f.Close()
}
