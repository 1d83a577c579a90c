package decompose

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/tcgaexpr"
	"github.com/gocarina/gocsv"
)

type projectRow struct {
	SampleID  string `csv:"Sample ID"`
	ProjectID string `csv:"Project ID"`
}

// ReadProjects maps Sample ID => Project ID from a tab-delimited GDC sample
// sheet.
func ReadProjects(r io.Reader) (map[string]string, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = '\t'
	rdr.LazyQuotes = true

	records := []projectRow{}
	if err := gocsv.UnmarshalCSV(rdr, &records); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(records))
	for i, rec := range records {
		if rec.SampleID == "" || rec.ProjectID == "" {
			return nil, fmt.Errorf("project row %d is missing Sample ID or Project ID", i+1)
		}
		out[rec.SampleID] = rec.ProjectID
	}

	return out, nil
}

// ReadTissueMap reads a two-column project => tissue map. Everything after
// the first delimiter is the tissue name.
func ReadTissueMap(r io.Reader) (map[string]string, error) {
	br := bufio.NewReader(r)
	sample, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	delim := string(tcgaexpr.SniffDelimiter(sample))

	out := make(map[string]string)
	scanner := bufio.NewScanner(br)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		parts := strings.SplitN(text, delim, 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("tissue map line %d has no %q delimiter: %q", line, delim, text)
		}
		out[parts[0]] = strings.TrimSpace(parts[1])
	}

	return out, scanner.Err()
}

// Relabel resolves each sample to its project and then to its tissue.
func Relabel(samples []string, projects, tissues map[string]string) ([]string, error) {
	out := make([]string, len(samples))
	for i, sample := range samples {
		project, exists := projects[sample]
		if !exists {
			return nil, fmt.Errorf("sample %s has no project", sample)
		}
		tissue, exists := tissues[project]
		if !exists {
			return nil, fmt.Errorf("project %s (sample %s) has no tissue", project, sample)
		}
		out[i] = tissue
	}

	return out, nil
}
