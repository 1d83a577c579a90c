package merge

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/carbocation/tcgaexpr"
	"github.com/gocarina/gocsv"
)

// SampleSheetRow is one file listed in a GDC sample sheet. Other columns of
// the sheet are ignored.
type SampleSheetRow struct {
	FileID   string `csv:"File ID"`
	FileName string `csv:"File Name"`
	SampleID string `csv:"Sample ID"`
}

// Path is where the per-sample file lives under dir, which may be local or
// gs://. GDC downloads nest each file under a directory named for its File ID.
func (s SampleSheetRow) Path(dir string) string {
	if tcgaexpr.IsGoogleStoragePath(dir) {
		return strings.TrimSuffix(dir, "/") + "/" + s.FileID + "/" + s.FileName
	}
	return filepath.Join(dir, s.FileID, s.FileName)
}

// ReadSampleSheet decodes a tab-delimited GDC sample sheet.
func ReadSampleSheet(r io.Reader) ([]SampleSheetRow, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = '\t'
	rdr.LazyQuotes = true

	records := []SampleSheetRow{}
	if err := gocsv.UnmarshalCSV(rdr, &records); err != nil {
		return nil, err
	}

	for i, rec := range records {
		if rec.FileID == "" || rec.FileName == "" || rec.SampleID == "" {
			return nil, fmt.Errorf("sample sheet row %d is missing File ID, File Name or Sample ID: %+v", i+1, rec)
		}
	}

	return records, nil
}
