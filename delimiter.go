package tcgaexpr

import (
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader. Expression tables are tab-separated far more often
// than not, so that is the fallback.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0])
	}

	return '\t'
}

// SniffDelimiter picks the delimiter for a table given its leading bytes. A
// tab anywhere in the first line settles it; otherwise the guess is left to
// DetermineDelimiter.
func SniffDelimiter(sample []byte) rune {
	if len(sample) == 0 {
		return '\t'
	}

	firstLine := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		firstLine = sample[:i]
	}
	if bytes.IndexByte(firstLine, '\t') >= 0 {
		return '\t'
	}

	return DetermineDelimiter(bytes.NewReader(sample))
}
