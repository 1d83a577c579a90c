package tcgaexpr

import (
	"bufio"
	"io"
	"strings"
)

// ReadIDList reads one identifier per line, such as a list of protein coding
// genes. Only the first whitespace-separated field of each line is kept.
// Blank lines and lines starting with # are skipped.
func ReadIDList(r io.Reader) ([]string, error) {
	var out []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cols := strings.Fields(scanner.Text())
		if len(cols) == 0 || strings.HasPrefix(cols[0], "#") {
			continue
		}
		out = append(out, cols[0])
	}

	return out, scanner.Err()
}
