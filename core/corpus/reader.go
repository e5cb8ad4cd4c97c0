package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read parses a pre-tokenized corpus from r: one document per line, tokens
// separated by whitespace. Blank lines are skipped — an empty document
// contributes nothing to either the vocabulary or the co-occurrence counts.
func Read(r io.Reader) (Corpus, error) {
	var c Corpus

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		c = append(c, Document(fields))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	return c, nil
}

// LoadFile reads a corpus from the file at path. See Read for the format.
func LoadFile(path string) (Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	return Read(f)
}
