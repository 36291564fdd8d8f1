package scan

import (
	"bufio"
	"bytes"
	"os"
	"regexp"
	"strings"

	"rstr/internal/domain"
)

const (
	// binarySniffLen is how many leading bytes are inspected for NUL
	// before a file is treated as text.
	binarySniffLen = 8192

	// maxLineLen caps the scanner buffer. A file with a longer line is
	// abandoned at that point, consistent with the per-file skip policy.
	maxLineLen = 1024 * 1024
)

// matchFile reads path line by line and calls emit for every line the
// pattern matches at least once, with all non-overlapping spans on that
// line in left-to-right order. Binary files yield zero matches and a nil
// error; the caller does not distinguish them from files that simply had
// no hits.
func matchFile(path string, re *regexp.Regexp, emit func(domain.Match)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 64*1024)
	head, _ := br.Peek(binarySniffLen)
	if bytes.IndexByte(head, 0) != -1 {
		return nil
	}

	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 64*1024), maxLineLen)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		locs := re.FindAllStringIndex(line, -1)
		if len(locs) == 0 {
			continue
		}

		spans := make([]domain.Span, len(locs))
		for i, loc := range locs {
			spans[i] = domain.Span{Start: loc[0], End: loc[1]}
		}

		emit(domain.Match{
			FilePath:   path,
			LineNumber: lineNumber,
			LineText:   line,
			Spans:      spans,
		})
	}

	return scanner.Err()
}
