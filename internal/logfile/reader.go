package logfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	readBufferSize = 64 * 1024
	// lines scanned between context checks
	cancelCheckInterval = 1024
)

// Reader returns the most recent lines of a log file.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Read scans path once from the top and returns the last maxLines lines that
// contain filter (all lines when filter is empty), in file order. Lines keep
// their trailing newline and invalid UTF-8 is replaced with U+FFFD. Memory use
// is bounded by maxLines, not by the file size.
func (r *Reader) Read(ctx context.Context, path string, maxLines int, filter string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	defer f.Close()

	tail := newTailBuffer(maxLines)
	br := bufio.NewReaderSize(f, readBufferSize)

	for n := 0; ; n++ {
		if n%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
			}
		}

		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.ToValidUTF8(line, "\uFFFD")
			if filter == "" || strings.Contains(line, filter) {
				tail.push(line)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
		}
	}

	return tail.ordered(), nil
}
