// internal/api/handlers.go
package api

import (
	"context"
	"time"
)

// PathValidator resolves a client-supplied file name to a readable file path.
type PathValidator interface {
	Validate(filename string) (string, error)
}

// LineReader returns the last maxLines lines of path containing filter.
type LineReader interface {
	Read(ctx context.Context, path string, maxLines int, filter string) ([]string, error)
}

// Options carries the request limits and build information the handlers need.
type Options struct {
	DefaultLines   int           // Used when the request has no lines parameter
	MaxLinesLimit  int           // Upper bound for lines, 0 means unbounded
	RequestTimeout time.Duration // Deadline for reading a file, 0 means none
	Version        string
	AuthEnabled    bool
}

// Handler serves the log retrieval API. It holds no per-request state.
type Handler struct {
	guard     PathValidator
	reader    LineReader
	opts      Options
	startTime time.Time
}

// NewHandler wires the access guard and reader into a Handler.
func NewHandler(guard PathValidator, reader LineReader, opts Options) *Handler {
	if opts.DefaultLines <= 0 {
		opts.DefaultLines = defaultLines
	}
	return &Handler{
		guard:     guard,
		reader:    reader,
		opts:      opts,
		startTime: time.Now(),
	}
}
