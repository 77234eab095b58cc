// Package logfile resolves client-supplied log file names inside a single log
// directory and reads the most recent lines of those files.
package logfile

import "errors"

// Access errors returned by Guard.Validate.
var (
	ErrInvalidPath = errors.New("invalid file path")
	ErrNotFound    = errors.New("log file not found")
	ErrUnreadable  = errors.New("log file not readable")
)

// ErrIOFailure is returned by Reader.Read when the file cannot be read.
var ErrIOFailure = errors.New("failed to read log file")
