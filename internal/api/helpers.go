// internal/api/helpers.go
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rteeter/logCollection/internal/logfile"
)

const defaultLines = 1000

// parseLines turns the raw lines query value into a line count. A blank value
// selects the default; anything that is not a positive integer is rejected.
func (h *Handler) parseLines(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return h.opts.DefaultLines, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("lines must be a positive integer")
	}
	if h.opts.MaxLinesLimit > 0 && n > h.opts.MaxLinesLimit {
		return 0, fmt.Errorf("lines must not exceed %d", h.opts.MaxLinesLimit)
	}
	return n, nil
}

// accessErrorResponse maps a Guard error to a status code and a message that
// is safe to return to the client. Resolved paths never appear in the message.
func accessErrorResponse(err error, filename string) (int, string) {
	switch {
	case errors.Is(err, logfile.ErrInvalidPath):
		return http.StatusBadRequest, fmt.Sprintf("Invalid file path: %q", filename)
	case errors.Is(err, logfile.ErrNotFound):
		return http.StatusNotFound, fmt.Sprintf("Log file not found: %q", filename)
	case errors.Is(err, logfile.ErrUnreadable):
		return http.StatusForbidden, fmt.Sprintf("Permission denied reading log file: %q", filename)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
