// internal/api/logs_handlers.go
package api

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/rteeter/logCollection/internal/models"
)

// @Summary Get Log Entries
// @Description Returns the most recent lines of a file in the log directory, optionally filtered by a substring.
// @Tags Logs
// @Security BearerAuth
// @Produce json
// @Param filename query string true "File name relative to the log directory" example="syslog"
// @Param lines query int false "Maximum number of entries to return (default 1000)" example="100"
// @Param filter query string false "Case-sensitive substring entries must contain" example="ERROR"
// @Success 200 {object} models.LogResponse "Matching log entries, oldest first"
// @Failure 400 {object} models.ErrorResponse "Missing filename, invalid lines or invalid file path"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Log file not readable by the server"
// @Failure 404 {object} models.ErrorResponse "Log file not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /logs [get]
func (h *Handler) GetLogsHandler(c *gin.Context) {
	clientIP := c.ClientIP() // For logging context

	// --- Validate Inputs ---
	var req models.LogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Warnf("GetLogs failed for client '%s': missing filename: %v", clientIP, err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Filename is required"})
		return
	}

	lines, err := h.parseLines(req.Lines)
	if err != nil {
		log.Warnf("GetLogs failed for client '%s': invalid lines parameter '%s': %v", clientIP, req.Lines, err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid 'lines' parameter: " + err.Error() + "."})
		return
	}

	// --- Resolve the file inside the log directory ---
	path, err := h.guard.Validate(req.Filename)
	if err != nil {
		status, msg := accessErrorResponse(err, req.Filename)
		if status == http.StatusInternalServerError {
			log.Errorf("GetLogs failed for client '%s', file '%s': %v", clientIP, req.Filename, err)
		} else {
			log.Warnf("GetLogs rejected for client '%s', file '%s': %v", clientIP, req.Filename, err)
		}
		c.JSON(status, models.ErrorResponse{Message: msg})
		return
	}

	log.Debugf("GetLogs client '%s': reading up to %d lines from '%s' (filter %q)", clientIP, lines, path, req.Filter)

	ctx := c.Request.Context()
	if h.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.RequestTimeout)
		defer cancel()
	}

	entries, err := h.reader.Read(ctx, path, lines, req.Filter)
	if err != nil {
		log.Errorf("GetLogs failed for client '%s', file '%s': %v", clientIP, req.Filename, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to read log file: " + req.Filename})
		return
	}
	if entries == nil {
		entries = []string{}
	}

	log.Infof("GetLogs success for client '%s', file '%s': %d entries", clientIP, req.Filename, len(entries))
	c.JSON(http.StatusOK, models.LogResponse{
		Filename:     req.Filename,
		TotalEntries: len(entries),
		Entries:      entries,
	})
}
