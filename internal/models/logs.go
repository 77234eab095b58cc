// internal/models/logs.go
package models

// LogRequest holds the query parameters of GET /logs.
type LogRequest struct {
	Filename string `form:"filename" binding:"required"` // File name relative to the log directory
	Lines    string `form:"lines"`                       // Parsed by the handler so bad values get a precise message
	Filter   string `form:"filter"`                      // Case-sensitive substring, empty means no filtering
}

// LogResponse is the body returned by GET /logs.
type LogResponse struct {
	Filename     string   `json:"filename"`
	TotalEntries int      `json:"total_entries"` // Number of entries returned, not lines in the file
	Entries      []string `json:"entries"`       // Oldest first, line terminators preserved
}
