// internal/models/models.go
package models

// ErrorResponse represents a standard error message format
type ErrorResponse struct {
	Message string `json:"message"`
}
