// internal/api/info_handlers.go
package api

import (
	"embed"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/rteeter/logCollection/internal/models"
)

//go:embed web/index.html
var webFS embed.FS

// @Summary Health Check
// @Description Reports that the server is up, with its uptime and version.
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse "Server health"
// @Router /health [get]
func (h *Handler) HealthHandler(c *gin.Context) {
	authMode := "none"
	if h.opts.AuthEnabled {
		authMode = "token"
	}
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		StartTime: h.startTime,
		Version:   h.opts.Version,
		AuthMode:  authMode,
	})
}

// IndexHandler serves the static log viewer page.
func IndexHandler() gin.HandlerFunc {
	// Read once at startup
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		log.Errorf("Failed to load embedded index page: %v", err)
	}
	return func(c *gin.Context) {
		if err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Page not found"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}
