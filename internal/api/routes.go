// internal/api/routes.go
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/rteeter/logCollection/internal/auth"
)

func SetupRoutes(router *gin.Engine, h *Handler, validator *auth.TokenValidator) {
	// --- Public Routes ---

	// Static viewer page, it asks for the token itself and sends it with each fetch
	router.GET("/", IndexHandler())
	router.GET("/health", h.HealthHandler)

	// --- Authenticated Routes ---

	// GET /logs?filename=...&lines=...&filter=...
	router.GET("/logs", AuthMiddleware(validator), h.GetLogsHandler)
}
