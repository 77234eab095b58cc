// internal/api/middleware.go
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/rteeter/logCollection/internal/auth"
	"github.com/rteeter/logCollection/internal/models"
)

// AuthMiddleware validates the bearer token from the Authorization header. It is
// a no-op when the validator has no token configured.
func AuthMiddleware(validator *auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !validator.Enabled() {
			c.Next()
			return
		}

		token, err := auth.ParseBearer(c.GetHeader("Authorization"))
		if err != nil {
			log.Warnf("Rejected request from '%s' to %s: %v", c.ClientIP(), c.Request.URL.Path, err)
			unauthorized(c, "Authorization header missing or invalid")
			return
		}

		if err := validator.Validate(token); err != nil {
			log.Warnf("Rejected request from '%s' to %s: %v", c.ClientIP(), c.Request.URL.Path, err)
			unauthorized(c, "Invalid token")
			return
		}

		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="logs"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Message: msg})
}
