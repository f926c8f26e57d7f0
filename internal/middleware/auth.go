package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/neestoralvz/app-anime-conexion/internal/services"
)

// SessionAuth validates the bearer session token and pins the request to
// the session in the path: a token for one session cannot touch another.
func SessionAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		sessionID, participantID, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		if pathID := c.Param("id"); pathID != "" && pathID != sessionID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not match session"})
			return
		}

		c.Set("session_id", sessionID)
		c.Set("participant_id", participantID)
		c.Next()
	}
}
