package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// SessionSource reports the session of the signed-in user, if any.
type SessionSource interface {
	CurrentSession() (*domain.Session, bool)
}

// RequireSession creates a Gin middleware handler that only lets requests through while the
// login state machine holds a completed, unexpired session.
func RequireSession(sessions SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		session, ok := sessions.CurrentSession()
		if !ok {
			logger.Warn("Request without an authenticated session")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		userID := session.UserID
		if userID == "" {
			userID = "unknown"
		}

		// Store the user ID in the context (using standard context)
		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, userID)

		// Add user ID to the logger and store the enriched logger back
		enrichedLogger := logger.With(slog.String("user_id", userID))
		c.Request = c.Request.WithContext(WithLogger(ctxWithUser, enrichedLogger))
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}
