package middleware

import "github.com/gin-gonic/gin"

const (
	userIDKey    = contextKey("userID")
	requestIDKey = contextKey("requestID")
)

// GetUserIDFromContext returns the ID of the signed-in user of the request. RequireSession stores it in the
// request context, a completed login through SetUserID.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, ok := c.Get(string(userIDKey)); ok {
		userID, ok := v.(string)
		return userID, ok && userID != ""
	}
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// SetUserID records userID on a request that authenticated outside RequireSession, such as a completed login.
func SetUserID(c *gin.Context, userID string) {
	c.Set(string(userIDKey), userID)
}

// GetRequestID returns the ID StructuredLoggingMiddleware assigned to the request.
func GetRequestID(c *gin.Context) (string, bool) {
	requestID := c.GetString(string(requestIDKey))
	return requestID, requestID != ""
}
