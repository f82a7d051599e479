package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/spendwise_client/internal/utils"
	"github.com/gin-gonic/gin"
)

// refreshFailedHeader marks a committed mutation whose dependent queries could not be refreshed.
const refreshFailedHeader = "X-Refresh-Failed"

// untrackedPrefixes are request paths that never produce events.
var untrackedPrefixes = []string{"/health", "/swagger"}

// PosthogMiddleware creates a Gin middleware handler that records every successful request of a signed-in
// user as a PostHog event named after its route.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || untracked(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		eventName := RouteEventName(c.FullPath())
		if eventName == "" {
			return
		}
		PosthogEvent(c, posthogClient, eventName, map[string]any{"status_code": c.Writer.Status()})
	}
}

// PosthogEvent sends a custom event for the user of the request. Requests without a user are ignored.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}

	props := make(map[string]any, len(properties)+4)
	for k, v := range properties {
		props[k] = v
	}
	props["method"] = c.Request.Method
	props["path"] = c.FullPath()
	if requestID, ok := GetRequestID(c); ok {
		props["request_id"] = requestID
	}
	if c.Writer.Header().Get(refreshFailedHeader) != "" {
		props["refresh_failed"] = true
	}

	posthogClient.Enqueue(userID, eventName, props)
}

// RouteEventName turns a route pattern into an event name: "/api/v1/accounts/:id" becomes "accounts_id".
func RouteEventName(fullPath string) string {
	name := strings.TrimPrefix(fullPath, "/api/v1")
	name = strings.Trim(name, "/")
	name = strings.NewReplacer("/", "_", ":", "", "-", "_").Replace(name)
	return name
}

func untracked(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
