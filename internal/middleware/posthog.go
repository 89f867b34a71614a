package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventTracker receives product analytics events. *utils.PosthogClientWrapper implements it.
type EventTracker interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// prefixesToSkip covers static content, docs and long-lived streams.
var prefixesToSkip = []string{"/media/", "/swagger/"}

func skipTracking(path string) bool {
	if pathsToSkip[path] || strings.HasSuffix(path, "/stream") {
		return true
	}
	for _, p := range prefixesToSkip {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls of
// signed-in members with PostHog
func PosthogMiddleware(tracker EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || !tracker.IsInitialized() || skipTracking(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/listings/:id" -> "POST api_v1_listings_:id"
		route := c.FullPath()
		if route == "" {
			return
		}
		eventName := c.Request.Method + " " + strings.ReplaceAll(strings.TrimPrefix(route, "/"), "/", "_")

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		tracker.Enqueue(userID, eventName, props)
	}
}
