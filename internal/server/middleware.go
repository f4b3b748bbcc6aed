package server

import (
	"net/http"
	"strings"
	"time"

	"diamond-exchange/internal/metrics"
	"diamond-exchange/services/marketplace/helpers"
	"diamond-exchange/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing and records
// their latency against the matched route
func RequestLoggerMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next() // process request

		elapsed := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestObserved(c.Request.Method, route, c.Writer.Status(), elapsed)

		utils.Info("HTTP Request", map[string]any{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": elapsed.String(),
			"actor":   helpers.Actor(c).ID,
		})
	}
}

// AuthMiddleware requires a bearer token and stores the resolved actor
func AuthMiddleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const bearerPrefix = "Bearer "
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), bearerPrefix)
		if !ok || token == "" {
			utils.JSONError(c, http.StatusUnauthorized, ErrInvalidToken, "missing bearer token")
			utils.Warn("unauthorized access - missing token", map[string]any{"path": c.Request.URL.Path})
			return
		}

		actor, err := tokens.Verify(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, err, "invalid or expired token")
			utils.Warn("unauthorized access - invalid token", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			return
		}

		helpers.SetActor(c, actor)
		c.Next()
	}
}
