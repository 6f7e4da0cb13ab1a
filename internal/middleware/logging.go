package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"catalog-import/internal/logger"
)

// Logging writes one structured access log line per request, tagged with the request id.
// Health probes are logged at debug level.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		log := logger.WithRequestID(GetRequestID(c))
		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		switch {
		case path == "/health" || path == "/ready" || path == "/live":
			log.Debug("HTTP request", args...)
		case c.Writer.Status() >= 500:
			log.Error("HTTP request", args...)
		default:
			log.Info("HTTP request", args...)
		}
	}
}
