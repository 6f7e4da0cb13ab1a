// Package middleware provides HTTP middleware for the Gin framework.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-import/internal/metrics"
)

// unlabelledPaths are scraped or probed often enough to drown the API series.
var unlabelledPaths = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
	"/ready":   {},
	"/live":    {},
}

// Metrics returns a Gin middleware that records Prometheus metrics for API requests,
// labelled by route template so job and draft ids do not create new series.
// Uploaded body sizes are counted for spreadsheet and archive uploads.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, skip := unlabelledPaths[c.FullPath()]; skip {
			c.Next()
			return
		}

		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())

		if isUpload(c.Request) {
			metrics.HTTPUploadBytes.WithLabelValues(route).Add(float64(c.Request.ContentLength))
		}
	}
}

func isUpload(r *http.Request) bool {
	return (r.Method == http.MethodPost || r.Method == http.MethodPut) && r.ContentLength > 0
}
