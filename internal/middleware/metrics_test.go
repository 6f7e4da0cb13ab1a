package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"catalog-import/internal/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("labels requests by route template", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())
		router.GET("/api/v1/imports/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
		})

		counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/imports/:id", "200")
		initialTotal := testutil.ToFloat64(counter)
		initialInFlight := testutil.ToFloat64(metrics.HTTPRequestsInFlight)

		for _, id := range []string{"job-a", "job-b"} {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/imports/"+id, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		assert.Equal(t, initialTotal+2, testutil.ToFloat64(counter))
		assert.Equal(t, initialInFlight, testutil.ToFloat64(metrics.HTTPRequestsInFlight))
	})

	t.Run("records error statuses", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())
		router.POST("/api/v1/imports/:id/enrich", func(c *gin.Context) {
			c.JSON(http.StatusConflict, gin.H{"error": "import job is not active"})
		})

		counter := metrics.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/imports/:id/enrich", "409")
		initialTotal := testutil.ToFloat64(counter)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/job-a/enrich", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, initialTotal+1, testutil.ToFloat64(counter))
	})

	t.Run("unmatched routes share one label", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())

		counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")
		initialTotal := testutil.ToFloat64(counter)

		req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, initialTotal+1, testutil.ToFloat64(counter))
	})

	t.Run("counts upload bytes", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())
		router.PUT("/api/v1/imports/:id/archive", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		counter := metrics.HTTPUploadBytes.WithLabelValues("/api/v1/imports/:id/archive")
		initial := testutil.ToFloat64(counter)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/imports/job-a/archive", strings.NewReader(`{"archiveKey":"a.zip"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, initial+float64(len(`{"archiveKey":"a.zip"}`)), testutil.ToFloat64(counter))
	})

	t.Run("skips probe endpoints", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())
		router.GET("/ready", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/ready", "200")
		initialTotal := testutil.ToFloat64(counter)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, initialTotal, testutil.ToFloat64(counter))
	})

	t.Run("skips metrics endpoint", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())
		router.GET("/metrics", func(c *gin.Context) {
			c.String(http.StatusOK, "metrics data")
		})

		counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/metrics", "200")
		initialTotal := testutil.ToFloat64(counter)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, initialTotal, testutil.ToFloat64(counter))
	})
}
