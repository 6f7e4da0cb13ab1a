// Package metrics provides Prometheus metrics for observability.
// Metrics are organized by domain: HTTP requests, pipeline batches, model calls, and database operations.
package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "catalog_import"
)

var (
	// HTTP metrics - track request volume and latency
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	HTTPUploadBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "upload_bytes_total",
			Help:      "Total request body bytes received on upload routes",
		},
		[]string{"path"},
	)

	// Batch metrics - track batch-advance invocations per pipeline stage
	BatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batches",
			Name:      "total",
			Help:      "Total number of batch invocations by stage and result",
		},
		[]string{"stage", "result"},
	)

	BatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "batches",
			Name:      "duration_seconds",
			Help:      "Batch invocation duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30, 45, 60},
		},
		[]string{"stage"},
	)

	// Draft metrics - track per-draft outcomes within batches
	DraftsAdvanced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "drafts",
			Name:      "advanced_total",
			Help:      "Total number of drafts advanced by stage and result",
		},
		[]string{"stage", "result"},
	)

	// Model metrics - track generative model calls
	ModelCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "calls_total",
			Help:      "Total number of model calls by outcome",
		},
		[]string{"outcome"},
	)

	ModelCallDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "call_duration_seconds",
			Help:      "Generative model call latency in seconds, rate limiter wait excluded",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 15, 20, 30, 45},
		},
	)

	// Image metrics - track transformed image output
	ImageBytesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "bytes_written_total",
			Help:      "Total bytes of transformed images written to blob storage",
		},
	)

	// Cache metrics - track master list cache lookups
	MasterCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "master_cache",
			Name:      "requests_total",
			Help:      "Total number of master list cache lookups by result",
		},
		[]string{"result"},
	)

	// Runner metrics - track jobs driven by the background runner
	RunnerJobsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "runner",
			Name:      "jobs_in_progress",
			Help:      "Number of jobs currently being advanced by the background runner",
		},
	)

	// Streaming export metrics - track draft exports
	StreamingExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "streaming",
			Name:      "exports_total",
			Help:      "Total number of streaming draft exports by format and result",
		},
		[]string{"format", "result"},
	)

	StreamingExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "streaming",
			Name:      "export_duration_seconds",
			Help:      "Streaming export duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"format"},
	)

	StreamingExportRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "streaming",
			Name:      "records_total",
			Help:      "Total number of drafts streamed by format",
		},
		[]string{"format"},
	)

	StreamingExportsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "streaming",
			Name:      "exports_in_flight",
			Help:      "Number of streaming exports currently in progress",
		},
	)

	// Database metrics - track database operation performance
	DBConnectionPoolSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "pool_connections",
			Help:      "Database connection pool stats",
		},
		[]string{"state"},
	)
)

// PoolStats is an interface for getting pool statistics
// This allows for easier testing by mocking the pool stats
type PoolStats interface {
	TotalConns() int32
	IdleConns() int32
	AcquiredConns() int32
}

// PoolStatsProvider is an interface for providing pool stats
type PoolStatsProvider interface {
	Stat() PoolStats
}

// pgxPoolAdapter adapts pgxpool.Pool to PoolStatsProvider
type pgxPoolAdapter struct {
	pool *pgxpool.Pool
}

func (a *pgxPoolAdapter) Stat() PoolStats {
	return a.pool.Stat()
}

// PoolStatsCollector collects database pool statistics periodically
type PoolStatsCollector struct {
	provider PoolStatsProvider
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewPoolStatsCollector creates a new pool stats collector
func NewPoolStatsCollector(pool *pgxpool.Pool) *PoolStatsCollector {
	return &PoolStatsCollector{
		provider: &pgxPoolAdapter{pool: pool},
		stopChan: make(chan struct{}),
	}
}

// NewPoolStatsCollectorWithProvider creates a new pool stats collector with a custom provider (for testing)
func NewPoolStatsCollectorWithProvider(provider PoolStatsProvider) *PoolStatsCollector {
	return &PoolStatsCollector{
		provider: provider,
		stopChan: make(chan struct{}),
	}
}

// Start begins collecting pool stats every interval
func (c *PoolStatsCollector) Start(interval time.Duration) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Collect immediately on start
		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopChan:
				return
			}
		}
	}()
}

func (c *PoolStatsCollector) collect() {
	stats := c.provider.Stat()
	DBConnectionPoolSize.WithLabelValues("total").Set(float64(stats.TotalConns()))
	DBConnectionPoolSize.WithLabelValues("idle").Set(float64(stats.IdleConns()))
	DBConnectionPoolSize.WithLabelValues("in_use").Set(float64(stats.AcquiredConns()))
}

// Stop stops the pool stats collector
func (c *PoolStatsCollector) Stop() {
	close(c.stopChan)
	c.wg.Wait()
}

// Model call outcomes.
const (
	ModelOutcomeSuccess       = "success"
	ModelOutcomeInvalid       = "invalid_response"
	ModelOutcomeProviderError = "provider_error"
)

// Master cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// ObserveBatch records one batch invocation and the per-draft outcomes it produced.
func ObserveBatch(stage, result string, durationSeconds float64, succeeded, failed int) {
	BatchesTotal.WithLabelValues(stage, result).Inc()
	BatchDuration.WithLabelValues(stage).Observe(durationSeconds)

	if succeeded > 0 {
		DraftsAdvanced.WithLabelValues(stage, "success").Add(float64(succeeded))
	}
	if failed > 0 {
		DraftsAdvanced.WithLabelValues(stage, "failure").Add(float64(failed))
	}
}

// RecordModelCall counts one model call.
func RecordModelCall(outcome string) {
	ModelCallsTotal.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup counts one master cache lookup.
func RecordCacheLookup(result string) {
	MasterCacheRequests.WithLabelValues(result).Inc()
}

// RecordImageWritten adds the size of one stored image.
func RecordImageWritten(size int) {
	ImageBytesWritten.Add(float64(size))
}

// StartRunnerJob increments the runner's in-progress gauge
func StartRunnerJob() {
	RunnerJobsInProgress.Inc()
}

// EndRunnerJob decrements the runner's in-progress gauge
func EndRunnerJob() {
	RunnerJobsInProgress.Dec()
}

// Timer is a helper for measuring operation duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer starting now
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time since the timer was created
func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(time.Since(t.start).Seconds())
}

// LogHealthCheckMetrics logs database health check result (for debugging)
func LogHealthCheckMetrics(ctx context.Context, pool *pgxpool.Pool) {
	stats := pool.Stat()
	slog.Debug("Database pool stats",
		slog.Int("total_conns", int(stats.TotalConns())),
		slog.Int("idle_conns", int(stats.IdleConns())),
		slog.Int("acquired_conns", int(stats.AcquiredConns())),
		slog.Int64("acquire_count", stats.AcquireCount()),
		slog.Int64("canceled_acquire_count", stats.CanceledAcquireCount()),
	)
}

// StartStreamingExport starts tracking a streaming export
func StartStreamingExport() {
	StreamingExportsInFlight.Inc()
}

// EndStreamingExport ends tracking a streaming export and records metrics
func EndStreamingExport(format, result string, durationSeconds float64, recordCount int) {
	StreamingExportsInFlight.Dec()
	StreamingExportsTotal.WithLabelValues(format, result).Inc()
	StreamingExportDuration.WithLabelValues(format).Observe(durationSeconds)
	if recordCount > 0 {
		StreamingExportRecords.WithLabelValues(format).Add(float64(recordCount))
	}
}
