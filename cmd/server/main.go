package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalog-import/internal/bootstrap"
	"catalog-import/internal/config"
	"catalog-import/internal/handler"
	"catalog-import/internal/logger"
	"catalog-import/internal/middleware"
	"catalog-import/internal/service"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.Configure(cfg.LogLevel)

	// Wire store, blobs, model client and pipeline
	app, err := bootstrap.New(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to initialize pipeline",
			slog.String("error", err.Error()))
	}
	defer app.Close()

	// Background runner advances jobs without an external caller
	var runner *service.Runner
	var enqueuer handler.Enqueuer
	if cfg.AutoAdvance {
		runner = service.NewRunner(app.Pipeline, cfg.WorkerPoolSize)
		enqueuer = runner
		logger.Info("Auto-advance enabled",
			slog.Int("workers", cfg.WorkerPoolSize))
	}

	// Initialize handlers
	importHandler := handler.NewImportHandler(app.Pipeline, enqueuer)
	draftHandler := handler.NewDraftHandler(app.Pipeline)
	healthHandler := handler.NewHealthHandler(version, app.Checks)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.MaxMultipartMemory = 32 << 20

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Import routes
		imports := v1.Group("/imports")
		{
			imports.POST("", importHandler.CreateImport)
			imports.GET("", importHandler.FindImport)
			imports.GET("/:id", importHandler.GetImport)
			imports.PUT("/:id/archive", importHandler.AttachArchive)
			imports.POST("/:id/cancel", importHandler.CancelImport)
			imports.POST("/:id/enrich", importHandler.Enrich)
			imports.POST("/:id/match-images", importHandler.MatchImages)
			imports.POST("/:id/process-images", importHandler.ProcessImages)
			imports.POST("/:id/retry-failed", importHandler.RetryFailed)
			imports.GET("/:id/drafts", draftHandler.ListDrafts)
			imports.GET("/:id/drafts/export", draftHandler.ExportDrafts)
		}

		// Draft review routes
		drafts := v1.Group("/drafts")
		{
			drafts.GET("/:id", draftHandler.GetDraft)
			drafts.PATCH("/:id", draftHandler.PatchDraft)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	// Stop the runner first so no new batch starts
	if runner != nil {
		logger.Info("Closing runner")
		runner.Close()
	}

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
