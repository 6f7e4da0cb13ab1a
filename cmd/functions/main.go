package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"catalog-import/internal/bootstrap"
	"catalog-import/internal/config"
	"catalog-import/internal/domain"
	"catalog-import/internal/handler"
	"catalog-import/internal/logger"
	"catalog-import/internal/service"
	"catalog-import/internal/storage"
	"catalog-import/internal/validator"
)

var (
	app     *bootstrap.App
	once    sync.Once
	initErr error
)

func init() {
	functions.HTTP("AdvanceImport", advanceImport)
	functions.CloudEvent("IngestUpload", ingestUpload)
}

// main is required by the Go Functions Framework.
func main() {}

// gcsEvent is the payload of a Cloud Storage object event.
type gcsEvent struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// setup wires the pipeline once per instance.
func setup() error {
	once.Do(func() {
		var cfg *config.Config
		cfg, initErr = config.Load()
		if initErr != nil {
			return
		}
		logger.Configure(cfg.LogLevel)
		app, initErr = bootstrap.New(context.Background(), cfg)
	})
	if initErr != nil {
		logger.Error("Critical error during function initialization", "error", initErr)
	}
	return initErr
}

// advanceImport runs one batch of one stage and answers with its progress.
func advanceImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, handler.ErrorResponse{Error: "method not allowed"})
		return
	}
	if err := setup(); err != nil {
		writeJSON(w, http.StatusInternalServerError, handler.ErrorResponse{Error: "internal error"})
		return
	}

	var req validator.BatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, handler.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := app.Validator.ValidateBatchRequest(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, handler.ErrorResponse{Error: validator.ConvertValidationErrors(err)})
		return
	}

	progress, err := app.Pipeline.Advance(r.Context(), req.JobID, domain.Stage(req.Stage), req.BatchSize)
	if err != nil {
		status := handler.StatusFor(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			logger.WithStage(req.JobID, req.Stage).Error("Batch failed", "error", err)
			message = "internal error"
		}
		if status == http.StatusServiceUnavailable {
			w.Header().Set("Retry-After", handler.RetryAfterSeconds)
		}
		writeJSON(w, status, handler.ErrorResponse{Error: message, Progress: progress})
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// ingestUpload creates an import job when a spreadsheet lands under imports/<token>/.
// An archive already uploaded under the same token is attached to the job.
func ingestUpload(ctx context.Context, e cloudevents.Event) error {
	if err := setup(); err != nil {
		return err
	}

	var event gcsEvent
	if err := json.Unmarshal(e.Data(), &event); err != nil {
		logger.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("unmarshal event data: %w", err)
	}

	token, ok := storage.ParseSourceKey(event.Name)
	if !ok {
		logger.Debug("Ignoring object outside the import layout", "bucket", event.Bucket, "name", event.Name)
		return nil
	}

	req := service.CreateImportRequest{
		IdempotencyToken: token,
		SourceKey:        event.Name,
		RequestID:        e.ID(),
	}
	archiveKey := storage.ArchiveKey(token)
	_, err := app.Blobs.Get(ctx, archiveKey)
	switch {
	case err == nil:
		req.ArchiveKey = archiveKey
	case !errors.Is(err, storage.ErrNotExist):
		return fmt.Errorf("probe archive %s: %w", archiveKey, err)
	}

	job, err := app.Pipeline.CreateImport(ctx, req)
	if err != nil {
		if job != nil && errors.Is(err, service.ErrInvalidInput) {
			// the FAILED job records the reason; a redelivery would not change it
			return nil
		}
		return err
	}

	logger.WithJobID(job.ID).Info("Import created from upload",
		"source", event.Name,
		"has_archive", job.HasArchive(),
		"rows", job.TotalRows)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to write response", "error", err)
	}
}
