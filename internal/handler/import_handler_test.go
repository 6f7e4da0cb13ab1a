package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"catalog-import/internal/domain"
	"catalog-import/internal/enrichment"
	"catalog-import/internal/mocks"
	"catalog-import/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingEnqueuer struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (r *recordingEnqueuer) Enqueue(jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, jobID)
	return r.err
}

func (r *recordingEnqueuer) queued() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

func newJob(id string, status domain.JobStatus) *domain.ImportJob {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.ImportJob{
		ID:               id,
		SourceFilename:   "products.csv",
		Status:           status,
		ImageStatus:      domain.JobImageNotStarted,
		TotalRows:        3,
		MatchCursor:      domain.NoMatchCursor,
		IdempotencyToken: "tok-1",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile(name, name+".bin")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func importRouter(h *ImportHandler) *gin.Engine {
	router := gin.New()
	imports := router.Group("/api/v1/imports")
	imports.POST("", h.CreateImport)
	imports.GET("", h.FindImport)
	imports.GET("/:id", h.GetImport)
	imports.PUT("/:id/archive", h.AttachArchive)
	imports.POST("/:id/cancel", h.CancelImport)
	imports.POST("/:id/enrich", h.Enrich)
	imports.POST("/:id/match-images", h.MatchImages)
	imports.POST("/:id/process-images", h.ProcessImages)
	imports.POST("/:id/retry-failed", h.RetryFailed)
	return router
}

func TestImportHandler_CreateImport(t *testing.T) {
	t.Run("creates import job and queues it", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		runner := &recordingEnqueuer{}
		handler := NewImportHandler(mockService, runner)

		mockService.EXPECT().
			CreateImport(mock.Anything, mock.MatchedBy(func(req service.CreateImportRequest) bool {
				return req.Filename == "file.bin" &&
					req.IdempotencyToken == "tok-1" &&
					string(req.Source) == "name\nParacetamol\n" &&
					string(req.Archive) == "zip-bytes"
			})).
			Return(newJob("job-1", domain.JobStatusPending), nil)

		body, contentType := multipartBody(t,
			map[string]string{"idempotency_token": "tok-1"},
			map[string]string{"file": "name\nParacetamol\n", "archive": "zip-bytes"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		importRouter(handler).ServeHTTP(w, req)

		require.Equal(t, http.StatusAccepted, w.Code)

		var response ImportJobResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "job-1", response.ID)
		assert.Equal(t, "PENDING", response.Status)
		assert.Equal(t, "NOT_STARTED", response.ImageStatus)
		assert.Equal(t, "2026-03-01T12:00:00Z", response.CreatedAt)
		assert.Equal(t, []string{"job-1"}, runner.queued())
	})

	t.Run("reads the idempotency key header", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		mockService.EXPECT().
			CreateImport(mock.Anything, mock.MatchedBy(func(req service.CreateImportRequest) bool {
				return req.IdempotencyToken == "header-token" && req.Archive == nil
			})).
			Return(newJob("job-1", domain.JobStatusPending), nil)

		body, contentType := multipartBody(t, nil, map[string]string{"file": "name\nA\n"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Idempotency-Key", "header-token")
		w := httptest.NewRecorder()

		importRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("returns error when file is missing", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		body, contentType := multipartBody(t, map[string]string{"idempotency_token": "tok-1"}, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		importRouter(handler).ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "file is required")
	})

	t.Run("returns the failed job when the spreadsheet cannot be parsed", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		runner := &recordingEnqueuer{}
		handler := NewImportHandler(mockService, runner)

		failed := newJob("job-2", domain.JobStatusFailed)
		msg := "missing name column"
		failed.ErrorMessage = &msg
		mockService.EXPECT().
			CreateImport(mock.Anything, mock.Anything).
			Return(failed, fmt.Errorf("%w: %s", service.ErrInvalidInput, msg))

		body, contentType := multipartBody(t, nil, map[string]string{"file": "brand\nAcme\n"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		importRouter(handler).ServeHTTP(w, req)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var response struct {
			Error string            `json:"error"`
			Job   ImportJobResponse `json:"job"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Contains(t, response.Error, "missing name column")
		assert.Equal(t, "FAILED", response.Job.Status)
		require.NotNil(t, response.Job.ErrorMessage)
		assert.Empty(t, runner.queued())
	})

	t.Run("hides internal errors", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		mockService.EXPECT().
			CreateImport(mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused"))

		body, contentType := multipartBody(t, nil, map[string]string{"file": "name\nA\n"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		importRouter(handler).ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestImportHandler_GetImport(t *testing.T) {
	t.Run("returns job with draft counts", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		counts := domain.NewDraftCounts()
		counts.Add(domain.DraftPendingReview, domain.ImageUnmatched, 2)
		counts.Add(domain.DraftAIError, domain.ImageUnmatched, 1)
		mockService.EXPECT().
			GetJob(mock.Anything, "job-1").
			Return(&service.JobDetails{ImportJob: newJob("job-1", domain.JobStatusProcessing), Drafts: counts}, nil)

		w := httptest.NewRecorder()
		importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/imports/job-1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var response ImportJobResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "PROCESSING", response.Status)
		require.NotNil(t, response.Drafts)
		assert.Equal(t, 3, response.Drafts.Total)
		assert.Equal(t, 1, response.Drafts.ByStatus[domain.DraftAIError])
	})

	t.Run("returns 404 for unknown job", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		mockService.EXPECT().GetJob(mock.Anything, "missing").Return(nil, service.ErrJobNotFound)

		w := httptest.NewRecorder()
		importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/imports/missing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), service.ErrJobNotFound.Error())
	})
}

func TestImportHandler_FindImport(t *testing.T) {
	t.Run("finds job by token", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		mockService.EXPECT().GetJobByToken(mock.Anything, "tok-1").Return(newJob("job-1", domain.JobStatusCompleted), nil)

		w := httptest.NewRecorder()
		importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/imports?idempotency_token=tok-1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"job-1"`)
	})

	t.Run("requires a token", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		w := httptest.NewRecorder()
		importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/imports", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImportHandler_Batches(t *testing.T) {
	t.Run("runs enrichment with the requested batch size", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		mockService.EXPECT().
			Advance(mock.Anything, "job-1", domain.StageEnrichment, 10).
			Return(domain.EnrichmentProgress{Processed: 10, Matched: 7, Unmatched: 3, Remaining: 5}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/job-1/enrich", strings.NewReader(`{"batchSize":10}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		importRouter(handler).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var progress domain.EnrichmentProgress
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
		assert.Equal(t, 7, progress.Matched)
		assert.Equal(t, 5, progress.Remaining)
	})

	t.Run("uses the stage default without a body", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		mockService.EXPECT().
			Advance(mock.Anything, "job-1", domain.StageImageMatch, 0).
			Return(domain.ImageMatchProgress{Matched: 2, Unmatched: 1}, nil)

		w := httptest.NewRecorder()
		importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/imports/job-1/match-images", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reads batch size from the query", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		mockService.EXPECT().
			Advance(mock.Anything, "job-1", domain.StageImageProcess, 25).
			Return(domain.ImageProcessProgress{Processed: 25, Errors: []string{}}, nil)

		w := httptest.NewRecorder()
		importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/imports/job-1/process-images?batch_size=25", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"errors":[]`)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/job-1/enrich", strings.NewReader(`{"batchSize":"ten"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		importRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 503 with partial progress when the provider fails", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		mockService.EXPECT().
			Advance(mock.Anything, "job-1", domain.StageEnrichment, 0).
			Return(domain.EnrichmentProgress{Processed: 3, Remaining: 9}, fmt.Errorf("enrich rows: %w", enrichment.ErrProviderUnavailable))

		w := httptest.NewRecorder()
		importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/imports/job-1/enrich", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, RetryAfterSeconds, w.Header().Get("Retry-After"))

		var response struct {
			Error    string                    `json:"error"`
			Progress domain.EnrichmentProgress `json:"progress"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 3, response.Progress.Processed)
		assert.Equal(t, 9, response.Progress.Remaining)
	})

	t.Run("maps service errors to status codes", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want int
		}{
			{"no archive", service.ErrNoArchive, http.StatusConflict},
			{"job not active", service.ErrJobNotActive, http.StatusConflict},
			{"unreadable archive", service.ErrArchiveUnreadable, http.StatusUnprocessableEntity},
			{"batch size too large", fmt.Errorf("%w: batchSize must be at most 500", service.ErrInvalidInput), http.StatusUnprocessableEntity},
			{"storage down", fmt.Errorf("%w: upload image", service.ErrStorageUnavailable), http.StatusServiceUnavailable},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockService := mocks.NewMockPipelineServiceInterface(t)
				handler := NewImportHandler(mockService, nil)

				mockService.EXPECT().
					Advance(mock.Anything, "job-1", domain.StageImageMatch, 0).
					Return(domain.ImageMatchProgress{}, tt.err)

				w := httptest.NewRecorder()
				importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/imports/job-1/match-images", nil))

				assert.Equal(t, tt.want, w.Code)
			})
		}
	})
}

func TestImportHandler_AttachArchive(t *testing.T) {
	t.Run("attaches an uploaded archive", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		runner := &recordingEnqueuer{}
		handler := NewImportHandler(mockService, runner)

		key := "archives/job-1.zip"
		job := newJob("job-1", domain.JobStatusProcessing)
		job.ArchiveKey = &key
		mockService.EXPECT().
			AttachArchive(mock.Anything, "job-1", []byte("zip-bytes"), "").
			Return(job, nil)

		body, contentType := multipartBody(t, nil, map[string]string{"archive": "zip-bytes"})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/imports/job-1/archive", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		importRouter(handler).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var response ImportJobResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.HasArchive)
		assert.Equal(t, []string{"job-1"}, runner.queued())
	})

	t.Run("attaches an archive by key", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		mockService.EXPECT().
			AttachArchive(mock.Anything, "job-1", []byte(nil), "uploads/images.zip").
			Return(newJob("job-1", domain.JobStatusProcessing), nil)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/imports/job-1/archive", strings.NewReader(`{"archiveKey":"uploads/images.zip"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		importRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("requires an archive key", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/imports/job-1/archive", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		importRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImportHandler_CancelImport(t *testing.T) {
	t.Run("cancels job", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		mockService.EXPECT().
			CancelJob(mock.Anything, "job-1").
			Return(newJob("job-1", domain.JobStatusCancelled), nil)

		w := httptest.NewRecorder()
		importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/imports/job-1/cancel", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"CANCELLED"`)
	})

	t.Run("returns 409 for a finished job", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		handler := NewImportHandler(mockService, nil)

		mockService.EXPECT().CancelJob(mock.Anything, "job-1").Return(nil, service.ErrJobNotActive)

		w := httptest.NewRecorder()
		importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/imports/job-1/cancel", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestImportHandler_RetryFailed(t *testing.T) {
	t.Run("queues the job when drafts were reset", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		runner := &recordingEnqueuer{}
		handler := NewImportHandler(mockService, runner)

		mockService.EXPECT().RetryFailedEnrichment(mock.Anything, "job-1").Return(4, nil)

		w := httptest.NewRecorder()
		importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/imports/job-1/retry-failed", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"reset":4}`, w.Body.String())
		assert.Equal(t, []string{"job-1"}, runner.queued())
	})

	t.Run("does not queue when nothing was reset", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		runner := &recordingEnqueuer{}
		handler := NewImportHandler(mockService, runner)

		mockService.EXPECT().RetryFailedEnrichment(mock.Anything, "job-1").Return(0, nil)

		w := httptest.NewRecorder()
		importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/imports/job-1/retry-failed", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, runner.queued())
	})

	t.Run("still answers when the queue is full", func(t *testing.T) {
		mockService := mocks.NewMockPipelineServiceInterface(t)
		runner := &recordingEnqueuer{err: errors.New("queue full")}
		handler := NewImportHandler(mockService, runner)

		mockService.EXPECT().RetryFailedEnrichment(mock.Anything, "job-1").Return(1, nil)

		w := httptest.NewRecorder()
		importRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/imports/job-1/retry-failed", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
