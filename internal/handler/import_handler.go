package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-import/internal/domain"
	"catalog-import/internal/logger"
	"catalog-import/internal/middleware"
	"catalog-import/internal/service"
)

// Enqueuer schedules a job for background advancing.
type Enqueuer interface {
	Enqueue(jobID string) error
}

// ImportHandler handles import-related HTTP requests.
type ImportHandler struct {
	pipeline service.PipelineServiceInterface
	runner   Enqueuer
}

// NewImportHandler creates a new ImportHandler. runner may be nil, in which case
// batches only run when a caller asks for them.
func NewImportHandler(pipeline service.PipelineServiceInterface, runner Enqueuer) *ImportHandler {
	return &ImportHandler{
		pipeline: pipeline,
		runner:   runner,
	}
}

// ImportJobResponse represents an import job in the API response.
type ImportJobResponse struct {
	ID               string              `json:"id"`
	Status           string              `json:"status"`
	SourceFilename   string              `json:"source_filename"`
	HasArchive       bool                `json:"has_archive"`
	TotalRows        int                 `json:"total_rows"`
	ProcessedRows    int                 `json:"processed_rows"`
	FailedRows       int                 `json:"failed_rows"`
	ImageStatus      string              `json:"image_status"`
	ImageTotal       int                 `json:"image_total"`
	ImageProcessed   int                 `json:"image_processed"`
	IdempotencyToken string              `json:"idempotency_token"`
	ErrorMessage     *string             `json:"error_message,omitempty"`
	Drafts           *domain.DraftCounts `json:"drafts,omitempty"`
	CreatedAt        string              `json:"created_at"`
	UpdatedAt        string              `json:"updated_at"`
	CompletedAt      *string             `json:"completed_at,omitempty"`
}

// toImportJobResponse converts a domain.ImportJob to an ImportJobResponse.
func toImportJobResponse(job *domain.ImportJob) ImportJobResponse {
	response := ImportJobResponse{
		ID:               job.ID,
		Status:           string(job.Status),
		SourceFilename:   job.SourceFilename,
		HasArchive:       job.HasArchive(),
		TotalRows:        job.TotalRows,
		ProcessedRows:    job.ProcessedRows,
		FailedRows:       job.FailedRows,
		ImageStatus:      string(job.ImageStatus),
		ImageTotal:       job.ImageTotal,
		ImageProcessed:   job.ImageProcessed,
		IdempotencyToken: job.IdempotencyToken,
		ErrorMessage:     job.ErrorMessage,
		CreatedAt:        job.CreatedAt.Format(TimeFormat),
		UpdatedAt:        job.UpdatedAt.Format(TimeFormat),
	}
	if job.CompletedAt != nil {
		completedAt := job.CompletedAt.Format(TimeFormat)
		response.CompletedAt = &completedAt
	}
	return response
}

// BatchRequest is the optional body of the batch endpoints.
type BatchRequest struct {
	BatchSize int `json:"batchSize"`
}

// ArchiveRequest points a job at an archive already in the blob store.
type ArchiveRequest struct {
	ArchiveKey string `json:"archiveKey" binding:"required"`
}

// CreateImport handles POST /api/v1/imports
func (h *ImportHandler) CreateImport(c *gin.Context) {
	source, filename, err := readFormFile(c, "file")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if source == nil {
		badRequest(c, "file is required")
		return
	}
	archive, _, err := readFormFile(c, "archive")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	token := c.PostForm("idempotency_token")
	if token == "" {
		token = c.GetHeader("Idempotency-Key")
	}

	job, err := h.pipeline.CreateImport(c.Request.Context(), service.CreateImportRequest{
		IdempotencyToken: token,
		Filename:         filename,
		Source:           source,
		Archive:          archive,
		RequestID:        middleware.GetRequestID(c),
	})
	if err != nil {
		if job != nil && errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "job": toImportJobResponse(job)})
			return
		}
		respondError(c, err, nil)
		return
	}

	h.enqueue(c, job)
	c.JSON(http.StatusAccepted, toImportJobResponse(job))
}

// GetImport handles GET /api/v1/imports/:id
func (h *ImportHandler) GetImport(c *gin.Context) {
	details, err := h.pipeline.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	response := toImportJobResponse(details.ImportJob)
	response.Drafts = &details.Drafts
	c.JSON(http.StatusOK, response)
}

// FindImport handles GET /api/v1/imports?idempotency_token=
func (h *ImportHandler) FindImport(c *gin.Context) {
	token := c.Query("idempotency_token")
	if token == "" {
		badRequest(c, "idempotency_token is required")
		return
	}

	job, err := h.pipeline.GetJobByToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, toImportJobResponse(job))
}

// AttachArchive handles PUT /api/v1/imports/:id/archive with either a multipart
// archive file or a JSON body naming an uploaded archive.
func (h *ImportHandler) AttachArchive(c *gin.Context) {
	var data []byte
	var key string
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		archive, _, err := readFormFile(c, "archive")
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		if archive == nil {
			badRequest(c, "archive is required")
			return
		}
		data = archive
	} else {
		var req ArchiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		key = req.ArchiveKey
	}

	job, err := h.pipeline.AttachArchive(c.Request.Context(), c.Param("id"), data, key)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	h.enqueue(c, job)
	c.JSON(http.StatusOK, toImportJobResponse(job))
}

// CancelImport handles POST /api/v1/imports/:id/cancel
func (h *ImportHandler) CancelImport(c *gin.Context) {
	job, err := h.pipeline.CancelJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, toImportJobResponse(job))
}

// Enrich handles POST /api/v1/imports/:id/enrich
func (h *ImportHandler) Enrich(c *gin.Context) {
	h.advance(c, domain.StageEnrichment)
}

// MatchImages handles POST /api/v1/imports/:id/match-images
func (h *ImportHandler) MatchImages(c *gin.Context) {
	h.advance(c, domain.StageImageMatch)
}

// ProcessImages handles POST /api/v1/imports/:id/process-images
func (h *ImportHandler) ProcessImages(c *gin.Context) {
	h.advance(c, domain.StageImageProcess)
}

func (h *ImportHandler) advance(c *gin.Context, stage domain.Stage) {
	batchSize, err := batchSizeFrom(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	progress, err := h.pipeline.Advance(c.Request.Context(), c.Param("id"), stage, batchSize)
	if err != nil {
		respondError(c, err, progress)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// RetryFailed handles POST /api/v1/imports/:id/retry-failed
func (h *ImportHandler) RetryFailed(c *gin.Context) {
	jobID := c.Param("id")
	reset, err := h.pipeline.RetryFailedEnrichment(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	if reset > 0 && h.runner != nil {
		if err := h.runner.Enqueue(jobID); err != nil {
			logger.WithJobID(jobID).Warn("Failed to queue job", "error", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"reset": reset})
}

func (h *ImportHandler) enqueue(c *gin.Context, job *domain.ImportJob) {
	if h.runner == nil || job.Status.IsTerminal() || job.Status == domain.JobStatusCompleted {
		return
	}
	if err := h.runner.Enqueue(job.ID); err != nil {
		logger.WithRequestID(middleware.GetRequestID(c)).Warn("Failed to queue job",
			"job_id", job.ID, "error", err)
	}
}

// batchSizeFrom reads batchSize from the JSON body or the batch_size query parameter.
// Zero means the stage default.
func batchSizeFrom(c *gin.Context) (int, error) {
	if raw := c.Query("batch_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("batch_size must be an integer")
		}
		return size, nil
	}
	if c.Request.ContentLength == 0 {
		return 0, nil
	}
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return 0, fmt.Errorf("invalid batch request: %v", err)
	}
	return req.BatchSize, nil
}

// readFormFile returns the bytes of an optional multipart file. A missing field yields nil data.
func readFormFile(c *gin.Context, field string) ([]byte, string, error) {
	file, header, err := c.Request.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("%s: %v", field, err)
	}
	defer file.Close()

	if header.Size > MaxUploadBytes {
		return nil, "", fmt.Errorf("%s exceeds %d bytes", field, MaxUploadBytes)
	}
	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %v", field, err)
	}
	if len(data) > MaxUploadBytes {
		return nil, "", fmt.Errorf("%s exceeds %d bytes", field, MaxUploadBytes)
	}
	return data, header.Filename, nil
}
