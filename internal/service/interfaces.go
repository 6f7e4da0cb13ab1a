package service

import (
	"context"

	"catalog-import/internal/domain"
	"catalog-import/internal/enrichment"
	"catalog-import/internal/validator"
)

// StreamWriter interface for streaming export data.
type StreamWriter interface {
	Write(data []byte) error
	Flush()
}

// MasterProvider returns the current master lists.
type MasterProvider interface {
	Load(ctx context.Context) (domain.MasterLists, error)
}

// Enricher turns raw rows into validated suggestions.
type Enricher interface {
	Enrich(ctx context.Context, rows []enrichment.Row, masters domain.MasterLists) ([]enrichment.RowResult, error)
}

// PipelineServiceInterface defines the import pipeline operations.
// Used for dependency injection and mocking in tests.
type PipelineServiceInterface interface {
	// CreateImport ingests a spreadsheet and creates one draft per row.
	CreateImport(ctx context.Context, req CreateImportRequest) (*domain.ImportJob, error)
	// AttachArchive attaches or replaces the image archive of a job.
	AttachArchive(ctx context.Context, jobID string, data []byte, key string) (*domain.ImportJob, error)
	// RunEnrichmentBatch enriches the next slice of drafts.
	RunEnrichmentBatch(ctx context.Context, jobID string, batchSize int) (domain.EnrichmentProgress, error)
	// RunImageMatchBatch matches the next slice of drafts against the archive.
	RunImageMatchBatch(ctx context.Context, jobID string, batchSize int) (domain.ImageMatchProgress, error)
	// RunImageProcessBatch transforms and uploads the next slice of matched images.
	RunImageProcessBatch(ctx context.Context, jobID string, batchSize int) (domain.ImageProcessProgress, error)
	// Advance runs one batch of the named stage.
	Advance(ctx context.Context, jobID string, stage domain.Stage, batchSize int) (interface{}, error)
	// CancelJob stops further batches from running against a job.
	CancelJob(ctx context.Context, jobID string) (*domain.ImportJob, error)
	// RetryFailedEnrichment puts AI_ERROR drafts back into the enrichment slice.
	RetryFailedEnrichment(ctx context.Context, jobID string) (int, error)
	// GetJob retrieves a job with its draft counts.
	GetJob(ctx context.Context, jobID string) (*JobDetails, error)
	// GetJobByToken retrieves a job by its idempotency token.
	GetJobByToken(ctx context.Context, token string) (*domain.ImportJob, error)
	// ListDrafts lists the drafts of a job in row order.
	ListDrafts(ctx context.Context, jobID string, query DraftQuery) ([]domain.ProductDraft, error)
	// GetDraft retrieves a draft with its job summary.
	GetDraft(ctx context.Context, draftID string) (*DraftDetails, error)
	// PatchDraft applies a reviewer edit.
	PatchDraft(ctx context.Context, draftID string, patch validator.DraftPatch) (*domain.ProductDraft, error)
	// StreamDrafts streams the drafts of a job directly to the writer.
	StreamDrafts(ctx context.Context, jobID, format string, writer StreamWriter) (int, error)
}
