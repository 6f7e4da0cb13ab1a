package service

import (
	"time"

	"catalog-import/internal/domain"
)

// CreateImportRequest describes a spreadsheet upload. Exactly one of Source and
// SourceKey must be set; Source bytes are stored before parsing, SourceKey is read
// from the blob store. Archive and ArchiveKey are optional in the same way.
type CreateImportRequest struct {
	IdempotencyToken string
	Filename         string
	Source           []byte
	SourceKey        string
	Archive          []byte
	ArchiveKey       string
	RequestID        string
}

// Options holds the batch and image settings of the pipeline.
type Options struct {
	EnrichBatchSize  int
	MatchBatchSize   int
	ProcessBatchSize int
	MaxBatchSize     int
	// InvocationBudget bounds one batch call. Zero means no deadline.
	InvocationBudget time.Duration
	// BatchHeadroom is the time kept free for persisting results before the deadline.
	BatchHeadroom time.Duration
	ImageMaxWidth int
	ImageQuality  int
	WatermarkKey  string
}

// DefaultOptions returns the stock batch settings.
func DefaultOptions() Options {
	return Options{
		EnrichBatchSize:  50,
		MatchBatchSize:   500,
		ProcessBatchSize: 50,
		MaxBatchSize:     500,
		InvocationBudget: 50 * time.Second,
		BatchHeadroom:    5 * time.Second,
		ImageMaxWidth:    1024,
		ImageQuality:     80,
	}
}

// JobDetails is a job together with its draft counts.
type JobDetails struct {
	*domain.ImportJob
	Drafts domain.DraftCounts `json:"drafts"`
}

// JobSummary is the part of a job shown next to one of its drafts.
type JobSummary struct {
	ID             string                `json:"id"`
	Status         domain.JobStatus      `json:"status"`
	ImageStatus    domain.JobImageStatus `json:"image_status"`
	SourceFilename string                `json:"source_filename"`
	TotalRows      int                   `json:"total_rows"`
	ProcessedRows  int                   `json:"processed_rows"`
	FailedRows     int                   `json:"failed_rows"`
}

// DraftDetails is a draft together with its job summary.
type DraftDetails struct {
	*domain.ProductDraft
	Job JobSummary `json:"job"`
}

// DraftQuery filters a draft listing.
type DraftQuery struct {
	Statuses []domain.DraftStatus
	// AfterRowIndex pages through the listing; zero starts at the first row.
	AfterRowIndex int
	Limit         int
}

func summarize(job *domain.ImportJob) JobSummary {
	return JobSummary{
		ID:             job.ID,
		Status:         job.Status,
		ImageStatus:    job.ImageStatus,
		SourceFilename: job.SourceFilename,
		TotalRows:      job.TotalRows,
		ProcessedRows:  job.ProcessedRows,
		FailedRows:     job.FailedRows,
	}
}
