package domain

import "time"

// JobStatus represents the lifecycle status of an import job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
	JobStatusCancelled  JobStatus = "CANCELLED"
)

// IsTerminal reports whether no further batch may run against the job.
// COMPLETED is not terminal: attaching a new archive reopens the job.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusFailed || s == JobStatusCancelled
}

// JobImageStatus tracks the image sub-pipeline independently of enrichment.
type JobImageStatus string

const (
	JobImageNotStarted JobImageStatus = "NOT_STARTED"
	JobImageProcessing JobImageStatus = "PROCESSING"
	JobImageCompleted  JobImageStatus = "COMPLETED"
)

// NoMatchCursor is the match cursor of a job whose archive has not been scanned yet.
const NoMatchCursor = -1

// ImportJob represents one uploaded spreadsheet and its optional image archive.
type ImportJob struct {
	ID               string                 `json:"id"`
	SourceKey        string                 `json:"source_key"`
	SourceFilename   string                 `json:"source_filename"`
	ArchiveKey       *string                `json:"archive_key,omitempty"`
	Status           JobStatus              `json:"status"`
	TotalRows        int                    `json:"total_rows"`
	ProcessedRows    int                    `json:"processed_rows"`
	FailedRows       int                    `json:"failed_rows"`
	ImageStatus      JobImageStatus         `json:"image_status"`
	ImageTotal       int                    `json:"image_total"`
	ImageProcessed   int                    `json:"image_processed"`
	MatchCursor      int                    `json:"match_cursor"`
	ArchiveVersion   int                    `json:"archive_version"`
	IdempotencyToken string                 `json:"idempotency_token"`
	Config           map[string]interface{} `json:"config,omitempty"`
	ErrorMessage     *string                `json:"error_message,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	CompletedAt      *time.Time             `json:"completed_at,omitempty"`
}

// HasArchive reports whether an image archive is attached to the job.
func (j *ImportJob) HasArchive() bool {
	return j.ArchiveKey != nil && *j.ArchiveKey != ""
}

// JobCounterDelta holds increments applied atomically to a job's counters.
type JobCounterDelta struct {
	ProcessedRows  int
	FailedRows     int
	ImageTotal     int
	ImageProcessed int
}

// IsZero reports whether the delta changes nothing.
func (d JobCounterDelta) IsZero() bool {
	return d == JobCounterDelta{}
}

// Stage names a batch-advance stage of the pipeline.
type Stage string

const (
	StageEnrichment   Stage = "enrichment"
	StageImageMatch   Stage = "image_match"
	StageImageProcess Stage = "image_process"
)

// ValidStages contains all stages that can be advanced by a caller.
var ValidStages = []Stage{StageEnrichment, StageImageMatch, StageImageProcess}

// IsValidStage checks if a stage name is valid.
func IsValidStage(stage string) bool {
	for _, s := range ValidStages {
		if string(s) == stage {
			return true
		}
	}
	return false
}

// EnrichmentProgress is the report of one enrichment batch.
type EnrichmentProgress struct {
	Processed int `json:"processed"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
	Failed    int `json:"failed"`
	Remaining int `json:"remaining"`
}

// ImageMatchProgress is the report of one image-match batch.
type ImageMatchProgress struct {
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
	Remaining int `json:"remaining"`
}

// ImageProcessProgress is the report of one image-process batch.
type ImageProcessProgress struct {
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Remaining int      `json:"remaining"`
	Errors    []string `json:"errors"`
}
