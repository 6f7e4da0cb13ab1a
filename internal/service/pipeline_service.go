package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"catalog-import/internal/archive"
	"catalog-import/internal/domain"
	"catalog-import/internal/imageproc"
	"catalog-import/internal/ingest"
	"catalog-import/internal/logger"
	"catalog-import/internal/matcher"
	"catalog-import/internal/repository"
	"catalog-import/internal/storage"
	"catalog-import/internal/validator"
)

// PipelineService drives import jobs through ingestion, enrichment and image handling.
// Every batch call is stateless: all progress lives in the job and draft store.
type PipelineService struct {
	jobs        repository.JobRepository
	drafts      repository.DraftRepository
	blobs       storage.BlobStore
	masters     MasterProvider
	enricher    Enricher
	matcher     *matcher.Matcher
	transformer *imageproc.Transformer
	validator   *validator.Validator
	opts        Options

	watermarkMu     sync.Mutex
	watermark       []byte
	watermarkLoaded bool
}

// NewPipelineService creates a new PipelineService.
func NewPipelineService(
	jobs repository.JobRepository,
	drafts repository.DraftRepository,
	blobs storage.BlobStore,
	masters MasterProvider,
	enricher Enricher,
	m *matcher.Matcher,
	transformer *imageproc.Transformer,
	v *validator.Validator,
	opts Options,
) *PipelineService {
	defaults := DefaultOptions()
	if opts.EnrichBatchSize <= 0 {
		opts.EnrichBatchSize = defaults.EnrichBatchSize
	}
	if opts.MatchBatchSize <= 0 {
		opts.MatchBatchSize = defaults.MatchBatchSize
	}
	if opts.ProcessBatchSize <= 0 {
		opts.ProcessBatchSize = defaults.ProcessBatchSize
	}
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = defaults.MaxBatchSize
	}
	if opts.ImageMaxWidth <= 0 {
		opts.ImageMaxWidth = defaults.ImageMaxWidth
	}
	if opts.ImageQuality <= 0 {
		opts.ImageQuality = defaults.ImageQuality
	}

	return &PipelineService{
		jobs:        jobs,
		drafts:      drafts,
		blobs:       blobs,
		masters:     masters,
		enricher:    enricher,
		matcher:     m,
		transformer: transformer,
		validator:   v,
		opts:        opts,
	}
}

// CreateImport stores and parses a spreadsheet and creates one PENDING_REVIEW draft per data row.
// A repeated token returns the job created first. When the spreadsheet cannot be parsed the
// FAILED job is returned together with an error wrapping ErrInvalidInput.
func (s *PipelineService) CreateImport(ctx context.Context, req CreateImportRequest) (*domain.ImportJob, error) {
	log := logger.WithRequestID(req.RequestID)

	token := req.IdempotencyToken
	if token == "" {
		token = uuid.New().String()
	}

	existingJob, err := s.jobs.GetImportJobByIdempotencyToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("check idempotency token: %w", err)
	}
	if existingJob != nil {
		log.Info("Returning existing job for idempotency token", "job_id", existingJob.ID)
		return existingJob, nil
	}

	filename := req.Filename
	if filename == "" {
		filename = path.Base(req.SourceKey)
	}

	source, sourceKey, err := s.loadSource(ctx, token, filename, req)
	if err != nil {
		return nil, err
	}
	archiveKey, err := s.storeArchive(ctx, token, req)
	if err != nil {
		return nil, err
	}

	rows, parseErr := ingest.Parse(filename, bytes.NewReader(source))

	now := time.Now().UTC()
	job := &domain.ImportJob{
		ID:               uuid.New().String(),
		SourceKey:        sourceKey,
		SourceFilename:   filename,
		ArchiveKey:       archiveKey,
		Status:           domain.JobStatusPending,
		TotalRows:        len(rows),
		ImageStatus:      domain.JobImageNotStarted,
		MatchCursor:      domain.NoMatchCursor,
		IdempotencyToken: token,
		Config: map[string]interface{}{
			"filename":   filename,
			"request_id": req.RequestID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if parseErr != nil {
		msg := parseErr.Error()
		job.Status = domain.JobStatusFailed
		job.ErrorMessage = &msg
	}

	createdID := job.ID
	if err := s.jobs.CreateImportJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create import job: %w", err)
	}
	if job.ID != createdID {
		// another request with the same token won the race
		return job, nil
	}
	if parseErr != nil {
		log.Warn("Import source rejected", "job_id", job.ID, "error", parseErr)
		return job, fmt.Errorf("%w: %w", ErrInvalidInput, parseErr)
	}

	drafts := make([]domain.ProductDraft, len(rows))
	for i, row := range rows {
		drafts[i] = domain.ProductDraft{
			ID:          uuid.New().String(),
			JobID:       job.ID,
			RowIndex:    row.Index,
			RawData:     row.RawRow,
			Status:      domain.DraftPendingReview,
			ImageStatus: domain.ImageUnmatched,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}
	if err := s.drafts.CreateDrafts(ctx, drafts); err != nil {
		s.failJob(ctx, job, fmt.Sprintf("store drafts: %v", err))
		return nil, fmt.Errorf("create drafts: %w", err)
	}

	if err := s.finalize(ctx, job, false); err != nil {
		return nil, err
	}

	log.Info("Import job created", "job_id", job.ID, "rows", job.TotalRows, "has_archive", job.HasArchive())
	return job, nil
}

func (s *PipelineService) loadSource(ctx context.Context, token, filename string, req CreateImportRequest) ([]byte, string, error) {
	switch {
	case req.Source != nil:
		key := storage.SourceKey(token, filename)
		if err := s.blobs.Put(ctx, key, req.Source, "application/octet-stream"); err != nil {
			return nil, "", fmt.Errorf("%w: store source: %w", ErrStorageUnavailable, err)
		}
		return req.Source, key, nil
	case req.SourceKey != "":
		data, err := s.blobs.Get(ctx, req.SourceKey)
		if errors.Is(err, storage.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: source %s does not exist", ErrInvalidInput, req.SourceKey)
		}
		if err != nil {
			return nil, "", fmt.Errorf("%w: read source: %w", ErrStorageUnavailable, err)
		}
		return data, req.SourceKey, nil
	default:
		return nil, "", fmt.Errorf("%w: source file is required", ErrInvalidInput)
	}
}

func (s *PipelineService) storeArchive(ctx context.Context, token string, req CreateImportRequest) (*string, error) {
	switch {
	case req.Archive != nil:
		if _, err := archive.Open(req.Archive); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		key := storage.ArchiveKey(token)
		if err := s.blobs.Put(ctx, key, req.Archive, "application/zip"); err != nil {
			return nil, fmt.Errorf("%w: store archive: %w", ErrStorageUnavailable, err)
		}
		return &key, nil
	case req.ArchiveKey != "":
		key := req.ArchiveKey
		return &key, nil
	}
	return nil, nil
}

// AttachArchive attaches or replaces the image archive of a job. When data is nil the
// archive is expected at key already. The match cursor is reset and a COMPLETED job
// is reopened.
func (s *PipelineService) AttachArchive(ctx context.Context, jobID string, data []byte, key string) (*domain.ImportJob, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status.IsTerminal() {
		return job, ErrJobNotActive
	}

	if data != nil {
		if _, err := archive.Open(data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		key = storage.ArchiveKey(job.IdempotencyToken)
		if err := s.blobs.Put(ctx, key, data, "application/zip"); err != nil {
			return nil, fmt.Errorf("%w: store archive: %w", ErrStorageUnavailable, err)
		}
	}
	if key == "" {
		return nil, fmt.Errorf("%w: archive is required", ErrInvalidInput)
	}

	job.ArchiveKey = &key
	job.ArchiveVersion++
	job.MatchCursor = domain.NoMatchCursor
	job.ImageStatus = domain.JobImageNotStarted
	if job.Status == domain.JobStatusCompleted {
		job.Status = domain.JobStatusProcessing
		job.CompletedAt = nil
	}
	if err := s.jobs.UpdateImportJob(ctx, job); err != nil {
		return nil, fmt.Errorf("update import job: %w", err)
	}

	logger.WithJobID(job.ID).Info("Archive attached", "archive_key", key)
	return job, nil
}

// CancelJob marks a job CANCELLED. The next batch call observes it; a running batch finishes.
func (s *PipelineService) CancelJob(ctx context.Context, jobID string) (*domain.ImportJob, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	switch job.Status {
	case domain.JobStatusCancelled:
		return job, nil
	case domain.JobStatusFailed, domain.JobStatusCompleted:
		return job, ErrJobNotActive
	}

	job.Status = domain.JobStatusCancelled
	if err := s.jobs.UpdateImportJob(ctx, job); err != nil {
		return nil, fmt.Errorf("update import job: %w", err)
	}
	logger.WithJobID(job.ID).Info("Import job cancelled")
	return job, nil
}

// RetryFailedEnrichment moves every AI_ERROR draft back to PENDING_REVIEW without a
// suggestion so the next enrichment batch picks it up again.
func (s *PipelineService) RetryFailedEnrichment(ctx context.Context, jobID string) (int, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return 0, err
	}
	if job.Status.IsTerminal() {
		return 0, ErrJobNotActive
	}

	pending := domain.DraftPendingReview
	cleared := ""
	filter := domain.DraftFilter{Statuses: []domain.DraftStatus{domain.DraftAIError}}
	reset := 0
	for {
		drafts, err := s.drafts.FindDrafts(ctx, job.ID, filter, s.opts.MaxBatchSize)
		if err != nil {
			return reset, fmt.Errorf("find failed drafts: %w", err)
		}
		if len(drafts) == 0 {
			break
		}
		for _, d := range drafts {
			update := domain.DraftUpdate{Status: &pending, ClearAISuggestion: true, Notes: &cleared}
			if err := s.drafts.UpdateDraft(ctx, d.ID, update); err != nil {
				s.decrementFailed(ctx, job.ID, reset)
				return reset, fmt.Errorf("reset draft %s: %w", d.ID, err)
			}
			reset++
		}
	}
	if reset == 0 {
		return 0, nil
	}

	s.decrementFailed(ctx, job.ID, reset)
	if err := s.reopen(ctx, job.ID); err != nil {
		return reset, err
	}

	logger.WithJobID(job.ID).Info("Failed drafts reset for enrichment", "count", reset)
	return reset, nil
}

// reopen moves a COMPLETED job back to PROCESSING after drafts were handed back to enrichment.
func (s *PipelineService) reopen(ctx context.Context, jobID string) error {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status != domain.JobStatusCompleted {
		return nil
	}
	job.Status = domain.JobStatusProcessing
	job.CompletedAt = nil
	if err := s.jobs.UpdateImportJob(ctx, job); err != nil {
		return fmt.Errorf("update import job: %w", err)
	}
	return nil
}

func (s *PipelineService) decrementFailed(ctx context.Context, jobID string, n int) {
	if n == 0 {
		return
	}
	if err := s.jobs.IncrementCounters(ctx, jobID, domain.JobCounterDelta{FailedRows: -n}); err != nil {
		logger.WithJobID(jobID).Error("Failed to update job counters", "error", err)
	}
}

// GetJob retrieves a job with its draft counts.
func (s *PipelineService) GetJob(ctx context.Context, jobID string) (*JobDetails, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	counts, err := s.drafts.CountByStatus(ctx, job.ID)
	if err != nil {
		return nil, fmt.Errorf("count drafts: %w", err)
	}
	return &JobDetails{ImportJob: job, Drafts: counts}, nil
}

// GetJobByToken retrieves a job by its idempotency token.
func (s *PipelineService) GetJobByToken(ctx context.Context, token string) (*domain.ImportJob, error) {
	job, err := s.jobs.GetImportJobByIdempotencyToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get import job by token: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// ListDrafts lists the drafts of a job in row order.
func (s *PipelineService) ListDrafts(ctx context.Context, jobID string, query DraftQuery) ([]domain.ProductDraft, error) {
	if _, err := s.loadJob(ctx, jobID); err != nil {
		return nil, err
	}
	limit := query.Limit
	if limit <= 0 || limit > s.opts.MaxBatchSize {
		limit = s.opts.MaxBatchSize
	}
	filter := domain.DraftFilter{Statuses: query.Statuses}
	if query.AfterRowIndex > 0 {
		after := query.AfterRowIndex
		filter.AfterRowIndex = &after
	}

	drafts, err := s.drafts.FindDrafts(ctx, jobID, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	if drafts == nil {
		drafts = []domain.ProductDraft{}
	}
	return drafts, nil
}

// GetDraft retrieves a draft with its job summary.
func (s *PipelineService) GetDraft(ctx context.Context, draftID string) (*DraftDetails, error) {
	draft, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	job, err := s.loadJob(ctx, draft.JobID)
	if err != nil {
		return nil, err
	}
	return &DraftDetails{ProductDraft: draft, Job: summarize(job)}, nil
}

// PatchDraft applies a reviewer edit. Editing the suggestion forces MANUALLY_EDITED.
// Moving an AI_ERROR draft back to PENDING_REVIEW hands it to enrichment again, like
// RetryFailedEnrichment does for the whole job.
func (s *PipelineService) PatchDraft(ctx context.Context, draftID string, patch validator.DraftPatch) (*domain.ProductDraft, error) {
	if err := s.validator.ValidateDraftPatch(&patch); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validator.ConvertValidationErrors(err))
	}

	draft, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status.IsTerminal() {
		return nil, ErrDraftTerminal
	}

	var update domain.DraftUpdate
	if patch.Status != nil {
		status := domain.DraftStatus(*patch.Status)
		update.Status = &status
	}
	if patch.AISuggestion != nil {
		edited := domain.DraftManuallyEdited
		suggestion := *patch.AISuggestion
		suggestion.RowIndex = draft.RowIndex
		update.AISuggestion = &suggestion
		update.AIConfidence = suggestion.Confidence
		update.Status = &edited
	}
	update.Notes = patch.Notes

	requeue := draft.Status == domain.DraftAIError && update.Status != nil && *update.Status == domain.DraftPendingReview
	if requeue {
		update.ClearAISuggestion = true
		if update.Notes == nil {
			cleared := ""
			update.Notes = &cleared
		}
	}

	if err := s.drafts.UpdateDraft(ctx, draft.ID, update); err != nil {
		return nil, fmt.Errorf("update draft: %w", err)
	}
	update.Apply(draft)

	if requeue {
		s.decrementFailed(ctx, draft.JobID, 1)
		if err := s.reopen(ctx, draft.JobID); err != nil {
			return nil, err
		}
	}

	logger.WithJobID(draft.JobID).Info("Draft edited", "draft_id", draft.ID, "status", string(draft.Status))
	return draft, nil
}

func (s *PipelineService) loadJob(ctx context.Context, jobID string) (*domain.ImportJob, error) {
	job, err := s.jobs.GetImportJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get import job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func (s *PipelineService) loadDraft(ctx context.Context, draftID string) (*domain.ProductDraft, error) {
	draft, err := s.drafts.GetDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

func (s *PipelineService) failJob(ctx context.Context, job *domain.ImportJob, msg string) {
	job.Status = domain.JobStatusFailed
	job.ErrorMessage = &msg
	if err := s.jobs.UpdateImportJob(ctx, job); err != nil {
		logger.WithJobID(job.ID).Error("Failed to mark import job failed", "error", err)
		return
	}
	logger.WithJobID(job.ID).Warn("Import job failed", "reason", msg)
}
