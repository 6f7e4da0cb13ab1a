package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-import/internal/archive"
	"catalog-import/internal/domain"
	"catalog-import/internal/enrichment"
	"catalog-import/internal/imageproc"
	"catalog-import/internal/logger"
	"catalog-import/internal/matcher"
	"catalog-import/internal/metrics"
	"catalog-import/internal/storage"
)

// Batch results recorded in metrics.
const (
	batchResultSuccess = "success"
	batchResultPartial = "partial"
	batchResultError   = "error"
)

func enrichFilter() domain.DraftFilter {
	enriched := false
	return domain.DraftFilter{
		Statuses: []domain.DraftStatus{domain.DraftPendingReview},
		Enriched: &enriched,
	}
}

func matchFilter(cursor int) domain.DraftFilter {
	return domain.DraftFilter{
		Statuses:      domain.ActiveDraftStatuses,
		ImageStatuses: []domain.ImageStatus{domain.ImageUnmatched},
		AfterRowIndex: &cursor,
	}
}

func processFilter() domain.DraftFilter {
	return domain.DraftFilter{
		Statuses:      domain.ActiveDraftStatuses,
		ImageStatuses: []domain.ImageStatus{domain.ImageMatched},
	}
}

// Advance runs one batch of the named stage.
func (s *PipelineService) Advance(ctx context.Context, jobID string, stage domain.Stage, batchSize int) (interface{}, error) {
	switch stage {
	case domain.StageEnrichment:
		return s.RunEnrichmentBatch(ctx, jobID, batchSize)
	case domain.StageImageMatch:
		return s.RunImageMatchBatch(ctx, jobID, batchSize)
	case domain.StageImageProcess:
		return s.RunImageProcessBatch(ctx, jobID, batchSize)
	}
	return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, stage)
}

// RunEnrichmentBatch enriches the next PENDING_REVIEW drafts without a suggestion in one
// model call. Rows that still fail validation after the corrective retry become AI_ERROR.
// On a provider error the successes already returned are kept and the error wraps
// enrichment.ErrProviderUnavailable.
func (s *PipelineService) RunEnrichmentBatch(ctx context.Context, jobID string, batchSize int) (domain.EnrichmentProgress, error) {
	start := time.Now()
	var progress domain.EnrichmentProgress
	stage := string(domain.StageEnrichment)

	ctx, cancel := s.withBudget(ctx)
	defer cancel()

	job, size, err := s.beginBatch(ctx, jobID, batchSize, s.opts.EnrichBatchSize, false)
	if err != nil {
		if errors.Is(err, ErrJobNotActive) {
			progress.Remaining = s.remaining(ctx, jobID, enrichFilter())
		}
		return progress, err
	}
	log := logger.WithStage(job.ID, stage)

	drafts, err := s.drafts.FindDrafts(ctx, job.ID, enrichFilter(), size)
	if err != nil {
		return progress, fmt.Errorf("find drafts: %w", err)
	}

	var batchErr error
	if len(drafts) > 0 && !s.outOfBudget(ctx) {
		batchErr = s.enrichDrafts(ctx, job, drafts, &progress)
	}

	progress.Remaining = s.remaining(ctx, job.ID, enrichFilter())
	if err := s.finalize(ctx, job, false); err != nil && batchErr == nil {
		batchErr = err
	}

	result := batchResultSuccess
	if batchErr != nil {
		result = batchResultPartial
		log.Warn("Enrichment batch stopped early", "error", batchErr)
	}
	metrics.ObserveBatch(stage, result, time.Since(start).Seconds(), progress.Processed, progress.Failed)
	log.Info("Enrichment batch finished",
		"processed", progress.Processed, "matched", progress.Matched, "unmatched", progress.Unmatched,
		"failed", progress.Failed, "remaining", progress.Remaining)
	return progress, batchErr
}

func (s *PipelineService) enrichDrafts(ctx context.Context, job *domain.ImportJob, drafts []domain.ProductDraft, progress *domain.EnrichmentProgress) error {
	masters, err := s.masters.Load(ctx)
	if err != nil {
		return fmt.Errorf("load master lists: %w", err)
	}

	rows := make([]enrichment.Row, len(drafts))
	byRow := make(map[int]*domain.ProductDraft, len(drafts))
	for i := range drafts {
		rows[i] = enrichment.Row{RowIndex: drafts[i].RowIndex, Data: drafts[i].RawData}
		byRow[drafts[i].RowIndex] = &drafts[i]
	}

	results, enrichErr := s.enricher.Enrich(ctx, rows, masters)
	resolver := enrichment.NewResolver(s.matcher, masters)

	var writeErr error
	for _, r := range results {
		d, ok := byRow[r.RowIndex]
		if !ok {
			continue
		}
		var update domain.DraftUpdate
		resolved := false
		if r.Err != nil {
			status := domain.DraftAIError
			note := fmt.Sprintf("AI enrichment failed: %v", r.Err)
			update = domain.DraftUpdate{Status: &status, Notes: &note}
		} else {
			r.Suggestion.RowIndex = d.RowIndex
			resolved = resolver.Resolve(r.Suggestion)
			update = domain.DraftUpdate{AISuggestion: r.Suggestion, AIConfidence: r.Suggestion.Confidence}
		}

		if err := s.drafts.UpdateDraft(ctx, d.ID, update); err != nil {
			writeErr = fmt.Errorf("update draft %s: %w", d.ID, err)
			break
		}
		switch {
		case r.Err != nil:
			progress.Failed++
		case resolved:
			progress.Processed++
			progress.Matched++
		default:
			progress.Processed++
			progress.Unmatched++
		}
	}

	delta := domain.JobCounterDelta{ProcessedRows: progress.Processed, FailedRows: progress.Failed}
	if !delta.IsZero() {
		if err := s.jobs.IncrementCounters(ctx, job.ID, delta); err != nil && writeErr == nil {
			writeErr = fmt.Errorf("increment job counters: %w", err)
		}
	}

	if writeErr != nil {
		return writeErr
	}
	if enrichErr != nil {
		return fmt.Errorf("enrich rows: %w", enrichErr)
	}
	return nil
}

// RunImageMatchBatch matches the next UNMATCHED drafts after the job's cursor against the
// archive index. The index is rebuilt on every call. A miss leaves the draft UNMATCHED and
// the cursor moves past it, so a second call without a new archive does nothing.
func (s *PipelineService) RunImageMatchBatch(ctx context.Context, jobID string, batchSize int) (domain.ImageMatchProgress, error) {
	start := time.Now()
	var progress domain.ImageMatchProgress
	stage := string(domain.StageImageMatch)

	ctx, cancel := s.withBudget(ctx)
	defer cancel()

	job, size, err := s.beginBatch(ctx, jobID, batchSize, s.opts.MatchBatchSize, true)
	if err != nil {
		if errors.Is(err, ErrJobNotActive) && job != nil {
			progress.Remaining = s.remaining(ctx, jobID, matchFilter(job.MatchCursor))
		}
		return progress, err
	}
	log := logger.WithStage(job.ID, stage)

	arc, err := s.openArchive(ctx, job)
	if err != nil {
		metrics.ObserveBatch(stage, batchResultError, time.Since(start).Seconds(), 0, 0)
		return progress, err
	}

	dirty := false
	if job.ImageStatus != domain.JobImageProcessing {
		job.ImageStatus = domain.JobImageProcessing
		dirty = true
	}

	drafts, err := s.drafts.FindDrafts(ctx, job.ID, matchFilter(job.MatchCursor), size)
	if err != nil {
		return progress, fmt.Errorf("find drafts: %w", err)
	}

	candidates := matcher.IndexCandidates(arc.Index())
	var batchErr error
	for i := range drafts {
		if s.outOfBudget(ctx) {
			break
		}
		d := &drafts[i]
		if r, ok := s.matcher.MatchAny(d.MatchNames(), candidates); ok {
			matched := domain.ImageMatched
			filename := r.ID
			confidence := r.Confidence
			update := domain.DraftUpdate{ImageStatus: &matched, ImageRawFilename: &filename, ImageMatchConfidence: &confidence}
			if err := s.drafts.UpdateDraft(ctx, d.ID, update); err != nil {
				batchErr = fmt.Errorf("update draft %s: %w", d.ID, err)
				break
			}
			progress.Matched++
		} else {
			progress.Unmatched++
		}
		job.MatchCursor = d.RowIndex
		dirty = true
	}

	if progress.Matched > 0 {
		if err := s.jobs.IncrementCounters(ctx, job.ID, domain.JobCounterDelta{ImageTotal: progress.Matched}); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("increment job counters: %w", err)
		}
	}

	progress.Remaining = s.remaining(ctx, job.ID, matchFilter(job.MatchCursor))
	if err := s.finalize(ctx, job, dirty); err != nil && batchErr == nil {
		batchErr = err
	}

	result := batchResultSuccess
	if batchErr != nil {
		result = batchResultPartial
		log.Warn("Image match batch stopped early", "error", batchErr)
	}
	metrics.ObserveBatch(stage, result, time.Since(start).Seconds(), progress.Matched, 0)
	log.Info("Image match batch finished",
		"archive_images", arc.Len(), "matched", progress.Matched, "unmatched", progress.Unmatched,
		"remaining", progress.Remaining)
	return progress, batchErr
}

// RunImageProcessBatch transforms the next MATCHED images and uploads them. A file missing
// from the archive or an undecodable image marks the draft MISSING and is reported in
// Errors; a failed upload stops the batch with ErrStorageUnavailable and leaves the draft MATCHED.
func (s *PipelineService) RunImageProcessBatch(ctx context.Context, jobID string, batchSize int) (domain.ImageProcessProgress, error) {
	start := time.Now()
	progress := domain.ImageProcessProgress{Errors: []string{}}
	stage := string(domain.StageImageProcess)

	ctx, cancel := s.withBudget(ctx)
	defer cancel()

	job, size, err := s.beginBatch(ctx, jobID, batchSize, s.opts.ProcessBatchSize, true)
	if err != nil {
		if errors.Is(err, ErrJobNotActive) {
			progress.Remaining = s.remaining(ctx, jobID, processFilter())
		}
		return progress, err
	}
	log := logger.WithStage(job.ID, stage)

	arc, err := s.openArchive(ctx, job)
	if err != nil {
		metrics.ObserveBatch(stage, batchResultError, time.Since(start).Seconds(), 0, 0)
		return progress, err
	}

	drafts, err := s.drafts.FindDrafts(ctx, job.ID, processFilter(), size)
	if err != nil {
		return progress, fmt.Errorf("find drafts: %w", err)
	}

	var watermark []byte
	if len(drafts) > 0 {
		watermark = s.loadWatermark(ctx)
	}

	var batchErr error
	for i := range drafts {
		if s.outOfBudget(ctx) {
			break
		}
		d := &drafts[i]
		reason, err := s.processImage(ctx, job, d, arc, watermark)
		if err != nil {
			batchErr = err
			break
		}
		if reason == "" {
			progress.Processed++
			continue
		}

		if err := s.markMissing(ctx, d, reason); err != nil {
			batchErr = err
			break
		}
		progress.Failed++
		progress.Errors = append(progress.Errors, reason)
	}

	if left := progress.Processed + progress.Failed; left > 0 {
		if err := s.jobs.IncrementCounters(ctx, job.ID, domain.JobCounterDelta{ImageProcessed: left}); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("increment job counters: %w", err)
		}
	}

	progress.Remaining = s.remaining(ctx, job.ID, processFilter())
	if err := s.finalize(ctx, job, false); err != nil && batchErr == nil {
		batchErr = err
	}

	result := batchResultSuccess
	if batchErr != nil {
		result = batchResultPartial
		log.Warn("Image process batch stopped early", "error", batchErr)
	}
	metrics.ObserveBatch(stage, result, time.Since(start).Seconds(), progress.Processed, progress.Failed)
	log.Info("Image process batch finished",
		"processed", progress.Processed, "failed", progress.Failed, "remaining", progress.Remaining)
	return progress, batchErr
}

// processImage handles one draft. It returns a non-empty reason when the draft must be
// marked MISSING and an error when the batch has to stop.
func (s *PipelineService) processImage(ctx context.Context, job *domain.ImportJob, d *domain.ProductDraft, arc *archive.Archive, watermark []byte) (string, error) {
	if d.ImageRawFilename == nil || *d.ImageRawFilename == "" {
		return fmt.Sprintf("row %d: no image file recorded", d.RowIndex), nil
	}
	filename := *d.ImageRawFilename

	data, err := arc.ReadFile(filename)
	if errors.Is(err, archive.ErrEntryNotFound) {
		return fmt.Sprintf("row %d: %s not found in archive", d.RowIndex, filename), nil
	}
	if err != nil {
		return fmt.Sprintf("row %d: %s could not be read: %v", d.RowIndex, filename, err), nil
	}

	out, err := s.transformer.Transform(data, s.opts.ImageMaxWidth, s.opts.ImageQuality, watermark)
	if err != nil {
		var decodeErr *imageproc.ImageDecodeError
		if errors.As(err, &decodeErr) {
			return fmt.Sprintf("row %d: %s is not a readable image", d.RowIndex, filename), nil
		}
		return fmt.Sprintf("row %d: %s could not be transformed: %v", d.RowIndex, filename, err), nil
	}

	key := storage.ImageKey(job.ID, d.ID, imageproc.OutputExtension)
	if err := s.blobs.Put(ctx, key, out, imageproc.OutputContentType); err != nil {
		return "", fmt.Errorf("%w: upload image for draft %s: %w", ErrStorageUnavailable, d.ID, err)
	}
	metrics.RecordImageWritten(len(out))

	processed := domain.ImageProcessed
	url := s.blobs.URL(key)
	if err := s.drafts.UpdateDraft(ctx, d.ID, domain.DraftUpdate{ImageStatus: &processed, ImageURL: &url}); err != nil {
		return "", fmt.Errorf("update draft %s: %w", d.ID, err)
	}
	return "", nil
}

func (s *PipelineService) markMissing(ctx context.Context, d *domain.ProductDraft, reason string) error {
	missing := domain.ImageMissing
	update := domain.DraftUpdate{ImageStatus: &missing, ClearImageFilename: true, Notes: &reason}
	if err := s.drafts.UpdateDraft(ctx, d.ID, update); err != nil {
		return fmt.Errorf("update draft %s: %w", d.ID, err)
	}
	return nil
}

// beginBatch loads the job, rejects inactive ones and resolves the batch size.
// A PENDING job moves to PROCESSING.
func (s *PipelineService) beginBatch(ctx context.Context, jobID string, requested, stageDefault int, needsArchive bool) (*domain.ImportJob, int, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, 0, err
	}
	if job.Status.IsTerminal() {
		return job, 0, ErrJobNotActive
	}
	if needsArchive && !job.HasArchive() {
		return job, 0, ErrNoArchive
	}

	if err := s.validator.ValidateBatchSize(requested); err != nil {
		return job, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	size := requested
	if size == 0 {
		size = stageDefault
	}
	if size > s.opts.MaxBatchSize {
		size = s.opts.MaxBatchSize
	}

	if job.Status == domain.JobStatusPending {
		job.Status = domain.JobStatusProcessing
		if err := s.jobs.UpdateImportJob(ctx, job); err != nil {
			return job, 0, fmt.Errorf("update import job: %w", err)
		}
	}
	return job, size, nil
}

// openArchive fetches and indexes the job archive. An archive that is gone or not a zip
// fails the job.
func (s *PipelineService) openArchive(ctx context.Context, job *domain.ImportJob) (*archive.Archive, error) {
	if !job.HasArchive() {
		return nil, ErrNoArchive
	}

	data, err := s.blobs.Get(ctx, *job.ArchiveKey)
	if errors.Is(err, storage.ErrNotExist) {
		s.failJob(ctx, job, fmt.Sprintf("archive %s does not exist", *job.ArchiveKey))
		return nil, fmt.Errorf("%w: %w", ErrArchiveUnreadable, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read archive: %w", ErrStorageUnavailable, err)
	}

	arc, err := archive.Open(data)
	if err != nil {
		s.failJob(ctx, job, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrArchiveUnreadable, err)
	}
	return arc, nil
}

// loadWatermark reads the watermark once. A failed read is retried on the next batch.
func (s *PipelineService) loadWatermark(ctx context.Context) []byte {
	if s.opts.WatermarkKey == "" {
		return nil
	}
	s.watermarkMu.Lock()
	defer s.watermarkMu.Unlock()

	if s.watermarkLoaded {
		return s.watermark
	}
	data, err := s.blobs.Get(ctx, s.opts.WatermarkKey)
	if err != nil {
		logger.Warn("Watermark unavailable, images are processed without it", "key", s.opts.WatermarkKey, "error", err)
		return nil
	}
	s.watermark = data
	s.watermarkLoaded = true
	return data
}

// finalize reloads the job, merges the match progress of this batch and flips the image
// sub-state and the job status once no work is left. Changes made while the batch ran
// win: a cancelled or failed job keeps its status, and match progress made against an
// archive that has since been replaced is dropped. On return job holds the stored state.
func (s *PipelineService) finalize(ctx context.Context, job *domain.ImportJob, dirty bool) error {
	current, err := s.loadJob(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("reload import job: %w", err)
	}
	if dirty && current.ArchiveVersion == job.ArchiveVersion {
		if job.MatchCursor > current.MatchCursor {
			current.MatchCursor = job.MatchCursor
		}
		if current.ImageStatus == domain.JobImageNotStarted {
			current.ImageStatus = job.ImageStatus
		}
	} else {
		dirty = false
	}
	defer func() { *job = *current }()

	if current.Status.IsTerminal() {
		if !dirty {
			return nil
		}
		if err := s.jobs.UpdateImportJob(ctx, current); err != nil {
			return fmt.Errorf("update import job: %w", err)
		}
		return nil
	}

	if current.HasArchive() && current.ImageStatus == domain.JobImageProcessing {
		matchLeft, err := s.drafts.CountDrafts(ctx, current.ID, matchFilter(current.MatchCursor))
		if err != nil {
			return fmt.Errorf("count unmatched drafts: %w", err)
		}
		processLeft, err := s.drafts.CountDrafts(ctx, current.ID, processFilter())
		if err != nil {
			return fmt.Errorf("count matched drafts: %w", err)
		}
		if matchLeft == 0 && processLeft == 0 {
			current.ImageStatus = domain.JobImageCompleted
			dirty = true
		}
	}

	enrichLeft, err := s.drafts.CountDrafts(ctx, current.ID, enrichFilter())
	if err != nil {
		return fmt.Errorf("count pending drafts: %w", err)
	}
	imagesDone := !current.HasArchive() || current.ImageStatus == domain.JobImageCompleted
	if enrichLeft == 0 && imagesDone && current.Status != domain.JobStatusCompleted {
		now := time.Now().UTC()
		current.Status = domain.JobStatusCompleted
		current.CompletedAt = &now
		dirty = true
		logger.WithJobID(current.ID).Info("Import job completed")
	}

	if !dirty {
		return nil
	}
	if err := s.jobs.UpdateImportJob(ctx, current); err != nil {
		return fmt.Errorf("update import job: %w", err)
	}
	return nil
}

func (s *PipelineService) remaining(ctx context.Context, jobID string, filter domain.DraftFilter) int {
	n, err := s.drafts.CountDrafts(ctx, jobID, filter)
	if err != nil {
		logger.WithJobID(jobID).Error("Failed to count remaining drafts", "error", err)
		return 0
	}
	return n
}

func (s *PipelineService) withBudget(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.InvocationBudget <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.InvocationBudget)
}

// outOfBudget reports whether less than the headroom is left before the deadline.
func (s *PipelineService) outOfBudget(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return false
	}
	return time.Until(deadline) < s.opts.BatchHeadroom
}
