package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"catalog-import/internal/domain"
)

// MemoryStore implements JobRepository, DraftRepository and MasterRepository in process memory.
// It backs local runs (STORE_BACKEND=memory) and service tests.
type MemoryStore struct {
	mu      sync.RWMutex
	jobs    map[string]*domain.ImportJob
	drafts  map[string]*domain.ProductDraft
	byJob   map[string][]string
	masters map[domain.MasterKind]map[string]domain.MasterRecord
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:    make(map[string]*domain.ImportJob),
		drafts:  make(map[string]*domain.ProductDraft),
		byJob:   make(map[string][]string),
		masters: make(map[domain.MasterKind]map[string]domain.MasterRecord),
	}
}

// CreateImportJob stores a copy of job, or loads the job holding the same idempotency token.
func (s *MemoryStore) CreateImportJob(ctx context.Context, job *domain.ImportJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.IdempotencyToken != "" {
		for _, existing := range s.jobs {
			if existing.IdempotencyToken == job.IdempotencyToken {
				*job = copyJob(existing)
				return nil
			}
		}
	}
	if _, ok := s.jobs[job.ID]; ok {
		return fmt.Errorf("insert import job: duplicate id %s", job.ID)
	}
	stored := copyJob(job)
	s.jobs[job.ID] = &stored
	return nil
}

// GetImportJob returns a copy of the job, or nil when absent.
func (s *MemoryStore) GetImportJob(ctx context.Context, id string) (*domain.ImportJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	out := copyJob(job)
	return &out, nil
}

// GetImportJobByIdempotencyToken returns the job created with token, or nil.
func (s *MemoryStore) GetImportJobByIdempotencyToken(ctx context.Context, token string) (*domain.ImportJob, error) {
	if token == "" {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		if job.IdempotencyToken == token {
			out := copyJob(job)
			return &out, nil
		}
	}
	return nil, nil
}

// UpdateImportJob writes lifecycle fields and keeps the stored counters.
func (s *MemoryStore) UpdateImportJob(ctx context.Context, job *domain.ImportJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.jobs[job.ID]
	if !ok {
		return fmt.Errorf("update import job %s: not found", job.ID)
	}
	job.UpdatedAt = time.Now().UTC()
	updated := copyJob(job)
	updated.ProcessedRows = stored.ProcessedRows
	updated.FailedRows = stored.FailedRows
	updated.ImageTotal = stored.ImageTotal
	updated.ImageProcessed = stored.ImageProcessed
	s.jobs[job.ID] = &updated
	return nil
}

// IncrementCounters adds delta to the stored counters.
func (s *MemoryStore) IncrementCounters(ctx context.Context, id string, delta domain.JobCounterDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("increment job counters %s: not found", id)
	}
	job.ProcessedRows += delta.ProcessedRows
	job.FailedRows += delta.FailedRows
	if job.FailedRows < 0 {
		job.FailedRows = 0
	}
	job.ImageTotal += delta.ImageTotal
	job.ImageProcessed += delta.ImageProcessed
	job.UpdatedAt = time.Now().UTC()
	return nil
}

// CreateDrafts stores copies of drafts. Row indexes must be unique per job.
func (s *MemoryStore) CreateDrafts(ctx context.Context, drafts []domain.ProductDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range drafts {
		d := drafts[i]
		if _, ok := s.drafts[d.ID]; ok {
			return fmt.Errorf("insert drafts: duplicate id %s", d.ID)
		}
		for _, id := range s.byJob[d.JobID] {
			if s.drafts[id].RowIndex == d.RowIndex {
				return fmt.Errorf("insert drafts: duplicate row %d in job %s", d.RowIndex, d.JobID)
			}
		}
		stored := copyDraft(&d)
		s.drafts[d.ID] = &stored
		s.byJob[d.JobID] = append(s.byJob[d.JobID], d.ID)
	}
	for jobID := range s.byJob {
		ids := s.byJob[jobID]
		sort.Slice(ids, func(a, b int) bool {
			return s.drafts[ids[a]].RowIndex < s.drafts[ids[b]].RowIndex
		})
	}
	return nil
}

// GetDraft returns a copy of the draft, or nil when absent.
func (s *MemoryStore) GetDraft(ctx context.Context, id string) (*domain.ProductDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, nil
	}
	out := copyDraft(d)
	return &out, nil
}

// FindDrafts returns up to limit matching drafts ordered by row index.
func (s *MemoryStore) FindDrafts(ctx context.Context, jobID string, filter domain.DraftFilter, limit int) ([]domain.ProductDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ProductDraft
	for _, id := range s.byJob[jobID] {
		d := s.drafts[id]
		if !filter.Matches(d) {
			continue
		}
		out = append(out, copyDraft(d))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// UpdateDraft applies a partial update.
func (s *MemoryStore) UpdateDraft(ctx context.Context, id string, update domain.DraftUpdate) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return fmt.Errorf("update draft %s: not found", id)
	}
	update.Apply(d)
	if update.AISuggestion != nil {
		suggestion := copySuggestion(update.AISuggestion)
		d.AISuggestion = suggestion
	}
	d.UpdatedAt = time.Now().UTC()
	return nil
}

// CountByStatus aggregates the drafts of a job.
func (s *MemoryStore) CountByStatus(ctx context.Context, jobID string) (domain.DraftCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := domain.NewDraftCounts()
	for _, id := range s.byJob[jobID] {
		d := s.drafts[id]
		counts.Add(d.Status, d.ImageStatus, 1)
	}
	return counts, nil
}

// CountDrafts counts matching drafts.
func (s *MemoryStore) CountDrafts(ctx context.Context, jobID string, filter domain.DraftFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, id := range s.byJob[jobID] {
		if filter.Matches(s.drafts[id]) {
			n++
		}
	}
	return n, nil
}

// StreamByJob calls callback for every matching draft in row order.
func (s *MemoryStore) StreamByJob(ctx context.Context, jobID string, filter domain.DraftFilter, callback func(domain.ProductDraft) error) error {
	drafts, err := s.FindDrafts(ctx, jobID, filter, 0)
	if err != nil {
		return err
	}
	for _, d := range drafts {
		if err := callback(d); err != nil {
			return fmt.Errorf("callback error: %w", err)
		}
	}
	return nil
}

// ListMasters returns one list ordered by id.
func (s *MemoryStore) ListMasters(ctx context.Context, kind domain.MasterKind) ([]domain.MasterRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.MasterRecord, 0, len(s.masters[kind]))
	for _, rec := range s.masters[kind] {
		rec.Aliases = append([]string(nil), rec.Aliases...)
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// UpsertMasters inserts or replaces records of one list.
func (s *MemoryStore) UpsertMasters(ctx context.Context, kind domain.MasterKind, records []domain.MasterRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.masters[kind] == nil {
		s.masters[kind] = make(map[string]domain.MasterRecord)
	}
	for _, rec := range records {
		rec.Aliases = append([]string(nil), rec.Aliases...)
		s.masters[kind][rec.ID] = rec
	}
	return nil
}

// Store returns the memory store wired as a Store.
func (s *MemoryStore) Store() *Store {
	return &Store{
		Jobs:    s,
		Drafts:  s,
		Masters: s,
		Ping:    func(context.Context) error { return nil },
		Close:   func() {},
	}
}

func copyJob(job *domain.ImportJob) domain.ImportJob {
	out := *job
	if job.ArchiveKey != nil {
		key := *job.ArchiveKey
		out.ArchiveKey = &key
	}
	if job.ErrorMessage != nil {
		msg := *job.ErrorMessage
		out.ErrorMessage = &msg
	}
	if job.CompletedAt != nil {
		at := *job.CompletedAt
		out.CompletedAt = &at
	}
	if job.Config != nil {
		out.Config = make(map[string]interface{}, len(job.Config))
		for k, v := range job.Config {
			out.Config[k] = v
		}
	}
	return out
}

func copyDraft(d *domain.ProductDraft) domain.ProductDraft {
	out := *d
	out.RawData.Columns = make(map[string]string, len(d.RawData.Columns))
	for k, v := range d.RawData.Columns {
		out.RawData.Columns[k] = v
	}
	out.AISuggestion = copySuggestion(d.AISuggestion)
	out.AIConfidence = copyFloat(d.AIConfidence)
	out.ImageRawFilename = copyString(d.ImageRawFilename)
	out.ImageURL = copyString(d.ImageURL)
	return out
}

// copySuggestion deep-copies through JSON so Extra and pointer fields are not shared.
func copySuggestion(s *domain.Suggestion) *domain.Suggestion {
	if s == nil {
		return nil
	}
	data, err := s.MarshalJSON()
	if err != nil {
		out := *s
		return &out
	}
	var out domain.Suggestion
	if err := out.UnmarshalJSON(data); err != nil {
		cp := *s
		return &cp
	}
	return &out
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
