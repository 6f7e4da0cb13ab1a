package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"catalog-import/internal/domain"
)

const (
	jobsCollection   = "import_jobs"
	tokensCollection = "import_job_tokens"
	draftsCollection = "product_drafts"
	mastersRoot      = "masters"
	mastersRecords   = "records"
)

// NewFirestoreClient creates a Firestore client for the given project ID.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return client, nil
}

// FirestoreStore implements the job, draft and master repositories on Firestore.
// Suggestions are stored as JSON text so unknown fields survive untouched.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

type jobDoc struct {
	SourceKey        string                 `firestore:"source_key"`
	SourceFilename   string                 `firestore:"source_filename"`
	ArchiveKey       *string                `firestore:"archive_key"`
	Status           string                 `firestore:"status"`
	TotalRows        int                    `firestore:"total_rows"`
	ProcessedRows    int                    `firestore:"processed_rows"`
	FailedRows       int                    `firestore:"failed_rows"`
	ImageStatus      string                 `firestore:"image_status"`
	ImageTotal       int                    `firestore:"image_total"`
	ImageProcessed   int                    `firestore:"image_processed"`
	MatchCursor      int                    `firestore:"match_cursor"`
	ArchiveVersion   int                    `firestore:"archive_version"`
	IdempotencyToken string                 `firestore:"idempotency_token"`
	Config           map[string]interface{} `firestore:"config"`
	ErrorMessage     *string                `firestore:"error_message"`
	CreatedAt        time.Time              `firestore:"created_at"`
	UpdatedAt        time.Time              `firestore:"updated_at"`
	CompletedAt      *time.Time             `firestore:"completed_at"`
}

type draftDoc struct {
	JobID                string            `firestore:"job_id"`
	RowIndex             int               `firestore:"row_index"`
	RawName              string            `firestore:"raw_name"`
	RawColumns           map[string]string `firestore:"raw_columns"`
	AISuggestion         string            `firestore:"ai_suggestion"`
	Enriched             bool              `firestore:"enriched"`
	AIConfidence         *float64          `firestore:"ai_confidence"`
	Status               string            `firestore:"status"`
	ImageStatus          string            `firestore:"image_status"`
	ImageRawFilename     *string           `firestore:"image_raw_filename"`
	ImageMatchConfidence float64           `firestore:"image_match_confidence"`
	ImageURL             *string           `firestore:"image_url"`
	Notes                string            `firestore:"notes"`
	CreatedAt            time.Time         `firestore:"created_at"`
	UpdatedAt            time.Time         `firestore:"updated_at"`
}

type masterDoc struct {
	Name    string   `firestore:"name"`
	Aliases []string `firestore:"aliases"`
}

// CreateImportJob creates a job. A job created earlier with the same idempotency token
// is loaded into job instead.
func (s *FirestoreStore) CreateImportJob(ctx context.Context, job *domain.ImportJob) error {
	jobRef := s.client.Collection(jobsCollection).Doc(job.ID)
	doc := toJobDoc(job)

	if job.IdempotencyToken == "" {
		if _, err := jobRef.Create(ctx, doc); err != nil {
			return fmt.Errorf("insert import job: %w", err)
		}
		return nil
	}

	tokenRef := s.client.Collection(tokensCollection).Doc(job.IdempotencyToken)
	var existingID string
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existingID = ""
		snap, err := tx.Get(tokenRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil && snap.Exists() {
			id, _ := snap.DataAt("job_id")
			existingID, _ = id.(string)
			return nil
		}
		if err := tx.Create(jobRef, doc); err != nil {
			return err
		}
		return tx.Create(tokenRef, map[string]interface{}{"job_id": job.ID})
	})
	if err != nil {
		return fmt.Errorf("insert import job: %w", err)
	}

	if existingID != "" {
		existing, err := s.GetImportJob(ctx, existingID)
		if err != nil {
			return fmt.Errorf("fetch existing job: %w", err)
		}
		if existing != nil {
			*job = *existing
		}
	}
	return nil
}

// GetImportJob retrieves a job by ID.
func (s *FirestoreStore) GetImportJob(ctx context.Context, id string) (*domain.ImportJob, error) {
	snap, err := s.client.Collection(jobsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get import job: %w", err)
	}
	return fromJobSnapshot(snap)
}

// GetImportJobByIdempotencyToken retrieves a job by idempotency token.
func (s *FirestoreStore) GetImportJobByIdempotencyToken(ctx context.Context, token string) (*domain.ImportJob, error) {
	if token == "" {
		return nil, nil
	}
	docs, err := s.client.Collection(jobsCollection).Where("idempotency_token", "==", token).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("get import job by token: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return fromJobSnapshot(docs[0])
}

// UpdateImportJob writes lifecycle fields. Counters are left to IncrementCounters.
func (s *FirestoreStore) UpdateImportJob(ctx context.Context, job *domain.ImportJob) error {
	job.UpdatedAt = time.Now().UTC()
	updates := []firestore.Update{
		{Path: "archive_key", Value: job.ArchiveKey},
		{Path: "status", Value: string(job.Status)},
		{Path: "total_rows", Value: job.TotalRows},
		{Path: "image_status", Value: string(job.ImageStatus)},
		{Path: "match_cursor", Value: job.MatchCursor},
		{Path: "archive_version", Value: job.ArchiveVersion},
		{Path: "config", Value: job.Config},
		{Path: "error_message", Value: job.ErrorMessage},
		{Path: "updated_at", Value: job.UpdatedAt},
		{Path: "completed_at", Value: job.CompletedAt},
	}
	if _, err := s.client.Collection(jobsCollection).Doc(job.ID).Update(ctx, updates); err != nil {
		return fmt.Errorf("update import job: %w", err)
	}
	return nil
}

// IncrementCounters adds delta to the job counters with server-side increments.
// A negative failed-row delta runs in a transaction so the counter never drops below zero.
func (s *FirestoreStore) IncrementCounters(ctx context.Context, id string, delta domain.JobCounterDelta) error {
	if delta.IsZero() {
		return nil
	}
	ref := s.client.Collection(jobsCollection).Doc(id)

	if delta.FailedRows >= 0 {
		updates := []firestore.Update{{Path: "updated_at", Value: time.Now().UTC()}}
		for path, n := range counterFields(delta) {
			if n != 0 {
				updates = append(updates, firestore.Update{Path: path, Value: firestore.Increment(n)})
			}
		}
		if _, err := ref.Update(ctx, updates); err != nil {
			return fmt.Errorf("increment job counters: %w", err)
		}
		return nil
	}

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var doc jobDoc
		if err := snap.DataTo(&doc); err != nil {
			return err
		}
		failed := doc.FailedRows + delta.FailedRows
		if failed < 0 {
			failed = 0
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "processed_rows", Value: doc.ProcessedRows + delta.ProcessedRows},
			{Path: "failed_rows", Value: failed},
			{Path: "image_total", Value: doc.ImageTotal + delta.ImageTotal},
			{Path: "image_processed", Value: doc.ImageProcessed + delta.ImageProcessed},
			{Path: "updated_at", Value: time.Now().UTC()},
		})
	})
	if err != nil {
		return fmt.Errorf("increment job counters: %w", err)
	}
	return nil
}

func counterFields(delta domain.JobCounterDelta) map[string]int {
	return map[string]int{
		"processed_rows":  delta.ProcessedRows,
		"failed_rows":     delta.FailedRows,
		"image_total":     delta.ImageTotal,
		"image_processed": delta.ImageProcessed,
	}
}

// CreateDrafts writes drafts through a bulk writer.
func (s *FirestoreStore) CreateDrafts(ctx context.Context, drafts []domain.ProductDraft) error {
	if len(drafts) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(drafts))
	for i := range drafts {
		doc, err := toDraftDoc(&drafts[i])
		if err != nil {
			bw.End()
			return err
		}
		job, err := bw.Create(s.client.Collection(draftsCollection).Doc(drafts[i].ID), doc)
		if err != nil {
			bw.End()
			return fmt.Errorf("queue draft %d: %w", drafts[i].RowIndex, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("insert draft %d: %w", drafts[i].RowIndex, err)
		}
	}
	return nil
}

// GetDraft retrieves a draft by ID.
func (s *FirestoreStore) GetDraft(ctx context.Context, id string) (*domain.ProductDraft, error) {
	snap, err := s.client.Collection(draftsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return fromDraftSnapshot(snap)
}

// FindDrafts returns up to limit matching drafts ordered by row index.
func (s *FirestoreStore) FindDrafts(ctx context.Context, jobID string, filter domain.DraftFilter, limit int) ([]domain.ProductDraft, error) {
	query := s.draftQuery(jobID, filter)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var drafts []domain.ProductDraft
	err := s.iterate(ctx, query, func(d domain.ProductDraft) error {
		drafts = append(drafts, d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query drafts: %w", err)
	}
	return drafts, nil
}

// UpdateDraft applies a partial update to one draft.
func (s *FirestoreStore) UpdateDraft(ctx context.Context, id string, update domain.DraftUpdate) error {
	var updates []firestore.Update
	if update.ClearAISuggestion {
		updates = append(updates,
			firestore.Update{Path: "ai_suggestion", Value: ""},
			firestore.Update{Path: "enriched", Value: false},
		)
		if update.AIConfidence == nil {
			updates = append(updates, firestore.Update{Path: "ai_confidence", Value: firestore.Delete})
		}
	}
	if update.AISuggestion != nil {
		data, err := json.Marshal(update.AISuggestion)
		if err != nil {
			return fmt.Errorf("marshal suggestion: %w", err)
		}
		updates = append(updates,
			firestore.Update{Path: "ai_suggestion", Value: string(data)},
			firestore.Update{Path: "enriched", Value: true},
		)
	}
	if update.AIConfidence != nil {
		updates = append(updates, firestore.Update{Path: "ai_confidence", Value: *update.AIConfidence})
	}
	if update.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: string(*update.Status)})
	}
	if update.ImageStatus != nil {
		updates = append(updates, firestore.Update{Path: "image_status", Value: string(*update.ImageStatus)})
	}
	if update.ClearImageFilename && update.ImageRawFilename == nil {
		updates = append(updates, firestore.Update{Path: "image_raw_filename", Value: firestore.Delete})
	}
	if update.ImageRawFilename != nil {
		updates = append(updates, firestore.Update{Path: "image_raw_filename", Value: *update.ImageRawFilename})
	}
	if update.ImageMatchConfidence != nil {
		updates = append(updates, firestore.Update{Path: "image_match_confidence", Value: *update.ImageMatchConfidence})
	}
	if update.ImageURL != nil {
		updates = append(updates, firestore.Update{Path: "image_url", Value: *update.ImageURL})
	}
	if update.Notes != nil {
		updates = append(updates, firestore.Update{Path: "notes", Value: *update.Notes})
	}
	if len(updates) == 0 {
		return nil
	}
	updates = append(updates, firestore.Update{Path: "updated_at", Value: time.Now().UTC()})

	if _, err := s.client.Collection(draftsCollection).Doc(id).Update(ctx, updates); err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	return nil
}

// CountByStatus aggregates the drafts of a job by status and image status.
func (s *FirestoreStore) CountByStatus(ctx context.Context, jobID string) (domain.DraftCounts, error) {
	counts := domain.NewDraftCounts()
	query := s.client.Collection(draftsCollection).Where("job_id", "==", jobID).Select("status", "image_status")

	iter := query.Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return counts, fmt.Errorf("count drafts by status: %w", err)
		}
		st, _ := snap.DataAt("status")
		imageSt, _ := snap.DataAt("image_status")
		statusStr, _ := st.(string)
		imageStr, _ := imageSt.(string)
		counts.Add(domain.DraftStatus(statusStr), domain.ImageStatus(imageStr), 1)
	}
	return counts, nil
}

// CountDrafts counts matching drafts with an aggregation query.
func (s *FirestoreStore) CountDrafts(ctx context.Context, jobID string, filter domain.DraftFilter) (int, error) {
	q := s.draftQuery(jobID, filter)
	result, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count drafts: %w", err)
	}
	value, ok := result["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count drafts: unexpected aggregation result %T", result["all"])
	}
	return int(value.GetIntegerValue()), nil
}

// StreamByJob calls callback for every matching draft in row order.
func (s *FirestoreStore) StreamByJob(ctx context.Context, jobID string, filter domain.DraftFilter, callback func(domain.ProductDraft) error) error {
	return s.iterate(ctx, s.draftQuery(jobID, filter), func(d domain.ProductDraft) error {
		if err := callback(d); err != nil {
			return fmt.Errorf("callback error: %w", err)
		}
		return nil
	})
}

func (s *FirestoreStore) draftQuery(jobID string, filter domain.DraftFilter) firestore.Query {
	query := s.client.Collection(draftsCollection).Where("job_id", "==", jobID)
	if len(filter.Statuses) > 0 {
		values := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			values[i] = string(st)
		}
		query = query.Where("status", "in", values)
	}
	if len(filter.ImageStatuses) > 0 {
		values := make([]string, len(filter.ImageStatuses))
		for i, st := range filter.ImageStatuses {
			values[i] = string(st)
		}
		query = query.Where("image_status", "in", values)
	}
	if filter.Enriched != nil {
		query = query.Where("enriched", "==", *filter.Enriched)
	}
	if filter.AfterRowIndex != nil {
		query = query.Where("row_index", ">", *filter.AfterRowIndex)
	}
	return query.OrderBy("row_index", firestore.Asc)
}

func (s *FirestoreStore) iterate(ctx context.Context, query firestore.Query, fn func(domain.ProductDraft) error) error {
	iter := query.Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return err
		}
		d, err := fromDraftSnapshot(snap)
		if err != nil {
			return err
		}
		if err := fn(*d); err != nil {
			return err
		}
	}
}

// ListMasters returns every record of one list ordered by id.
func (s *FirestoreStore) ListMasters(ctx context.Context, kind domain.MasterKind) ([]domain.MasterRecord, error) {
	docs, err := s.mastersCollection(kind).OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("query master records: %w", err)
	}

	records := make([]domain.MasterRecord, 0, len(docs))
	for _, snap := range docs {
		var doc masterDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode master record %s: %w", snap.Ref.ID, err)
		}
		records = append(records, domain.MasterRecord{ID: snap.Ref.ID, Name: doc.Name, Aliases: doc.Aliases})
	}
	return records, nil
}

// UpsertMasters inserts or replaces records of one list.
func (s *FirestoreStore) UpsertMasters(ctx context.Context, kind domain.MasterKind, records []domain.MasterRecord) error {
	if len(records) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(records))
	for _, rec := range records {
		job, err := bw.Set(s.mastersCollection(kind).Doc(rec.ID), masterDoc{Name: rec.Name, Aliases: rec.Aliases})
		if err != nil {
			bw.End()
			return fmt.Errorf("queue master record %s: %w", rec.ID, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("upsert master record %s: %w", records[i].ID, err)
		}
	}
	return nil
}

func (s *FirestoreStore) mastersCollection(kind domain.MasterKind) *firestore.CollectionRef {
	return s.client.Collection(mastersRoot).Doc(string(kind)).Collection(mastersRecords)
}

// Ping reads at most one job document.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	if _, err := s.client.Collection(jobsCollection).Limit(1).Documents(ctx).GetAll(); err != nil {
		return fmt.Errorf("firestore ping: %w", err)
	}
	return nil
}

// Store returns the Firestore store wired as a Store.
func (s *FirestoreStore) Store() *Store {
	return &Store{
		Jobs:    s,
		Drafts:  s,
		Masters: s,
		Ping:    s.Ping,
		Close:   func() { _ = s.client.Close() },
	}
}

func toJobDoc(job *domain.ImportJob) jobDoc {
	return jobDoc{
		SourceKey:        job.SourceKey,
		SourceFilename:   job.SourceFilename,
		ArchiveKey:       job.ArchiveKey,
		Status:           string(job.Status),
		TotalRows:        job.TotalRows,
		ProcessedRows:    job.ProcessedRows,
		FailedRows:       job.FailedRows,
		ImageStatus:      string(job.ImageStatus),
		ImageTotal:       job.ImageTotal,
		ImageProcessed:   job.ImageProcessed,
		MatchCursor:      job.MatchCursor,
		ArchiveVersion:   job.ArchiveVersion,
		IdempotencyToken: job.IdempotencyToken,
		Config:           job.Config,
		ErrorMessage:     job.ErrorMessage,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
		CompletedAt:      job.CompletedAt,
	}
}

func fromJobSnapshot(snap *firestore.DocumentSnapshot) (*domain.ImportJob, error) {
	var doc jobDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode import job %s: %w", snap.Ref.ID, err)
	}
	return &domain.ImportJob{
		ID:               snap.Ref.ID,
		SourceKey:        doc.SourceKey,
		SourceFilename:   doc.SourceFilename,
		ArchiveKey:       doc.ArchiveKey,
		Status:           domain.JobStatus(doc.Status),
		TotalRows:        doc.TotalRows,
		ProcessedRows:    doc.ProcessedRows,
		FailedRows:       doc.FailedRows,
		ImageStatus:      domain.JobImageStatus(doc.ImageStatus),
		ImageTotal:       doc.ImageTotal,
		ImageProcessed:   doc.ImageProcessed,
		MatchCursor:      doc.MatchCursor,
		ArchiveVersion:   doc.ArchiveVersion,
		IdempotencyToken: doc.IdempotencyToken,
		Config:           doc.Config,
		ErrorMessage:     doc.ErrorMessage,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
		CompletedAt:      doc.CompletedAt,
	}, nil
}

func toDraftDoc(d *domain.ProductDraft) (draftDoc, error) {
	doc := draftDoc{
		JobID:                d.JobID,
		RowIndex:             d.RowIndex,
		RawName:              d.RawData.Name,
		RawColumns:           d.RawData.Columns,
		AIConfidence:         d.AIConfidence,
		Status:               string(d.Status),
		ImageStatus:          string(d.ImageStatus),
		ImageRawFilename:     d.ImageRawFilename,
		ImageMatchConfidence: d.ImageMatchConfidence,
		ImageURL:             d.ImageURL,
		Notes:                d.Notes,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
	if d.AISuggestion != nil {
		data, err := json.Marshal(d.AISuggestion)
		if err != nil {
			return doc, fmt.Errorf("marshal suggestion: %w", err)
		}
		doc.AISuggestion = string(data)
		doc.Enriched = true
	}
	return doc, nil
}

func fromDraftSnapshot(snap *firestore.DocumentSnapshot) (*domain.ProductDraft, error) {
	var doc draftDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", snap.Ref.ID, err)
	}
	d := &domain.ProductDraft{
		ID:                   snap.Ref.ID,
		JobID:                doc.JobID,
		RowIndex:             doc.RowIndex,
		RawData:              domain.RawRow{Name: doc.RawName, Columns: doc.RawColumns},
		AIConfidence:         doc.AIConfidence,
		Status:               domain.DraftStatus(doc.Status),
		ImageStatus:          domain.ImageStatus(doc.ImageStatus),
		ImageRawFilename:     doc.ImageRawFilename,
		ImageMatchConfidence: doc.ImageMatchConfidence,
		ImageURL:             doc.ImageURL,
		Notes:                doc.Notes,
		CreatedAt:            doc.CreatedAt,
		UpdatedAt:            doc.UpdatedAt,
	}
	if doc.Enriched && doc.AISuggestion != "" {
		d.AISuggestion = &domain.Suggestion{}
		if err := json.Unmarshal([]byte(doc.AISuggestion), d.AISuggestion); err != nil {
			return nil, fmt.Errorf("unmarshal suggestion: %w", err)
		}
	}
	return d, nil
}
