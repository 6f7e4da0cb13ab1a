package repository

import (
	"context"

	"catalog-import/internal/domain"
)

// JobRepository defines methods for import job data access.
// UpdateImportJob writes lifecycle fields only; counters change through IncrementCounters.
type JobRepository interface {
	CreateImportJob(ctx context.Context, job *domain.ImportJob) error
	GetImportJob(ctx context.Context, id string) (*domain.ImportJob, error)
	GetImportJobByIdempotencyToken(ctx context.Context, token string) (*domain.ImportJob, error)
	UpdateImportJob(ctx context.Context, job *domain.ImportJob) error
	IncrementCounters(ctx context.Context, id string, delta domain.JobCounterDelta) error
}

// DraftRepository defines methods for product draft data access.
// FindDrafts and StreamByJob return drafts in ascending row index order.
type DraftRepository interface {
	CreateDrafts(ctx context.Context, drafts []domain.ProductDraft) error
	GetDraft(ctx context.Context, id string) (*domain.ProductDraft, error)
	FindDrafts(ctx context.Context, jobID string, filter domain.DraftFilter, limit int) ([]domain.ProductDraft, error)
	UpdateDraft(ctx context.Context, id string, update domain.DraftUpdate) error
	CountByStatus(ctx context.Context, jobID string) (domain.DraftCounts, error)
	CountDrafts(ctx context.Context, jobID string, filter domain.DraftFilter) (int, error)
	StreamByJob(ctx context.Context, jobID string, filter domain.DraftFilter, callback func(domain.ProductDraft) error) error
}

// MasterRepository defines read access to the curated master lists, plus seeding.
type MasterRepository interface {
	ListMasters(ctx context.Context, kind domain.MasterKind) ([]domain.MasterRecord, error)
	UpsertMasters(ctx context.Context, kind domain.MasterKind, records []domain.MasterRecord) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Jobs    JobRepository
	Drafts  DraftRepository
	Masters MasterRepository
	// Ping reports backend health for readiness checks.
	Ping  func(ctx context.Context) error
	Close func()
}
