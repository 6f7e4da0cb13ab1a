package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-import/internal/domain"
)

const jobColumns = `id, source_key, source_filename, archive_key, status, total_rows, processed_rows,
	failed_rows, image_status, image_total, image_processed, match_cursor, archive_version,
	idempotency_token, config, error_message, created_at, updated_at, completed_at`

// PostgresJobRepository implements JobRepository using PostgreSQL.
type PostgresJobRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresJobRepository creates a new PostgresJobRepository.
func NewPostgresJobRepository(pool *pgxpool.Pool) *PostgresJobRepository {
	return &PostgresJobRepository{pool: pool}
}

// CreateImportJob creates a new import job. When another request created a job with the
// same idempotency token first, job is overwritten with the existing one.
func (r *PostgresJobRepository) CreateImportJob(ctx context.Context, job *domain.ImportJob) error {
	config, err := json.Marshal(job.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO import_jobs (id, source_key, source_filename, archive_key, status, total_rows,
			processed_rows, failed_rows, image_status, image_total, image_processed, match_cursor,
			archive_version, idempotency_token, config, error_message, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`, job.ID, job.SourceKey, job.SourceFilename, job.ArchiveKey, job.Status, job.TotalRows,
		job.ProcessedRows, job.FailedRows, job.ImageStatus, job.ImageTotal, job.ImageProcessed, job.MatchCursor,
		job.ArchiveVersion, nullableString(job.IdempotencyToken), config, job.ErrorMessage, job.CreatedAt, job.UpdatedAt, job.CompletedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" &&
			strings.Contains(pgErr.ConstraintName, "idempotency_token") {
			existingJob, fetchErr := r.GetImportJobByIdempotencyToken(ctx, job.IdempotencyToken)
			if fetchErr != nil {
				return fmt.Errorf("fetch existing job after race: %w", fetchErr)
			}
			if existingJob != nil {
				*job = *existingJob
				return nil
			}
		}
		return fmt.Errorf("insert import job: %w", err)
	}

	return nil
}

// GetImportJob retrieves an import job by ID.
func (r *PostgresJobRepository) GetImportJob(ctx context.Context, id string) (*domain.ImportJob, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM import_jobs WHERE id = $1`, id)

	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get import job: %w", err)
	}
	return job, nil
}

// GetImportJobByIdempotencyToken retrieves an import job by idempotency token.
func (r *PostgresJobRepository) GetImportJobByIdempotencyToken(ctx context.Context, token string) (*domain.ImportJob, error) {
	if token == "" {
		return nil, nil
	}
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM import_jobs WHERE idempotency_token = $1`, token)

	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get import job by token: %w", err)
	}
	return job, nil
}

// UpdateImportJob updates the lifecycle fields of an existing import job.
func (r *PostgresJobRepository) UpdateImportJob(ctx context.Context, job *domain.ImportJob) error {
	config, err := json.Marshal(job.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	job.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE import_jobs
		SET archive_key = $2, status = $3, total_rows = $4, image_status = $5, match_cursor = $6,
			archive_version = $7, config = $8, error_message = $9, updated_at = $10, completed_at = $11
		WHERE id = $1
	`, job.ID, job.ArchiveKey, job.Status, job.TotalRows, job.ImageStatus, job.MatchCursor,
		job.ArchiveVersion, config, job.ErrorMessage, job.UpdatedAt, job.CompletedAt)
	if err != nil {
		return fmt.Errorf("update import job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update import job %s: %w", job.ID, pgx.ErrNoRows)
	}
	return nil
}

// IncrementCounters adds delta to the job's counters in one statement.
func (r *PostgresJobRepository) IncrementCounters(ctx context.Context, id string, delta domain.JobCounterDelta) error {
	if delta.IsZero() {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE import_jobs
		SET processed_rows = processed_rows + $2,
			failed_rows = GREATEST(failed_rows + $3, 0),
			image_total = image_total + $4,
			image_processed = image_processed + $5,
			updated_at = NOW()
		WHERE id = $1
	`, id, delta.ProcessedRows, delta.FailedRows, delta.ImageTotal, delta.ImageProcessed)
	if err != nil {
		return fmt.Errorf("increment job counters: %w", err)
	}
	return nil
}

func scanJob(row pgx.Row) (*domain.ImportJob, error) {
	var job domain.ImportJob
	var config []byte
	var token *string

	err := row.Scan(&job.ID, &job.SourceKey, &job.SourceFilename, &job.ArchiveKey, &job.Status,
		&job.TotalRows, &job.ProcessedRows, &job.FailedRows, &job.ImageStatus, &job.ImageTotal,
		&job.ImageProcessed, &job.MatchCursor, &job.ArchiveVersion, &token, &config, &job.ErrorMessage,
		&job.CreatedAt, &job.UpdatedAt, &job.CompletedAt)
	if err != nil {
		return nil, err
	}

	if token != nil {
		job.IdempotencyToken = *token
	}
	if config != nil {
		if err := json.Unmarshal(config, &job.Config); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	return &job, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
