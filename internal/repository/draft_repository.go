package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-import/internal/domain"
)

// draftInsertChunk keeps one INSERT well below the 65535 parameter limit.
const draftInsertChunk = 1000

const draftColumns = `id, job_id, row_index, raw_data, ai_suggestion, ai_confidence, status, image_status,
	image_raw_filename, image_match_confidence, image_url, notes, created_at, updated_at`

// PostgresDraftRepository implements DraftRepository using PostgreSQL.
type PostgresDraftRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDraftRepository creates a new PostgresDraftRepository.
func NewPostgresDraftRepository(pool *pgxpool.Pool) *PostgresDraftRepository {
	return &PostgresDraftRepository{pool: pool}
}

// CreateDrafts inserts drafts in chunks inside one transaction.
func (r *PostgresDraftRepository) CreateDrafts(ctx context.Context, drafts []domain.ProductDraft) error {
	if len(drafts) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for start := 0; start < len(drafts); start += draftInsertChunk {
		end := start + draftInsertChunk
		if end > len(drafts) {
			end = len(drafts)
		}
		query, args, err := buildDraftInsertQuery(drafts[start:end])
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert drafts: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit drafts: %w", err)
	}
	return nil
}

func buildDraftInsertQuery(drafts []domain.ProductDraft) (string, []interface{}, error) {
	const cols = 8
	values := make([]string, 0, len(drafts))
	args := make([]interface{}, 0, len(drafts)*cols)
	argNum := 1

	for _, d := range drafts {
		raw, err := json.Marshal(d.RawData)
		if err != nil {
			return "", nil, fmt.Errorf("marshal raw data of row %d: %w", d.RowIndex, err)
		}
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			argNum, argNum+1, argNum+2, argNum+3, argNum+4, argNum+5, argNum+6, argNum+7))
		args = append(args, d.ID, d.JobID, d.RowIndex, raw, string(d.Status), string(d.ImageStatus), d.CreatedAt, d.UpdatedAt)
		argNum += cols
	}

	query := fmt.Sprintf(`
		INSERT INTO product_drafts (id, job_id, row_index, raw_data, status, image_status, created_at, updated_at)
		VALUES %s
	`, strings.Join(values, ", "))
	return query, args, nil
}

// GetDraft retrieves a draft by ID.
func (r *PostgresDraftRepository) GetDraft(ctx context.Context, id string) (*domain.ProductDraft, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+draftColumns+` FROM product_drafts WHERE id = $1`, id)

	d, err := scanDraft(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return d, nil
}

// FindDrafts returns up to limit drafts of a job matching filter, ordered by row index.
func (r *PostgresDraftRepository) FindDrafts(ctx context.Context, jobID string, filter domain.DraftFilter, limit int) ([]domain.ProductDraft, error) {
	where, args := buildDraftWhere(jobID, filter)
	query := `SELECT ` + draftColumns + ` FROM product_drafts WHERE ` + where + ` ORDER BY row_index`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query drafts: %w", err)
	}
	defer rows.Close()

	var drafts []domain.ProductDraft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		drafts = append(drafts, *d)
	}
	return drafts, rows.Err()
}

// UpdateDraft applies a partial update to one draft.
func (r *PostgresDraftRepository) UpdateDraft(ctx context.Context, id string, update domain.DraftUpdate) error {
	var sets []string
	args := []interface{}{id}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.ClearAISuggestion {
		sets = append(sets, "ai_suggestion = NULL", "ai_confidence = NULL")
	}
	if update.AISuggestion != nil {
		suggestion, err := json.Marshal(update.AISuggestion)
		if err != nil {
			return fmt.Errorf("marshal suggestion: %w", err)
		}
		set("ai_suggestion", suggestion)
	}
	if update.AIConfidence != nil {
		set("ai_confidence", *update.AIConfidence)
	}
	if update.Status != nil {
		set("status", string(*update.Status))
	}
	if update.ImageStatus != nil {
		set("image_status", string(*update.ImageStatus))
	}
	if update.ClearImageFilename {
		sets = append(sets, "image_raw_filename = NULL")
	}
	if update.ImageRawFilename != nil {
		set("image_raw_filename", *update.ImageRawFilename)
	}
	if update.ImageMatchConfidence != nil {
		set("image_match_confidence", *update.ImageMatchConfidence)
	}
	if update.ImageURL != nil {
		set("image_url", *update.ImageURL)
	}
	if update.Notes != nil {
		set("notes", *update.Notes)
	}
	if len(sets) == 0 {
		return nil
	}
	set("updated_at", time.Now().UTC())

	tag, err := r.pool.Exec(ctx, `UPDATE product_drafts SET `+strings.Join(sets, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update draft %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// CountByStatus aggregates the drafts of a job by status and image status.
func (r *PostgresDraftRepository) CountByStatus(ctx context.Context, jobID string) (domain.DraftCounts, error) {
	counts := domain.NewDraftCounts()

	rows, err := r.pool.Query(ctx, `
		SELECT status, image_status, COUNT(*)
		FROM product_drafts
		WHERE job_id = $1
		GROUP BY status, image_status
	`, jobID)
	if err != nil {
		return counts, fmt.Errorf("count drafts by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.DraftStatus
		var imageStatus domain.ImageStatus
		var n int
		if err := rows.Scan(&status, &imageStatus, &n); err != nil {
			return counts, fmt.Errorf("scan draft count: %w", err)
		}
		counts.Add(status, imageStatus, n)
	}
	return counts, rows.Err()
}

// CountDrafts counts the drafts of a job matching filter.
func (r *PostgresDraftRepository) CountDrafts(ctx context.Context, jobID string, filter domain.DraftFilter) (int, error) {
	where, args := buildDraftWhere(jobID, filter)

	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM product_drafts WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count drafts: %w", err)
	}
	return n, nil
}

// StreamByJob streams the drafts of a job for export with O(1) memory.
func (r *PostgresDraftRepository) StreamByJob(ctx context.Context, jobID string, filter domain.DraftFilter, callback func(domain.ProductDraft) error) error {
	where, args := buildDraftWhere(jobID, filter)
	rows, err := r.pool.Query(ctx, `SELECT `+draftColumns+` FROM product_drafts WHERE `+where+` ORDER BY row_index`, args...)
	if err != nil {
		return fmt.Errorf("query drafts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return fmt.Errorf("scan draft: %w", err)
		}
		if err := callback(*d); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("callback error: %w", err)
		}
	}
	return rows.Err()
}

func buildDraftWhere(jobID string, filter domain.DraftFilter) (string, []interface{}) {
	clauses := []string{"job_id = $1"}
	args := []interface{}{jobID}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		clauses = append(clauses, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if len(filter.ImageStatuses) > 0 {
		statuses := make([]string, len(filter.ImageStatuses))
		for i, s := range filter.ImageStatuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		clauses = append(clauses, fmt.Sprintf("image_status = ANY($%d)", len(args)))
	}
	if filter.Enriched != nil {
		if *filter.Enriched {
			clauses = append(clauses, "ai_suggestion IS NOT NULL")
		} else {
			clauses = append(clauses, "ai_suggestion IS NULL")
		}
	}
	if filter.AfterRowIndex != nil {
		args = append(args, *filter.AfterRowIndex)
		clauses = append(clauses, fmt.Sprintf("row_index > $%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func scanDraft(row pgx.Row) (*domain.ProductDraft, error) {
	var d domain.ProductDraft
	var raw, suggestion []byte

	err := row.Scan(&d.ID, &d.JobID, &d.RowIndex, &raw, &suggestion, &d.AIConfidence, &d.Status,
		&d.ImageStatus, &d.ImageRawFilename, &d.ImageMatchConfidence, &d.ImageURL, &d.Notes,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &d.RawData); err != nil {
		return nil, fmt.Errorf("unmarshal raw data: %w", err)
	}
	if suggestion != nil {
		d.AISuggestion = &domain.Suggestion{}
		if err := json.Unmarshal(suggestion, d.AISuggestion); err != nil {
			return nil, fmt.Errorf("unmarshal suggestion: %w", err)
		}
	}
	return &d, nil
}
