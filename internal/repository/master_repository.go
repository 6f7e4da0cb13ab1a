package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-import/internal/domain"
)

// PostgresMasterRepository implements MasterRepository using PostgreSQL.
type PostgresMasterRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMasterRepository creates a new PostgresMasterRepository.
func NewPostgresMasterRepository(pool *pgxpool.Pool) *PostgresMasterRepository {
	return &PostgresMasterRepository{pool: pool}
}

// ListMasters returns every record of one list ordered by id.
func (r *PostgresMasterRepository) ListMasters(ctx context.Context, kind domain.MasterKind) ([]domain.MasterRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, aliases
		FROM master_records
		WHERE kind = $1
		ORDER BY id
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query master records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.MasterRecord, 0)
	for rows.Next() {
		var rec domain.MasterRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Aliases); err != nil {
			return nil, fmt.Errorf("scan master record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpsertMasters inserts or replaces records of one list in a single batch.
func (r *PostgresMasterRepository) UpsertMasters(ctx context.Context, kind domain.MasterKind, records []domain.MasterRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		aliases := rec.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		batch.Queue(`
			INSERT INTO master_records (kind, id, name, aliases, updated_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (kind, id) DO UPDATE
			SET name = EXCLUDED.name, aliases = EXCLUDED.aliases, updated_at = NOW()
		`, string(kind), rec.ID, rec.Name, aliases)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert master records: %w", err)
	}
	return nil
}
