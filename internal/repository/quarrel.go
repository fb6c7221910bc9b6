package repository

import (
	"context"
	"fmt"

	"love-diary-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const quarrelColumns = `id, user_id, partner_id, quarrel_date, quarrel_time, reason,
		hurtful_words, my_words, severity, mood, note, is_reconciled, reconciled_at,
		created_at, updated_at`

// QuarrelRepository handles database operations for quarrel records
type QuarrelRepository struct {
	db *pgxpool.Pool
}

// NewQuarrelRepository creates a new quarrel repository
func NewQuarrelRepository(db *pgxpool.Pool) *QuarrelRepository {
	return &QuarrelRepository{db: db}
}

func scanQuarrel(row pgx.Row) (*models.Quarrel, error) {
	var q models.Quarrel
	err := row.Scan(
		&q.ID, &q.UserID, &q.PartnerID, &q.QuarrelDate, &q.QuarrelTime, &q.Reason,
		&q.HurtfulWords, &q.MyWords, &q.Severity, &q.Mood, &q.Note, &q.IsReconciled,
		&q.ReconciledAt, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create creates a new quarrel record
func (r *QuarrelRepository) Create(ctx context.Context, q *models.Quarrel) error {
	query := `
		INSERT INTO quarrels (id, user_id, partner_id, quarrel_date, quarrel_time, reason,
			hurtful_words, my_words, severity, mood, note, is_reconciled, reconciled_at,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(ctx, query,
		q.ID, q.UserID, q.PartnerID, q.QuarrelDate, q.QuarrelTime, q.Reason,
		q.HurtfulWords, q.MyWords, q.Severity, q.Mood, q.Note, q.IsReconciled,
		q.ReconciledAt, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create quarrel: %w", err)
	}
	return nil
}

// GetByID retrieves a quarrel record by ID
func (r *QuarrelRepository) GetByID(ctx context.Context, id string) (*models.Quarrel, error) {
	query := `SELECT ` + quarrelColumns + ` FROM quarrels WHERE id = $1`
	q, err := scanQuarrel(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("quarrel not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get quarrel: %w", err)
	}
	return q, nil
}

// ListVisibleTo retrieves quarrel records visible to a viewer, newest first
func (r *QuarrelRepository) ListVisibleTo(ctx context.Context, viewerID string) ([]*models.Quarrel, error) {
	query := `
		SELECT ` + quarrelColumns + `
		FROM quarrels
		WHERE user_id = $1 OR partner_id = $1
		ORDER BY quarrel_date DESC, quarrel_time DESC
	`
	rows, err := r.db.Query(ctx, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quarrels: %w", err)
	}
	defer rows.Close()

	var items []*models.Quarrel
	for rows.Next() {
		q, err := scanQuarrel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quarrel: %w", err)
		}
		items = append(items, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quarrels: %w", err)
	}
	return items, nil
}

// MarkReconciled flags a quarrel as reconciled
func (r *QuarrelRepository) MarkReconciled(ctx context.Context, id string) error {
	query := `
		UPDATE quarrels
		SET is_reconciled = true, reconciled_at = now(), updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark quarrel reconciled: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("quarrel not found: %w", ErrNotFound)
	}
	return nil
}

// Delete deletes a quarrel record by ID
func (r *QuarrelRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM quarrels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quarrel: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("quarrel not found: %w", ErrNotFound)
	}
	return nil
}
