package repository

import (
	"context"
	"fmt"

	"love-diary-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const poopColumns = `id, user_id, user_name, partner_id, record_date, record_time,
		record_type, duration, feeling, location, has_blood, color, smell, note,
		created_at, updated_at`

// PoopRepository handles database operations for bathroom log records
type PoopRepository struct {
	db *pgxpool.Pool
}

// NewPoopRepository creates a new bathroom log repository
func NewPoopRepository(db *pgxpool.Pool) *PoopRepository {
	return &PoopRepository{db: db}
}

func scanPoop(row pgx.Row) (*models.PoopRecord, error) {
	var p models.PoopRecord
	err := row.Scan(
		&p.ID, &p.UserID, &p.UserName, &p.PartnerID, &p.Date, &p.Time,
		&p.Type, &p.Duration, &p.Feeling, &p.Location, &p.HasBlood, &p.Color,
		&p.Smell, &p.Note, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new bathroom log record
func (r *PoopRepository) Create(ctx context.Context, p *models.PoopRecord) error {
	query := `
		INSERT INTO poop_records (id, user_id, user_name, partner_id, record_date,
			record_time, record_type, duration, feeling, location, has_blood, color,
			smell, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.UserName, p.PartnerID, p.Date, p.Time,
		p.Type, p.Duration, p.Feeling, p.Location, p.HasBlood, p.Color,
		p.Smell, p.Note, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create poop record: %w", err)
	}
	return nil
}

// GetByID retrieves a bathroom log record by ID
func (r *PoopRepository) GetByID(ctx context.Context, id string) (*models.PoopRecord, error) {
	query := `SELECT ` + poopColumns + ` FROM poop_records WHERE id = $1`
	p, err := scanPoop(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("poop record not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get poop record: %w", err)
	}
	return p, nil
}

// ListVisibleTo retrieves bathroom log records visible to a viewer, newest first
func (r *PoopRepository) ListVisibleTo(ctx context.Context, viewerID string) ([]*models.PoopRecord, error) {
	query := `
		SELECT ` + poopColumns + `
		FROM poop_records
		WHERE user_id = $1 OR partner_id = $1
		ORDER BY record_date DESC, record_time DESC
	`
	rows, err := r.db.Query(ctx, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list poop records: %w", err)
	}
	defer rows.Close()

	var items []*models.PoopRecord
	for rows.Next() {
		p, err := scanPoop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poop record: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating poop records: %w", err)
	}
	return items, nil
}

// Delete deletes a bathroom log record by ID
func (r *PoopRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM poop_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poop record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("poop record not found: %w", ErrNotFound)
	}
	return nil
}
