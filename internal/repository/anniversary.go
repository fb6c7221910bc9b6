package repository

import (
	"context"
	"fmt"

	"love-diary-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const anniversaryColumns = `id, user_id, partner_id, title, date, image_file_id,
		description, is_yearly, created_at, updated_at`

// AnniversaryRepository handles database operations for anniversaries
type AnniversaryRepository struct {
	db *pgxpool.Pool
}

// NewAnniversaryRepository creates a new anniversary repository
func NewAnniversaryRepository(db *pgxpool.Pool) *AnniversaryRepository {
	return &AnniversaryRepository{db: db}
}

func scanAnniversary(row pgx.Row) (*models.Anniversary, error) {
	var a models.Anniversary
	err := row.Scan(
		&a.ID, &a.UserID, &a.PartnerID, &a.Title, &a.Date, &a.ImageFileID,
		&a.Description, &a.IsYearly, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create creates a new anniversary
func (r *AnniversaryRepository) Create(ctx context.Context, a *models.Anniversary) error {
	query := `
		INSERT INTO anniversaries (id, user_id, partner_id, title, date, image_file_id,
			description, is_yearly, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.UserID, a.PartnerID, a.Title, a.Date, a.ImageFileID,
		a.Description, a.IsYearly, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create anniversary: %w", err)
	}
	return nil
}

// GetByID retrieves an anniversary by ID
func (r *AnniversaryRepository) GetByID(ctx context.Context, id string) (*models.Anniversary, error) {
	query := `SELECT ` + anniversaryColumns + ` FROM anniversaries WHERE id = $1`
	a, err := scanAnniversary(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("anniversary not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get anniversary: %w", err)
	}
	return a, nil
}

// ListVisibleTo retrieves anniversaries visible to a viewer, earliest date
// first to support the days-remaining framing.
func (r *AnniversaryRepository) ListVisibleTo(ctx context.Context, viewerID string) ([]*models.Anniversary, error) {
	query := `
		SELECT ` + anniversaryColumns + `
		FROM anniversaries
		WHERE user_id = $1 OR partner_id = $1
		ORDER BY date ASC
	`
	rows, err := r.db.Query(ctx, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list anniversaries: %w", err)
	}
	defer rows.Close()

	var items []*models.Anniversary
	for rows.Next() {
		a, err := scanAnniversary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan anniversary: %w", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating anniversaries: %w", err)
	}
	return items, nil
}

// Update updates the editable fields of an anniversary
func (r *AnniversaryRepository) Update(ctx context.Context, a *models.Anniversary) error {
	query := `
		UPDATE anniversaries
		SET title = $1, date = $2, image_file_id = $3, description = $4,
			is_yearly = $5, updated_at = now()
		WHERE id = $6
	`
	result, err := r.db.Exec(ctx, query,
		a.Title, a.Date, a.ImageFileID, a.Description, a.IsYearly, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update anniversary: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("anniversary not found: %w", ErrNotFound)
	}
	return nil
}

// Delete deletes an anniversary by ID
func (r *AnniversaryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM anniversaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete anniversary: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("anniversary not found: %w", ErrNotFound)
	}
	return nil
}
