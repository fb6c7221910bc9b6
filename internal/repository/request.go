package repository

import (
	"context"
	"fmt"

	"love-diary-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestColumns = `id, from_user_id, from_user_phone, from_user_name,
		to_user_id, to_user_phone, love_start_date, status, created_at, updated_at`

// RequestRepository handles database operations for partner requests
type RequestRepository struct {
	db *pgxpool.Pool
}

// NewRequestRepository creates a new partner request repository
func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{db: db}
}

func scanRequest(row pgx.Row) (*models.PartnerRequest, error) {
	var req models.PartnerRequest
	err := row.Scan(
		&req.ID, &req.FromUserID, &req.FromUserPhone, &req.FromUserName,
		&req.ToUserID, &req.ToUserPhone, &req.LoveStartDate, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create inserts a new pending partner request
func (r *RequestRepository) Create(ctx context.Context, req *models.PartnerRequest) error {
	query := `
		INSERT INTO partner_requests (id, from_user_id, from_user_phone, from_user_name,
			to_user_id, to_user_phone, love_start_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		req.ID, req.FromUserID, req.FromUserPhone, req.FromUserName,
		req.ToUserID, req.ToUserPhone, req.LoveStartDate, req.Status,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create partner request: %w", err)
	}
	return nil
}

// GetByID retrieves a partner request by ID
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*models.PartnerRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM partner_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("partner request not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get partner request: %w", err)
	}
	return req, nil
}

// ListPendingFor retrieves pending requests addressed to a user, newest first
func (r *RequestRepository) ListPendingFor(ctx context.Context, toUserID string) ([]*models.PartnerRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM partner_requests
		WHERE to_user_id = $1 AND status = $2
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, toUserID, models.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.PartnerRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan partner request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating partner requests: %w", err)
	}
	return requests, nil
}

// CountPendingFor counts pending requests addressed to a user
func (r *RequestRepository) CountPendingFor(ctx context.Context, toUserID string) (int, error) {
	query := `SELECT COUNT(*) FROM partner_requests WHERE to_user_id = $1 AND status = $2`
	var count int
	err := r.db.QueryRow(ctx, query, toUserID, models.RequestStatusPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}
	return count, nil
}

// HasPending checks whether a pending request already exists between a pair
func (r *RequestRepository) HasPending(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM partner_requests
			WHERE from_user_id = $1 AND to_user_id = $2 AND status = $3
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, fromUserID, toUserID, models.RequestStatusPending).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check pending request: %w", err)
	}
	return exists, nil
}

// Reject marks a pending request as rejected. Terminal requests are left
// untouched and reported as not found.
func (r *RequestRepository) Reject(ctx context.Context, requestID string) error {
	query := `
		UPDATE partner_requests
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`
	result, err := r.db.Exec(ctx, query, models.RequestStatusRejected, requestID, models.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("failed to reject partner request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("partner request is not pending")
	}
	return nil
}

// Bind executes the pairing accept as one transaction: both user rows gain
// reciprocal partner fields and the request turns accepted. Every statement
// is guarded so a concurrent pairing rolls the whole accept back instead of
// leaving a half-bound couple.
func (r *RequestRepository) Bind(ctx context.Context, req *models.PartnerRequest, accepter, inviter *models.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin pairing transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updateUser := `
		UPDATE users
		SET partner_id = $1, partner_phone = $2, love_start_date = $3, updated_at = now()
		WHERE id = $4 AND partner_id IS NULL
	`

	result, err := tx.Exec(ctx, updateUser, inviter.ID, inviter.Phone, req.LoveStartDate, accepter.ID)
	if err != nil {
		return fmt.Errorf("failed to update accepter: %w", err)
	}
	if result.RowsAffected() != 1 {
		return fmt.Errorf("accepter already has a partner")
	}

	result, err = tx.Exec(ctx, updateUser, accepter.ID, accepter.Phone, req.LoveStartDate, inviter.ID)
	if err != nil {
		return fmt.Errorf("failed to update inviter: %w", err)
	}
	if result.RowsAffected() != 1 {
		return fmt.Errorf("inviter already has a partner")
	}

	result, err = tx.Exec(ctx, `
		UPDATE partner_requests
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, models.RequestStatusAccepted, req.ID, models.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update partner request: %w", err)
	}
	if result.RowsAffected() != 1 {
		return fmt.Errorf("partner request is not pending")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit pairing transaction: %w", err)
	}
	return nil
}
