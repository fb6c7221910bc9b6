package services

import (
	"context"
	"errors"
	"time"

	"love-diary-backend/internal/models"
	"love-diary-backend/internal/repository"

	"github.com/google/uuid"
)

var ErrMissingReason = errors.New("reason is required")

// QuarrelStats summarizes a couple's quarrel history
type QuarrelStats struct {
	Total        int `json:"total"`
	Reconciled   int `json:"reconciled"`
	Unreconciled int `json:"unreconciled"`
}

// QuarrelService handles quarrel record business logic
type QuarrelService struct {
	repo *repository.QuarrelRepository
}

// NewQuarrelService creates a new quarrel service
func NewQuarrelService(repo *repository.QuarrelRepository) *QuarrelService {
	return &QuarrelService{repo: repo}
}

// List returns quarrels visible to the viewer along with derived stats
func (s *QuarrelService) List(ctx context.Context, viewerID string) ([]*models.Quarrel, QuarrelStats, error) {
	items, err := s.repo.ListVisibleTo(ctx, viewerID)
	if err != nil {
		return nil, QuarrelStats{}, err
	}

	stats := QuarrelStats{Total: len(items)}
	for _, q := range items {
		if q.IsReconciled {
			stats.Reconciled++
		} else {
			stats.Unreconciled++
		}
	}
	return items, stats, nil
}

// QuarrelInput carries the client-editable quarrel fields
type QuarrelInput struct {
	QuarrelDate  string `json:"quarrel_date"`
	QuarrelTime  string `json:"quarrel_time"`
	Reason       string `json:"reason"`
	HurtfulWords string `json:"hurtful_words"`
	MyWords      string `json:"my_words"`
	Severity     string `json:"severity"`
	Mood         string `json:"mood"`
	Note         string `json:"note"`
}

// Create stamps ownership and the creator's current partner onto a new
// quarrel record
func (s *QuarrelService) Create(ctx context.Context, creator *models.User, in QuarrelInput) (*models.Quarrel, error) {
	if in.Reason == "" {
		return nil, ErrMissingReason
	}
	if in.Severity == "" {
		in.Severity = models.SeverityMedium
	}

	now := time.Now()
	q := &models.Quarrel{
		ID:           uuid.New().String(),
		UserID:       creator.ID,
		PartnerID:    creator.PartnerID,
		QuarrelDate:  in.QuarrelDate,
		QuarrelTime:  in.QuarrelTime,
		Reason:       in.Reason,
		HurtfulWords: in.HurtfulWords,
		MyWords:      in.MyWords,
		Severity:     in.Severity,
		Mood:         in.Mood,
		Note:         in.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Reconcile marks a quarrel as made up
func (s *QuarrelService) Reconcile(ctx context.Context, id, viewerID string) error {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.Visible(q, viewerID) {
		return ErrNotOwner
	}
	return s.repo.MarkReconciled(ctx, id)
}

// Delete removes a quarrel record
func (s *QuarrelService) Delete(ctx context.Context, id, viewerID string) error {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.Visible(q, viewerID) {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}
