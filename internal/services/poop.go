package services

import (
	"context"
	"errors"
	"time"

	"love-diary-backend/internal/models"
	"love-diary-backend/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidDuration = errors.New("duration must be positive")

// PoopStats summarizes bathroom log activity
type PoopStats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	ThisWeek int `json:"this_week"`
}

// PoopService handles bathroom log business logic
type PoopService struct {
	repo *repository.PoopRepository
}

// NewPoopService creates a new bathroom log service
func NewPoopService(repo *repository.PoopRepository) *PoopService {
	return &PoopService{repo: repo}
}

// List returns bathroom logs visible to the viewer along with derived stats
func (s *PoopService) List(ctx context.Context, viewerID string) ([]*models.PoopRecord, PoopStats, error) {
	items, err := s.repo.ListVisibleTo(ctx, viewerID)
	if err != nil {
		return nil, PoopStats{}, err
	}
	return items, poopStats(items, time.Now()), nil
}

func poopStats(items []*models.PoopRecord, now time.Time) PoopStats {
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7).Format("2006-01-02")

	stats := PoopStats{Total: len(items)}
	for _, p := range items {
		if p.Date == today {
			stats.Today++
		}
		if p.Date >= weekAgo {
			stats.ThisWeek++
		}
	}
	return stats
}

// PoopInput carries the client-editable bathroom log fields
type PoopInput struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Type     string `json:"type"`
	Duration int    `json:"duration"`
	Feeling  string `json:"feeling"`
	Location string `json:"location"`
	HasBlood bool   `json:"has_blood"`
	Color    string `json:"color"`
	Smell    string `json:"smell"`
	Note     string `json:"note"`
}

// Create stamps ownership and the creator's current partner onto a new
// bathroom log record
func (s *PoopService) Create(ctx context.Context, creator *models.User, in PoopInput) (*models.PoopRecord, error) {
	if in.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	now := time.Now()
	p := &models.PoopRecord{
		ID:        uuid.New().String(),
		UserID:    creator.ID,
		UserName:  creator.Username,
		PartnerID: creator.PartnerID,
		Date:      in.Date,
		Time:      in.Time,
		Type:      in.Type,
		Duration:  in.Duration,
		Feeling:   in.Feeling,
		Location:  in.Location,
		HasBlood:  in.HasBlood,
		Color:     in.Color,
		Smell:     in.Smell,
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a bathroom log record
func (s *PoopService) Delete(ctx context.Context, id, viewerID string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.Visible(p, viewerID) {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}
