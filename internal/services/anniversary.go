package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"love-diary-backend/internal/models"
	"love-diary-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingTitle = errors.New("title is required")
	ErrMissingDate  = errors.New("date is required")
	ErrMissingImage = errors.New("image is required")
	ErrNotOwner     = errors.New("record does not belong to this user")
)

// AnniversaryView is an anniversary decorated with its resolved image URL
// and countdown.
type AnniversaryView struct {
	*models.Anniversary
	ImageTempURL string `json:"image_temp_url"`
	DaysLeft     string `json:"days_left"`
}

// AnniversaryService handles anniversary business logic
type AnniversaryService struct {
	repo  *repository.AnniversaryRepository
	files *FileService
}

// NewAnniversaryService creates a new anniversary service
func NewAnniversaryService(repo *repository.AnniversaryRepository, files *FileService) *AnniversaryService {
	return &AnniversaryService{
		repo:  repo,
		files: files,
	}
}

// DaysLeft renders the countdown to a date. Yearly dates are projected onto
// the current year and roll forward one year once passed.
func DaysLeft(dateStr string, isYearly bool, today time.Time) string {
	target, err := time.ParseInLocation("2006-01-02", dateStr, today.Location())
	if err != nil {
		return ""
	}

	todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, today.Location())

	if isYearly {
		targetDay = time.Date(todayDay.Year(), target.Month(), target.Day(), 0, 0, 0, 0, today.Location())
		if targetDay.Before(todayDay) {
			targetDay = time.Date(todayDay.Year()+1, target.Month(), target.Day(), 0, 0, 0, 0, today.Location())
		}
	}

	diff := int(targetDay.Sub(todayDay).Hours() / 24)
	switch {
	case diff == 0:
		return "today"
	case diff < 0:
		return fmt.Sprintf("%d days past", -diff)
	default:
		return fmt.Sprintf("%d days remaining", diff)
	}
}

// List returns anniversaries visible to the viewer with countdowns and
// resolved image URLs. Image resolution failures degrade to empty URLs.
func (s *AnniversaryService) List(ctx context.Context, viewerID string) ([]*AnniversaryView, error) {
	items, err := s.repo.ListVisibleTo(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	fileIDs := make([]string, 0, len(items))
	for _, a := range items {
		if a.ImageFileID != "" {
			fileIDs = append(fileIDs, a.ImageFileID)
		}
	}
	urls := make(map[string]string, len(fileIDs))
	if len(fileIDs) > 0 {
		for _, u := range s.files.TempURLs(ctx, fileIDs) {
			urls[u.FileID] = u.TempFileURL
		}
	}

	now := time.Now()
	views := make([]*AnniversaryView, 0, len(items))
	for _, a := range items {
		views = append(views, &AnniversaryView{
			Anniversary:  a,
			ImageTempURL: urls[a.ImageFileID],
			DaysLeft:     DaysLeft(a.Date, a.IsYearly, now),
		})
	}
	return views, nil
}

// AnniversaryInput carries the client-editable anniversary fields
type AnniversaryInput struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	ImageFileID string `json:"image_file_id"`
	Description string `json:"description"`
	IsYearly    bool   `json:"is_yearly"`
}

func (in *AnniversaryInput) validate() error {
	if in.Title == "" {
		return ErrMissingTitle
	}
	if in.Date == "" {
		return ErrMissingDate
	}
	if in.ImageFileID == "" {
		return ErrMissingImage
	}
	return nil
}

// Create stamps ownership and the creator's current partner onto a new
// anniversary. The partner snapshot is not re-derived later.
func (s *AnniversaryService) Create(ctx context.Context, creator *models.User, in AnniversaryInput) (*models.Anniversary, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	a := &models.Anniversary{
		ID:          uuid.New().String(),
		UserID:      creator.ID,
		PartnerID:   creator.PartnerID,
		Title:       in.Title,
		Date:        in.Date,
		ImageFileID: in.ImageFileID,
		Description: in.Description,
		IsYearly:    in.IsYearly,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the editable fields of an anniversary owned by the caller
func (s *AnniversaryService) Update(ctx context.Context, id, viewerID string, in AnniversaryInput) (*models.Anniversary, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.Visible(a, viewerID) {
		return nil, ErrNotOwner
	}

	a.Title = in.Title
	a.Date = in.Date
	a.ImageFileID = in.ImageFileID
	a.Description = in.Description
	a.IsYearly = in.IsYearly
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an anniversary and best-effort deletes its stored image.
// A storage delete failure is logged, not surfaced.
func (s *AnniversaryService) Delete(ctx context.Context, id, viewerID string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.Visible(a, viewerID) {
		return ErrNotOwner
	}

	if a.ImageFileID != "" {
		if err := s.files.Delete(ctx, a.ImageFileID); err != nil {
			log.Error().Err(err).Str("file_id", a.ImageFileID).Msg("Failed to delete anniversary image")
		}
	}
	return s.repo.Delete(ctx, id)
}
