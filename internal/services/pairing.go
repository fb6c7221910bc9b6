package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"love-diary-backend/internal/models"

	"github.com/google/uuid"
)

var (
	ErrSelfBind             = errors.New("cannot pair with yourself")
	ErrAlreadyPaired        = errors.New("you already have a partner")
	ErrPartnerAlreadyPaired = errors.New("partner already bound")
	ErrEmptyLoveDate        = errors.New("love start date is required")
	ErrDuplicateRequest     = errors.New("invite already sent, waiting for a response")
	ErrRequestNotPending    = errors.New("request is no longer pending")
	ErrNotInvitee           = errors.New("request is not addressed to this user")
)

// UserStore is the user lookup surface the pairing workflow needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
}

// RequestStore covers partner request reads, writes and the transactional
// accept.
type RequestStore interface {
	Create(ctx context.Context, req *models.PartnerRequest) error
	GetByID(ctx context.Context, id string) (*models.PartnerRequest, error)
	ListPendingFor(ctx context.Context, toUserID string) ([]*models.PartnerRequest, error)
	CountPendingFor(ctx context.Context, toUserID string) (int, error)
	HasPending(ctx context.Context, fromUserID, toUserID string) (bool, error)
	Reject(ctx context.Context, requestID string) error
	Bind(ctx context.Context, req *models.PartnerRequest, accepter, inviter *models.User) error
}

// PairingService runs the two-phase partner handshake: a pending invite
// either becomes accepted (binding both users reciprocally in one
// transaction) or rejected. Terminal states are immutable.
type PairingService struct {
	users    UserStore
	requests RequestStore
}

// NewPairingService creates a new pairing service
func NewPairingService(users UserStore, requests RequestStore) *PairingService {
	return &PairingService{
		users:    users,
		requests: requests,
	}
}

// SendInvite validates preconditions against fresh reads and inserts a
// pending partner request. Each failed guard surfaces a specific reason
// and aborts without retry.
func (s *PairingService) SendInvite(ctx context.Context, fromUserID, partnerPhone, loveStartDate string) (*models.PartnerRequest, error) {
	if !ValidatePhone(partnerPhone) {
		return nil, ErrInvalidPhone
	}
	if loveStartDate == "" {
		return nil, ErrEmptyLoveDate
	}

	inviter, err := s.users.GetByID(ctx, fromUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inviter: %w", err)
	}
	if inviter.Phone == partnerPhone {
		return nil, ErrSelfBind
	}
	if inviter.PartnerID != nil {
		return nil, ErrAlreadyPaired
	}

	invitee, err := s.users.GetByPhone(ctx, partnerPhone)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if invitee.PartnerID != nil {
		return nil, ErrPartnerAlreadyPaired
	}

	exists, err := s.requests.HasPending(ctx, inviter.ID, invitee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending invite: %w", err)
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	now := time.Now()
	req := &models.PartnerRequest{
		ID:            uuid.New().String(),
		FromUserID:    inviter.ID,
		FromUserPhone: inviter.Phone,
		FromUserName:  inviter.Username,
		ToUserID:      invitee.ID,
		ToUserPhone:   invitee.Phone,
		LoveStartDate: loveStartDate,
		Status:        models.RequestStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return req, nil
}

// AcceptInvite re-validates both parties against fresh reads and, when
// clear, binds them in a single transaction. A request that has already
// reached a terminal state is never re-applied to user records.
func (s *PairingService) AcceptInvite(ctx context.Context, requestID, accepterID string) (*models.PartnerRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invite: %w", err)
	}
	if req.ToUserID != accepterID {
		return nil, ErrNotInvitee
	}
	if req.Status != models.RequestStatusPending {
		return nil, ErrRequestNotPending
	}

	accepter, err := s.users.GetByID(ctx, accepterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accepter: %w", err)
	}
	inviter, err := s.users.GetByID(ctx, req.FromUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inviter: %w", err)
	}

	if accepter.PartnerID != nil {
		return nil, ErrAlreadyPaired
	}
	if inviter.PartnerID != nil {
		return nil, ErrPartnerAlreadyPaired
	}

	if err := s.requests.Bind(ctx, req, accepter, inviter); err != nil {
		return nil, fmt.Errorf("failed to bind pair: %w", err)
	}

	req.Status = models.RequestStatusAccepted
	return req, nil
}

// RejectInvite marks a pending invite as rejected
func (s *PairingService) RejectInvite(ctx context.Context, requestID, userID string) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to load invite: %w", err)
	}
	if req.ToUserID != userID {
		return ErrNotInvitee
	}
	if req.Status != models.RequestStatusPending {
		return ErrRequestNotPending
	}
	return s.requests.Reject(ctx, requestID)
}

// ListPendingInvites returns pending invites addressed to a user
func (s *PairingService) ListPendingInvites(ctx context.Context, userID string) ([]*models.PartnerRequest, error) {
	return s.requests.ListPendingFor(ctx, userID)
}

// CountPendingInvites returns the number of pending invites for a user
func (s *PairingService) CountPendingInvites(ctx context.Context, userID string) (int, error) {
	return s.requests.CountPendingFor(ctx, userID)
}
