package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"love-diary-backend/internal/models"
)

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New("user not found")
}

type fakeRequestStore struct {
	users    *fakeUserStore
	requests map[string]*models.PartnerRequest
}

func (f *fakeRequestStore) Create(_ context.Context, req *models.PartnerRequest) error {
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeRequestStore) GetByID(_ context.Context, id string) (*models.PartnerRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, errors.New("partner request not found")
	}
	cp := *req
	return &cp, nil
}

func (f *fakeRequestStore) ListPendingFor(_ context.Context, toUserID string) ([]*models.PartnerRequest, error) {
	var out []*models.PartnerRequest
	for _, req := range f.requests {
		if req.ToUserID == toUserID && req.Status == models.RequestStatusPending {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRequestStore) CountPendingFor(ctx context.Context, toUserID string) (int, error) {
	reqs, _ := f.ListPendingFor(ctx, toUserID)
	return len(reqs), nil
}

func (f *fakeRequestStore) HasPending(_ context.Context, fromUserID, toUserID string) (bool, error) {
	for _, req := range f.requests {
		if req.FromUserID == fromUserID && req.ToUserID == toUserID && req.Status == models.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestStore) Reject(_ context.Context, requestID string) error {
	req, ok := f.requests[requestID]
	if !ok || req.Status != models.RequestStatusPending {
		return errors.New("partner request is not pending")
	}
	req.Status = models.RequestStatusRejected
	return nil
}

// Bind mirrors the transactional accept: all three guarded writes succeed
// or nothing changes.
func (f *fakeRequestStore) Bind(_ context.Context, req *models.PartnerRequest, accepter, inviter *models.User) error {
	stored, ok := f.requests[req.ID]
	if !ok || stored.Status != models.RequestStatusPending {
		return errors.New("partner request is not pending")
	}
	a := f.users.users[accepter.ID]
	b := f.users.users[inviter.ID]
	if a == nil || a.PartnerID != nil {
		return errors.New("accepter already has a partner")
	}
	if b == nil || b.PartnerID != nil {
		return errors.New("inviter already has a partner")
	}
	a.PartnerID = &b.ID
	a.PartnerPhone = b.Phone
	a.LoveStartDate = req.LoveStartDate
	b.PartnerID = &a.ID
	b.PartnerPhone = a.Phone
	b.LoveStartDate = req.LoveStartDate
	stored.Status = models.RequestStatusAccepted
	return nil
}

func newPairingFixture(t *testing.T) (*PairingService, *fakeUserStore, *fakeRequestStore) {
	t.Helper()
	users := &fakeUserStore{users: make(map[string]*models.User)}
	requests := &fakeRequestStore{users: users, requests: make(map[string]*models.PartnerRequest)}
	return NewPairingService(users, requests), users, requests
}

func addUser(users *fakeUserStore, id, phone string) *models.User {
	u := &models.User{ID: id, Phone: phone, Username: "user_" + phone[len(phone)-4:]}
	users.users[id] = u
	return u
}

func TestSendInviteCreatesPendingRequest(t *testing.T) {
	svc, users, requests := newPairingFixture(t)
	addUser(users, "a", "13800000001")
	addUser(users, "b", "13800000002")

	req, err := svc.SendInvite(context.Background(), "a", "13800000002", "2024-02-14")
	if err != nil {
		t.Fatalf("SendInvite: %v", err)
	}
	if req.Status != models.RequestStatusPending {
		t.Errorf("status = %q, want pending", req.Status)
	}
	if req.FromUserID != "a" || req.ToUserID != "b" {
		t.Errorf("request endpoints = %q -> %q, want a -> b", req.FromUserID, req.ToUserID)
	}
	if _, ok := requests.requests[req.ID]; !ok {
		t.Error("request was not persisted")
	}
}

func TestSendInviteGuards(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		setup   func(users *fakeUserStore, requests *fakeRequestStore)
		phone   string
		date    string
		wantErr error
	}{
		{
			name:    "invalid phone",
			phone:   "12345",
			date:    "2024-02-14",
			wantErr: ErrInvalidPhone,
		},
		{
			name:    "empty date",
			phone:   "13800000002",
			date:    "",
			wantErr: ErrEmptyLoveDate,
		},
		{
			name:    "self bind",
			phone:   "13800000001",
			date:    "2024-02-14",
			wantErr: ErrSelfBind,
		},
		{
			name: "inviter already paired",
			setup: func(users *fakeUserStore, _ *fakeRequestStore) {
				other := "x"
				users.users["a"].PartnerID = &other
			},
			phone:   "13800000002",
			date:    "2024-02-14",
			wantErr: ErrAlreadyPaired,
		},
		{
			name:    "target does not exist",
			phone:   "13800000009",
			date:    "2024-02-14",
			wantErr: ErrUserNotFound,
		},
		{
			name: "target already paired",
			setup: func(users *fakeUserStore, _ *fakeRequestStore) {
				other := "x"
				users.users["b"].PartnerID = &other
			},
			phone:   "13800000002",
			date:    "2024-02-14",
			wantErr: ErrPartnerAlreadyPaired,
		},
		{
			name: "duplicate pending invite",
			setup: func(users *fakeUserStore, requests *fakeRequestStore) {
				requests.requests["r1"] = &models.PartnerRequest{
					ID: "r1", FromUserID: "a", ToUserID: "b",
					Status: models.RequestStatusPending,
				}
			},
			phone:   "13800000002",
			date:    "2024-02-14",
			wantErr: ErrDuplicateRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, requests := newPairingFixture(t)
			addUser(users, "a", "13800000001")
			addUser(users, "b", "13800000002")
			if tt.setup != nil {
				tt.setup(users, requests)
			}

			_, err := svc.SendInvite(ctx, "a", tt.phone, tt.date)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SendInvite error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSendInviteAfterRejectionAllowed(t *testing.T) {
	svc, users, requests := newPairingFixture(t)
	addUser(users, "a", "13800000001")
	addUser(users, "b", "13800000002")
	requests.requests["r1"] = &models.PartnerRequest{
		ID: "r1", FromUserID: "a", ToUserID: "b",
		Status: models.RequestStatusRejected,
	}

	if _, err := svc.SendInvite(context.Background(), "a", "13800000002", "2024-02-14"); err != nil {
		t.Fatalf("SendInvite after rejection: %v", err)
	}
}

func TestAcceptInviteBindsBothUsers(t *testing.T) {
	svc, users, _ := newPairingFixture(t)
	addUser(users, "a", "13800000001")
	addUser(users, "b", "13800000002")

	req, err := svc.SendInvite(context.Background(), "a", "13800000002", "2024-02-14")
	if err != nil {
		t.Fatalf("SendInvite: %v", err)
	}

	accepted, err := svc.AcceptInvite(context.Background(), req.ID, "b")
	if err != nil {
		t.Fatalf("AcceptInvite: %v", err)
	}
	if accepted.Status != models.RequestStatusAccepted {
		t.Errorf("status = %q, want accepted", accepted.Status)
	}

	a, b := users.users["a"], users.users["b"]
	if a.PartnerID == nil || *a.PartnerID != "b" {
		t.Errorf("inviter partner = %v, want b", a.PartnerID)
	}
	if b.PartnerID == nil || *b.PartnerID != "a" {
		t.Errorf("accepter partner = %v, want a", b.PartnerID)
	}
	if a.LoveStartDate != "2024-02-14" || b.LoveStartDate != "2024-02-14" {
		t.Errorf("love start dates = %q / %q, want 2024-02-14", a.LoveStartDate, b.LoveStartDate)
	}
}

func TestAcceptInviteTerminalIsNoOp(t *testing.T) {
	svc, users, _ := newPairingFixture(t)
	addUser(users, "a", "13800000001")
	addUser(users, "b", "13800000002")

	req, _ := svc.SendInvite(context.Background(), "a", "13800000002", "2024-02-14")
	if _, err := svc.AcceptInvite(context.Background(), req.ID, "b"); err != nil {
		t.Fatalf("first accept: %v", err)
	}

	before := fmt.Sprintf("%v/%v", *users.users["a"].PartnerID, *users.users["b"].PartnerID)

	if _, err := svc.AcceptInvite(context.Background(), req.ID, "b"); !errors.Is(err, ErrRequestNotPending) {
		t.Errorf("second accept error = %v, want %v", err, ErrRequestNotPending)
	}
	if err := svc.RejectInvite(context.Background(), req.ID, "b"); !errors.Is(err, ErrRequestNotPending) {
		t.Errorf("reject after accept error = %v, want %v", err, ErrRequestNotPending)
	}

	after := fmt.Sprintf("%v/%v", *users.users["a"].PartnerID, *users.users["b"].PartnerID)
	if before != after {
		t.Errorf("user records re-mutated by terminal request: %q -> %q", before, after)
	}
}

func TestAcceptInviteFailsWhenAccepterAlreadyPaired(t *testing.T) {
	svc, users, _ := newPairingFixture(t)
	addUser(users, "a", "13800000001")
	addUser(users, "b", "13800000002")
	addUser(users, "c", "13800000003")

	req, _ := svc.SendInvite(context.Background(), "a", "13800000002", "2024-02-14")

	// b pairs with c before accepting a's invite.
	cReq, _ := svc.SendInvite(context.Background(), "c", "13800000002", "2024-03-01")
	if _, err := svc.AcceptInvite(context.Background(), cReq.ID, "b"); err != nil {
		t.Fatalf("accept c's invite: %v", err)
	}

	if _, err := svc.AcceptInvite(context.Background(), req.ID, "b"); !errors.Is(err, ErrAlreadyPaired) {
		t.Errorf("accept error = %v, want %v", err, ErrAlreadyPaired)
	}
	if users.users["a"].PartnerID != nil {
		t.Errorf("inviter partner = %v, want unpaired", users.users["a"].PartnerID)
	}
	if *users.users["b"].PartnerID != "c" {
		t.Errorf("accepter partner = %q, want c", *users.users["b"].PartnerID)
	}
}

func TestAcceptInviteFailsWhenInviterPairedElsewhere(t *testing.T) {
	svc, users, _ := newPairingFixture(t)
	addUser(users, "a", "13800000001")
	addUser(users, "b", "13800000002")

	req, _ := svc.SendInvite(context.Background(), "a", "13800000002", "2024-02-14")

	other := "x"
	users.users["a"].PartnerID = &other

	if _, err := svc.AcceptInvite(context.Background(), req.ID, "b"); !errors.Is(err, ErrPartnerAlreadyPaired) {
		t.Errorf("accept error = %v, want %v", err, ErrPartnerAlreadyPaired)
	}
	if users.users["b"].PartnerID != nil {
		t.Errorf("accepter partner = %v, want unpaired", users.users["b"].PartnerID)
	}
}

func TestAcceptInviteRequiresInvitee(t *testing.T) {
	svc, users, _ := newPairingFixture(t)
	addUser(users, "a", "13800000001")
	addUser(users, "b", "13800000002")
	addUser(users, "c", "13800000003")

	req, _ := svc.SendInvite(context.Background(), "a", "13800000002", "2024-02-14")

	if _, err := svc.AcceptInvite(context.Background(), req.ID, "c"); !errors.Is(err, ErrNotInvitee) {
		t.Errorf("accept by stranger error = %v, want %v", err, ErrNotInvitee)
	}
}

func TestRejectInvite(t *testing.T) {
	svc, users, requests := newPairingFixture(t)
	addUser(users, "a", "13800000001")
	addUser(users, "b", "13800000002")

	req, _ := svc.SendInvite(context.Background(), "a", "13800000002", "2024-02-14")

	if err := svc.RejectInvite(context.Background(), req.ID, "b"); err != nil {
		t.Fatalf("RejectInvite: %v", err)
	}
	if got := requests.requests[req.ID].Status; got != models.RequestStatusRejected {
		t.Errorf("status = %q, want rejected", got)
	}
	if users.users["a"].PartnerID != nil || users.users["b"].PartnerID != nil {
		t.Error("reject must not touch user records")
	}
}
