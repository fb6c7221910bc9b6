package handlers

import (
	"encoding/json"
	"net/http"

	"love-diary-backend/internal/middleware"
	"love-diary-backend/internal/services"
	"love-diary-backend/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PairingHandler handles partner request HTTP endpoints
type PairingHandler struct {
	pairing     *services.PairingService
	userService *services.UserService
	sessions    *session.Store
	hub         *services.Hub
	push        *services.PushService
}

// NewPairingHandler creates a new pairing handler
func NewPairingHandler(
	pairing *services.PairingService,
	userService *services.UserService,
	sessions *session.Store,
	hub *services.Hub,
	push *services.PushService,
) *PairingHandler {
	return &PairingHandler{
		pairing:     pairing,
		userService: userService,
		sessions:    sessions,
		hub:         hub,
		push:        push,
	}
}

// SendInviteRequest is the request body for sending a partner invite
type SendInviteRequest struct {
	PartnerPhone  string `json:"partner_phone"`
	LoveStartDate string `json:"love_start_date"`
}

// SendInvite handles POST /api/v1/partner-requests
func (h *PairingHandler) SendInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req SendInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	invite, err := h.pairing.SendInvite(ctx, userID, req.PartnerPhone, req.LoveStartDate)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to send invite")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("request_id", invite.ID).
		Msg("Partner invite sent")

	// Push the new pending count to the invitee, live or offline.
	if count, err := h.pairing.CountPendingInvites(ctx, invite.ToUserID); err == nil {
		h.hub.NotifyPendingRequests(invite.ToUserID, count)
	}
	if !h.hub.IsOnline(invite.ToUserID) {
		if invitee, err := h.userService.GetByID(ctx, invite.ToUserID); err == nil && invitee.PushToken != nil {
			h.push.NotifyInvite(*invitee.PushToken, invite.FromUserName)
		}
	}

	respondJSON(w, http.StatusOK, invite)
}

// ListInvites handles GET /api/v1/partner-requests
func (h *PairingHandler) ListInvites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	invites, err := h.pairing.ListPendingInvites(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list invites")
		respondError(w, "Failed to list invites", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"requests": invites,
		"total":    len(invites),
	})
}

// AcceptInvite handles POST /api/v1/partner-requests/{request_id}/accept
func (h *PairingHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	requestID := chi.URLParam(r, "request_id")

	invite, err := h.pairing.AcceptInvite(ctx, requestID, userID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("request_id", requestID).
			Msg("Failed to accept invite")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("request_id", requestID).
		Msg("Partner invite accepted")

	// Both user documents changed; refresh sessions and push the new
	// snapshots to whoever is watching.
	for _, id := range []string{invite.ToUserID, invite.FromUserID} {
		user, err := h.userService.GetByID(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("user_id", id).Msg("Failed to reload user after pairing")
			continue
		}
		h.sessions.Save(user)
		h.hub.NotifyUserUpdated(user)
	}
	if count, err := h.pairing.CountPendingInvites(ctx, userID); err == nil {
		h.hub.NotifyPendingRequests(userID, count)
	}

	respondJSON(w, http.StatusOK, invite)
}

// RejectInvite handles POST /api/v1/partner-requests/{request_id}/reject
func (h *PairingHandler) RejectInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	requestID := chi.URLParam(r, "request_id")

	if err := h.pairing.RejectInvite(ctx, requestID, userID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("request_id", requestID).
			Msg("Failed to reject invite")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("request_id", requestID).
		Msg("Partner invite rejected")

	if count, err := h.pairing.CountPendingInvites(ctx, userID); err == nil {
		h.hub.NotifyPendingRequests(userID, count)
	}

	w.WriteHeader(http.StatusNoContent)
}
