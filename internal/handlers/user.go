package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"love-diary-backend/internal/middleware"
	"love-diary-backend/internal/services"
	"love-diary-backend/internal/session"

	"github.com/rs/zerolog/log"
)

// UserHandler handles account and profile HTTP requests
type UserHandler struct {
	userService *services.UserService
	sessions    *session.Store
	hub         *services.Hub
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, sessions *session.Store, hub *services.Hub) *UserHandler {
	return &UserHandler{
		userService: userService,
		sessions:    sessions,
		hub:         hub,
	}
}

// RegisterRequest is the request body for account registration
type RegisterRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Gender   string `json:"gender"`
}

// AuthResponse carries the authenticated user and their token
type AuthResponse struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}

// Register handles POST /api/v1/users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Gender != "male" && req.Gender != "female" {
		respondError(w, "gender is required", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(ctx, req.Phone, req.Password, req.Gender)
	if err != nil {
		log.Error().Err(err).Str("phone", req.Phone).Msg("Failed to register user")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	token, err := h.userService.GenerateJWT(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondError(w, "Failed to register", http.StatusInternalServerError)
		return
	}

	h.sessions.Save(user)

	log.Info().Str("user_id", user.ID).Msg("User registered")
	respondJSON(w, http.StatusOK, AuthResponse{User: user, Token: token})
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Login(ctx, req.Phone, req.Password)
	if err != nil {
		log.Warn().Err(err).Str("phone", req.Phone).Msg("Login failed")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	token, err := h.userService.GenerateJWT(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondError(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	h.sessions.Save(user)

	log.Info().Str("user_id", user.ID).Msg("User logged in")
	respondJSON(w, http.StatusOK, AuthResponse{User: user, Token: token})
}

// Logout handles POST /api/v1/users/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	h.sessions.Clear(userID)

	log.Info().Str("user_id", userID).Msg("User logged out")
	w.WriteHeader(http.StatusNoContent)
}

// MeResponse is the home screen summary: the user, their partner and the
// derived love-day count.
type MeResponse struct {
	User     interface{} `json:"user"`
	Partner  interface{} `json:"partner,omitempty"`
	LoveDays int         `json:"love_days"`
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
		respondError(w, "Failed to load user", http.StatusInternalServerError)
		return
	}

	resp := MeResponse{
		User:     user,
		LoveDays: services.LoveDays(user.LoveStartDate, time.Now()),
	}

	partner, err := h.userService.GetPartner(ctx, user)
	if err != nil {
		// A missing partner row degrades the summary, it does not fail it.
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load partner")
	} else if partner != nil {
		resp.Partner = partner
	}

	h.sessions.Save(user)
	respondJSON(w, http.StatusOK, resp)
}

// UpdateProfileRequest is the request body for profile edits
type UpdateProfileRequest struct {
	Username     string `json:"username"`
	AvatarFileID string `json:"avatar_file_id"`
}

// UpdateProfile handles PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		respondError(w, "username is required", http.StatusBadRequest)
		return
	}

	user, err := h.userService.UpdateProfile(ctx, userID, req.Username, req.AvatarFileID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")
		respondError(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	h.sessions.Save(user)
	h.hub.NotifyUserUpdated(user)

	log.Info().Str("user_id", userID).Msg("Profile updated")
	respondJSON(w, http.StatusOK, user)
}

// UpdatePushTokenRequest is the request body for device token registration
type UpdatePushTokenRequest struct {
	PushToken *string `json:"push_token"`
}

// UpdatePushToken handles PUT /api/v1/users/me/push-token
func (h *UserHandler) UpdatePushToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UpdatePushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.userService.UpdatePushToken(ctx, userID, req.PushToken); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update push token")
		respondError(w, "Failed to update push token", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
