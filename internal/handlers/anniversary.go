package handlers

import (
	"encoding/json"
	"net/http"

	"love-diary-backend/internal/middleware"
	"love-diary-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// AnniversaryHandler handles anniversary HTTP requests
type AnniversaryHandler struct {
	service     *services.AnniversaryService
	userService *services.UserService
}

// NewAnniversaryHandler creates a new anniversary handler
func NewAnniversaryHandler(service *services.AnniversaryService, userService *services.UserService) *AnniversaryHandler {
	return &AnniversaryHandler{
		service:     service,
		userService: userService,
	}
}

// List handles GET /api/v1/anniversaries
func (h *AnniversaryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	items, err := h.service.List(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list anniversaries")
		respondError(w, "Failed to list anniversaries", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"anniversaries": items,
		"total":         len(items),
	})
}

// Create handles POST /api/v1/anniversaries
func (h *AnniversaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var in services.AnniversaryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	creator, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load creator")
		respondError(w, "Failed to create anniversary", http.StatusInternalServerError)
		return
	}

	a, err := h.service.Create(ctx, creator, in)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create anniversary")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().Str("user_id", userID).Str("anniversary_id", a.ID).Msg("Anniversary created")
	respondJSON(w, http.StatusOK, a)
}

// Update handles PUT /api/v1/anniversaries/{anniversary_id}
func (h *AnniversaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	id := chi.URLParam(r, "anniversary_id")

	var in services.AnniversaryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	a, err := h.service.Update(ctx, id, userID, in)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("anniversary_id", id).Msg("Failed to update anniversary")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	respondJSON(w, http.StatusOK, a)
}

// Delete handles DELETE /api/v1/anniversaries/{anniversary_id}
func (h *AnniversaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	id := chi.URLParam(r, "anniversary_id")

	if err := h.service.Delete(ctx, id, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("anniversary_id", id).Msg("Failed to delete anniversary")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().Str("user_id", userID).Str("anniversary_id", id).Msg("Anniversary deleted")
	w.WriteHeader(http.StatusNoContent)
}
