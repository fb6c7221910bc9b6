package handlers

import (
	"encoding/json"
	"net/http"

	"love-diary-backend/internal/middleware"
	"love-diary-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// QuarrelHandler handles quarrel record HTTP requests
type QuarrelHandler struct {
	service     *services.QuarrelService
	userService *services.UserService
}

// NewQuarrelHandler creates a new quarrel handler
func NewQuarrelHandler(service *services.QuarrelService, userService *services.UserService) *QuarrelHandler {
	return &QuarrelHandler{
		service:     service,
		userService: userService,
	}
}

// List handles GET /api/v1/quarrels
func (h *QuarrelHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	items, stats, err := h.service.List(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list quarrels")
		respondError(w, "Failed to list quarrels", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"quarrels": items,
		"stats":    stats,
	})
}

// Create handles POST /api/v1/quarrels
func (h *QuarrelHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var in services.QuarrelInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	creator, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load creator")
		respondError(w, "Failed to create quarrel", http.StatusInternalServerError)
		return
	}

	q, err := h.service.Create(ctx, creator, in)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create quarrel")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().Str("user_id", userID).Str("quarrel_id", q.ID).Msg("Quarrel recorded")
	respondJSON(w, http.StatusOK, q)
}

// Reconcile handles POST /api/v1/quarrels/{quarrel_id}/reconcile
func (h *QuarrelHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	id := chi.URLParam(r, "quarrel_id")

	if err := h.service.Reconcile(ctx, id, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("quarrel_id", id).Msg("Failed to reconcile quarrel")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().Str("user_id", userID).Str("quarrel_id", id).Msg("Quarrel reconciled")
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/quarrels/{quarrel_id}
func (h *QuarrelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	id := chi.URLParam(r, "quarrel_id")

	if err := h.service.Delete(ctx, id, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("quarrel_id", id).Msg("Failed to delete quarrel")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
