package handlers

import (
	"encoding/json"
	"net/http"

	"love-diary-backend/internal/middleware"
	"love-diary-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PoopHandler handles bathroom log HTTP requests
type PoopHandler struct {
	service     *services.PoopService
	userService *services.UserService
}

// NewPoopHandler creates a new bathroom log handler
func NewPoopHandler(service *services.PoopService, userService *services.UserService) *PoopHandler {
	return &PoopHandler{
		service:     service,
		userService: userService,
	}
}

// List handles GET /api/v1/poop-records
func (h *PoopHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	items, stats, err := h.service.List(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list poop records")
		respondError(w, "Failed to list records", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"records": items,
		"stats":   stats,
	})
}

// Create handles POST /api/v1/poop-records
func (h *PoopHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var in services.PoopInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	creator, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load creator")
		respondError(w, "Failed to create record", http.StatusInternalServerError)
		return
	}

	p, err := h.service.Create(ctx, creator, in)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create poop record")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().Str("user_id", userID).Str("record_id", p.ID).Msg("Poop record created")
	respondJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/v1/poop-records/{record_id}
func (h *PoopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	id := chi.URLParam(r, "record_id")

	if err := h.service.Delete(ctx, id, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("record_id", id).Msg("Failed to delete poop record")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
