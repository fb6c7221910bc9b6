package handlers

import (
	"encoding/json"
	"net/http"

	"love-diary-backend/internal/middleware"
	"love-diary-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// FileHandler handles file storage HTTP requests
type FileHandler struct {
	files       *services.FileService
	userService *services.UserService
}

// NewFileHandler creates a new file handler
func NewFileHandler(files *services.FileService, userService *services.UserService) *FileHandler {
	return &FileHandler{
		files:       files,
		userService: userService,
	}
}

// TempURLRequest is the request body of the temp URL relay
type TempURLRequest struct {
	FileList []string `json:"file_list"`
}

// TempURLResponse mirrors the relay contract: a success flag and a list
// parallel to the input.
type TempURLResponse struct {
	Success  bool                   `json:"success"`
	FileList []services.TempFileURL `json:"file_list,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// TempURLs handles POST /api/v1/files/temp-urls. Per-item failures come
// back as empty URLs; only a malformed request fails the call.
func (h *FileHandler) TempURLs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req TempURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, TempURLResponse{Success: false, Error: "invalid request body"})
		return
	}

	urls := h.files.TempURLs(ctx, req.FileList)
	respondJSON(w, http.StatusOK, TempURLResponse{Success: true, FileList: urls})
}

// UploadRequest is the request body for requesting an upload ticket
type UploadRequest struct {
	Kind        string `json:"kind"` // "anniversary" or "avatar"
	ContentType string `json:"content_type"`
}

// Upload handles POST /api/v1/files/upload
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
		respondError(w, "Failed to issue upload ticket", http.StatusInternalServerError)
		return
	}

	var folder string
	switch req.Kind {
	case "avatar":
		folder = "avatars/" + user.ID
	case "anniversary":
		folder = services.SharedFolder("anniversaries", user.ID, user.PartnerID)
	default:
		respondError(w, "kind must be avatar or anniversary", http.StatusBadRequest)
		return
	}

	ticket, err := h.files.NewUploadTicket(ctx, folder, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to presign upload URL")
		respondError(w, "Failed to issue upload ticket", http.StatusInternalServerError)
		return
	}

	log.Info().Str("user_id", userID).Str("file_id", ticket.FileID).Msg("Upload ticket issued")
	respondJSON(w, http.StatusOK, ticket)
}
