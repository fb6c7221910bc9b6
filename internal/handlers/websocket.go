package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"love-diary-backend/internal/middleware"
	"love-diary-backend/internal/services"
	"love-diary-backend/internal/session"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler serves the live view subscriptions: while a screen is
// connected it receives user-document updates and pending-invite counts.
type WebSocketHandler struct {
	hub         *services.Hub
	userService *services.UserService
	pairing     *services.PairingService
	sessions    *session.Store
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *services.Hub,
	userService *services.UserService,
	pairing *services.PairingService,
	sessions *session.Store,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		userService: userService,
		pairing:     pairing,
		sessions:    sessions,
	}
}

type clientMessage struct {
	Type string `json:"type"`
}

// HandleWebSocket handles GET /ws?token=...
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.ValidateWebSocketToken(r.URL.Query().Get("token"), h.userService)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if state := h.sessions.Check(userID); !state.Active {
		respondError(w, "session expired", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.hub.Register(userID, conn)
	// Teardown on every exit path; a leaked subscription outlives the
	// screen and keeps pushing into a dead connection.
	defer h.hub.Unregister(userID, conn)

	ctx := r.Context()
	h.pushSnapshot(ctx, userID)

	log.Info().Str("user_id", userID).Msg("WebSocket connection established")

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", userID).Msg("WebSocket error")
			}
			break
		}

		var msg clientMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to parse WebSocket message")
			h.sendError(userID, "Invalid message format")
			continue
		}

		switch msg.Type {
		case "refresh":
			h.pushSnapshot(ctx, userID)
		case "ping":
			// Keepalive only.
		default:
			h.sendError(userID, "Unknown message type")
		}
	}
}

// pushSnapshot sends the current user document and pending invite count
func (h *WebSocketHandler) pushSnapshot(ctx context.Context, userID string) {
	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load user for snapshot")
	} else {
		h.hub.NotifyUserUpdated(user)
	}

	count, err := h.pairing.CountPendingInvites(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to count pending invites")
		return
	}
	h.hub.NotifyPendingRequests(userID, count)
}

func (h *WebSocketHandler) sendError(userID, message string) {
	if err := h.hub.Send(userID, services.Event{Type: services.EventError, Message: message}); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to send error event")
	}
}
