package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"love-diary-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Event is a typed change notification pushed to a watching client
type Event struct {
	Type    string       `json:"type"`
	User    *models.User `json:"user,omitempty"`
	Count   *int         `json:"count,omitempty"`
	Message string       `json:"message,omitempty"`
}

const (
	// EventUserUpdated carries a fresh snapshot of the watcher's own user
	// document (profile edit, pairing bound from the other side).
	EventUserUpdated = "user_updated"
	// EventPendingRequests carries the current pending invite count.
	EventPendingRequests = "pending_requests"
	// EventError reports a per-connection failure.
	EventError = "error"
)

// Hub holds the live subscriptions of connected clients: one connection per
// user, fed user-document and pending-invite change events while the
// client's screen is active. Connections must be unregistered on teardown.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
}

// NewHub creates a new subscription hub
func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*websocket.Conn),
	}
}

// Register attaches a connection for a user, replacing any previous one
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.connections[userID]; ok {
		existing.Close()
	}
	h.connections[userID] = conn

	log.Info().Str("user_id", userID).Msg("Subscription registered")
}

// Unregister detaches the connection for a user. Safe to call on every
// teardown path, including after Register replaced the connection.
func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.connections[userID]; ok && current == conn {
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("Subscription unregistered")
	}
	conn.Close()
}

// IsOnline checks if a user has a live subscription
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[userID]
	return ok
}

// Send pushes an event to a specific user
func (h *Hub) Send(userID string, event Event) error {
	h.mu.RLock()
	conn, ok := h.connections[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user %s is not connected", userID)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.Unregister(userID, conn)
		return fmt.Errorf("failed to send event: %w", err)
	}
	return nil
}

// NotifyUserUpdated pushes a fresh user snapshot to its watcher, if online
func (h *Hub) NotifyUserUpdated(user *models.User) {
	if !h.IsOnline(user.ID) {
		return
	}
	if err := h.Send(user.ID, Event{Type: EventUserUpdated, User: user}); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to push user update")
	}
}

// NotifyPendingRequests pushes the pending invite count to a user, if online
func (h *Hub) NotifyPendingRequests(userID string, count int) {
	if !h.IsOnline(userID) {
		return
	}
	if err := h.Send(userID, Event{Type: EventPendingRequests, Count: &count}); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to push pending request count")
	}
}
