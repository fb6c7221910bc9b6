package services

import (
	"fmt"

	appconfig "love-diary-backend/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// PushService delivers APNs notifications to users without a live
// subscription. Everything here is best effort; delivery failures are
// logged and never surfaced to the triggering request.
type PushService struct {
	client *apns2.Client
	topic  string
}

// NewPushService creates an APNs push sender. Returns a disabled sender
// (nil client) when no key is configured.
func NewPushService(cfg appconfig.APNsConfig) (*PushService, error) {
	if cfg.Disabled || cfg.KeyFile == "" {
		return &PushService{}, nil
	}

	authKey, err := token.AuthKeyFromFile(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs key: %w", err)
	}

	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	})
	if cfg.Sandbox {
		client = client.Development()
	} else {
		client = client.Production()
	}

	return &PushService{client: client, topic: cfg.Topic}, nil
}

// NotifyInvite sends a "new partner invite" notification to a device
func (s *PushService) NotifyInvite(deviceToken, fromName string) {
	if s.client == nil || deviceToken == "" {
		return
	}

	body := payload.NewPayload().
		AlertTitle("New partner invite").
		AlertBody(fmt.Sprintf("%s wants to pair with you", fromName)).
		Sound("default")

	res, err := s.client.Push(&apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       s.topic,
		Payload:     body,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to send invite push")
		return
	}
	if !res.Sent() {
		log.Warn().Int("status", res.StatusCode).Str("reason", res.Reason).Msg("Invite push rejected")
	}
}
