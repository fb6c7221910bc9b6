package middleware

import (
	"testing"

	"love-diary-backend/internal/services"
)

func TestValidateWebSocketToken(t *testing.T) {
	userService := services.NewUserService(nil, "test-secret")

	if _, err := ValidateWebSocketToken("", userService); err == nil {
		t.Error("empty token should be rejected")
	}

	if _, err := ValidateWebSocketToken("not-a-jwt", userService); err == nil {
		t.Error("malformed token should be rejected")
	}

	token, err := userService.GenerateJWT("u1")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	userID, err := ValidateWebSocketToken(token, userService)
	if err != nil {
		t.Fatalf("ValidateWebSocketToken: %v", err)
	}
	if userID != "u1" {
		t.Errorf("user ID = %q, want u1", userID)
	}

	other := services.NewUserService(nil, "other-secret")
	if _, err := ValidateWebSocketToken(token, other); err == nil {
		t.Error("token signed with a different secret should be rejected")
	}
}
