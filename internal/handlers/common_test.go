package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"love-diary-backend/internal/repository"
	"love-diary-backend/internal/services"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation failure", services.ErrInvalidPhone, http.StatusBadRequest},
		{"missing user", services.ErrUserNotFound, http.StatusNotFound},
		{"missing entity", repository.ErrNotFound, http.StatusNotFound},
		{
			"missing entity wrapped through service layers",
			fmt.Errorf("failed to load invite: %w",
				fmt.Errorf("partner request not found: %w", repository.ErrNotFound)),
			http.StatusNotFound,
		},
		{"ownership violation", services.ErrNotOwner, http.StatusForbidden},
		{"pairing conflict", services.ErrAlreadyPaired, http.StatusConflict},
		{"terminal request", services.ErrRequestNotPending, http.StatusConflict},
		{"bad credentials", services.ErrWrongPassword, http.StatusUnauthorized},
		{"unknown failure", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
