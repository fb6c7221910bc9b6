package services

import (
	"testing"
	"time"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"13800138000", true},
		{"19912345678", true},
		{"15000000000", true},
		{"12800138000", false}, // second digit out of range
		{"23800138000", false}, // wrong leading digit
		{"1380013800", false},  // too short
		{"138001380000", false},
		{"1380013800a", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidatePhone(tt.phone); got != tt.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"123456", true},
		{"12345678901234567890", true},
		{"12345", false},
		{"123456789012345678901", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidatePassword(tt.password); got != tt.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestLoveDays(t *testing.T) {
	today := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		startDate string
		want      int
	}{
		{"start today counts as day one", "2024-06-15", 1},
		{"yesterday", "2024-06-14", 2},
		{"hundred days", "2024-03-08", 100},
		{"future date", "2024-06-16", 0},
		{"empty", "", 0},
		{"garbage", "not-a-date", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoveDays(tt.startDate, today); got != tt.want {
				t.Errorf("LoveDays(%q) = %d, want %d", tt.startDate, got, tt.want)
			}
		})
	}
}

func TestDefaultUsername(t *testing.T) {
	tests := []struct {
		gender string
		phone  string
		want   string
	}{
		{"male", "13800138000", "him_8000"},
		{"female", "13900139123", "her_9123"},
		{"", "13700137456", "user_7456"},
	}

	for _, tt := range tests {
		if got := defaultUsername(tt.gender, tt.phone); got != tt.want {
			t.Errorf("defaultUsername(%q, %q) = %q, want %q", tt.gender, tt.phone, got, tt.want)
		}
	}
}
