package services

import "testing"

func TestSharedFolder(t *testing.T) {
	partner := "aaa"

	tests := []struct {
		name      string
		userID    string
		partnerID *string
		want      string
	}{
		{"unpaired", "zzz", nil, "anniversaries/zzz"},
		{"paired", "zzz", &partner, "anniversaries/aaa_zzz"},
		{"paired reversed", "aaa", strPtr("zzz"), "anniversaries/aaa_zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SharedFolder("anniversaries", tt.userID, tt.partnerID); got != tt.want {
				t.Errorf("SharedFolder() = %q, want %q", got, tt.want)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
