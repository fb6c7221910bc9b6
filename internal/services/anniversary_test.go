package services

import (
	"testing"
	"time"
)

func TestDaysLeft(t *testing.T) {
	today := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     string
		isYearly bool
		want     string
	}{
		{"one-off today", "2024-06-15", false, "today"},
		{"one-off upcoming", "2024-06-25", false, "10 days remaining"},
		{"one-off passed", "2024-06-10", false, "5 days past"},
		{"one-off next year", "2025-06-15", false, "365 days remaining"},
		{"yearly anniversary today", "2020-06-15", true, "today"},
		{"yearly upcoming this year", "2020-07-01", true, "16 days remaining"},
		{"yearly passed rolls to next year", "2020-06-14", true, "364 days remaining"},
		{"unparseable", "soon", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysLeft(tt.date, tt.isYearly, today); got != tt.want {
				t.Errorf("DaysLeft(%q, yearly=%v) = %q, want %q", tt.date, tt.isYearly, got, tt.want)
			}
		})
	}
}
