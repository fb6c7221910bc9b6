package services

import (
	"testing"
	"time"

	"love-diary-backend/internal/models"
)

func TestPoopStats(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	records := func(dates ...string) []*models.PoopRecord {
		out := make([]*models.PoopRecord, len(dates))
		for i, d := range dates {
			out[i] = &models.PoopRecord{Date: d}
		}
		return out
	}

	tests := []struct {
		name  string
		items []*models.PoopRecord
		want  PoopStats
	}{
		{
			name:  "empty",
			items: nil,
			want:  PoopStats{},
		},
		{
			name:  "two today",
			items: records("2024-06-15", "2024-06-15"),
			want:  PoopStats{Total: 2, Today: 2, ThisWeek: 2},
		},
		{
			name:  "week boundary is inclusive",
			items: records("2024-06-08", "2024-06-07"),
			want:  PoopStats{Total: 2, Today: 0, ThisWeek: 1},
		},
		{
			name:  "mixed",
			items: records("2024-06-15", "2024-06-12", "2024-05-01"),
			want:  PoopStats{Total: 3, Today: 1, ThisWeek: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := poopStats(tt.items, now); got != tt.want {
				t.Errorf("poopStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
