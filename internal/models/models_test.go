package models

import "testing"

func TestVisible(t *testing.T) {
	partner := "u2"
	owned := &Anniversary{UserID: "u1", PartnerID: &partner}
	solo := &Quarrel{UserID: "u1"}

	tests := []struct {
		name   string
		record SharedRecord
		viewer string
		want   bool
	}{
		{"owner sees own record", owned, "u1", true},
		{"partner sees shared record", owned, "u2", true},
		{"stranger does not", owned, "u3", false},
		{"unpaired record visible to owner", solo, "u1", true},
		{"unpaired record hidden from others", solo, "u2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Visible(tt.record, tt.viewer); got != tt.want {
				t.Errorf("Visible(%s) = %v, want %v", tt.viewer, got, tt.want)
			}
		})
	}
}
