package repository

import (
	"errors"
	"testing"
	"time"
)

func TestCombineDateTime(t *testing.T) {
	tests := []struct {
		date  string
		clock string
		want  string
		ok    bool
	}{
		{"2025-07-04", "18:30", "2025-07-04T18:30:00Z", true},
		{"2025-07-04", "18:30:45", "2025-07-04T18:30:45Z", true},
		{"2025-12-31", "00:00", "2025-12-31T00:00:00Z", true},
		{"2025-12-31", "23:59:59", "2025-12-31T23:59:59Z", true},
		{"not-a-date", "18:30", "", false},
		{"2025-07-04", "6pm", "", false},
		{"2025-07-04", "", "", false},
	}
	for _, tt := range tests {
		got, err := combineDateTime(tt.date, tt.clock)
		if tt.ok != (err == nil) {
			t.Errorf("combineDateTime(%q, %q) err = %v", tt.date, tt.clock, err)
			continue
		}
		if tt.ok && got.Format(time.RFC3339) != tt.want {
			t.Errorf("combineDateTime(%q, %q) = %s, want %s",
				tt.date, tt.clock, got.Format(time.RFC3339), tt.want)
		}
	}
}

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("Error 1062 (23000): Duplicate entry '3-2025-07-04' for key 'uq_table_date'"), true},
		{errors.New("Error 1452: Cannot add or update a child row"), false},
		{errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		if got := isDuplicateKey(tt.err); got != tt.want {
			t.Errorf("isDuplicateKey(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
