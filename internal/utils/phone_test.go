package utils

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"072 123 4567", "0721234567"},
		{"(021) 555-0199", "0215550199"},
		{"+27-82-123-4567", "+27821234567"},
		{"0821234567", "0821234567"},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0821234567", true},
		{"+27821234567", true},
		{"(021) 555-0199", true}, // separators stripped before matching
		{"12", true},             // minimum length
		{"1", false},             // too short
		{"", false},
		{"phone", false},
		{"082-123-456x", false},     // trailing letter survives normalization
		{"123456789012345", true},   // 15 digits, at the column limit
		{"1234567890123456", false}, // 16 digits
		{"+123456789012345", false}, // plus pushes it past the limit
	}
	for _, tt := range tests {
		if got := ValidPhone(tt.in); got != tt.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
