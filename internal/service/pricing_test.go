package service

import "testing"

func TestPrice(t *testing.T) {
	tests := []struct {
		guests uint32
		want   uint32
	}{
		{0, 0},
		{1, 5000},
		{2, 10000},
		{8, 40000},
		{20, 100000},
	}
	for _, tt := range tests {
		if got := Price(tt.guests); got != tt.want {
			t.Errorf("Price(%d) = %d, want %d", tt.guests, got, tt.want)
		}
	}
}
