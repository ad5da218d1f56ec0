package postgres

import "testing"

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero passes through as unlimited", 0, 0},
		{"negative treated as unlimited", -5, 0},
		{"normal page size kept", 50, 50},
		{"upper bound kept", 500, 500},
		{"oversized request capped", 9999, 500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampLimit(tc.in); got != tc.want {
				t.Errorf("clampLimit(%d) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}
