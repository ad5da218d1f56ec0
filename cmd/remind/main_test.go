package main

import "testing"

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "08:30", want: "0 30 8 * * *"},
		{in: "00:00", want: "0 0 0 * * *"},
		{in: "23:59", want: "0 59 23 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "8", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := buildDailySpec(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("buildDailySpec(%q) accepted, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("buildDailySpec(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("buildDailySpec(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
