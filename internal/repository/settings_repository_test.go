package repository

import "testing"

// The turn duration falls back to 60 whenever the stored value cannot be
// used as a positive minute count.
func TestParseTurnMinutes(t *testing.T) {
	cases := []struct {
		raw     string
		present bool
		want    int
	}{
		{"", false, 60},
		{"90", true, 90},
		{"45", true, 45},
		{"0", true, 60},
		{"-30", true, 60},
		{"ninety", true, 60},
		{"", true, 60},
	}
	for _, tc := range cases {
		if got := parseTurnMinutes(tc.raw, tc.present); got != tc.want {
			t.Errorf("parseTurnMinutes(%q, %v) = %d, want %d", tc.raw, tc.present, got, tc.want)
		}
	}
}
