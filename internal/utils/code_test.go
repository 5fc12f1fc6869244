package utils

import (
	"regexp"
	"testing"
)

func TestNewReservationCodeShape(t *testing.T) {
	re := regexp.MustCompile(`^R-[0-9A-Z]{6}$`)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := NewReservationCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !re.MatchString(code) {
			t.Fatalf("code %q does not match R-XXXXXX", code)
		}
		seen[code] = true
	}
	// 200 draws from a 36^6 space should not all collide.
	if len(seen) < 2 {
		t.Error("generator produced a single repeated code")
	}
}
