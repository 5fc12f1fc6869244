package model

import (
	"testing"
	"time"
)

// A refresh token authenticates only while unrevoked and unexpired; either
// guard alone is enough to reject it.
func TestRefreshTokenUsable(t *testing.T) {
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	revoked := now.Add(-time.Hour)

	cases := []struct {
		name  string
		token RefreshToken
		want  bool
	}{
		{"live", RefreshToken{ExpiresAt: now.Add(24 * time.Hour)}, true},
		{"expired", RefreshToken{ExpiresAt: now.Add(-time.Minute)}, false},
		{"expires this instant", RefreshToken{ExpiresAt: now}, false},
		{"revoked", RefreshToken{ExpiresAt: now.Add(24 * time.Hour), RevokedAt: &revoked}, false},
		{"revoked and expired", RefreshToken{ExpiresAt: now.Add(-time.Minute), RevokedAt: &revoked}, false},
	}
	for _, tc := range cases {
		if got := tc.token.Usable(now); got != tc.want {
			t.Errorf("%s: Usable = %v, want %v", tc.name, got, tc.want)
		}
	}
}
