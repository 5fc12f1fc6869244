package model

import "testing"

func TestValidReservationTransition(t *testing.T) {
	cases := []struct {
		action string
		from   string
		want   bool
	}{
		{"confirm", ReservationPending, true},
		{"confirm", ReservationConfirmed, false},
		{"confirm", ReservationCancelled, false},
		{"unassign", ReservationConfirmed, true},
		{"unassign", ReservationPending, false},
		{"cancel", ReservationPending, true},
		{"cancel", ReservationConfirmed, true},
		{"cancel", ReservationCompleted, false},
		{"cancel", ReservationCancelled, false},
		{"complete", ReservationConfirmed, true},
		{"complete", ReservationPending, false},
		{"no_show", ReservationConfirmed, true},
		{"no_show", ReservationNoShow, false},
		{"teleport", ReservationPending, false},
	}
	for _, tc := range cases {
		if got := ValidReservationTransition(tc.action, tc.from); got != tc.want {
			t.Errorf("ValidReservationTransition(%q, %q) = %v, want %v", tc.action, tc.from, got, tc.want)
		}
	}
}

func TestWaitlistEligible(t *testing.T) {
	eligible := map[string]bool{
		WaitlistWaiting:   true,
		WaitlistContacted: true,
		WaitlistSeated:    false,
		WaitlistCancelled: false,
	}
	for status, want := range eligible {
		if got := WaitlistEligible(status); got != want {
			t.Errorf("WaitlistEligible(%q) = %v, want %v", status, got, want)
		}
	}
}
