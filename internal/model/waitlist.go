package model

import "time"

// Waitlist statuses.  Only waiting and contacted entries may be seated;
// seated and cancelled are terminal.
const (
	WaitlistWaiting   = "waiting"
	WaitlistContacted = "contacted"
	WaitlistSeated    = "seated"
	WaitlistCancelled = "cancelled"
)

// WaitlistEntry is a walk-in party queued for a table.  An entry becomes
// seated only as a side effect of a successful table assignment, which
// also creates the corresponding reservation in the same transaction.
type WaitlistEntry struct {
	ID            uint64    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	PartySize     uint32    `json:"party_size"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidWaitlistStatus reports whether s is a known waitlist status.
func ValidWaitlistStatus(s string) bool {
	switch s {
	case WaitlistWaiting, WaitlistContacted, WaitlistSeated, WaitlistCancelled:
		return true
	}
	return false
}

// WaitlistEligible reports whether an entry in status s may be assigned
// to a table.
func WaitlistEligible(s string) bool {
	return s == WaitlistWaiting || s == WaitlistContacted
}
