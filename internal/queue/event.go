// Package queue defines message payloads exchanged over the message broker.
package queue

// TableAssignedEvent is published after a table assignment commits.  It
// carries enough for downstream consumers to log or notify without querying
// the primary database.
type TableAssignedEvent struct {
	ReservationID   uint64 `json:"reservation_id"`
	ReservationCode string `json:"reservation_code"`
	TableID         uint64 `json:"table_id"`
	TableCode       string `json:"table_code"`
	CustomerName    string `json:"customer_name"`
	PartySize       uint32 `json:"party_size"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Source          string `json:"source"`
	WaitlistID      uint64 `json:"waitlist_id,omitempty"`
	AssignedAt      string `json:"assigned_at"`
}
