package model

import "time"

// Customer is a directory record used to prefill reservations.  The
// reservation keeps its own copy of name and phone, so later edits to the
// directory never rewrite history.
type Customer struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
