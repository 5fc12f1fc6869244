package model

import "time"

// Reservation statuses.  pending and confirmed count toward occupancy;
// cancelled, completed and no_show are terminal.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
	ReservationNoShow    = "no_show"
)

// Reservation sources record how a booking entered the system.
const (
	SourceManual   = "manual"
	SourceWaitlist = "waitlist"
	SourceWhatsapp = "whatsapp"
	SourceWeb      = "web"
)

// Reservation records a booking for a party at a given date and time.
// Customer name and phone are denormalized at creation time; CustomerID
// optionally links back to the directory but is never re-synced.  TableID
// is nil until the reservation has been placed on a table.  Date is stored
// as YYYY-MM-DD and Time as HH:MM (minute precision), matching the DATE and
// TIME columns.
//
// Fields:
//  ID            – primary key identifier.
//  Code          – generated human-readable code (e.g. "R-7K2QMD").
//  CustomerID    – optional link to the customer directory.
//  CustomerName  – denormalized customer name.
//  CustomerPhone – denormalized phone (nil when unknown).
//  Date          – reservation date, YYYY-MM-DD.
//  Time          – reservation time of day, HH:MM.
//  PartySize     – number of covers; always positive.
//  Status        – lifecycle status.
//  TableID       – assigned table (nil when unassigned).
//  Source        – origin of the booking.
type Reservation struct {
	ID            uint64    `json:"id"`
	Code          string    `json:"code"`
	CustomerID    *uint64   `json:"customer_id,omitempty"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Time          string    `json:"time"` // HH:MM
	PartySize     uint32    `json:"party_size"`
	Status        string    `json:"status"`
	TableID       *uint64   `json:"table_id,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidReservationStatus reports whether s is a known reservation status.
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled,
		ReservationCompleted, ReservationNoShow:
		return true
	}
	return false
}

// ValidReservationSource reports whether s is a known booking source.
func ValidReservationSource(s string) bool {
	switch s {
	case SourceManual, SourceWaitlist, SourceWhatsapp, SourceWeb:
		return true
	}
	return false
}

// OccupancyStatuses are the reservation statuses that occupy a table.
var OccupancyStatuses = []string{ReservationPending, ReservationConfirmed}
