package model

import "time"

// Table statuses set manually by staff.  The computed occupancy view may
// additionally report StatusOccupied, which is never written back to the
// tables row.
const (
	TableAvailable    = "available"
	TableBlocked      = "blocked"
	TableOutOfService = "out_of_service"
	TableOccupied     = "occupied" // derived only
)

// Table shapes used by the floor-plan editor.
const (
	ShapeRound = "round"
	ShapeRect  = "rect"
)

// Table describes a physical dining table.  Position, size and rotation
// are presentation data for the floor plan and carry no business meaning.
// Tables are soft-deleted via IsActive so that historical reservations keep
// a valid table reference.
//
// Fields:
//  ID       – primary key identifier.
//  RoomID   – containing dining room (nil when unassigned).
//  Code     – short human code printed on the table (e.g. "M12").
//  Name     – display name.
//  Capacity – number of covers; always positive.
//  Shape    – round or rect.
//  Status   – manual status set by staff.
//  IsActive – soft-delete flag.
type Table struct {
	ID        uint64    `json:"id"`
	RoomID    *uint64   `json:"room_id,omitempty"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Capacity  uint32    `json:"capacity"`
	Shape     string    `json:"shape"`
	Status    string    `json:"status"` // manual status only
	IsActive  bool      `json:"is_active"`
	X         int32     `json:"x"`
	Y         int32     `json:"y"`
	W         int32     `json:"w"`
	H         int32     `json:"h"`
	Rotation  int32     `json:"rotation"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidTableStatus reports whether s is a status staff may set manually.
func ValidTableStatus(s string) bool {
	switch s {
	case TableAvailable, TableBlocked, TableOutOfService:
		return true
	}
	return false
}

// ValidTableShape reports whether s is a known table shape.
func ValidTableShape(s string) bool {
	return s == ShapeRound || s == ShapeRect
}
