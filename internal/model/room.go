package model

import "time"

// Room groups tables on one floor-plan canvas.  It is purely a layout
// container: deleting a room detaches its tables (room_id becomes NULL)
// but never deletes them, so reservation history stays intact.
type Room struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Width      int32     `json:"width"`  // canvas px
	Height     int32     `json:"height"` // canvas px
	Background *string   `json:"background,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
