package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mzanotti/restaurant-seating/internal/model"
)

// RoomRepo provides methods to create and retrieve dining rooms.  Rooms are
// layout containers only: deleting one detaches its tables instead of
// removing them, so reservations keep valid table references.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, name, width, height, background, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }, r *model.Room) error {
	var background sql.NullString
	if err := row.Scan(&r.ID, &r.Name, &r.Width, &r.Height, &background, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return err
	}
	if background.Valid {
		b := background.String
		r.Background = &b
	}
	return nil
}

// Create inserts a new room and reads the row back to populate defaults.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO dining_rooms (name, width, height, background) VALUES (?, ?, ?, ?)`,
		room.Name, room.Width, room.Height, room.Background)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	return scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM dining_rooms WHERE id = ?`, room.ID), room)
}

// GetByID retrieves a room by its ID.  It returns ErrRoomNotFound when no
// row exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	var room model.Room
	err := scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM dining_rooms WHERE id = ?`, id), &room)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// ListAll returns every room ordered by name.
func (r *RoomRepo) ListAll(ctx context.Context) ([]*model.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM dining_rooms ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Room
	for rows.Next() {
		room := new(model.Room)
		if err := scanRoom(rows, room); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a room's name, canvas dimensions and background.
// Returns ErrRoomNotFound when the row does not exist.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE dining_rooms SET name = ?, width = ?, height = ?, background = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		room.Name, room.Width, room.Height, room.Background, room.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM dining_rooms WHERE id = ?`, room.ID), room)
}

// Delete removes a room after detaching its tables.  Both writes happen in
// one transaction so a failure cannot leave tables pointing at a missing
// room.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`UPDATE tables SET room_id = NULL, updated_at = CURRENT_TIMESTAMP WHERE room_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM dining_rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
