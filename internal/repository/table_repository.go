package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mzanotti/restaurant-seating/internal/model"
)

// TableRepo provides data access to the tables table.  Tables are never
// physically deleted: Deactivate flips is_active so historical reservations
// keep a resolvable reference.  The persisted status column holds only the
// staff-set manual status; the derived occupancy view is computed elsewhere
// and never written here.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

const tableColumns = `id, room_id, code, name, capacity, shape, status, is_active, x, y, w, h, rotation, notes, created_at, updated_at`

func scanTable(row interface{ Scan(...any) error }, t *model.Table) error {
	var roomID sql.NullInt64
	var notes sql.NullString
	if err := row.Scan(&t.ID, &roomID, &t.Code, &t.Name, &t.Capacity, &t.Shape, &t.Status,
		&t.IsActive, &t.X, &t.Y, &t.W, &t.H, &t.Rotation, &notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return err
	}
	if roomID.Valid {
		id := uint64(roomID.Int64)
		t.RoomID = &id
	}
	if notes.Valid {
		n := notes.String
		t.Notes = &n
	}
	return nil
}

// Create inserts a new table and reads the row back so timestamps and
// defaults are populated.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tables (room_id, code, name, capacity, shape, status, is_active, x, y, w, h, rotation, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RoomID, t.Code, t.Name, t.Capacity, t.Shape, t.Status, t.IsActive,
		t.X, t.Y, t.W, t.H, t.Rotation, t.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return scanTable(r.db.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM tables WHERE id = ?`, t.ID), t)
}

// GetByID retrieves a table by ID regardless of its active flag, so that
// historical references stay resolvable.  Returns ErrTableNotFound when no
// row exists.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	var t model.Table
	err := scanTable(r.db.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM tables WHERE id = ?`, id), &t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetByIDTx is GetByID inside an existing transaction.  The row is read
// FOR UPDATE so concurrent assignments against the same table serialize at
// the store as well.
func (r *TableRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Table, error) {
	var t model.Table
	err := scanTable(tx.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM tables WHERE id = ? FOR UPDATE`, id), &t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListActive returns all active tables, optionally restricted to a room.
func (r *TableRepo) ListActive(ctx context.Context, roomID *uint64) ([]model.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE is_active = TRUE`
	args := []any{}
	if roomID != nil {
		query += ` AND room_id = ?`
		args = append(args, *roomID)
	}
	query += ` ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := scanTable(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the staff-editable fields of a table.  Position fields are
// included because the edit form submits the full record; use Move for
// drag operations.
func (r *TableRepo) Update(ctx context.Context, t *model.Table) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tables
		 SET room_id = ?, code = ?, name = ?, capacity = ?, shape = ?, status = ?, is_active = ?,
		     x = ?, y = ?, w = ?, h = ?, rotation = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		t.RoomID, t.Code, t.Name, t.Capacity, t.Shape, t.Status, t.IsActive,
		t.X, t.Y, t.W, t.H, t.Rotation, t.Notes, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTableNotFound
	}
	return scanTable(r.db.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM tables WHERE id = ?`, t.ID), t)
}

// UpdateStatus sets the manual status only.  Callers validate the value.
func (r *TableRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Table, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tables SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrTableNotFound
	}
	return r.GetByID(ctx, id)
}

// Move updates position, size and rotation without touching business state.
func (r *TableRepo) Move(ctx context.Context, id uint64, x, y, w, h, rotation int32) (*model.Table, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tables SET x = ?, y = ?, w = ?, h = ?, rotation = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		x, y, w, h, rotation, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrTableNotFound
	}
	return r.GetByID(ctx, id)
}

// Deactivate soft-deletes a table.  Reservations referencing it are left
// untouched; the diagnostics scan surfaces them.
func (r *TableRepo) Deactivate(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tables SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTableNotFound
	}
	return nil
}
