package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mzanotti/restaurant-seating/internal/model"
)

// WaitlistRepo provides data access to the walk-in queue.
type WaitlistRepo struct {
	db *sql.DB
}

// NewWaitlistRepo returns a WaitlistRepo bound to the given database.
func NewWaitlistRepo(db *sql.DB) *WaitlistRepo { return &WaitlistRepo{db: db} }

const waitlistColumns = `id, customer_name, customer_phone, party_size, status, notes, created_at, updated_at`

func scanWaitlist(row interface{ Scan(...any) error }, e *model.WaitlistEntry) error {
	var phone, notes sql.NullString
	if err := row.Scan(&e.ID, &e.CustomerName, &phone, &e.PartySize, &e.Status,
		&notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return err
	}
	if phone.Valid {
		p := phone.String
		e.CustomerPhone = &p
	}
	if notes.Valid {
		n := notes.String
		e.Notes = &n
	}
	return nil
}

// Create inserts a new waitlist entry in waiting status.
func (r *WaitlistRepo) Create(ctx context.Context, e *model.WaitlistEntry) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO waitlist (customer_name, customer_phone, party_size, status, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		e.CustomerName, e.CustomerPhone, e.PartySize, e.Status, e.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return scanWaitlist(r.db.QueryRowContext(ctx,
		`SELECT `+waitlistColumns+` FROM waitlist WHERE id = ?`, e.ID), e)
}

// GetByID retrieves a waitlist entry by ID.
func (r *WaitlistRepo) GetByID(ctx context.Context, id uint64) (*model.WaitlistEntry, error) {
	var e model.WaitlistEntry
	err := scanWaitlist(r.db.QueryRowContext(ctx,
		`SELECT `+waitlistColumns+` FROM waitlist WHERE id = ?`, id), &e)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWaitlistNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetByIDTx is GetByID with a FOR UPDATE lock, so the assignment
// transaction sees the entry's current status and no one else can seat it
// concurrently.
func (r *WaitlistRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.WaitlistEntry, error) {
	var e model.WaitlistEntry
	err := scanWaitlist(tx.QueryRowContext(ctx,
		`SELECT `+waitlistColumns+` FROM waitlist WHERE id = ? FOR UPDATE`, id), &e)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWaitlistNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns waitlist entries, optionally filtered by status, oldest
// first so the queue reads in arrival order.
func (r *WaitlistRepo) List(ctx context.Context, status string) ([]model.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.WaitlistEntry, 0)
	for rows.Next() {
		var e model.WaitlistEntry
		if err := scanWaitlist(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the staff-editable fields of an entry.  Seating happens
// through MarkSeatedTx only.
func (r *WaitlistRepo) Update(ctx context.Context, e *model.WaitlistEntry) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE waitlist SET customer_name = ?, customer_phone = ?, party_size = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		e.CustomerName, e.CustomerPhone, e.PartySize, e.Notes, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrWaitlistNotFound
	}
	return scanWaitlist(r.db.QueryRowContext(ctx,
		`SELECT `+waitlistColumns+` FROM waitlist WHERE id = ?`, e.ID), e)
}

// UpdateStatus moves an entry between the non-seated statuses (contacted,
// cancelled, back to waiting).
func (r *WaitlistRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.WaitlistEntry, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE waitlist SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrWaitlistNotFound
	}
	return r.GetByID(ctx, id)
}

// MarkSeatedTx flips an entry to seated inside the assignment transaction.
func (r *WaitlistRepo) MarkSeatedTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE waitlist SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		model.WaitlistSeated, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrWaitlistNotFound
	}
	return nil
}
