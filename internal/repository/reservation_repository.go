package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mzanotti/restaurant-seating/internal/model"
)

// ReservationRepo provides data access to reservations.  The *Tx variants
// take an open transaction so the assignment coordinator can read occupancy
// inputs and write the outcome atomically.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, code, customer_id, customer_name, customer_phone, reservation_date, reservation_time, party_size, status, table_id, notes, source, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }, rsv *model.Reservation) error {
	var customerID, tableID sql.NullInt64
	var phone, notes sql.NullString
	// With parseTime=true the driver hands DATE columns back as time.Time;
	// TIME columns still arrive as "19:00:00" strings.
	var day time.Time
	if err := row.Scan(&rsv.ID, &rsv.Code, &customerID, &rsv.CustomerName, &phone,
		&day, &rsv.Time, &rsv.PartySize, &rsv.Status, &tableID, &notes, &rsv.Source,
		&rsv.CreatedAt, &rsv.UpdatedAt); err != nil {
		return err
	}
	rsv.Date = day.Format("2006-01-02")
	if customerID.Valid {
		id := uint64(customerID.Int64)
		rsv.CustomerID = &id
	}
	if tableID.Valid {
		id := uint64(tableID.Int64)
		rsv.TableID = &id
	}
	if phone.Valid {
		p := phone.String
		rsv.CustomerPhone = &p
	}
	if notes.Valid {
		n := notes.String
		rsv.Notes = &n
	}
	// Keep minute precision on the way out.
	if len(rsv.Time) > 5 {
		rsv.Time = rsv.Time[:5]
	}
	return nil
}

const insertReservationSQL = `INSERT INTO reservations
	(code, customer_id, customer_name, customer_phone, reservation_date, reservation_time, party_size, status, table_id, notes, source)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Create inserts a reservation and reads it back.  The caller supplies a
// freshly generated code.
func (r *ReservationRepo) Create(ctx context.Context, rsv *model.Reservation) error {
	res, err := r.db.ExecContext(ctx, insertReservationSQL,
		rsv.Code, rsv.CustomerID, rsv.CustomerName, rsv.CustomerPhone,
		rsv.Date, rsv.Time, rsv.PartySize, rsv.Status, rsv.TableID, rsv.Notes, rsv.Source)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rsv.ID = uint64(id)
	return scanReservation(r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, rsv.ID), rsv)
}

// CreateTx is Create inside an existing transaction.  Used when seating a
// waitlist entry, where the new reservation and the entry's status change
// must land together.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, rsv *model.Reservation) error {
	res, err := tx.ExecContext(ctx, insertReservationSQL,
		rsv.Code, rsv.CustomerID, rsv.CustomerName, rsv.CustomerPhone,
		rsv.Date, rsv.Time, rsv.PartySize, rsv.Status, rsv.TableID, rsv.Notes, rsv.Source)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rsv.ID = uint64(id)
	return scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, rsv.ID), rsv)
}

// GetByID retrieves a reservation by ID.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	var rsv model.Reservation
	err := scanReservation(r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id), &rsv)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &rsv, nil
}

// GetByIDTx is GetByID with a FOR UPDATE lock inside an existing transaction.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	var rsv model.Reservation
	err := scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ? FOR UPDATE`, id), &rsv)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &rsv, nil
}

// GetByCode retrieves a reservation by its public code.
func (r *ReservationRepo) GetByCode(ctx context.Context, code string) (*model.Reservation, error) {
	var rsv model.Reservation
	err := scanReservation(r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE code = ?`, code), &rsv)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &rsv, nil
}

// CodeExists reports whether a reservation code is already taken.
func (r *ReservationRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM reservations WHERE code = ?`, code).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByDate returns all reservations on a date, optionally filtered by
// status, ordered by time of day.
func (r *ReservationRepo) ListByDate(ctx context.Context, date string, status string) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_date = ?`
	args := []any{date}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY reservation_time, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

// ListOccupying returns the reservations on a date whose status counts
// toward occupancy (pending or confirmed) and that are bound to a table.
// This is the reservation side of an occupancy snapshot.
func (r *ReservationRepo) ListOccupying(ctx context.Context, date string) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
		 WHERE reservation_date = ? AND table_id IS NOT NULL AND status IN (` + statusPlaceholders() + `)
		 ORDER BY reservation_time, id`
	rows, err := r.db.QueryContext(ctx, query, occupancyArgs(date)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

// ListForTableDateTx locks and returns the occupancy-relevant reservations
// for one table on one date.  FOR UPDATE makes concurrent assignments of the
// same table serialize on these rows inside the database as well as behind
// the coordinator's lock.
func (r *ReservationRepo) ListForTableDateTx(ctx context.Context, tx *sql.Tx, tableID uint64, date string) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
		 WHERE table_id = ? AND reservation_date = ? AND status IN (` + statusPlaceholders() + `)
		 ORDER BY reservation_time, id FOR UPDATE`
	args := append([]any{tableID, date}, statusArgs()...)
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

// AssignTx binds an existing reservation to a table at the requested slot
// and confirms it, in place, inside the given transaction.
func (r *ReservationRepo) AssignTx(ctx context.Context, tx *sql.Tx, id, tableID uint64, date, clock string) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE reservations
		 SET table_id = ?, reservation_date = ?, reservation_time = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		tableID, date, clock, model.ReservationConfirmed, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// UpdateStatus transitions a reservation's lifecycle status.  Unassigning
// happens alongside cancellation at the handler layer, not here.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Reservation, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrReservationNotFound
	}
	return r.GetByID(ctx, id)
}

// Unassign detaches a reservation from its table and returns it to pending.
func (r *ReservationRepo) Unassign(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET table_id = NULL, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		model.ReservationPending, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrReservationNotFound
	}
	return r.GetByID(ctx, id)
}

// Update rewrites the staff-editable fields of a reservation.  Code, status,
// table binding and source are managed by dedicated operations.
func (r *ReservationRepo) Update(ctx context.Context, rsv *model.Reservation) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations
		 SET customer_id = ?, customer_name = ?, customer_phone = ?, reservation_date = ?,
		     reservation_time = ?, party_size = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		rsv.CustomerID, rsv.CustomerName, rsv.CustomerPhone, rsv.Date,
		rsv.Time, rsv.PartySize, rsv.Notes, rsv.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return scanReservation(r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, rsv.ID), rsv)
}

// ListOrphaned returns non-terminal reservations whose table reference
// points at a deactivated or missing table.  Used by the diagnostics scan.
func (r *ReservationRepo) ListOrphaned(ctx context.Context) ([]model.Reservation, error) {
	query := `SELECT ` + prefixColumns("r", reservationColumns) + ` FROM reservations r
		 LEFT JOIN tables t ON t.id = r.table_id
		 WHERE r.table_id IS NOT NULL
		   AND r.status IN (` + statusPlaceholders() + `)
		   AND (t.id IS NULL OR t.is_active = FALSE)
		 ORDER BY r.reservation_date, r.reservation_time`
	rows, err := r.db.QueryContext(ctx, query, statusArgs()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var rsv model.Reservation
		if err := scanReservation(rows, &rsv); err != nil {
			return nil, err
		}
		out = append(out, rsv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func statusPlaceholders() string {
	return strings.TrimSuffix(strings.Repeat("?, ", len(model.OccupancyStatuses)), ", ")
}

func statusArgs() []any {
	args := make([]any, len(model.OccupancyStatuses))
	for i, s := range model.OccupancyStatuses {
		args[i] = s
	}
	return args
}

func occupancyArgs(date string) []any {
	return append([]any{date}, statusArgs()...)
}

func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}
