package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mzanotti/restaurant-seating/internal/model"
)

// CustomerRepo provides data access to the customer directory.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo returns a CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerColumns = `id, name, phone, notes, created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }, c *model.Customer) error {
	var phone, notes sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &phone, &notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	if phone.Valid {
		p := phone.String
		c.Phone = &p
	}
	if notes.Valid {
		n := notes.String
		c.Notes = &n
	}
	return nil
}

// Create inserts a directory record and reads it back.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (name, phone, notes) VALUES (?, ?, ?)`,
		c.Name, c.Phone, c.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return scanCustomer(r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, c.ID), c)
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	var c model.Customer
	err := scanCustomer(r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id), &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Search returns customers whose name or phone contains q, capped at limit.
// An empty q lists the most recently updated records.
func (r *CustomerRepo) Search(ctx context.Context, q string, limit int) ([]model.Customer, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var rows *sql.Rows
	var err error
	if q == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+customerColumns+` FROM customers ORDER BY updated_at DESC LIMIT ?`, limit)
	} else {
		like := "%" + q + "%"
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+customerColumns+` FROM customers
			 WHERE name LIKE ? OR phone LIKE ? ORDER BY name LIMIT ?`, like, like, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a directory record.  Reservations keep their own copy of
// name and phone, so this never touches booking history.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET name = ?, phone = ?, notes = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		c.Name, c.Phone, c.Notes, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCustomerNotFound
	}
	return scanCustomer(r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, c.ID), c)
}

// Delete removes a directory record.  Reservation rows keep their
// denormalized customer fields; only the optional link goes away.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) error {
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
		`UPDATE reservations SET customer_id = NULL WHERE customer_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCustomerNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
