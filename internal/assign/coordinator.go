// Package assign implements the table assignment coordinator.  It is the
// only code path that binds a reservation to a table: seating a waitlist
// entry creates a confirmed reservation and marks the entry seated in one
// transaction, while assigning an existing reservation updates it in place.
// Before committing, the coordinator re-derives the target table's occupancy
// at the requested time under row locks, so a table that looked free when
// the request was sent is rejected with a conflict if someone else took the
// window first.
package assign

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mzanotti/restaurant-seating/internal/model"
	"github.com/mzanotti/restaurant-seating/internal/occupancy"
	"github.com/mzanotti/restaurant-seating/internal/repository"
	"github.com/mzanotti/restaurant-seating/internal/utils"
)

// ErrInvalidInput marks requests rejected before any locking or I/O.
var ErrInvalidInput = errors.New("invalid assignment input")

// codeRetries bounds how many times a colliding reservation code is
// regenerated before giving up.
const codeRetries = 5

// Request describes one assignment.  Exactly one of WaitlistID and
// ReservationID must be set.  Date and Time are always required: a
// reservation source is moved to the requested slot as part of the
// assignment.
type Request struct {
	TableID       uint64
	WaitlistID    *uint64
	ReservationID *uint64
	Date          string
	Time          string
}

// Coordinator runs assignments.  All instances must share one process-wide
// Coordinator per database, since the per-table serialization lives in the
// in-process keyed lock.
type Coordinator struct {
	store Store
	locks *keyedMutex
}

// NewCoordinator wires a Coordinator over the shared repositories.
func NewCoordinator(db *sql.DB, tables *repository.TableRepo, reservations *repository.ReservationRepo,
	waitlist *repository.WaitlistRepo, settings *repository.SettingsRepo) *Coordinator {
	return &Coordinator{
		store: &sqlStore{
			db:           db,
			tables:       tables,
			reservations: reservations,
			waitlist:     waitlist,
			settings:     settings,
		},
		locks: newKeyedMutex(),
	}
}

// Assign executes one assignment and returns the resulting reservation.
// Validation failures wrap ErrInvalidInput; missing rows surface the
// repository not-found sentinels; an ineligible source or an occupied
// window wraps repository.ErrConflict.  On any error the transaction is
// rolled back and nothing is mutated.
func (c *Coordinator) Assign(ctx context.Context, req Request) (*model.Reservation, error) {
	if (req.WaitlistID == nil) == (req.ReservationID == nil) {
		return nil, fmt.Errorf("%w: exactly one of waitlist_id and reservation_id is required", ErrInvalidInput)
	}
	if req.TableID == 0 {
		return nil, fmt.Errorf("%w: table_id is required", ErrInvalidInput)
	}

	date, clock := req.Date, req.Time
	if !occupancy.ValidDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	probe, err := occupancy.MinuteOfDay(clock)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	clock = clock[:5] // store minute precision

	key := fmt.Sprintf("%d|%s", req.TableID, date)
	c.locks.lock(key)
	defer c.locks.unlock(key)

	tx, err := c.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	table, err := tx.TableForUpdate(ctx, req.TableID)
	if err != nil {
		return nil, err
	}
	if !table.IsActive {
		return nil, fmt.Errorf("%w: table %s is deactivated", repository.ErrConflict, table.Code)
	}
	if table.Status != model.TableAvailable {
		return nil, fmt.Errorf("%w: table %s is %s", repository.ErrConflict, table.Code, table.Status)
	}

	turn, err := tx.TurnMinutes(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.checkWindowTx(ctx, tx, req, table.ID, date, probe, turn); err != nil {
		return nil, err
	}

	var out *model.Reservation
	if req.WaitlistID != nil {
		out, err = c.seatWaitlistTx(ctx, tx, *req.WaitlistID, table.ID, date, clock)
	} else {
		out, err = c.assignReservationTx(ctx, tx, *req.ReservationID, table.ID, date, clock)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return out, nil
}

// checkWindowTx re-derives the table's occupancy at the requested instant
// under row locks.  Two turn windows on the same table conflict when either
// start falls inside the other.
func (c *Coordinator) checkWindowTx(ctx context.Context, tx Tx, req Request, tableID uint64, date string, probe, turn int) error {
	existing, err := tx.OccupyingReservations(ctx, tableID, date)
	if err != nil {
		return err
	}
	for _, rsv := range existing {
		if req.ReservationID != nil && rsv.ID == *req.ReservationID {
			continue
		}
		start, err := occupancy.MinuteOfDay(rsv.Time)
		if err != nil {
			continue
		}
		if windowsOverlap(start, probe, turn) {
			return fmt.Errorf("%w: table occupied by %s at %s", repository.ErrConflict, rsv.Code, rsv.Time)
		}
	}
	return nil
}

func (c *Coordinator) seatWaitlistTx(ctx context.Context, tx Tx, entryID, tableID uint64, date, clock string) (*model.Reservation, error) {
	entry, err := tx.WaitlistEntryForUpdate(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !model.WaitlistEligible(entry.Status) {
		return nil, fmt.Errorf("%w: waitlist entry is %s", repository.ErrConflict, entry.Status)
	}

	code, err := c.freshCode(ctx)
	if err != nil {
		return nil, err
	}
	rsv := &model.Reservation{
		Code:          code,
		CustomerName:  entry.CustomerName,
		CustomerPhone: entry.CustomerPhone,
		Date:          date,
		Time:          clock,
		PartySize:     entry.PartySize,
		Status:        model.ReservationConfirmed,
		TableID:       &tableID,
		Notes:         entry.Notes,
		Source:        model.SourceWaitlist,
	}
	if err := tx.CreateReservation(ctx, rsv); err != nil {
		return nil, err
	}
	if err := tx.MarkWaitlistSeated(ctx, entryID); err != nil {
		return nil, err
	}
	return rsv, nil
}

func (c *Coordinator) assignReservationTx(ctx context.Context, tx Tx, rsvID, tableID uint64, date, clock string) (*model.Reservation, error) {
	rsv, err := tx.ReservationForUpdate(ctx, rsvID)
	if err != nil {
		return nil, err
	}
	switch rsv.Status {
	case model.ReservationPending, model.ReservationConfirmed:
	default:
		return nil, fmt.Errorf("%w: reservation is %s", repository.ErrConflict, rsv.Status)
	}
	if err := tx.MoveReservation(ctx, rsvID, tableID, date, clock); err != nil {
		return nil, err
	}
	rsv.TableID = &tableID
	rsv.Date = date
	rsv.Time = clock
	rsv.Status = model.ReservationConfirmed
	return rsv, nil
}

// windowsOverlap reports whether two turn windows of equal width starting at
// aStart and bStart intersect.  Equivalent to either start falling inside the
// other window.
func windowsOverlap(aStart, bStart, turn int) bool {
	return occupancy.Occupies(aStart, bStart, turn) || occupancy.Occupies(bStart, aStart, turn)
}

// freshCode generates a reservation code not yet in use.  The unique index
// on reservations.code is the real guard; this check just avoids burning a
// transaction on the common collision-free case.
func (c *Coordinator) freshCode(ctx context.Context) (string, error) {
	for i := 0; i < codeRetries; i++ {
		code, err := utils.NewReservationCode()
		if err != nil {
			return "", err
		}
		taken, err := c.store.ReservationCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique reservation code")
}
