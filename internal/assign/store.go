package assign

import (
	"context"
	"database/sql"

	"github.com/mzanotti/restaurant-seating/internal/model"
	"github.com/mzanotti/restaurant-seating/internal/repository"
)

// Store is the persistence seam the coordinator runs on.  Production wires
// the MySQL-backed implementation below; tests substitute an in-memory one.
type Store interface {
	// Begin opens one assignment transaction.
	Begin(ctx context.Context) (Tx, error)
	// ReservationCodeExists reports whether a generated code is already taken.
	ReservationCodeExists(ctx context.Context, code string) (bool, error)
}

// Tx is one assignment transaction.  Reads lock the rows they return; writes
// become visible to other transactions only after Commit.
type Tx interface {
	Commit() error
	Rollback() error

	TableForUpdate(ctx context.Context, id uint64) (*model.Table, error)
	TurnMinutes(ctx context.Context) (int, error)
	OccupyingReservations(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error)
	ReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error)
	CreateReservation(ctx context.Context, rsv *model.Reservation) error
	MoveReservation(ctx context.Context, id, tableID uint64, date, clock string) error
	WaitlistEntryForUpdate(ctx context.Context, id uint64) (*model.WaitlistEntry, error)
	MarkWaitlistSeated(ctx context.Context, id uint64) error
}

// sqlStore adapts *sql.DB plus the shared repositories to the Store seam.
type sqlStore struct {
	db           *sql.DB
	tables       *repository.TableRepo
	reservations *repository.ReservationRepo
	waitlist     *repository.WaitlistRepo
	settings     *repository.SettingsRepo
}

func (s *sqlStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlTx{tx: tx, s: s}, nil
}

func (s *sqlStore) ReservationCodeExists(ctx context.Context, code string) (bool, error) {
	return s.reservations.CodeExists(ctx, code)
}

type sqlTx struct {
	tx *sql.Tx
	s  *sqlStore
}

func (t *sqlTx) Commit() error   { return t.tx.Commit() }
func (t *sqlTx) Rollback() error { return t.tx.Rollback() }

func (t *sqlTx) TableForUpdate(ctx context.Context, id uint64) (*model.Table, error) {
	return t.s.tables.GetByIDTx(ctx, t.tx, id)
}

func (t *sqlTx) TurnMinutes(ctx context.Context) (int, error) {
	return t.s.settings.AvgTurnMinutesTx(ctx, t.tx)
}

func (t *sqlTx) OccupyingReservations(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	return t.s.reservations.ListForTableDateTx(ctx, t.tx, tableID, date)
}

func (t *sqlTx) ReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error) {
	return t.s.reservations.GetByIDTx(ctx, t.tx, id)
}

func (t *sqlTx) CreateReservation(ctx context.Context, rsv *model.Reservation) error {
	return t.s.reservations.CreateTx(ctx, t.tx, rsv)
}

func (t *sqlTx) MoveReservation(ctx context.Context, id, tableID uint64, date, clock string) error {
	return t.s.reservations.AssignTx(ctx, t.tx, id, tableID, date, clock)
}

func (t *sqlTx) WaitlistEntryForUpdate(ctx context.Context, id uint64) (*model.WaitlistEntry, error) {
	return t.s.waitlist.GetByIDTx(ctx, t.tx, id)
}

func (t *sqlTx) MarkWaitlistSeated(ctx context.Context, id uint64) error {
	return t.s.waitlist.MarkSeatedTx(ctx, t.tx, id)
}
