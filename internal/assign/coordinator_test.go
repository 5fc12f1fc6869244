package assign

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/mzanotti/restaurant-seating/internal/model"
	"github.com/mzanotti/restaurant-seating/internal/repository"
)

func uptr(v uint64) *uint64 { return &v }
func sptr(s string) *string { return &s }

// memStore is an in-memory Store for coordinator tests.  Writes are staged
// on the transaction and applied only on Commit, so a rolled back assignment
// leaves the store untouched.
type memStore struct {
	mu           sync.Mutex
	turn         int
	nextID       uint64
	tables       map[uint64]model.Table
	reservations map[uint64]model.Reservation
	waitlist     map[uint64]model.WaitlistEntry
}

func newMemStore(turn int) *memStore {
	return &memStore{
		turn:         turn,
		nextID:       100,
		tables:       map[uint64]model.Table{},
		reservations: map[uint64]model.Reservation{},
		waitlist:     map[uint64]model.WaitlistEntry{},
	}
}

func (s *memStore) Begin(ctx context.Context) (Tx, error) {
	return &memTx{s: s}, nil
}

func (s *memStore) ReservationCodeExists(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reservations {
		if r.Code == code {
			return true, nil
		}
	}
	return false, nil
}

type moveOp struct {
	id, tableID uint64
	date, clock string
}

type memTx struct {
	s       *memStore
	created []*model.Reservation
	moves   []moveOp
	seated  []uint64
}

func (t *memTx) Commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, rsv := range t.created {
		t.s.reservations[rsv.ID] = *rsv
	}
	for _, m := range t.moves {
		rsv := t.s.reservations[m.id]
		tid := m.tableID
		rsv.TableID = &tid
		rsv.Date = m.date
		rsv.Time = m.clock
		rsv.Status = model.ReservationConfirmed
		t.s.reservations[m.id] = rsv
	}
	for _, id := range t.seated {
		e := t.s.waitlist[id]
		e.Status = model.WaitlistSeated
		t.s.waitlist[id] = e
	}
	return nil
}

func (t *memTx) Rollback() error { return nil }

func (t *memTx) TableForUpdate(ctx context.Context, id uint64) (*model.Table, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	tb, ok := t.s.tables[id]
	if !ok {
		return nil, repository.ErrTableNotFound
	}
	return &tb, nil
}

func (t *memTx) TurnMinutes(ctx context.Context) (int, error) { return t.s.turn, nil }

func (t *memTx) OccupyingReservations(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []model.Reservation
	for _, r := range t.s.reservations {
		if r.TableID == nil || *r.TableID != tableID || r.Date != date {
			continue
		}
		if r.Status == model.ReservationPending || r.Status == model.ReservationConfirmed {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t *memTx) ReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	r, ok := t.s.reservations[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	return &r, nil
}

func (t *memTx) CreateReservation(ctx context.Context, rsv *model.Reservation) error {
	t.s.mu.Lock()
	t.s.nextID++
	rsv.ID = t.s.nextID
	t.s.mu.Unlock()
	t.created = append(t.created, rsv)
	return nil
}

func (t *memTx) MoveReservation(ctx context.Context, id, tableID uint64, date, clock string) error {
	t.moves = append(t.moves, moveOp{id: id, tableID: tableID, date: date, clock: clock})
	return nil
}

func (t *memTx) WaitlistEntryForUpdate(ctx context.Context, id uint64) (*model.WaitlistEntry, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	e, ok := t.s.waitlist[id]
	if !ok {
		return nil, repository.ErrWaitlistNotFound
	}
	return &e, nil
}

func (t *memTx) MarkWaitlistSeated(ctx context.Context, id uint64) error {
	t.seated = append(t.seated, id)
	return nil
}

func testCoordinator(ms *memStore) *Coordinator {
	return &Coordinator{store: ms, locks: newKeyedMutex()}
}

func seedTable(ms *memStore, id uint64) {
	ms.tables[id] = model.Table{ID: id, Code: "M1", Name: "Table", Capacity: 4,
		Shape: model.ShapeRound, Status: model.TableAvailable, IsActive: true}
}

// Input validation happens before any locking or I/O, so a Coordinator with
// no database is enough to exercise it.
func TestAssignInputValidation(t *testing.T) {
	c := NewCoordinator(nil, nil, nil, nil, nil)
	cases := []struct {
		name string
		req  Request
	}{
		{"neither source", Request{TableID: 1, Date: "2026-03-14", Time: "19:00"}},
		{"both sources", Request{TableID: 1, WaitlistID: uptr(1), ReservationID: uptr(2), Date: "2026-03-14", Time: "19:00"}},
		{"missing table", Request{WaitlistID: uptr(1), Date: "2026-03-14", Time: "19:00"}},
		{"bad date", Request{TableID: 1, WaitlistID: uptr(1), Date: "14/03/2026", Time: "19:00"}},
		{"bad time", Request{TableID: 1, WaitlistID: uptr(1), Date: "2026-03-14", Time: "7pm"}},
	}
	for _, tc := range cases {
		_, err := c.Assign(context.Background(), tc.req)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: err = %v, want ErrInvalidInput", tc.name, err)
		}
	}
}

// Seating a waitlist entry creates exactly one confirmed reservation with
// the entry's fields copied over, and marks the entry seated, atomically.
func TestAssignSeatsWaitlistEntry(t *testing.T) {
	ms := newMemStore(60)
	seedTable(ms, 1)
	ms.waitlist[5] = model.WaitlistEntry{
		ID: 5, CustomerName: "Ana", CustomerPhone: sptr("555-0101"),
		PartySize: 4, Status: model.WaitlistWaiting, Notes: sptr("window seat"),
	}
	c := testCoordinator(ms)

	rsv, err := c.Assign(context.Background(), Request{
		TableID: 1, WaitlistID: uptr(5), Date: "2026-03-14", Time: "19:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsv.Status != model.ReservationConfirmed || rsv.Source != model.SourceWaitlist {
		t.Errorf("status=%s source=%s, want confirmed/waitlist", rsv.Status, rsv.Source)
	}
	if rsv.TableID == nil || *rsv.TableID != 1 {
		t.Error("reservation not bound to table 1")
	}
	if rsv.Date != "2026-03-14" || rsv.Time != "19:00" {
		t.Errorf("slot = %s %s, want 2026-03-14 19:00", rsv.Date, rsv.Time)
	}
	if rsv.CustomerName != "Ana" || rsv.CustomerPhone == nil || *rsv.CustomerPhone != "555-0101" {
		t.Error("customer fields not copied from the entry")
	}
	if rsv.PartySize != 4 || rsv.Notes == nil || *rsv.Notes != "window seat" {
		t.Error("party size or notes not copied from the entry")
	}
	if !strings.HasPrefix(rsv.Code, "R-") {
		t.Errorf("code = %q, want R- prefix", rsv.Code)
	}
	if len(ms.reservations) != 1 {
		t.Errorf("store holds %d reservations, want exactly 1", len(ms.reservations))
	}
	if ms.waitlist[5].Status != model.WaitlistSeated {
		t.Errorf("entry status = %s, want seated", ms.waitlist[5].Status)
	}
}

// Assigning an existing reservation updates it in place: same id, moved to
// the requested slot and confirmed, and no new record appears.
func TestAssignMovesReservationInPlace(t *testing.T) {
	ms := newMemStore(60)
	seedTable(ms, 1)
	ms.reservations[9] = model.Reservation{
		ID: 9, Code: "R-AAAAAA", CustomerName: "Bruno", Date: "2026-03-14",
		Time: "18:00", PartySize: 2, Status: model.ReservationPending, Source: model.SourceManual,
	}
	c := testCoordinator(ms)

	rsv, err := c.Assign(context.Background(), Request{
		TableID: 1, ReservationID: uptr(9), Date: "2026-03-14", Time: "20:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsv.ID != 9 {
		t.Errorf("reservation id = %d, want 9 (in place)", rsv.ID)
	}
	if len(ms.reservations) != 1 {
		t.Errorf("store holds %d reservations, want 1 (no new record)", len(ms.reservations))
	}
	stored := ms.reservations[9]
	if stored.TableID == nil || *stored.TableID != 1 {
		t.Error("stored reservation not bound to table 1")
	}
	if stored.Date != "2026-03-14" || stored.Time != "20:00" {
		t.Errorf("stored slot = %s %s, want 2026-03-14 20:00", stored.Date, stored.Time)
	}
	if stored.Status != model.ReservationConfirmed {
		t.Errorf("stored status = %s, want confirmed", stored.Status)
	}
}

// An already-seated entry is a conflict and the failed assignment mutates
// nothing: no reservation is created and the entry keeps its status.
func TestAssignSeatedEntryConflictNoMutation(t *testing.T) {
	ms := newMemStore(60)
	seedTable(ms, 1)
	ms.waitlist[5] = model.WaitlistEntry{
		ID: 5, CustomerName: "Ana", PartySize: 4, Status: model.WaitlistSeated,
	}
	c := testCoordinator(ms)

	_, err := c.Assign(context.Background(), Request{
		TableID: 1, WaitlistID: uptr(5), Date: "2026-03-14", Time: "19:00",
	})
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if len(ms.reservations) != 0 {
		t.Errorf("store holds %d reservations after a rejected assignment, want 0", len(ms.reservations))
	}
	if ms.waitlist[5].Status != model.WaitlistSeated {
		t.Errorf("entry status = %s, want untouched seated", ms.waitlist[5].Status)
	}
}

// A window already occupied on the table is a conflict: the entry stays in
// the queue and the occupying reservation is named in the error.
func TestAssignOccupiedWindowConflict(t *testing.T) {
	ms := newMemStore(60)
	seedTable(ms, 1)
	ms.reservations[9] = model.Reservation{
		ID: 9, Code: "R-BBBBBB", CustomerName: "Bruno", Date: "2026-03-14",
		Time: "19:00", PartySize: 2, Status: model.ReservationConfirmed,
		TableID: uptr(1), Source: model.SourceManual,
	}
	ms.waitlist[5] = model.WaitlistEntry{
		ID: 5, CustomerName: "Ana", PartySize: 4, Status: model.WaitlistWaiting,
	}
	c := testCoordinator(ms)

	_, err := c.Assign(context.Background(), Request{
		TableID: 1, WaitlistID: uptr(5), Date: "2026-03-14", Time: "19:30",
	})
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if !strings.Contains(err.Error(), "R-BBBBBB") {
		t.Errorf("error %q does not name the occupying reservation", err)
	}
	if len(ms.reservations) != 1 || ms.waitlist[5].Status != model.WaitlistWaiting {
		t.Error("rejected assignment mutated the store")
	}
}

// Two concurrent assignments with overlapping windows on the same table:
// at most one succeeds, the other gets a conflict, and only one entry is
// seated.
func TestAssignConcurrentOverlapOneWinner(t *testing.T) {
	ms := newMemStore(60)
	seedTable(ms, 1)
	ms.waitlist[5] = model.WaitlistEntry{ID: 5, CustomerName: "Ana", PartySize: 2, Status: model.WaitlistWaiting}
	ms.waitlist[6] = model.WaitlistEntry{ID: 6, CustomerName: "Bia", PartySize: 2, Status: model.WaitlistWaiting}
	c := testCoordinator(ms)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, req := range []Request{
		{TableID: 1, WaitlistID: uptr(5), Date: "2026-03-14", Time: "19:00"},
		{TableID: 1, WaitlistID: uptr(6), Date: "2026-03-14", Time: "19:30"},
	} {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			_, errs[i] = c.Assign(context.Background(), req)
		}(i, req)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, repository.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("wins=%d conflicts=%d, want exactly one of each", wins, conflicts)
	}
	if len(ms.reservations) != 1 {
		t.Errorf("store holds %d reservations, want 1", len(ms.reservations))
	}
	seated := 0
	for _, e := range ms.waitlist {
		if e.Status == model.WaitlistSeated {
			seated++
		}
	}
	if seated != 1 {
		t.Errorf("%d entries seated, want 1", seated)
	}
}

// Two turn windows conflict when either start falls inside the other.
func TestWindowsOverlap(t *testing.T) {
	cases := []struct {
		a, b, turn int
		want       bool
	}{
		{1140, 1140, 60, true},  // same slot
		{1140, 1170, 60, true},  // second starts mid-window
		{1170, 1140, 60, true},  // symmetric
		{1140, 1200, 60, false}, // back to back, half-open windows
		{1200, 1140, 60, false},
		{1140, 1199, 60, true}, // one minute of overlap
		{1140, 1155, 30, true},
		{1140, 1170, 30, false},
	}
	for _, tc := range cases {
		if got := windowsOverlap(tc.a, tc.b, tc.turn); got != tc.want {
			t.Errorf("windowsOverlap(%d, %d, %d) = %v, want %v", tc.a, tc.b, tc.turn, got, tc.want)
		}
	}
}

// Conflicts and not-found failures map to different HTTP statuses, so the
// sentinels must stay distinguishable.
func TestSentinelsDistinct(t *testing.T) {
	if errors.Is(repository.ErrConflict, repository.ErrTableNotFound) {
		t.Error("ErrConflict must not match ErrTableNotFound")
	}
}
