package occupancy

import (
	"reflect"
	"testing"

	"github.com/mzanotti/restaurant-seating/internal/model"
)

func uptr(v uint64) *uint64 { return &v }

func table(id uint64, status string) model.Table {
	return model.Table{ID: id, Code: "M1", Name: "Table", Capacity: 4, Shape: model.ShapeRound, Status: status, IsActive: true}
}

func reservation(id, tableID uint64, clock, status string) model.Reservation {
	return model.Reservation{
		ID: id, Code: "R-TEST01", CustomerName: "Ana", Date: "2026-03-14",
		Time: clock, PartySize: 2, Status: status, TableID: uptr(tableID), Source: model.SourceManual,
	}
}

func TestMinuteOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"19:00", 1140, false},
		{"23:59", 1439, false},
		{"19:00:30", 1140, false},
		{"19:00:99", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"7:30", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := MinuteOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("MinuteOfDay(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("MinuteOfDay(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("MinuteOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2026-03-14") {
		t.Error("expected 2026-03-14 to be valid")
	}
	for _, bad := range []string{"14/03/2026", "2026-3-14", "tomorrow", ""} {
		if ValidDate(bad) {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}

// A reservation at 19:00 with a 60 minute turn occupies [19:00, 20:00).
func TestSnapshotWindowBoundaries(t *testing.T) {
	tables := []model.Table{table(1, model.TableAvailable)}
	rsvs := []model.Reservation{reservation(10, 1, "19:00", model.ReservationConfirmed)}

	occupied := []string{"19:00", "19:30", "19:59"}
	free := []string{"18:59", "20:00"}

	for _, clock := range occupied {
		probe, _ := MinuteOfDay(clock)
		got := Snapshot(tables, rsvs, probe, 60)
		if got[0].EffectiveStatus != model.TableOccupied || got[0].Reason != ReasonReservation {
			t.Errorf("probe %s: status=%s reason=%s, want occupied/reservation", clock, got[0].EffectiveStatus, got[0].Reason)
		}
		if got[0].ActiveReservation == nil || got[0].ActiveReservation.ID != 10 {
			t.Errorf("probe %s: missing active reservation", clock)
		}
	}
	for _, clock := range free {
		probe, _ := MinuteOfDay(clock)
		got := Snapshot(tables, rsvs, probe, 60)
		if got[0].EffectiveStatus != model.TableAvailable || got[0].Reason != ReasonManual {
			t.Errorf("probe %s: status=%s reason=%s, want available/manual", clock, got[0].EffectiveStatus, got[0].Reason)
		}
		if got[0].ActiveReservation != nil {
			t.Errorf("probe %s: unexpected active reservation", clock)
		}
	}
}

// Manual blocked/out_of_service statuses win over any reservation.
func TestSnapshotManualOverride(t *testing.T) {
	for _, manual := range []string{model.TableBlocked, model.TableOutOfService} {
		tables := []model.Table{table(1, manual)}
		rsvs := []model.Reservation{reservation(10, 1, "19:00", model.ReservationConfirmed)}
		probe, _ := MinuteOfDay("19:30")
		got := Snapshot(tables, rsvs, probe, 60)
		if got[0].EffectiveStatus != manual {
			t.Errorf("manual %s: effective=%s, want %s", manual, got[0].EffectiveStatus, manual)
		}
		if got[0].Reason != ReasonManual {
			t.Errorf("manual %s: reason=%s, want manual", manual, got[0].Reason)
		}
		if got[0].ActiveReservation != nil {
			t.Errorf("manual %s: reservation must not be reported", manual)
		}
	}
}

// Reservations without a table never contribute to occupancy.
func TestSnapshotSkipsUnassignedReservations(t *testing.T) {
	tables := []model.Table{table(1, model.TableAvailable)}
	floating := reservation(10, 1, "19:00", model.ReservationConfirmed)
	floating.TableID = nil
	probe, _ := MinuteOfDay("19:00")
	got := Snapshot(tables, []model.Reservation{floating}, probe, 60)
	if got[0].EffectiveStatus != model.TableAvailable {
		t.Errorf("effective=%s, want available", got[0].EffectiveStatus)
	}
}

// Overlapping reservations report the first in iteration order.
func TestSnapshotOverlapTieBreak(t *testing.T) {
	tables := []model.Table{table(1, model.TableAvailable)}
	rsvs := []model.Reservation{
		reservation(10, 1, "19:00", model.ReservationConfirmed),
		reservation(11, 1, "19:30", model.ReservationPending),
	}
	probe, _ := MinuteOfDay("19:45")
	got := Snapshot(tables, rsvs, probe, 60)
	if got[0].ActiveReservation == nil {
		t.Fatal("expected an active reservation")
	}
	if got[0].ActiveReservation.ID != 10 {
		t.Errorf("active reservation id = %d, want first-found 10", got[0].ActiveReservation.ID)
	}
}

// A non-positive turn duration falls back to the 60 minute default.
func TestSnapshotDefaultTurn(t *testing.T) {
	tables := []model.Table{table(1, model.TableAvailable)}
	rsvs := []model.Reservation{reservation(10, 1, "19:00", model.ReservationConfirmed)}
	probe, _ := MinuteOfDay("19:59")
	got := Snapshot(tables, rsvs, probe, 0)
	if got[0].EffectiveStatus != model.TableOccupied {
		t.Errorf("effective=%s, want occupied with default turn", got[0].EffectiveStatus)
	}
}

// Recomputing with identical inputs yields identical output.
func TestSnapshotIdempotent(t *testing.T) {
	tables := []model.Table{table(1, model.TableAvailable), table(2, model.TableBlocked)}
	rsvs := []model.Reservation{
		reservation(10, 1, "12:00", model.ReservationConfirmed),
		reservation(11, 2, "12:00", model.ReservationPending),
	}
	probe, _ := MinuteOfDay("12:30")
	first := Snapshot(tables, rsvs, probe, 45)
	second := Snapshot(tables, rsvs, probe, 45)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different snapshots")
	}
}

func TestOccupies(t *testing.T) {
	cases := []struct {
		start, probe, turn int
		want               bool
	}{
		{1140, 1140, 60, true},
		{1140, 1199, 60, true},
		{1140, 1200, 60, false},
		{1140, 1139, 60, false},
		{0, 0, 30, true},
		{1439, 1439, 60, true},
	}
	for _, tc := range cases {
		if got := Occupies(tc.start, tc.probe, tc.turn); got != tc.want {
			t.Errorf("Occupies(%d, %d, %d) = %v, want %v", tc.start, tc.probe, tc.turn, got, tc.want)
		}
	}
}
