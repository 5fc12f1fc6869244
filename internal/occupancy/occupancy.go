// Package occupancy derives the effective status of each table at a probe
// time from the day's reservations and the tables' manual statuses.  The
// computation is a pure function over inputs already loaded from the store:
// it performs no I/O and its result is never written back.
package occupancy

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/mzanotti/restaurant-seating/internal/model"
)

// Reason tags explain where a table's effective status came from.
const (
	ReasonManual      = "manual"      // effective status equals the staff-set status
	ReasonReservation = "reservation" // a reservation window covers the probe time
)

// DefaultTurnMinutes is the occupancy window width used when the configured
// turn duration is missing or non-positive.
const DefaultTurnMinutes = 60

// TableStatus is one table's slice of an occupancy snapshot.
type TableStatus struct {
	Table             model.Table        `json:"table"`
	EffectiveStatus   string             `json:"effective_status"`
	Reason            string             `json:"reason"`
	ActiveReservation *model.Reservation `json:"active_reservation,omitempty"`
}

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

// ValidDate reports whether s looks like a YYYY-MM-DD date.
func ValidDate(s string) bool {
	return dateRe.MatchString(s)
}

// MinuteOfDay converts an HH:MM or HH:MM:SS clock string to minutes since
// midnight (0..1439).  Seconds, when present, are ignored; the engine works
// at minute precision.
func MinuteOfDay(clock string) (int, error) {
	if !clockRe.MatchString(clock) {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	h, _ := strconv.Atoi(clock[0:2])
	m, _ := strconv.Atoi(clock[3:5])
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	if len(clock) == 8 {
		if s, _ := strconv.Atoi(clock[6:8]); s > 59 {
			return 0, fmt.Errorf("invalid time %q", clock)
		}
	}
	return h*60 + m, nil
}

// Occupies reports whether a reservation starting at startMin holds the
// table at probeMin, given the turn duration.  The window is half-open:
// [start, start+turn).
func Occupies(startMin, probeMin, turnMin int) bool {
	return probeMin >= startMin && probeMin < startMin+turnMin
}

// Snapshot computes the effective status of every table in tables at
// probeMin.  reservations must already be restricted to the target date and
// to statuses that occupy a table (pending, confirmed); entries without a
// table are skipped.  A manual status other than available always wins over
// reservation-derived occupancy.  When several reservations cover the same
// instant on one table the first in slice order is reported; callers must
// not rely on which one.
func Snapshot(tables []model.Table, reservations []model.Reservation, probeMin, turnMin int) []TableStatus {
	if turnMin <= 0 {
		turnMin = DefaultTurnMinutes
	}

	byTable := make(map[uint64][]model.Reservation, len(tables))
	for _, rsv := range reservations {
		if rsv.TableID == nil {
			continue
		}
		byTable[*rsv.TableID] = append(byTable[*rsv.TableID], rsv)
	}

	out := make([]TableStatus, 0, len(tables))
	for _, t := range tables {
		st := TableStatus{Table: t, EffectiveStatus: t.Status, Reason: ReasonManual}
		if t.Status == model.TableAvailable {
			for i, rsv := range byTable[t.ID] {
				start, err := MinuteOfDay(rsv.Time)
				if err != nil {
					continue
				}
				if Occupies(start, probeMin, turnMin) {
					st.EffectiveStatus = model.TableOccupied
					st.Reason = ReasonReservation
					st.ActiveReservation = &byTable[t.ID][i]
					break
				}
			}
		}
		out = append(out, st)
	}
	return out
}
