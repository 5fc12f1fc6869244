package model

// transitionMap lists, per reservation action, the statuses an existing
// reservation may be in for the action to apply.  Transitions run one way
// toward a terminal state; the single exception is unassign, which returns
// a confirmed reservation to pending when its table is taken away.
var transitionMap = map[string][]string{
	"confirm":  {ReservationPending},
	"unassign": {ReservationConfirmed},
	"cancel":   {ReservationPending, ReservationConfirmed},
	"complete": {ReservationConfirmed},
	"no_show":  {ReservationPending, ReservationConfirmed},
}

// ValidReservationTransition reports whether action may be applied to a
// reservation currently in fromStatus.
func ValidReservationTransition(action, fromStatus string) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}
