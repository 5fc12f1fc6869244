package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/repository"
)

// DiagnosticsHandler surfaces data inconsistencies for staff review.  The
// orphan scan finds live reservations whose table was deactivated or removed
// out-of-band; those still occupy nothing on the floor view but should be
// reassigned or cancelled by staff.
type DiagnosticsHandler struct {
	Reservations *repository.ReservationRepo
}

func NewDiagnosticsHandler(r *repository.ReservationRepo) *DiagnosticsHandler {
	if r == nil {
		panic("nil repository passed to NewDiagnosticsHandler")
	}
	return &DiagnosticsHandler{Reservations: r}
}

// Orphans handles GET /v1/diagnostics/orphans.
func (h *DiagnosticsHandler) Orphans(c echo.Context) error {
	out, err := h.Reservations.ListOrphaned(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(out),
		"reservations": out,
	})
}
