package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/occupancy"
	"github.com/mzanotti/restaurant-seating/internal/repository"
)

// OccupancyHandler serves the derived floor view.  Every request recomputes
// the snapshot from the current tables, reservations and turn setting; the
// result is never persisted or cached, so status and settings changes apply
// immediately.
type OccupancyHandler struct {
	Tables       *repository.TableRepo
	Reservations *repository.ReservationRepo
	Settings     *repository.SettingsRepo
}

func NewOccupancyHandler(t *repository.TableRepo, r *repository.ReservationRepo, s *repository.SettingsRepo) *OccupancyHandler {
	if t == nil || r == nil || s == nil {
		panic("nil repository passed to NewOccupancyHandler")
	}
	return &OccupancyHandler{Tables: t, Reservations: r, Settings: s}
}

type occupancyResp struct {
	Date        string                  `json:"date"`
	Time        string                  `json:"time"`
	TurnMinutes int                     `json:"turn_minutes"`
	Tables      []occupancy.TableStatus `json:"tables"`
}

// Snapshot handles GET /v1/occupancy?date=YYYY-MM-DD&time=HH:MM[&room_id=N].
func (h *OccupancyHandler) Snapshot(c echo.Context) error {
	date := c.QueryParam("date")
	clock := c.QueryParam("time")
	if !occupancy.ValidDate(date) {
		return badRequest(c, "date query parameter is required (YYYY-MM-DD)")
	}
	probe, err := occupancy.MinuteOfDay(clock)
	if err != nil {
		return badRequest(c, "time query parameter is required (HH:MM)")
	}
	var roomID *uint64
	if raw := c.QueryParam("room_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return badRequest(c, "invalid room_id")
		}
		roomID = &id
	}

	ctx := c.Request().Context()
	tables, err := h.Tables.ListActive(ctx, roomID)
	if err != nil {
		return fail(c, err)
	}
	reservations, err := h.Reservations.ListOccupying(ctx, date)
	if err != nil {
		return fail(c, err)
	}
	turn, err := h.Settings.AvgTurnMinutes(ctx)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, occupancyResp{
		Date:        date,
		Time:        clock[:5],
		TurnMinutes: turn,
		Tables:      occupancy.Snapshot(tables, reservations, probe, turn),
	})
}
