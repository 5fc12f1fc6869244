package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/model"
	"github.com/mzanotti/restaurant-seating/internal/occupancy"
	"github.com/mzanotti/restaurant-seating/internal/repository"
	"github.com/mzanotti/restaurant-seating/internal/utils"
)

// ReservationHandler serves reservation CRUD and lifecycle transitions.
// Binding a reservation to a table is not done here; that goes through the
// assignment coordinator.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Customers    *repository.CustomerRepo
}

func NewReservationHandler(r *repository.ReservationRepo, cust *repository.CustomerRepo) *ReservationHandler {
	if r == nil || cust == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: r, Customers: cust}
}

type reservationReq struct {
	CustomerID    *uint64 `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	PartySize     *uint32 `json:"party_size"`
	Notes         *string `json:"notes"`
	Source        *string `json:"source"`
}

// Create handles POST /v1/reservations.  New reservations start pending and
// unassigned; a fresh code is generated here.  When customer_id is given the
// name and phone are prefilled from the directory if the body omits them.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if !occupancy.ValidDate(req.Date) {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	if _, err := occupancy.MinuteOfDay(req.Time); err != nil {
		return badRequest(c, "time must be HH:MM")
	}
	if req.PartySize == nil || *req.PartySize == 0 {
		return badRequest(c, "party_size must be greater than zero")
	}

	ctx := c.Request().Context()
	name := strings.TrimSpace(req.CustomerName)
	phone := req.CustomerPhone
	if req.CustomerID != nil {
		cust, err := h.Customers.GetByID(ctx, *req.CustomerID)
		if err != nil {
			return fail(c, err)
		}
		if name == "" {
			name = cust.Name
		}
		if phone == nil {
			phone = cust.Phone
		}
	}
	if name == "" {
		return badRequest(c, "customer_name is required")
	}

	source := model.SourceManual
	if req.Source != nil {
		if !model.ValidReservationSource(*req.Source) {
			return badRequest(c, "unknown source")
		}
		source = *req.Source
	}

	code, err := utils.NewReservationCode()
	if err != nil {
		return fail(c, err)
	}
	rsv := &model.Reservation{
		Code:          code,
		CustomerID:    req.CustomerID,
		CustomerName:  name,
		CustomerPhone: phone,
		Date:          req.Date,
		Time:          req.Time[:5],
		PartySize:     *req.PartySize,
		Status:        model.ReservationPending,
		Notes:         req.Notes,
		Source:        source,
	}
	if err := h.Reservations.Create(ctx, rsv); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, rsv)
}

// List handles GET /v1/reservations?date=YYYY-MM-DD&status=...
func (h *ReservationHandler) List(c echo.Context) error {
	date := c.QueryParam("date")
	if !occupancy.ValidDate(date) {
		return badRequest(c, "date query parameter is required (YYYY-MM-DD)")
	}
	status := c.QueryParam("status")
	if status != "" && !model.ValidReservationStatus(status) {
		return badRequest(c, "unknown status")
	}
	out, err := h.Reservations.ListByDate(c.Request().Context(), date, status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	rsv, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rsv)
}

// Update handles PUT /v1/reservations/:id for the editable fields.  Only
// non-terminal reservations may be edited.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx := c.Request().Context()
	cur, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	switch cur.Status {
	case model.ReservationPending, model.ReservationConfirmed:
	default:
		return c.JSON(http.StatusConflict, map[string]string{"error": "reservation is " + cur.Status})
	}

	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Date != "" {
		if !occupancy.ValidDate(req.Date) {
			return badRequest(c, "date must be YYYY-MM-DD")
		}
		cur.Date = req.Date
	}
	if req.Time != "" {
		if _, err := occupancy.MinuteOfDay(req.Time); err != nil {
			return badRequest(c, "time must be HH:MM")
		}
		cur.Time = req.Time[:5]
	}
	if name := strings.TrimSpace(req.CustomerName); name != "" {
		cur.CustomerName = name
	}
	if req.CustomerPhone != nil {
		cur.CustomerPhone = req.CustomerPhone
	}
	if req.PartySize != nil {
		if *req.PartySize == 0 {
			return badRequest(c, "party_size must be greater than zero")
		}
		cur.PartySize = *req.PartySize
	}
	if req.Notes != nil {
		cur.Notes = req.Notes
	}
	if err := h.Reservations.Update(ctx, cur); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cur)
}

// UpdateStatus handles PATCH /v1/reservations/:id/status with an action:
// cancel, complete or no_show.  Allowed transitions depend on the current
// status.  Terminal reservations keep their table_id for history; they stop
// occupying the table because occupancy only counts pending and confirmed.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req struct {
		Action string `json:"action"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	target, ok := map[string]string{
		"cancel":   model.ReservationCancelled,
		"complete": model.ReservationCompleted,
		"no_show":  model.ReservationNoShow,
	}[req.Action]
	if !ok {
		return badRequest(c, "action must be cancel, complete or no_show")
	}

	ctx := c.Request().Context()
	cur, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	if !model.ValidReservationTransition(req.Action, cur.Status) {
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "cannot " + req.Action + " a " + cur.Status + " reservation",
		})
	}
	rsv, err := h.Reservations.UpdateStatus(ctx, id, target)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rsv)
}

// Unassign handles POST /v1/reservations/:id/unassign, detaching the
// reservation from its table and returning it to pending.
func (h *ReservationHandler) Unassign(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx := c.Request().Context()
	cur, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	if !model.ValidReservationTransition("unassign", cur.Status) || cur.TableID == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "reservation is not assigned"})
	}
	rsv, err := h.Reservations.Unassign(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rsv)
}
