package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/model"
	"github.com/mzanotti/restaurant-seating/internal/repository"
)

// WaitlistHandler serves the walk-in queue.  Seating an entry is not done
// here; that goes through the assignment coordinator, which is the only code
// allowed to set the seated status.
type WaitlistHandler struct {
	Waitlist *repository.WaitlistRepo
}

func NewWaitlistHandler(w *repository.WaitlistRepo) *WaitlistHandler {
	if w == nil {
		panic("nil repository passed to NewWaitlistHandler")
	}
	return &WaitlistHandler{Waitlist: w}
}

type waitlistReq struct {
	CustomerName  string  `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	PartySize     *uint32 `json:"party_size"`
	Notes         *string `json:"notes"`
}

// Create handles POST /v1/waitlist.  New entries start waiting.
func (h *WaitlistHandler) Create(c echo.Context) error {
	var req waitlistReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return badRequest(c, "customer_name is required")
	}
	if req.PartySize == nil || *req.PartySize == 0 {
		return badRequest(c, "party_size must be greater than zero")
	}
	e := &model.WaitlistEntry{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: req.CustomerPhone,
		PartySize:     *req.PartySize,
		Status:        model.WaitlistWaiting,
		Notes:         req.Notes,
	}
	if err := h.Waitlist.Create(c.Request().Context(), e); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

// List handles GET /v1/waitlist with an optional status filter, in arrival
// order.
func (h *WaitlistHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !model.ValidWaitlistStatus(status) {
		return badRequest(c, "unknown status")
	}
	out, err := h.Waitlist.List(c.Request().Context(), status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/waitlist/:id.
func (h *WaitlistHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	e, err := h.Waitlist.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

// Update handles PUT /v1/waitlist/:id for editable fields while the entry
// is still in the queue.
func (h *WaitlistHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx := c.Request().Context()
	cur, err := h.Waitlist.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	if !model.WaitlistEligible(cur.Status) {
		return c.JSON(http.StatusConflict, map[string]string{"error": "entry is " + cur.Status})
	}
	var req waitlistReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
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
	if err := h.Waitlist.Update(ctx, cur); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cur)
}

// UpdateStatus handles PATCH /v1/waitlist/:id/status for queue transitions:
// contacted, cancelled, or back to waiting.  seated is rejected because only
// an assignment may seat an entry.
func (h *WaitlistHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	switch req.Status {
	case model.WaitlistWaiting, model.WaitlistContacted, model.WaitlistCancelled:
	case model.WaitlistSeated:
		return badRequest(c, "seating goes through table assignment")
	default:
		return badRequest(c, "unknown status")
	}

	ctx := c.Request().Context()
	cur, err := h.Waitlist.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	if !model.WaitlistEligible(cur.Status) {
		return c.JSON(http.StatusConflict, map[string]string{"error": "entry is " + cur.Status})
	}
	e, err := h.Waitlist.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, e)
}
