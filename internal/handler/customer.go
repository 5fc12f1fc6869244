package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/model"
	"github.com/mzanotti/restaurant-seating/internal/repository"
)

// CustomerHandler serves the customer directory.
type CustomerHandler struct {
	Customers *repository.CustomerRepo
}

func NewCustomerHandler(cust *repository.CustomerRepo) *CustomerHandler {
	if cust == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{Customers: cust}
}

type customerReq struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

// Create handles POST /v1/customers.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "name is required")
	}
	cust := &model.Customer{
		Name:  strings.TrimSpace(req.Name),
		Phone: req.Phone,
		Notes: req.Notes,
	}
	if err := h.Customers.Create(c.Request().Context(), cust); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, cust)
}

// List handles GET /v1/customers?q=...&limit=N.
func (h *CustomerHandler) List(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	out, err := h.Customers.Search(c.Request().Context(), strings.TrimSpace(c.QueryParam("q")), limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/customers/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	cust, err := h.Customers.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cust)
}

// Update handles PUT /v1/customers/:id.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx := c.Request().Context()
	cur, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		cur.Name = name
	}
	if req.Phone != nil {
		cur.Phone = req.Phone
	}
	if req.Notes != nil {
		cur.Notes = req.Notes
	}
	if err := h.Customers.Update(ctx, cur); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cur)
}

// Delete handles DELETE /v1/customers/:id.  Reservations keep their
// denormalized name and phone.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Customers.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
