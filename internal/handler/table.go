package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/model"
	"github.com/mzanotti/restaurant-seating/internal/repository"
)

// TableHandler serves table CRUD plus the floor-plan operations (move,
// manual status).  The status endpoint accepts only the staff-settable
// values; "occupied" exists solely in the derived occupancy view.
type TableHandler struct {
	Tables *repository.TableRepo
	Rooms  *repository.RoomRepo
}

func NewTableHandler(tables *repository.TableRepo, rooms *repository.RoomRepo) *TableHandler {
	if tables == nil || rooms == nil {
		panic("nil repository passed to NewTableHandler")
	}
	return &TableHandler{Tables: tables, Rooms: rooms}
}

type tableReq struct {
	RoomID   *uint64 `json:"room_id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Capacity *uint32 `json:"capacity"`
	Shape    *string `json:"shape"`
	Status   *string `json:"status"`
	IsActive *bool   `json:"is_active"`
	X        *int32  `json:"x"`
	Y        *int32  `json:"y"`
	W        *int32  `json:"w"`
	H        *int32  `json:"h"`
	Rotation *int32  `json:"rotation"`
	Notes    *string `json:"notes"`
}

// Create handles POST /v1/tables.
func (h *TableHandler) Create(c echo.Context) error {
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "code and name are required")
	}
	if req.Capacity == nil || *req.Capacity == 0 {
		return badRequest(c, "capacity must be greater than zero")
	}
	t := &model.Table{
		RoomID:   req.RoomID,
		Code:     strings.TrimSpace(req.Code),
		Name:     strings.TrimSpace(req.Name),
		Capacity: *req.Capacity,
		Shape:    model.ShapeRound,
		Status:   model.TableAvailable,
		IsActive: true,
		W:        80,
		H:        80,
		Notes:    req.Notes,
	}
	if req.Shape != nil {
		if !model.ValidTableShape(*req.Shape) {
			return badRequest(c, "shape must be round or rect")
		}
		t.Shape = *req.Shape
	}
	if req.Status != nil {
		if !model.ValidTableStatus(*req.Status) {
			return badRequest(c, "status must be available, blocked or out_of_service")
		}
		t.Status = *req.Status
	}
	if req.X != nil {
		t.X = *req.X
	}
	if req.Y != nil {
		t.Y = *req.Y
	}
	if req.W != nil {
		t.W = *req.W
	}
	if req.H != nil {
		t.H = *req.H
	}
	if req.Rotation != nil {
		t.Rotation = *req.Rotation
	}
	if req.RoomID != nil {
		if _, err := h.Rooms.GetByID(c.Request().Context(), *req.RoomID); err != nil {
			return fail(c, err)
		}
	}
	if err := h.Tables.Create(c.Request().Context(), t); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// List handles GET /v1/tables with an optional room_id query filter.
// Only active tables are returned.
func (h *TableHandler) List(c echo.Context) error {
	var roomID *uint64
	if raw := c.QueryParam("room_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return badRequest(c, "invalid room_id")
		}
		roomID = &id
	}
	tables, err := h.Tables.ListActive(c.Request().Context(), roomID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, tables)
}

// Get handles GET /v1/tables/:id.
func (h *TableHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	t, err := h.Tables.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Update handles PUT /v1/tables/:id.
func (h *TableHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	cur, err := h.Tables.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Code != "" {
		cur.Code = strings.TrimSpace(req.Code)
	}
	if req.Name != "" {
		cur.Name = strings.TrimSpace(req.Name)
	}
	if req.Capacity != nil {
		if *req.Capacity == 0 {
			return badRequest(c, "capacity must be greater than zero")
		}
		cur.Capacity = *req.Capacity
	}
	if req.Shape != nil {
		if !model.ValidTableShape(*req.Shape) {
			return badRequest(c, "shape must be round or rect")
		}
		cur.Shape = *req.Shape
	}
	if req.Status != nil {
		if !model.ValidTableStatus(*req.Status) {
			return badRequest(c, "status must be available, blocked or out_of_service")
		}
		cur.Status = *req.Status
	}
	if req.IsActive != nil {
		cur.IsActive = *req.IsActive
	}
	if req.RoomID != nil {
		if _, err := h.Rooms.GetByID(c.Request().Context(), *req.RoomID); err != nil {
			return fail(c, err)
		}
		cur.RoomID = req.RoomID
	}
	if req.X != nil {
		cur.X = *req.X
	}
	if req.Y != nil {
		cur.Y = *req.Y
	}
	if req.W != nil {
		cur.W = *req.W
	}
	if req.H != nil {
		cur.H = *req.H
	}
	if req.Rotation != nil {
		cur.Rotation = *req.Rotation
	}
	if req.Notes != nil {
		cur.Notes = req.Notes
	}
	if err := h.Tables.Update(c.Request().Context(), cur); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cur)
}

// UpdateStatus handles PATCH /v1/tables/:id/status.
func (h *TableHandler) UpdateStatus(c echo.Context) error {
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
	if !model.ValidTableStatus(req.Status) {
		return badRequest(c, "status must be available, blocked or out_of_service")
	}
	t, err := h.Tables.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Move handles PATCH /v1/tables/:id/move with the drag result from the
// floor-plan editor.
func (h *TableHandler) Move(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	cur, err := h.Tables.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	var req struct {
		X        *int32 `json:"x"`
		Y        *int32 `json:"y"`
		W        *int32 `json:"w"`
		H        *int32 `json:"h"`
		Rotation *int32 `json:"rotation"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	x, y, w, ht, rot := cur.X, cur.Y, cur.W, cur.H, cur.Rotation
	if req.X != nil {
		x = *req.X
	}
	if req.Y != nil {
		y = *req.Y
	}
	if req.W != nil {
		w = *req.W
	}
	if req.H != nil {
		ht = *req.H
	}
	if req.Rotation != nil {
		rot = *req.Rotation
	}
	t, err := h.Tables.Move(c.Request().Context(), id, x, y, w, ht, rot)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /v1/tables/:id as a soft delete.
func (h *TableHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Tables.Deactivate(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
