package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/model"
	"github.com/mzanotti/restaurant-seating/internal/repository"
)

// RoomHandler serves dining room CRUD.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

type roomReq struct {
	Name       string  `json:"name"`
	Width      *int32  `json:"width"`
	Height     *int32  `json:"height"`
	Background *string `json:"background"`
}

func (r roomReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if r.Width != nil && *r.Width <= 0 || r.Height != nil && *r.Height <= 0 {
		return "width and height must be positive"
	}
	return ""
}

// Create handles POST /v1/rooms.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return badRequest(c, msg)
	}
	room := &model.Room{
		Name:       strings.TrimSpace(req.Name),
		Width:      800,
		Height:     600,
		Background: req.Background,
	}
	if req.Width != nil {
		room.Width = *req.Width
	}
	if req.Height != nil {
		room.Height = *req.Height
	}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// List handles GET /v1/rooms.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.ListAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// Update handles PUT /v1/rooms/:id.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	cur, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return badRequest(c, msg)
	}
	cur.Name = strings.TrimSpace(req.Name)
	if req.Width != nil {
		cur.Width = *req.Width
	}
	if req.Height != nil {
		cur.Height = *req.Height
	}
	if req.Background != nil {
		cur.Background = req.Background
	}
	if err := h.Rooms.Update(c.Request().Context(), cur); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cur)
}

// Delete handles DELETE /v1/rooms/:id.  Tables in the room are detached,
// not deleted.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
