package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/assign"
	"github.com/mzanotti/restaurant-seating/internal/queue"
	"github.com/mzanotti/restaurant-seating/internal/repository"
	queue_publisher "github.com/mzanotti/restaurant-seating/internal/service"
)

// AssignHandler exposes the assignment coordinator over HTTP and publishes
// an audit event after a successful commit.  Publishing is fire-and-forget:
// the assignment stands even when the broker is down.
type AssignHandler struct {
	Coordinator *assign.Coordinator
	Tables      *repository.TableRepo
}

func NewAssignHandler(coord *assign.Coordinator, tables *repository.TableRepo) *AssignHandler {
	if coord == nil || tables == nil {
		panic("nil dependency passed to NewAssignHandler")
	}
	return &AssignHandler{Coordinator: coord, Tables: tables}
}

type assignReq struct {
	TableID       uint64  `json:"table_id"`
	WaitlistID    *uint64 `json:"waitlist_id"`
	ReservationID *uint64 `json:"reservation_id"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
}

// Assign handles POST /v1/assign/table.
func (h *AssignHandler) Assign(c echo.Context) error {
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	rsv, err := h.Coordinator.Assign(c.Request().Context(), assign.Request{
		TableID:       req.TableID,
		WaitlistID:    req.WaitlistID,
		ReservationID: req.ReservationID,
		Date:          req.Date,
		Time:          req.Time,
	})
	if err != nil {
		return fail(c, err)
	}

	event := queue.TableAssignedEvent{
		ReservationID:   rsv.ID,
		ReservationCode: rsv.Code,
		TableID:         req.TableID,
		CustomerName:    rsv.CustomerName,
		PartySize:       rsv.PartySize,
		Date:            rsv.Date,
		Time:            rsv.Time,
		Source:          rsv.Source,
		AssignedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if req.WaitlistID != nil {
		event.WaitlistID = *req.WaitlistID
	}
	if t, err := h.Tables.GetByID(c.Request().Context(), req.TableID); err == nil {
		event.TableCode = t.Code
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishTableAssigned(ctx, event)
	}()

	return c.JSON(http.StatusOK, rsv)
}
