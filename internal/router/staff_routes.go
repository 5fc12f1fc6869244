package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/handler"
	"github.com/mzanotti/restaurant-seating/internal/middleware"
	"github.com/mzanotti/restaurant-seating/internal/model"
)

// StaffHandlers bundles everything RegisterStaff mounts under /v1.
type StaffHandlers struct {
	Rooms        *handler.RoomHandler
	Tables       *handler.TableHandler
	Reservations *handler.ReservationHandler
	Waitlist     *handler.WaitlistHandler
	Occupancy    *handler.OccupancyHandler
	Assign       *handler.AssignHandler
	Settings     *handler.SettingsHandler
	Customers    *handler.CustomerHandler
	Diagnostics  *handler.DiagnosticsHandler
}

// RegisterStaff registers the floor-management API under /v1.  Every route
// requires a valid JWT with an ADMIN or STAFF role and runs behind the rate
// limiter.  Layout reads (rooms, tables) additionally go through the
// response cache; occupancy never does because it is time dependent.
func RegisterStaff(e *echo.Echo, h StaffHandlers, jwtSecret string, rateLimit, cache echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleStaff),
		rateLimit,
	)

	// ---- Rooms ----
	g.POST("/rooms", h.Rooms.Create)
	g.GET("/rooms", h.Rooms.List, cache)
	g.GET("/rooms/:id", h.Rooms.Get, cache)
	g.PUT("/rooms/:id", h.Rooms.Update)
	g.DELETE("/rooms/:id", h.Rooms.Delete)

	// ---- Tables ----
	g.POST("/tables", h.Tables.Create)
	g.GET("/tables", h.Tables.List, cache)
	g.GET("/tables/:id", h.Tables.Get)
	g.PUT("/tables/:id", h.Tables.Update)
	g.PATCH("/tables/:id/status", h.Tables.UpdateStatus)
	g.PATCH("/tables/:id/move", h.Tables.Move)
	g.DELETE("/tables/:id", h.Tables.Delete)

	// ---- Occupancy and assignment ----
	g.GET("/occupancy", h.Occupancy.Snapshot)
	g.POST("/assign/table", h.Assign.Assign)

	// ---- Reservations ----
	g.POST("/reservations", h.Reservations.Create)
	g.GET("/reservations", h.Reservations.List)
	g.GET("/reservations/:id", h.Reservations.Get)
	g.PUT("/reservations/:id", h.Reservations.Update)
	g.PATCH("/reservations/:id/status", h.Reservations.UpdateStatus)
	g.POST("/reservations/:id/unassign", h.Reservations.Unassign)

	// ---- Waitlist ----
	g.POST("/waitlist", h.Waitlist.Create)
	g.GET("/waitlist", h.Waitlist.List)
	g.GET("/waitlist/:id", h.Waitlist.Get)
	g.PUT("/waitlist/:id", h.Waitlist.Update)
	g.PATCH("/waitlist/:id/status", h.Waitlist.UpdateStatus)

	// ---- Customers ----
	g.POST("/customers", h.Customers.Create)
	g.GET("/customers", h.Customers.List)
	g.GET("/customers/:id", h.Customers.Get)
	g.PUT("/customers/:id", h.Customers.Update)
	g.DELETE("/customers/:id", h.Customers.Delete)

	// ---- Settings (ADMIN only) ----
	admin := e.Group(
		"/v1/settings",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
		rateLimit,
	)
	admin.GET("", h.Settings.List)
	admin.GET("/:key", h.Settings.Get)
	admin.PUT("/:key", h.Settings.Upsert)

	// ---- Diagnostics ----
	g.GET("/diagnostics/orphans", h.Diagnostics.Orphans)
}
