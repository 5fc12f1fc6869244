package router // router wires HTTP routes to handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/handler"
	"github.com/mzanotti/restaurant-seating/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints.  Register, login, refresh and
// logout live under /v1/auth without a session; /v1/me requires a token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	me := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
}
