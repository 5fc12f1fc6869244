package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/repository"
)

// SettingsHandler serves the key/value settings used by the engine, most
// importantly the average table turn duration.
type SettingsHandler struct {
	Settings *repository.SettingsRepo
}

func NewSettingsHandler(s *repository.SettingsRepo) *SettingsHandler {
	if s == nil {
		panic("nil repository passed to NewSettingsHandler")
	}
	return &SettingsHandler{Settings: s}
}

// List handles GET /v1/settings, returning all settings plus the resolved
// turn duration (with the default applied).
func (h *SettingsHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	all, err := h.Settings.All(ctx)
	if err != nil {
		return fail(c, err)
	}
	turn, err := h.Settings.AvgTurnMinutes(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"settings":     all,
		"turn_minutes": turn,
	})
}

// Upsert handles PUT /v1/settings/:key.
func (h *SettingsHandler) Upsert(c echo.Context) error {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		return badRequest(c, "key is required")
	}
	var req struct {
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Settings.Upsert(c.Request().Context(), key, req.Value); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"key": key, "value": req.Value})
}

// Get handles GET /v1/settings/:key.
func (h *SettingsHandler) Get(c echo.Context) error {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		return badRequest(c, "key is required")
	}
	value, ok, err := h.Settings.Get(c.Request().Context(), key)
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "setting not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"key": key, "value": value})
}
