package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID returns the authenticated user's identifier for rate-limit and
// cache keys, or "guest" when the request carries no identity.  JWTAuth
// stores the raw sub claim, which arrives as a JSON number.
func userID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "guest"
	}
	switch id := v.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return fmt.Sprintf("%.0f", id)
	}
	return "guest"
}
