package handler // handler defines the HTTP layer over the repositories

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/assign"
	"github.com/mzanotti/restaurant-seating/internal/repository"
)

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// fail maps known error values to HTTP statuses: invalid input to 400,
// not-found sentinels to 404, conflicts to 409, anything else to 500 with a
// generic message so internals never leak to clients.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, assign.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrTableNotFound),
		errors.Is(err, repository.ErrReservationNotFound),
		errors.Is(err, repository.ErrWaitlistNotFound),
		errors.Is(err, repository.ErrCustomerNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
