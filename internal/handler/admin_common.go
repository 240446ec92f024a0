package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecowave/ecowave-hub/internal/audit"
	"github.com/ecowave/ecowave-hub/internal/storage"
	"github.com/ecowave/ecowave-hub/internal/store"
)

// AdminHandler bundles the dependencies of the admin dashboard routes.
// Every handler goes through the data-service interface, never a concrete
// backend; Storage may be nil, in which case upload endpoints report the
// feature as unavailable.
type AdminHandler struct {
	Store   store.DataService
	Audit   *audit.Logger
	Storage *storage.SpacesService
}

// NewAdminHandler constructs an AdminHandler and panics if a required
// dependency is nil.
func NewAdminHandler(svc store.DataService, auditLog *audit.Logger, st *storage.SpacesService) *AdminHandler {
	if svc == nil || auditLog == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Store: svc, Audit: auditLog, Storage: st}
}

// getUserID extracts the authenticated user's id stored by the JWT
// middleware.
func getUserID(c echo.Context) (int64, error) {
	switch t := c.Get("user_id").(type) {
	case int64:
		return t, nil
	case float64:
		return int64(t), nil
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// parseID parses the :id route parameter.
func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// fail maps data-service sentinel errors to HTTP responses. Anything not
// recognized becomes a 500 with the supplied message so internals never
// leak to clients.
func fail(c echo.Context, err error, msg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, store.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	case errors.Is(err, store.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, store.ErrOutOfStock):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reward out of stock"})
	case errors.Is(err, store.ErrInsufficientPoints):
		return c.JSON(http.StatusConflict, echo.Map{"error": "insufficient points"})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}

// parseDate accepts RFC3339 timestamps and plain dates. The dashboard's
// date pickers send either form.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
