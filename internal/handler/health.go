package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecowave/ecowave-hub/internal/store"
)

// Health returns a health-check handler used by load balancers and
// monitoring. It reports 200 while the active backend answers a ping and
// 503 otherwise.
func Health(svc store.DataService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded", "error": "backend unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}
}
