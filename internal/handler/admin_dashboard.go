package handler // dashboard aggregate endpoints

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// DashboardStats handles GET /v1/admin/dashboard/stats.
func (h *AdminHandler) DashboardStats(c echo.Context) error {
	stats, err := h.Store.DashboardStats(c.Request().Context())
	if err != nil {
		return fail(c, err, "could not load dashboard stats")
	}
	return c.JSON(http.StatusOK, stats)
}

// MonthlyEngagement handles GET /v1/admin/dashboard/engagement. The
// months query parameter defaults to 6 and is capped at 24.
func (h *AdminHandler) MonthlyEngagement(c echo.Context) error {
	months := 6
	if s := c.QueryParam("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid months"})
		}
		months = n
	}
	if months > 24 {
		months = 24
	}

	points, err := h.Store.MonthlyEngagement(c.Request().Context(), months)
	if err != nil {
		return fail(c, err, "could not load engagement data")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": points})
}
