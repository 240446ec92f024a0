package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's id as a string for use
// in cache and rate-limit keys, or "anon" before authentication ran.
func currentUserID(c echo.Context) string {
	if v, ok := c.Get(CtxUserID).(int64); ok {
		return strconv.FormatInt(v, 10)
	}
	return "anon"
}
