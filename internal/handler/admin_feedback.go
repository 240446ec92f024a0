package handler // feedback endpoints for the admin dashboard

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ecowave/ecowave-hub/internal/audit"
	"github.com/ecowave/ecowave-hub/internal/model"
)

// ListFeedback handles GET /v1/admin/feedback with an optional event_id
// query filter.
func (h *AdminHandler) ListFeedback(c echo.Context) error {
	var eventID int64
	if s := c.QueryParam("event_id"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event_id"})
		}
		eventID = n
	}
	items, err := h.Store.ListFeedback(c.Request().Context(), eventID)
	if err != nil {
		return fail(c, err, "could not list feedback")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetFeedback handles GET /v1/admin/feedback/:id.
func (h *AdminHandler) GetFeedback(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	fb, err := h.Store.GetFeedback(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "could not load feedback")
	}
	return c.JSON(http.StatusOK, fb)
}

// CreateFeedback handles POST /v1/admin/feedback. EventID and rating are
// optional; a rating outside 1..5 is rejected.
func (h *AdminHandler) CreateFeedback(c echo.Context) error {
	var body struct {
		UserID  int64  `json:"user_id,string"`
		EventID *int64 `json:"event_id,string"`
		Rating  *int   `json:"rating"`
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.UserID == 0 || body.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and message are required"})
	}
	if body.Rating != nil && (*body.Rating < 1 || *body.Rating > 5) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	fb, err := h.Store.CreateFeedback(c.Request().Context(), model.NewFeedback{
		UserID:  body.UserID,
		EventID: body.EventID,
		Rating:  body.Rating,
		Message: body.Message,
	})
	if err != nil {
		return fail(c, err, "could not create feedback")
	}
	h.Audit.LogCreate(c.Request().Context(), model.EntityFeedback, fb.ID,
		audit.Meta{"details": fmt.Sprintf("Recorded feedback #%d from user #%d", fb.ID, fb.UserID)})
	return c.JSON(http.StatusCreated, fb)
}

// DeleteFeedback handles DELETE /v1/admin/feedback/:id.
func (h *AdminHandler) DeleteFeedback(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if err := h.Store.DeleteFeedback(ctx, id); err != nil {
		return fail(c, err, "could not delete feedback")
	}
	h.Audit.LogDelete(ctx, model.EntityFeedback, id, audit.Meta{"details": fmt.Sprintf("Deleted feedback #%d", id)})
	return c.NoContent(http.StatusNoContent)
}
