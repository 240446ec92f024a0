package handler // event management endpoints for the admin dashboard

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecowave/ecowave-hub/internal/audit"
	"github.com/ecowave/ecowave-hub/internal/model"
)

// eventPayload is the JSON body accepted by create and update. Dates are
// strings so the handler controls the accepted formats.
type eventPayload struct {
	Title           *string `json:"title"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	Location        *string `json:"location"`
	Points          *int64  `json:"points"`
	ImageURL        *string `json:"image_url"`
	MaxParticipants *int    `json:"max_participants"`
}

// ListEvents handles GET /v1/admin/events. Statuses are derived from the
// clock at read time.
func (h *AdminHandler) ListEvents(c echo.Context) error {
	items, err := h.Store.ListEvents(c.Request().Context())
	if err != nil {
		return fail(c, err, "could not list events")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetEvent handles GET /v1/admin/events/:id.
func (h *AdminHandler) GetEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ev, err := h.Store.GetEvent(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "could not load event")
	}
	return c.JSON(http.StatusOK, ev)
}

// CreateEvent handles POST /v1/admin/events.
func (h *AdminHandler) CreateEvent(c echo.Context) error {
	var body eventPayload
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Title == nil || strings.TrimSpace(*body.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if body.StartDate == nil || body.EndDate == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date and end_date are required"})
	}
	starts, err := parseDate(*body.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date"})
	}
	ends, err := parseDate(*body.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date"})
	}
	if !ends.After(starts) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be after start_date"})
	}

	ne := model.NewEvent{
		Title:    strings.TrimSpace(*body.Title),
		StartsAt: starts,
		EndsAt:   ends,
	}
	if body.Location != nil {
		ne.Location = strings.TrimSpace(*body.Location)
	}
	if body.Points != nil {
		if *body.Points < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "points cannot be negative"})
		}
		ne.Points = *body.Points
	}
	if body.ImageURL != nil {
		ne.ImageURL = *body.ImageURL
	}
	if body.MaxParticipants != nil {
		ne.MaxParticipants = *body.MaxParticipants
	}

	ctx := c.Request().Context()
	ev, err := h.Store.CreateEvent(ctx, ne)
	if err != nil {
		return fail(c, err, "could not create event")
	}
	h.Audit.LogCreate(ctx, model.EntityEvent, ev.ID, audit.Meta{"title": ev.Title})
	return c.JSON(http.StatusCreated, ev)
}

// UpdateEvent handles PUT /v1/admin/events/:id with a partial payload.
func (h *AdminHandler) UpdateEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body eventPayload
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	upd := model.EventUpdate{
		Title:           body.Title,
		Location:        body.Location,
		Points:          body.Points,
		ImageURL:        body.ImageURL,
		MaxParticipants: body.MaxParticipants,
	}
	var starts, ends *time.Time
	if body.StartDate != nil {
		t, err := parseDate(*body.StartDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date"})
		}
		starts = &t
	}
	if body.EndDate != nil {
		t, err := parseDate(*body.EndDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date"})
		}
		ends = &t
	}
	upd.StartsAt = starts
	upd.EndsAt = ends
	if body.Points != nil && *body.Points < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "points cannot be negative"})
	}

	ctx := c.Request().Context()
	before, err := h.Store.GetEvent(ctx, id)
	if err != nil {
		return fail(c, err, "could not load event")
	}
	// The window must stay ordered even when only one bound changes.
	effStart, effEnd := before.StartsAt, before.EndsAt
	if starts != nil {
		effStart = *starts
	}
	if ends != nil {
		effEnd = *ends
	}
	if !effEnd.After(effStart) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be after start_date"})
	}

	ev, err := h.Store.UpdateEvent(ctx, id, upd)
	if err != nil {
		return fail(c, err, "could not update event")
	}

	var changes []audit.Change
	if body.Title != nil && before.Title != ev.Title {
		changes = append(changes, audit.Change{Field: "title", Old: before.Title, New: ev.Title})
	}
	if starts != nil && !before.StartsAt.Equal(ev.StartsAt) {
		changes = append(changes, audit.Change{Field: "start_date", Old: before.StartsAt, New: ev.StartsAt})
	}
	if ends != nil && !before.EndsAt.Equal(ev.EndsAt) {
		changes = append(changes, audit.Change{Field: "end_date", Old: before.EndsAt, New: ev.EndsAt})
	}
	if body.Location != nil && before.Location != ev.Location {
		changes = append(changes, audit.Change{Field: "location", Old: before.Location, New: ev.Location})
	}
	if body.Points != nil && before.Points != ev.Points {
		changes = append(changes, audit.Change{Field: "points", Old: before.Points, New: ev.Points})
	}
	if body.MaxParticipants != nil && before.MaxParticipants != ev.MaxParticipants {
		changes = append(changes, audit.Change{Field: "max_participants", Old: before.MaxParticipants, New: ev.MaxParticipants})
	}
	h.Audit.LogUpdate(ctx, model.EntityEvent, ev.ID, audit.Meta{"title": ev.Title, "changes": changes})

	return c.JSON(http.StatusOK, ev)
}

// DeleteEvent handles DELETE /v1/admin/events/:id; participant links go
// with the event.
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	before, err := h.Store.GetEvent(ctx, id)
	if err != nil {
		return fail(c, err, "could not load event")
	}
	if err := h.Store.DeleteEvent(ctx, id); err != nil {
		return fail(c, err, "could not delete event")
	}
	h.Audit.LogDelete(ctx, model.EntityEvent, id, audit.Meta{"title": before.Title})
	return c.NoContent(http.StatusNoContent)
}
