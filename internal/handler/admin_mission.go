package handler // mission and submission endpoints

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecowave/ecowave-hub/internal/audit"
	"github.com/ecowave/ecowave-hub/internal/model"
	"github.com/ecowave/ecowave-hub/internal/queue"
	queue_publisher "github.com/ecowave/ecowave-hub/internal/service"
)

type missionPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Points      *int64  `json:"points"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// ListMissions handles GET /v1/admin/missions.
func (h *AdminHandler) ListMissions(c echo.Context) error {
	items, err := h.Store.ListMissions(c.Request().Context())
	if err != nil {
		return fail(c, err, "could not list missions")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetMission handles GET /v1/admin/missions/:id.
func (h *AdminHandler) GetMission(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Store.GetMission(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "could not load mission")
	}
	return c.JSON(http.StatusOK, m)
}

// CreateMission handles POST /v1/admin/missions.
func (h *AdminHandler) CreateMission(c echo.Context) error {
	var body missionPayload
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Title == nil || strings.TrimSpace(*body.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if body.Points == nil || *body.Points <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "points must be positive"})
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

	nm := model.NewMission{
		Title:    strings.TrimSpace(*body.Title),
		Points:   *body.Points,
		StartsAt: starts,
		EndsAt:   ends,
	}
	if body.Description != nil {
		nm.Description = *body.Description
	}

	ctx := c.Request().Context()
	m, err := h.Store.CreateMission(ctx, nm)
	if err != nil {
		return fail(c, err, "could not create mission")
	}
	h.Audit.LogCreate(ctx, model.EntityMission, m.ID, audit.Meta{"title": m.Title})
	return c.JSON(http.StatusCreated, m)
}

// UpdateMission handles PUT /v1/admin/missions/:id with a partial payload.
func (h *AdminHandler) UpdateMission(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body missionPayload
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Points != nil && *body.Points <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "points must be positive"})
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

	ctx := c.Request().Context()
	before, err := h.Store.GetMission(ctx, id)
	if err != nil {
		return fail(c, err, "could not load mission")
	}
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

	m, err := h.Store.UpdateMission(ctx, id, model.MissionUpdate{
		Title:       body.Title,
		Description: body.Description,
		Points:      body.Points,
		StartsAt:    starts,
		EndsAt:      ends,
	})
	if err != nil {
		return fail(c, err, "could not update mission")
	}

	var changes []audit.Change
	if body.Title != nil && before.Title != m.Title {
		changes = append(changes, audit.Change{Field: "title", Old: before.Title, New: m.Title})
	}
	if body.Points != nil && before.Points != m.Points {
		changes = append(changes, audit.Change{Field: "points", Old: before.Points, New: m.Points})
	}
	if starts != nil && !before.StartsAt.Equal(m.StartsAt) {
		changes = append(changes, audit.Change{Field: "start_date", Old: before.StartsAt, New: m.StartsAt})
	}
	if ends != nil && !before.EndsAt.Equal(m.EndsAt) {
		changes = append(changes, audit.Change{Field: "end_date", Old: before.EndsAt, New: m.EndsAt})
	}
	h.Audit.LogUpdate(ctx, model.EntityMission, m.ID, audit.Meta{"title": m.Title, "changes": changes})

	return c.JSON(http.StatusOK, m)
}

// DeleteMission handles DELETE /v1/admin/missions/:id; submissions go with
// the mission.
func (h *AdminHandler) DeleteMission(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	before, err := h.Store.GetMission(ctx, id)
	if err != nil {
		return fail(c, err, "could not load mission")
	}
	if err := h.Store.DeleteMission(ctx, id); err != nil {
		return fail(c, err, "could not delete mission")
	}
	h.Audit.LogDelete(ctx, model.EntityMission, id, audit.Meta{"title": before.Title})
	return c.NoContent(http.StatusNoContent)
}

// ListSubmissions handles GET /v1/admin/submissions with an optional
// mission_id query filter.
func (h *AdminHandler) ListSubmissions(c echo.Context) error {
	var missionID int64
	if s := c.QueryParam("mission_id"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid mission_id"})
		}
		missionID = n
	}
	items, err := h.Store.ListSubmissions(c.Request().Context(), missionID)
	if err != nil {
		return fail(c, err, "could not list submissions")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ReviewSubmission handles POST /v1/admin/submissions/:id/review. Only
// pending submissions can be reviewed; the decision is published to the
// broker so the points award happens asynchronously, and a publish
// failure never fails the review itself.
func (h *AdminHandler) ReviewSubmission(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Approve *bool `json:"approve"`
	}
	if err := c.Bind(&body); err != nil || body.Approve == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approve is required"})
	}

	ctx := c.Request().Context()
	sub, err := h.Store.ReviewSubmission(ctx, id, *body.Approve)
	if err != nil {
		return fail(c, err, "could not review submission")
	}

	meta := audit.Meta{
		"details": fmt.Sprintf("Reviewed submission #%d (status: pending → %s)", sub.ID, sub.Status),
		"changes": []audit.Change{{Field: "status", Old: model.SubmissionPending, New: sub.Status}},
	}

	adminID, _ := getUserID(c)
	ev := queue.SubmissionReviewedEvent{
		SubmissionID: sub.ID,
		MissionID:    sub.MissionID,
		UserID:       sub.UserID,
		Approved:     *body.Approve,
		ReviewedBy:   adminID,
		ReviewedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if m, err := h.Store.GetMission(ctx, sub.MissionID); err == nil {
		ev.MissionTitle = m.Title
		ev.Points = m.Points
		meta["title"] = m.Title
	}
	h.Audit.LogUpdate(ctx, model.EntityMission, sub.MissionID, meta)
	_ = queue_publisher.PublishSubmissionReviewed(ctx, ev)

	return c.JSON(http.StatusOK, sub)
}
