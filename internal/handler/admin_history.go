package handler // activity trail endpoints

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecowave/ecowave-hub/internal/model"
)

// ListHistory handles GET /v1/admin/history. When the primary backend
// cannot serve the trail the locally buffered entries are returned
// instead, flagged by the source field, so the activity page never comes
// up empty during an outage.
func (h *AdminHandler) ListHistory(c echo.Context) error {
	limit := 50
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}

	ctx := c.Request().Context()
	items, err := h.Store.ListHistory(ctx, limit)
	if err != nil {
		local, lerr := h.Audit.Recent(ctx, limit)
		if lerr != nil {
			return fail(c, err, "could not list history")
		}
		return c.JSON(http.StatusOK, echo.Map{"items": local, "source": "local"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "source": "remote"})
}

// ExportHistory handles GET /v1/admin/history/export and streams the
// activity trail as a CSV download. The export itself is recorded on the
// trail.
func (h *AdminHandler) ExportHistory(c echo.Context) error {
	limit := 1000
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}

	ctx := c.Request().Context()
	items, err := h.Store.ListHistory(ctx, limit)
	if err != nil {
		items, err = h.Audit.Recent(ctx, limit)
		if err != nil {
			return fail(c, err, "could not export history")
		}
	}

	fname := fmt.Sprintf("activity-history-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fname+`"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"log_id", "admin_id", "action_type", "entity_type", "entity_id", "details", "created_at"}); err != nil {
		return err
	}
	for _, e := range items {
		rec := []string{
			strconv.FormatInt(e.ID, 10),
			strconv.FormatInt(e.AdminID, 10),
			e.ActionType,
			e.EntityType,
			strconv.FormatInt(e.EntityID, 10),
			e.Details,
			e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	h.Audit.LogExport(ctx, "activity history (CSV)")
	return nil
}

// AppendHistory handles POST /v1/admin/history for trail entries the
// dashboard records directly, e.g. actions taken in an embedded tool.
func (h *AdminHandler) AppendHistory(c echo.Context) error {
	var body struct {
		ActionType string `json:"action_type"`
		EntityType string `json:"entity_type"`
		EntityID   int64  `json:"entity_id"`
		Details    string `json:"details"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ActionType == "" || body.EntityType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "action_type and entity_type are required"})
	}

	h.Audit.LogAction(c.Request().Context(), model.HistoryEntry{
		ActionType: body.ActionType,
		EntityType: body.EntityType,
		EntityID:   body.EntityID,
		Details:    body.Details,
	})
	return c.JSON(http.StatusAccepted, echo.Map{"message": "recorded"})
}
