package handler // reward catalog and redemption endpoints

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecowave/ecowave-hub/internal/audit"
	"github.com/ecowave/ecowave-hub/internal/model"
)

// ListRewards handles GET /v1/admin/rewards.
func (h *AdminHandler) ListRewards(c echo.Context) error {
	items, err := h.Store.ListRewards(c.Request().Context())
	if err != nil {
		return fail(c, err, "could not list rewards")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetReward handles GET /v1/admin/rewards/:id.
func (h *AdminHandler) GetReward(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rw, err := h.Store.GetReward(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "could not load reward")
	}
	return c.JSON(http.StatusOK, rw)
}

// CreateReward handles POST /v1/admin/rewards.
func (h *AdminHandler) CreateReward(c echo.Context) error {
	var body struct {
		Name           string `json:"name"`
		Description    string `json:"description"`
		PointsRequired int64  `json:"points_required"`
		Stock          int    `json:"stock"`
		ImageURL       string `json:"image_url"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if body.PointsRequired <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "points_required must be positive"})
	}
	if body.Stock < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stock cannot be negative"})
	}

	ctx := c.Request().Context()
	rw, err := h.Store.CreateReward(ctx, model.NewReward{
		Name:           name,
		Description:    body.Description,
		PointsRequired: body.PointsRequired,
		Stock:          body.Stock,
		ImageURL:       body.ImageURL,
	})
	if err != nil {
		return fail(c, err, "could not create reward")
	}
	h.Audit.LogCreate(ctx, model.EntityReward, rw.ID, audit.Meta{"name": rw.Name})
	return c.JSON(http.StatusCreated, rw)
}

// UpdateReward handles PUT /v1/admin/rewards/:id with a partial payload.
func (h *AdminHandler) UpdateReward(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name           *string `json:"name"`
		Description    *string `json:"description"`
		PointsRequired *int64  `json:"points_required"`
		Stock          *int    `json:"stock"`
		ImageURL       *string `json:"image_url"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PointsRequired != nil && *body.PointsRequired <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "points_required must be positive"})
	}
	if body.Stock != nil && *body.Stock < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stock cannot be negative"})
	}

	ctx := c.Request().Context()
	before, err := h.Store.GetReward(ctx, id)
	if err != nil {
		return fail(c, err, "could not load reward")
	}

	rw, err := h.Store.UpdateReward(ctx, id, model.RewardUpdate{
		Name:           body.Name,
		Description:    body.Description,
		PointsRequired: body.PointsRequired,
		Stock:          body.Stock,
		ImageURL:       body.ImageURL,
	})
	if err != nil {
		return fail(c, err, "could not update reward")
	}

	var changes []audit.Change
	if body.Name != nil && before.Name != rw.Name {
		changes = append(changes, audit.Change{Field: "name", Old: before.Name, New: rw.Name})
	}
	if body.Description != nil && before.Description != rw.Description {
		changes = append(changes, audit.Change{Field: "description", Old: before.Description, New: rw.Description})
	}
	if body.PointsRequired != nil && before.PointsRequired != rw.PointsRequired {
		changes = append(changes, audit.Change{Field: "points_required", Old: before.PointsRequired, New: rw.PointsRequired})
	}
	if body.Stock != nil && before.Stock != rw.Stock {
		changes = append(changes, audit.Change{Field: "stock", Old: before.Stock, New: rw.Stock})
	}
	h.Audit.LogUpdate(ctx, model.EntityReward, rw.ID, audit.Meta{"name": rw.Name, "changes": changes})

	return c.JSON(http.StatusOK, rw)
}

// DeleteReward handles DELETE /v1/admin/rewards/:id.
func (h *AdminHandler) DeleteReward(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	before, err := h.Store.GetReward(ctx, id)
	if err != nil {
		return fail(c, err, "could not load reward")
	}
	if err := h.Store.DeleteReward(ctx, id); err != nil {
		return fail(c, err, "could not delete reward")
	}
	h.Audit.LogDelete(ctx, model.EntityReward, id, audit.Meta{"name": before.Name})
	return c.NoContent(http.StatusNoContent)
}

// ListRedemptions handles GET /v1/admin/redemptions with optional user_id
// and reward_id query filters.
func (h *AdminHandler) ListRedemptions(c echo.Context) error {
	var f model.RedemptionFilter
	if s := c.QueryParam("user_id"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
		}
		f.UserID = n
	}
	if s := c.QueryParam("reward_id"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reward_id"})
		}
		f.RewardID = n
	}
	items, err := h.Store.ListRedemptions(c.Request().Context(), f)
	if err != nil {
		return fail(c, err, "could not list redemptions")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// RedeemReward handles POST /v1/admin/rewards/:id/redeem, spending a
// user's points on one unit of stock. Stock and balance checks happen
// atomically in the backend.
func (h *AdminHandler) RedeemReward(c echo.Context) error {
	rewardID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		UserID int64 `json:"user_id,string"`
	}
	if err := c.Bind(&body); err != nil || body.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	ctx := c.Request().Context()
	red, err := h.Store.RedeemReward(ctx, body.UserID, rewardID)
	if err != nil {
		return fail(c, err, "could not redeem reward")
	}
	h.Audit.LogCreate(ctx, model.EntityReward, rewardID, audit.Meta{
		"details": fmt.Sprintf("Redeemed reward %q for user #%d (%d points deducted)",
			red.RewardName, red.UserID, red.PointsDeducted),
	})
	return c.JSON(http.StatusCreated, red)
}
