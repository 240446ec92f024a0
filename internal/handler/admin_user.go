package handler // user management endpoints for the admin dashboard

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecowave/ecowave-hub/internal/audit"
	"github.com/ecowave/ecowave-hub/internal/model"
)

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	items, err := h.Store.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, err, "could not list users")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetUser handles GET /v1/admin/users/:id.
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	user, err := h.Store.GetUser(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "could not load user")
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /v1/admin/users. Unlike self-registration this
// endpoint may assign any role and a starting point balance.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var body struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FullName  string `json:"full_name"`
		Role      string `json:"role"`
		Points    int64  `json:"points"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" || strings.TrimSpace(body.FullName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password and full_name are required"})
	}
	role := body.Role
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleAdmin && role != model.RoleUser {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be admin or user"})
	}
	if body.Points < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "points cannot be negative"})
	}

	ctx := c.Request().Context()
	user, err := h.Store.CreateUser(ctx, model.NewUser{
		Email:     email,
		Password:  body.Password,
		FullName:  strings.TrimSpace(body.FullName),
		Role:      role,
		Points:    body.Points,
		AvatarURL: body.AvatarURL,
	})
	if err != nil {
		return fail(c, err, "could not create user")
	}

	h.Audit.LogCreate(ctx, model.EntityUser, user.ID, audit.Meta{"email": user.Email})
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /v1/admin/users/:id. Only fields present in the
// payload are written; the activity trail records a field-level diff
// against the previous values.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Email     *string `json:"email"`
		FullName  *string `json:"full_name"`
		Role      *string `json:"role"`
		Points    *int64  `json:"points"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Role != nil && *body.Role != model.RoleAdmin && *body.Role != model.RoleUser {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be admin or user"})
	}
	if body.Points != nil && *body.Points < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "points cannot be negative"})
	}

	ctx := c.Request().Context()
	before, err := h.Store.GetUser(ctx, id)
	if err != nil {
		return fail(c, err, "could not load user")
	}

	user, err := h.Store.UpdateUser(ctx, id, model.UserUpdate{
		Email:     body.Email,
		FullName:  body.FullName,
		Role:      body.Role,
		Points:    body.Points,
		AvatarURL: body.AvatarURL,
	})
	if err != nil {
		return fail(c, err, "could not update user")
	}

	var changes []audit.Change
	if body.Email != nil && before.Email != user.Email {
		changes = append(changes, audit.Change{Field: "email", Old: before.Email, New: user.Email})
	}
	if body.FullName != nil && before.FullName != user.FullName {
		changes = append(changes, audit.Change{Field: "full_name", Old: before.FullName, New: user.FullName})
	}
	if body.Role != nil && before.Role != user.Role {
		changes = append(changes, audit.Change{Field: "role", Old: before.Role, New: user.Role})
	}
	if body.Points != nil && before.Points != user.Points {
		changes = append(changes, audit.Change{Field: "points", Old: before.Points, New: user.Points})
	}
	if body.AvatarURL != nil && before.AvatarURL != user.AvatarURL {
		changes = append(changes, audit.Change{Field: "avatar_url", Old: before.AvatarURL, New: user.AvatarURL})
	}
	h.Audit.LogUpdate(ctx, model.EntityUser, user.ID, audit.Meta{"email": user.Email, "changes": changes})

	return c.JSON(http.StatusOK, user)
}

// AddPoints handles POST /v1/admin/users/:id/points, applying a signed
// delta to the user's balance. The backend clamps the result at zero.
func (h *AdminHandler) AddPoints(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Delta int64 `json:"delta"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Delta == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "delta must be non-zero"})
	}

	ctx := c.Request().Context()
	before, err := h.Store.GetUser(ctx, id)
	if err != nil {
		return fail(c, err, "could not load user")
	}
	user, err := h.Store.AddPoints(ctx, id, body.Delta)
	if err != nil {
		return fail(c, err, "could not adjust points")
	}

	h.Audit.LogUpdate(ctx, model.EntityUser, user.ID, audit.Meta{
		"email":   user.Email,
		"changes": []audit.Change{{Field: "points", Old: before.Points, New: user.Points}},
	})
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /v1/admin/users/:id.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	before, err := h.Store.GetUser(ctx, id)
	if err != nil {
		return fail(c, err, "could not load user")
	}
	if err := h.Store.DeleteUser(ctx, id); err != nil {
		return fail(c, err, "could not delete user")
	}
	h.Audit.LogDelete(ctx, model.EntityUser, id, audit.Meta{"email": before.Email})
	return c.NoContent(http.StatusNoContent)
}
