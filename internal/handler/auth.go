package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecowave/ecowave-hub/internal/audit"
	"github.com/ecowave/ecowave-hub/internal/model"
	"github.com/ecowave/ecowave-hub/internal/store"
	"github.com/ecowave/ecowave-hub/internal/utils"
)

// AuthHandler serves registration, login and logout. Tokens are
// short-lived access JWTs only; the dashboard re-authenticates when one
// expires.
type AuthHandler struct {
	Store        store.DataService
	Audit        *audit.Logger
	JWTSecret    string
	AccessTTLMin int
}

// NewAuthHandler constructs an AuthHandler and panics on nil dependencies.
func NewAuthHandler(svc store.DataService, auditLog *audit.Logger, secret string, ttlMin int) *AuthHandler {
	if svc == nil || auditLog == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Store: svc, Audit: auditLog, JWTSecret: secret, AccessTTLMin: ttlMin}
}

// Register handles POST /v1/auth/register and creates a regular user
// account. Admin accounts are provisioned through the user management
// endpoints, never by self-registration.
func (h *AuthHandler) Register(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" || strings.TrimSpace(body.FullName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password and full_name are required"})
	}
	if len(body.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}

	user, err := h.Store.SignUp(c.Request().Context(), model.NewUser{
		Email:    email,
		Password: body.Password,
		FullName: strings.TrimSpace(body.FullName),
		Role:     model.RoleUser,
	})
	if err != nil {
		return fail(c, err, "could not create account")
	}
	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /v1/auth/login. A successful admin login is recorded
// on the activity trail and pins the admin id for subsequent audit
// entries.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx := c.Request().Context()
	user, err := h.Store.SignIn(ctx, email, body.Password)
	if err != nil {
		return fail(c, err, "could not sign in")
	}

	tok, err := utils.NewAccessToken(h.JWTSecret, user.ID, user.Role, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}

	if user.Role == model.RoleAdmin {
		h.Audit.SetCurrentAdmin(user.ID)
		h.Audit.LogLogin(ctx)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
		"user":         user,
	})
}

// Logout handles POST /v1/auth/logout for the authenticated user.
func (h *AuthHandler) Logout(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	if err := h.Store.SignOut(ctx, uid); err != nil {
		return fail(c, err, "could not sign out")
	}
	if role, _ := c.Get("role").(string); role == model.RoleAdmin {
		h.Audit.LogLogout(ctx)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "signed out"})
}

// Me handles GET /v1/me and returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	user, err := h.Store.GetUser(c.Request().Context(), uid)
	if err != nil {
		return fail(c, err, "could not load profile")
	}
	return c.JSON(http.StatusOK, user)
}
