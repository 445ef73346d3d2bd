package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/madahotspot/voucher-console/internal/api/metrics"
	"github.com/madahotspot/voucher-console/internal/api/middleware"
	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
	"github.com/madahotspot/voucher-console/internal/core/store"
)

// AuthHandler owns the session endpoints and the role-based landing
// redirects.
type AuthHandler struct {
	sessions ports.SessionService
	registry *store.Registry
	ttl      time.Duration
}

func NewAuthHandler(sessions ports.SessionService, registry *store.Registry, ttl time.Duration) *AuthHandler {
	return &AuthHandler{sessions: sessions, registry: registry, ttl: ttl}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User     *domain.Principal `json:"user"`
	Redirect string            `json:"redirect"`
}

// Login authenticates against the upstream API and establishes the console
// session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	session, cookieValue, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    cookieValue,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, loginResponse{
		User:     session.Principal,
		Redirect: domain.LandingPath(session.Role()),
	})
}

// Logout clears the console session. The response is identical whether or not
// the upstream invalidation succeeded: locally, the user is logged out.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session := middleware.SessionFrom(c)
	if session != nil {
		h.registry.Drop(session.ID)
		metrics.ActiveSessionStates.Set(float64(h.registry.Len()))
	}
	if err := h.sessions.Logout(c.Request().Context(), session); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

// Profile re-validates the session against the upstream and returns the
// current principal. A rejected session comes back 401 with the cookie
// expired, which sends the console to the login view.
//
// @Summary      Current profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Principal
// @Failure      401  {object}  map[string]string
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	refreshed, err := h.sessions.Refresh(c.Request().Context(), session)
	if err != nil {
		c.SetCookie(&http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return err
	}

	return c.JSON(http.StatusOK, refreshed.Principal)
}

// Landing redirects "/" and "/login" according to the session: authenticated
// principals land on their role's home view, everyone else on the login view.
func (h *AuthHandler) Landing(c echo.Context) error {
	session := middleware.SessionFrom(c)
	if session != nil && session.Authenticated {
		return c.Redirect(http.StatusSeeOther, domain.LandingPath(session.Role()))
	}
	if c.Path() == middleware.LoginPath {
		// Already where an unauthenticated visitor belongs.
		return c.JSON(http.StatusOK, map[string]string{"view": "login"})
	}
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// Unauthorized renders the forbidden landing for wrong-role navigations.
func (h *AuthHandler) Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusForbidden, map[string]string{
		"error": "you do not have access to this view",
	})
}
