package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/madahotspot/voucher-console/internal/api/metrics"
	"github.com/madahotspot/voucher-console/internal/core/domain"
)

// Guard routes for redirect targets.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// RequireRole is the authorization state machine applied before any
// role-restricted view:
//
//  1. not authenticated            → login, never the requested view
//  2. authenticated, role mismatch → unauthorized
//  3. otherwise                    → next handler
//
// It only reads the session snapshot injected by Authenticate; it never
// triggers authentication itself, and the same snapshot always yields the
// same decision. Browser navigations get a 303 redirect, API calls a JSON
// error body.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := SessionFrom(c)
			if session == nil || !session.Authenticated {
				metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
				if wantsHTML(c) {
					return c.Redirect(http.StatusSeeOther, LoginPath)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			}

			if len(allowed) > 0 {
				if _, ok := allowed[session.Role()]; !ok {
					metrics.GuardDenialsTotal.WithLabelValues("wrong_role").Inc()
					if wantsHTML(c) {
						return c.Redirect(http.StatusSeeOther, UnauthorizedPath)
					}
					return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
				}
			}

			return next(c)
		}
	}
}

// SessionFrom extracts the session injected by Authenticate, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	session, _ := c.Get(CtxSession).(*domain.Session)
	return session
}

// wantsHTML reports whether the client is a browser navigation rather than an
// API consumer.
func wantsHTML(c echo.Context) bool {
	accept := c.Request().Header.Get("Accept")
	return strings.Contains(accept, echo.MIMETextHTML)
}
