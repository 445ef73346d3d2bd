package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/madahotspot/voucher-console/internal/core/ports"
)

// SessionCookie is the name of the console's own session cookie.
const SessionCookie = "console_session"

// CtxSession is the context key the resolved session is stored under.
const CtxSession = "session"

// Authenticate resolves the session cookie into the persisted session and
// injects it into the request context. It never rejects by itself: a missing
// or invalid cookie simply leaves the request unauthenticated, and the route
// guard decides what that means for the route.
func Authenticate(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			session, err := sessions.Resolve(c.Request().Context(), cookie.Value)
			if err != nil || session == nil || !session.Authenticated {
				return next(c)
			}

			c.Set(CtxSession, session)
			return next(c)
		}
	}
}
