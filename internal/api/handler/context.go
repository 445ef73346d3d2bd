package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/madahotspot/voucher-console/internal/api/middleware"
	"github.com/madahotspot/voucher-console/internal/core/domain"
)

// ctxSession extracts the session injected by the Authenticate middleware and
// fast-fails before any service call: the guard should have stopped
// unauthenticated requests already, so a missing session here means the route
// was wired without it.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session := middleware.SessionFrom(c)
	if session == nil || !session.Authenticated {
		return nil, domain.ErrUnauthenticated
	}
	return session, nil
}
