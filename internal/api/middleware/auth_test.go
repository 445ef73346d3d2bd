package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/madahotspot/voucher-console/internal/core/domain"
)

type stubSessionService struct {
	session    *domain.Session
	resolveErr error
	resolved   string
}

func (s *stubSessionService) Login(_ context.Context, _, _ string) (*domain.Session, string, error) {
	return nil, "", errors.New("not implemented")
}

func (s *stubSessionService) Logout(_ context.Context, _ *domain.Session) error { return nil }

func (s *stubSessionService) Refresh(_ context.Context, _ *domain.Session) (*domain.Session, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSessionService) Resolve(_ context.Context, cookieValue string) (*domain.Session, error) {
	s.resolved = cookieValue
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	return s.session, nil
}

func authContext(cookieValue string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthenticate_InjectsSession(t *testing.T) {
	session := &domain.Session{
		ID:            "sid1",
		Authenticated: true,
		Principal:     &domain.Principal{Username: "admin", Role: domain.RoleSuperAdmin},
	}
	svc := &stubSessionService{session: session}
	c, _ := authContext("signed-cookie-value")

	called := false
	handler := Authenticate(svc)(func(c echo.Context) error {
		called = true
		if SessionFrom(c) != session {
			t.Fatalf("session not injected")
		}
		if SessionFrom(c).Role() != domain.RoleSuperAdmin {
			t.Fatalf("role not restored")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if svc.resolved != "signed-cookie-value" {
		t.Fatalf("cookie value not passed to Resolve, got %q", svc.resolved)
	}
}

func TestAuthenticate_NoCookiePassesThroughUnauthenticated(t *testing.T) {
	svc := &stubSessionService{}
	c, _ := authContext("")

	called := false
	handler := Authenticate(svc)(func(c echo.Context) error {
		called = true
		if SessionFrom(c) != nil {
			t.Fatalf("expected no session")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthenticate_ResolveFailurePassesThroughUnauthenticated(t *testing.T) {
	svc := &stubSessionService{resolveErr: domain.ErrSessionExpired}
	c, _ := authContext("expired-cookie")

	called := false
	handler := Authenticate(svc)(func(c echo.Context) error {
		called = true
		if SessionFrom(c) != nil {
			t.Fatalf("expected no session for expired cookie")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("request must continue unauthenticated, not fail")
	}
}

func TestAuthenticate_DemotedSessionNotInjected(t *testing.T) {
	// Resolve can return a persisted but demoted session after a failed
	// refresh; it must not count as authenticated.
	svc := &stubSessionService{session: &domain.Session{ID: "sid1", Authenticated: false}}
	c, _ := authContext("cookie")

	handler := Authenticate(svc)(func(c echo.Context) error {
		if SessionFrom(c) != nil {
			t.Fatalf("demoted session must not be injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
