package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/madahotspot/voucher-console/internal/api/middleware"
	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/store"
)

// ---------------------------------------------------------------------------
// Stub session service
// ---------------------------------------------------------------------------

type stubSessionService struct {
	session    *domain.Session
	cookie     string
	loginErr   error
	refreshErr error
	loggedOut  bool
}

func (s *stubSessionService) Login(_ context.Context, _, _ string) (*domain.Session, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.session, s.cookie, nil
}

func (s *stubSessionService) Logout(_ context.Context, session *domain.Session) error {
	s.loggedOut = true
	if session != nil {
		session.Principal = nil
		session.Authenticated = false
	}
	return nil
}

func (s *stubSessionService) Refresh(_ context.Context, session *domain.Session) (*domain.Session, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return session, nil
}

func (s *stubSessionService) Resolve(_ context.Context, _ string) (*domain.Session, error) {
	return s.session, nil
}

func adminSession() *domain.Session {
	return &domain.Session{
		ID:            "sid1",
		Authenticated: true,
		Principal:     &domain.Principal{ID: "u1", Username: "admin", Role: domain.RoleSuperAdmin},
	}
}

func cashierSession() *domain.Session {
	return &domain.Session{
		ID:            "sid2",
		Authenticated: true,
		Principal:     &domain.Principal{ID: "u2", Username: "rakoto", Role: domain.RoleCashier},
	}
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testRegistry() *store.Registry {
	return store.NewRegistry(store.Gateways{}, time.Hour, zerolog.Nop())
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	res := http.Response{Header: rec.Header()}
	for _, cookie := range res.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	return nil
}

// ---------------------------------------------------------------------------

func TestAuthHandler_LoginSuccessAdmin(t *testing.T) {
	svc := &stubSessionService{session: adminSession(), cookie: "signed-value"}
	h := NewAuthHandler(svc, testRegistry(), time.Hour)

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		User     *domain.Principal `json:"user"`
		Redirect string            `json:"redirect"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.User == nil || resp.User.Username != "admin" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
	if resp.Redirect != "/dashboard" {
		t.Fatalf("super_admin must land on /dashboard, got %q", resp.Redirect)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}
	if cookie.Value != "signed-value" || !cookie.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
}

func TestAuthHandler_LoginCashierLandsOnSell(t *testing.T) {
	svc := &stubSessionService{session: cashierSession(), cookie: "signed-value"}
	h := NewAuthHandler(svc, testRegistry(), time.Hour)

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email":"rakoto@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}

	var resp struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Redirect != "/sell" {
		t.Fatalf("cashier must land on /sell, got %q", resp.Redirect)
	}
}

func TestAuthHandler_LoginValidation(t *testing.T) {
	svc := &stubSessionService{session: adminSession()}
	h := NewAuthHandler(svc, testRegistry(), time.Hour)

	for _, body := range []string{
		`{"password":"secret"}`,
		`{"email":"admin@example.com"}`,
		`{"email":"not-an-email","password":"secret"}`,
	} {
		c, rec := newTestContext(http.MethodPost, "/auth/login", body)
		if err := h.Login(c); err != nil {
			t.Fatalf("body %s: %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	svc := &stubSessionService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, testRegistry(), time.Hour)

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
	if cookie := sessionCookie(rec); cookie != nil {
		t.Fatalf("no cookie must be set on failed login")
	}
}

func TestAuthHandler_LogoutClearsCookieAndState(t *testing.T) {
	session := adminSession()
	svc := &stubSessionService{session: session}
	registry := testRegistry()
	registry.StateFor(session.ID)
	h := NewAuthHandler(svc, registry, time.Hour)

	c, rec := newTestContext(http.MethodPost, "/auth/logout", "")
	c.Set(middleware.CtxSession, session)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !svc.loggedOut {
		t.Fatalf("session service logout not called")
	}
	if registry.Len() != 0 {
		t.Fatalf("per-session stores must be dropped on logout")
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.MaxAge != -1 {
		t.Fatalf("expected expired cookie, got %+v", cookie)
	}
}

func TestAuthHandler_LogoutWithoutSession(t *testing.T) {
	svc := &stubSessionService{}
	h := NewAuthHandler(svc, testRegistry(), time.Hour)

	c, rec := newTestContext(http.MethodPost, "/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout without session must succeed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ProfileRejectionExpiresCookie(t *testing.T) {
	session := adminSession()
	svc := &stubSessionService{session: session, refreshErr: domain.ErrSessionExpired}
	h := NewAuthHandler(svc, testRegistry(), time.Hour)

	c, rec := newTestContext(http.MethodGet, "/auth/profile", "")
	c.Set(middleware.CtxSession, session)

	err := h.Profile(c)
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.MaxAge != -1 {
		t.Fatalf("expected expired cookie on rejected refresh, got %+v", cookie)
	}
}

func TestAuthHandler_LandingRedirects(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{}, testRegistry(), time.Hour)

	// Authenticated admin on "/" goes to the dashboard.
	c, rec := newTestContext(http.MethodGet, "/", "")
	c.SetPath("/")
	c.Set(middleware.CtxSession, adminSession())
	if err := h.Landing(c); err != nil {
		t.Fatalf("landing: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("expected 303 to /dashboard, got %d %s", rec.Code, rec.Header().Get("Location"))
	}

	// Authenticated cashier on "/login" goes to the sell view.
	c, rec = newTestContext(http.MethodGet, "/login", "")
	c.SetPath("/login")
	c.Set(middleware.CtxSession, cashierSession())
	if err := h.Landing(c); err != nil {
		t.Fatalf("landing: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/sell" {
		t.Fatalf("expected 303 to /sell, got %d %s", rec.Code, rec.Header().Get("Location"))
	}

	// Unauthenticated on "/" goes to login.
	c, rec = newTestContext(http.MethodGet, "/", "")
	c.SetPath("/")
	if err := h.Landing(c); err != nil {
		t.Fatalf("landing: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != middleware.LoginPath {
		t.Fatalf("expected 303 to /login, got %d %s", rec.Code, rec.Header().Get("Location"))
	}

	// Unauthenticated on "/login" stays put.
	c, rec = newTestContext(http.MethodGet, "/login", "")
	c.SetPath("/login")
	if err := h.Landing(c); err != nil {
		t.Fatalf("landing: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on the login view, got %d", rec.Code)
	}
}
