package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

const defaultSessionTTL = 12 * time.Hour

// SessionService implements ports.SessionService: it is the single writer of
// the principal, persisting every change write-through to the session
// repository so a console reload restores the last known state.
type SessionService struct {
	auth         ports.AuthGateway
	sessions     ports.SessionRepository
	audit        ports.AuditRecorder
	cookieSecret []byte
	ttl          time.Duration
	log          zerolog.Logger
}

func NewSessionService(auth ports.AuthGateway, sessions ports.SessionRepository, audit ports.AuditRecorder, cookieSecret string, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{
		auth:         auth,
		sessions:     sessions,
		audit:        audit,
		cookieSecret: []byte(cookieSecret),
		ttl:          ttl,
		log:          log,
	}
}

// Login exchanges credentials for an authenticated session. On success the
// session is persisted and a signed cookie value referencing it is returned.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.Session, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	principal, upstreamCookie, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:             newSessionID(),
		Principal:      principal,
		Authenticated:  true,
		UpstreamCookie: upstreamCookie,
		CreatedAt:      now,
		RefreshedAt:    now,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, "", fmt.Errorf("persist session: %w", err)
	}

	cookieValue, err := s.signCookie(session)
	if err != nil {
		return nil, "", fmt.Errorf("sign session cookie: %w", err)
	}

	s.log.Info().Str("username", principal.Username).Str("role", principal.Role).Msg("login")
	s.audit.Record(domain.AuditEntry{
		Actor:    principal.Username,
		Role:     principal.Role,
		Action:   "login",
		Resource: "session",
		At:       now,
	})

	return session, cookieValue, nil
}

// Logout clears the session. The persisted copy and the in-memory principal
// are cleared unconditionally before the upstream invalidation is attempted:
// being logged out must not depend on network availability. Calling it on an
// already-cleared session is a no-op.
func (s *SessionService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		// Expiry will reap it; the in-memory clear below still stands.
		s.log.Warn().Err(err).Str("sid", session.ID).Msg("failed to delete persisted session")
	}

	upstreamCookie := session.UpstreamCookie
	actor, role := "", ""
	if session.Principal != nil {
		actor, role = session.Principal.Username, session.Principal.Role
	}

	session.Principal = nil
	session.Authenticated = false
	session.UpstreamCookie = ""

	if upstreamCookie != "" {
		if err := s.auth.Logout(ctx, upstreamCookie); err != nil {
			s.log.Warn().Err(err).Msg("upstream logout failed, local session cleared anyway")
		}
	}

	if actor != "" {
		s.audit.Record(domain.AuditEntry{
			Actor:    actor,
			Role:     role,
			Action:   "logout",
			Resource: "session",
			At:       time.Now().UTC(),
		})
	}
	return nil
}

// Refresh re-validates the session against the upstream profile endpoint. On
// success the principal is replaced with the upstream copy and re-persisted;
// on rejection the session is demoted to unauthenticated and its persisted
// copy deleted.
func (s *SessionService) Refresh(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	if session == nil || !session.Authenticated {
		return nil, domain.ErrUnauthenticated
	}

	principal, err := s.auth.Profile(ctx, session.UpstreamCookie)
	if err != nil {
		if delErr := s.sessions.Delete(ctx, session.ID); delErr != nil {
			s.log.Warn().Err(delErr).Str("sid", session.ID).Msg("failed to delete stale session")
		}
		session.Principal = nil
		session.Authenticated = false
		session.UpstreamCookie = ""
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}

	session.Principal = principal
	session.RefreshedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

// Resolve maps a presented cookie value back to its persisted session. The
// persisted state is optimistic: callers gate routing on it, but
// authorization-sensitive flows confirm via Refresh.
func (s *SessionService) Resolve(ctx context.Context, cookieValue string) (*domain.Session, error) {
	sid, err := s.verifyCookie(cookieValue)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Find(ctx, sid)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// TTL returns the configured session lifetime, for cookie expiry.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) signCookie(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":  session.ID,
		"role": session.Role(),
		"exp":  time.Now().Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.cookieSecret)
}

func (s *SessionService) verifyCookie(cookieValue string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookieValue, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.cookieSecret, nil
	})
	if err != nil || !tkn.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrSessionExpired
		}
		return "", domain.ErrUnauthenticated
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrUnauthenticated
	}
	return sid, nil
}

// newSessionID returns a 32-hex-char random identifier.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
