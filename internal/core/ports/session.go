package ports

import (
	"context"

	"github.com/madahotspot/voucher-console/internal/core/domain"
)

// SessionRepository persists sessions across console restarts and page
// reloads. Entries expire on their own after the configured TTL; Delete is
// the explicit invalidation used by logout.
type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, sid string) (*domain.Session, error)
	Delete(ctx context.Context, sid string) error
}

// SessionService owns the principal. Its three mutating operations are the
// only writers of Session.Principal and Session.Authenticated anywhere in the
// console.
type SessionService interface {
	// Login exchanges credentials for an authenticated session and the signed
	// cookie value that references it.
	Login(ctx context.Context, email, password string) (*domain.Session, string, error)
	// Logout invalidates the session. The local clear is unconditional; the
	// upstream call is best-effort.
	Logout(ctx context.Context, session *domain.Session) error
	// Refresh re-validates the session against the upstream profile endpoint,
	// demoting to unauthenticated on rejection.
	Refresh(ctx context.Context, session *domain.Session) (*domain.Session, error)
	// Resolve maps a presented cookie value back to its persisted session.
	Resolve(ctx context.Context, cookieValue string) (*domain.Session, error)
}
