package domain

import "time"

const (
	RoleSuperAdmin = "super_admin"
	RoleCashier    = "cashier"
)

// Principal models the authenticated actor behind a console session.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// Session is the console-side authentication state. Authenticated is true if
// and only if Principal is set, and only the session service writes either
// field. UpstreamCookie carries the remote API's session cookie and is
// replayed on every upstream call made on behalf of this session.
type Session struct {
	ID             string     `json:"sid"`
	Principal      *Principal `json:"principal,omitempty"`
	Authenticated  bool       `json:"authenticated"`
	UpstreamCookie string     `json:"upstream_cookie,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	RefreshedAt    time.Time  `json:"refreshed_at"`
}

// Role returns the principal's role, or the empty string for an
// unauthenticated session.
func (s *Session) Role() string {
	if s == nil || s.Principal == nil {
		return ""
	}
	return s.Principal.Role
}

// LandingPath is the view a principal is sent to after login or when hitting
// the root or login route while already authenticated.
func LandingPath(role string) string {
	if role == RoleSuperAdmin {
		return "/dashboard"
	}
	return "/sell"
}
