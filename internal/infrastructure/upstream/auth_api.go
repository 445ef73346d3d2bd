package upstream

import (
	"context"
	"net/http"

	"github.com/madahotspot/voucher-console/internal/core/domain"
)

// AuthAPI implements ports.AuthGateway against the upstream auth endpoints.
type AuthAPI struct {
	c *Client
}

func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{c: c}
}

// Login exchanges credentials for the upstream session. The cookies the
// upstream sets on the response are what every later call replays.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*domain.Principal, string, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		User wireUser `json:"user"`
	}
	cookies, err := a.c.doCapture(ctx, http.MethodPost, "/auth/login", "", nil, body, &out)
	if err != nil {
		return nil, "", err
	}
	return out.User.toDomain(), cookies, nil
}

func (a *AuthAPI) Logout(ctx context.Context, upstreamCookie string) error {
	return a.c.do(ctx, http.MethodPost, "/auth/logout", upstreamCookie, nil, nil, nil)
}

// Profile re-validates the session. The upstream route is spelled
// "/auth/profil"; that is not a typo here.
func (a *AuthAPI) Profile(ctx context.Context, upstreamCookie string) (*domain.Principal, error) {
	var out struct {
		User wireUser `json:"user"`
	}
	if err := a.c.do(ctx, http.MethodGet, "/auth/profil", upstreamCookie, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.User.toDomain(), nil
}
