package upstream

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

// TicketAPI implements ports.TicketGateway.
type TicketAPI struct {
	c *Client
}

func NewTicketAPI(c *Client) *TicketAPI {
	return &TicketAPI{c: c}
}

func (a *TicketAPI) Purchase(ctx context.Context, upstreamCookie string, input ports.PurchaseInput) (*domain.Ticket, error) {
	var out struct {
		Ticket wireTicket `json:"ticket"`
	}
	if err := a.c.do(ctx, http.MethodPost, "/tickets/purchase", upstreamCookie, nil, input, &out); err != nil {
		return nil, err
	}
	return out.Ticket.toDomain(), nil
}

func (a *TicketAPI) Verify(ctx context.Context, upstreamCookie, code string) (*domain.TicketVerification, error) {
	var out struct {
		Valid     bool        `json:"valid"`
		Ticket    *wireTicket `json:"ticket"`
		ExpiresAt *time.Time  `json:"expiresAt"`
		Message   string      `json:"message"`
	}
	// The code goes into the path; escape it so it cannot carry extra
	// segments or a query string.
	if err := a.c.do(ctx, http.MethodGet, "/tickets/verify/"+url.PathEscape(code), upstreamCookie, nil, nil, &out); err != nil {
		return nil, err
	}

	verdict := &domain.TicketVerification{
		Valid:     out.Valid,
		ExpiresAt: out.ExpiresAt,
		Message:   out.Message,
	}
	if out.Ticket != nil {
		verdict.Ticket = out.Ticket.toDomain()
	}
	return verdict, nil
}
