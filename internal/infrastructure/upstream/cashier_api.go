package upstream

import (
	"context"
	"net/http"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

// CashierAPI implements ports.CashierGateway.
type CashierAPI struct {
	c *Client
}

func NewCashierAPI(c *Client) *CashierAPI {
	return &CashierAPI{c: c}
}

func (a *CashierAPI) List(ctx context.Context, upstreamCookie string) ([]domain.Cashier, error) {
	var out struct {
		Cashiers []wireCashier `json:"cashiers"`
	}
	if err := a.c.do(ctx, http.MethodGet, "/cashier", upstreamCookie, nil, nil, &out); err != nil {
		return nil, err
	}
	cashiers := make([]domain.Cashier, 0, len(out.Cashiers))
	for _, w := range out.Cashiers {
		cashiers = append(cashiers, w.toDomain())
	}
	return cashiers, nil
}

func (a *CashierAPI) Create(ctx context.Context, upstreamCookie string, payload ports.CashierPayload) (*domain.Cashier, error) {
	var out struct {
		Cashier wireCashier `json:"cashier"`
	}
	if err := a.c.do(ctx, http.MethodPost, "/cashier", upstreamCookie, nil, payload, &out); err != nil {
		return nil, err
	}
	cashier := out.Cashier.toDomain()
	return &cashier, nil
}

func (a *CashierAPI) Update(ctx context.Context, upstreamCookie, id string, payload ports.CashierPayload) (*domain.Cashier, error) {
	var out struct {
		Cashier wireCashier `json:"cashier"`
	}
	if err := a.c.do(ctx, http.MethodPut, "/cashier/"+id, upstreamCookie, nil, payload, &out); err != nil {
		return nil, err
	}
	cashier := out.Cashier.toDomain()
	return &cashier, nil
}

func (a *CashierAPI) Delete(ctx context.Context, upstreamCookie, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/cashier/"+id, upstreamCookie, nil, nil, nil)
}
