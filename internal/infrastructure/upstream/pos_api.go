package upstream

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

// POSAPI implements ports.POSGateway.
type POSAPI struct {
	c *Client
}

func NewPOSAPI(c *Client) *POSAPI {
	return &POSAPI{c: c}
}

func (a *POSAPI) List(ctx context.Context, upstreamCookie string) ([]domain.PointOfSale, error) {
	// Payload key follows the upstream's own spelling.
	var out struct {
		PointsOfSales []wirePOS `json:"pointsOfSales"`
	}
	if err := a.c.do(ctx, http.MethodGet, "/pos", upstreamCookie, nil, nil, &out); err != nil {
		return nil, err
	}
	points := make([]domain.PointOfSale, 0, len(out.PointsOfSales))
	for _, w := range out.PointsOfSales {
		points = append(points, w.toDomain())
	}
	return points, nil
}

func (a *POSAPI) Create(ctx context.Context, upstreamCookie string, payload ports.POSPayload) (*domain.PointOfSale, error) {
	var out struct {
		PointOfSale wirePOS `json:"pointOfSale"`
	}
	if err := a.c.do(ctx, http.MethodPost, "/pos", upstreamCookie, nil, payload, &out); err != nil {
		return nil, err
	}
	pos := out.PointOfSale.toDomain()
	return &pos, nil
}

func (a *POSAPI) Update(ctx context.Context, upstreamCookie, id string, payload ports.POSPayload) (*domain.PointOfSale, error) {
	var out struct {
		PointOfSale wirePOS `json:"pointOfSale"`
	}
	if err := a.c.do(ctx, http.MethodPut, "/pos/"+id, upstreamCookie, nil, payload, &out); err != nil {
		return nil, err
	}
	pos := out.PointOfSale.toDomain()
	return &pos, nil
}

func (a *POSAPI) Delete(ctx context.Context, upstreamCookie, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/pos/"+id, upstreamCookie, nil, nil, nil)
}

// Stats returns the per-point-of-sale report as rendered by the upstream.
func (a *POSAPI) Stats(ctx context.Context, upstreamCookie, id string, q ports.StatsQuery) (json.RawMessage, error) {
	var out struct {
		Stats json.RawMessage `json:"stats"`
	}
	if err := a.c.do(ctx, http.MethodGet, "/pos/"+id+"/stats", upstreamCookie, statsQuery(q), nil, &out); err != nil {
		return nil, err
	}
	return out.Stats, nil
}
