package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

// SalesAPI implements ports.SalesGateway.
type SalesAPI struct {
	c *Client
}

func NewSalesAPI(c *Client) *SalesAPI {
	return &SalesAPI{c: c}
}

func (a *SalesAPI) History(ctx context.Context, upstreamCookie string, q ports.HistoryQuery) ([]domain.Sale, error) {
	query := url.Values{}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.PointOfSaleID != "" {
		query.Set("pointOfSaleId", q.PointOfSaleID)
	}
	if q.CashierID != "" {
		query.Set("cashierId", q.CashierID)
	}

	var out struct {
		Sales []wireSale `json:"sales"`
	}
	if err := a.c.do(ctx, http.MethodGet, "/sales/history", upstreamCookie, query, nil, &out); err != nil {
		return nil, err
	}
	sales := make([]domain.Sale, 0, len(out.Sales))
	for _, w := range out.Sales {
		sales = append(sales, w.toDomain())
	}
	return sales, nil
}

func (a *SalesAPI) Stats(ctx context.Context, upstreamCookie string, q ports.StatsQuery) (*domain.SalesStats, error) {
	var out domain.SalesStats
	if err := a.c.do(ctx, http.MethodGet, "/sales/stats", upstreamCookie, statsQuery(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *SalesAPI) CashierStats(ctx context.Context, upstreamCookie string, q ports.StatsQuery) (json.RawMessage, error) {
	var out struct {
		Stats json.RawMessage `json:"stats"`
	}
	if err := a.c.do(ctx, http.MethodGet, "/sales/cashier-stats", upstreamCookie, statsQuery(q), nil, &out); err != nil {
		return nil, err
	}
	return out.Stats, nil
}

// statsQuery encodes the shared statistics filters, omitting zero values.
func statsQuery(q ports.StatsQuery) url.Values {
	query := url.Values{}
	if q.Period != "" {
		query.Set("period", q.Period)
	}
	if q.StartDate != "" {
		query.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		query.Set("endDate", q.EndDate)
	}
	if q.PointOfSaleID != "" {
		query.Set("pointOfSaleId", q.PointOfSaleID)
	}
	if q.CashierID != "" {
		query.Set("cashierId", q.CashierID)
	}
	return query
}
