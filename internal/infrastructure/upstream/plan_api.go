package upstream

import (
	"context"
	"net/http"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

// PlanAPI implements ports.PlanGateway.
type PlanAPI struct {
	c *Client
}

func NewPlanAPI(c *Client) *PlanAPI {
	return &PlanAPI{c: c}
}

func (a *PlanAPI) List(ctx context.Context, upstreamCookie string) ([]domain.Plan, error) {
	var out struct {
		Plans []wirePlan `json:"plans"`
	}
	if err := a.c.do(ctx, http.MethodGet, "/plans", upstreamCookie, nil, nil, &out); err != nil {
		return nil, err
	}
	plans := make([]domain.Plan, 0, len(out.Plans))
	for _, w := range out.Plans {
		plans = append(plans, w.toDomain())
	}
	return plans, nil
}

func (a *PlanAPI) Create(ctx context.Context, upstreamCookie string, payload ports.PlanPayload) (*domain.Plan, error) {
	var out struct {
		Plan wirePlan `json:"plan"`
	}
	if err := a.c.do(ctx, http.MethodPost, "/plans", upstreamCookie, nil, payload, &out); err != nil {
		return nil, err
	}
	plan := out.Plan.toDomain()
	return &plan, nil
}

func (a *PlanAPI) Update(ctx context.Context, upstreamCookie, id string, payload ports.PlanPayload) (*domain.Plan, error) {
	var out struct {
		Plan wirePlan `json:"plan"`
	}
	if err := a.c.do(ctx, http.MethodPut, "/plans/"+id, upstreamCookie, nil, payload, &out); err != nil {
		return nil, err
	}
	plan := out.Plan.toDomain()
	return &plan, nil
}

func (a *PlanAPI) Delete(ctx context.Context, upstreamCookie, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/plans/"+id, upstreamCookie, nil, nil, nil)
}
