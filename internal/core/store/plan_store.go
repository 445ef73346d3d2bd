package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

// PlanStore owns the pricing-plan collection for one console session.
type PlanStore struct {
	api  ports.PlanGateway
	coll *Collection[domain.Plan]
	log  zerolog.Logger
}

func NewPlanStore(api ports.PlanGateway, log zerolog.Logger) *PlanStore {
	return &PlanStore{
		api:  api,
		coll: NewCollection(func(p domain.Plan) string { return p.ID }),
		log:  log,
	}
}

// Snapshot returns the current collection state.
func (s *PlanStore) Snapshot() ([]domain.Plan, bool, string) {
	return s.coll.Snapshot()
}

// FetchAll replaces the collection with the upstream listing. On failure the
// collection is emptied and the error recorded.
func (s *PlanStore) FetchAll(ctx context.Context, upstreamCookie string) ([]domain.Plan, error) {
	seq := s.coll.BeginFetch()
	plans, err := s.api.List(ctx, upstreamCookie)
	if err != nil {
		s.coll.CompleteFetch(seq, nil, err.Error())
		return nil, err
	}
	s.coll.CompleteFetch(seq, plans, "")
	return plans, nil
}

// Create sends the payload upstream and appends the server-returned plan, not
// the local payload, on success.
func (s *PlanStore) Create(ctx context.Context, upstreamCookie string, payload ports.PlanPayload) (*domain.Plan, error) {
	created, err := s.api.Create(ctx, upstreamCookie, payload)
	if err != nil {
		return nil, err
	}
	s.coll.Append(*created)
	return created, nil
}

// Update replaces the matching local element with the server-returned plan.
// An identifier unknown locally is non-fatal: the upstream copy still wins.
func (s *PlanStore) Update(ctx context.Context, upstreamCookie, id string, payload ports.PlanPayload) (*domain.Plan, error) {
	updated, err := s.api.Update(ctx, upstreamCookie, id, payload)
	if err != nil {
		return nil, err
	}
	if !s.coll.ReplaceByID(id, *updated) {
		s.log.Debug().Str("plan_id", id).Msg("updated plan not in local collection")
	}
	return updated, nil
}

// Delete removes the local element only after upstream confirmation.
func (s *PlanStore) Delete(ctx context.Context, upstreamCookie, id string) error {
	if err := s.api.Delete(ctx, upstreamCookie, id); err != nil {
		return err
	}
	if !s.coll.RemoveByID(id) {
		return domain.ErrNotFoundLocal
	}
	return nil
}
