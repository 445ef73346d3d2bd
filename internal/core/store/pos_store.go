package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

// POSStore owns the points-of-sale collection for one console session.
type POSStore struct {
	api  ports.POSGateway
	coll *Collection[domain.PointOfSale]
	log  zerolog.Logger
}

func NewPOSStore(api ports.POSGateway, log zerolog.Logger) *POSStore {
	return &POSStore{
		api:  api,
		coll: NewCollection(func(p domain.PointOfSale) string { return p.ID }),
		log:  log,
	}
}

func (s *POSStore) Snapshot() ([]domain.PointOfSale, bool, string) {
	return s.coll.Snapshot()
}

func (s *POSStore) FetchAll(ctx context.Context, upstreamCookie string) ([]domain.PointOfSale, error) {
	seq := s.coll.BeginFetch()
	points, err := s.api.List(ctx, upstreamCookie)
	if err != nil {
		s.coll.CompleteFetch(seq, nil, err.Error())
		return nil, err
	}
	s.coll.CompleteFetch(seq, points, "")
	return points, nil
}

func (s *POSStore) Create(ctx context.Context, upstreamCookie string, payload ports.POSPayload) (*domain.PointOfSale, error) {
	created, err := s.api.Create(ctx, upstreamCookie, payload)
	if err != nil {
		return nil, err
	}
	s.coll.Append(*created)
	return created, nil
}

func (s *POSStore) Update(ctx context.Context, upstreamCookie, id string, payload ports.POSPayload) (*domain.PointOfSale, error) {
	updated, err := s.api.Update(ctx, upstreamCookie, id, payload)
	if err != nil {
		return nil, err
	}
	if !s.coll.ReplaceByID(id, *updated) {
		s.log.Debug().Str("pos_id", id).Msg("updated point of sale not in local collection")
	}
	return updated, nil
}

func (s *POSStore) Delete(ctx context.Context, upstreamCookie, id string) error {
	if err := s.api.Delete(ctx, upstreamCookie, id); err != nil {
		return err
	}
	if !s.coll.RemoveByID(id) {
		return domain.ErrNotFoundLocal
	}
	return nil
}

// Stats fetches the statistics report for one point of sale. The report is a
// passthrough: it never touches the collection.
func (s *POSStore) Stats(ctx context.Context, upstreamCookie, id string, q ports.StatsQuery) (json.RawMessage, error) {
	return s.api.Stats(ctx, upstreamCookie, id, q)
}
