package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

// CashierStore owns the cashier collection for one console session.
type CashierStore struct {
	api  ports.CashierGateway
	coll *Collection[domain.Cashier]
	log  zerolog.Logger
}

func NewCashierStore(api ports.CashierGateway, log zerolog.Logger) *CashierStore {
	return &CashierStore{
		api:  api,
		coll: NewCollection(func(c domain.Cashier) string { return c.ID }),
		log:  log,
	}
}

func (s *CashierStore) Snapshot() ([]domain.Cashier, bool, string) {
	return s.coll.Snapshot()
}

func (s *CashierStore) FetchAll(ctx context.Context, upstreamCookie string) ([]domain.Cashier, error) {
	seq := s.coll.BeginFetch()
	cashiers, err := s.api.List(ctx, upstreamCookie)
	if err != nil {
		s.coll.CompleteFetch(seq, nil, err.Error())
		return nil, err
	}
	s.coll.CompleteFetch(seq, cashiers, "")
	return cashiers, nil
}

func (s *CashierStore) Create(ctx context.Context, upstreamCookie string, payload ports.CashierPayload) (*domain.Cashier, error) {
	created, err := s.api.Create(ctx, upstreamCookie, payload)
	if err != nil {
		return nil, err
	}
	s.coll.Append(*created)
	return created, nil
}

func (s *CashierStore) Update(ctx context.Context, upstreamCookie, id string, payload ports.CashierPayload) (*domain.Cashier, error) {
	updated, err := s.api.Update(ctx, upstreamCookie, id, payload)
	if err != nil {
		return nil, err
	}
	if !s.coll.ReplaceByID(id, *updated) {
		s.log.Debug().Str("cashier_id", id).Msg("updated cashier not in local collection")
	}
	return updated, nil
}

func (s *CashierStore) Delete(ctx context.Context, upstreamCookie, id string) error {
	if err := s.api.Delete(ctx, upstreamCookie, id); err != nil {
		return err
	}
	if !s.coll.RemoveByID(id) {
		return domain.ErrNotFoundLocal
	}
	return nil
}
