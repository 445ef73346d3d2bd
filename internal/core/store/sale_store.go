package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

// SaleStore owns the sales history collection plus the latest aggregated
// statistics report for one console session. Sales are read-only here: the
// history is written by the upstream as a side effect of ticket purchases.
type SaleStore struct {
	api  ports.SalesGateway
	coll *Collection[domain.Sale]
	log  zerolog.Logger

	mu       sync.Mutex
	stats    *domain.SalesStats
	statsErr string
}

func NewSaleStore(api ports.SalesGateway, log zerolog.Logger) *SaleStore {
	return &SaleStore{
		api:  api,
		coll: NewCollection(func(s domain.Sale) string { return s.ID }),
		log:  log,
	}
}

func (s *SaleStore) Snapshot() ([]domain.Sale, bool, string) {
	return s.coll.Snapshot()
}

// FetchHistory replaces the collection with the filtered upstream listing,
// ordered as the server returned it. On failure the collection is emptied.
func (s *SaleStore) FetchHistory(ctx context.Context, upstreamCookie string, q ports.HistoryQuery) ([]domain.Sale, error) {
	seq := s.coll.BeginFetch()
	sales, err := s.api.History(ctx, upstreamCookie, q)
	if err != nil {
		s.coll.CompleteFetch(seq, nil, err.Error())
		return nil, err
	}
	s.coll.CompleteFetch(seq, sales, "")
	return sales, nil
}

// FetchStats replaces the stored statistics report. A failed fetch records
// the error but keeps the previous report, matching the history/stats split
// the console always had.
func (s *SaleStore) FetchStats(ctx context.Context, upstreamCookie string, q ports.StatsQuery) (*domain.SalesStats, error) {
	stats, err := s.api.Stats(ctx, upstreamCookie, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.statsErr = err.Error()
		return nil, err
	}
	s.stats = stats
	s.statsErr = ""
	return stats, nil
}

// Stats returns the last fetched report, which may be nil.
func (s *SaleStore) Stats() (*domain.SalesStats, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats, s.statsErr
}

// CashierStats is a passthrough to the per-cashier aggregate endpoint.
func (s *SaleStore) CashierStats(ctx context.Context, upstreamCookie string, q ports.StatsQuery) (json.RawMessage, error) {
	return s.api.CashierStats(ctx, upstreamCookie, q)
}
