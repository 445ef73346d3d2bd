package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/madahotspot/voucher-console/internal/core/ports"
)

const defaultIdleTTL = 30 * time.Minute

// Gateways bundles the upstream gateways the per-session stores delegate to.
type Gateways struct {
	Plans    ports.PlanGateway
	POS      ports.POSGateway
	Cashiers ports.CashierGateway
	Sales    ports.SalesGateway
	Tickets  ports.TicketGateway
}

// State is the full store set for one console session. Pages hold no
// authoritative state of their own; everything they render comes from here or
// from the session itself.
type State struct {
	Plans    *PlanStore
	POS      *POSStore
	Cashiers *CashierStore
	Sales    *SaleStore
	Tickets  *TicketStore

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *State) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Registry hands out per-session states, creating them on first use and
// evicting ones idle longer than the TTL.
type Registry struct {
	mu       sync.Mutex
	states   map[string]*State
	gateways Gateways
	idleTTL  time.Duration
	log      zerolog.Logger
}

func NewRegistry(gateways Gateways, idleTTL time.Duration, log zerolog.Logger) *Registry {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	return &Registry{
		states:   make(map[string]*State),
		gateways: gateways,
		idleTTL:  idleTTL,
		log:      log,
	}
}

// StateFor returns the store set for the given session, creating it on first
// use.
func (r *Registry) StateFor(sid string) *State {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.states[sid]; ok {
		st.touch(now)
		return st
	}

	st := &State{
		Plans:    NewPlanStore(r.gateways.Plans, r.log),
		POS:      NewPOSStore(r.gateways.POS, r.log),
		Cashiers: NewCashierStore(r.gateways.Cashiers, r.log),
		Sales:    NewSaleStore(r.gateways.Sales, r.log),
		Tickets:  NewTicketStore(r.gateways.Tickets, r.log),
		lastSeen: now,
	}
	r.states[sid] = st
	return st
}

// Drop discards the state for a session, called on logout.
func (r *Registry) Drop(sid string) {
	r.mu.Lock()
	delete(r.states, sid)
	r.mu.Unlock()
}

// Len returns the number of live states.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

// Start launches the idle sweeper. It stops when ctx is cancelled.
func (r *Registry) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.idleTTL / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.sweep(time.Now())
			}
		}
	}()
}

func (r *Registry) sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for sid, st := range r.states {
		if st.idleSince(now) > r.idleTTL {
			delete(r.states, sid)
			r.log.Debug().Str("sid", sid).Msg("evicted idle session state")
		}
	}
}
