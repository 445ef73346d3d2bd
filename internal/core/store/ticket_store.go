package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

// TicketStore holds the most recently purchased ticket for one console
// session until it is cleared or replaced by the next sale.
type TicketStore struct {
	api ports.TicketGateway
	log zerolog.Logger

	mu      sync.Mutex
	current *domain.Ticket
	lastErr string
}

func NewTicketStore(api ports.TicketGateway, log zerolog.Logger) *TicketStore {
	return &TicketStore{api: api, log: log}
}

// Current returns the ticket from the last successful purchase, or nil.
func (s *TicketStore) Current() (*domain.Ticket, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.lastErr
}

// Purchase sells one ticket. PlanID and PaymentMethod are validated locally
// before the upstream is contacted; on failure the current ticket stays
// unset and the upstream message is surfaced verbatim when present.
func (s *TicketStore) Purchase(ctx context.Context, upstreamCookie string, input ports.PurchaseInput) (*domain.Ticket, error) {
	if input.PlanID == "" || input.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: planId and paymentMethod are required", domain.ErrValidation)
	}
	if !domain.ValidPaymentMethod(input.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, input.PaymentMethod)
	}

	ticket, err := s.api.Purchase(ctx, upstreamCookie, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.current = nil
		s.lastErr = err.Error()
		return nil, err
	}

	s.current = ticket
	s.lastErr = ""
	s.log.Info().Str("code", ticket.Code).Str("payment_method", input.PaymentMethod).Msg("ticket sold")
	return ticket, nil
}

// Verify checks a ticket code upstream without touching the current ticket.
func (s *TicketStore) Verify(ctx context.Context, upstreamCookie, code string) (*domain.TicketVerification, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", domain.ErrValidation)
	}
	return s.api.Verify(ctx, upstreamCookie, code)
}

// Clear resets the current ticket so a new sale can start.
func (s *TicketStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.lastErr = ""
}
