// Package ports defines the interfaces between the console core and its
// collaborators: the remote voucher API, session persistence, and the audit
// sink. The remote API is an external system; these gateways are its only
// surface inside the core.
package ports

import (
	"context"
	"encoding/json"

	"github.com/madahotspot/voucher-console/internal/core/domain"
)

// AuthGateway fronts the upstream authentication endpoints. The returned
// cookie string is the upstream session cookie and must be replayed on every
// subsequent call made for that principal.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*domain.Principal, string, error)
	Logout(ctx context.Context, upstreamCookie string) error
	Profile(ctx context.Context, upstreamCookie string) (*domain.Principal, error)
}

// PlanPayload is the create/update body for a pricing plan.
type PlanPayload struct {
	Name        string  `json:"name"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type PlanGateway interface {
	List(ctx context.Context, upstreamCookie string) ([]domain.Plan, error)
	Create(ctx context.Context, upstreamCookie string, payload PlanPayload) (*domain.Plan, error)
	Update(ctx context.Context, upstreamCookie, id string, payload PlanPayload) (*domain.Plan, error)
	Delete(ctx context.Context, upstreamCookie, id string) error
}

// POSPayload is the create/update body for a point of sale.
type POSPayload struct {
	Name     string                `json:"name"`
	Location string                `json:"location"`
	Mikrotik domain.MikrotikConfig `json:"mikrotikConfig"`
	IsActive *bool                 `json:"isActive,omitempty"`
}

// StatsQuery filters a statistics request. Zero-value fields are omitted from
// the upstream query string.
type StatsQuery struct {
	Period        string
	StartDate     string
	EndDate       string
	PointOfSaleID string
	CashierID     string
}

type POSGateway interface {
	List(ctx context.Context, upstreamCookie string) ([]domain.PointOfSale, error)
	Create(ctx context.Context, upstreamCookie string, payload POSPayload) (*domain.PointOfSale, error)
	Update(ctx context.Context, upstreamCookie, id string, payload POSPayload) (*domain.PointOfSale, error)
	Delete(ctx context.Context, upstreamCookie, id string) error
	Stats(ctx context.Context, upstreamCookie, id string, q StatsQuery) (json.RawMessage, error)
}

// CashierPayload is the create/update body for a cashier account.
type CashierPayload struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password,omitempty"`
	PointOfSaleID string `json:"pointOfSaleId"`
	IsActive      *bool  `json:"isActive,omitempty"`
}

type CashierGateway interface {
	List(ctx context.Context, upstreamCookie string) ([]domain.Cashier, error)
	Create(ctx context.Context, upstreamCookie string, payload CashierPayload) (*domain.Cashier, error)
	Update(ctx context.Context, upstreamCookie, id string, payload CashierPayload) (*domain.Cashier, error)
	Delete(ctx context.Context, upstreamCookie, id string) error
}

// HistoryQuery filters the sales history listing. Limit <= 0 means no limit.
type HistoryQuery struct {
	Limit         int
	PointOfSaleID string
	CashierID     string
}

type SalesGateway interface {
	History(ctx context.Context, upstreamCookie string, q HistoryQuery) ([]domain.Sale, error)
	Stats(ctx context.Context, upstreamCookie string, q StatsQuery) (*domain.SalesStats, error)
	CashierStats(ctx context.Context, upstreamCookie string, q StatsQuery) (json.RawMessage, error)
}

// PurchaseInput is the payload for selling one ticket. PlanID and
// PaymentMethod are required before the upstream is ever contacted.
type PurchaseInput struct {
	PlanID        string `json:"planId"`
	PaymentMethod string `json:"paymentMethod"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
}

type TicketGateway interface {
	Purchase(ctx context.Context, upstreamCookie string, input PurchaseInput) (*domain.Ticket, error)
	Verify(ctx context.Context, upstreamCookie, code string) (*domain.TicketVerification, error)
}
