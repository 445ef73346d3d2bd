package domain

import (
	"encoding/json"
	"time"
)

// Payment methods accepted at the till.
const (
	PaymentCash        = "cash"
	PaymentOrangeMoney = "orange_money"
	PaymentMvola       = "mvola"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentOrangeMoney, PaymentMvola:
		return true
	}
	return false
}

// Sale is one completed voucher sale, flattened from the upstream's populated
// references for rendering.
type Sale struct {
	ID              string    `json:"id"`
	TicketCode      string    `json:"ticketCode,omitempty"`
	PlanName        string    `json:"planName,omitempty"`
	PointOfSaleName string    `json:"pointOfSaleName,omitempty"`
	CashierUsername string    `json:"cashierUsername,omitempty"`
	PaymentMethod   string    `json:"paymentMethod"`
	Amount          float64   `json:"amount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// StatsSummary is the aggregate header of a statistics report.
type StatsSummary struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalSales   int     `json:"totalSales"`
}

// SalesStats is the upstream statistics report. Breakdowns are computed
// server-side and rendered as-is, so they stay raw.
type SalesStats struct {
	Summary         StatsSummary    `json:"summary"`
	ByPlan          json.RawMessage `json:"byPlan,omitempty"`
	ByPaymentMethod json.RawMessage `json:"byPaymentMethod,omitempty"`
	ByPeriod        json.RawMessage `json:"byPeriod,omitempty"`
}
