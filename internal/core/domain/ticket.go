package domain

import "time"

// Ticket is a purchased, time-limited hotspot access code. It is ephemeral
// console state: the ticket store holds the most recent one until it is
// cleared or replaced by the next purchase.
type Ticket struct {
	Code     string  `json:"code"`
	PlanName string  `json:"planName,omitempty"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

// TicketVerification is the upstream verdict on a ticket code.
type TicketVerification struct {
	Valid     bool       `json:"valid"`
	Ticket    *Ticket    `json:"ticket,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Message   string     `json:"message,omitempty"`
}
