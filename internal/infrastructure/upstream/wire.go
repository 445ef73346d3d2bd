package upstream

import (
	"encoding/json"
	"time"

	"github.com/madahotspot/voucher-console/internal/core/domain"
)

// The upstream API speaks MongoDB-flavored JSON: identifiers arrive as "_id"
// and reference fields may be populated into sub-documents. These wire types
// absorb that shape and map into the domain entities the console renders.

type wireUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (w wireUser) toDomain() *domain.Principal {
	return &domain.Principal{
		ID:       w.ID,
		Username: w.Username,
		Email:    w.Email,
		Role:     w.Role,
	}
}

type wirePlan struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	IsActive    bool    `json:"isActive"`
}

func (w wirePlan) toDomain() domain.Plan {
	return domain.Plan{
		ID:          w.ID,
		Name:        w.Name,
		Duration:    w.Duration,
		Price:       w.Price,
		Description: w.Description,
		IsActive:    w.IsActive,
	}
}

type wirePOS struct {
	ID       string                `json:"_id"`
	Name     string                `json:"name"`
	Location string                `json:"location"`
	Mikrotik domain.MikrotikConfig `json:"mikrotikConfig"`
	IsActive bool                  `json:"isActive"`
}

func (w wirePOS) toDomain() domain.PointOfSale {
	return domain.PointOfSale{
		ID:       w.ID,
		Name:     w.Name,
		Location: w.Location,
		Mikrotik: w.Mikrotik,
		IsActive: w.IsActive,
	}
}

// wireRef is a reference field that may arrive populated ({"_id": ..., ...})
// or as a bare identifier string.
type wireRef struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Code     string `json:"code"`
}

func (r *wireRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	type alias wireRef
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = wireRef(a)
	return nil
}

type wireCashier struct {
	ID          string  `json:"_id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	PointOfSale wireRef `json:"pointOfSaleId"`
	IsActive    bool    `json:"isActive"`
}

func (w wireCashier) toDomain() domain.Cashier {
	return domain.Cashier{
		ID:              w.ID,
		Username:        w.Username,
		Email:           w.Email,
		PointOfSaleID:   w.PointOfSale.ID,
		PointOfSaleName: w.PointOfSale.Name,
		IsActive:        w.IsActive,
	}
}

type wireSale struct {
	ID            string    `json:"_id"`
	Ticket        wireRef   `json:"ticketId"`
	Plan          wireRef   `json:"planId"`
	PointOfSale   wireRef   `json:"pointOfSaleId"`
	Cashier       wireRef   `json:"cashierId"`
	PaymentMethod string    `json:"paymentMethod"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (w wireSale) toDomain() domain.Sale {
	return domain.Sale{
		ID:              w.ID,
		TicketCode:      w.Ticket.Code,
		PlanName:        w.Plan.Name,
		PointOfSaleName: w.PointOfSale.Name,
		CashierUsername: w.Cashier.Username,
		PaymentMethod:   w.PaymentMethod,
		Amount:          w.Amount,
		CreatedAt:       w.CreatedAt,
	}
}

type wireTicket struct {
	Code     string  `json:"code"`
	PlanName string  `json:"planName"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

func (w wireTicket) toDomain() *domain.Ticket {
	return &domain.Ticket{
		Code:     w.Code,
		PlanName: w.PlanName,
		Duration: w.Duration,
		Price:    w.Price,
	}
}
