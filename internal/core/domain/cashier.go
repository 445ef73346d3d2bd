package domain

// Cashier is a seller account attached to a point of sale. Passwords are only
// ever part of create/update payloads, never of the rendered entity.
type Cashier struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	PointOfSaleID   string `json:"pointOfSaleId,omitempty"`
	PointOfSaleName string `json:"pointOfSaleName,omitempty"`
	IsActive        bool   `json:"isActive"`
}
