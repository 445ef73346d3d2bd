package domain

// MikrotikConfig holds the router credentials a point of sale provisions
// vouchers against.
type MikrotikConfig struct {
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
}

// PointOfSale is a physical location where vouchers are sold.
type PointOfSale struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Location string         `json:"location"`
	Mikrotik MikrotikConfig `json:"mikrotikConfig"`
	IsActive bool           `json:"isActive"`
}
