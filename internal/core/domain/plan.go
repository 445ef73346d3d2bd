package domain

// Plan is a pricing plan for time-limited hotspot access. Duration is in
// hours, Price in ariary.
type Plan struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
}
