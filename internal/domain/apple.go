package domain

import "time"

// Quantity and packaging rules for bulk apple orders.
const (
	// MinLineQuantityKg is the smallest quantity a single variety can be ordered in.
	MinLineQuantityKg = 10
	// QuantityStepKg is the increment above the minimum (10, 15, 20, ...).
	QuantityStepKg = 5
	// DefaultMaxQuantityKg caps a variety's per-order quantity when the
	// variety does not define its own limit.
	DefaultMaxQuantityKg = 250
)

type Apple struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	PriceCents    int64     `json:"priceCents"`
	Available     bool      `json:"available"`
	MaxQuantityKg int       `json:"maxQuantityKg"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EffectiveMaxKg returns the per-order quantity ceiling for this variety.
func (a Apple) EffectiveMaxKg() int {
	if a.MaxQuantityKg > 0 {
		return a.MaxQuantityKg
	}
	return DefaultMaxQuantityKg
}
