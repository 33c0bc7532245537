// Package pricing computes order quotes from cart contents. It is pure
// arithmetic over integer grosz amounts: no I/O, no rounding below the
// display boundary.
package pricing

import "srebrnasad/internal/domain"

// Line is one priced cart entry. Quantity bounds are the caller's
// responsibility; the engine assumes validated input and does not clamp.
type Line struct {
	AppleID        string
	QuantityKg     int
	UnitPriceCents int64
}

// Quote is the derived price breakdown for a cart. It is recomputed on
// every change and never stored.
type Quote struct {
	TotalQuantityKg    int   `json:"totalQuantityKg"`
	FruitSubtotalCents int64 `json:"fruitSubtotalCents"`
	PackagingCents     int64 `json:"packagingCents"`
	DeliveryFeeCents   int64 `json:"deliveryFeeCents"`
	GrandTotalCents    int64 `json:"grandTotalCents"`
}

// Compute derives the quote for the given cart, packaging choice and last
// delivery eligibility result. A nil delivery means delivery was not
// requested; an invalid eligibility contributes no fee. An empty cart yields
// the zero Quote.
func Compute(lines []Line, packaging domain.Packaging, delivery *domain.Eligibility) Quote {
	var q Quote
	for _, line := range lines {
		q.TotalQuantityKg += line.QuantityKg
		q.FruitSubtotalCents += int64(line.QuantityKg) * line.UnitPriceCents
	}
	if len(lines) == 0 {
		return q
	}
	if packaging == domain.PackagingBox {
		q.PackagingCents = PackagingCents(q.TotalQuantityKg)
	}
	if delivery != nil && delivery.Valid {
		q.DeliveryFeeCents = delivery.FeeCents
	}
	q.GrandTotalCents = q.FruitSubtotalCents + q.PackagingCents + q.DeliveryFeeCents
	return q
}

// PackagingCents prices whole 15 kg boxes with ceiling rounding: a partially
// filled box still costs a full box.
func PackagingCents(totalQuantityKg int) int64 {
	if totalQuantityKg <= 0 {
		return 0
	}
	boxes := (totalQuantityKg + domain.BoxCapacityKg - 1) / domain.BoxCapacityKg
	return int64(boxes) * domain.BoxFeeCents
}
