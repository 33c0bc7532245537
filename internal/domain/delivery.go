package domain

// Business rules for home delivery.
const (
	// DeliveryMinQuantityKg is the smallest order that qualifies for delivery.
	DeliveryMinQuantityKg = 200
	// DeliveryRadiusKm is the maximum driving distance from the orchard.
	DeliveryRadiusKm = 50.0
	// DeliveryFeeCents is the flat delivery fee.
	DeliveryFeeCents int64 = 2500
)

// Reason explains why a delivery eligibility check came back invalid.
type Reason string

const (
	ReasonEmptyAddress       Reason = "EMPTY_ADDRESS"
	ReasonAddressNotFound    Reason = "ADDRESS_NOT_FOUND"
	ReasonNoRoute            Reason = "NO_ROUTE"
	ReasonOutOfRange         Reason = "OUT_OF_RANGE"
	ReasonBelowMinimumWeight Reason = "BELOW_MINIMUM_WEIGHT"
	ReasonValidationError    Reason = "VALIDATION_SERVICE_ERROR"
)

// Eligibility is the value result of a delivery check. Every failure path
// produces a well-formed Eligibility with Valid=false and a Reason; no error
// crosses the checker boundary.
type Eligibility struct {
	Valid      bool    `json:"valid"`
	DistanceKm float64 `json:"distanceKm,omitempty"`
	FeeCents   int64   `json:"feeCents"`
	Reason     Reason  `json:"reason,omitempty"`
	Lat        float64 `json:"lat,omitempty"`
	Lon        float64 `json:"lon,omitempty"`
	Address    string  `json:"address,omitempty"`
}

// Ineligible builds a failed result for the given reason.
func Ineligible(reason Reason) Eligibility {
	return Eligibility{Valid: false, Reason: reason}
}
