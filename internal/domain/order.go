package domain

import "time"

type Packaging string

const (
	// PackagingOwn means the customer brings their own containers. Free,
	// and only allowed for pickup orders.
	PackagingOwn Packaging = "own"
	// PackagingBox is the orchard's reusable 15 kg box.
	PackagingBox Packaging = "box"
)

const (
	// BoxCapacityKg is how much one reusable box holds.
	BoxCapacityKg = 15
	// BoxFeeCents is the flat fee per box. A partially filled box still
	// costs a full box.
	BoxFeeCents int64 = 500
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusReady     = "ready"
	StatusPickedUp  = "picked_up"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// OrderStatuses lists every state an order can be in.
var OrderStatuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusReady,
	StatusPickedUp,
	StatusDelivered,
	StatusCancelled,
}

func IsValidStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type OrderLine struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	AppleID        string    `json:"appleId"`
	AppleName      string    `json:"appleName"`
	QuantityKg     int       `json:"quantityKg"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	TotalCents     int64     `json:"totalCents"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Pickup holds the scheduled collection slot at the orchard.
type Pickup struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Delivery holds the resolved delivery destination and the fee that was
// accepted at submission time. Lat/Lon come from geocoding, DistanceKm is
// the driving distance from the orchard.
type Delivery struct {
	Address    string  `json:"address"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKm float64 `json:"distanceKm"`
	FeeCents   int64   `json:"feeCents"`
}

type Order struct {
	ID                 string      `json:"id"`
	Lines              []OrderLine `json:"lines"`
	Packaging          Packaging   `json:"packaging"`
	Pickup             *Pickup     `json:"pickup,omitempty"`
	Delivery           *Delivery   `json:"delivery,omitempty"`
	CustomerName       string      `json:"customerName"`
	CustomerEmail      string      `json:"customerEmail,omitempty"`
	CustomerPhone      string      `json:"customerPhone"`
	Status             string      `json:"status"`
	TotalQuantityKg    int         `json:"totalQuantityKg"`
	FruitSubtotalCents int64       `json:"fruitSubtotalCents"`
	PackagingCents     int64       `json:"packagingCents"`
	DeliveryFeeCents   int64       `json:"deliveryFeeCents"`
	GrandTotalCents    int64       `json:"grandTotalCents"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
