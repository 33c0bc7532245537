// Package order validates, prices and persists customer orders, and hosts
// the authoritative delivery validation the eligibility check defers to.
package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"srebrnasad/internal/delivery"
	"srebrnasad/internal/domain"
	"srebrnasad/internal/geo"
	"srebrnasad/internal/pricing"
	orderrepo "srebrnasad/internal/repository/order"
)

type Service struct {
	repo      orderRepo
	appleRepo appleRepo
	router    delivery.Router
	orchard   geo.Coordinates
	logger    *log.Logger
	now       func() time.Time
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, f orderrepo.ListFilter) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}

type appleRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Apple, error)
}

func New(repo orderrepo.Repository, apples appleRepo, router delivery.Router, orchard geo.Coordinates, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:      repo,
		appleRepo: apples,
		router:    router,
		orchard:   orchard,
		logger:    logger,
		now:       time.Now,
	}
}

type LineInput struct {
	AppleID    string `json:"appleId"`
	QuantityKg int    `json:"quantityKg"`
}

type PickupInput struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type DeliveryInput struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type CreateInput struct {
	Lines         []LineInput    `json:"lines"`
	Packaging     string         `json:"packaging"`
	Pickup        *PickupInput   `json:"pickup"`
	Delivery      *DeliveryInput `json:"delivery"`
	CustomerName  string         `json:"customerName"`
	CustomerEmail string         `json:"customerEmail"`
	CustomerPhone string         `json:"customerPhone"`
}

// Create validates the submitted order, re-validates delivery server-side,
// prices the cart and persists the result. Client-supplied eligibility is
// never trusted: the fee and radius verdict are recomputed here.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if len(in.Lines) == 0 {
		return nil, errors.New("at least one variety required")
	}
	packaging := domain.Packaging(strings.ToLower(strings.TrimSpace(in.Packaging)))
	if packaging != domain.PackagingOwn && packaging != domain.PackagingBox {
		return nil, errors.New("packaging must be own or box")
	}
	if (in.Pickup == nil) == (in.Delivery == nil) {
		return nil, errors.New("exactly one of pickup or delivery required")
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, errors.New("customer name required")
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return nil, errors.New("customer phone required")
	}

	lines, pricingLines, err := s.resolveLines(ctx, in.Lines)
	if err != nil {
		return nil, err
	}

	totalKg := 0
	for _, l := range lines {
		totalKg += l.QuantityKg
	}

	order := domain.Order{
		ID:            uuid.NewString(),
		Lines:         lines,
		Packaging:     packaging,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		Status:        domain.StatusPending,
	}

	var eligibility *domain.Eligibility
	if in.Delivery != nil {
		if packaging != domain.PackagingBox {
			return nil, errors.New("delivery requires box packaging")
		}
		verdict, err := s.ValidateDelivery(ctx, totalKg, in.Delivery.Lat, in.Delivery.Lon)
		if err != nil {
			return nil, fmt.Errorf("delivery validation: %w", err)
		}
		if !verdict.Valid {
			return nil, fmt.Errorf("delivery not available: %s", verdict.Reason)
		}
		address := strings.TrimSpace(in.Delivery.Address)
		if address == "" {
			return nil, errors.New("delivery address required")
		}
		order.Delivery = &domain.Delivery{
			Address:    address,
			Lat:        in.Delivery.Lat,
			Lon:        in.Delivery.Lon,
			DistanceKm: verdict.DistanceKm,
			FeeCents:   verdict.FeeCents,
		}
		eligibility = &verdict
	} else {
		if err := s.validatePickup(in.Pickup, totalKg); err != nil {
			return nil, err
		}
		order.Pickup = &domain.Pickup{Date: in.Pickup.Date, Time: in.Pickup.Time}
	}

	quote := pricing.Compute(pricingLines, packaging, eligibility)
	order.TotalQuantityKg = quote.TotalQuantityKg
	order.FruitSubtotalCents = quote.FruitSubtotalCents
	order.PackagingCents = quote.PackagingCents
	order.DeliveryFeeCents = quote.DeliveryFeeCents
	order.GrandTotalCents = quote.GrandTotalCents

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("order service: created id=%s total_kg=%d grand_total_cents=%d delivery=%t",
		created.ID, created.TotalQuantityKg, created.GrandTotalCents, created.Delivery != nil)
	return created, nil
}

func (s *Service) resolveLines(ctx context.Context, inputs []LineInput) ([]domain.OrderLine, []pricing.Line, error) {
	seen := make(map[string]bool, len(inputs))
	lines := make([]domain.OrderLine, 0, len(inputs))
	pricingLines := make([]pricing.Line, 0, len(inputs))

	for _, in := range inputs {
		if seen[in.AppleID] {
			return nil, nil, fmt.Errorf("variety %s selected twice", in.AppleID)
		}
		seen[in.AppleID] = true

		apple, err := s.appleRepo.GetByID(ctx, in.AppleID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil, fmt.Errorf("variety %s not found", in.AppleID)
			}
			return nil, nil, err
		}
		if !apple.Available {
			return nil, nil, fmt.Errorf("variety %s is unavailable", apple.Name)
		}
		if in.QuantityKg < domain.MinLineQuantityKg {
			return nil, nil, fmt.Errorf("minimum %d kg per variety", domain.MinLineQuantityKg)
		}
		if (in.QuantityKg-domain.MinLineQuantityKg)%domain.QuantityStepKg != 0 {
			return nil, nil, fmt.Errorf("quantity must increase in %d kg steps", domain.QuantityStepKg)
		}
		if in.QuantityKg > apple.EffectiveMaxKg() {
			return nil, nil, fmt.Errorf("maximum %d kg of %s per order", apple.EffectiveMaxKg(), apple.Name)
		}

		lines = append(lines, domain.OrderLine{
			AppleID:        apple.ID,
			AppleName:      apple.Name,
			QuantityKg:     in.QuantityKg,
			UnitPriceCents: apple.PriceCents,
			TotalCents:     int64(in.QuantityKg) * apple.PriceCents,
		})
		pricingLines = append(pricingLines, pricing.Line{
			AppleID:        apple.ID,
			QuantityKg:     in.QuantityKg,
			UnitPriceCents: apple.PriceCents,
		})
	}
	return lines, pricingLines, nil
}

// validatePickup enforces the lead time large orders need: up to 30 kg one
// day, up to 50 kg two days, above that three days.
func (s *Service) validatePickup(p *PickupInput, totalKg int) error {
	if strings.TrimSpace(p.Date) == "" || strings.TrimSpace(p.Time) == "" {
		return errors.New("pickup date and time required")
	}
	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return errors.New("pickup date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", p.Time); err != nil {
		return errors.New("pickup time must be HH:MM")
	}

	leadDays := 1
	switch {
	case totalKg > 50:
		leadDays = 3
	case totalKg > 30:
		leadDays = 2
	}
	earliest := s.now().UTC().AddDate(0, 0, leadDays).Truncate(24 * time.Hour)
	if date.Before(earliest) {
		return fmt.Errorf("orders of %d kg need %d day(s) notice", totalKg, leadDays)
	}
	return nil
}

// ValidateDelivery is the authoritative check behind the delivery-validation
// endpoint: weight gate, driving distance from the orchard, radius, fee.
// It satisfies delivery.Validator so the eligibility checker can defer to it.
func (s *Service) ValidateDelivery(ctx context.Context, totalQuantityKg int, lat, lon float64) (domain.Eligibility, error) {
	if totalQuantityKg < domain.DeliveryMinQuantityKg {
		return domain.Ineligible(domain.ReasonBelowMinimumWeight), nil
	}

	meters, err := s.router.RouteDistance(ctx, s.orchard, geo.Coordinates{Lat: lat, Lon: lon})
	if err != nil {
		if errors.Is(err, geo.ErrNoRoute) {
			return domain.Ineligible(domain.ReasonNoRoute), nil
		}
		s.logger.Printf("order service: delivery validation route error=%v", err)
		return domain.Ineligible(domain.ReasonValidationError), nil
	}

	distanceKm := delivery.RoundKm(meters)
	if distanceKm > domain.DeliveryRadiusKm {
		e := domain.Ineligible(domain.ReasonOutOfRange)
		e.DistanceKm = distanceKm
		return e, nil
	}

	return domain.Eligibility{
		Valid:      true,
		DistanceKm: distanceKm,
		FeeCents:   domain.DeliveryFeeCents,
		Lat:        lat,
		Lon:        lon,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f orderrepo.ListFilter) ([]domain.Order, int, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.IsValidStatus(status) {
		return nil, fmt.Errorf("invalid status, must be one of: %s", strings.Join(domain.OrderStatuses, ", "))
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// QuoteInput mirrors the customer's in-progress cart for price preview.
type QuoteInput struct {
	Lines     []LineInput    `json:"lines"`
	Packaging string         `json:"packaging"`
	Delivery  *QuoteDelivery `json:"delivery"`
}

// QuoteDelivery signals that the customer holds a valid eligibility result.
// Only the verdict is taken from the client; the fee is always the flat rate.
type QuoteDelivery struct {
	Valid bool `json:"valid"`
}

// Quote prices the in-progress cart without persisting anything. Quantities
// are clamped nowhere: invalid carts fail the same validation as submission.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (pricing.Quote, error) {
	if len(in.Lines) == 0 {
		return pricing.Quote{}, nil
	}
	packaging := domain.Packaging(strings.ToLower(strings.TrimSpace(in.Packaging)))
	if packaging != domain.PackagingOwn && packaging != domain.PackagingBox {
		return pricing.Quote{}, errors.New("packaging must be own or box")
	}

	_, pricingLines, err := s.resolveLines(ctx, in.Lines)
	if err != nil {
		return pricing.Quote{}, err
	}

	var eligibility *domain.Eligibility
	if in.Delivery != nil && in.Delivery.Valid {
		eligibility = &domain.Eligibility{Valid: true, FeeCents: domain.DeliveryFeeCents}
	}
	return pricing.Compute(pricingLines, packaging, eligibility), nil
}
