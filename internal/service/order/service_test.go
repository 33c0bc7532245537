package order

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"srebrnasad/internal/domain"
	"srebrnasad/internal/geo"
	orderrepo "srebrnasad/internal/repository/order"
)

type stubOrderRepo struct {
	created *domain.Order
	err     error
}

func (s *stubOrderRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	s.created = &o
	return &o, s.err
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.created, s.err
}

func (s *stubOrderRepo) List(_ context.Context, _ orderrepo.ListFilter) ([]domain.Order, int, error) {
	return nil, 0, s.err
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, _ string, status string) (*domain.Order, error) {
	if s.created != nil {
		s.created.Status = status
	}
	return s.created, s.err
}

type stubAppleRepo struct {
	apples map[string]*domain.Apple
}

func (s *stubAppleRepo) GetByID(_ context.Context, id string) (*domain.Apple, error) {
	a, ok := s.apples[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

type stubRouter struct {
	meters float64
	err    error
	calls  int
}

func (s *stubRouter) RouteDistance(_ context.Context, _, _ geo.Coordinates) (float64, error) {
	s.calls++
	return s.meters, s.err
}

func newTestService(repo *stubOrderRepo, apples *stubAppleRepo, router *stubRouter) *Service {
	return &Service{
		repo:      repo,
		appleRepo: apples,
		router:    router,
		orchard:   geo.Coordinates{Lat: 52.3138, Lon: 20.8445},
		logger:    log.New(io.Discard, "", 0),
		now:       func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func availableGala() *stubAppleRepo {
	return &stubAppleRepo{apples: map[string]*domain.Apple{
		"gala": {ID: "gala", Name: "Gala", PriceCents: 450, Available: true},
	}}
}

func pickupIn(days int) *PickupInput {
	d := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &PickupInput{Date: d.Format("2006-01-02"), Time: "10:00"}
}

func TestCreateRejectsEmptyCart(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, availableGala(), &stubRouter{})
	if _, err := svc.Create(context.Background(), CreateInput{Packaging: "own"}); err == nil {
		t.Fatalf("expected empty cart error")
	}
}

func TestCreateRejectsDuplicateVariety(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, availableGala(), &stubRouter{})
	_, err := svc.Create(context.Background(), CreateInput{
		Lines: []LineInput{
			{AppleID: "gala", QuantityKg: 10},
			{AppleID: "gala", QuantityKg: 15},
		},
		Packaging:     "own",
		Pickup:        pickupIn(2),
		CustomerName:  "Jan",
		CustomerPhone: "600700800",
	})
	if err == nil || !strings.Contains(err.Error(), "twice") {
		t.Fatalf("expected duplicate variety error, got %v", err)
	}
}

func TestCreateQuantityRules(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, availableGala(), &stubRouter{})
	base := CreateInput{
		Packaging:     "own",
		Pickup:        pickupIn(2),
		CustomerName:  "Jan",
		CustomerPhone: "600700800",
	}

	for _, kg := range []int{5, 12, 255} {
		in := base
		in.Lines = []LineInput{{AppleID: "gala", QuantityKg: kg}}
		if _, err := svc.Create(context.Background(), in); err == nil {
			t.Fatalf("expected quantity error for %d kg", kg)
		}
	}

	in := base
	in.Lines = []LineInput{{AppleID: "gala", QuantityKg: 25}}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("unexpected error for 25 kg: %v", err)
	}
}

func TestCreateRejectsUnavailableVariety(t *testing.T) {
	apples := &stubAppleRepo{apples: map[string]*domain.Apple{
		"fuji": {ID: "fuji", Name: "Fuji", PriceCents: 550, Available: false},
	}}
	svc := newTestService(&stubOrderRepo{}, apples, &stubRouter{})
	_, err := svc.Create(context.Background(), CreateInput{
		Lines:         []LineInput{{AppleID: "fuji", QuantityKg: 10}},
		Packaging:     "own",
		Pickup:        pickupIn(2),
		CustomerName:  "Jan",
		CustomerPhone: "600700800",
	})
	if err == nil || !strings.Contains(err.Error(), "unavailable") {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestCreateRequiresExactlyOneFulfillment(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, availableGala(), &stubRouter{})
	in := CreateInput{
		Lines:         []LineInput{{AppleID: "gala", QuantityKg: 10}},
		Packaging:     "own",
		CustomerName:  "Jan",
		CustomerPhone: "600700800",
	}
	if _, err := svc.Create(context.Background(), in); err == nil {
		t.Fatalf("expected error when neither pickup nor delivery set")
	}

	in.Pickup = pickupIn(2)
	in.Delivery = &DeliveryInput{Address: "Warszawa", Lat: 52.2, Lon: 21.0}
	if _, err := svc.Create(context.Background(), in); err == nil {
		t.Fatalf("expected error when both pickup and delivery set")
	}
}

func TestCreateDeliveryRequiresBoxPackaging(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, availableGala(), &stubRouter{meters: 12000})
	_, err := svc.Create(context.Background(), CreateInput{
		Lines:         []LineInput{{AppleID: "gala", QuantityKg: 200}},
		Packaging:     "own",
		Delivery:      &DeliveryInput{Address: "Warszawa", Lat: 52.2, Lon: 21.0},
		CustomerName:  "Jan",
		CustomerPhone: "600700800",
	})
	if err == nil || !strings.Contains(err.Error(), "box") {
		t.Fatalf("expected box packaging error, got %v", err)
	}
}

func TestCreateDeliveryRevalidatesServerSide(t *testing.T) {
	router := &stubRouter{meters: 61000}
	svc := newTestService(&stubOrderRepo{}, availableGala(), router)
	_, err := svc.Create(context.Background(), CreateInput{
		Lines:         []LineInput{{AppleID: "gala", QuantityKg: 200}},
		Packaging:     "box",
		Delivery:      &DeliveryInput{Address: "Daleko", Lat: 51.0, Lon: 22.0},
		CustomerName:  "Jan",
		CustomerPhone: "600700800",
	})
	if err == nil || !strings.Contains(err.Error(), string(domain.ReasonOutOfRange)) {
		t.Fatalf("expected out-of-range rejection, got %v", err)
	}
	if router.calls != 1 {
		t.Fatalf("expected one routing call, got %d", router.calls)
	}
}

func TestCreateDeliveryHappyPath(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := newTestService(repo, availableGala(), &stubRouter{meters: 12345.6})
	got, err := svc.Create(context.Background(), CreateInput{
		Lines:         []LineInput{{AppleID: "gala", QuantityKg: 210}},
		Packaging:     "box",
		Delivery:      &DeliveryInput{Address: "Warszawa, Polska", Lat: 52.2297, Lon: 21.0122},
		CustomerName:  "Jan Kowalski",
		CustomerEmail: "jan@example.com",
		CustomerPhone: "600700800",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == "" || got.Status != domain.StatusPending {
		t.Fatalf("unexpected order identity: %+v", got)
	}
	if got.FruitSubtotalCents != 94500 {
		t.Fatalf("fruit subtotal = %d, want 94500", got.FruitSubtotalCents)
	}
	if got.PackagingCents != 7000 {
		t.Fatalf("packaging = %d, want 7000", got.PackagingCents)
	}
	if got.DeliveryFeeCents != 2500 {
		t.Fatalf("delivery fee = %d, want 2500", got.DeliveryFeeCents)
	}
	if got.GrandTotalCents != 104000 {
		t.Fatalf("grand total = %d, want 104000", got.GrandTotalCents)
	}
	if got.Delivery == nil || got.Delivery.DistanceKm != 12.3 {
		t.Fatalf("unexpected delivery details: %+v", got.Delivery)
	}
}

func TestCreatePickupLeadTime(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, availableGala(), &stubRouter{})
	in := CreateInput{
		Lines:         []LineInput{{AppleID: "gala", QuantityKg: 60}},
		Packaging:     "own",
		Pickup:        pickupIn(1),
		CustomerName:  "Jan",
		CustomerPhone: "600700800",
	}
	if _, err := svc.Create(context.Background(), in); err == nil {
		t.Fatalf("expected lead time error for 60 kg next-day pickup")
	}

	in.Pickup = pickupIn(3)
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("unexpected error for 3-day notice: %v", err)
	}
}

func TestValidateDeliveryWeightGate(t *testing.T) {
	router := &stubRouter{meters: 1000}
	svc := newTestService(&stubOrderRepo{}, availableGala(), router)

	got, err := svc.ValidateDelivery(context.Background(), 199, 52.2, 21.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Valid || got.Reason != domain.ReasonBelowMinimumWeight {
		t.Fatalf("unexpected verdict: %+v", got)
	}
	if router.calls != 0 {
		t.Fatalf("expected no routing call below minimum weight, got %d", router.calls)
	}
}

func TestValidateDeliveryNoRoute(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, availableGala(), &stubRouter{err: geo.ErrNoRoute})
	got, err := svc.ValidateDelivery(context.Background(), 200, 52.2, 21.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Valid || got.Reason != domain.ReasonNoRoute {
		t.Fatalf("unexpected verdict: %+v", got)
	}
}

func TestValidateDeliveryRadius(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, availableGala(), &stubRouter{meters: 50049})
	got, err := svc.ValidateDelivery(context.Background(), 200, 52.2, 21.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Valid || got.FeeCents != domain.DeliveryFeeCents || got.DistanceKm != 50.0 {
		t.Fatalf("unexpected verdict at boundary: %+v", got)
	}

	svc = newTestService(&stubOrderRepo{}, availableGala(), &stubRouter{meters: 50051})
	got, err = svc.ValidateDelivery(context.Background(), 200, 52.2, 21.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Valid || got.Reason != domain.ReasonOutOfRange {
		t.Fatalf("unexpected verdict past boundary: %+v", got)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, availableGala(), &stubRouter{})
	if _, err := svc.UpdateStatus(context.Background(), "id", "lost"); err == nil {
		t.Fatalf("expected invalid status error")
	}
}

func TestQuoteEmptyCartIsZero(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, availableGala(), &stubRouter{})
	got, err := svc.Quote(context.Background(), QuoteInput{Packaging: "own"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.GrandTotalCents != 0 {
		t.Fatalf("expected zero quote, got %+v", got)
	}
}
