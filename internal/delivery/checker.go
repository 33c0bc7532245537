// Package delivery implements the eligibility check that gates home
// delivery: geocode the address, fetch the driving distance from the
// orchard, then ask the authoritative validator for the verdict and fee.
// Every failure resolves to a reason-coded Eligibility value; no error
// escapes Check.
package delivery

import (
	"context"
	"io"
	"log"
	"math"
	"strings"
	"time"

	"srebrnasad/internal/domain"
	"srebrnasad/internal/geo"
)

// State tracks where a check is in its sequential chain. Each step depends
// on the previous one, so the chain never runs steps in parallel.
type State string

const (
	StateIdle       State = "IDLE"
	StateGeocoding  State = "GEOCODING"
	StateRouting    State = "ROUTING"
	StateValidating State = "VALIDATING"
	StateResolved   State = "RESOLVED"
	StateFailed     State = "FAILED"
)

type Geocoder interface {
	Search(ctx context.Context, address string) ([]geo.Place, error)
}

type Router interface {
	RouteDistance(ctx context.Context, from, to geo.Coordinates) (float64, error)
}

// Validator is the authoritative delivery-validation step. Its verdict and
// fee win over anything computed client-side; the radius and fee schedule
// may change there without redeploying callers.
type Validator interface {
	ValidateDelivery(ctx context.Context, totalQuantityKg int, lat, lon float64) (domain.Eligibility, error)
}

type Checker struct {
	geocoder    Geocoder
	router      Router
	validator   Validator
	orchard     geo.Coordinates
	stepTimeout time.Duration
	logger      *log.Logger
}

func NewChecker(geocoder Geocoder, router Router, validator Validator, orchard geo.Coordinates, logger *log.Logger) *Checker {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Checker{
		geocoder:    geocoder,
		router:      router,
		validator:   validator,
		orchard:     orchard,
		stepTimeout: 10 * time.Second,
		logger:      logger,
	}
}

// Check runs the full eligibility chain for the address. Orders below the
// delivery minimum short-circuit before any network call. The returned
// Eligibility carries the validator's verdict and fee with the locally
// computed driving distance overlaid for display.
func (c *Checker) Check(ctx context.Context, address string, totalQuantityKg int) domain.Eligibility {
	state := StateIdle

	if totalQuantityKg < domain.DeliveryMinQuantityKg {
		return c.fail(state, domain.ReasonBelowMinimumWeight)
	}
	if strings.TrimSpace(address) == "" {
		return c.fail(state, domain.ReasonEmptyAddress)
	}

	state = StateGeocoding
	geocodeCtx, cancelGeocode := context.WithTimeout(ctx, c.stepTimeout)
	places, err := c.geocoder.Search(geocodeCtx, address)
	cancelGeocode()
	if err != nil || len(places) == 0 {
		if err != nil {
			c.logger.Printf("delivery check: geocode %q: %v", address, err)
		}
		return c.fail(state, domain.ReasonAddressNotFound)
	}
	// First match is canonical; alternates are not surfaced.
	place := places[0]

	state = StateRouting
	routeCtx, cancelRoute := context.WithTimeout(ctx, c.stepTimeout)
	meters, err := c.router.RouteDistance(routeCtx, c.orchard, place.Coordinates)
	cancelRoute()
	if err != nil {
		c.logger.Printf("delivery check: route to %q: %v", address, err)
		return c.fail(state, domain.ReasonNoRoute)
	}
	distanceKm := RoundKm(meters)

	state = StateValidating
	validateCtx, cancelValidate := context.WithTimeout(ctx, c.stepTimeout)
	verdict, err := c.validator.ValidateDelivery(validateCtx, totalQuantityKg, place.Lat, place.Lon)
	cancelValidate()
	if err != nil {
		c.logger.Printf("delivery check: validate %q: %v", address, err)
		return c.fail(state, domain.ReasonValidationError)
	}

	// The validator owns valid/fee/reason; the local distance is overlaid
	// so the figure the customer saw stays consistent.
	verdict.DistanceKm = distanceKm
	verdict.Lat = place.Lat
	verdict.Lon = place.Lon
	verdict.Address = place.DisplayName

	state = StateResolved
	if !verdict.Valid {
		state = StateFailed
	}
	c.logger.Printf("delivery check: address=%q state=%s valid=%t distance_km=%.1f", address, state, verdict.Valid, distanceKm)
	return verdict
}

func (c *Checker) fail(state State, reason domain.Reason) domain.Eligibility {
	c.logger.Printf("delivery check: state=%s -> %s reason=%s", state, StateFailed, reason)
	return domain.Ineligible(reason)
}

// RoundKm converts meters to kilometers rounded to one decimal, the
// precision shown to customers.
func RoundKm(meters float64) float64 {
	return math.Round(meters/100) / 10
}
