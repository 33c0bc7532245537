// Package geo holds thin HTTP clients for the public geocoding and routing
// providers the delivery check depends on.
package geo

import "errors"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is one geocoding match, best match first in provider responses.
type Place struct {
	Coordinates
	DisplayName string `json:"displayName"`
}

// ErrNoRoute is returned when the routing provider finds no driving route
// between the two points.
var ErrNoRoute = errors.New("no route between points")
