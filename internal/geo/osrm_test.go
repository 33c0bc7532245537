package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSRMRouteDistance_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/route/v1/driving/"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":12345.6}]}`))
	}))
	defer srv.Close()

	c := NewOSRM(srv.URL, srv.Client())
	meters, err := c.RouteDistance(context.Background(),
		Coordinates{Lat: 52.3138, Lon: 20.8445},
		Coordinates{Lat: 52.4, Lon: 20.9})
	require.NoError(t, err)
	assert.Equal(t, 12345.6, meters)
}

func TestOSRMRouteDistance_NoRoute(t *testing.T) {
	cases := []string{
		`{"code":"NoRoute","routes":[]}`,
		`{"code":"Ok","routes":[]}`,
	}
	for _, body := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		c := NewOSRM(srv.URL, srv.Client())
		_, err := c.RouteDistance(context.Background(), Coordinates{}, Coordinates{Lat: 1, Lon: 1})
		assert.ErrorIs(t, err, ErrNoRoute, "body=%s", body)
		srv.Close()
	}
}

func TestOSRMRouteDistance_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewOSRM(srv.URL, srv.Client())
	_, err := c.RouteDistance(context.Background(), Coordinates{}, Coordinates{Lat: 1, Lon: 1})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoRoute)
}
