package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OSRMClient fetches driving distances from an OSRM-compatible routing
// endpoint.
type OSRMClient struct {
	baseURL string
	http    *http.Client
}

func NewOSRM(baseURL string, httpClient *http.Client) *OSRMClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OSRMClient{baseURL: baseURL, http: httpClient}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

// RouteDistance returns the driving distance in meters from origin to
// destination, or ErrNoRoute when the provider cannot connect the points.
func (c *OSRMClient) RouteDistance(ctx context.Context, from, to Coordinates) (float64, error) {
	// OSRM coordinate order is lon,lat.
	reqURL := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.baseURL, from.Lon, from.Lat, to.Lon, to.Lat)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("routing endpoint %d: %s", resp.StatusCode, string(b))
	}

	var raw osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, err
	}
	if raw.Code != "Ok" || len(raw.Routes) == 0 {
		return 0, ErrNoRoute
	}
	return raw.Routes[0].Distance, nil
}
