package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// NominatimClient resolves free-text addresses against a Nominatim-compatible
// geocoding endpoint, restricted to a single country.
type NominatimClient struct {
	baseURL string
	country string
	http    *http.Client
}

func NewNominatim(baseURL, countryCode string, httpClient *http.Client) *NominatimClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &NominatimClient{baseURL: baseURL, country: countryCode, http: httpClient}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search returns geocoding matches for the address, best first. An empty
// slice means the address was not found.
func (c *NominatimClient) Search(ctx context.Context, address string) ([]Place, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "5")
	params.Set("q", address)
	if c.country != "" {
		params.Set("countrycodes", c.country)
	}

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "srebrnasad/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("geocode endpoint %d: %s", resp.StatusCode, string(b))
	}

	var raw []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(raw))
	for _, r := range raw {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lon, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		places = append(places, Place{
			Coordinates: Coordinates{Lat: lat, Lon: lon},
			DisplayName: r.DisplayName,
		})
	}
	return places, nil
}
