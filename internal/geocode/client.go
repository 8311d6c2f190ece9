// Package geocode enriches listings with coordinates and province looked up
// from the seller's postal code. Lookups go through a file-backed cache so a
// postal code is resolved over the network at most once across runs.
package geocode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Location is the resolved geography for one postal code.
type Location struct {
	Longitude float64 `json:"lon"`
	Latitude  float64 `json:"lat"`
	City      string  `json:"city"`
	Province  string  `json:"province"`
}

// Client resolves postal codes against the geocoding API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// Lookup resolves one postal code. Any failure, network or non-200, is
// returned as an error; the caller decides whether that degrades the row
// or aborts the stage.
func (c *Client) Lookup(zipCode string) (*Location, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, zipCode)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("geocode %s: %w", zipCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode %s: unexpected status %d", zipCode, resp.StatusCode)
	}

	var loc Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return nil, fmt.Errorf("geocode %s: decode response: %w", zipCode, err)
	}
	return &loc, nil
}
