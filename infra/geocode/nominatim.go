// Package geocode resolves city names to coordinates via Nominatim.
package geocode

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/homevolt/homevolt/infra/logger"
)

// DefaultBaseURL is the public Nominatim search endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org/search"

// userAgent identifies the service per the Nominatim usage policy.
const userAgent = "homevolt/1.0"

// Match is one geocoding candidate.
type Match struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Client queries Nominatim for city coordinates.
type Client struct {
	http    *resty.Client
	baseURL string
	log     logger.Logger
}

// New creates a Client against the public Nominatim API.
func New() *Client { return NewWithBaseURL(DefaultBaseURL) }

// NewWithBaseURL creates a Client against the given endpoint.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		http:    resty.New().SetTimeout(10 * time.Second).SetHeader("User-Agent", userAgent),
		baseURL: baseURL,
		log:     logger.New("geocode-client"),
	}
}

// Search returns up to limit candidates for the city string.
func (c *Client) Search(ctx context.Context, city string, limit int) ([]Match, error) {
	var out []Match
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      city,
			"format": "json",
			"limit":  strconv.Itoa(limit),
		}).
		SetResult(&out).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geocode request: status %d", resp.StatusCode())
	}
	return out, nil
}

// Locate returns the coordinates of the best match for the city.
func (c *Client) Locate(ctx context.Context, city string) (float64, float64, error) {
	matches, err := c.Search(ctx, city, 1)
	if err != nil {
		return 0, 0, err
	}
	if len(matches) == 0 {
		return 0, 0, fmt.Errorf("no geocoding match for %q", city)
	}
	lat, err := strconv.ParseFloat(matches[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(matches[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude: %w", err)
	}
	return lat, lon, nil
}
