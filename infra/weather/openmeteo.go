// Package weather fetches next-day forecasts from the Open-Meteo API.
package weather

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/homevolt/homevolt/core/model"
	"github.com/homevolt/homevolt/infra/logger"
)

// DefaultBaseURL is the public Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// weatherCodes maps Open-Meteo WMO weather codes to labels.
var weatherCodes = map[int]string{
	0:  "Clear",
	1:  "Mainly Clear",
	2:  "Partly Cloudy",
	3:  "Overcast",
	61: "Rain",
	95: "Thunderstorm",
}

// Client requests daily forecasts over HTTP.
type Client struct {
	http    *resty.Client
	baseURL string
	log     logger.Logger
}

// New creates a Client against the public Open-Meteo API.
func New() *Client { return NewWithBaseURL(DefaultBaseURL) }

// NewWithBaseURL creates a Client against the given endpoint; tests
// point it at a local server.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		http:    resty.New().SetTimeout(10 * time.Second),
		baseURL: baseURL,
		log:     logger.New("weather-client"),
	}
}

type dailyResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		Temperature2mMin []float64 `json:"temperature_2m_min"`
		WeatherCode      []int     `json:"weathercode"`
	} `json:"daily"`
}

// Tomorrow returns tomorrow's forecast for the location. Two forecast
// days are requested and the second entry is tomorrow, matching the
// API's day-indexed daily arrays.
func (c *Client) Tomorrow(ctx context.Context, lat, lon float64, timezone string) (model.WeatherForecast, error) {
	var out dailyResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":      strconv.FormatFloat(lat, 'f', -1, 64),
			"longitude":     strconv.FormatFloat(lon, 'f', -1, 64),
			"timezone":      timezone,
			"daily":         "temperature_2m_max,temperature_2m_min,weathercode",
			"forecast_days": "2",
		}).
		SetResult(&out).
		Get(c.baseURL)
	if err != nil {
		return model.WeatherForecast{}, fmt.Errorf("weather request: %w", err)
	}
	if resp.IsError() {
		return model.WeatherForecast{}, fmt.Errorf("weather request: status %d", resp.StatusCode())
	}
	d := out.Daily
	if len(d.Time) < 2 || len(d.Temperature2mMax) < 2 || len(d.Temperature2mMin) < 2 || len(d.WeatherCode) < 2 {
		return model.WeatherForecast{}, fmt.Errorf("weather response missing tomorrow's entry")
	}
	return model.WeatherForecast{
		Date:      d.Time[1],
		TempHigh:  d.Temperature2mMax[1],
		TempLow:   d.Temperature2mMin[1],
		Condition: conditionLabel(d.WeatherCode[1]),
	}, nil
}

func conditionLabel(code int) string {
	if label, ok := weatherCodes[code]; ok {
		return label
	}
	return "Unknown"
}
