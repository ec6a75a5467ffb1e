package model

import "fmt"

// HomeProfile describes one household: its size, the appliances it
// tracks, its tariff and its location. City, when set, is resolved to
// coordinates by the orchestrator; the explicit latitude/longitude are
// the fallback.
type HomeProfile struct {
	HouseholdSize   int      `json:"hh_size"`
	Appliances      []string `json:"appliances_present"`
	RatePeak        float64  `json:"rate_peak"`
	RateOffPeak     float64  `json:"rate_offpeak"`
	TariffPeakStart string   `json:"tariff_peak_start"`
	TariffPeakEnd   string   `json:"tariff_peak_end"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Timezone        string   `json:"timezone"`
	Currency        string   `json:"currency"`
	City            string   `json:"city,omitempty"`
}

// SetDefaults applies the default tariff and location.
func (p *HomeProfile) SetDefaults() {
	if p.RatePeak == 0 {
		p.RatePeak = 12.0
	}
	if p.RateOffPeak == 0 {
		p.RateOffPeak = 7.5
	}
	if p.TariffPeakStart == "" {
		p.TariffPeakStart = "18:00"
	}
	if p.TariffPeakEnd == "" {
		p.TariffPeakEnd = "22:00"
	}
	if p.Latitude == 0 && p.Longitude == 0 {
		p.Latitude = 18.6298
		p.Longitude = 73.7997
	}
	if p.Timezone == "" {
		p.Timezone = "Asia/Kolkata"
	}
	if p.Currency == "" {
		p.Currency = "INR"
	}
}

// Validate checks mandatory fields.
func (p HomeProfile) Validate() error {
	if p.HouseholdSize <= 0 {
		return fmt.Errorf("hh_size must be positive, got %d", p.HouseholdSize)
	}
	if len(p.Appliances) == 0 {
		return fmt.Errorf("appliances_present is empty")
	}
	return nil
}
