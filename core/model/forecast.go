package model

import "time"

// FeatureVector carries the exogenous inputs driving one forecast
// request. It is built per request and never persisted.
type FeatureVector struct {
	TargetDate    time.Time
	AvgTemp       float64
	HouseholdSize int
	Weekend       bool
}

// ForecastResult is a point forecast with its prediction interval.
// CILower <= PredictedKWh <= CIUpper holds for every result the engine
// returns; Clamped marks results where a bound had to be adjusted to
// restore the invariant.
type ForecastResult struct {
	Appliance    string  `json:"appliance"`
	Date         string  `json:"date"`
	PredictedKWh float64 `json:"predicted_kwh"`
	CILower      float64 `json:"ci_lower"`
	CIUpper      float64 `json:"ci_upper"`
	Clamped      bool    `json:"clamped,omitempty"`
}
