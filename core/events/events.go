// Package events defines the domain events flowing from the forecasting
// core to observers (metric sinks, the history store, publishers).
package events

import (
	"time"

	"github.com/homevolt/homevolt/core/model"
)

// ForecastEvent describes one served, or failed, appliance forecast.
type ForecastEvent struct {
	Appliance    string
	Date         string
	PredictedKWh float64
	CILower      float64
	CIUpper      float64
	Clamped      bool
	Err          string
	Latency      time.Duration
	Time         time.Time
}

// Succeeded reports whether the forecast was served.
func (e ForecastEvent) Succeeded() bool { return e.Err == "" }

// Result rebuilds the ForecastResult carried by a successful event.
func (e ForecastEvent) Result() model.ForecastResult {
	return model.ForecastResult{
		Appliance:    e.Appliance,
		Date:         e.Date,
		PredictedKWh: e.PredictedKWh,
		CILower:      e.CILower,
		CIUpper:      e.CIUpper,
		Clamped:      e.Clamped,
	}
}

// PlanEvent describes one generated recommendation plan.
type PlanEvent struct {
	PlanID  string
	Source  string
	Plan    model.Plan
	Time    time.Time
}
