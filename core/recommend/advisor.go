package recommend

import (
	"context"

	"github.com/homevolt/homevolt/core/model"
)

// DecisionPayload aggregates the three inputs a reasoning step needs:
// the last known usage, tomorrow's weather and the per-appliance
// forecasts. The orchestrator performs no numerical reasoning on it.
type DecisionPayload struct {
	Profile   model.HomeProfile     `json:"profile"`
	LastUsage model.Snapshot        `json:"last_usage"`
	Weather   model.WeatherForecast `json:"weather"`
	Forecasts []ForecastOutcome     `json:"forecasts"`
}

// ForecastOutcome is the per-appliance result of a multi-appliance
// request. Exactly one of Result and Error is set; a failed appliance
// never aborts the others.
type ForecastOutcome struct {
	Appliance string                `json:"appliance"`
	Result    *model.ForecastResult `json:"result,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// Advisor turns a decision payload into a savings plan.
type Advisor interface {
	Advise(ctx context.Context, payload DecisionPayload) (model.Plan, error)
}
