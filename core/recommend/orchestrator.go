// Package recommend combines usage snapshots, weather and per-appliance
// forecasts into decision payloads and savings plans. It is a thin
// aggregation layer: all numerical reasoning lives in the forecast
// engine and the advisor behind it.
package recommend

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/homevolt/homevolt/core/events"
	"github.com/homevolt/homevolt/core/forecast"
	"github.com/homevolt/homevolt/core/logger"
	"github.com/homevolt/homevolt/core/model"
	"github.com/homevolt/homevolt/internal/eventbus"
)

// WeatherSource returns tomorrow's outlook for a location.
type WeatherSource interface {
	Tomorrow(ctx context.Context, lat, lon float64, timezone string) (model.WeatherForecast, error)
}

// UsageSource provides the latest-day usage snapshot.
type UsageSource interface {
	Latest(ctx context.Context) (model.Snapshot, error)
}

// Forecaster produces one appliance forecast.
type Forecaster interface {
	Predict(ctx context.Context, appliance string, fv model.FeatureVector) (model.ForecastResult, error)
}

// Geocoder resolves a city name to coordinates.
type Geocoder interface {
	Locate(ctx context.Context, city string) (lat, lon float64, err error)
}

// Orchestrator aggregates snapshot, weather and per-appliance forecasts
// into a DecisionPayload and hands it to an advisor. Per-appliance
// failures stay per-appliance; partial success is the normal shape.
type Orchestrator struct {
	weather  WeatherSource
	usage    UsageSource
	engine   Forecaster
	geocoder Geocoder
	advisor  Advisor
	fallback Advisor
	bus      *eventbus.TypedBus[events.PlanEvent]
	log      logger.Logger
	now      func() time.Time
}

// New creates an Orchestrator. geocoder, advisor and bus may be nil:
// without a geocoder city names stay unresolved, without an advisor the
// deterministic rule advisor generates plans, without a bus plan events
// go unpublished.
func New(weather WeatherSource, usage UsageSource, engine Forecaster, geocoder Geocoder,
	advisor Advisor, bus *eventbus.TypedBus[events.PlanEvent], log logger.Logger) *Orchestrator {
	return &Orchestrator{
		weather:  weather,
		usage:    usage,
		engine:   engine,
		geocoder: geocoder,
		advisor:  advisor,
		fallback: RuleAdvisor{},
		bus:      bus,
		log:      log,
		now:      time.Now,
	}
}

// BuildPayload collects the decision payload for one household profile.
func (o *Orchestrator) BuildPayload(ctx context.Context, profile model.HomeProfile) (DecisionPayload, error) {
	profile.SetDefaults()
	if err := profile.Validate(); err != nil {
		return DecisionPayload{}, err
	}

	if profile.City != "" && o.geocoder != nil {
		lat, lon, err := o.geocoder.Locate(ctx, profile.City)
		if err != nil {
			// Geocoding is best-effort; the profile's coordinates win.
			o.log.Warnf("geocode %q: %v", profile.City, err)
		} else {
			profile.Latitude, profile.Longitude = lat, lon
		}
	}

	wx, err := o.weather.Tomorrow(ctx, profile.Latitude, profile.Longitude, profile.Timezone)
	if err != nil {
		return DecisionPayload{}, err
	}
	snap, err := o.usage.Latest(ctx)
	if err != nil {
		return DecisionPayload{}, err
	}

	target, err := time.Parse(model.DateLayout, wx.Date)
	if err != nil {
		target = o.now().AddDate(0, 0, 1)
	}
	fv := model.FeatureVector{
		TargetDate:    target,
		AvgTemp:       wx.AvgTemp(),
		HouseholdSize: profile.HouseholdSize,
		Weekend:       isWeekend(target),
	}

	return DecisionPayload{
		Profile:   profile,
		LastUsage: snap,
		Weather:   wx,
		Forecasts: o.forecastAll(ctx, profile.Appliances, fv),
	}, nil
}

// Optimize builds the payload and turns it into a plan. When the
// configured advisor fails the rule advisor takes over, so a flaky
// reasoning collaborator degrades the plan quality, not the request.
func (o *Orchestrator) Optimize(ctx context.Context, profile model.HomeProfile) (model.Plan, DecisionPayload, error) {
	payload, err := o.BuildPayload(ctx, profile)
	if err != nil {
		return model.Plan{}, DecisionPayload{}, err
	}

	source := "rules"
	advisor := o.advisor
	if advisor == nil {
		advisor = o.fallback
	} else {
		source = "llm"
	}
	plan, err := advisor.Advise(ctx, payload)
	if err != nil && source == "llm" {
		o.log.Warnf("advisor failed, using rule advisor: %v", err)
		source = "rules"
		plan, err = o.fallback.Advise(ctx, payload)
	}
	if err != nil {
		return model.Plan{}, payload, err
	}
	plan.ID = uuid.NewString()

	if o.bus != nil {
		o.bus.Publish(events.PlanEvent{PlanID: plan.ID, Source: source, Plan: plan, Time: o.now()})
	}
	return plan, payload, nil
}

// forecastAll fans out one Predict per appliance. Outcomes land in
// their own slice slot, so no lock is needed beyond the registry's own
// cache synchronization.
func (o *Orchestrator) forecastAll(ctx context.Context, appliances []string, fv model.FeatureVector) []ForecastOutcome {
	outcomes := make([]ForecastOutcome, len(appliances))
	var wg sync.WaitGroup
	for i, appliance := range appliances {
		wg.Add(1)
		go func(i int, appliance string) {
			defer wg.Done()
			res, err := o.engine.Predict(ctx, appliance, fv)
			if err != nil {
				outcomes[i] = ForecastOutcome{Appliance: appliance, Error: outcomeError(err)}
				return
			}
			outcomes[i] = ForecastOutcome{Appliance: appliance, Result: &res}
		}(i, appliance)
	}
	wg.Wait()
	return outcomes
}

// outcomeError maps internal failures to stable, caller-safe messages.
// Artifact locations and other internals are logged, never surfaced.
func outcomeError(err error) string {
	switch {
	case errors.Is(err, forecast.ErrUnknownAppliance):
		return "no model registered for this appliance"
	case errors.Is(err, forecast.ErrArtifactMissing):
		return "model artifact unavailable"
	case errors.Is(err, forecast.ErrArtifactCorrupt):
		return "model artifact corrupt"
	default:
		return "forecast failed"
	}
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
