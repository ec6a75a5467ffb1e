package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/homevolt/homevolt/core/events"
	"github.com/homevolt/homevolt/core/logger"
	"github.com/homevolt/homevolt/core/model"
	"github.com/homevolt/homevolt/internal/eventbus"
)

// Engine serves per-appliance forecasts backed by a model resolver.
// It holds no mutable state of its own; safe for concurrent use.
type Engine struct {
	models Resolver
	bus    *eventbus.TypedBus[events.ForecastEvent]
	log    logger.Logger
}

// NewEngine creates an Engine. bus may be nil when no observer cares
// about forecast events.
func NewEngine(models Resolver, bus *eventbus.TypedBus[events.ForecastEvent], log logger.Logger) *Engine {
	return &Engine{models: models, bus: bus, log: log}
}

// Predict produces the forecast for one appliance on one target date.
//
// Resolution failures (unknown appliance, missing or corrupt artifact)
// pass through unwrapped so callers can branch on the sentinels; feature
// validation and model failures wrap into *PredictionError. Nothing is
// retried.
func (e *Engine) Predict(ctx context.Context, appliance string, fv model.FeatureVector) (model.ForecastResult, error) {
	start := time.Now()
	res, err := e.predict(appliance, fv)
	e.publish(appliance, fv, res, err, time.Since(start))
	if err != nil {
		return model.ForecastResult{}, err
	}
	return res, nil
}

func (e *Engine) predict(appliance string, fv model.FeatureVector) (model.ForecastResult, error) {
	date := fv.TargetDate.Format(model.DateLayout)
	if err := validateFeatures(fv); err != nil {
		return model.ForecastResult{}, &PredictionError{Appliance: appliance, Date: date, Err: err}
	}

	mdl, err := e.models.Resolve(appliance)
	if err != nil {
		return model.ForecastResult{}, err
	}

	weekend := 0.0
	if fv.Weekend {
		weekend = 1.0
	}
	pred, err := mdl.Predict(Features{
		Date:          fv.TargetDate,
		AvgTemp:       fv.AvgTemp,
		HouseholdSize: float64(fv.HouseholdSize),
		Weekend:       weekend,
	})
	if err != nil {
		return model.ForecastResult{}, &PredictionError{Appliance: appliance, Date: date, Err: err}
	}

	res := model.ForecastResult{
		Appliance:    appliance,
		Date:         date,
		PredictedKWh: pred.Point,
		CILower:      pred.Lower,
		CIUpper:      pred.Upper,
	}
	// Additive seasonal models can numerically invert a bound; restore
	// the invariant instead of propagating a nonsensical interval.
	if res.CILower > res.PredictedKWh {
		res.CILower = res.PredictedKWh
		res.Clamped = true
	}
	if res.CIUpper < res.PredictedKWh {
		res.CIUpper = res.PredictedKWh
		res.Clamped = true
	}
	if res.Clamped && e.log != nil {
		e.log.Warnf("clamped interval for %s on %s", appliance, date)
	}
	return res, nil
}

func validateFeatures(fv model.FeatureVector) error {
	if fv.TargetDate.IsZero() {
		return fmt.Errorf("target date is not set")
	}
	if math.IsNaN(fv.AvgTemp) || math.IsInf(fv.AvgTemp, 0) {
		return fmt.Errorf("avg_temp is not finite")
	}
	if fv.HouseholdSize <= 0 {
		return fmt.Errorf("household_size must be positive, got %d", fv.HouseholdSize)
	}
	return nil
}

func (e *Engine) publish(appliance string, fv model.FeatureVector, res model.ForecastResult, err error, latency time.Duration) {
	if e.bus == nil {
		return
	}
	ev := events.ForecastEvent{
		Appliance: appliance,
		Date:      fv.TargetDate.Format(model.DateLayout),
		Latency:   latency,
		Time:      time.Now(),
	}
	if err != nil {
		ev.Err = err.Error()
	} else {
		ev.PredictedKWh = res.PredictedKWh
		ev.CILower = res.CILower
		ev.CIUpper = res.CIUpper
		ev.Clamped = res.Clamped
	}
	e.bus.Publish(ev)
}
