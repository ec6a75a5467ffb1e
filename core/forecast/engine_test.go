package forecast

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/homevolt/homevolt/core/events"
	"github.com/homevolt/homevolt/core/model"
	"github.com/homevolt/homevolt/internal/eventbus"
)

var testDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func validFeatures() model.FeatureVector {
	return model.FeatureVector{TargetDate: testDate, AvgTemp: 30, HouseholdSize: 4}
}

func TestEnginePredict(t *testing.T) {
	resolver := MockResolver{Models: map[string]Model{
		"Fridge": MockModel{Result: Prediction{Point: 2.0, Lower: 1.5, Upper: 2.5}},
	}}
	engine := NewEngine(resolver, nil, nil)

	res, err := engine.Predict(context.Background(), "Fridge", validFeatures())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Appliance != "Fridge" || res.Date != "2025-06-01" {
		t.Errorf("unexpected identity: %+v", res)
	}
	if res.PredictedKWh != 2.0 || res.CILower != 1.5 || res.CIUpper != 2.5 {
		t.Errorf("unexpected values: %+v", res)
	}
	if res.Clamped {
		t.Errorf("well-ordered interval should not be clamped")
	}
}

func TestEngineUnknownAppliance(t *testing.T) {
	engine := NewEngine(MockResolver{}, nil, nil)
	_, err := engine.Predict(context.Background(), "Sauna", validFeatures())
	if !errors.Is(err, ErrUnknownAppliance) {
		t.Fatalf("expected ErrUnknownAppliance, got %v", err)
	}
	var pe *PredictionError
	if errors.As(err, &pe) {
		t.Fatalf("resolution failures must pass through unwrapped, got %v", err)
	}
}

func TestEngineClampsInvertedBounds(t *testing.T) {
	resolver := MockResolver{Models: map[string]Model{
		"AC": MockModel{Result: Prediction{Point: 3.0, Lower: 3.4, Upper: 2.8}},
	}}
	engine := NewEngine(resolver, nil, nil)

	res, err := engine.Predict(context.Background(), "AC", validFeatures())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !res.Clamped {
		t.Fatalf("expected clamped result, got %+v", res)
	}
	if res.CILower > res.PredictedKWh || res.CIUpper < res.PredictedKWh {
		t.Fatalf("interval invariant violated: %+v", res)
	}
}

func TestEngineFeatureValidation(t *testing.T) {
	resolver := MockResolver{Models: map[string]Model{
		"Fridge": MockModel{Result: Prediction{Point: 1, Lower: 1, Upper: 1}},
	}}
	engine := NewEngine(resolver, nil, nil)

	cases := map[string]model.FeatureVector{
		"zero date":   {AvgTemp: 30, HouseholdSize: 4},
		"nan temp":    {TargetDate: testDate, AvgTemp: math.NaN(), HouseholdSize: 4},
		"inf temp":    {TargetDate: testDate, AvgTemp: math.Inf(1), HouseholdSize: 4},
		"zero hh":     {TargetDate: testDate, AvgTemp: 30},
		"negative hh": {TargetDate: testDate, AvgTemp: 30, HouseholdSize: -2},
	}
	for name, fv := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := engine.Predict(context.Background(), "Fridge", fv)
			var pe *PredictionError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *PredictionError, got %v", err)
			}
			if pe.Appliance != "Fridge" {
				t.Errorf("error carries wrong appliance: %q", pe.Appliance)
			}
		})
	}
}

func TestEnginePublishesEvents(t *testing.T) {
	resolver := MockResolver{Models: map[string]Model{
		"Fridge": MockModel{Result: Prediction{Point: 2.0, Lower: 1.5, Upper: 2.5}},
	}}
	bus := eventbus.NewTyped[events.ForecastEvent]()
	defer bus.Close()
	ch := bus.Subscribe()
	engine := NewEngine(resolver, bus, nil)

	if _, err := engine.Predict(context.Background(), "Fridge", validFeatures()); err != nil {
		t.Fatalf("predict: %v", err)
	}
	ev := <-ch
	if !ev.Succeeded() || ev.Appliance != "Fridge" || ev.PredictedKWh != 2.0 {
		t.Fatalf("unexpected event: %+v", ev)
	}

	if _, err := engine.Predict(context.Background(), "Sauna", validFeatures()); err == nil {
		t.Fatalf("expected error for unknown appliance")
	}
	ev = <-ch
	if ev.Succeeded() || ev.Appliance != "Sauna" {
		t.Fatalf("expected failure event, got %+v", ev)
	}
}
