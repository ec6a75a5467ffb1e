package metrics

import (
	"errors"

	"github.com/homevolt/homevolt/core/events"
	coremetrics "github.com/homevolt/homevolt/core/metrics"
)

// MultiSink fans events out to several sinks. Every sink sees every
// event; errors are joined rather than short-circuiting.
type MultiSink struct {
	sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink over the given sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordForecast(ev events.ForecastEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordForecast(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordPlan(ev events.PlanEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordPlan(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
