package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/homevolt/homevolt/core/events"
	coremetrics "github.com/homevolt/homevolt/core/metrics"
)

// PromSink records forecast events in Prometheus metrics.
type PromSink struct {
	forecasts *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	plans     *prometheus.CounterVec
}

// NewPromSink registers forecast metrics on the default Prometheus
// registerer. The /metrics server is started separately.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	forecasts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_events_total",
		Help: "Total number of served or failed appliance forecasts",
	}, []string{"appliance", "success"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forecast_latency_seconds",
		Help:    "Time spent resolving the model and predicting",
		Buckets: prometheus.DefBuckets,
	}, []string{"appliance"})
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_plans_total",
		Help: "Total number of generated savings plans",
	}, []string{"source"})

	if err := reg.Register(forecasts); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			forecasts = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(plans); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			plans = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{forecasts: forecasts, latency: latency, plans: plans}, nil
}

// RecordForecast increments the event counter and observes latency.
func (s *PromSink) RecordForecast(ev events.ForecastEvent) error {
	s.forecasts.WithLabelValues(ev.Appliance, strconv.FormatBool(ev.Succeeded())).Inc()
	s.latency.WithLabelValues(ev.Appliance).Observe(ev.Latency.Seconds())
	return nil
}

// RecordPlan increments the plan counter.
func (s *PromSink) RecordPlan(ev events.PlanEvent) error {
	s.plans.WithLabelValues(ev.Source).Inc()
	return nil
}
