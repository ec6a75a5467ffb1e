// Package metrics defines the observability contract of the forecasting
// service. Concrete sinks live in infra/metrics.
package metrics

import "github.com/homevolt/homevolt/core/events"

// MetricsSink records forecast activity.
type MetricsSink interface {
	RecordForecast(ev events.ForecastEvent) error
	RecordPlan(ev events.PlanEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordForecast(events.ForecastEvent) error { return nil }
func (NopSink) RecordPlan(events.PlanEvent) error         { return nil }

// Config selects and parameterizes the metric sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}
