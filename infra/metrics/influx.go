package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/homevolt/homevolt/core/events"
	coremetrics "github.com/homevolt/homevolt/core/metrics"
	"github.com/homevolt/homevolt/infra/logger"
)

// InfluxSink writes forecast events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so a down Influx never blocks
// forecasting.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordForecast writes the forecast event as one measurement point.
func (s *InfluxSink) RecordForecast(ev events.ForecastEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("forecast_event").
		AddTag("appliance", ev.Appliance).
		AddTag("success", strconv.FormatBool(ev.Succeeded())).
		AddField("predicted_kwh", round3(ev.PredictedKWh)).
		AddField("ci_lower", round3(ev.CILower)).
		AddField("ci_upper", round3(ev.CIUpper)).
		AddField("latency_ms", ev.Latency.Milliseconds()).
		SetTime(ev.Time)
	if ev.Date != "" {
		p.AddTag("target_date", ev.Date)
	}
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPlan writes the plan event.
func (s *InfluxSink) RecordPlan(ev events.PlanEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plan_event").
		AddTag("source", ev.Source).
		AddField("actions", len(ev.Plan.Actions)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
