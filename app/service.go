// Package app assembles the forecasting service from its configured
// collaborators and runs the HTTP boundary.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/homevolt/homevolt/api/energy"
	"github.com/homevolt/homevolt/config"
	"github.com/homevolt/homevolt/core/events"
	"github.com/homevolt/homevolt/core/forecast"
	coremetrics "github.com/homevolt/homevolt/core/metrics"
	"github.com/homevolt/homevolt/core/recommend"
	"github.com/homevolt/homevolt/core/registry"
	"github.com/homevolt/homevolt/core/usage"
	"github.com/homevolt/homevolt/infra/advisor"
	"github.com/homevolt/homevolt/infra/geocode"
	"github.com/homevolt/homevolt/infra/history"
	"github.com/homevolt/homevolt/infra/logger"
	"github.com/homevolt/homevolt/infra/mailer"
	"github.com/homevolt/homevolt/infra/metrics"
	"github.com/homevolt/homevolt/infra/mqtt"
	"github.com/homevolt/homevolt/infra/weather"
	"github.com/homevolt/homevolt/internal/eventbus"
)

// Service owns the event buses, the observers behind them and the API
// server.
type Service struct {
	cfg         *config.Config
	handler     http.Handler
	sink        coremetrics.MetricsSink
	forecastBus *eventbus.TypedBus[events.ForecastEvent]
	planBus     *eventbus.TypedBus[events.PlanEvent]
	store       *history.Store
	publisher   *mqtt.Publisher
	log         logger.Logger
}

// New creates a Service from the configuration. The model manifest must
// load; everything optional (advisor, mailer, history, MQTT, metrics)
// degrades to disabled when unconfigured.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	reg, err := registry.Load(cfg.Registry.ManifestPath, cfg.Registry.ArtifactRoot, logger.New("registry"))
	if err != nil {
		return nil, fmt.Errorf("model registry: %w", err)
	}
	logg.Infof("registry loaded: %d appliances", len(reg.Appliances()))

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	forecastBus := eventbus.NewTyped[events.ForecastEvent]()
	planBus := eventbus.NewTyped[events.PlanEvent]()

	engine := forecast.NewEngine(reg, forecastBus, logger.New("forecast-engine"))
	usageReader := usage.NewReader(cfg.Usage.LogPath)
	weatherClient := weather.New()
	if cfg.Weather.BaseURL != "" {
		weatherClient = weather.NewWithBaseURL(cfg.Weather.BaseURL)
	}
	geocoder := geocode.New()

	var llm recommend.Advisor
	var formatter energy.EmailFormatter
	if cfg.Advisor.Enabled() {
		a := advisor.New(cfg.Advisor)
		llm = a
		formatter = a
	} else {
		logg.Infof("no advisor configured, using rule-based planning")
	}

	orch := recommend.New(weatherClient, usageReader, engine, geocoder, llm, planBus, logger.New("orchestrator"))

	var sender energy.Sender
	if cfg.Mailer.Enabled() {
		sender = mailer.New(cfg.Mailer)
	}

	svc := &Service{
		cfg:         cfg,
		sink:        sink,
		forecastBus: forecastBus,
		planBus:     planBus,
		log:         logg,
	}

	if cfg.History.Path != "" {
		store, err := history.NewStore(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("history store: %w", err)
		}
		svc.store = store
	}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
	}

	svc.handler = energy.NewHandler(orch, formatter, sender, logger.New("api"))
	return svc, nil
}

// Run starts the event observers and the API server and blocks until
// the context is cancelled or the server fails.
func (s *Service) Run(ctx context.Context) error {
	go s.observeForecasts(s.forecastBus.Subscribe())
	go s.observePlans(s.planBus.Subscribe())

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.HTTP.Addr, Handler: s.handler}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("API listening on %s", s.cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// observeForecasts forwards forecast events to the metric sink and
// records served forecasts in the history store.
func (s *Service) observeForecasts(ch <-chan events.ForecastEvent) {
	for ev := range ch {
		if err := s.sink.RecordForecast(ev); err != nil {
			s.log.Errorf("record forecast: %v", err)
		}
		if s.store != nil && ev.Succeeded() {
			if err := s.store.Add(ev.Result()); err != nil {
				s.log.Errorf("history add: %v", err)
			}
		}
	}
}

// observePlans forwards plan events to the metric sink and publishes
// the plan over MQTT when a publisher is configured.
func (s *Service) observePlans(ch <-chan events.PlanEvent) {
	for ev := range ch {
		if err := s.sink.RecordPlan(ev); err != nil {
			s.log.Errorf("record plan: %v", err)
		}
		if s.publisher != nil {
			if err := s.publisher.PublishPlan(ev.Plan); err != nil {
				s.log.Errorf("publish plan: %v", err)
			}
		}
	}
}

// Close releases the buses and the optional observers.
func (s *Service) Close() error {
	s.forecastBus.Close()
	s.planBus.Close()
	if s.publisher != nil {
		s.publisher.Close()
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
