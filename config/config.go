// Package config loads and validates the service configuration from a
// yaml or json file with HV_-prefixed environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/homevolt/homevolt/core/metrics"
	"github.com/homevolt/homevolt/infra/advisor"
	"github.com/homevolt/homevolt/infra/mailer"
	"github.com/homevolt/homevolt/infra/mqtt"
)

type Config struct {
	HTTP     HTTPConfig         `json:"http"`
	Registry RegistryConfig     `json:"registry"`
	Usage    UsageConfig        `json:"usage"`
	Weather  WeatherConfig      `json:"weather"`
	History  HistoryConfig      `json:"history"`
	Metrics  coremetrics.Config `json:"metrics"`
	Advisor  advisor.Config     `json:"advisor"`
	Mailer   mailer.Config      `json:"mailer"`
	MQTT     mqtt.Config        `json:"mqtt"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("HV_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "hv_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.HTTP.SetDefaults()
	cfg.Registry.SetDefaults()
	cfg.Usage.SetDefaults()
	cfg.Weather.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Advisor.SetDefaults()
	cfg.Mailer.SetDefaults()
	cfg.MQTT.SetDefaults()
	if err := cfg.Registry.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Usage.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
