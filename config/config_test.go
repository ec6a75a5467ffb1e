package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
http:
  addr: ":8081"
registry:
  manifest_path: "models/registry.json"
  artifact_root: "models"
usage:
  log_path: "data/usage.csv"
metrics:
  prometheus_enabled: true
advisor:
  api_key: "sk-test"
  model: "gpt-4o"
mailer:
  host: "smtp.example.com"
  sender: "reports@example.com"
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
`

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", sampleYAML))
	require.NoError(t, err)

	require.Equal(t, ":8081", cfg.HTTP.Addr)
	require.Equal(t, "models/registry.json", cfg.Registry.ManifestPath)
	require.Equal(t, "models", cfg.Registry.ArtifactRoot)
	require.Equal(t, "data/usage.csv", cfg.Usage.LogPath)
	require.True(t, cfg.Metrics.PrometheusEnabled)
	require.Equal(t, ":9090", cfg.Metrics.PrometheusAddr)
	require.True(t, cfg.Advisor.Enabled())
	require.Equal(t, "gpt-4o", cfg.Advisor.Model)
	require.True(t, cfg.Mailer.Enabled())
	require.Equal(t, 587, cfg.Mailer.Port)
	require.True(t, cfg.MQTT.Enabled)
	require.Equal(t, "homevolt", cfg.MQTT.ClientID)
	require.Equal(t, "homevolt/plan", cfg.MQTT.Topic)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", "{}"))
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "artifacts/registry.json", cfg.Registry.ManifestPath)
	require.Equal(t, "artifacts", cfg.Registry.ArtifactRoot)
	require.Equal(t, "data/appliance_usage.csv", cfg.Usage.LogPath)
	require.False(t, cfg.Advisor.Enabled())
	require.False(t, cfg.Mailer.Enabled())
	require.Empty(t, cfg.History.Path)
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", `{"http": {"addr": ":9000"}}`))
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTP.Addr)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HV_HTTP__ADDR", ":7070")
	t.Setenv("HV_ADVISOR__API_KEY", "sk-env")

	cfg, err := Load(writeConfig(t, "config.yaml", sampleYAML))
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.HTTP.Addr)
	require.Equal(t, "sk-env", cfg.Advisor.APIKey)
}

func TestLoadFailures(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "config.toml", "a = 1"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "config.yaml", "mqtt:\n  enabled: true\n"))
	require.Error(t, err, "enabled mqtt without a broker must fail validation")
}
