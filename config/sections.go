package config

import "fmt"

// HTTPConfig defines the API server settings.
type HTTPConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies the default listen address.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// RegistryConfig locates the model manifest and artifact directory.
type RegistryConfig struct {
	// ManifestPath is the JSON manifest mapping appliance names to
	// artifact paths.
	ManifestPath string `json:"manifest_path"`
	// ArtifactRoot anchors relative model paths from the manifest.
	ArtifactRoot string `json:"artifact_root"`
}

// SetDefaults applies the conventional artifacts layout.
func (c *RegistryConfig) SetDefaults() {
	if c.ArtifactRoot == "" {
		c.ArtifactRoot = "artifacts"
	}
	if c.ManifestPath == "" {
		c.ManifestPath = "artifacts/registry.json"
	}
}

// Validate checks mandatory fields.
func (c RegistryConfig) Validate() error {
	if c.ManifestPath == "" {
		return fmt.Errorf("registry manifest_path is required")
	}
	return nil
}

// UsageConfig locates the appliance usage log.
type UsageConfig struct {
	LogPath string `json:"log_path"`
}

// SetDefaults applies the conventional data layout.
func (c *UsageConfig) SetDefaults() {
	if c.LogPath == "" {
		c.LogPath = "data/appliance_usage.csv"
	}
}

// Validate checks mandatory fields.
func (c UsageConfig) Validate() error {
	if c.LogPath == "" {
		return fmt.Errorf("usage log_path is required")
	}
	return nil
}

// WeatherConfig points the weather client at its API.
type WeatherConfig struct {
	BaseURL string `json:"base_url"`
}

// SetDefaults leaves BaseURL empty; the client falls back to the public
// Open-Meteo endpoint.
func (c *WeatherConfig) SetDefaults() {}

// HistoryConfig enables the forecast history store. An empty path
// disables persistence.
type HistoryConfig struct {
	Path string `json:"path"`
}
