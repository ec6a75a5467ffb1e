// Package registry maps appliance names to trained model artifacts.
// The manifest is read once at construction; artifacts load lazily on
// first use and stay cached for the process lifetime.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/homevolt/homevolt/core/forecast"
	"github.com/homevolt/homevolt/core/logger"
)

// Entry is one manifest row.
type Entry struct {
	ModelPath string `json:"model_path"`
}

// Registry resolves appliance names to loaded forecasting models.
type Registry struct {
	root    string
	entries map[string]Entry
	log     logger.Logger

	mu     sync.Mutex
	models map[string]forecast.Model
}

// Load reads the manifest at manifestPath, a flat JSON map of appliance
// name to entry. A missing or malformed manifest is a startup failure:
// without it the service has no forecasting capability, so there is no
// degraded mode worth running in. Artifact files themselves are not
// checked here; they are validated lazily at first Resolve.
func Load(manifestPath, artifactRoot string, log logger.Logger) (*Registry, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read model manifest: %w", err)
	}
	entries := make(map[string]Entry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse model manifest: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("model manifest has no entries")
	}
	for name, e := range entries {
		if e.ModelPath == "" {
			return nil, fmt.Errorf("model manifest: appliance %q has no model_path", name)
		}
	}
	return &Registry{
		root:    artifactRoot,
		entries: entries,
		log:     log,
		models:  make(map[string]forecast.Model),
	}, nil
}

// Appliances returns the registered appliance names, sorted.
func (r *Registry) Appliances() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the model for the appliance, loading its artifact on
// first use. First access is serialized under the cache lock so each
// artifact decodes at most once per process; later lookups are pure
// cache hits.
func (r *Registry) Resolve(appliance string) (forecast.Model, error) {
	entry, ok := r.entries[appliance]
	if !ok {
		return nil, fmt.Errorf("%s: %w", appliance, forecast.ErrUnknownAppliance)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.models[appliance]; ok {
		return m, nil
	}

	path := entry.ModelPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, path)
	}
	m, err := forecast.LoadArtifact(path)
	if err != nil {
		if r.log != nil {
			r.log.Errorf("load artifact for %s from %s: %v", appliance, path, err)
		}
		return nil, fmt.Errorf("%s: %w", appliance, err)
	}
	r.models[appliance] = m
	return m, nil
}
