package llmprovider

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/capabilities/pollinations.yaml
var pollinationsCapabilitiesYAML []byte

// Capabilities Philosophy:
//
// This file provides MODEL METADATA for UX and warnings.
// It does NOT enforce validation - provider APIs are the source of truth.
// Unknown model ids are always accepted.
//
// Library users can override embedded capabilities by:
//  1. Calling LoadCapabilitiesFromFile() with custom YAML
//  2. Calling RegisterProviderCapabilities() programmatically

// ProviderCapabilities represents the full capability configuration for a provider
type ProviderCapabilities struct {
	Version     string                     `yaml:"version"`      // Semantic version (e.g., "1.0.0")
	LastUpdated string                     `yaml:"last_updated"` // ISO 8601 date (e.g., "2025-01-15")
	Provider    string                     `yaml:"provider"`
	Models      map[string]ModelCapability `yaml:"models"`
}

// ModelCapability represents the capabilities of a specific model
type ModelCapability struct {
	Description string        `yaml:"description"`
	Aliases     []string      `yaml:"aliases"`
	Features    ModelFeatures `yaml:"features"`
}

// ModelFeatures indicates which features a model supports
type ModelFeatures struct {
	Vision    bool `yaml:"vision"`
	Tools     bool `yaml:"tools"`
	Reasoning bool `yaml:"reasoning"`
	Search    bool `yaml:"search"`
	Audio     bool `yaml:"audio"`
}

// CapabilityRegistry manages provider capabilities.
// Each provider owns its own registry; nothing is shared process-wide.
type CapabilityRegistry struct {
	capabilities map[string]*ProviderCapabilities
	mu           sync.RWMutex
}

// NewCapabilityRegistry returns an empty registry
func NewCapabilityRegistry() *CapabilityRegistry {
	return &CapabilityRegistry{
		capabilities: make(map[string]*ProviderCapabilities),
	}
}

// NewDefaultCapabilityRegistry returns a registry preloaded with the embedded catalogs
func NewDefaultCapabilityRegistry() (*CapabilityRegistry, error) {
	r := NewCapabilityRegistry()
	if err := r.LoadCapabilitiesFromYAML(pollinationsCapabilitiesYAML); err != nil {
		return nil, fmt.Errorf("failed to load embedded pollinations capabilities: %w", err)
	}
	return r, nil
}

// LoadCapabilitiesFromYAML parses a catalog and registers it under its provider name
func (r *CapabilityRegistry) LoadCapabilitiesFromYAML(data []byte) error {
	var caps ProviderCapabilities
	if err := yaml.Unmarshal(data, &caps); err != nil {
		return fmt.Errorf("failed to unmarshal capabilities: %w", err)
	}
	if caps.Provider == "" {
		return fmt.Errorf("capabilities file has no provider name")
	}

	r.RegisterProviderCapabilities(caps.Provider, &caps)
	return nil
}

// LoadCapabilitiesFromFile loads provider capabilities from a YAML file.
// The file format should match the embedded YAML structure.
func (r *CapabilityRegistry) LoadCapabilitiesFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read capabilities file: %w", err)
	}
	return r.LoadCapabilitiesFromYAML(data)
}

// RegisterProviderCapabilities programmatically registers provider capabilities.
func (r *CapabilityRegistry) RegisterProviderCapabilities(provider string, caps *ProviderCapabilities) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilities[provider] = caps
}

// GetProviderCapabilities returns capabilities for a provider
func (r *CapabilityRegistry) GetProviderCapabilities(provider string) (*ProviderCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps, ok := r.capabilities[provider]
	if !ok {
		return nil, fmt.Errorf("no capabilities found for provider: %s", provider)
	}
	return caps, nil
}

// GetModelCapability returns capabilities for a specific model (by id or alias)
func (r *CapabilityRegistry) GetModelCapability(provider, model string) (*ModelCapability, error) {
	providerCaps, err := r.GetProviderCapabilities(provider)
	if err != nil {
		return nil, err
	}

	if modelCap, ok := providerCaps.Models[model]; ok {
		return &modelCap, nil
	}

	for _, modelCap := range providerCaps.Models {
		for _, alias := range modelCap.Aliases {
			if alias == model {
				found := modelCap
				return &found, nil
			}
		}
	}

	return nil, fmt.Errorf("model %s not found for provider %s", model, provider)
}

// KnownModels returns the sorted model ids for a provider
func (r *CapabilityRegistry) KnownModels(provider string) []string {
	providerCaps, err := r.GetProviderCapabilities(provider)
	if err != nil {
		return nil
	}

	models := make([]string, 0, len(providerCaps.Models))
	for id := range providerCaps.Models {
		models = append(models, id)
	}
	sort.Strings(models)
	return models
}

// SupportsModel checks if a provider's catalog lists a specific model
func (r *CapabilityRegistry) SupportsModel(provider, model string) bool {
	_, err := r.GetModelCapability(provider, model)
	return err == nil
}

// SupportsTools checks if a model supports tools
func (r *CapabilityRegistry) SupportsTools(provider, model string) bool {
	modelCap, err := r.GetModelCapability(provider, model)
	if err != nil {
		return false
	}
	return modelCap.Features.Tools
}

// SupportsReasoning checks if a model streams reasoning content
func (r *CapabilityRegistry) SupportsReasoning(provider, model string) bool {
	modelCap, err := r.GetModelCapability(provider, model)
	if err != nil {
		return false
	}
	return modelCap.Features.Reasoning
}
