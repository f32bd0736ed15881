package llmprovider

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultCapabilityRegistry(t *testing.T) {
	registry, err := NewDefaultCapabilityRegistry()
	if err != nil {
		t.Fatalf("NewDefaultCapabilityRegistry() error = %v", err)
	}

	caps, err := registry.GetProviderCapabilities("pollinations")
	if err != nil {
		t.Fatalf("GetProviderCapabilities() error = %v", err)
	}
	if caps.Version == "" {
		t.Error("embedded catalog has no version")
	}
	if len(caps.Models) == 0 {
		t.Fatal("embedded catalog has no models")
	}

	models := registry.KnownModels("pollinations")
	if len(models) != len(caps.Models) {
		t.Errorf("KnownModels() returned %d ids, want %d", len(models), len(caps.Models))
	}
	for i := 1; i < len(models); i++ {
		if models[i-1] > models[i] {
			t.Fatalf("KnownModels() not sorted: %v", models)
		}
	}
}

func TestCapabilityRegistry_Features(t *testing.T) {
	registry, err := NewDefaultCapabilityRegistry()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		model         string
		known         bool
		wantTools     bool
		wantReasoning bool
	}{
		{"openai", true, true, false},
		{"deepseek", true, true, true},
		{"perplexity-fast", true, false, false},
		{"gemini-search", true, true, false},
		{"not-a-model", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			if got := registry.SupportsModel("pollinations", tt.model); got != tt.known {
				t.Errorf("SupportsModel() = %v, want %v", got, tt.known)
			}
			if got := registry.SupportsTools("pollinations", tt.model); got != tt.wantTools {
				t.Errorf("SupportsTools() = %v, want %v", got, tt.wantTools)
			}
			if got := registry.SupportsReasoning("pollinations", tt.model); got != tt.wantReasoning {
				t.Errorf("SupportsReasoning() = %v, want %v", got, tt.wantReasoning)
			}
		})
	}

	modelCap, err := registry.GetModelCapability("pollinations", "gemini-search")
	if err != nil {
		t.Fatal(err)
	}
	if !modelCap.Features.Search {
		t.Error("gemini-search should be marked as a search model")
	}
}

func TestCapabilityRegistry_UnknownProvider(t *testing.T) {
	registry := NewCapabilityRegistry()

	if _, err := registry.GetProviderCapabilities("pollinations"); err == nil {
		t.Error("empty registry should not know any provider")
	}
	if registry.KnownModels("pollinations") != nil {
		t.Error("KnownModels() should be nil for an unknown provider")
	}
	if registry.SupportsModel("pollinations", "openai") {
		t.Error("SupportsModel() should be false for an unknown provider")
	}
}

func TestCapabilityRegistry_Aliases(t *testing.T) {
	registry := NewCapabilityRegistry()
	registry.RegisterProviderCapabilities("pollinations", &ProviderCapabilities{
		Provider: "pollinations",
		Models: map[string]ModelCapability{
			"openai-large": {
				Aliases:  []string{"gpt-5", "openai-reasoning"},
				Features: ModelFeatures{Tools: true, Reasoning: true},
			},
		},
	})

	if !registry.SupportsReasoning("pollinations", "openai-reasoning") {
		t.Error("alias should resolve to the aliased model")
	}
	if registry.SupportsModel("pollinations", "gpt-4") {
		t.Error("unrelated id should not resolve")
	}
}

func TestCapabilityRegistry_LoadCapabilitiesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `version: "2.0.0"
last_updated: "2026-10-01"
provider: pollinations
models:
  my-finetune:
    description: "Private finetune"
    features: {vision: false, tools: true, reasoning: false, search: false, audio: false}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	registry, err := NewDefaultCapabilityRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if err := registry.LoadCapabilitiesFromFile(path); err != nil {
		t.Fatalf("LoadCapabilitiesFromFile() error = %v", err)
	}

	// A loaded catalog replaces the embedded one for that provider
	if !registry.SupportsTools("pollinations", "my-finetune") {
		t.Error("custom model should be registered")
	}
	if registry.SupportsModel("pollinations", "openai") {
		t.Error("embedded models should be replaced")
	}
}

func TestCapabilityRegistry_LoadErrors(t *testing.T) {
	registry := NewCapabilityRegistry()

	if err := registry.LoadCapabilitiesFromYAML([]byte("models: [unterminated")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
	if err := registry.LoadCapabilitiesFromYAML([]byte("version: \"1\"\nmodels: {}\n")); err == nil {
		t.Error("expected an error for a catalog without a provider")
	}
	if err := registry.LoadCapabilitiesFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestProviderID(t *testing.T) {
	if !ProviderPollinations.IsValid() {
		t.Error("pollinations should be a known provider")
	}
	if ProviderID("openrouter").IsValid() {
		t.Error("unknown provider id reported as valid")
	}
	if got := ProviderPollinations.String(); got != "pollinations" {
		t.Errorf("String() = %q", got)
	}
}
