package llm

import (
	"github.com/ddxfish/chatterm/internal/config"
)

// NewRegistryFromConfig builds the provider registry from config.
// Providers without an API key are left out; the None placeholder is
// always registered last so a keyless install still runs.
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	var providers []Provider
	if cfg.Fireworks.APIKey != "" {
		providers = append(providers, NewFireworksProvider(cfg.Fireworks.APIKey))
	}
	if cfg.OpenAI.APIKey != "" {
		providers = append(providers, NewOpenAIProvider(cfg.OpenAI.APIKey))
	}
	if cfg.Anthropic.APIKey != "" {
		providers = append(providers, NewAnthropicProvider(cfg.Anthropic.APIKey))
	}
	providers = append(providers, NewNoneProvider())
	return NewRegistry(providers...)
}
