package llm

import (
	"fmt"
	"strings"
)

// Registry holds the configured providers in display order and
// resolves model names to the provider that serves them. It is
// read-mostly and safe to share across the consumer and any number of
// in-flight requests.
type Registry struct {
	providers []Provider
}

// NewRegistry creates a registry over the given providers. Order is
// preserved for display.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// Providers returns the registered providers in order.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// ByName returns the provider with the given display name.
func (r *Registry) ByName(name string) (Provider, error) {
	for _, p := range r.providers {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, &ConfigError{Msg: fmt.Sprintf("unknown provider %q", name)}
}

// Resolve maps a model name to the provider serving it. Catalog
// entries win; a name matching a provider's custom-model prefix is
// routed to that provider with the name passed through verbatim, never
// silently replaced by a default. Anything else is a ConfigError.
func (r *Registry) Resolve(model string) (Provider, error) {
	for _, p := range r.providers {
		for _, m := range p.Models() {
			if m.Name == model {
				return p, nil
			}
		}
	}
	if strings.HasPrefix(model, FireworksModelPrefix) {
		for _, p := range r.providers {
			if _, ok := p.(*FireworksProvider); ok {
				return p, nil
			}
		}
	}
	return nil, &ConfigError{Msg: fmt.Sprintf("no provider serves model %q", model)}
}
