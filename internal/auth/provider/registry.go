package provider

import "fmt"

// Registry indexes the configured OAuth providers by name so the HTTP layer
// can route /oauth/*/:provider paths without knowing any provider directly.
type Registry struct {
	providers map[string]OAuthProvider
}

// NewRegistry indexes the given providers. Registering two providers under
// the same name is a wiring mistake and panics at startup rather than
// silently shadowing one of them.
func NewRegistry(list ...OAuthProvider) *Registry {
	m := make(map[string]OAuthProvider, len(list))
	for _, p := range list {
		if _, taken := m[p.Name()]; taken {
			panic(fmt.Sprintf("provider: duplicate registration for %q", p.Name()))
		}
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (OAuthProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown oauth provider: %s", name)
	}
	return p, nil
}
