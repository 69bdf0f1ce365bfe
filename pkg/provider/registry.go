package provider

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownProvider is returned by Get for an unregistered name.
var ErrUnknownProvider = errors.New("unknown provider")

// Registry resolves on-ramp providers by name.
type Registry struct {
	providers map[string]OnRamp
}

// NewRegistry indexes providers by their Name.
func NewRegistry(providers ...OnRamp) *Registry {
	r := &Registry{providers: make(map[string]OnRamp, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (OnRamp, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Names lists registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
