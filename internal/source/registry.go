package source

import "github.com/talentio/profilehub/internal/domain"

// Registry maps source kinds to their adapters. Adapter selection is a
// table lookup, never a type switch, so kinds stay pluggable.
type Registry struct {
	adapters map[domain.SourceKind]Adapter
}

// NewRegistry creates a registry holding the given adapters.
// Parameters:
//   - adapters: adapters to register, one per kind; later entries win.
// Returns:
//   - *Registry: initialized registry.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[domain.SourceKind]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Kind()] = a
	}
	return r
}

// Register adds or replaces the adapter for its kind.
// Parameters:
//   - a: adapter to register.
// Returns: none.
func (r *Registry) Register(a Adapter) {
	r.adapters[a.Kind()] = a
}

// Lookup returns the adapter for the given kind.
// Parameters:
//   - kind: source kind to resolve.
// Returns:
//   - Adapter: registered adapter, nil when absent.
//   - bool: true when an adapter is registered.
func (r *Registry) Lookup(kind domain.SourceKind) (Adapter, bool) {
	a, ok := r.adapters[kind]
	return a, ok
}

// Kinds returns the registered source kinds in fixed priority order.
// Parameters: none.
// Returns:
//   - []domain.SourceKind: registered kinds.
func (r *Registry) Kinds() []domain.SourceKind {
	kinds := make([]domain.SourceKind, 0, len(r.adapters))
	for _, k := range domain.KindPriority {
		if _, ok := r.adapters[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
