package intertext

import "fmt"

// Node kinds used as the first half of registry keys. Feature kinds are
// derived per category so "Sappho the person reference" and "Sappho the
// character" occupy distinct keys while sharing the same QID.
const (
	kindWork           = "work"
	kindActualization  = "actualization"
	kindInterpretation = "interpretation"
	kindRelation       = "relation"
	kindTextPassage    = "textpassage"
)

func featureKind(category Category) string {
	return "feature/" + category.FeaturePath()
}

type registryKey struct {
	Kind string
	ID   string
}

// Registry is the deduplicating node store: it guarantees at most one
// node per (kind, identifier) pair for the lifetime of a run. It is not
// persisted across runs; cross-run stability comes from the nodes' keys
// being derived from external identifiers, not from creation order.
type Registry struct {
	nodes  map[registryKey]any
	counts map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes:  make(map[registryKey]any),
		counts: make(map[string]int),
	}
}

// Len returns the total number of registered nodes.
func (registry *Registry) Len() int {
	return len(registry.nodes)
}

// Count returns the number of nodes of one kind.
func (registry *Registry) Count(kind string) int {
	return registry.counts[kind]
}

// CountFeatures returns the number of feature nodes of one category.
func (registry *Registry) CountFeatures(category Category) int {
	return registry.counts[featureKind(category)]
}

// getOrCreate returns the existing node for (kind, id) if present, else
// invokes factory to build it, stores it, and returns it with
// created=true. A factory error leaves the key absent so a later retry
// can succeed. Idempotent under repeated calls with the same key.
func getOrCreate[T any](registry *Registry, kind, id string, factory func() (*T, error)) (node *T, created bool, err error) {
	key := registryKey{Kind: kind, ID: id}
	if existing, ok := registry.nodes[key]; ok {
		typed, ok := existing.(*T)
		if !ok {
			return nil, false, fmt.Errorf("registry key %s/%s holds a %T", kind, id, existing)
		}
		return typed, false, nil
	}

	built, err := factory()
	if err != nil {
		return nil, false, err
	}
	registry.nodes[key] = built
	registry.counts[kind]++
	return built, true, nil
}

// lookup returns the node for (kind, id) without creating it.
func lookup[T any](registry *Registry, kind, id string) (*T, bool) {
	existing, ok := registry.nodes[registryKey{Kind: kind, ID: id}]
	if !ok {
		return nil, false
	}
	typed, ok := existing.(*T)
	return typed, ok
}
