package cache

import (
	"fmt"
	"sort"
)

// Registry owns every namespace. Build one at process start and pass it to
// the services that read or invalidate cached results.
type Registry struct {
	namespaces map[Name]*namespace
	names      []Name
}

// NewRegistry creates one namespace per entry in cfgs. It fails when any
// namespace has a non-positive size or ttl.
func NewRegistry(cfgs map[Name]NamespaceConfig) (*Registry, error) {
	r := &Registry{namespaces: make(map[Name]*namespace, len(cfgs))}
	for name, cfg := range cfgs {
		if err := cfg.validate(name); err != nil {
			return nil, err
		}
		r.namespaces[name] = newNamespace(name, cfg)
		r.names = append(r.names, name)
	}
	sort.Slice(r.names, func(i, j int) bool { return r.names[i] < r.names[j] })
	return r, nil
}

// Names lists configured namespaces in sorted order.
func (r *Registry) Names() []Name {
	return append([]Name(nil), r.names...)
}

func (r *Registry) namespace(name Name) (*namespace, error) {
	ns, ok := r.namespaces[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNamespace, name)
	}
	return ns, nil
}

// Get returns the live value for key. Expired and absent keys are misses.
func (r *Registry) Get(name Name, key string) (any, bool, error) {
	ns, err := r.namespace(name)
	if err != nil {
		return nil, false, err
	}
	entry, ok, err := ns.get(key)
	if err != nil || !ok {
		return nil, false, err
	}
	return entry.Value, true, nil
}

// Put stores value under key, evicting the least recently used entry when
// the namespace is full.
func (r *Registry) Put(name Name, key string, value any) error {
	ns, err := r.namespace(name)
	if err != nil {
		return err
	}
	return ns.put(key, value)
}

// GetOrCompute returns the cached value or calls fn on a miss. Concurrent
// misses for one key share a single fn call. Nil results and errors are not
// stored, and neither is a result whose compute began before an
// invalidation of key.
func (r *Registry) GetOrCompute(name Name, key string, fn func() (any, error)) (any, error) {
	ns, err := r.namespace(name)
	if err != nil {
		return nil, err
	}
	return ns.getOrCompute(key, fn)
}

// Invalidate drops key. Any Get or GetOrCompute that starts after Invalidate
// returns is a miss.
func (r *Registry) Invalidate(name Name, key string) error {
	ns, err := r.namespace(name)
	if err != nil {
		return err
	}
	ns.invalidate(key)
	return nil
}

// InvalidateScope drops every key built with Key(scope, ...) in one namespace.
func (r *Registry) InvalidateScope(name Name, scope string) error {
	ns, err := r.namespace(name)
	if err != nil {
		return err
	}
	ns.invalidateScope(scope)
	return nil
}

// InvalidateUser drops every key of userID in every namespace.
func (r *Registry) InvalidateUser(userID string) {
	for _, name := range r.names {
		r.namespaces[name].invalidateScope(userID)
	}
}

// Clear empties a namespace. Counters are kept.
func (r *Registry) Clear(name Name) error {
	ns, err := r.namespace(name)
	if err != nil {
		return err
	}
	ns.reset()
	return nil
}

// Len returns the number of live entries in a namespace.
func (r *Registry) Len(name Name) (int, error) {
	ns, err := r.namespace(name)
	if err != nil {
		return 0, err
	}
	return ns.size(), nil
}

// Stats snapshots every namespace plus the process-wide aggregate.
func (r *Registry) Stats() Stats {
	out := Stats{Namespaces: make([]NamespaceStats, 0, len(r.names))}
	agg := NamespaceStats{Name: "all"}
	for _, name := range r.names {
		s := r.namespaces[name].stats()
		out.Namespaces = append(out.Namespaces, s)
		agg.Size += s.Size
		agg.MaxSize += s.MaxSize
		agg.Hits += s.Hits
		agg.Misses += s.Misses
		agg.Invalidations += s.Invalidations
		agg.Evictions += s.Evictions
	}
	agg.HitRate = hitRate(agg.Hits, agg.Misses)
	out.Aggregate = agg
	return out
}

// GetAs is Get with a type check on the resident value.
func GetAs[V any](r *Registry, name Name, key string) (V, bool, error) {
	var zero V
	v, ok, err := r.Get(name, key)
	if err != nil || !ok {
		return zero, false, err
	}
	typed, isV := v.(V)
	if !isV {
		return zero, false, &CorruptionError{Namespace: name, Key: key, Reason: fmt.Sprintf("resident value has type %T", v)}
	}
	return typed, true, nil
}

// GetOrComputeAs is GetOrCompute with a typed compute function.
func GetOrComputeAs[V any](r *Registry, name Name, key string, fn func() (V, error)) (V, error) {
	var zero V
	v, err := r.GetOrCompute(name, key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(V)
	if !ok {
		return zero, &CorruptionError{Namespace: name, Key: key, Reason: fmt.Sprintf("resident value has type %T", v)}
	}
	return typed, nil
}
