package registry

import "sync"

// Registry maps keys to ordered lists of values.
// It uses sync.RWMutex since lookups far outnumber appends.
type Registry[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K][]V
	order   []K // keys in first-append order
}

// New creates an empty registry.
func New[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		entries: make(map[K][]V),
	}
}

// Append adds value to the end of the list stored under key.
func (r *Registry[K, V]) Append(key K, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		r.order = append(r.order, key)
	}
	r.entries[key] = append(r.entries[key], value)
}

// Get returns a copy of the values stored under key, in insertion order.
// Unknown keys yield nil.
func (r *Registry[K, V]) Get(key K) []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	values, ok := r.entries[key]
	if !ok {
		return nil
	}
	out := make([]V, len(values))
	copy(out, values)
	return out
}

// Has returns true if at least one value is stored under key.
func (r *Registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Keys returns all keys in the order they were first appended.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}

// Count returns the total number of values across all keys.
func (r *Registry[K, V]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, values := range r.entries {
		n += len(values)
	}
	return n
}
