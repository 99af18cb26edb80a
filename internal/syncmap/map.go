package syncmap

import "sync"

// Map is a thread-safe generic map structure
type Map[K comparable, V any] struct {
	mux sync.RWMutex
	m   map[K]V
}

// New creates a new instance of Map
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V)}
}

// Get retrieves an item by key
func (r *Map[K, V]) Get(key K) (V, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	v, ok := r.m[key]
	return v, ok
}

// Set adds or updates an item by key
func (r *Map[K, V]) Set(key K, value V) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.m[key] = value
}

// Update applies fn to the current value (zero when absent) under the write
// lock and stores the result.
func (r *Map[K, V]) Update(key K, fn func(prev V, ok bool) (V, error)) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	prev, ok := r.m[key]
	next, err := fn(prev, ok)
	if err != nil {
		return err
	}
	r.m[key] = next
	return nil
}

// Delete removes an item by key
func (r *Map[K, V]) Delete(key K) {
	r.mux.Lock()
	defer r.mux.Unlock()
	delete(r.m, key)
}

// Keys returns all keys in unspecified order
func (r *Map[K, V]) Keys() []K {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]K, 0, len(r.m))
	for k := range r.m {
		ret = append(ret, k)
	}
	return ret
}

// List returns a slice of all items
func (r *Map[K, V]) List() []V {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]V, 0, len(r.m))
	for _, v := range r.m {
		ret = append(ret, v)
	}
	return ret
}
