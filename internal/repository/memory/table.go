// Package memory keeps the demo records in process memory. A restart loses
// everything.
package memory

import "sync"

// table is an insertion-ordered map guarded by a RWMutex.
type table[K comparable, V any] struct {
	mu    sync.RWMutex
	rows  map[K]V
	order []K
}

func newTable[K comparable, V any]() *table[K, V] {
	return &table[K, V]{rows: make(map[K]V)}
}

// put inserts or replaces v. It reports whether the key was new.
func (t *table[K, V]) put(k K, v V) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, exists := t.rows[k]
	if !exists {
		t.order = append(t.order, k)
	}
	t.rows[k] = v
	return !exists
}

// insert adds v only when k is absent.
func (t *table[K, V]) insert(k K, v V) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[k]; exists {
		return false
	}
	t.order = append(t.order, k)
	t.rows[k] = v
	return true
}

func (t *table[K, V]) get(k K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[k]
	return v, ok
}

// update applies fn to the stored value in place. It reports whether k existed.
func (t *table[K, V]) update(k K, fn func(*V)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.rows[k]
	if !ok {
		return false
	}
	fn(&v)
	t.rows[k] = v
	return true
}

// remove deletes k. It reports whether k existed.
func (t *table[K, V]) remove(k K) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[k]; !ok {
		return false
	}
	delete(t.rows, k)
	for i, existing := range t.order {
		if existing == k {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[K, V]) all() []V {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]V, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.rows[k])
	}
	return out
}

func (t *table[K, V]) find(match func(V) bool) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, k := range t.order {
		if v := t.rows[k]; match(v) {
			return v, true
		}
	}
	var zero V
	return zero, false
}
