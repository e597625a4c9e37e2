// Package lockmap provides named mutexes for serializing read-compute-write
// sequences on a single entity, such as one tenant's ledger or one house's
// occupancy flag. Contention stays scoped to the key; there is no global lock.
package lockmap

import "sync"

// LockMap hands out one mutex per key. Mutexes are created on first use and
// kept for the lifetime of the map; the key space here (tenant and house IDs)
// is small and bounded.
type LockMap struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an empty lock map
func New() *LockMap {
	return &LockMap{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, blocking until it is available
func (m *LockMap) Lock(key string) {
	m.get(key).Lock()
}

// Unlock releases the mutex for key
func (m *LockMap) Unlock(key string) {
	m.get(key).Unlock()
}

func (m *LockMap) get(key string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}
