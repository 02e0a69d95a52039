package reconcile

import "sync"

// Key identifies a shared entity resolved during a run.
// Lookups are by display name, so the language is part of the identity.
type Key struct {
	Kind     string
	Name     string
	Language string
}

type entry struct {
	mu       sync.Mutex
	id       uint
	resolved bool
}

// Registry caches ids of shared entities (brands, facets, facet values, collections)
// resolved during a run so that two items naming the same entity share one row.
// A Registry lives for a single run.
type Registry struct {
	mu      sync.Mutex
	entries map[Key]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Key]*entry)}
}

func (r *Registry) entry(key Key) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		e = &entry{}
		r.entries[key] = e
	}
	return e
}

// Scope opens a unit of work bound to one item.
func (r *Registry) Scope() *Scope {
	return &Scope{registry: r}
}

// Scope tracks the keys an item resolved so they can be forgotten if the
// item's transaction is rolled back.
type Scope struct {
	registry *Registry
	resolved []Key
}

// Resolve returns the id cached under key. On a miss, resolve is called while
// holding the key's lock and its result is cached.
func (s *Scope) Resolve(key Key, resolve func() (uint, error)) (uint, error) {
	e := s.registry.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.resolved {
		return e.id, nil
	}

	id, err := resolve()
	if err != nil {
		return 0, err
	}

	e.id = id
	e.resolved = true
	s.resolved = append(s.resolved, key)
	return id, nil
}

// Commit keeps every id resolved by this scope.
func (s *Scope) Commit() {
	s.resolved = nil
}

// Rollback forgets every id first resolved by this scope.
func (s *Scope) Rollback() {
	for _, key := range s.resolved {
		e := s.registry.entry(key)
		e.mu.Lock()
		e.id = 0
		e.resolved = false
		e.mu.Unlock()
	}
	s.resolved = nil
}
