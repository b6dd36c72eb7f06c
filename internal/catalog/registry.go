package catalog

import (
	"fmt"
	"sync"

	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/cleaning"
	apperrors "github.com/Laila-Said/AdventureWorks2019-Insights/internal/errors"
)

// Entry binds a table to its cleaning policy
type Entry struct {
	ID     TableID
	Policy cleaning.TablePolicy
}

// Name returns the table's sheet name
func (e Entry) Name() string {
	return e.ID.String()
}

// Registry holds the supported tables in menu order
type Registry struct {
	mu      sync.RWMutex
	entries map[TableID]Entry
	byName  map[string]TableID
	order   []TableID // Maintains registration order
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[TableID]Entry),
		byName:  make(map[string]TableID),
		order:   make([]TableID, 0),
	}
}

// Default returns a registry holding every table from Policies
func Default() *Registry {
	r := NewRegistry()
	for _, e := range Policies() {
		if err := r.Register(e); err != nil {
			panic(fmt.Sprintf("catalog: %v", err))
		}
	}
	return r
}

// Register adds an entry to the registry
func (r *Registry) Register(e Entry) error {
	if !e.ID.Valid() {
		return fmt.Errorf("unknown table id %d", int(e.ID))
	}
	if e.Policy.Table != e.ID.String() {
		return fmt.Errorf("policy table %q does not match %s", e.Policy.Table, e.ID)
	}
	if err := e.Policy.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[e.ID]; exists {
		return fmt.Errorf("table %s already registered", e.ID)
	}

	r.entries[e.ID] = e
	r.byName[e.Name()] = e.ID
	r.order = append(r.order, e.ID)
	return nil
}

// Get retrieves an entry by id
func (r *Registry) Get(id TableID) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.entries[id]
	if !exists {
		return Entry{}, apperrors.NewUnsupportedTableError(id.String())
	}
	return e, nil
}

// Lookup retrieves an entry by its exact sheet name
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byName[name]
	if !exists {
		return Entry{}, apperrors.NewUnsupportedTableError(name)
	}
	return r.entries[id], nil
}

// At returns the entry at a 1-based menu position
func (r *Registry) At(position int) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if position < 1 || position > len(r.order) {
		return Entry{}, false
	}
	return r.entries[r.order[position-1]], true
}

// List returns all entries in registration order
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, r.entries[id])
	}
	return entries
}

// Names returns all table names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	for i, id := range r.order {
		names[i] = id.String()
	}
	return names
}

// Count returns the number of registered tables
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}
