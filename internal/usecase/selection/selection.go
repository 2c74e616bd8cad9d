package selection

import (
	"fmt"
	"sync"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
)

// Set is the bounded, append-ordered set of products chosen for comparison.
type Set struct {
	mu  sync.Mutex
	ids []product.ID
}

// New creates an empty selection.
func New() *Set {
	return &Set{}
}

// Toggle removes id if present, otherwise appends it.
// Adding to a full set is rejected with domain.ErrSelectionFull and leaves the set unchanged.
// Returns whether id is selected after the call.
func (s *Set) Toggle(id product.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i:i], s.ids[i+1:]...)
			return false, nil
		}
	}
	if len(s.ids) >= domain.MaxSelection {
		return false, fmt.Errorf("select %s: %w", id, domain.ErrSelectionFull)
	}
	s.ids = append(s.ids, id)
	return true, nil
}

// Clear empties the set.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
}

// CanCompare reports whether enough products are selected to compare.
func (s *Set) CanCompare() bool {
	return s.Len() >= domain.MinCompare
}

// Len returns the number of selected products.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Contains reports whether id is selected.
func (s *Set) Contains(id product.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns the selection in append order.
func (s *Set) IDs() []product.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]product.ID(nil), s.ids...)
}
