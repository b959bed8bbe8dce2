// Package session holds the currently loaded sheet table with an explicit
// load/replace/clear lifecycle, instead of ambient process-wide state.
package session

import (
	"errors"
	"sync"

	"github.com/sgvops/night-check-reporter/internal/models"
)

// ErrNoTable is returned when no sheet has been loaded yet.
var ErrNoTable = errors.New("no sheet loaded")

// Store guards the current table. The table itself is read-only once
// stored; a reload replaces it wholesale.
type Store struct {
	mu    sync.RWMutex
	table *models.SheetTable
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a freshly loaded table.
func (s *Store) Replace(table *models.SheetTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
}

// Current returns the loaded table or ErrNoTable.
func (s *Store) Current() (*models.SheetTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, ErrNoTable
	}
	return s.table, nil
}

// Clear drops the loaded table.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = nil
}
