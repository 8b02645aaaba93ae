// Package catalog - Atomic catalog snapshot store
package catalog

import (
	"sync/atomic"

	"go.uber.org/zap"

	"baticost/internal/errors"
	"baticost/internal/logging"
)

// Store holds the process-wide catalog snapshot. Reload is an atomic swap of
// the whole catalog, never a partial mutation: an in-flight estimate keeps
// the snapshot it pinned at the start, so it can never mix old and new prices.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store holding a validated catalog
func NewStore(cat *Catalog) (*Store, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	s := &Store{}
	s.current.Store(cat)
	return s, nil
}

// MustNewStore is NewStore for catalogs that are known valid (the builtin)
func MustNewStore(cat *Catalog) *Store {
	s, err := NewStore(cat)
	if err != nil {
		panic(err)
	}
	return s
}

// Current returns the current snapshot. Callers hold the returned pointer for
// the duration of one estimate and must never mutate it.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Swap installs a new validated catalog snapshot
func (s *Store) Swap(cat *Catalog) error {
	if cat == nil {
		return errors.New(errors.TypeCatalog, "cannot swap in a nil catalog")
	}
	if err := cat.Validate(); err != nil {
		return err
	}
	old := s.current.Swap(cat)
	logging.Info("catalog snapshot swapped",
		zap.String("old_version", old.Version),
		zap.String("new_version", cat.Version))
	return nil
}

// ReloadFromFile loads, validates and atomically installs a catalog file
func (s *Store) ReloadFromFile(path string) error {
	cat, err := LoadFile(path)
	if err != nil {
		return err
	}
	return s.Swap(cat)
}
