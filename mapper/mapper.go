// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package mapper

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/canonical/sqlarray/qualifier"
)

// ColumnMapper converts one raw column value, as returned by a database
// driver, into a value of the qualified type it was found for.
// ColumnMappers must be safe for concurrent use.
type ColumnMapper interface {
	Map(raw any) (any, error)
}

// Func is an adapter allowing a plain function to be used as a
// ColumnMapper.
type Func func(raw any) (any, error)

// Map calls f(raw).
func (f Func) Map(raw any) (any, error) {
	return f(raw)
}

// Factory produces ColumnMappers for the qualified types it supports. Build
// returns false when the factory does not apply to qt; this is not an
// error.
type Factory interface {
	Build(qt qualifier.Type) (ColumnMapper, bool)
}

// FactoryFunc is an adapter allowing a plain function to be used as a
// Factory.
type FactoryFunc func(qt qualifier.Type) (ColumnMapper, bool)

// Build calls f(qt).
func (f FactoryFunc) Build(qt qualifier.Type) (ColumnMapper, bool) {
	return f(qt)
}

// Registry finds ColumnMappers for qualified types. Mappers registered for
// an exact qualified type take precedence over factories, and factories are
// consulted most recently registered first.
type Registry struct {
	mu        sync.RWMutex
	exact     map[qualifier.Key]ColumnMapper
	factories []Factory
}

// NewRegistry returns a Registry holding the built-in mappers for scalar
// types.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	registerBuiltins(r)
	return r
}

// NewEmptyRegistry returns a Registry with no mappers.
func NewEmptyRegistry() *Registry {
	return &Registry{exact: make(map[qualifier.Key]ColumnMapper)}
}

// Register associates m with exactly the qualified type qt, replacing any
// mapper previously registered for it.
func (r *Registry) Register(qt qualifier.Type, m ColumnMapper) error {
	if !qt.Type().IsValid() {
		return errors.New("cannot register mapper for invalid type")
	}
	if m == nil {
		return errors.Errorf("cannot register nil mapper for type %s", qt)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exact[qt.Key()] = m
	return nil
}

// RegisterFactory adds f to the registry. It is consulted before all
// previously registered factories.
func (r *Registry) RegisterFactory(f Factory) error {
	if f == nil {
		return errors.New("cannot register nil factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = append([]Factory{f}, r.factories...)
	return nil
}

// FindFor returns the mapper for exactly the qualified type qt, or false if
// there is none.
func (r *Registry) FindFor(qt qualifier.Type) (ColumnMapper, bool) {
	r.mu.RLock()
	m, ok := r.exact[qt.Key()]
	factories := r.factories
	r.mu.RUnlock()
	if ok {
		return m, true
	}

	// Factories may recurse into the registry, so the lock is not held.
	for _, f := range factories {
		if m, ok := f.Build(qt); ok {
			return m, true
		}
	}
	return nil, false
}
