// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package collector

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"

	"github.com/canonical/sqlarray/typeinfo"
)

// Strategy assembles an ordered, finite sequence of element values into
// one container value.
type Strategy func(elems []any) (any, error)

// Factory supports a family of container types, for example every
// map[E]struct{} set type.
type Factory interface {
	// Accepts reports whether the factory supports container type t.
	Accepts(t reflect.Type) bool
	// ElementType returns the element type of container type t.
	ElementType(t reflect.Type) (reflect.Type, bool)
	// Strategy returns the strategy building values of container type t.
	Strategy(t reflect.Type) Strategy
}

// Registry finds the strategy and element type of container types. The two
// lookups are independent; a container type may have one without the
// other. Types registered directly take precedence over factories, and
// factories are consulted most recently registered first.
//
// Lookups are by type only; qualifiers never take part.
type Registry struct {
	mu           sync.RWMutex
	strategies   map[reflect.Type]Strategy
	elementTypes map[reflect.Type]reflect.Type
	factories    []Factory
}

// NewRegistry returns a Registry holding the built-in set and optional
// factories.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.factories = []Factory{optionalFactory{}, setFactory{}}
	return r
}

// NewEmptyRegistry returns a Registry with no strategies.
func NewEmptyRegistry() *Registry {
	return &Registry{
		strategies:   make(map[reflect.Type]Strategy),
		elementTypes: make(map[reflect.Type]reflect.Type),
	}
}

// Register associates container type t with its element type and the
// strategy building it.
func (r *Registry) Register(t, elem reflect.Type, s Strategy) error {
	if err := r.RegisterElementType(t, elem); err != nil {
		return err
	}
	return r.RegisterStrategy(t, s)
}

// RegisterStrategy associates container type t with strategy s.
func (r *Registry) RegisterStrategy(t reflect.Type, s Strategy) error {
	if t == nil {
		return errors.New("cannot register strategy for nil type")
	}
	if s == nil {
		return errors.Errorf("cannot register nil strategy for type %s", t)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[t] = s
	return nil
}

// RegisterElementType records elem as the element type of container type t.
func (r *Registry) RegisterElementType(t, elem reflect.Type) error {
	if t == nil {
		return errors.New("cannot register element type for nil type")
	}
	if elem == nil {
		return errors.Errorf("cannot register nil element type for type %s", t)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elementTypes[t] = elem
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

// FindFor returns the strategy building values of the container type d.
func (r *Registry) FindFor(d typeinfo.Descriptor) (Strategy, bool) {
	t := d.Type()
	if t == nil {
		return nil, false
	}
	r.mu.RLock()
	s, ok := r.strategies[t]
	factories := r.factories
	r.mu.RUnlock()
	if ok {
		return s, true
	}
	for _, f := range factories {
		if f.Accepts(t) {
			if s := f.Strategy(t); s != nil {
				return s, true
			}
		}
	}
	return nil, false
}

// FindElementTypeFor returns the element type of the container type d.
func (r *Registry) FindElementTypeFor(d typeinfo.Descriptor) (typeinfo.Descriptor, bool) {
	t := d.Type()
	if t == nil {
		return typeinfo.Descriptor{}, false
	}
	r.mu.RLock()
	elem, ok := r.elementTypes[t]
	factories := r.factories
	r.mu.RUnlock()
	if ok {
		return typeinfo.Of(elem), true
	}
	for _, f := range factories {
		if f.Accepts(t) {
			if elem, ok := f.ElementType(t); ok {
				return typeinfo.Of(elem), true
			}
		}
	}
	return typeinfo.Descriptor{}, false
}
