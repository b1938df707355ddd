// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlarray

import (
	"fmt"

	"github.com/canonical/sqlarray/mapper"
	"github.com/canonical/sqlarray/qualifier"
)

// Resolve returns a mapper converting an array column into a value of the
// qualified type qt, or false if qt cannot be built from an array column.
// The result false is not an error: callers try other mappers, or report
// that no mapper is registered for qt.
//
// Slices and Go arrays are built by mapping each element with the mapper
// for the element type. Any other type is built by the container strategy
// registered for it in cfg.Collectors, which also provides its element
// type. In both cases the qualifiers of qt apply to the element type.
//
// Resolve panics if qt has no underlying type.
func Resolve(qt qualifier.Type, cfg *Config) (mapper.ColumnMapper, bool) {
	if !qt.Type().IsValid() {
		panic(fmt.Sprintf("sqlarray: cannot resolve mapper for invalid type %s", qt))
	}
	cfg.validate()

	if qt.Type().IsArray() {
		return resolveArray(qt, cfg)
	}
	return resolveContainer(qt, cfg)
}

// Factory returns a mapper.Factory resolving array and container types with
// cfg.
func Factory(cfg *Config) mapper.Factory {
	return mapper.FactoryFunc(func(qt qualifier.Type) (mapper.ColumnMapper, bool) {
		return Resolve(qt, cfg)
	})
}

func resolveArray(qt qualifier.Type, cfg *Config) (mapper.ColumnMapper, bool) {
	elemType := qt.WithType(qt.Type().Elem())
	elem, ok := resolveElement(elemType, cfg)
	if !ok {
		return nil, false
	}
	return &arrayMapper{typ: qt.Type().Type(), elem: elem, elements: cfg.Elements}, true
}

func resolveContainer(qt qualifier.Type, cfg *Config) (mapper.ColumnMapper, bool) {
	build, ok := cfg.Collectors.FindFor(qt.Type())
	if !ok {
		return nil, false
	}
	elemDesc, ok := cfg.Collectors.FindElementTypeFor(qt.Type())
	if !ok {
		return nil, false
	}
	elem, ok := resolveElement(qt.WithType(elemDesc), cfg)
	if !ok {
		return nil, false
	}
	return &containerMapper{typ: qt.Type().Type(), elem: elem, build: build, elements: cfg.Elements}, true
}

// passthrough returns the raw value unchanged.
var passthrough = mapper.Func(func(raw any) (any, error) {
	return raw, nil
})

// resolveElement finds the mapper of an element type. An unmapped empty
// interface element receives the raw value as is.
func resolveElement(elemType qualifier.Type, cfg *Config) (mapper.ColumnMapper, bool) {
	if m, ok := cfg.Mappers.FindFor(elemType); ok {
		return m, true
	}
	if elemType.Type().IsAny() {
		return passthrough, true
	}
	return nil, false
}
