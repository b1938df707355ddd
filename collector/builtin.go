// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package collector

import (
	"fmt"
	"reflect"

	"github.com/canonical/sqlarray/internal/convert"
)

var (
	emptyStruct = reflect.TypeOf(struct{}{})
	boolType    = reflect.TypeOf(true)
)

// setFactory builds sets represented as map[E]struct{} or map[E]bool.
// Duplicate elements collapse into one key.
type setFactory struct{}

func (setFactory) Accepts(t reflect.Type) bool {
	if t.Kind() != reflect.Map {
		return false
	}
	return t.Elem() == emptyStruct || t.Elem() == boolType
}

func (setFactory) ElementType(t reflect.Type) (reflect.Type, bool) {
	return t.Key(), true
}

func (setFactory) Strategy(t reflect.Type) Strategy {
	present := reflect.ValueOf(struct{}{})
	if t.Elem() == boolType {
		present = reflect.ValueOf(true)
	}
	return func(elems []any) (any, error) {
		set := reflect.MakeMapWithSize(t, len(elems))
		for _, elem := range elems {
			key, err := convert.Value(elem, t.Key())
			if err != nil {
				return nil, err
			}
			if err := setKey(set, key, present); err != nil {
				return nil, fmt.Errorf("cannot build %s: unhashable element of type %T", t, elem)
			}
		}
		return set.Interface(), nil
	}
}

// setKey stores key in set. Interface keys holding values that cannot be
// hashed, such as slices or arrays of slices, fail at run time.
func setKey(set, key, present reflect.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	set.SetMapIndex(key, present)
	return nil
}

// optionalFactory builds optional values represented as *E. No element, or
// a single nil element, yields a nil pointer.
type optionalFactory struct{}

func (optionalFactory) Accepts(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer
}

func (optionalFactory) ElementType(t reflect.Type) (reflect.Type, bool) {
	return t.Elem(), true
}

func (optionalFactory) Strategy(t reflect.Type) Strategy {
	return func(elems []any) (any, error) {
		switch len(elems) {
		case 0:
			return reflect.Zero(t).Interface(), nil
		case 1:
			if elems[0] == nil {
				return reflect.Zero(t).Interface(), nil
			}
			v, err := convert.Value(elems[0], t.Elem())
			if err != nil {
				return nil, err
			}
			p := reflect.New(t.Elem())
			p.Elem().Set(v)
			return p.Interface(), nil
		}
		return nil, fmt.Errorf("cannot build %s: multiple values for optional", t)
	}
}
