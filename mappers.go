// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlarray

import (
	"fmt"
	"reflect"

	"github.com/canonical/sqlarray/collector"
	"github.com/canonical/sqlarray/internal/convert"
	"github.com/canonical/sqlarray/internal/rawarray"
	"github.com/canonical/sqlarray/mapper"
)

// arrayMapper maps an array column into a slice or Go array type.
type arrayMapper struct {
	// typ is the slice or array type built.
	typ  reflect.Type
	elem mapper.ColumnMapper
	// elements decodes raw values that are not native Go slices.
	elements ElementSource
}

// Map maps each raw element in order and stores the results in a new value
// of the requested type. A nil raw value maps to the zero value.
func (m *arrayMapper) Map(raw any) (any, error) {
	if raw == nil {
		return reflect.Zero(m.typ).Interface(), nil
	}
	rawElems, ok := rawarray.Native(raw)
	if !ok {
		var err error
		rawElems, err = m.elements.Elements(raw)
		if err != nil {
			return nil, err
		}
	}

	var out reflect.Value
	if m.typ.Kind() == reflect.Array {
		if len(rawElems) != m.typ.Len() {
			return nil, fmt.Errorf("cannot map %d elements to %s", len(rawElems), m.typ)
		}
		out = reflect.New(m.typ).Elem()
	} else {
		out = reflect.MakeSlice(m.typ, len(rawElems), len(rawElems))
	}

	for i, rawElem := range rawElems {
		v, err := m.elem.Map(rawElem)
		if err != nil {
			return nil, err
		}
		ev, err := convert.Value(v, m.typ.Elem())
		if err != nil {
			return nil, fmt.Errorf("cannot map element %d of %s: %w", i, m.typ, err)
		}
		out.Index(i).Set(ev)
	}
	return out.Interface(), nil
}

// containerMapper maps an array column into a container type built by a
// collector strategy.
type containerMapper struct {
	// typ is the container type built.
	typ      reflect.Type
	elem     mapper.ColumnMapper
	build    collector.Strategy
	elements ElementSource
}

// Map maps each raw element in order and passes the results to the
// container strategy. A nil raw value maps to the zero value.
func (m *containerMapper) Map(raw any) (any, error) {
	if raw == nil {
		return reflect.Zero(m.typ).Interface(), nil
	}
	rawElems, err := m.elements.Elements(raw)
	if err != nil {
		return nil, err
	}
	elems := make([]any, len(rawElems))
	for i, rawElem := range rawElems {
		elems[i], err = m.elem.Map(rawElem)
		if err != nil {
			return nil, err
		}
	}
	return m.build(elems)
}
