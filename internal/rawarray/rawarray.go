// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package rawarray splits array-like raw column values into their elements.
package rawarray

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
)

var byteSliceType = reflect.TypeOf([]byte(nil))

// Elements returns the elements of raw in order. It understands native Go
// slices and arrays, driver.Valuer wrappers such as pq.Array, PostgreSQL
// array literals and JSON arrays. A nil raw value has no elements.
func Elements(raw any) ([]any, error) {
	if raw == nil {
		return nil, nil
	}
	if elems, ok := Native(raw); ok {
		return elems, nil
	}
	switch v := raw.(type) {
	case []byte:
		return text(v)
	case string:
		return text([]byte(v))
	case driver.Valuer:
		inner, err := v.Value()
		if err != nil {
			return nil, err
		}
		if _, ok := inner.(driver.Valuer); ok {
			return nil, fmt.Errorf("cannot iterate over %T: value is not a driver value", raw)
		}
		return Elements(inner)
	}
	return nil, fmt.Errorf("cannot iterate over %T", raw)
}

// Native returns the elements of raw if it is a Go slice or array that can
// be indexed directly. Byte slices are driver text, not arrays.
func Native(raw any) ([]any, bool) {
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Slice:
		if v.Type().ConvertibleTo(byteSliceType) {
			return nil, false
		}
	case reflect.Array:
	default:
		return nil, false
	}
	elems := make([]any, v.Len())
	for i := range elems {
		elems[i] = v.Index(i).Interface()
	}
	return elems, true
}

func text(b []byte) ([]any, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("cannot iterate over empty text")
	}
	switch trimmed[0] {
	case '{':
		return postgresArray(trimmed)
	case '[':
		return jsonArray(trimmed)
	}
	return nil, fmt.Errorf("cannot iterate over text %q: not an array literal", trimmed)
}

// postgresArray parses a one-dimensional PostgreSQL array literal. Elements
// are returned as strings, NULL elements as nil.
func postgresArray(b []byte) ([]any, error) {
	var strs []sql.NullString
	if err := (pq.GenericArray{A: &strs}).Scan(b); err != nil {
		return nil, err
	}
	elems := make([]any, len(strs))
	for i, s := range strs {
		if s.Valid {
			elems[i] = s.String
		}
	}
	return elems, nil
}

// jsonArray decodes a JSON array. Integral numbers are returned as int64,
// other numbers as float64, matching what SQL drivers return for numeric
// columns.
func jsonArray(b []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var elems []any
	if err := dec.Decode(&elems); err != nil {
		return nil, fmt.Errorf("cannot decode JSON array: %w", err)
	}
	for i, e := range elems {
		elems[i] = normalize(e)
	}
	return elems, nil
}

func normalize(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil && !math.IsInf(f, 0) {
			return f
		}
		return v.String()
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
	case map[string]any:
		for k, e := range v {
			v[k] = normalize(e)
		}
	}
	return v
}
