// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package typeinfo

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind is the shape of a type as far as column mapping is concerned.
type Kind int

const (
	// Invalid is the Kind of the zero Descriptor.
	Invalid Kind = iota
	// Any is the empty interface, the universal type every value satisfies.
	Any
	// Primitive is an unnamed boolean, numeric or string type.
	Primitive
	// Array is a Go slice or fixed-length array type.
	Array
	// Named is every other type: structs, maps, pointers, named scalars and
	// instantiated generic types.
	Named
)

func (k Kind) String() string {
	switch k {
	case Any:
		return "any"
	case Primitive:
		return "primitive"
	case Array:
		return "array"
	case Named:
		return "named"
	}
	return "invalid"
}

// Descriptor describes a Go type requested as the target of a column
// mapping. The zero Descriptor is invalid.
type Descriptor struct {
	typ  reflect.Type
	kind Kind

	// identifier is the type name with any generic type arguments removed.
	identifier string
	// args holds the generic type arguments of an instantiated type.
	args []string
}

// Of returns the Descriptor of t, generating and caching it as required.
// A nil reflect.Type yields the invalid Descriptor.
func Of(t reflect.Type) Descriptor {
	if t == nil {
		return Descriptor{}
	}
	return Cache().Describe(t)
}

// For returns the Descriptor of the type parameter T.
func For[T any]() Descriptor {
	return Of(reflect.TypeOf((*T)(nil)).Elem())
}

// generate classifies t.
func generate(t reflect.Type) Descriptor {
	d := Descriptor{typ: t}
	switch {
	case t.Kind() == reflect.Interface && t.NumMethod() == 0 && t.Name() == "":
		d.kind = Any
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		d.kind = Array
	case t.PkgPath() == "" && isBasic(t.Kind()):
		d.kind = Primitive
	default:
		d.kind = Named
	}
	d.identifier, d.args = splitGeneric(t.String())
	return d
}

func isBasic(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// splitGeneric splits "pkg.List[int,string]" into "pkg.List" and its type
// arguments. Names without a trailing argument list are returned unchanged.
// Composite types such as "map[string]int" have no arguments of their own.
func splitGeneric(name string) (string, []string) {
	open := strings.IndexByte(name, '[')
	if open <= 0 || !strings.HasSuffix(name, "]") || strings.HasPrefix(name, "map[") {
		return name, nil
	}
	if strings.ContainsAny(name[:open], "*[]") {
		return name, nil
	}
	var args []string
	depth, start := 0, open+1
	for i := open + 1; i < len(name)-1; i++ {
		switch name[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, name[start:i])
				start = i + 1
			}
		}
	}
	args = append(args, name[start:len(name)-1])
	return name[:open], args
}

// IsValid reports whether d describes a type.
func (d Descriptor) IsValid() bool {
	return d.kind != Invalid
}

// Kind returns the shape of the described type.
func (d Descriptor) Kind() Kind {
	return d.kind
}

// IsArray reports whether d is a slice or fixed-length array type.
func (d Descriptor) IsArray() bool {
	return d.kind == Array
}

// IsAny reports whether d is the empty interface.
func (d Descriptor) IsAny() bool {
	return d.kind == Any
}

// Elem returns the component type of an Array descriptor.
func (d Descriptor) Elem() Descriptor {
	if d.kind != Array {
		panic(fmt.Sprintf("internal error: Elem called on %s type %s", d.kind, d))
	}
	return Of(d.typ.Elem())
}

// Type returns the described reflect.Type.
func (d Descriptor) Type() reflect.Type {
	return d.typ
}

// Identifier returns the type name stripped of generic type arguments. It
// identifies the container shape shared by all instantiations of a generic
// type.
func (d Descriptor) Identifier() string {
	return d.identifier
}

// Args returns the generic type arguments of an instantiated type, as
// printed by reflect.
func (d Descriptor) Args() []string {
	return append([]string(nil), d.args...)
}

func (d Descriptor) String() string {
	if d.typ == nil {
		return "<invalid>"
	}
	return d.typ.String()
}
