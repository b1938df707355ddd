// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package qualifier pairs a target type with the semantic tags refining it.
package qualifier

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/canonical/sqlarray/typeinfo"
)

// Qualifier is an opaque tag refining the meaning of a type beyond its shape,
// for example "json" or "encrypted".
type Qualifier string

// Set is an immutable, unordered set of qualifiers. The zero Set is empty.
type Set struct {
	// sorted holds the distinct qualifiers in ascending order.
	sorted []Qualifier
}

// NewSet returns the set of the given qualifiers. Duplicates are ignored.
func NewSet(qs ...Qualifier) Set {
	if len(qs) == 0 {
		return Set{}
	}
	sorted := append([]Qualifier(nil), qs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	n := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[n-1] {
			sorted[n] = sorted[i]
			n++
		}
	}
	return Set{sorted: sorted[:n]}
}

// Len returns the number of qualifiers in the set.
func (s Set) Len() int {
	return len(s.sorted)
}

// Contains reports whether q is in the set.
func (s Set) Contains(q Qualifier) bool {
	i := sort.Search(len(s.sorted), func(i int) bool { return s.sorted[i] >= q })
	return i < len(s.sorted) && s.sorted[i] == q
}

// Slice returns the qualifiers in ascending order.
func (s Set) Slice() []Qualifier {
	return append([]Qualifier(nil), s.sorted...)
}

// Equal reports whether both sets hold the same qualifiers.
func (s Set) Equal(other Set) bool {
	if len(s.sorted) != len(other.sorted) {
		return false
	}
	for i := range s.sorted {
		if s.sorted[i] != other.sorted[i] {
			return false
		}
	}
	return true
}

func (s Set) String() string {
	strs := make([]string, len(s.sorted))
	for i, q := range s.sorted {
		strs[i] = string(q)
	}
	return "{" + strings.Join(strs, ", ") + "}"
}

// key is a canonical, comparable encoding of the set. Each qualifier is
// prefixed with its length so that no two distinct sets share a key.
func (s Set) key() string {
	var b strings.Builder
	for _, q := range s.sorted {
		b.WriteString(strconv.Itoa(len(q)))
		b.WriteByte(':')
		b.WriteString(string(q))
	}
	return b.String()
}

// Type is a target type paired with the set of qualifiers refining it.
type Type struct {
	desc       typeinfo.Descriptor
	qualifiers Set
}

// Of returns the qualified type of desc with the given qualifiers.
func Of(desc typeinfo.Descriptor, qs ...Qualifier) Type {
	return Type{desc: desc, qualifiers: NewSet(qs...)}
}

// OfSet returns the qualified type of desc with the qualifier set qs.
func OfSet(desc typeinfo.Descriptor, qs Set) Type {
	return Type{desc: desc, qualifiers: qs}
}

// For returns the qualified type of the type parameter T.
func For[T any](qs ...Qualifier) Type {
	return Of(typeinfo.For[T](), qs...)
}

// Type returns the underlying type descriptor.
func (t Type) Type() typeinfo.Descriptor {
	return t.desc
}

// Qualifiers returns the qualifier set.
func (t Type) Qualifiers() Set {
	return t.qualifiers
}

// WithType returns a qualified type of desc carrying the same qualifiers as
// t.
func (t Type) WithType(desc typeinfo.Descriptor) Type {
	return Type{desc: desc, qualifiers: t.qualifiers}
}

// Equal reports whether both the underlying types and the qualifier sets
// are equal.
func (t Type) Equal(other Type) bool {
	return t.desc.Type() == other.desc.Type() && t.qualifiers.Equal(other.qualifiers)
}

// Key is a comparable form of a qualified type, usable as a map key. Two
// qualified types have the same Key iff they are Equal.
type Key struct {
	typ        reflect.Type
	qualifiers string
}

// Key returns the comparable form of t.
func (t Type) Key() Key {
	return Key{typ: t.desc.Type(), qualifiers: t.qualifiers.key()}
}

func (t Type) String() string {
	if t.qualifiers.Len() == 0 {
		return t.desc.String()
	}
	return t.qualifiers.String() + " " + t.desc.String()
}
