// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

/*
Package typeinfo describes Go types requested as column mapping targets. As
much as possible, reflection over target types is limited to this package.

A Descriptor is one of a closed set of kinds: the empty interface (Any), an
unnamed scalar (Primitive), a slice or fixed-length array (Array), or any
other type (Named). Descriptors are generated once per reflect.Type and
cached for the life of the process.
*/
package typeinfo
