// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

/*
Package collector holds the strategies assembling a sequence of element
values into a container value.

Slices and Go arrays are not containers in this sense; they are handled
directly by the sqlarray package. NewRegistry supports two container
families out of the box:

  - sets, as map[E]struct{} or map[E]bool, with element type E
  - optional values, as *E, built from at most one element

Other container types, for example a generic List[T], are registered with
Registry.Register or supported by a Factory.
*/
package collector
