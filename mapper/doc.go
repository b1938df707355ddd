// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

/*
Package mapper holds the converters turning raw column values into typed Go
values, and the registry they are looked up in.

A Registry is keyed on qualifier.Type: a mapper registered for
"{json} string" is never returned for a plain "string" request, and the
other way around. NewRegistry pre-registers unqualified mappers for bool,
the sized integer and float types, string, []byte, time.Time and uuid.UUID.
They accept the representations database drivers commonly produce (int64,
float64, []byte, string and time.Time) as well as the elements of decoded
array text.
*/
package mapper
