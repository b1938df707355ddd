/*
Package sqlarray maps SQL array columns into Go slices, Go arrays and other
container types.

A mapper is resolved once, from the requested type alone, and then reused
for every row. The requested type is a [qualifier.Type]: a Go type together
with a set of qualifiers, tags such as "json" or "encrypted" that refine its
meaning. Qualifiers on a container apply to every one of its elements.

# Resolution

[Resolve] decides how a column is converted into the requested type:

 1. Slices and Go arrays are built by mapping each element with the mapper
    registered for the element type, with the same qualifiers.

 2. Any other type is a container if the collector registry knows both how
    to build it and what its element type is. It is built by mapping each
    element as above and handing the mapped elements, in order, to the
    container strategy.

If the element type is the empty interface and no mapper is registered for
it, elements are passed through as returned by the driver.

When neither case applies, or no mapper exists for the element type,
Resolve returns false. That is the normal answer for types this package does
not handle and not an error.

# Raw values

Drivers return array columns in different shapes. Native Go slices are
indexed directly. Text is decoded as a PostgreSQL array literal when it
starts with '{' and as a JSON array when it starts with '['. The
[ElementSource] of a [Config] can be replaced to support other encodings.

# Scanning

[Config.Scanner] wraps a destination pointer in a [database/sql.Scanner]:

	cfg := sqlarray.NewConfig()
	var ids []int
	var tags map[string]struct{}
	err := row.Scan(cfg.MustScanner(&ids), cfg.MustScanner(&tags))

A SQL NULL column leaves the zero value of the requested type.
*/
package sqlarray
