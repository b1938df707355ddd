// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlarray

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/canonical/sqlarray/internal/convert"
	"github.com/canonical/sqlarray/mapper"
	"github.com/canonical/sqlarray/qualifier"
	"github.com/canonical/sqlarray/typeinfo"
)

// Scanner returns a sql.Scanner decoding one column into dest, which must
// be a non-nil pointer. The mapper for the pointed to type, qualified with
// qualifiers, is found once in cfg.Mappers; every call to Scan reuses it.
//
// Example:
//
//	var tags map[string]struct{}
//	scanner, err := cfg.Scanner(&tags)
//	...
//	err = rows.Scan(&id, scanner)
func (cfg *Config) Scanner(dest any, qualifiers ...qualifier.Qualifier) (sql.Scanner, error) {
	cfg.validate()
	if dest == nil {
		return nil, fmt.Errorf("need pointer, got nil")
	}
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer {
		return nil, fmt.Errorf("need pointer, got %s", v.Kind())
	}
	if v.IsNil() {
		return nil, fmt.Errorf("need non-nil pointer")
	}

	qt := qualifier.Of(typeinfo.Of(v.Type().Elem()), qualifiers...)
	m, ok := cfg.Mappers.FindFor(qt)
	if !ok {
		return nil, fmt.Errorf("no mapper registered for type %s", qt)
	}
	return &scanProxy{original: v.Elem(), mapper: m}, nil
}

// MustScanner is the same as [Config.Scanner] except that it panics on
// error.
func (cfg *Config) MustScanner(dest any, qualifiers ...qualifier.Qualifier) sql.Scanner {
	s, err := cfg.Scanner(dest, qualifiers...)
	if err != nil {
		panic(err)
	}
	return s
}

// scanProxy is a shim for scanning a column through a mapper. The
// destination is only written when mapping succeeds.
type scanProxy struct {
	original reflect.Value
	mapper   mapper.ColumnMapper
}

// Scan implements sql.Scanner.
func (sp *scanProxy) Scan(src any) error {
	mapped, err := sp.mapper.Map(src)
	if err != nil {
		return err
	}
	val, err := convert.Value(mapped, sp.original.Type())
	if err != nil {
		return err
	}
	sp.original.Set(val)
	return nil
}
