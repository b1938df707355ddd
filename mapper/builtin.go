// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package mapper

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/sqlarray/qualifier"
)

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type float interface {
	~float32 | ~float64
}

// timeLayouts are tried in order when a time is stored as text. The second
// is the format the SQLite driver writes.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func registerBuiltins(r *Registry) {
	register := func(qt qualifier.Type, f Func) {
		if err := r.Register(qt, f); err != nil {
			panic(fmt.Sprintf("internal error: %s", err))
		}
	}
	register(qualifier.For[bool](), func(raw any) (any, error) { return toBool(raw) })
	register(qualifier.For[int](), signedMapper[int]())
	register(qualifier.For[int8](), signedMapper[int8]())
	register(qualifier.For[int16](), signedMapper[int16]())
	register(qualifier.For[int32](), signedMapper[int32]())
	register(qualifier.For[int64](), signedMapper[int64]())
	register(qualifier.For[uint](), unsignedMapper[uint]())
	register(qualifier.For[uint8](), unsignedMapper[uint8]())
	register(qualifier.For[uint16](), unsignedMapper[uint16]())
	register(qualifier.For[uint32](), unsignedMapper[uint32]())
	register(qualifier.For[uint64](), unsignedMapper[uint64]())
	register(qualifier.For[float32](), floatMapper[float32]())
	register(qualifier.For[float64](), floatMapper[float64]())
	register(qualifier.For[string](), func(raw any) (any, error) { return toString(raw) })
	register(qualifier.For[[]byte](), func(raw any) (any, error) { return toBytes(raw) })
	register(qualifier.For[time.Time](), func(raw any) (any, error) { return toTime(raw) })
	register(qualifier.For[uuid.UUID](), func(raw any) (any, error) { return toUUID(raw) })
}

// Scalar mappers map SQL NULL to the zero value, as database/sql does for
// its Null* types.

func signedMapper[T signed]() Func {
	return func(raw any) (any, error) {
		if raw == nil {
			return T(0), nil
		}
		i, err := toInt64(raw)
		if err != nil {
			return nil, err
		}
		t := T(i)
		if int64(t) != i {
			return nil, fmt.Errorf("cannot convert %d to %T: value out of range", i, t)
		}
		return t, nil
	}
}

func unsignedMapper[T unsigned]() Func {
	return func(raw any) (any, error) {
		if raw == nil {
			return T(0), nil
		}
		u, err := toUint64(raw)
		if err != nil {
			return nil, err
		}
		t := T(u)
		if uint64(t) != u {
			return nil, fmt.Errorf("cannot convert %d to %T: value out of range", u, t)
		}
		return t, nil
	}
}

func floatMapper[T float]() Func {
	return func(raw any) (any, error) {
		if raw == nil {
			return T(0), nil
		}
		f, err := toFloat64(raw)
		if err != nil {
			return nil, err
		}
		return T(f), nil
	}
}

func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return checkedInt64(uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return checkedInt64(v)
	case float32:
		return integralFloat(float64(v))
	case float64:
		return integralFloat(v)
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case []byte:
		return parseInt(string(v))
	case string:
		return parseInt(v)
	}
	return 0, fmt.Errorf("cannot convert %T to integer", raw)
}

func checkedInt64(u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("cannot convert %d to int64: value out of range", u)
	}
	return int64(u), nil
}

func integralFloat(f float64) (int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f > math.MaxInt64 {
		return 0, fmt.Errorf("cannot convert %v to integer", f)
	}
	return int64(f), nil
}

func parseInt(s string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %q to integer: %w", s, err)
	}
	return i, nil
}

func toUint64(raw any) (uint64, error) {
	switch v := raw.(type) {
	case uint:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	case []byte:
		return parseUint(string(v))
	case string:
		return parseUint(v)
	}
	i, err := toInt64(raw)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, fmt.Errorf("cannot convert %d to unsigned integer", i)
	}
	return uint64(i), nil
}

func parseUint(s string) (uint64, error) {
	u, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %q to unsigned integer: %w", s, err)
	}
	return u, nil
}

func toFloat64(raw any) (float64, error) {
	switch v := raw.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case []byte:
		return parseFloat(string(v))
	case string:
		return parseFloat(v)
	}
	i, err := toInt64(raw)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %T to float", raw)
	}
	return float64(i), nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %q to float: %w", s, err)
	}
	return f, nil
}

func toBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case []byte:
		return parseBool(string(v))
	case string:
		return parseBool(v)
	}
	i, err := toInt64(raw)
	if err != nil {
		return false, fmt.Errorf("cannot convert %T to bool", raw)
	}
	return i != 0, nil
}

func parseBool(s string) (bool, error) {
	// PostgreSQL array literals spell booleans as t and f.
	switch strings.TrimSpace(s) {
	case "t":
		return true, nil
	case "f":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("cannot convert %q to bool: %w", s, err)
	}
	return b, nil
}

func toString(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return v.String(), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("cannot convert %T to string", raw)
}

func toBytes(raw any) ([]byte, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []byte:
		// Drivers may reuse the buffer for the next row.
		return append([]byte(nil), v...), nil
	case string:
		return []byte(v), nil
	}
	return nil, fmt.Errorf("cannot convert %T to []byte", raw)
}

func toTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case []byte:
		return parseTime(string(v))
	case string:
		return parseTime(v)
	case int64:
		return time.Unix(v, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("cannot convert %T to time.Time", raw)
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot convert %q to time.Time", s)
}

func toUUID(raw any) (uuid.UUID, error) {
	switch v := raw.(type) {
	case nil:
		return uuid.Nil, nil
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(v)
	case []byte:
		if len(v) == 16 {
			return uuid.FromBytes(v)
		}
		return uuid.ParseBytes(v)
	}
	return uuid.Nil, fmt.Errorf("cannot convert %T to uuid.UUID", raw)
}
