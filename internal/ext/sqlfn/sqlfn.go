package sqlfn

import (
	"fmt"
	"strconv"
)

// Conn is the part of a SQLite connection a module registers functions on.
// *sqlite3.SQLiteConn satisfies it.
type Conn interface {
	RegisterFunc(name string, impl any, pure bool) error
	RegisterAggregator(name string, impl any, pure bool) error
}

// Func describes one SQL function.
type Func struct {
	// Name is the SQL-visible function name.
	Name string

	// Impl is a Go function (scalar) or a constructor returning a value
	// with Step and Done methods (aggregate).
	Impl any

	// Pure marks the function deterministic so SQLite may use it in
	// indexes and constant-fold it.
	Pure bool

	// Aggregate selects RegisterAggregator instead of RegisterFunc.
	Aggregate bool
}

// Scalar returns a deterministic scalar function.
func Scalar(name string, impl any) Func {
	return Func{Name: name, Impl: impl, Pure: true}
}

// Volatile returns a scalar function whose result may change between calls
// with the same arguments (random values, filesystem reads).
func Volatile(name string, impl any) Func {
	return Func{Name: name, Impl: impl}
}

// Aggregate returns a deterministic aggregate function.
func Aggregate(name string, ctor any) Func {
	return Func{Name: name, Impl: ctor, Pure: true, Aggregate: true}
}

// Register registers fns on conn in order. It returns the first error,
// leaving already registered functions in place.
func Register(conn Conn, fns ...Func) error {
	for _, fn := range fns {
		var err error
		if fn.Aggregate {
			err = conn.RegisterAggregator(fn.Name, fn.Impl, fn.Pure)
		} else {
			err = conn.RegisterFunc(fn.Name, fn.Impl, fn.Pure)
		}
		if err != nil {
			return fmt.Errorf("registering %s: %w", fn.Name, err)
		}
	}
	return nil
}

// IsNull reports whether a generic argument is SQL NULL. go-sqlite3 passes
// NULL to interface parameters as a nil []byte.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	b, ok := v.([]byte)
	return ok && b == nil
}

// Bytes converts a generic SQLite argument into its byte representation.
// NULL becomes nil. Numbers use SQLite's text rendering.
func Bytes(v any) []byte {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return x
	case string:
		return []byte(x)
	case int64:
		return strconv.AppendInt(nil, x, 10)
	case float64:
		return strconv.AppendFloat(nil, x, 'g', -1, 64)
	case bool:
		if x {
			return []byte("1")
		}
		return []byte("0")
	default:
		return []byte(fmt.Sprint(x))
	}
}

// Text is Bytes rendered as a string.
func Text(v any) string {
	return string(Bytes(v))
}
