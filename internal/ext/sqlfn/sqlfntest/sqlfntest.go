// Package sqlfntest opens real go-sqlite3 connections with a single module
// initialised, for use in module tests.
package sqlfntest

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/mattn/go-sqlite3"
)

var driverSeq atomic.Int64

// DB is an in-memory database bound to a test.
type DB struct {
	*sql.DB
	t testing.TB
}

// OpenWith returns an in-memory database whose connections run init on
// connect. The pool is limited to one connection so in-memory state is
// shared between statements.
func OpenWith(t testing.TB, init func(*sqlite3.SQLiteConn) error) *DB {
	t.Helper()
	return OpenDSN(t, ":memory:", init)
}

// OpenDSN is OpenWith for an arbitrary go-sqlite3 data source name.
func OpenDSN(t testing.TB, dsn string, init func(*sqlite3.SQLiteConn) error) *DB {
	t.Helper()

	name := fmt.Sprintf("sqlfntest_%d", driverSeq.Add(1))
	sql.Register(name, &sqlite3.SQLiteDriver{ConnectHook: init})

	sqlDB, err := sql.Open(name, dsn)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close() //nolint:errcheck // Test cleanup
	})
	return &DB{DB: sqlDB, t: t}
}

// String evaluates "SELECT expr" and returns the result as text.
func (db *DB) String(expr string, args ...any) string {
	db.t.Helper()

	var v string
	db.scan(expr, args, &v)
	return v
}

// Int evaluates "SELECT expr" and returns the result as an integer.
func (db *DB) Int(expr string, args ...any) int64 {
	db.t.Helper()

	var v int64
	db.scan(expr, args, &v)
	return v
}

// Float evaluates "SELECT expr" and returns the result as a real.
func (db *DB) Float(expr string, args ...any) float64 {
	db.t.Helper()

	var v float64
	db.scan(expr, args, &v)
	return v
}

// Blob evaluates "SELECT expr" and returns the result as bytes.
func (db *DB) Blob(expr string, args ...any) []byte {
	db.t.Helper()

	var v []byte
	db.scan(expr, args, &v)
	return v
}

// IsNull reports whether "SELECT expr" evaluates to NULL.
func (db *DB) IsNull(expr string, args ...any) bool {
	db.t.Helper()

	var v sql.NullString
	db.scan(expr, args, &v)
	return !v.Valid
}

// Fails reports whether evaluating "SELECT expr" returns an error.
func (db *DB) Fails(expr string, args ...any) bool {
	var v any
	return db.QueryRow("SELECT "+expr, args...).Scan(&v) != nil
}

// MustExec executes a statement and fails the test on error.
func (db *DB) MustExec(query string, args ...any) {
	db.t.Helper()

	if _, err := db.Exec(query, args...); err != nil {
		db.t.Fatalf("%s: %v", query, err)
	}
}

func (db *DB) scan(expr string, args []any, dest any) {
	db.t.Helper()

	if err := db.QueryRow("SELECT "+expr, args...).Scan(dest); err != nil {
		db.t.Fatalf("SELECT %s: %v", expr, err)
	}
}
