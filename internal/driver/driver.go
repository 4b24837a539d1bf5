// Package driver registers the "sqlean" database/sql driver: go-sqlite3 with
// the sqlean bundle activated on every new connection.
//
// It is the only package that knows about go-sqlite3's connect hook. The
// activation policy lives in package bundle.
//
// Usage:
//
//	import _ "github.com/nerrad567/sqlean-go/internal/driver"
//
//	os.Setenv("SQLEAN_ENABLE_REGEXP", "1")
//	db, err := sql.Open("sqlean", "file:app.db")
package driver

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/nerrad567/sqlean-go/internal/bundle"
)

// Name is the database/sql driver name registered by this package.
const Name = "sqlean"

// ErrNoConnection is returned by the connect hook when go-sqlite3 hands it
// no connection. It is the only error the hook returns and aborts the open.
var ErrNoConnection = errors.New("driver: no sqlite connection")

// defaultLoader serves the registered driver. It reads the process
// environment on every connection.
var defaultLoader = bundle.Default()

func init() {
	sql.Register(Name, New(defaultLoader))
}

// New returns a go-sqlite3 driver that activates loader's modules on every
// connection it opens.
func New(loader *bundle.Loader) *sqlite3.SQLiteDriver {
	return &sqlite3.SQLiteDriver{ConnectHook: Hook(loader)}
}

// Hook returns a go-sqlite3 connect hook for loader. Module failures are
// left to the loader's logger; the hook reports success regardless.
func Hook(loader *bundle.Loader) func(*sqlite3.SQLiteConn) error {
	return func(conn *sqlite3.SQLiteConn) error {
		if conn == nil {
			return ErrNoConnection
		}
		loader.Activate(conn)
		return nil
	}
}

// SetLogger sets the logger of the registered "sqlean" driver. Call it
// before opening connections.
func SetLogger(logger bundle.Logger) {
	defaultLoader.SetLogger(logger)
}

// Plan resolves the activation plan the registered driver would apply to a
// connection opened now.
func Plan() bundle.Plan {
	return defaultLoader.Plan()
}
