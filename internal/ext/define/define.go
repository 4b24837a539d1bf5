// Package define registers functions for defining new SQL functions at
// runtime and evaluating dynamic SQL.
//
// A function defined with define(name, body) evaluates "SELECT body" with
// its arguments bound to ?1, ?2, ... Definitions are stored in the
// sqlean_define table of the main database and registered again on every
// new connection.
//
// Function bodies run as nested statements on the calling connection.
package define

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn"
)

// Conn is a connection that can both register functions and run statements.
// *sqlite3.SQLiteConn satisfies it.
type Conn interface {
	sqlfn.Conn
	Exec(query string, args []driver.Value) (driver.Result, error)
	Query(query string, args []driver.Value) (driver.Rows, error)
}

var (
	// ErrInvalidName is returned for function names that are not plain identifiers.
	ErrInvalidName = errors.New("define: invalid function name")

	// ErrUndefined is returned when calling a function removed by undefine().
	ErrUndefined = errors.New("define: function is undefined")
)

const (
	createTable = `CREATE TABLE IF NOT EXISTS sqlean_define (
		name TEXT PRIMARY KEY COLLATE NOCASE,
		type TEXT NOT NULL,
		body TEXT NOT NULL
	)`
	selectScalars = `SELECT name, body FROM sqlean_define WHERE type = 'scalar'`
	upsertScalar  = `INSERT OR REPLACE INTO sqlean_define (name, type, body) VALUES (?, 'scalar', ?)`
	deleteDefined = `DELETE FROM sqlean_define WHERE name = ?`

	// defaultSeparator joins values returned by eval().
	defaultSeparator = " "
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// module tracks the functions defined on one connection.
type module struct {
	conn Conn

	mu         sync.Mutex
	bodies     map[string]string // live definitions by lower-cased name
	registered map[string]bool   // names already known to SQLite
}

// Init creates the definitions table if needed, registers the define
// functions and re-registers every stored definition.
func Init(conn Conn) error {
	m := &module{
		conn:       conn,
		bodies:     make(map[string]string),
		registered: make(map[string]bool),
	}

	if _, err := conn.Exec(createTable, nil); err != nil {
		return fmt.Errorf("creating sqlean_define: %w", err)
	}

	err := sqlfn.Register(conn,
		sqlfn.Volatile("define", m.define),
		sqlfn.Volatile("undefine", m.undefine),
		sqlfn.Volatile("eval", m.eval),
		sqlfn.Volatile("define_free", m.free),
	)
	if err != nil {
		return err
	}
	return m.load()
}

// load registers every stored scalar definition.
func (m *module) load() error {
	stored, err := m.definitions()
	if err != nil {
		return err
	}
	for name, body := range stored {
		if err := m.register(name, body); err != nil {
			return err
		}
	}
	return nil
}

func (m *module) definitions() (map[string]string, error) {
	rows, err := m.conn.Query(selectScalars, nil)
	if err != nil {
		return nil, fmt.Errorf("loading definitions: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cursor

	out := make(map[string]string)
	dest := make([]driver.Value, 2)
	for {
		if err := rows.Next(dest); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("loading definitions: %w", err)
		}
		out[sqlfn.Text(dest[0])] = sqlfn.Text(dest[1])
	}
}

// register makes name callable. SQLite refuses to replace a function while
// statements are running, so a redefinition only swaps the body.
func (m *module) register(name, body string) error {
	key := strings.ToLower(name)

	m.mu.Lock()
	m.bodies[key] = body
	known := m.registered[key]
	m.registered[key] = true
	m.mu.Unlock()

	if known {
		return nil
	}
	call := func(args ...any) (any, error) {
		return m.call(key, args)
	}
	if err := m.conn.RegisterFunc(name, call, false); err != nil {
		m.mu.Lock()
		delete(m.registered, key)
		delete(m.bodies, key)
		m.mu.Unlock()
		return fmt.Errorf("registering %s: %w", name, err)
	}
	return nil
}

func (m *module) call(key string, args []any) (any, error) {
	m.mu.Lock()
	body, ok := m.bodies[key]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUndefined, key)
	}

	params := make([]driver.Value, len(args))
	for i, a := range args {
		if !sqlfn.IsNull(a) {
			params[i] = a
		}
	}

	var result any
	err := m.each("SELECT "+body, params, func(v driver.Value) bool {
		result = v
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return result, nil
}

func (m *module) define(name, body string) (any, error) {
	if !identifier.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, err := m.conn.Exec(upsertScalar, []driver.Value{name, body}); err != nil {
		return nil, fmt.Errorf("storing %s: %w", name, err)
	}
	if err := m.register(name, body); err != nil {
		return nil, err
	}
	return nil, nil
}

func (m *module) undefine(name string) (any, error) {
	if _, err := m.conn.Exec(deleteDefined, []driver.Value{name}); err != nil {
		return nil, fmt.Errorf("removing %s: %w", name, err)
	}
	m.mu.Lock()
	delete(m.bodies, strings.ToLower(name))
	m.mu.Unlock()
	return nil, nil
}

// free drops cached bodies and reloads them from sqlean_define, picking up
// definitions made by other connections.
func (m *module) free() (any, error) {
	stored, err := m.definitions()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	clear(m.bodies)
	m.mu.Unlock()

	for name, body := range stored {
		if err := m.register(name, body); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// eval runs query and joins every non-NULL value of every row with sep.
func (m *module) eval(query string, sep ...string) (string, error) {
	separator := defaultSeparator
	if len(sep) > 0 {
		separator = sep[0]
	}

	var parts []string
	err := m.each(query, nil, func(v driver.Value) bool {
		if !sqlfn.IsNull(v) {
			parts = append(parts, sqlfn.Text(v))
		}
		return true
	})
	if err != nil {
		return "", fmt.Errorf("eval: %w", err)
	}
	return strings.Join(parts, separator), nil
}

// each runs query and calls fn with every value of every row until fn
// returns false.
func (m *module) each(query string, args []driver.Value, fn func(driver.Value) bool) error {
	rows, err := m.conn.Query(query, args)
	if err != nil {
		return err
	}
	defer rows.Close() //nolint:errcheck // Read-only cursor

	dest := make([]driver.Value, len(rows.Columns()))
	for {
		if err := rows.Next(dest); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		for _, v := range dest {
			if !fn(v) {
				return nil
			}
		}
	}
}
