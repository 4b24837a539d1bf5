package bundle

import "strings"

// Environment variable names and the value that switches a flag off.
const (
	// GlobalFlag enables or disables the whole bundle.
	GlobalFlag = "SQLEAN_ENABLE"

	// Disabled is the only value treated as explicitly off.
	Disabled = "0"

	flagPrefix = GlobalFlag + "_"
)

// Connection is the host connection a module registers its functions on.
// *sqlite3.SQLiteConn satisfies it. The bundle never closes or retains it.
type Connection interface {
	RegisterFunc(name string, impl any, pure bool) error
	RegisterAggregator(name string, impl any, pure bool) error
}

// Initializer registers a module's functions on conn.
type Initializer func(conn Connection) error

// Module describes one capability module.
type Module struct {
	// Name is the lower-case module name, e.g. "crypto".
	Name string

	// EnvFlag is the per-module environment variable. Empty means
	// FlagFor(Name).
	EnvFlag string

	// Init registers the module's functions.
	Init Initializer
}

// NewModule returns a Module using the conventional flag for name.
func NewModule(name string, init Initializer) Module {
	return Module{Name: name, EnvFlag: FlagFor(name), Init: init}
}

// FlagFor returns the per-module environment variable for a module name:
// "crypto" becomes "SQLEAN_ENABLE_CRYPTO".
func FlagFor(name string) string {
	return flagPrefix + strings.ToUpper(name)
}

func (m Module) flag() string {
	if m.EnvFlag != "" {
		return m.EnvFlag
	}
	return FlagFor(m.Name)
}
