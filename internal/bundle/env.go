package bundle

import (
	"os"
	"slices"
	"strings"
)

// LookupFunc reads one environment variable, reporting whether it is set.
// os.LookupEnv is the production implementation.
type LookupFunc func(key string) (string, bool)

// OSEnv reads the live process environment.
var OSEnv LookupFunc = os.LookupEnv

// MapEnv returns a LookupFunc backed by a fixed map, for tests and dry runs.
func MapEnv(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

// Configured reports whether any sqlean activation variable is set in env.
func Configured(env LookupFunc) bool {
	if _, ok := env(GlobalFlag); ok {
		return true
	}
	for _, name := range knownNames() {
		if _, ok := env(FlagFor(name)); ok {
			return true
		}
	}
	return false
}

// EnableAll enables every module for connections opened afterwards.
func EnableAll() error {
	return os.Setenv(GlobalFlag, "1")
}

// DisableAll disables every module, including sqlean_version(), for
// connections opened afterwards.
func DisableAll() error {
	return os.Setenv(GlobalFlag, Disabled)
}

// Enable clears all sqlean variables and then enables the named modules.
// Unknown names are ignored.
func Enable(names ...string) error {
	return setFlags(names, "1")
}

// Disable clears all sqlean variables and then sets the named modules'
// flags to "0". Since per-module activation is opt-in, this leaves every
// module inactive; it exists to override values inherited from a parent
// process. Unknown names are ignored.
func Disable(names ...string) error {
	return setFlags(names, Disabled)
}

func setFlags(names []string, value string) error {
	if err := clearFlags(); err != nil {
		return err
	}
	known := knownNames()
	for _, name := range names {
		name = strings.ToLower(name)
		if !slices.Contains(known, name) {
			continue
		}
		if err := os.Setenv(FlagFor(name), value); err != nil {
			return err
		}
	}
	return nil
}

func clearFlags() error {
	if err := os.Unsetenv(GlobalFlag); err != nil {
		return err
	}
	for _, name := range knownNames() {
		if err := os.Unsetenv(FlagFor(name)); err != nil {
			return err
		}
	}
	return nil
}

// knownNames includes modules compiled out of this build so their flags can
// still be managed.
func knownNames() []string {
	return append(Names(), Excluded()...)
}
