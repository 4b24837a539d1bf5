// Package bundle decides which sqlean capability modules are registered on
// a SQLite connection and registers them.
//
// This package manages:
//   - The ordered registry of capability modules (crypto, define, fileio,
//     fuzzy, ipaddr, regexp, stats, text, unicode, uuid, vsv)
//   - Resolving the activation plan from environment variables
//   - Activating the plan on one connection and reporting per-module outcomes
//   - The sqlean_version() introspection function
//
// # Configuration
//
// Activation is controlled by environment variables, read on every
// activation:
//
//	SQLEAN_ENABLE         unset: per-module mode
//	                      "0":   register nothing, not even sqlean_version()
//	                      other: register every module, ignore module flags
//	SQLEAN_ENABLE_<NAME>  per-module mode only; active unless unset or "0"
//
// Without any variable set only sqlean_version() is registered.
//
// # Failure Handling
//
// A module that fails to register is recorded in the Report and skipped;
// the remaining modules are still attempted. Activate never fails as a
// whole, so the host sees a successful load even when some modules are
// missing.
//
// # Platforms
//
// ipaddr is compiled out of windows builds (see registry_windows.go).
// The loader itself carries no build constraints.
//
// # Usage
//
//	loader := bundle.NewLoader(bundle.Registry(), bundle.OSEnv)
//	loader.SetLogger(log)
//	report := loader.Activate(conn)
//	if err := report.Err(); err != nil {
//	    log.Warn("some sqlean modules failed", "error", err)
//	}
package bundle
