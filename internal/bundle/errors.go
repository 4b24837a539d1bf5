package bundle

import "errors"

// Domain errors for the bundle package.
//
// These errors can be checked using errors.Is() on a Result's Err:
//
//	if errors.Is(res.Err, bundle.ErrUnsupportedConnection) {
//	    // the connection cannot run statements
//	}
var (
	// ErrUnsupportedConnection is returned when a module needs connection
	// capabilities the handle does not provide.
	ErrUnsupportedConnection = errors.New("bundle: unsupported connection")

	// ErrNoInitializer is returned for a module descriptor without Init.
	ErrNoInitializer = errors.New("bundle: module has no initializer")

	// ErrModulePanic is returned when a module initializer panics.
	ErrModulePanic = errors.New("bundle: module panicked")
)
