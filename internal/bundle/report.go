package bundle

import (
	"errors"
	"fmt"
)

// Outcome is what happened to one module during activation.
type Outcome int

const (
	// OutcomeSkipped means the plan left the module inactive.
	OutcomeSkipped Outcome = iota

	// OutcomeActivated means the module registered its functions.
	OutcomeActivated

	// OutcomeFailed means the module's initializer returned an error.
	OutcomeFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeActivated:
		return "activated"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of activating one module.
type Result struct {
	Name    string
	Outcome Outcome
	Err     error
}

// Report collects the outcome of one Activate call.
type Report struct {
	Mode Mode

	// Introspection is the result of registering sqlean_version().
	Introspection Result

	// Modules follows registry order and includes skipped modules.
	Modules []Result
}

// Activated returns the names of the modules that registered successfully.
func (r Report) Activated() []string {
	var names []string
	for _, res := range r.Modules {
		if res.Outcome == OutcomeActivated {
			names = append(names, res.Name)
		}
	}
	return names
}

// Failed returns the results of the modules that failed, in order.
func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Modules {
		if res.Outcome == OutcomeFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err joins every failure, including sqlean_version() registration, or
// returns nil when nothing failed.
func (r Report) Err() error {
	var errs []error
	if r.Introspection.Outcome == OutcomeFailed {
		errs = append(errs, fmt.Errorf("%s: %w", r.Introspection.Name, r.Introspection.Err))
	}
	for _, res := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
	}
	return errors.Join(errs...)
}
