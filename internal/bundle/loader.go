package bundle

import "fmt"

// Logger defines the logging interface used by the Loader.
// *logging.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Loader activates capability modules on connections.
//
// A Loader holds no per-connection state; Activate may be called for
// different connections from different goroutines. SetLogger must be
// called before the first Activate.
type Loader struct {
	modules []Module
	env     LookupFunc
	logger  Logger
}

// NewLoader returns a Loader for modules that reads activation flags from
// env. A nil env reads the process environment.
func NewLoader(modules []Module, env LookupFunc) *Loader {
	if env == nil {
		env = OSEnv
	}
	return &Loader{
		modules: modules,
		env:     env,
		logger:  noopLogger{},
	}
}

// Default returns a Loader for the full registry and the process environment.
func Default() *Loader {
	return NewLoader(Registry(), OSEnv)
}

// SetLogger sets the logger for the loader. Without one the loader is silent.
func (l *Loader) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	l.logger = logger
}

// Plan resolves the activation plan against the current environment
// without touching any connection.
func (l *Loader) Plan() Plan {
	return Resolve(l.env, l.modules)
}

// Activate resolves the plan and registers sqlean_version() and the active
// modules on conn, in registry order.
//
// A failing module does not stop the remaining ones. Failures are recorded
// in the returned Report and never returned as an error.
func (l *Loader) Activate(conn Connection) Report {
	plan := l.Plan()
	report := Report{
		Mode:          plan.Mode,
		Introspection: Result{Name: VersionFunc, Outcome: OutcomeSkipped},
		Modules:       make([]Result, 0, len(plan.Decisions)),
	}

	if plan.Introspection {
		report.Introspection = l.run(VersionFunc, func() error {
			return registerVersion(conn)
		})
	}

	for _, d := range plan.Decisions {
		if !d.Active {
			report.Modules = append(report.Modules, Result{Name: d.Module.Name, Outcome: OutcomeSkipped})
			continue
		}
		m := d.Module
		report.Modules = append(report.Modules, l.run(m.Name, func() error {
			if m.Init == nil {
				return ErrNoInitializer
			}
			return m.Init(conn)
		}))
	}

	l.logger.Debug("sqlean activation complete",
		"mode", report.Mode.String(),
		"activated", report.Activated(),
		"failed", len(report.Failed()),
	)
	return report
}

// run calls fn, converting a panic into a failed Result.
func (l *Loader) run(name string, fn func() error) (res Result) {
	res = Result{Name: name, Outcome: OutcomeActivated}

	defer func() {
		if r := recover(); r != nil {
			res.Outcome = OutcomeFailed
			res.Err = fmt.Errorf("%w: %v", ErrModulePanic, r)
		}
		if res.Outcome == OutcomeFailed {
			l.logger.Warn("sqlean module failed to register", "module", name, "error", res.Err)
		} else {
			l.logger.Debug("sqlean module registered", "module", name)
		}
	}()

	if err := fn(); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
	}
	return res
}
