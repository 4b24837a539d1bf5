package bundle

// Mode is the bundle-wide activation mode selected by GlobalFlag.
type Mode int

const (
	// ModePerModule activates each module according to its own flag.
	ModePerModule Mode = iota

	// ModeAll activates every module regardless of module flags.
	ModeAll

	// ModeDisabled registers nothing at all.
	ModeDisabled
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModePerModule:
		return "per-module"
	case ModeAll:
		return "all"
	case ModeDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Decision is the activation decision for one module.
type Decision struct {
	Module Module
	Active bool
}

// Plan is the resolved activation plan for one connection.
type Plan struct {
	Mode Mode

	// Introspection reports whether sqlean_version() is registered.
	Introspection bool

	// Decisions follows the order of the modules passed to Resolve.
	Decisions []Decision
}

// Active returns the names of the modules the plan activates, in order.
func (p Plan) Active() []string {
	var names []string
	for _, d := range p.Decisions {
		if d.Active {
			names = append(names, d.Module.Name)
		}
	}
	return names
}

// Resolve computes the activation plan for modules from env. It has no side
// effects; a nil env reads the process environment.
//
// Precedence, first match wins:
//  1. GlobalFlag == "0": nothing is registered.
//  2. GlobalFlag set to any other value, even "": everything is registered.
//  3. GlobalFlag unset: sqlean_version() plus each module whose own flag is
//     set to something other than "0".
func Resolve(env LookupFunc, modules []Module) Plan {
	if env == nil {
		env = OSEnv
	}

	plan := Plan{
		Mode:          ModePerModule,
		Introspection: true,
		Decisions:     make([]Decision, len(modules)),
	}
	if v, ok := env(GlobalFlag); ok {
		if v == Disabled {
			plan.Mode = ModeDisabled
			plan.Introspection = false
		} else {
			plan.Mode = ModeAll
		}
	}

	for i, m := range modules {
		active := false
		switch plan.Mode {
		case ModeAll:
			active = true
		case ModePerModule:
			v, ok := env(m.flag())
			active = ok && v != Disabled
		}
		plan.Decisions[i] = Decision{Module: m, Active: active}
	}
	return plan
}
