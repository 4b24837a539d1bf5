package bundle

import (
	"fmt"

	"github.com/nerrad567/sqlean-go/internal/ext/crypto"
	"github.com/nerrad567/sqlean-go/internal/ext/define"
	"github.com/nerrad567/sqlean-go/internal/ext/fileio"
	"github.com/nerrad567/sqlean-go/internal/ext/fuzzy"
	"github.com/nerrad567/sqlean-go/internal/ext/regex"
	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn"
	"github.com/nerrad567/sqlean-go/internal/ext/stats"
	"github.com/nerrad567/sqlean-go/internal/ext/text"
	"github.com/nerrad567/sqlean-go/internal/ext/unicode"
	"github.com/nerrad567/sqlean-go/internal/ext/uuid"
	"github.com/nerrad567/sqlean-go/internal/ext/vsv"
)

// Registry returns the capability modules available in this build, in
// activation order. Platform exclusions are already applied.
func Registry() []Module {
	modules := []Module{
		NewModule("crypto", adapt(crypto.Init)),
		NewModule("define", initDefine),
		NewModule("fileio", adapt(fileio.Init)),
		NewModule("fuzzy", adapt(fuzzy.Init)),
	}
	modules = append(modules, platformModules()...)
	return append(modules,
		NewModule("regexp", adapt(regex.Init)),
		NewModule("stats", adapt(stats.Init)),
		NewModule("text", adapt(text.Init)),
		NewModule("unicode", adapt(unicode.Init)),
		NewModule("uuid", adapt(uuid.Init)),
		NewModule("vsv", adapt(vsv.Init)),
	)
}

// Excluded returns the names of modules compiled out of this build.
func Excluded() []string {
	return excludedModules()
}

// Names returns the registry's module names in activation order.
func Names() []string {
	modules := Registry()
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name
	}
	return names
}

func adapt(init func(sqlfn.Conn) error) Initializer {
	return func(conn Connection) error {
		return init(conn)
	}
}

// initDefine needs a connection that can also run statements.
func initDefine(conn Connection) error {
	dc, ok := conn.(define.Conn)
	if !ok {
		return fmt.Errorf("%w: define needs Exec and Query", ErrUnsupportedConnection)
	}
	return define.Init(dc)
}
