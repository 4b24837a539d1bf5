//go:build !windows

package bundle

import "github.com/nerrad567/sqlean-go/internal/ext/ipaddr"

func platformModules() []Module {
	return []Module{NewModule("ipaddr", adapt(ipaddr.Init))}
}

func excludedModules() []string {
	return nil
}
