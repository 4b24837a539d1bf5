//go:build windows

package bundle

// ipaddr is not shipped in windows builds of the bundle, so its functions
// and its SQLEAN_ENABLE_IPADDR flag have no effect there.

func platformModules() []Module {
	return nil
}

func excludedModules() []string {
	return []string{"ipaddr"}
}
