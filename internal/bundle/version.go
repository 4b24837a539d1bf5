package bundle

// Version is the sqlean bundle version reported by sqlean_version().
const Version = "0.27.1"

// VersionFunc is the SQL name of the introspection function.
const VersionFunc = "sqlean_version"

func version() string {
	return Version
}

// registerVersion registers sqlean_version() as a deterministic function.
func registerVersion(conn Connection) error {
	return conn.RegisterFunc(VersionFunc, version, true)
}
