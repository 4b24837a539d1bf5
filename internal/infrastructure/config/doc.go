// Package config handles loading and validating sqlean CLI configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// The extensions section is a fallback for the SQLEAN_ENABLE* environment
// variables, which the driver reads on every connection. It is applied
// only when none of those variables is set.
//
// Usage:
//
//	cfg, err := config.LoadOrDefault("sqlean.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Path)
package config
