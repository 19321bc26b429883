// Package config provides configuration loading, validation, and defaults
// for balticwatch.
//
// Configuration is loaded from a YAML file, merged with defaults, and can be
// overridden by environment variables using the BALTICWATCH_SECTION_FIELD
// naming convention (e.g., BALTICWATCH_STORAGE_PATH).
package config
