// Package config loads wren.yaml.
//
// Values are layered: built-in defaults, then the YAML file, then WREN_*
// environment variables. Nested keys use underscores, e.g.
// WREN_LOAD_WORKERS=4. The CLI calls LoadDotEnv once at startup so a .env
// file can supply those variables.
package config
