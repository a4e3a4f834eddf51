// Package config loads morsk's configuration.
//
// Sources are layered with koanf, each overriding the previous one:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, TOML or YAML picked by extension
//  3. MORSK_* environment variables
//  4. explicit overrides, usually from command line flags
//
// The merged tree is decoded into Config through mapstructure.
package config
