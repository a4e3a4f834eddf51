package config

import (
	_ "embed"

	"github.com/knadh/koanf/providers/rawbytes"
)

//go:embed embedded/defaults.toml
var defaultsTOML []byte

// DefaultsContent returns the embedded defaults file.
func DefaultsContent() string {
	return string(defaultsTOML)
}

// defaultsProvider feeds the embedded defaults to koanf.
func defaultsProvider() *rawbytes.RawBytes {
	return rawbytes.Provider(defaultsTOML)
}
