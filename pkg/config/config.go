package config

import (
	"strings"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/match"
	"github.com/arthur-debert/morsk/pkg/nibble"
)

// Config is the effective configuration.
type Config struct {
	Match  MatchConfig  `koanf:"match" json:"match" yaml:"match" toml:"match"`
	Output OutputConfig `koanf:"output" json:"output" yaml:"output" toml:"output"`
	Tables TablesConfig `koanf:"tables" json:"tables" yaml:"tables" toml:"tables"`
	Decode DecodeConfig `koanf:"decode" json:"decode" yaml:"decode" toml:"decode"`

	// Source is the user file that was loaded, empty when none was found.
	Source string `koanf:"-" json:"-" yaml:"-" toml:"-"`
}

// MatchConfig holds defaults for matching words against patterns.
type MatchConfig struct {
	Width  nibble.Width `koanf:"width" json:"width" yaml:"width" toml:"width"`
	Policy match.Policy `koanf:"policy" json:"policy" yaml:"policy" toml:"policy"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format string `koanf:"format" json:"format" yaml:"format" toml:"format"`
	Color  string `koanf:"color" json:"color" yaml:"color" toml:"color"`
}

// TablesConfig controls where decoding tables are found.
type TablesConfig struct {
	Paths   []string `koanf:"paths" json:"paths" yaml:"paths" toml:"paths"`
	Default string   `koanf:"default" json:"default" yaml:"default" toml:"default"`
}

// DecodeConfig tunes batch decoding.
type DecodeConfig struct {
	Workers int `koanf:"workers" json:"workers" yaml:"workers" toml:"workers"`
}

// Output formats
var Formats = []string{"text", "json", "yaml", "toml"}

// Color modes
var ColorModes = []string{"auto", "always", "never"}

// Validate checks values mapstructure cannot check on its own.
func (c *Config) Validate() error {
	if !c.Match.Width.Valid() {
		return invalid("match.width", c.Match.Width.String())
	}
	if !c.Match.Policy.Valid() {
		return invalid("match.policy", c.Match.Policy.String())
	}
	if !oneOf(c.Output.Format, Formats) {
		return invalid("output.format", c.Output.Format)
	}
	if !oneOf(c.Output.Color, ColorModes) {
		return invalid("output.color", c.Output.Color)
	}
	if c.Decode.Workers < 0 {
		return errors.Newf(errors.ErrConfigInvalid, "decode.workers must not be negative, got %d", c.Decode.Workers).
			WithDetail("key", "decode.workers")
	}
	return nil
}

func invalid(key, value string) error {
	return errors.Newf(errors.ErrConfigInvalid, "invalid value %q for %s", value, key).
		WithDetail("key", key).
		WithDetail("value", value)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
