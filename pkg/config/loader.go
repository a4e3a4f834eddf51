package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/logging"
	"github.com/arthur-debert/morsk/pkg/match"
	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/paths"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "MORSK_"

// envSkip lists MORSK_* variables that are not configuration keys.
var envSkip = map[string]bool{
	paths.EnvConfigDir: true,
	paths.EnvStateDir:  true,
	paths.EnvTablesDir: true,
}

var envSections = map[string]bool{
	"match":  true,
	"output": true,
	"tables": true,
	"decode": true,
}

// Options selects the sources Load reads.
type Options struct {
	// File is an explicit user file. When empty the XDG config file is
	// used if it exists. An explicit file that does not exist is an error.
	File string
	// NoEnv skips MORSK_* environment variables.
	NoEnv bool
	// Overrides are applied last, keyed by dotted path ("match.policy").
	Overrides map[string]interface{}
}

// Load builds the effective configuration from every layer.
func Load(opts Options) (*Config, error) {
	k, source, err := LoadKoanf(opts)
	if err != nil {
		return nil, err
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults alone.
func Default() (*Config, error) {
	return Load(Options{File: "-", NoEnv: true})
}

// LoadKoanf merges the layers into a koanf instance without decoding it.
// The second result is the user file that was loaded, if any. A File of
// "-" skips the user file.
func LoadKoanf(opts Options) (*koanf.Koanf, string, error) {
	log := logging.GetLogger("config.Load")
	k := koanf.New(".")

	// 1. Load embedded defaults
	if err := k.Load(defaultsProvider(), toml.Parser()); err != nil {
		return nil, "", errors.Wrap(err, errors.ErrInternal, "failed to load embedded defaults")
	}

	// 2. Load the user file
	source, err := userFile(opts.File)
	if err != nil {
		return nil, "", err
	}
	if source != "" {
		parser, err := parserFor(source)
		if err != nil {
			return nil, "", err
		}
		if err := k.Load(file.Provider(source), parser); err != nil {
			return nil, "", errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", source).
				WithDetail("path", source)
		}
		log.Debug().Str("path", source).Msg("Loaded user config")
	}

	// 3. Load environment
	if !opts.NoEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, "", errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
		}
	}

	// 4. Load overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, "", errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	log.Trace().Interface("config", k.All()).Msg("Configuration merged")
	return k, source, nil
}

// envKey maps MORSK_MATCH_POLICY to match.policy. Only the first
// underscore after the prefix separates section from key. Variables
// outside the known sections are ignored.
func envKey(s string) string {
	if envSkip[s] {
		return ""
	}
	key := strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	section, _, _ := strings.Cut(key, ".")
	if !envSections[section] {
		return ""
	}
	return key
}

func userFile(explicit string) (string, error) {
	switch explicit {
	case "-":
		return "", nil
	case "":
		path := paths.ConfigFile()
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		return "", nil
	}

	path := paths.ExpandHome(explicit)
	if _, err := os.Stat(path); err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path).
			WithDetail("path", path)
	}
	return path, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config file %s (want .toml, .yaml or .yml)", path).
			WithDetail("path", path)
	}
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				widthHookFunc(),
				policyHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to decode configuration")
	}

	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	cfg.Output.Color = strings.ToLower(cfg.Output.Color)
	return &cfg, nil
}

// widthHookFunc accepts "u16", "16" and bare integers for nibble.Width.
func widthHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(nibble.Width(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return nibble.ParseWidth(v)
		case int:
			return nibble.ParseWidth(strconv.Itoa(v))
		case int64:
			return nibble.ParseWidth(strconv.FormatInt(v, 10))
		default:
			return data, nil
		}
	}
}

// policyHookFunc decodes policy names and operators into match.Policy.
func policyHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(match.Policy(0)) || f.Kind() != reflect.String {
			return data, nil
		}
		return match.ParsePolicy(data.(string))
	}
}
