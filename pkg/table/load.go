package table

import (
	"bytes"
	"embed"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/logging"
)

//go:embed builtin/*.toml builtin/*.yaml
var builtinFS embed.FS

// Format is the encoding of a table file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// Unmarshal decodes a table definition. Unknown keys are rejected so that
// a misspelled "pattern" does not silently produce an empty entry.
func Unmarshal(data []byte, format Format) (Definition, error) {
	var def Definition
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return Definition{}, errors.Wrap(err, errors.ErrTableLoad, "failed to parse TOML table")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return Definition{}, errors.Wrap(err, errors.ErrTableLoad, "failed to parse YAML table")
		}
	default:
		return Definition{}, errors.Newf(errors.ErrTableLoad, "unknown table format %q", format)
	}
	return def, nil
}

// LoadFile reads and compiles a table file.
func LoadFile(path string) (*Table, error) {
	log := logging.GetLogger("table.LoadFile")

	format, ok := FormatForPath(path)
	if !ok {
		return nil, errors.Newf(errors.ErrTableLoad, "cannot tell the format of %s (want .toml, .yaml or .yml)", path).
			WithDetail("path", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrTableNotFound, "table file %s not found", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrTableLoad, "failed to read %s", path).
			WithDetail("path", path)
	}

	def, err := Unmarshal(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTableLoad, "failed to load %s", path).
			WithDetail("path", path)
	}
	t, err := Compile(def)
	if err != nil {
		return nil, err
	}
	t.Source = path

	log.Debug().Str("path", path).Str("table", t.Name).Msg("Table loaded")
	return t, nil
}

// Builtin returns an embedded table by name.
func Builtin(name string) (*Table, error) {
	for _, ext := range []string{".toml", ".yaml"} {
		path := "builtin/" + name + ext
		data, err := builtinFS.ReadFile(path)
		if err != nil {
			continue
		}
		format, _ := FormatForPath(path)
		def, err := Unmarshal(data, format)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "builtin table %s is broken", name)
		}
		t, err := Compile(def)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "builtin table %s is broken", name)
		}
		t.Source = "builtin:" + name
		return t, nil
	}
	return nil, errors.Newf(errors.ErrTableNotFound, "no builtin table named %q", name).
		WithDetail("table", name)
}

// BuiltinNames lists the embedded tables.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}
