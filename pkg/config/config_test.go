package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/match"
	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/testutil"
)

// isolate points the morsk directories at empty temp dirs and returns the
// config dir.
func isolate(t *testing.T) string {
	t.Helper()
	return testutil.NewTestEnvironment(t).ConfigDir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, nibble.W16, cfg.Match.Width)
	assert.Equal(t, match.Inclusive, cfg.Match.Policy)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.Empty(t, cfg.Tables.Paths)
	assert.Equal(t, "chip8", cfg.Tables.Default)
	assert.Equal(t, 0, cfg.Decode.Workers)
	assert.Empty(t, cfg.Source)
}

func TestDefault(t *testing.T) {
	t.Setenv("MORSK_MATCH_POLICY", "single")

	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, match.Inclusive, cfg.Match.Policy)
}

func TestLoadUserFile(t *testing.T) {
	t.Run("xdg_toml", func(t *testing.T) {
		dir := isolate(t)
		path := writeFile(t, filepath.Join(dir, "config.toml"), `
[match]
width = "u32"
policy = "^"

[tables]
paths = ["/opt/isa"]
`)

		cfg, err := Load(Options{})
		require.NoError(t, err)
		assert.Equal(t, path, cfg.Source)
		assert.Equal(t, nibble.W32, cfg.Match.Width)
		assert.Equal(t, match.Exclusive, cfg.Match.Policy)
		assert.Equal(t, []string{"/opt/isa"}, cfg.Tables.Paths)
		assert.Equal(t, "chip8", cfg.Tables.Default)
	})

	t.Run("explicit_yaml", func(t *testing.T) {
		isolate(t)
		path := writeFile(t, filepath.Join(t.TempDir(), "morsk.yaml"), `
match:
  width: 64
output:
  format: JSON
decode:
  workers: 4
`)

		cfg, err := Load(Options{File: path})
		require.NoError(t, err)
		assert.Equal(t, nibble.W64, cfg.Match.Width)
		assert.Equal(t, "json", cfg.Output.Format)
		assert.Equal(t, 4, cfg.Decode.Workers)
	})

	t.Run("explicit_missing", func(t *testing.T) {
		isolate(t)
		_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.toml")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("unsupported_extension", func(t *testing.T) {
		isolate(t)
		path := writeFile(t, filepath.Join(t.TempDir(), "config.ini"), "x=1")
		_, err := Load(Options{File: path})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("broken_toml", func(t *testing.T) {
		isolate(t)
		path := writeFile(t, filepath.Join(t.TempDir(), "config.toml"), "[match\nwidth=")
		_, err := Load(Options{File: path})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestLoadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("MORSK_MATCH_POLICY", "exclusive")
	t.Setenv("MORSK_MATCH_WIDTH", "8")
	t.Setenv("MORSK_TABLES_PATHS", "/a,/b")
	t.Setenv("MORSK_DECODE_WORKERS", "3")
	t.Setenv("MORSK_UNRELATED_THING", "ignored")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, match.Exclusive, cfg.Match.Policy)
	assert.Equal(t, nibble.W8, cfg.Match.Width)
	assert.Equal(t, []string{"/a", "/b"}, cfg.Tables.Paths)
	assert.Equal(t, 3, cfg.Decode.Workers)

	cfg, err = Load(Options{NoEnv: true})
	require.NoError(t, err)
	assert.Equal(t, match.Inclusive, cfg.Match.Policy)
}

func TestLoadOverridesWin(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[match]\npolicy = \"exclusive\"\n")
	t.Setenv("MORSK_MATCH_POLICY", "single")

	cfg, err := Load(Options{Overrides: map[string]interface{}{
		"match.policy":  "inclusive",
		"output.format": "yaml",
	}})
	require.NoError(t, err)
	assert.Equal(t, match.Inclusive, cfg.Match.Policy)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
	}{
		{"bad_policy", map[string]interface{}{"match.policy": "sometimes"}},
		{"bad_width", map[string]interface{}{"match.width": "u12"}},
		{"bad_format", map[string]interface{}{"output.format": "xml"}},
		{"bad_color", map[string]interface{}{"output.color": "rainbow"}},
		{"negative_workers", map[string]interface{}{"decode.workers": -2}},
		{"unknown_key", map[string]interface{}{"match.mode": "fast"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(Options{Overrides: tt.overrides})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid), "got %v", err)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "match.policy", envKey("MORSK_MATCH_POLICY"))
	assert.Equal(t, "tables.default", envKey("MORSK_TABLES_DEFAULT"))
	assert.Equal(t, "", envKey("MORSK_CONFIG_DIR"))
	assert.Equal(t, "", envKey("MORSK_TABLES_DIR"))
	assert.Equal(t, "", envKey("MORSK_SOMETHING_ELSE"))
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[match]")
	assert.Contains(t, content, `# width = "u16"`)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented value line: %q", line)
	}

	// The generated file must still parse, and contribute nothing.
	k := koanf.New(".")
	require.NoError(t, k.Load(rawbytes.Provider([]byte(content)), toml.Parser()))
	assert.False(t, k.Exists("match.width"))
	assert.False(t, k.Exists("output.format"))
}

func TestWriteUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "morsk", "config.toml")

	require.NoError(t, WriteUserFile(path, false))
	assert.FileExists(t, path)

	err := WriteUserFile(path, false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))

	assert.NoError(t, WriteUserFile(path, true))
}
