package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/morsk/pkg/paths"
)

// SettingKeys are the environment variables the configuration loader reads.
var SettingKeys = []string{
	"MORSK_MATCH_WIDTH",
	"MORSK_MATCH_POLICY",
	"MORSK_OUTPUT_FORMAT",
	"MORSK_OUTPUT_COLOR",
	"MORSK_TABLES_PATHS",
	"MORSK_TABLES_DEFAULT",
	"MORSK_DECODE_WORKERS",
}

// TestEnvironment is an isolated set of morsk directories.
type TestEnvironment struct {
	Root      string
	ConfigDir string
	StateDir  string
	TablesDir string

	t *testing.T
}

// NewTestEnvironment creates the directories under a temp dir, points the
// MORSK_*_DIR variables at them and unsets every setting variable. The
// environment is restored when the test ends.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		Root:      root,
		ConfigDir: filepath.Join(root, "config"),
		StateDir:  filepath.Join(root, "state"),
		TablesDir: filepath.Join(root, "tables"),
		t:         t,
	}
	for _, dir := range []string{env.ConfigDir, env.StateDir, env.TablesDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvStateDir, env.StateDir)
	t.Setenv(paths.EnvTablesDir, env.TablesDir)
	t.Setenv("NO_COLOR", "1")
	for _, key := range SettingKeys {
		// Setenv first so the original value is restored on cleanup
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	return env
}

// ConfigFile returns the path of the user config file.
func (env *TestEnvironment) ConfigFile() string {
	return filepath.Join(env.ConfigDir, paths.ConfigFileName)
}

// WriteConfig writes content as the user config file.
func (env *TestEnvironment) WriteConfig(content string) string {
	env.t.Helper()
	return WriteFile(env.t, env.ConfigDir, paths.ConfigFileName, content)
}

// WriteTable writes a table file into the user tables directory.
func (env *TestEnvironment) WriteTable(name, content string) string {
	env.t.Helper()
	return WriteFile(env.t, env.TablesDir, name, content)
}
