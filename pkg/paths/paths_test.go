package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDir(t *testing.T) {
	t.Run("env_override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfigDir, dir)
		t.Setenv(EnvTablesDir, "")
		assert.Equal(t, dir, ConfigDir())
		assert.Equal(t, filepath.Join(dir, "config.toml"), ConfigFile())
		assert.Equal(t, filepath.Join(dir, "tables"), TablesDir())
	})

	t.Run("xdg_config_home", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		assert.Equal(t, "/custom/config/morsk/config.toml", filepath.ToSlash(ConfigFile()))
	})
}

func TestStateDir(t *testing.T) {
	t.Run("env_override", func(t *testing.T) {
		t.Setenv(EnvStateDir, "/custom/morsk-state")
		assert.Equal(t, "/custom/morsk-state", filepath.ToSlash(StateDir()))
		assert.Equal(t, "/custom/morsk-state/morsk.log", filepath.ToSlash(LogFile()))
	})

	t.Run("xdg_state_home", func(t *testing.T) {
		t.Setenv(EnvStateDir, "")
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		assert.Equal(t, "/custom/state/morsk/morsk.log", filepath.ToSlash(LogFile()))
	})
}

func TestTablesDirOverride(t *testing.T) {
	t.Setenv(EnvTablesDir, "/opt/tables")
	assert.Equal(t, "/opt/tables", filepath.ToSlash(TablesDir()))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "tables"), ExpandHome("~/tables"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}
