// Package paths centralizes the locations morsk reads and writes.
//
// Directories follow the XDG Base Directory specification through
// github.com/adrg/xdg. Each can be overridden with a MORSK_* variable,
// which is mostly useful in tests and CI.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for morsk
	EnvConfigDir = "MORSK_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for morsk
	EnvStateDir = "MORSK_STATE_DIR"

	// EnvTablesDir overrides where user tables are looked up
	EnvTablesDir = "MORSK_TABLES_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name used under every XDG base
	AppDirName = "morsk"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "morsk.log"

	// TablesDirName holds user table files
	TablesDirName = "tables"
)

// ConfigDir returns the morsk configuration directory.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the default user configuration file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateDir returns the directory for logs and other state.
// XDG variables are read at call time since xdg caches them at start-up.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHome(dir)
	}
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFile returns the path of the log file.
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// TablesDir returns the directory searched for user tables.
func TablesDir() string {
	if dir := os.Getenv(EnvTablesDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(ConfigDir(), TablesDirName)
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	return expandHome(path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
