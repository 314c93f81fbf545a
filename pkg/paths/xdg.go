// Package paths provides XDG-compliant path resolution for joystick-reader.
//
// Resolution order:
// 1. JOYSTICK_HOME (portable root) → $JOYSTICK_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/joystick-reader
// 3. Platform defaults → ~/.config/joystick-reader, ~/.local/state/joystick-reader
package paths

import (
	"os"
	"path/filepath"
)

const appName = "joystick-reader"

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if home := os.Getenv("JOYSTICK_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if home := os.Getenv("JOYSTICK_HOME"); home != "" {
		return filepath.Join(home, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the configuration directory holding the global config.yml.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	if os.Getenv("JOYSTICK_HOME") != "" {
		return base
	}
	return filepath.Join(base, appName)
}

// StateDir returns the state directory. Used for logs.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	if os.Getenv("JOYSTICK_HOME") != "" {
		return base
	}
	return filepath.Join(base, appName)
}

// GlobalConfigFile returns the path of the global configuration file, or ""
// when no config directory can be resolved.
func GlobalConfigFile() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yml")
}
