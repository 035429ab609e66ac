package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "commitgate"

// Dir returns the global commitgate configuration directory.
//
// Resolution:
//   - $COMMITGATE_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/commitgate if set (any platform)
//   - %AppData%/commitgate on Windows
//   - ~/.config/commitgate elsewhere
func Dir() string {
	if dir := os.Getenv("COMMITGATE_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}
