package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "vgdb"

	// DefaultUserAgent identifies vgdb to remote servers.
	DefaultUserAgent = "vgdb (https://github.com/vgarchive/vgdb)"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/vgdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/vgdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/vgdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/vgdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// PageCachePath returns the path of the SQLite file with downloaded pages.
// Returns ~/.cache/vgdb/pages.sqlite by default.
func PageCachePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "pages.sqlite")
}
