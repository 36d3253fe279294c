package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default cpm data directory name (relative to home).
	DefaultDataDir = ".cpm"
	// ConfigFile is the CLI config filename.
	ConfigFile = "config.yaml"
	// DatabaseFile is the filename of the backend SQLite database.
	DatabaseFile = "cpm.db"
)

// ConfigPath returns the CLI config path inside the data directory.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFile)
}

// DatabasePath returns the backend database path inside the data directory.
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, DatabaseFile)
}
