// Package config provides configuration management for vgdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode
//   - Import: base_url, user_agent, timeout_sec, max_http_errors,
//     use_cache, aliases_file
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use VGDB_ prefix with underscores for nesting:
//
//	VGDB_DATABASE_HOST=localhost
//	VGDB_DATABASE_PORT=5432
//	VGDB_IMPORT_USER_AGENT="vgdb/0.1 (you@example.org)"
//	VGDB_LOG_LEVEL=info
//	VGDB_JOBS_NUMBER=4
package config

// Config represents the complete vgdb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings for downloading and importing pages.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of pages imported concurrently.
	// Every entity upsert runs in its own transaction and recovers from
	// duplicate-key races, so any positive value is safe.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// ImportConfig contains settings for page download and import.
type ImportConfig struct {
	// BaseURL resolves relative links found in pages (links to platform
	// and company pages).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// UserAgent is sent with every HTTP request. Encyclopedia sites ask
	// for a descriptive agent with contact information.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`

	// TimeoutSec limits a single page download.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// MaxHTTPErrors stops the import after this many failed downloads.
	MaxHTTPErrors int `mapstructure:"max_http_errors" yaml:"max_http_errors"`

	// UseCache keeps downloaded pages in a local SQLite file and reuses
	// them on later runs.
	UseCache bool `mapstructure:"use_cache" yaml:"use_cache"`

	// AliasesFile is an optional YAML file with platform name aliases
	// that extends the built-in alias table.
	AliasesFile string `mapstructure:"aliases_file" yaml:"aliases_file"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "vgdb",
			SSLMode:  "disable",
		},
		Import: ImportConfig{
			BaseURL:       "https://en.wikipedia.org",
			UserAgent:     DefaultUserAgent,
			TimeoutSec:    30,
			MaxHTTPErrors: 20,
			UseCache:      true,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		// Pages are imported one at a time unless the user asks otherwise.
		JobsNumber: 1,
	}

	return res
}
