package config

import (
	"net/url"
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptImportBaseURL sets the URL used to resolve relative page links.
// Only absolute http(s) URLs are accepted.
func OptImportBaseURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidURL("Import Base URL", s) {
			c.Import.BaseURL = s
		}
	}
}

// OptImportUserAgent sets the User-Agent header of page downloads.
func OptImportUserAgent(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Import User Agent", s) {
			c.Import.UserAgent = s
		}
	}
}

// OptImportTimeoutSec sets the timeout of a single page download.
func OptImportTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Import Timeout", i) {
			c.Import.TimeoutSec = i
		}
	}
}

// OptImportMaxHTTPErrors sets how many failed downloads stop the import.
func OptImportMaxHTTPErrors(i int) Option {
	return func(c *Config) {
		if isValidInt("Import Max HTTP Errors", i) {
			c.Import.MaxHTTPErrors = i
		}
	}
}

// OptImportUseCache enables or disables the local page cache.
func OptImportUseCache(b bool) Option {
	return func(c *Config) {
		c.Import.UseCache = b
	}
}

// OptImportAliasesFile sets the path to a YAML file with extra platform
// aliases.
func OptImportAliasesFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Import Aliases File", s) {
			c.Import.AliasesFile = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of pages imported concurrently.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	res := err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
	if !res {
		gn.Warn("<em>%s</em> must be an absolute http(s) URL, ignoring '%s'",
			name, s)
	}
	return res
}
