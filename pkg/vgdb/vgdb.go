// Package vgdb declares the top-level contracts of the vgdb importer:
// schema management and page import. Implementations live in internal/io*
// packages.
package vgdb

import (
	"context"
	"time"
)

var (
	// Version is set by build flags.
	Version = "v0.1.0"

	// Build is set by build flags.
	Build = "n/a"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// migrations. Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the database schema using GORM AutoMigrate and adds
	// foreign keys between games, releases, platforms, companies and
	// employees.
	Create(ctx context.Context) error

	// Migrate updates the database schema to the latest version.
	Migrate(ctx context.Context) error
}

// Importer reads encyclopedia pages about video games and merges their
// facts into the database. Repeated imports of the same pages do not
// create duplicate rows.
type Importer interface {
	// Import processes every URL and returns the summary of the run.
	// A run stops early on store connectivity failures, on context
	// cancellation, or after too many failed page downloads.
	Import(ctx context.Context, urls []string) (Summary, error)
}

// Summary describes the result of one import run.
type Summary struct {
	// RunID identifies the run in logs.
	RunID string

	// Pages is the number of URLs submitted.
	Pages int

	// Inserted is the number of games created by the run.
	Inserted int

	// Found is the number of games that were already in the database.
	Found int

	// Skipped is the number of pages without enough data to identify a game.
	Skipped int

	// FetchErrors is the number of pages that could not be downloaded.
	FetchErrors int

	// Fallbacks is the number of generic placeholder rows used.
	Fallbacks int

	// Duration is the wall time of the run.
	Duration time.Duration
}
