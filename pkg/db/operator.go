package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vgarchive/vgdb/pkg/config"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the pgxpool.Pool
// for the components that run their own SQL (SchemaManager, the store).
// Schema creation and migration are handled by GORM AutoMigrate via
// SchemaManager.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. It is nil before Connect.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public schema.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	// Used during schema creation when overwriting existing data.
	DropAllTables(ctx context.Context) error
}
