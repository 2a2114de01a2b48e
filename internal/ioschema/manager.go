// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/vgarchive/vgdb/pkg/db"
	"github.com/vgarchive/vgdb/pkg/schema"
	"github.com/vgarchive/vgdb/pkg/vgdb"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the vgdb.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) vgdb.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema using
// GORM AutoMigrate and adds foreign keys between tables.
func (m *manager) Create(ctx context.Context) error {
	gormDB, err := m.gormDB(ctx)
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	return m.addForeignKeys(ctx)
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate. Missing foreign keys are added,
// existing ones are kept.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB, err := m.gormDB(ctx)
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	return m.addForeignKeys(ctx)
}

func (m *manager) gormDB(ctx context.Context) (*gorm.DB, error) {
	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	db := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB.WithContext(ctx), nil
}

// addForeignKeys creates a constraint for every reference between
// vgdb tables. A constraint that already exists is left alone.
func (m *manager) addForeignKeys(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	for _, fk := range schema.ForeignKeys() {
		if _, err := pool.Exec(ctx, foreignKeySQL(fk)); err != nil {
			return ForeignKeyError(fk.Table, fk.Column, err)
		}
		slog.Debug("Ensured foreign key", "name", fk.Name())
	}

	return nil
}
