package ioschema

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/vgarchive/vgdb/pkg/errcode"
)

// NotConnectedError creates an error for a schema operation attempted
// before the operator connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Schema operation attempted without database connection",
		Err:  errors.New("not connected to database"),
	}
}

// GORMConnectionError creates an error for a GORM session that cannot
// be opened over the connection pool.
func GORMConnectionError(err error) error {
	msg := `Cannot open GORM session on the vgdb connection pool

<em>How to fix:</em>
  Check the database section of ~/.config/vgdb/config.yaml`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for a failed AutoMigrate during
// create.
func CreateSchemaError(err error) error {
	msg := `Cannot create vgdb tables

<em>Possible causes:</em>
  - The user has no CREATE permission
  - A table with the same name has a different layout

<em>How to fix:</em>
  Run <em>vgdb create --force</em> to drop old tables first`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for a failed AutoMigrate during
// migrate.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate vgdb tables

<em>How to fix:</em>
  Back up the data and check PostgreSQL logs for the failing statement`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// ForeignKeyError creates an error for a foreign key
// that could not be added.
func ForeignKeyError(table, column string, err error) error {
	msg := `Cannot add foreign key on <em>%s.%s</em>

<em>Possible causes:</em>
  - Existing rows reference missing records
  - Insufficient database permissions

<em>How to fix:</em>
  1. Recreate the database with <em>vgdb create --force</em>
  2. Check database user has ALTER permissions`

	return &gn.Error{
		Code: errcode.SchemaForeignKeyError,
		Msg:  msg,
		Vars: []any{table, column},
		Err: fmt.Errorf(
			"failed to add foreign key on %s.%s: %w",
			table, column, err),
	}
}
