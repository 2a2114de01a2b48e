package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/vgarchive/vgdb/pkg/errcode"
)

// ConnectionError creates an error for failed PostgreSQL connection.
func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	msg := `Cannot connect to PostgreSQL at <em>%s:%d</em>

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database <em>%s</em> does not exist
  - Wrong credentials for user <em>%s</em>

<em>How to fix:</em>
  1. Check the server: pg_isready -h %s
  2. Review the database section of ~/.config/vgdb/config.yaml
  3. Or set VGDB_DATABASE_* environment variables`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{host, port, database, user, host},
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// TableCheckError creates an error for failed check of database tables.
func TableCheckError(err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Cannot verify database state",
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// EmptyDatabaseError creates an error for a database without vgdb tables.
func EmptyDatabaseError(host, database string) error {
	msg := `No vgdb tables found at <em>%s</em> in database <em>%s</em>

<em>How to fix:</em>
  Run <em>vgdb create</em> before importing pages`

	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: []any{host, database},
		Err:  fmt.Errorf("database %s has no tables", database),
	}
}

// NotConnectedError creates an error for an operation attempted
// before Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database operation attempted without connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableExistsCheckError creates an error for failed existence check
// of a table.
func TableExistsCheckError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  "Cannot check if table <em>%s</em> exists",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// QueryTablesError creates an error for failed listing of tables.
func QueryTablesError(err error) error {
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  "Cannot list database tables",
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

// ScanTableError creates an error for failed reading of a table name.
func ScanTableError(err error) error {
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  "Cannot read database table names",
		Err:  fmt.Errorf("failed to scan table name: %w", err),
	}
}

// DropTableError creates an error for failed removal of a table.
func DropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Cannot drop table <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
