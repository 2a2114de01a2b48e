package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaForeignKeyError

	// Store errors
	StoreQueryError
	StoreInsertError
	StoreRequiredFieldError
	StoreTransactionError
	StoreUpdateError

	// Fetch errors
	FetchError
	FetchStatusError
	CacheOpenError
	CacheQueryError
	CacheLockedError

	// Extraction errors
	ExtractParseError
	ExtractNoTitleError

	// Import errors
	ImportURLListError
	ImportFallbackError
	ImportTooManyHTTPErrors
	ImportCancelledError
	PlatformAliasesError
)
