package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/vgarchive/vgdb/pkg/errcode"
)

// QueryError creates an error for a failed lookup of an entity.
func QueryError(kind, field string, err error) error {
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  "Cannot look up <em>%s</em> by %s",
		Vars: []any{kind, field},
		Err:  fmt.Errorf("failed to query %s by %s: %w", kind, field, err),
	}
}

// InsertError creates an error for a failed insert of an entity.
func InsertError(kind string, err error) error {
	return &gn.Error{
		Code: errcode.StoreInsertError,
		Msg:  "Cannot insert <em>%s</em>",
		Vars: []any{kind},
		Err:  fmt.Errorf("failed to insert %s: %w", kind, err),
	}
}

// RequiredFieldError creates an error for an entity that misses a
// value of a NOT NULL column. Only this entity is abandoned.
func RequiredFieldError(kind, column string, err error) error {
	return &gn.Error{
		Code: errcode.StoreRequiredFieldError,
		Msg:  "Skipping <em>%s</em>: required field <em>%s</em> is empty",
		Vars: []any{kind, column},
		Err:  fmt.Errorf("%s requires %s: %w", kind, column, err),
	}
}

// TransactionError creates an error for a failed begin or commit.
func TransactionError(kind string, err error) error {
	return &gn.Error{
		Code: errcode.StoreTransactionError,
		Msg:  "Database transaction failed for <em>%s</em>",
		Vars: []any{kind},
		Err:  fmt.Errorf("transaction for %s failed: %w", kind, err),
	}
}

// UpdateError creates an error for a failed update of a stored row.
func UpdateError(kind string, id int64, err error) error {
	return &gn.Error{
		Code: errcode.StoreUpdateError,
		Msg:  "Cannot update <em>%s</em> %d",
		Vars: []any{kind, id},
		Err:  fmt.Errorf("failed to update %s %d: %w", kind, id, err),
	}
}
