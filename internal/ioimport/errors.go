package ioimport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/vgarchive/vgdb/pkg/errcode"
)

// FallbackError creates an error for a generic record that cannot be
// stored. Without it referential constraints cannot be satisfied.
func FallbackError(kind string, err error) error {
	return &gn.Error{
		Code: errcode.ImportFallbackError,
		Msg:  "Cannot store generic <em>%s</em>",
		Vars: []any{kind},
		Err:  fmt.Errorf("failed to ensure generic %s: %w", kind, err),
	}
}

// TooManyHTTPErrorsError stops a run after repeated download failures.
func TooManyHTTPErrorsError(n int) error {
	return &gn.Error{
		Code: errcode.ImportTooManyHTTPErrors,
		Msg:  "Stopped after <em>%d</em> failed downloads",
		Vars: []any{n},
		Err:  fmt.Errorf("too many failed downloads: %d", n),
	}
}

// CancelledError creates an error for an interrupted run.
func CancelledError(err error) error {
	return &gn.Error{
		Code: errcode.ImportCancelledError,
		Msg:  "Import cancelled",
		Err:  fmt.Errorf("import cancelled: %w", err),
	}
}
