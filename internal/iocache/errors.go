package iocache

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/vgarchive/vgdb/pkg/errcode"
)

// OpenError creates an error for a cache file that cannot be opened.
func OpenError(path string, err error) error {
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  "Cannot open page cache <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open page cache %s: %w", path, err),
	}
}

// QueryError creates an error for a failed cache read or write.
func QueryError(key string, err error) error {
	return &gn.Error{
		Code: errcode.CacheQueryError,
		Msg:  "Page cache failed for <em>%s</em>",
		Vars: []any{key},
		Err:  fmt.Errorf("page cache query for %s: %w", key, err),
	}
}

// LockedError is returned when another process uses the cache file.
func LockedError(path string) error {
	return &gn.Error{
		Code: errcode.CacheLockedError,
		Msg:  "Page cache <em>%s</em> is used by another vgdb process",
		Vars: []any{path},
		Err:  fmt.Errorf("page cache %s is locked", path),
	}
}
