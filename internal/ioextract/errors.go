package ioextract

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/vgarchive/vgdb/pkg/errcode"
)

// ParseError creates an error for markup or a URL that cannot be parsed.
func ParseError(src string, err error) error {
	return &gn.Error{
		Code: errcode.ExtractParseError,
		Msg:  "Cannot parse <em>%s</em>",
		Vars: []any{src},
		Err:  fmt.Errorf("failed to parse %s: %w", src, err),
	}
}

// NoTitleError creates an error for a page without a title. Such a page
// is skipped.
func NoTitleError(pageURL string) error {
	return &gn.Error{
		Code: errcode.ExtractNoTitleError,
		Msg:  "Page <em>%s</em> has no title, skipping",
		Vars: []any{pageURL},
		Err:  fmt.Errorf("no title found in %s", pageURL),
	}
}
