package platforms

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/vgarchive/vgdb/pkg/errcode"
)

// AliasesError creates an error for an unreadable aliases file.
func AliasesError(path string, err error) error {
	msg := `Cannot read platform aliases from <em>%s</em>

The file must be a YAML map of alias to platform name, for example:
  PS2: PlayStation 2`

	return &gn.Error{
		Code: errcode.PlatformAliasesError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot load aliases %s: %w", path, err),
	}
}
