package iofetch

import (
	"fmt"
	"net/http"

	"github.com/gnames/gn"
	"github.com/vgarchive/vgdb/pkg/errcode"
)

// HTTPError is a response with a status outside of 2xx.
type HTTPError struct {
	URL    string
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: HTTP %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// FetchError creates an error for a download that did not get a response.
func FetchError(url string, err error) error {
	return &gn.Error{
		Code: errcode.FetchError,
		Msg:  "Cannot download <em>%s</em>",
		Vars: []any{url},
		Err:  fmt.Errorf("failed to download %s: %w", url, err),
	}
}

// StatusError wraps an HTTPError into a user-facing error.
func StatusError(he *HTTPError) error {
	return &gn.Error{
		Code: errcode.FetchStatusError,
		Msg:  "Server returned status <em>%d</em> for <em>%s</em>",
		Vars: []any{he.Status, he.URL},
		Err:  fmt.Errorf("unexpected status: %w", he),
	}
}
