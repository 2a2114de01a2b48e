package ioimport

import (
	"strings"

	"github.com/vgarchive/vgdb/pkg/facts"
)

// importContext is the state shared by the steps of one page import.
type importContext struct {
	url string

	// links maps names found on the page to their articles.
	links map[string]string

	// platforms memoizes resolved platform ids by normalized name.
	platforms map[string]int64
}

func newImportContext(page facts.Page) *importContext {
	return &importContext{
		url:       page.URL,
		links:     page.Links(),
		platforms: make(map[string]int64),
	}
}

// link returns the article URL of a reference.
func (ic *importContext) link(ref facts.Ref) string {
	if ref.URL != "" {
		return ref.URL
	}
	return ic.links[strings.TrimSpace(ref.Name)]
}
