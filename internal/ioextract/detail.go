package ioextract

import (
	"strings"

	"github.com/vgarchive/vgdb/pkg/facts"
	"golang.org/x/net/html"
)

// Company extracts facts from a company article.
func (e *Extractor) Company(pageURL string, body []byte) (facts.CompanyFacts, error) {
	var res facts.CompanyFacts
	doc, err := parse(pageURL, body)
	if err != nil {
		return res, err
	}
	res.Name = title(doc)
	if res.Name == "" {
		return res, NoTitleError(pageURL)
	}

	ib := readInfobox(doc)
	res.Founded = joined(ib.get("founded"), "; ")
	res.Founder = joined(ib.get("founder", "founders"), ", ")
	res.Defunct = joined(ib.get("defunct"), "; ")
	res.Headquarters = joined(ib.get("headquarters"), ", ")
	if c := ib.get("website"); c != nil {
		if res.Website = e.firstLink(c); res.Website == "" {
			res.Website = inline(c)
		}
	}
	return res, nil
}

// Platform extracts facts from a platform article.
func (e *Extractor) Platform(pageURL string, body []byte) (facts.PlatformFacts, error) {
	var res facts.PlatformFacts
	doc, err := parse(pageURL, body)
	if err != nil {
		return res, err
	}
	res.Name = title(doc)
	if res.Name == "" {
		return res, NoTitleError(pageURL)
	}

	ib := readInfobox(doc)
	if c := ib.get("developer", "developers"); c != nil {
		if refs := e.refs(c, false); len(refs) > 0 {
			res.Developer = refs[0]
		}
	}
	if c := ib.get("manufacturer", "manufacturers"); c != nil {
		for _, r := range e.refs(c, true) {
			res.Manufacturers = append(res.Manufacturers, r.Name)
		}
	}
	res.Type = joined(ib.get("type"), ", ")
	res.Generation = joined(ib.get("generation"), " ")
	res.ReleaseDate = joined(ib.get("release date", "release dates", "released"), "; ")
	res.IntroductoryPrice = joined(ib.get("introductory price"), "; ")
	res.Discontinued = joined(ib.get("discontinued"), "; ")
	return res, nil
}

func joined(cell *html.Node, sep string) string {
	if cell == nil {
		return ""
	}
	return strings.Join(lines(cell), sep)
}
