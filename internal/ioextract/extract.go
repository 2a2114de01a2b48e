// Package ioextract reads game, company and platform facts from
// encyclopedia articles.
package ioextract

import (
	"bytes"
	"database/sql"
	"net/url"
	"strings"

	"github.com/vgarchive/vgdb/pkg/facts"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// creditRoles maps infobox labels to employee roles.
var creditRoles = map[string]string{
	"director":    "Director",
	"directors":   "Director",
	"producer":    "Producer",
	"producers":   "Producer",
	"designer":    "Designer",
	"designers":   "Designer",
	"programmer":  "Programmer",
	"programmers": "Programmer",
	"artist":      "Artist",
	"artists":     "Artist",
	"writer":      "Writer",
	"writers":     "Writer",
	"composer":    "Composer",
	"composers":   "Composer",
}

// Extractor parses articles. Relative links are resolved against the
// base URL.
type Extractor struct {
	linker
}

// New creates an Extractor for articles hosted at baseURL.
func New(baseURL string) (*Extractor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, ParseError(baseURL, err)
	}
	return &Extractor{linker: linker{base: u}}, nil
}

// infobox is the label to data cell map of an article infobox.
type infobox struct {
	labels []string
	cells  map[string]*html.Node
}

func (ib infobox) get(labels ...string) *html.Node {
	for _, l := range labels {
		if c, ok := ib.cells[l]; ok {
			return c
		}
	}
	return nil
}

func labelKey(s string) string {
	return strings.ToLower(facts.Clean(s))
}

func readInfobox(doc *html.Node) infobox {
	res := infobox{cells: make(map[string]*html.Node)}
	tbl := find(doc, func(n *html.Node) bool {
		return isElem(n, atom.Table) && hasClass(n, "infobox")
	})
	if tbl == nil {
		return res
	}
	rows := findAll(tbl, func(n *html.Node) bool { return isElem(n, atom.Tr) })
	for _, tr := range rows {
		th := find(tr, func(n *html.Node) bool { return isElem(n, atom.Th) })
		td := find(tr, func(n *html.Node) bool { return isElem(n, atom.Td) })
		if th == nil || td == nil {
			continue
		}
		key := labelKey(inline(th))
		if _, ok := res.cells[key]; ok || key == "" {
			continue
		}
		res.labels = append(res.labels, key)
		res.cells[key] = td
	}
	return res
}

func parse(pageURL string, body []byte) (*html.Node, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, ParseError(pageURL, err)
	}
	return doc, nil
}

func title(doc *html.Node) string {
	h1 := find(doc, func(n *html.Node) bool {
		return isElem(n, atom.H1) && attr(n, "id") == "firstHeading"
	})
	if h1 != nil {
		if i := find(h1, func(n *html.Node) bool { return isElem(n, atom.I) }); i != nil {
			if s := inline(i); s != "" {
				return s
			}
		}
		return inline(h1)
	}
	t := find(doc, func(n *html.Node) bool { return isElem(n, atom.Title) })
	if t == nil {
		return ""
	}
	s := inline(t)
	if i := strings.LastIndex(s, " - "); i > 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// reception reads the Metacritic score of the aggregate score table.
func reception(doc *html.Node) sql.NullFloat64 {
	var res sql.NullFloat64
	find(doc, func(n *html.Node) bool {
		if !isElem(n, atom.Tr) {
			return false
		}
		var cells []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if isElem(c, atom.Th, atom.Td) {
				cells = append(cells, c)
			}
		}
		if len(cells) < 2 || !strings.EqualFold(inline(cells[0]), "Metacritic") {
			return false
		}
		if f, ok := facts.ParseScore(inline(cells[1])); ok {
			res = sql.NullFloat64{Float64: f, Valid: true}
			return true
		}
		return false
	})
	return res
}

// Page extracts game facts from an article. A page without a title
// returns NoTitleError.
func (e *Extractor) Page(pageURL string, body []byte) (facts.Page, error) {
	res := facts.Page{URL: pageURL}
	doc, err := parse(pageURL, body)
	if err != nil {
		return res, err
	}

	res.Title = title(doc)
	if res.Title == "" {
		return res, NoTitleError(pageURL)
	}
	res.Reception = reception(doc)

	ib := readInfobox(doc)
	if c := ib.get("developer", "developers"); c != nil {
		res.Developers = e.refs(c, false)
	}
	if c := ib.get("publisher", "publishers"); c != nil {
		res.Publishers = e.refs(c, false)
	}
	if c := ib.get("platform", "platforms"); c != nil {
		res.Platforms = e.refs(c, true)
	}
	res.Employees = e.employees(ib)
	if c := ib.get("release", "release date", "release dates", "released"); c != nil {
		res.Release = e.release(c, res.Platforms)
	}
	return res, nil
}

// employees collects credited people in infobox order. A person credited
// in several rows gets one role per row.
func (e *Extractor) employees(ib infobox) []facts.Employee {
	var res []facts.Employee
	idx := make(map[string]int)
	for _, l := range ib.labels {
		role, ok := creditRoles[l]
		if !ok {
			continue
		}
		for _, ref := range e.refs(ib.cells[l], false) {
			i, ok := idx[ref.Name]
			if !ok {
				i = len(res)
				idx[ref.Name] = i
				res = append(res, facts.Employee{Name: ref.Name})
			}
			res[i].AddRole(role)
		}
	}
	return res
}

// release builds the release fragment. A listing that starts with dates
// and names no platform gets the infobox platforms in front of it.
func (e *Extractor) release(cell *html.Node, platforms []facts.Ref) facts.Fragment {
	res := e.fragment(cell)
	if len(platforms) == 0 {
		return res
	}
	for _, n := range res.Nodes {
		switch n.Kind {
		case facts.NodeOther:
			continue
		case facts.NodeRegionDateList:
			head := facts.Node{Kind: facts.NodePlatformList, Platforms: platforms}
			res.Nodes = append([]facts.Node{head}, res.Nodes...)
		}
		return res
	}
	return res
}
