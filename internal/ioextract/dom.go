package ioextract

import (
	"net/url"
	"slices"
	"strings"

	"github.com/vgarchive/vgdb/pkg/facts"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skipped elements never contribute text.
var skipped = []atom.Atom{atom.Sup, atom.Style, atom.Script, atom.Noscript}

// blocks end a line of text.
var blocks = []atom.Atom{
	atom.Br, atom.Div, atom.P, atom.Li, atom.Ul, atom.Ol,
	atom.Dl, atom.Dt, atom.Dd, atom.Tr, atom.Table, atom.H1, atom.H2,
	atom.H3, atom.H4,
}

func isElem(n *html.Node, a ...atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && slices.Contains(a, n.DataAtom)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

// find returns the first node in document order that matches.
func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := find(c, match); res != nil {
			return res
		}
	}
	return nil
}

// findAll returns all matching nodes, without descending into matches.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	if match(n) {
		return []*html.Node{n}
	}
	var res []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		res = append(res, findAll(c, match)...)
	}
	return res
}

func children(n *html.Node, a atom.Atom) []*html.Node {
	var res []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElem(c, a) {
			res = append(res, c)
		}
	}
	return res
}

// text returns the visible text of n with block boundaries as newlines.
func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
			return
		case isElem(n, skipped...):
			return
		case isElem(n, blocks...):
			sb.WriteByte('\n')
			defer sb.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// lines returns the cleaned non-empty lines of n.
func lines(n *html.Node) []string {
	var res []string
	for l := range strings.SplitSeq(text(n), "\n") {
		if l = facts.Clean(l); l != "" {
			res = append(res, l)
		}
	}
	return res
}

// inline returns the cleaned text of n on a single line.
func inline(n *html.Node) string {
	return facts.Clean(strings.ReplaceAll(text(n), "\n", " "))
}

// linker resolves page links against a base URL.
type linker struct {
	base *url.URL
}

// href returns the absolute URL of a link, or an empty string for
// anchors, missing pages and files.
func (l linker) href(a *html.Node) string {
	h := strings.TrimSpace(attr(a, "href"))
	if h == "" || strings.HasPrefix(h, "#") || hasClass(a, "new") ||
		hasClass(a, "mw-file-description") || strings.Contains(h, "redlink=1") {
		return ""
	}
	u, err := url.Parse(h)
	if err != nil {
		return ""
	}
	u.Fragment = ""
	if l.base == nil {
		return u.String()
	}
	return l.base.ResolveReference(u).String()
}

// links maps link texts to URLs.
func (l linker) links(n *html.Node) map[string]string {
	res := make(map[string]string)
	for _, a := range findAll(n, func(n *html.Node) bool { return isElem(n, atom.A) }) {
		name := inline(a)
		if name == "" {
			continue
		}
		if u := l.href(a); u != "" {
			if _, ok := res[name]; !ok {
				res[name] = u
			}
		}
	}
	return res
}

// firstLink returns the URL of the first usable link inside n.
func (l linker) firstLink(n *html.Node) string {
	var res string
	find(n, func(n *html.Node) bool {
		if isElem(n, atom.A) {
			res = l.href(n)
		}
		return res != ""
	})
	return res
}

// refs returns a reference per line of n. With split set, lines are also
// split on commas.
func (l linker) refs(n *html.Node, split bool) []facts.Ref {
	links := l.links(n)
	var res []facts.Ref
	seen := make(map[string]struct{})
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		res = append(res, facts.Ref{Name: name, URL: links[name]})
	}
	for _, line := range lines(n) {
		if !split {
			add(line)
			continue
		}
		for part := range strings.SplitSeq(line, ",") {
			add(part)
		}
	}
	return res
}
