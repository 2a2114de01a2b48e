package ioextract

import (
	"strings"

	"github.com/vgarchive/vgdb/pkg/facts"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// fragmentBuilder turns the markup of a release cell into release nodes.
//
// Bold text and definition terms become headings. A list whose items
// look like "REGION: date" becomes a region/date list, any other list is
// a platform list. Loose text lines are grouped the same way: date lines
// form a region/date list, the rest is ignored.
type fragmentBuilder struct {
	linker
	nodes   []facts.Node
	line    strings.Builder
	pending []string
}

func (l linker) fragment(cell *html.Node) facts.Fragment {
	b := &fragmentBuilder{linker: l}
	for c := cell.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
	b.flush()
	return facts.Fragment{Nodes: b.nodes}
}

func (b *fragmentBuilder) walk(n *html.Node) {
	switch {
	case n.Type == html.TextNode:
		b.line.WriteString(n.Data)
	case n.Type != html.ElementNode, isElem(n, skipped...):
	case isElem(n, atom.Br):
		b.endLine()
	case isElem(n, atom.B, atom.Strong, atom.Dt, atom.Th):
		b.flush()
		if name := inline(n); name != "" {
			b.nodes = append(b.nodes, facts.Node{
				Kind: facts.NodeHeading,
				Ref:  facts.Ref{Name: name, URL: b.firstLink(n)},
			})
		}
	case isElem(n, atom.Ul, atom.Ol):
		b.flush()
		b.list(n)
	case isElem(n, blocks...):
		b.endLine()
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.walk(c)
		}
		b.endLine()
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.walk(c)
		}
	}
}

// list handles items of a list. Items without nested structure are
// classified in runs, items with headings or sublists are walked.
func (b *fragmentBuilder) list(n *html.Node) {
	var run []*html.Node
	for _, li := range children(n, atom.Li) {
		if isLeaf(li) {
			run = append(run, li)
			continue
		}
		b.items(run)
		run = nil
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			b.walk(c)
		}
		b.flush()
	}
	b.items(run)
}

func isLeaf(li *html.Node) bool {
	nested := find(li, func(n *html.Node) bool {
		return n != li && isElem(n, atom.Ul, atom.Ol, atom.B, atom.Strong)
	})
	return nested == nil
}

// items classifies leaf items, splitting them into runs of the same kind.
func (b *fragmentBuilder) items(lis []*html.Node) {
	var cur *facts.Node
	push := func(kind facts.NodeKind) *facts.Node {
		if cur == nil || cur.Kind != kind {
			b.nodes = append(b.nodes, facts.Node{Kind: kind})
			cur = &b.nodes[len(b.nodes)-1]
		}
		return cur
	}
	for _, li := range lis {
		s := inline(li)
		if s == "" {
			continue
		}
		if rd, ok := facts.SplitRegionDate(s); ok {
			n := push(facts.NodeRegionDateList)
			n.Entries = append(n.Entries, rd)
			continue
		}
		n := push(facts.NodePlatformList)
		n.Platforms = append(n.Platforms, facts.Ref{Name: s, URL: b.firstLink(li)})
	}
}

func (b *fragmentBuilder) endLine() {
	if s := facts.Clean(b.line.String()); s != "" {
		b.pending = append(b.pending, s)
	}
	b.line.Reset()
}

// flush converts pending loose lines into nodes.
func (b *fragmentBuilder) flush() {
	b.endLine()
	var cur *facts.Node
	for _, s := range b.pending {
		rd, ok := facts.SplitRegionDate(s)
		if !ok {
			if cur == nil || cur.Kind != facts.NodeOther {
				b.nodes = append(b.nodes, facts.Node{Kind: facts.NodeOther})
				cur = &b.nodes[len(b.nodes)-1]
			}
			continue
		}
		if cur == nil || cur.Kind != facts.NodeRegionDateList {
			b.nodes = append(b.nodes, facts.Node{Kind: facts.NodeRegionDateList})
			cur = &b.nodes[len(b.nodes)-1]
		}
		cur.Entries = append(cur.Entries, rd)
	}
	b.pending = nil
}
