package ioextract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vgarchive/vgdb/pkg/facts"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func cellFragment(t *testing.T, cell string) facts.Fragment {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(
		"<html><body><table><tr><td>" + cell + "</td></tr></table></body></html>"))
	require.NoError(t, err)
	td := find(doc, func(n *html.Node) bool { return isElem(n, atom.Td) })
	require.NotNil(t, td)
	return linker{}.fragment(td)
}

func kinds(f facts.Fragment) []facts.NodeKind {
	var res []facts.NodeKind
	for _, n := range f.Nodes {
		res = append(res, n.Kind)
	}
	return res
}

func TestFragment(t *testing.T) {
	tests := []struct {
		name  string
		cell  string
		kinds []facts.NodeKind
	}{
		{
			name:  "platform list then dates",
			cell:  `<ul><li>Windows</li><li>PlayStation 4</li></ul><ul><li>WW: March 24, 2016</li></ul>`,
			kinds: []facts.NodeKind{facts.NodePlatformList, facts.NodeRegionDateList},
		},
		{
			name: "bold headings with loose lines",
			cell: `<b>NES</b><br>JP: September 13, 1985<br>NA: October 18, 1985` +
				`<br><b>Famicom Disk System</b><br>JP: February 21, 1986`,
			kinds: []facts.NodeKind{
				facts.NodeHeading, facts.NodeRegionDateList,
				facts.NodeHeading, facts.NodeRegionDateList,
			},
		},
		{
			name:  "mixed list splits into runs",
			cell:  `<ul><li>Wii</li><li>NA: November 19, 2006</li><li>EU: December 8, 2006</li></ul>`,
			kinds: []facts.NodeKind{facts.NodePlatformList, facts.NodeRegionDateList},
		},
		{
			name:  "text without dates",
			cell:  `Cancelled<br>See below`,
			kinds: []facts.NodeKind{facts.NodeOther},
		},
		{
			name:  "definition list",
			cell:  `<dl><dt>Arcade</dt><dd>JP: 1985</dd></dl>`,
			kinds: []facts.NodeKind{facts.NodeHeading, facts.NodeRegionDateList},
		},
		{
			name: "empty",
			cell: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cellFragment(t, tt.cell)
			assert.Equal(t, tt.kinds, kinds(f))
		})
	}
}

func TestFragment_Entries(t *testing.T) {
	f := cellFragment(t, `<b>NES</b><br>JP: September 13, 1985<br>October 18, 1985[1]`)
	require.Len(t, f.Nodes, 2)
	assert.Equal(t, "NES", f.Nodes[0].Ref.Name)
	assert.Equal(t, []facts.RegionDate{
		{Region: "JP", Date: "September 13, 1985"},
		{Date: "October 18, 1985"},
	}, f.Nodes[1].Entries)
}
