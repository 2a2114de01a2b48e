package facts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vgarchive/vgdb/pkg/facts"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in  string
		res time.Time
		ok  bool
	}{
		{"March 1, 2015", date(2015, 3, 1), true},
		{"1 March 2015", date(2015, 3, 1), true},
		{"Mar. 1, 2015", date(2015, 3, 1), true},
		{"Sept 9, 1999", date(1999, 9, 9), true},
		{"2015-03-01", date(2015, 3, 1), true},
		{"November 2004", date(2004, 11, 1), true},
		{"2001", date(2001, 1, 1), true},
		{"November 15, 2001[1]", date(2001, 11, 15), true},
		{"November 15, 2001 (digital)", date(2001, 11, 15), true},
		{"November 15, 2001; 23 years ago", date(2001, 11, 15), true},
		{"TBA", time.Time{}, false},
		{"Q4 2015", time.Time{}, false},
		{"", time.Time{}, false},
		{"February 30, 2001", time.Time{}, false},
	}

	for _, v := range tests {
		res, ok := facts.ParseDate(v.in)
		assert.Equal(t, v.ok, ok, v.in)
		assert.Equal(t, v.res, res, v.in)
	}
}

func TestParseFirstDate(t *testing.T) {
	tests := []struct {
		in  string
		res time.Time
		ok  bool
	}{
		{"September 23, 1889; 135 years ago in Kyoto", date(1889, 9, 23), true},
		{"Founded in 1975 by Bill Gates", date(1975, 1, 1), true},
		{"JP: 21 November 1990", date(1990, 11, 21), true},
		{"released 2006-11-19 and 2006-12-08", date(2006, 11, 19), true},
		{"unknown", time.Time{}, false},
	}

	for _, v := range tests {
		res, ok := facts.ParseFirstDate(v.in)
		assert.Equal(t, v.ok, ok, v.in)
		assert.Equal(t, v.res, res, v.in)
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		in  string
		res float64
		ok  bool
	}{
		{"92/100", 92, true},
		{"PC: 85/100[3] PS4: 80/100", 85, true},
		{"(Xbox) 97/100", 97, true},
		{"PS2: 90/100", 90, true},
		{"3DS: 85/100", 85, true},
		{"PS4: 80/100[3] XONE: 79/100", 80, true},
		{"8.5/10", 85, true},
		{"9.1 / 10", 91, true},
		{"92", 92, true},
		{"88%", 88, true},
		{"120/100", 0, false},
		{"11/10", 0, false},
		{"250 reviews", 0, false},
		{"", 0, false},
	}

	for _, v := range tests {
		res, ok := facts.ParseScore(v.in)
		assert.Equal(t, v.ok, ok, v.in)
		assert.Equal(t, v.res, res, v.in)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in  string
		res float64
		ok  bool
	}{
		{"US$199.99", 199.99, true},
		{"¥25,000", 25000, true},
		{"free", 0, false},
	}

	for _, v := range tests {
		res, ok := facts.ParsePrice(v.in)
		assert.Equal(t, v.ok, ok, v.in)
		assert.Equal(t, v.res, res, v.in)
	}
}

func TestSplitRegionDate(t *testing.T) {
	tests := []struct {
		in  string
		res facts.RegionDate
		ok  bool
	}{
		{"NA: March 1, 2015", facts.RegionDate{Region: "NA", Date: "March 1, 2015"}, true},
		{"JP: 21 November 1990[2]", facts.RegionDate{Region: "JP", Date: "21 November 1990"}, true},
		{"March 1, 2015", facts.RegionDate{Date: "March 1, 2015"}, true},
		{"EU: TBA", facts.RegionDate{}, false},
		{"PlayStation 2", facts.RegionDate{}, false},
	}

	for _, v := range tests {
		res, ok := facts.SplitRegionDate(v.in)
		assert.Equal(t, v.ok, ok, v.in)
		assert.Equal(t, v.res, res, v.in)
	}
}

func TestEmployeeAddRole(t *testing.T) {
	e := facts.Employee{Name: "Hideo Kojima"}
	e.AddRole("Director")
	e.AddRole("Writer")
	e.AddRole("Director")
	e.AddRole(" ")
	assert.Equal(t, []string{"Director", "Writer"}, e.Roles)
}

func TestFragmentIsEmpty(t *testing.T) {
	assert.True(t, facts.Fragment{}.IsEmpty())
	assert.True(t, facts.Fragment{Nodes: []facts.Node{{Kind: facts.NodeOther}}}.IsEmpty())
	assert.False(t, facts.Fragment{Nodes: []facts.Node{{Kind: facts.NodeHeading}}}.IsEmpty())
}

func TestPageLinks(t *testing.T) {
	p := facts.Page{
		Developers: []facts.Ref{{Name: "Bungie", URL: "https://x/wiki/Bungie"}},
		Publishers: []facts.Ref{{Name: "Microsoft Game Studios"}},
		Release: facts.Fragment{Nodes: []facts.Node{
			{Kind: facts.NodeHeading, Ref: facts.Ref{Name: "Xbox", URL: "https://x/wiki/Xbox"}},
		}},
	}

	links := p.Links()
	assert.Equal(t, map[string]string{
		"Bungie": "https://x/wiki/Bungie",
		"Xbox":   "https://x/wiki/Xbox",
	}, links)
}

func TestCompanyRow(t *testing.T) {
	c := facts.CompanyFacts{
		Name:         " Nintendo ",
		Founder:      "Fusajiro Yamauchi",
		Founded:      "September 23, 1889; 135 years ago in Kyoto",
		Headquarters: "Kyoto, Japan",
	}

	row := c.Row()
	assert.Equal(t, "Nintendo", row.Name)
	assert.Equal(t, "Fusajiro Yamauchi", row.Founder.String)
	assert.True(t, row.FoundingDate.Valid)
	assert.Equal(t, date(1889, 9, 23), row.FoundingDate.Time)
	assert.False(t, row.DefunctDate.Valid)
	assert.False(t, row.Website.Valid)
	assert.Equal(t, "Kyoto, Japan", row.HQAddress.String)
}

func TestPlatformRow(t *testing.T) {
	p := facts.PlatformFacts{
		Name:              "Nintendo Entertainment System",
		Type:              "Home video game console",
		Generation:        "Third generation",
		ReleaseDate:       "JP: July 15, 1983",
		IntroductoryPrice: "US$179",
		Discontinued:      "unknown",
	}

	row := p.Row(7)
	assert.Equal(t, int64(7), row.CompanyID)
	assert.Equal(t, int32(3), row.Generation.Int32)
	assert.True(t, row.Generation.Valid)
	assert.Equal(t, 179.0, row.IntroductoryPrice.Float64)
	assert.Equal(t, date(1983, 7, 15), row.ReleaseDate.Time)
	assert.False(t, row.DiscontinuedDate.Valid)
	assert.Equal(t, "Home video game console", row.Type.String)
}
