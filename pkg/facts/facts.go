// Package facts holds records extracted from encyclopedia pages before
// they are stored, and helpers that turn scraped text into typed values.
package facts

import (
	"database/sql"
	"slices"
	"strings"

	"github.com/vgarchive/vgdb/pkg/platforms"
	"github.com/vgarchive/vgdb/pkg/schema"
)

// Ref is a name found on a page with an optional link to its own page.
type Ref struct {
	Name string
	URL  string
}

// Employee is a person credited on a game. Roles keep the order in which
// they appear on the page.
type Employee struct {
	Name  string
	Roles []string
}

// AddRole appends a role unless the employee already has it.
func (e *Employee) AddRole(role string) {
	role = strings.TrimSpace(role)
	if role == "" || slices.Contains(e.Roles, role) {
		return
	}
	e.Roles = append(e.Roles, role)
}

// NodeKind is the structural kind of a release-listing node.
type NodeKind int

const (
	// NodeOther is anything without meaning for release facts.
	NodeOther NodeKind = iota
	// NodeHeading names the platform of the lists that follow it.
	NodeHeading
	// NodePlatformList enumerates platforms.
	NodePlatformList
	// NodeRegionDateList enumerates (region, date) entries.
	NodeRegionDateList
)

func (k NodeKind) String() string {
	switch k {
	case NodeHeading:
		return "heading"
	case NodePlatformList:
		return "platform-list"
	case NodeRegionDateList:
		return "region-date-list"
	default:
		return "other"
	}
}

// RegionDate is one entry of a region/date list. Date is raw text.
type RegionDate struct {
	Region string
	Date   string
}

// Node is one element of a release listing.
type Node struct {
	Kind NodeKind

	// Ref is the platform named by a heading.
	Ref Ref

	// Platforms are the items of a platform list.
	Platforms []Ref

	// Entries are the items of a region/date list.
	Entries []RegionDate
}

// Fragment is the ordered sequence of nodes of a release listing.
type Fragment struct {
	Nodes []Node
}

// IsEmpty reports whether the fragment has no structural nodes.
func (f Fragment) IsEmpty() bool {
	for _, n := range f.Nodes {
		if n.Kind != NodeOther {
			return false
		}
	}
	return true
}

// Page holds facts about a game extracted from its article.
type Page struct {
	URL   string
	Title string

	// Reception is the aggregate review score, NULL when absent.
	Reception sql.NullFloat64

	Employees  []Employee
	Developers []Ref
	Publishers []Ref

	// Platforms lists the platforms named in the infobox.
	Platforms []Ref

	// Release is the release listing of the infobox.
	Release Fragment
}

// Game returns the games row described by the page.
func (p Page) Game() schema.Game {
	return schema.Game{
		Title:     strings.TrimSpace(p.Title),
		Reception: p.Reception,
	}
}

// Links returns a map from names to page URLs of every linked
// company and platform.
func (p Page) Links() map[string]string {
	res := make(map[string]string)
	add := func(refs ...Ref) {
		for _, r := range refs {
			if r.URL != "" && r.Name != "" {
				res[r.Name] = r.URL
			}
		}
	}
	add(p.Developers...)
	add(p.Publishers...)
	add(p.Platforms...)
	for _, n := range p.Release.Nodes {
		add(n.Ref)
		add(n.Platforms...)
	}
	return res
}

// CompanyFacts are raw infobox values of a company article.
type CompanyFacts struct {
	Name         string
	Founder      string
	Founded      string
	Defunct      string
	Headquarters string
	Website      string
}

// Row converts raw values to a companies row. Values that do not parse
// become NULL.
func (c CompanyFacts) Row() schema.Company {
	return schema.Company{
		Name:         strings.TrimSpace(c.Name),
		Founder:      nullString(c.Founder),
		FoundingDate: nullDate(c.Founded),
		DefunctDate:  nullDate(c.Defunct),
		HQAddress:    nullString(c.Headquarters),
		Website:      nullString(c.Website),
	}
}

// PlatformFacts are raw infobox values of a platform article.
type PlatformFacts struct {
	Name              string
	Developer         Ref
	Manufacturers     []string
	Type              string
	Generation        string
	ReleaseDate       string
	IntroductoryPrice string
	Discontinued      string
}

// Row converts raw values to a platforms row owned by companyID.
func (p PlatformFacts) Row(companyID int64) schema.Platform {
	res := schema.Platform{
		Name:             strings.TrimSpace(p.Name),
		CompanyID:        companyID,
		Type:             nullString(p.Type),
		ReleaseDate:      nullDate(p.ReleaseDate),
		DiscontinuedDate: nullDate(p.Discontinued),
	}
	if g, ok := platforms.ParseGeneration(p.Generation); ok {
		res.Generation = sql.NullInt32{Int32: int32(g), Valid: true}
	}
	if price, ok := ParsePrice(p.IntroductoryPrice); ok {
		res.IntroductoryPrice = sql.NullFloat64{Float64: price, Valid: true}
	}
	return res
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(s string) sql.NullTime {
	d, ok := ParseFirstDate(s)
	return sql.NullTime{Time: d, Valid: ok}
}
