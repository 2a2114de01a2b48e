package iostore

import (
	"database/sql"
	"strings"

	"github.com/vgarchive/vgdb/pkg/schema"
)

func byID(id int64) ([]any, bool) {
	return []any{id}, id > 0
}

func byText(s string) ([]any, bool) {
	s = strings.TrimSpace(s)
	return []any{s}, s != ""
}

const gameColumns = `game_id, title, earliest_release_date, reception`

var gameKind = &kind[schema.Game]{
	name: "game",
	lookups: []lookup[schema.Game]{
		{
			field: "game_id",
			query: `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1`,
			args:  func(g *schema.Game) ([]any, bool) { return byID(g.ID) },
		},
		{
			field: "title",
			query: `SELECT ` + gameColumns + ` FROM games WHERE title = $1`,
			args:  func(g *schema.Game) ([]any, bool) { return byText(g.Title) },
		},
	},
	scan: func(r *sql.Row, g *schema.Game) error {
		return r.Scan(&g.ID, &g.Title, &g.EarliestReleaseDate, &g.Reception)
	},
	insert: `INSERT INTO games (title, earliest_release_date, reception)
VALUES ($1, $2, $3)`,
	values: func(g *schema.Game) []any {
		return []any{required(g.Title), g.EarliestReleaseDate, g.Reception}
	},
	id: func(g *schema.Game) int64 { return g.ID },
}

const companyColumns = `company_id, name, defunct_date, founder,
	founding_date, hq_address, website`

var companyKind = &kind[schema.Company]{
	name: "company",
	lookups: []lookup[schema.Company]{
		{
			field: "company_id",
			query: `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1`,
			args:  func(c *schema.Company) ([]any, bool) { return byID(c.ID) },
		},
		{
			field: "name",
			query: `SELECT ` + companyColumns + ` FROM companies WHERE name = $1`,
			args:  func(c *schema.Company) ([]any, bool) { return byText(c.Name) },
		},
	},
	scan: func(r *sql.Row, c *schema.Company) error {
		return r.Scan(&c.ID, &c.Name, &c.DefunctDate, &c.Founder,
			&c.FoundingDate, &c.HQAddress, &c.Website)
	},
	insert: `INSERT INTO companies
	(name, defunct_date, founder, founding_date, hq_address, website)
VALUES ($1, $2, $3, $4, $5, $6)`,
	values: func(c *schema.Company) []any {
		return []any{required(c.Name), c.DefunctDate, c.Founder,
			c.FoundingDate, c.HQAddress, c.Website}
	},
	id: func(c *schema.Company) int64 { return c.ID },
}

var employeeKind = &kind[schema.Employee]{
	name: "employee",
	lookups: []lookup[schema.Employee]{
		{
			field: "employee_id",
			query: `SELECT employee_id, name, role FROM employees
WHERE employee_id = $1`,
			args: func(e *schema.Employee) ([]any, bool) { return byID(e.ID) },
		},
		{
			field: "name, role",
			query: `SELECT employee_id, name, role FROM employees
WHERE name = $1 AND role = $2`,
			args: func(e *schema.Employee) ([]any, bool) {
				name, role := strings.TrimSpace(e.Name), strings.TrimSpace(e.Role)
				return []any{name, role}, name != "" && role != ""
			},
		},
	},
	scan: func(r *sql.Row, e *schema.Employee) error {
		return r.Scan(&e.ID, &e.Name, &e.Role)
	},
	insert: `INSERT INTO employees (name, role) VALUES ($1, $2)`,
	values: func(e *schema.Employee) []any {
		return []any{required(e.Name), required(e.Role)}
	},
	id: func(e *schema.Employee) int64 { return e.ID },
}

const platformColumns = `platform_id, name, company_id, discontinued_date,
	generation, introductory_price, release_date, type`

var platformKind = &kind[schema.Platform]{
	name: "platform",
	lookups: []lookup[schema.Platform]{
		{
			field: "platform_id",
			query: `SELECT ` + platformColumns + ` FROM platforms WHERE platform_id = $1`,
			args:  func(p *schema.Platform) ([]any, bool) { return byID(p.ID) },
		},
		{
			field: "name",
			query: `SELECT ` + platformColumns + ` FROM platforms WHERE name = $1`,
			args:  func(p *schema.Platform) ([]any, bool) { return byText(p.Name) },
		},
	},
	scan: func(r *sql.Row, p *schema.Platform) error {
		return r.Scan(&p.ID, &p.Name, &p.CompanyID, &p.DiscontinuedDate,
			&p.Generation, &p.IntroductoryPrice, &p.ReleaseDate, &p.Type)
	},
	insert: `INSERT INTO platforms
	(name, company_id, discontinued_date, generation,
	 introductory_price, release_date, type)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	values: func(p *schema.Platform) []any {
		return []any{required(p.Name), requiredID(p.CompanyID),
			p.DiscontinuedDate, p.Generation, p.IntroductoryPrice,
			p.ReleaseDate, p.Type}
	},
	id: func(p *schema.Platform) int64 { return p.ID },
}

const releaseColumns = `release_id, game_id, platform_id, region, release_date`

var releaseKind = &kind[schema.GameRelease]{
	name: "release",
	lookups: []lookup[schema.GameRelease]{
		{
			field: "release_id",
			query: `SELECT ` + releaseColumns + ` FROM game_releases
WHERE release_id = $1`,
			args: func(r *schema.GameRelease) ([]any, bool) { return byID(r.ID) },
		},
		{
			field: "game_id, platform_id, region, release_date",
			query: `SELECT ` + releaseColumns + ` FROM game_releases
WHERE game_id = $1 AND platform_id = $2 AND region = $3
  AND release_date = $4`,
			args: func(r *schema.GameRelease) ([]any, bool) {
				ok := r.GameID > 0 && r.PlatformID > 0 && r.Region != "" &&
					!r.ReleaseDate.IsZero()
				return []any{r.GameID, r.PlatformID, r.Region, r.ReleaseDate}, ok
			},
		},
	},
	scan: func(row *sql.Row, r *schema.GameRelease) error {
		return row.Scan(&r.ID, &r.GameID, &r.PlatformID, &r.Region, &r.ReleaseDate)
	},
	insert: `INSERT INTO game_releases
	(game_id, platform_id, region, release_date)
VALUES ($1, $2, $3, $4)`,
	values: func(r *schema.GameRelease) []any {
		return []any{requiredID(r.GameID), requiredID(r.PlatformID),
			required(r.Region), requiredDate(r.ReleaseDate)}
	},
	id: func(r *schema.GameRelease) int64 { return r.ID },
}
