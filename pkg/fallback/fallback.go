// Package fallback provides the generic records used when a page lacks
// data that referential constraints require. The values are fixed, so
// repeated imports resolve to the same rows.
package fallback

import (
	"database/sql"
	"time"

	"github.com/vgarchive/vgdb/pkg/facts"
	"github.com/vgarchive/vgdb/pkg/schema"
)

// UnknownDate stands for a required date nobody knows.
var UnknownDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	CompanyName  = "Unknown Company"
	Founder      = "Unknown"
	EmployeeName = "Unknown"
	EmployeeRole = "Unknown"
	PlatformName = "Unknown Platform"
	Region       = "Unknown"
)

// Company returns the generic company. It is both a developer and a
// publisher.
func Company() schema.Company {
	return schema.Company{
		Name:         CompanyName,
		Founder:      sql.NullString{String: Founder, Valid: true},
		FoundingDate: sql.NullTime{Time: UnknownDate, Valid: true},
	}
}

// Employee returns the generic employee with its single role.
func Employee() facts.Employee {
	return facts.Employee{Name: EmployeeName, Roles: []string{EmployeeRole}}
}

// Platform returns the generic platform owned by companyID.
func Platform(companyID int64) schema.Platform {
	return schema.Platform{Name: PlatformName, CompanyID: companyID}
}

// Release returns the generic release fact of a game.
func Release(gameID, platformID int64) schema.GameRelease {
	return schema.GameRelease{
		GameID:      gameID,
		PlatformID:  platformID,
		Region:      Region,
		ReleaseDate: UnknownDate,
	}
}
