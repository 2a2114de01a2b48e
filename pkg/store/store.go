// Package store declares how the importer talks to the relational store.
//
// Every upsert resolves an entity by its natural key first and inserts it
// only when it is absent. Upserts return a Resolution that tells whether
// the row was found or inserted together with its surrogate id. The id is
// also written back into the value passed to the upsert.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/gnames/gn"
	"github.com/vgarchive/vgdb/pkg/errcode"
	"github.com/vgarchive/vgdb/pkg/schema"
)

// Status describes the outcome of resolving or upserting an entity.
type Status int

const (
	// StatusNone means the entity is not in the store.
	StatusNone Status = iota
	// StatusFound means the entity existed before the call.
	StatusFound
	// StatusInserted means the call created the entity.
	StatusInserted
	// StatusFallback means a generic record stood in for missing data.
	StatusFallback
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusInserted:
		return "inserted"
	case StatusFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Resolution is the result of an upsert.
type Resolution struct {
	Status Status
	ID     int64
}

// RoleID is the resolution of one role of an employee.
type RoleID struct {
	Role string
	Resolution
}

// EmployeeResolution carries one id per role of an employee, in the order
// roles were given. Roles that could not be stored are absent.
type EmployeeResolution struct {
	Name  string
	Roles []RoleID
}

// ReleaseView is a stored release fact with the platform name.
type ReleaseView struct {
	ReleaseID int64
	Platform  string
	Region    string
	Date      time.Time
}

// Store is the persistence contract of the importer.
type Store interface {
	// FindGame resolves a game by title without inserting it.
	FindGame(ctx context.Context, title string) (schema.Game, bool, error)

	// UpsertGame resolves a game by title and inserts it when absent.
	UpsertGame(ctx context.Context, g *schema.Game) (Resolution, error)

	// SetEarliestReleaseDate stores the derived earliest release date.
	SetEarliestReleaseDate(ctx context.Context, gameID int64, d time.Time) error

	// FindCompany resolves a company by name without inserting it.
	FindCompany(ctx context.Context, name string) (schema.Company, bool, error)

	// UpsertCompany resolves a company by name, inserts it when absent and
	// makes sure it is tagged with all given roles.
	UpsertCompany(
		ctx context.Context, c *schema.Company, roles ...string,
	) (Resolution, error)

	// UpsertEmployee stores one row per (name, role).
	UpsertEmployee(
		ctx context.Context, name string, roles []string,
	) (EmployeeResolution, error)

	// FindPlatform resolves a platform by name without inserting it.
	FindPlatform(ctx context.Context, name string) (schema.Platform, bool, error)

	// UpsertPlatform resolves a platform by name, inserts it when absent
	// and records its manufacturers.
	UpsertPlatform(
		ctx context.Context, p *schema.Platform, manufacturers []string,
	) (Resolution, error)

	// UpsertRelease resolves a release fact by
	// (game, platform, region, date) and inserts it when absent.
	UpsertRelease(ctx context.Context, r *schema.GameRelease) (Resolution, error)

	// InsertCredit adds a develops row. It returns false when the row
	// already existed.
	InsertCredit(ctx context.Context, d schema.Develops) (bool, error)

	// GameReleases returns release facts of a game ordered by date.
	GameReleases(ctx context.Context, gameID int64) ([]ReleaseView, error)

	// CreditCount returns the number of develops rows of a game.
	CreditCount(ctx context.Context, gameID int64) (int, error)
}

// IsRequiredField reports whether err is a NOT NULL violation reported by
// the store. Such errors concern one row only, callers skip the row and
// continue.
func IsRequiredField(err error) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code == errcode.StoreRequiredFieldError
	}
	return false
}
