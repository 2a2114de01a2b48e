// Package schema provides database schema models for vgdb.
//
// Models carry `db` tags with the column names used by hand-written SQL in
// the store and `gorm` tags used by AutoMigrate to create tables, unique
// keys and NOT NULL constraints. Optional attributes are sql.Null* values:
// an attribute the source pages do not provide is stored as NULL.
package schema

import (
	"database/sql"
	"time"
)

// Company roles stored in company_roles.
const (
	RoleDeveloper = "developer"
	RolePublisher = "publisher"
)

// Game is a video game identified by its title.
type Game struct {
	// ID is the surrogate key assigned by the database.
	ID int64 `db:"game_id" gorm:"column:game_id;primaryKey"`

	// Title is the natural key of a game.
	Title string `db:"title" gorm:"type:text;not null;uniqueIndex"`

	// EarliestReleaseDate is the minimum date over the game's releases.
	EarliestReleaseDate sql.NullTime `db:"earliest_release_date" gorm:"type:date"`

	// Reception is an aggregate review score from 0 to 100.
	Reception sql.NullFloat64 `db:"reception" gorm:"type:numeric(5,2)"`
}

// Company is a developer or publisher of games, or a platform owner.
type Company struct {
	ID int64 `db:"company_id" gorm:"column:company_id;primaryKey"`

	// Name is the natural key of a company.
	Name string `db:"name" gorm:"type:text;not null;uniqueIndex"`

	DefunctDate  sql.NullTime   `db:"defunct_date"  gorm:"type:date"`
	Founder      sql.NullString `db:"founder"       gorm:"type:text"`
	FoundingDate sql.NullTime   `db:"founding_date" gorm:"type:date"`
	HQAddress    sql.NullString `db:"hq_address"    gorm:"column:hq_address;type:text"`
	Website      sql.NullString `db:"website"       gorm:"type:text"`
}

// CompanyRole tags a company as a developer and/or a publisher.
type CompanyRole struct {
	CompanyID int64  `db:"company_id" gorm:"primaryKey;autoIncrement:false"`
	Role      string `db:"role"       gorm:"type:varchar(20);primaryKey"`
}

// Employee is a person credited on a game in one role. A person with
// several roles has one row per role.
type Employee struct {
	ID   int64  `db:"employee_id" gorm:"column:employee_id;primaryKey"`
	Name string `db:"name"        gorm:"type:text;not null;uniqueIndex:idx_employees_name_role"`
	Role string `db:"role"        gorm:"type:text;not null;uniqueIndex:idx_employees_name_role"`
}

// Platform is a console, handheld or computer system games are released on.
type Platform struct {
	ID int64 `db:"platform_id" gorm:"column:platform_id;primaryKey"`

	// Name is the natural key of a platform.
	Name string `db:"name" gorm:"type:text;not null;uniqueIndex"`

	// CompanyID references the company that develops the platform.
	CompanyID int64 `db:"company_id" gorm:"not null;index"`

	DiscontinuedDate  sql.NullTime    `db:"discontinued_date"  gorm:"type:date"`
	Generation        sql.NullInt32   `db:"generation"         gorm:"type:integer"`
	IntroductoryPrice sql.NullFloat64 `db:"introductory_price" gorm:"type:numeric(10,2)"`
	ReleaseDate       sql.NullTime    `db:"release_date"       gorm:"type:date"`
	Type              sql.NullString  `db:"type"               gorm:"type:text"`
}

// PlatformManufacturer lists companies that manufacture a platform's
// hardware.
type PlatformManufacturer struct {
	PlatformID   int64  `db:"platform_id"  gorm:"primaryKey;autoIncrement:false"`
	Manufacturer string `db:"manufacturer" gorm:"type:text;primaryKey"`
}

// GameRelease is one release fact: a game came out on a platform in a
// region on a date.
type GameRelease struct {
	ID          int64     `db:"release_id"   gorm:"column:release_id;primaryKey"`
	GameID      int64     `db:"game_id"      gorm:"not null;uniqueIndex:idx_game_releases_key,priority:1"`
	PlatformID  int64     `db:"platform_id"  gorm:"not null;uniqueIndex:idx_game_releases_key,priority:2"`
	Region      string    `db:"region"       gorm:"type:text;not null;uniqueIndex:idx_game_releases_key,priority:3"`
	ReleaseDate time.Time `db:"release_date" gorm:"type:date;not null;uniqueIndex:idx_game_releases_key,priority:4"`
}

// Develops credits an employee role, a developer and a publisher on a
// release.
type Develops struct {
	ReleaseID           int64  `db:"release_id"            gorm:"primaryKey;autoIncrement:false"`
	EmployeeID          int64  `db:"employee_id"           gorm:"primaryKey;autoIncrement:false"`
	Role                string `db:"role"                  gorm:"type:text;primaryKey"`
	DevelopingCompanyID int64  `db:"developing_company_id" gorm:"primaryKey;autoIncrement:false"`
	PublishingCompanyID int64  `db:"publishing_company_id" gorm:"primaryKey;autoIncrement:false"`
}

func (Game) TableName() string                 { return "games" }
func (Company) TableName() string              { return "companies" }
func (CompanyRole) TableName() string          { return "company_roles" }
func (Employee) TableName() string             { return "employees" }
func (Platform) TableName() string             { return "platforms" }
func (PlatformManufacturer) TableName() string { return "platform_manufacturers" }
func (GameRelease) TableName() string          { return "game_releases" }
func (Develops) TableName() string             { return "develops" }
