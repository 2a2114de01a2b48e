package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
// Referenced tables come before the tables that reference them.
func AllModels() []any {
	return []any{
		&Game{},
		&Company{},
		&CompanyRole{},
		&Employee{},
		&Platform{},
		&PlatformManufacturer{},
		&GameRelease{},
		&Develops{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// ForeignKey describes a reference between two tables. GORM does not
// create constraints for plain id fields, they are added after migration.
type ForeignKey struct {
	Table     string
	Column    string
	RefTable  string
	RefColumn string
}

// Name returns the constraint name.
func (fk ForeignKey) Name() string {
	return "fk_" + fk.Table + "_" + fk.Column
}

// ForeignKeys returns all references between vgdb tables.
func ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{"company_roles", "company_id", "companies", "company_id"},
		{"platforms", "company_id", "companies", "company_id"},
		{"platform_manufacturers", "platform_id", "platforms", "platform_id"},
		{"game_releases", "game_id", "games", "game_id"},
		{"game_releases", "platform_id", "platforms", "platform_id"},
		{"develops", "release_id", "game_releases", "release_id"},
		{"develops", "employee_id", "employees", "employee_id"},
		{"develops", "developing_company_id", "companies", "company_id"},
		{"develops", "publishing_company_id", "companies", "company_id"},
	}
}
