package ioschema

import (
	"fmt"

	"github.com/vgarchive/vgdb/pkg/schema"
)

// foreignKeySQL formats a statement that adds a foreign key
// unless a constraint with the same name exists.
func foreignKeySQL(fk schema.ForeignKey) string {
	return fmt.Sprintf(`DO $$
BEGIN
	ALTER TABLE %s ADD CONSTRAINT %s
		FOREIGN KEY (%s) REFERENCES %s (%s);
EXCEPTION
	WHEN duplicate_object THEN NULL;
END $$`,
		fk.Table, fk.Name(), fk.Column, fk.RefTable, fk.RefColumn,
	)
}
