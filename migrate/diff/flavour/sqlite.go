package flavour

import (
	"github.com/sqlmorph/sqlmorph/schema"
)

// SQLiteFlavour implements DifferFlavour for SQLite.
type SQLiteFlavour struct{}

// NewSQLiteFlavour creates a new SQLite flavour.
func NewSQLiteFlavour() DifferFlavour {
	return &SQLiteFlavour{}
}

// Provider returns the provider name.
func (f *SQLiteFlavour) Provider() string { return "sqlite" }

// ColumnTypeChange classifies a retype on SQLite. Type affinity is advisory,
// so any change is expressible; differing families still coerce stored
// values and count as risky.
func (f *SQLiteFlavour) ColumnTypeChange(columns schema.Pair[schema.ColumnWalker]) TypeChange {
	prev, next := columns.Previous.Type(), columns.Next.Type()
	if prev.Family == next.Family && prev.Native == next.Native {
		return TypeChangeNone
	}
	if prev.Family == next.Family {
		return SafeCast
	}
	return RiskyCast
}

// ShouldRedefineTable rebuilds the table for anything ALTER TABLE cannot
// express, which on SQLite is everything except adding a column.
func (f *SQLiteFlavour) ShouldRedefineTable(causes RedefineCause) bool {
	return causes != 0
}

// CanRenameIndex returns whether index renames are supported.
func (f *SQLiteFlavour) CanRenameIndex() bool { return false }

// CanRenameForeignKey returns whether foreign key renames are supported.
// SQLite foreign keys are unnamed table constraints.
func (f *SQLiteFlavour) CanRenameForeignKey() bool { return false }

// IndexesMatch checks if two indexes match by structure.
func (f *SQLiteFlavour) IndexesMatch(prev, next schema.IndexWalker) bool {
	return indexesMatch(prev, next)
}

// ForeignKeysMatch checks if two foreign keys match by structure.
func (f *SQLiteFlavour) ForeignKeysMatch(prev, next schema.ForeignKeyWalker) bool {
	return foreignKeysMatch(prev, next)
}

// LowerCasesTableNames returns true if table names compare case-insensitively.
func (f *SQLiteFlavour) LowerCasesTableNames() bool { return false }

// TableShouldBeIgnored returns true if a table is excluded from diffing.
func (f *SQLiteFlavour) TableShouldBeIgnored(tableName string) bool {
	return tableName == "_migrations" || tableName == "sqlite_sequence"
}

// HasEnums returns whether the dialect has named enumerated types.
func (f *SQLiteFlavour) HasEnums() bool { return false }

// HasSequences returns whether the dialect has sequence objects.
func (f *SQLiteFlavour) HasSequences() bool { return false }

// HasExtensions returns whether the dialect has installable extensions.
func (f *SQLiteFlavour) HasExtensions() bool { return false }

// HasNamespaces returns whether the dialect has schema namespaces.
func (f *SQLiteFlavour) HasNamespaces() bool { return false }

// PushForeignKeysFromCreatedTables returns whether foreign keys of created
// tables become separate steps. SQLite inlines them in the CREATE TABLE.
func (f *SQLiteFlavour) PushForeignKeysFromCreatedTables() bool { return false }
