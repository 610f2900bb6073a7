package flavour

import (
	"github.com/sqlmorph/sqlmorph/schema"
)

// MySQLFlavour implements DifferFlavour for MySQL and MariaDB.
type MySQLFlavour struct{}

// NewMySQLFlavour creates a new MySQL flavour.
func NewMySQLFlavour() DifferFlavour {
	return &MySQLFlavour{}
}

// Provider returns the provider name.
func (f *MySQLFlavour) Provider() string { return "mysql" }

// ColumnTypeChange classifies a retype on MySQL. MODIFY COLUMN coerces
// between almost any two types, so conversions that lose information are
// risky rather than impossible.
func (f *MySQLFlavour) ColumnTypeChange(columns schema.Pair[schema.ColumnWalker]) TypeChange {
	prev, next := columns.Previous.Type(), columns.Next.Type()
	if prev.Family == schema.FamilyEnum || next.Family == schema.FamilyEnum {
		// Inline ENUM(...) columns: the variant list is part of the column
		// type, so changing it rewrites the rows.
		if enumTypesEquivalent(columns.Previous, columns.Next) &&
			enumVariantsEquivalent(columns.Previous, columns.Next) {
			return TypeChangeNone
		}
		return RiskyCast
	}
	if prev.Family == next.Family {
		return nativeCast(prev.Native, next.Native)
	}
	switch familyCast(prev.Family, next.Family) {
	case TypeChangeNone:
		return TypeChangeNone
	case SafeCast:
		return SafeCast
	default:
		if prev.Family == schema.FamilyUnsupported || next.Family == schema.FamilyUnsupported {
			return NotCastable
		}
		return RiskyCast
	}
}

// ShouldRedefineTable returns false: MySQL alters everything in place.
func (f *MySQLFlavour) ShouldRedefineTable(causes RedefineCause) bool {
	return false
}

// CanRenameIndex returns whether index renames are supported. RENAME INDEX
// requires MySQL 5.7+, which is assumed.
func (f *MySQLFlavour) CanRenameIndex() bool { return true }

// CanRenameForeignKey returns whether foreign key renames are supported.
// MySQL has no single-statement rename, so matching keys are dropped and
// recreated instead.
func (f *MySQLFlavour) CanRenameForeignKey() bool { return false }

// IndexesMatch checks if two indexes match by structure.
func (f *MySQLFlavour) IndexesMatch(prev, next schema.IndexWalker) bool {
	return indexesMatch(prev, next)
}

// ForeignKeysMatch checks if two foreign keys match by structure.
func (f *MySQLFlavour) ForeignKeysMatch(prev, next schema.ForeignKeyWalker) bool {
	return foreignKeysMatch(prev, next)
}

// LowerCasesTableNames returns true if table names compare case-insensitively.
func (f *MySQLFlavour) LowerCasesTableNames() bool { return true }

// TableShouldBeIgnored returns true if a table is excluded from diffing.
func (f *MySQLFlavour) TableShouldBeIgnored(tableName string) bool {
	return tableName == "_migrations"
}

// HasEnums returns whether the dialect has named enumerated types. MySQL
// enums are inline column types and diff as type changes instead.
func (f *MySQLFlavour) HasEnums() bool { return false }

// HasSequences returns whether the dialect has sequence objects.
func (f *MySQLFlavour) HasSequences() bool { return false }

// HasExtensions returns whether the dialect has installable extensions.
func (f *MySQLFlavour) HasExtensions() bool { return false }

// HasNamespaces returns whether the dialect has schema namespaces.
func (f *MySQLFlavour) HasNamespaces() bool { return false }

// PushForeignKeysFromCreatedTables returns whether foreign keys of created
// tables become separate steps.
func (f *MySQLFlavour) PushForeignKeysFromCreatedTables() bool { return true }
