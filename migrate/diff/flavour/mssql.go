package flavour

import (
	"github.com/sqlmorph/sqlmorph/schema"
)

// MSSQLFlavour implements DifferFlavour for SQL Server.
type MSSQLFlavour struct{}

// NewMSSQLFlavour creates a new SQL Server flavour.
func NewMSSQLFlavour() DifferFlavour {
	return &MSSQLFlavour{}
}

// Provider returns the provider name.
func (f *MSSQLFlavour) Provider() string { return "sqlserver" }

// ColumnTypeChange classifies a retype on SQL Server. ALTER COLUMN converts
// along CAST-compatible paths; text to non-text is a risky conversion rather
// than impossible.
func (f *MSSQLFlavour) ColumnTypeChange(columns schema.Pair[schema.ColumnWalker]) TypeChange {
	prev, next := columns.Previous.Type(), columns.Next.Type()
	if prev.Family == next.Family {
		return nativeCast(prev.Native, next.Native)
	}
	// Binary columns cannot be cast to or from anything else in place.
	if prev.Family == schema.FamilyBytes || next.Family == schema.FamilyBytes {
		return NotCastable
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

// ShouldRedefineTable rebuilds the table when the primary key or an identity
// column changes: SQL Server cannot alter either in place while preserving
// data.
func (f *MSSQLFlavour) ShouldRedefineTable(causes RedefineCause) bool {
	return causes&(CauseChangedPrimaryKey|CauseChangedAutoIncrement) != 0
}

// CanRenameIndex returns whether index renames are supported (sp_rename).
func (f *MSSQLFlavour) CanRenameIndex() bool { return true }

// CanRenameForeignKey returns whether foreign key renames are supported.
func (f *MSSQLFlavour) CanRenameForeignKey() bool { return true }

// IndexesMatch checks if two indexes match by structure.
func (f *MSSQLFlavour) IndexesMatch(prev, next schema.IndexWalker) bool {
	return indexesMatch(prev, next)
}

// ForeignKeysMatch checks if two foreign keys match by structure.
func (f *MSSQLFlavour) ForeignKeysMatch(prev, next schema.ForeignKeyWalker) bool {
	return foreignKeysMatch(prev, next)
}

// LowerCasesTableNames returns true if table names compare case-insensitively.
func (f *MSSQLFlavour) LowerCasesTableNames() bool { return false }

// TableShouldBeIgnored returns true if a table is excluded from diffing.
func (f *MSSQLFlavour) TableShouldBeIgnored(tableName string) bool {
	return tableName == "_migrations"
}

// HasEnums returns whether the dialect has named enumerated types.
func (f *MSSQLFlavour) HasEnums() bool { return false }

// HasSequences returns whether the dialect has sequence objects. Sequences
// exist on SQL Server but identity columns are modeled directly, so the
// differ does not track them.
func (f *MSSQLFlavour) HasSequences() bool { return false }

// HasExtensions returns whether the dialect has installable extensions.
func (f *MSSQLFlavour) HasExtensions() bool { return false }

// HasNamespaces returns whether the dialect has schema namespaces.
func (f *MSSQLFlavour) HasNamespaces() bool { return true }

// PushForeignKeysFromCreatedTables returns whether foreign keys of created
// tables become separate steps.
func (f *MSSQLFlavour) PushForeignKeysFromCreatedTables() bool { return true }
