package flavour

import (
	"github.com/sqlmorph/sqlmorph/schema"
)

// PostgresFlavour implements DifferFlavour for PostgreSQL.
type PostgresFlavour struct{}

// NewPostgresFlavour creates a new PostgreSQL flavour.
func NewPostgresFlavour() DifferFlavour {
	return &PostgresFlavour{}
}

// Provider returns the provider name.
func (f *PostgresFlavour) Provider() string { return "postgresql" }

// ColumnTypeChange classifies a retype on PostgreSQL. ALTER COLUMN TYPE only
// converts without USING along implicit cast paths, so text to anything
// narrower is not castable in place.
func (f *PostgresFlavour) ColumnTypeChange(columns schema.Pair[schema.ColumnWalker]) TypeChange {
	prev, next := columns.Previous.Type(), columns.Next.Type()
	listChanged := (prev.Arity == schema.ArityList) != (next.Arity == schema.ArityList)
	if prev.Family == schema.FamilyEnum || next.Family == schema.FamilyEnum {
		if !enumTypesEquivalent(columns.Previous, columns.Next) {
			return NotCastable
		}
		if listChanged {
			return RiskyCast
		}
		return TypeChangeNone
	}
	// Moving between scalar and array needs an explicit element-wise cast.
	// Same element type converts with USING; a family change does not.
	if listChanged {
		if prev.Family == next.Family && prev.Native == next.Native {
			return RiskyCast
		}
		return NotCastable
	}
	if prev.Family == next.Family {
		return nativeCast(prev.Native, next.Native)
	}
	return familyCast(prev.Family, next.Family)
}

// ShouldRedefineTable returns false: PostgreSQL alters everything in place.
func (f *PostgresFlavour) ShouldRedefineTable(causes RedefineCause) bool {
	return false
}

// CanRenameIndex returns whether index renames are supported.
func (f *PostgresFlavour) CanRenameIndex() bool { return true }

// CanRenameForeignKey returns whether foreign key renames are supported.
func (f *PostgresFlavour) CanRenameForeignKey() bool { return true }

// IndexesMatch checks if two indexes match by structure.
func (f *PostgresFlavour) IndexesMatch(prev, next schema.IndexWalker) bool {
	return indexesMatch(prev, next)
}

// ForeignKeysMatch checks if two foreign keys match by structure.
func (f *PostgresFlavour) ForeignKeysMatch(prev, next schema.ForeignKeyWalker) bool {
	return foreignKeysMatch(prev, next)
}

// LowerCasesTableNames returns true if table names compare case-insensitively.
func (f *PostgresFlavour) LowerCasesTableNames() bool { return false }

// TableShouldBeIgnored returns true if a table is excluded from diffing.
func (f *PostgresFlavour) TableShouldBeIgnored(tableName string) bool {
	return tableName == "_migrations"
}

// HasEnums returns whether the dialect has named enumerated types.
func (f *PostgresFlavour) HasEnums() bool { return true }

// HasSequences returns whether the dialect has sequence objects.
func (f *PostgresFlavour) HasSequences() bool { return true }

// HasExtensions returns whether the dialect has installable extensions.
func (f *PostgresFlavour) HasExtensions() bool { return true }

// HasNamespaces returns whether the dialect has schema namespaces.
func (f *PostgresFlavour) HasNamespaces() bool { return true }

// PushForeignKeysFromCreatedTables returns whether foreign keys of created
// tables become separate steps.
func (f *PostgresFlavour) PushForeignKeysFromCreatedTables() bool { return true }
