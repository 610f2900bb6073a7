package flavour

import (
	"github.com/sqlmorph/sqlmorph/schema"
)

// CockroachFlavour implements DifferFlavour for CockroachDB. It shares most
// behavior with PostgreSQL but cannot retype primary key columns in place.
type CockroachFlavour struct {
	PostgresFlavour
}

// NewCockroachFlavour creates a new CockroachDB flavour.
func NewCockroachFlavour() DifferFlavour {
	return &CockroachFlavour{}
}

// Provider returns the provider name.
func (f *CockroachFlavour) Provider() string { return "cockroachdb" }

// ColumnTypeChange classifies a retype on CockroachDB.
func (f *CockroachFlavour) ColumnTypeChange(columns schema.Pair[schema.ColumnWalker]) TypeChange {
	change := f.PostgresFlavour.ColumnTypeChange(columns)
	// CockroachDB refuses in-place conversion of primary key columns even
	// on paths PostgreSQL accepts.
	if change != TypeChangeNone && columns.Previous.IsSinglePrimaryKey() {
		return NotCastable
	}
	return change
}

// ShouldRedefineTable rebuilds the table when a primary key column cannot be
// converted.
func (f *CockroachFlavour) ShouldRedefineTable(causes RedefineCause) bool {
	return causes&CauseNotCastablePrimaryKeyColumn != 0
}

// HasExtensions returns whether the dialect has installable extensions.
func (f *CockroachFlavour) HasExtensions() bool { return false }
