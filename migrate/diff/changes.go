package diff

import (
	"strings"

	"github.com/sqlmorph/sqlmorph/migrate/diff/flavour"
	"github.com/sqlmorph/sqlmorph/schema"
)

// TypeChange is the dialect-classified severity of a column retype.
type TypeChange = flavour.TypeChange

// Re-exported so step consumers need not import the flavour package.
const (
	TypeChangeNone = flavour.TypeChangeNone
	SafeCast       = flavour.SafeCast
	RiskyCast      = flavour.RiskyCast
	NotCastable    = flavour.NotCastable
)

// TableChange is one change inside an AlterTable step. The concrete types
// below are the full set.
type TableChange interface {
	tableChange()
}

// AddColumn adds a column of the next snapshot's table.
type AddColumn struct {
	Column schema.ColumnID
}

// DropColumn removes a column of the previous snapshot's table.
type DropColumn struct {
	Column schema.ColumnID
}

// AlterColumn changes a surviving column in place.
type AlterColumn struct {
	Columns    schema.Pair[schema.ColumnID]
	Changes    ColumnChanges
	TypeChange TypeChange
}

// DropAndRecreateColumn replaces a surviving column whose retype is not
// castable. The column's data is lost.
type DropAndRecreateColumn struct {
	Columns schema.Pair[schema.ColumnID]
	Changes ColumnChanges
}

// AddPrimaryKey adds the next snapshot's primary key constraint.
type AddPrimaryKey struct{}

// DropPrimaryKey removes the previous snapshot's primary key constraint.
type DropPrimaryKey struct{}

// RenamePrimaryKey renames the primary key constraint without touching its
// columns.
type RenamePrimaryKey struct{}

func (AddColumn) tableChange()             {}
func (DropColumn) tableChange()            {}
func (AlterColumn) tableChange()           {}
func (DropAndRecreateColumn) tableChange() {}
func (AddPrimaryKey) tableChange()         {}
func (DropPrimaryKey) tableChange()        {}
func (RenamePrimaryKey) tableChange()      {}

// ColumnChanges is a bitmask recording which aspects of a surviving column
// diverged between the snapshots.
type ColumnChanges uint8

const (
	// ChangedDefault is set when the default value differs.
	ChangedDefault ColumnChanges = 1 << iota
	// ChangedArity is set when the column moved between required, nullable
	// and list.
	ChangedArity
	// ChangedType is set when the column type differs.
	ChangedType
	// ChangedAutoIncrement is set when the auto-increment property differs.
	ChangedAutoIncrement
)

// DiffersInSomething reports whether any aspect changed.
func (c ColumnChanges) DiffersInSomething() bool { return c != 0 }

// DefaultChanged reports whether the default value changed.
func (c ColumnChanges) DefaultChanged() bool { return c&ChangedDefault != 0 }

// ArityChanged reports whether the arity changed.
func (c ColumnChanges) ArityChanged() bool { return c&ChangedArity != 0 }

// TypeChanged reports whether the type changed.
func (c ColumnChanges) TypeChanged() bool { return c&ChangedType != 0 }

// AutoIncrementChanged reports whether the auto-increment property changed.
func (c ColumnChanges) AutoIncrementChanged() bool { return c&ChangedAutoIncrement != 0 }

// OnlyDefaultChanged reports whether the default is the only divergence.
func (c ColumnChanges) OnlyDefaultChanged() bool { return c == ChangedDefault }

func (c ColumnChanges) String() string {
	var parts []string
	if c.DefaultChanged() {
		parts = append(parts, "default")
	}
	if c.ArityChanged() {
		parts = append(parts, "arity")
	}
	if c.TypeChanged() {
		parts = append(parts, "type")
	}
	if c.AutoIncrementChanged() {
		parts = append(parts, "autoincrement")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}
