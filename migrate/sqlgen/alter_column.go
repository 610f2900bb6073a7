package sqlgen

import (
	"github.com/sqlmorph/sqlmorph/migrate/diff"
	"github.com/sqlmorph/sqlmorph/schema"
)

// AlterColumnKind identifies one primitive alteration of a column.
type AlterColumnKind int

const (
	AlterColumnSetDefault AlterColumnKind = iota
	AlterColumnDropDefault
	AlterColumnSetNotNull
	AlterColumnDropNotNull
	AlterColumnSetType
	// AlterColumnAddSequence backs a newly autoincrementing column with a
	// fresh sequence.
	AlterColumnAddSequence
	// AlterColumnDropSequence removes the sequence that backed a formerly
	// autoincrementing column.
	AlterColumnDropSequence
)

// AlterColumnOp is one primitive column alteration. Default is set only for
// AlterColumnSetDefault, Sequence only for AlterColumnDropSequence.
type AlterColumnOp struct {
	Kind     AlterColumnKind
	Default  *schema.Default
	Sequence string
}

// ExpandAlterColumn translates a column change bitmask into an ordered list
// of primitive operations. At most one SetType is produced even when both the
// type and the arity changed, and it always comes last.
func ExpandAlterColumn(columns schema.Pair[schema.ColumnWalker], changes diff.ColumnChanges) []AlterColumnOp {
	var ops []AlterColumnOp
	setType := false

	if changes.DefaultChanged() {
		if d := columns.Next.Default(); d != nil {
			ops = append(ops, AlterColumnOp{Kind: AlterColumnSetDefault, Default: d})
		} else {
			ops = append(ops, AlterColumnOp{Kind: AlterColumnDropDefault})
		}
	}

	if changes.ArityChanged() {
		switch {
		case columns.Previous.Arity() == schema.ArityRequired && columns.Next.Arity() == schema.ArityNullable:
			ops = append(ops, AlterColumnOp{Kind: AlterColumnDropNotNull})
		case columns.Previous.Arity() == schema.ArityNullable && columns.Next.Arity() == schema.ArityRequired:
			ops = append(ops, AlterColumnOp{Kind: AlterColumnSetNotNull})
		case columns.Previous.Arity() == schema.ArityList && columns.Next.Arity() == schema.ArityNullable:
			ops = append(ops, AlterColumnOp{Kind: AlterColumnDropNotNull})
			setType = true
		case columns.Previous.Arity() == schema.ArityList && columns.Next.Arity() == schema.ArityRequired:
			ops = append(ops, AlterColumnOp{Kind: AlterColumnSetNotNull})
			setType = true
		case columns.Next.Arity() == schema.ArityList:
			setType = true
		}
	}

	if changes.TypeChanged() {
		setType = true
	}

	if changes.AutoIncrementChanged() {
		if columns.Previous.IsAutoIncrement() {
			ops = append(ops, AlterColumnOp{Kind: AlterColumnDropDefault})
			if seq, ok := soleBackingSequence(columns.Previous); ok {
				ops = append(ops, AlterColumnOp{Kind: AlterColumnDropSequence, Sequence: seq})
			}
		} else {
			ops = append(ops, AlterColumnOp{Kind: AlterColumnAddSequence})
		}
	}

	if setType {
		ops = append(ops, AlterColumnOp{Kind: AlterColumnSetType})
	}

	return ops
}

// soleBackingSequence returns the name of the sequence feeding the column's
// default when no other column in the snapshot draws from it.
func soleBackingSequence(column schema.ColumnWalker) (string, bool) {
	d := column.Default()
	if d == nil || d.Kind != schema.DefaultSequence || d.Sequence == "" {
		return "", false
	}
	for i := range column.Schema.Columns {
		other := column.Schema.WalkColumn(schema.ColumnID(i))
		if other.ID == column.ID {
			continue
		}
		od := other.Default()
		if od != nil && od.Kind == schema.DefaultSequence && od.Sequence == d.Sequence {
			return "", false
		}
	}
	return d.Sequence, true
}
