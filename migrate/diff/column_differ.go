package diff

import (
	"bytes"

	"github.com/sqlmorph/sqlmorph/migrate/diff/flavour"
	"github.com/sqlmorph/sqlmorph/schema"
)

// compareColumns computes the change bitmask and retype classification for a
// column surviving the diff.
func compareColumns(f flavour.DifferFlavour, columns schema.Pair[schema.ColumnWalker]) (ColumnChanges, TypeChange) {
	var changes ColumnChanges

	if !defaultsEquivalent(columns.Previous.Default(), columns.Next.Default()) {
		changes |= ChangedDefault
	}
	if columns.Previous.Arity() != columns.Next.Arity() {
		changes |= ChangedArity
	}
	typeChange := f.ColumnTypeChange(columns)
	if typeChange != flavour.TypeChangeNone {
		changes |= ChangedType
	}
	if columns.Previous.IsAutoIncrement() != columns.Next.IsAutoIncrement() {
		changes |= ChangedAutoIncrement
	}

	return changes, typeChange
}

// defaultsEquivalent compares two column defaults. Sequence-backed defaults
// compare equal regardless of the sequence name: renaming the backing
// sequence is not a migration.
func defaultsEquivalent(prev, next *schema.Default) bool {
	if prev == nil || next == nil {
		return prev == next
	}
	if prev.Kind != next.Kind {
		return false
	}
	switch prev.Kind {
	case schema.DefaultValue:
		return valuesEquivalent(prev.Value, next.Value)
	case schema.DefaultDBGenerated:
		return prev.Expr == next.Expr
	default:
		return true
	}
}

// valuesEquivalent compares two literal values structurally.
func valuesEquivalent(prev, next schema.Value) bool {
	if prev.Kind != next.Kind {
		return false
	}
	switch prev.Kind {
	case schema.ValueInt:
		return prev.Int == next.Int
	case schema.ValueFloat:
		return prev.Float == next.Float
	case schema.ValueBool:
		return prev.Bool == next.Bool
	case schema.ValueBytes:
		return bytes.Equal(prev.Bytes, next.Bytes)
	case schema.ValueList:
		if len(prev.List) != len(next.List) {
			return false
		}
		for i := range prev.List {
			if !valuesEquivalent(prev.List[i], next.List[i]) {
				return false
			}
		}
		return true
	default:
		return prev.Str == next.Str
	}
}
