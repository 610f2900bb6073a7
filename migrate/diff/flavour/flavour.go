// Package flavour provides provider-specific differ logic.
package flavour

import (
	"strconv"
	"strings"

	"github.com/sqlmorph/sqlmorph/schema"
)

// TypeChange classifies how a column retype can be executed on a dialect.
type TypeChange int

const (
	// TypeChangeNone means the types are equivalent.
	TypeChangeNone TypeChange = iota
	// SafeCast means the engine converts without possible data loss.
	SafeCast
	// RiskyCast means the engine converts but values may be truncated or
	// coerced.
	RiskyCast
	// NotCastable means the engine cannot convert in place. The column is
	// dropped and recreated.
	NotCastable
)

func (t TypeChange) String() string {
	switch t {
	case TypeChangeNone:
		return "none"
	case SafeCast:
		return "safe"
	case RiskyCast:
		return "risky"
	case NotCastable:
		return "not castable"
	}
	return "unknown"
}

// RedefineCause flags why a table might need to be rebuilt instead of
// altered in place. The differ accumulates causes per table pair and asks the
// flavour whether they force a redefinition.
type RedefineCause uint8

const (
	// CauseDroppedColumn is set when a column was removed.
	CauseDroppedColumn RedefineCause = 1 << iota
	// CauseAlteredColumn is set when any surviving column changed.
	CauseAlteredColumn
	// CauseNotCastableColumn is set when a retype was classified NotCastable.
	CauseNotCastableColumn
	// CauseNotCastablePrimaryKeyColumn is set when a NotCastable retype hit
	// a primary key column.
	CauseNotCastablePrimaryKeyColumn
	// CauseChangedPrimaryKey is set when the primary key was created,
	// dropped or changed columns.
	CauseChangedPrimaryKey
	// CauseChangedAutoIncrement is set when a column gained or lost
	// auto-increment.
	CauseChangedAutoIncrement
)

// DifferFlavour provides provider-specific decisions during diffing.
type DifferFlavour interface {
	// Provider returns the provider name the flavour serves.
	Provider() string

	// ColumnTypeChange classifies the retype between two surviving columns,
	// or TypeChangeNone when the types are equivalent.
	ColumnTypeChange(columns schema.Pair[schema.ColumnWalker]) TypeChange

	// ShouldRedefineTable decides whether the accumulated causes force a
	// table rebuild on this dialect.
	ShouldRedefineTable(causes RedefineCause) bool

	// CanRenameIndex returns whether index renames are supported.
	CanRenameIndex() bool

	// CanRenameForeignKey returns whether foreign key renames are supported.
	CanRenameForeignKey() bool

	// IndexesMatch checks if two indexes match by structure, ignoring names.
	IndexesMatch(prev, next schema.IndexWalker) bool

	// ForeignKeysMatch checks if two foreign keys match by structure,
	// ignoring constraint names.
	ForeignKeysMatch(prev, next schema.ForeignKeyWalker) bool

	// LowerCasesTableNames returns true if table names compare
	// case-insensitively on this dialect.
	LowerCasesTableNames() bool

	// TableShouldBeIgnored returns true if a table is excluded from diffing.
	TableShouldBeIgnored(tableName string) bool

	// HasEnums returns whether the dialect has named enumerated types.
	HasEnums() bool

	// HasSequences returns whether the dialect has sequence objects.
	HasSequences() bool

	// HasExtensions returns whether the dialect has installable extensions.
	HasExtensions() bool

	// HasNamespaces returns whether the dialect has schema namespaces.
	HasNamespaces() bool

	// PushForeignKeysFromCreatedTables returns whether foreign keys of
	// newly created tables become separate steps, or are inlined in the
	// CREATE TABLE.
	PushForeignKeysFromCreatedTables() bool
}

// ForProvider returns the flavour serving the given provider name.
func ForProvider(provider string) (DifferFlavour, bool) {
	switch provider {
	case "postgresql", "postgres":
		return NewPostgresFlavour(), true
	case "cockroachdb":
		return NewCockroachFlavour(), true
	case "mysql":
		return NewMySQLFlavour(), true
	case "sqlite":
		return NewSQLiteFlavour(), true
	case "sqlserver", "mssql":
		return NewMSSQLFlavour(), true
	}
	return nil, false
}

// indexesMatch is the structural index comparison shared by all flavours.
func indexesMatch(prev, next schema.IndexWalker) bool {
	if prev.IsUnique() != next.IsUnique() {
		return false
	}
	prevCols, nextCols := prev.ColumnNames(), next.ColumnNames()
	if len(prevCols) != len(nextCols) {
		return false
	}
	for i, col := range prevCols {
		if col != nextCols[i] {
			return false
		}
	}
	return true
}

// foreignKeysMatch is the structural foreign key comparison shared by all
// flavours.
func foreignKeysMatch(prev, next schema.ForeignKeyWalker) bool {
	if prev.ReferencedTable().Name() != next.ReferencedTable().Name() {
		return false
	}
	if prev.OnDelete() != next.OnDelete() || prev.OnUpdate() != next.OnUpdate() {
		return false
	}
	prevCols, nextCols := prev.ConstrainedColumns(), next.ConstrainedColumns()
	if len(prevCols) != len(nextCols) {
		return false
	}
	for i := range prevCols {
		if prevCols[i].Name() != nextCols[i].Name() {
			return false
		}
	}
	prevRefs, nextRefs := prev.ReferencedColumns(), next.ReferencedColumns()
	if len(prevRefs) != len(nextRefs) {
		return false
	}
	for i := range prevRefs {
		if prevRefs[i].Name() != nextRefs[i].Name() {
			return false
		}
	}
	return true
}

// columnTypesEquivalent reports whether two column types are the same, native
// text included.
func columnTypesEquivalent(prev, next schema.ColumnType) bool {
	if prev.Family != next.Family {
		return false
	}
	if prev.Family == schema.FamilyEnum && prev.Enum != next.Enum {
		// Resolved by name in enumTypesEquivalent; ids alone are not
		// comparable across snapshots.
		return false
	}
	return prev.Native == next.Native
}

// enumTypesEquivalent compares enum-typed columns by the referenced type's
// name, since ids are snapshot-local.
func enumTypesEquivalent(prev, next schema.ColumnWalker) bool {
	prevEnum, ok1 := prev.EnumType()
	nextEnum, ok2 := next.EnumType()
	if !ok1 || !ok2 {
		return false
	}
	return prevEnum.Name() == nextEnum.Name()
}

// enumVariantsEquivalent reports whether two enum-typed columns reference
// types with identical variant lists, order included.
func enumVariantsEquivalent(prev, next schema.ColumnWalker) bool {
	prevEnum, ok1 := prev.EnumType()
	nextEnum, ok2 := next.EnumType()
	if !ok1 || !ok2 {
		return false
	}
	prevVariants, nextVariants := prevEnum.Variants(), nextEnum.Variants()
	if len(prevVariants) != len(nextVariants) {
		return false
	}
	for i := range prevVariants {
		if prevVariants[i] != nextVariants[i] {
			return false
		}
	}
	return true
}

// familyCast is the baseline family-level cast matrix. Flavours refine it.
func familyCast(prev, next schema.Family) TypeChange {
	if prev == next {
		return TypeChangeNone
	}
	if prev == schema.FamilyUnsupported || next == schema.FamilyUnsupported {
		return NotCastable
	}
	// Everything casts to text.
	if next == schema.FamilyString {
		return SafeCast
	}
	switch prev {
	case schema.FamilyInt:
		switch next {
		case schema.FamilyBigInt, schema.FamilyDecimal, schema.FamilyFloat:
			return SafeCast
		}
	case schema.FamilyBigInt:
		switch next {
		case schema.FamilyInt, schema.FamilyFloat:
			return RiskyCast
		case schema.FamilyDecimal:
			return SafeCast
		}
	case schema.FamilyFloat:
		switch next {
		case schema.FamilyInt, schema.FamilyBigInt, schema.FamilyDecimal:
			return RiskyCast
		}
	case schema.FamilyDecimal:
		switch next {
		case schema.FamilyInt, schema.FamilyBigInt, schema.FamilyFloat:
			return RiskyCast
		}
	}
	return NotCastable
}

// nativeCast refines a same-family retype by comparing the native type
// texts, using trailing length arguments when both parse ("VARCHAR(20)" ->
// "VARCHAR(40)" widens, the reverse may truncate).
func nativeCast(prev, next string) TypeChange {
	if prev == next {
		return TypeChangeNone
	}
	prevBase, prevLen, okPrev := splitNativeType(prev)
	nextBase, nextLen, okNext := splitNativeType(next)
	if okPrev && okNext && strings.EqualFold(prevBase, nextBase) {
		if nextLen >= prevLen {
			return SafeCast
		}
		return RiskyCast
	}
	return RiskyCast
}

// splitNativeType splits "VARCHAR(191)" into base and length.
func splitNativeType(t string) (base string, length int, ok bool) {
	open := strings.IndexByte(t, '(')
	if open < 0 || !strings.HasSuffix(t, ")") {
		return "", 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(t[open+1 : len(t)-1]))
	if err != nil {
		return "", 0, false
	}
	return strings.TrimSpace(t[:open]), n, true
}
