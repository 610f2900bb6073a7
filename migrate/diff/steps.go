// Package diff computes the migration steps between two schema snapshots.
// Steps form a closed vocabulary: each one references entities by id into the
// previous or next snapshot, never by copied data, so renderers resolve every
// detail against the snapshots at rendering time.
package diff

import (
	"fmt"

	"github.com/sqlmorph/sqlmorph/schema"
)

// Step is one migration step. The concrete types below are the full set.
type Step interface {
	// rank is the position of the step's class in the global execution
	// order. Steps are stable-sorted by rank, so creation happens before
	// use and drops happen after the last use.
	rank() int

	// Describe returns a short human-readable summary resolved against the
	// snapshots.
	Describe(schemas schema.Schemas) string
}

// Execution order of step classes. Within a class, the differ's emission
// order (sorted by name) is preserved by the stable sort.
const (
	rankCreateNamespace = iota
	rankDropExtension
	rankCreateExtension
	rankAlterExtension
	rankAlterSequence
	rankDropView
	rankCreateEnum
	rankAlterEnum
	rankCreateSequence
	rankDropForeignKey
	rankDropIndex
	rankAlterTable
	rankDropTable
	rankDropEnum
	rankDropSequence
	rankCreateTable
	rankRedefineTables
	rankCreateIndex
	rankRenameForeignKey
	rankAddForeignKey
	rankRenameIndex
)

// CreateNamespace creates a schema namespace present only in the next
// snapshot.
type CreateNamespace struct {
	Namespace schema.NamespaceID
}

func (CreateNamespace) rank() int { return rankCreateNamespace }

func (s CreateNamespace) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("create namespace %q", schemas.Next.WalkNamespace(s.Namespace).Name())
}

// CreateExtension installs a database extension.
type CreateExtension struct {
	Extension schema.ExtensionID
}

func (CreateExtension) rank() int { return rankCreateExtension }

func (s CreateExtension) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("create extension %q", schemas.Next.WalkExtension(s.Extension).Name())
}

// DropExtension removes a database extension.
type DropExtension struct {
	Extension schema.ExtensionID
}

func (DropExtension) rank() int { return rankDropExtension }

func (s DropExtension) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("drop extension %q", schemas.Previous.WalkExtension(s.Extension).Name())
}

// ExtensionChange flags what changed on an extension surviving the diff.
type ExtensionChange uint8

const (
	ExtensionChangedVersion ExtensionChange = 1 << iota
	ExtensionChangedSchema
)

// AlterExtension updates an extension's version or relocates it.
type AlterExtension struct {
	Extensions schema.Pair[schema.ExtensionID]
	Changes    ExtensionChange
}

func (AlterExtension) rank() int { return rankAlterExtension }

func (s AlterExtension) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("alter extension %q", schemas.Next.WalkExtension(s.Extensions.Next).Name())
}

// CreateEnum creates an enumerated type present only in the next snapshot.
type CreateEnum struct {
	Enum schema.EnumID
}

func (CreateEnum) rank() int { return rankCreateEnum }

func (s CreateEnum) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("create enum %q", schemas.Next.WalkEnum(s.Enum).Name())
}

// DropEnum removes an enumerated type present only in the previous snapshot.
type DropEnum struct {
	Enum schema.EnumID
}

func (DropEnum) rank() int { return rankDropEnum }

func (s DropEnum) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("drop enum %q", schemas.Previous.WalkEnum(s.Enum).Name())
}

// UsageAsDefault records a column of the previous snapshot whose default
// referenced a variant of an altered enum, paired with the surviving column
// in the next snapshot when one exists. Renderers that recreate the type use
// these to drop defaults before the cast and reinstate them afterwards.
type UsageAsDefault struct {
	Previous schema.ColumnID
	// Next is the surviving column, nil when the column or its table was
	// dropped.
	Next *schema.ColumnID
}

// AlterEnum adds or removes variants of an enumerated type.
type AlterEnum struct {
	Enums schema.Pair[schema.EnumID]
	// CreatedVariants and DroppedVariants preserve the next/previous
	// snapshot's declaration order.
	CreatedVariants []string
	DroppedVariants []string
	// PreviousUsagesAsDefault is populated only when variants were dropped.
	PreviousUsagesAsDefault []UsageAsDefault
}

func (AlterEnum) rank() int { return rankAlterEnum }

func (s AlterEnum) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("alter enum %q (+%d/-%d variants)",
		schemas.Next.WalkEnum(s.Enums.Next).Name(), len(s.CreatedVariants), len(s.DroppedVariants))
}

// CreateSequence creates a sequence present only in the next snapshot.
type CreateSequence struct {
	Sequence schema.SequenceID
}

func (CreateSequence) rank() int { return rankCreateSequence }

func (s CreateSequence) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("create sequence %q", schemas.Next.WalkSequence(s.Sequence).Name())
}

// DropSequence removes a sequence present only in the previous snapshot.
type DropSequence struct {
	Sequence schema.SequenceID
}

func (DropSequence) rank() int { return rankDropSequence }

func (s DropSequence) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("drop sequence %q", schemas.Previous.WalkSequence(s.Sequence).Name())
}

// SequenceChange flags which sequence options diverged.
type SequenceChange uint8

const (
	SequenceChangedMinValue SequenceChange = 1 << iota
	SequenceChangedMaxValue
	SequenceChangedIncrement
	SequenceChangedStart
	SequenceChangedCache
)

// AlterSequence updates the options of a surviving sequence.
type AlterSequence struct {
	Sequences schema.Pair[schema.SequenceID]
	Changes   SequenceChange
}

func (AlterSequence) rank() int { return rankAlterSequence }

func (s AlterSequence) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("alter sequence %q", schemas.Next.WalkSequence(s.Sequences.Next).Name())
}

// DropView removes a view present only in the previous snapshot.
type DropView struct {
	View schema.ViewID
}

func (DropView) rank() int { return rankDropView }

func (s DropView) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("drop view %q", schemas.Previous.WalkView(s.View).Name())
}

// CreateTable creates a table present only in the next snapshot, including
// its columns and primary key. Indexes and foreign keys are separate steps
// unless the dialect inlines them.
type CreateTable struct {
	Table schema.TableID
}

func (CreateTable) rank() int { return rankCreateTable }

func (s CreateTable) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("create table %q", schemas.Next.WalkTable(s.Table).Name())
}

// DropTable removes a table present only in the previous snapshot.
type DropTable struct {
	Table schema.TableID
}

func (DropTable) rank() int { return rankDropTable }

func (s DropTable) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("drop table %q", schemas.Previous.WalkTable(s.Table).Name())
}

// AlterTable applies in-place changes to a surviving table.
type AlterTable struct {
	Tables  schema.Pair[schema.TableID]
	Changes []TableChange
}

func (AlterTable) rank() int { return rankAlterTable }

func (s AlterTable) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("alter table %q (%d changes)", schemas.Next.WalkTable(s.Tables.Next).Name(), len(s.Changes))
}

// RedefineColumn pairs a surviving column of a redefined table with its
// accumulated changes.
type RedefineColumn struct {
	Columns    schema.Pair[schema.ColumnID]
	Changes    ColumnChanges
	TypeChange TypeChange
}

// RedefineTable rebuilds a table via a temporary copy because the dialect
// cannot express the accumulated changes as ALTER TABLE.
type RedefineTable struct {
	Tables         schema.Pair[schema.TableID]
	AddedColumns   []schema.ColumnID
	DroppedColumns []schema.ColumnID
	ColumnPairs    []RedefineColumn
	// DroppedPrimaryKey is set when the previous primary key does not
	// survive as-is.
	DroppedPrimaryKey bool
}

// RedefineTables groups every table redefined by one migration so renderers
// can bracket them in a single foreign-key-suspended section.
type RedefineTables struct {
	Tables []RedefineTable
}

func (RedefineTables) rank() int { return rankRedefineTables }

func (s RedefineTables) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("redefine %d tables", len(s.Tables))
}

// CreateIndex creates a secondary index of the next snapshot.
type CreateIndex struct {
	Index schema.IndexID
	// FromCreatedTable is set when the indexed table is itself created by
	// this migration.
	FromCreatedTable bool
}

func (CreateIndex) rank() int { return rankCreateIndex }

func (s CreateIndex) Describe(schemas schema.Schemas) string {
	idx := schemas.Next.WalkIndex(s.Index)
	return fmt.Sprintf("create index %q on %q", idx.Name(), idx.Table().Name())
}

// DropIndex removes a secondary index of the previous snapshot.
type DropIndex struct {
	Index schema.IndexID
}

func (DropIndex) rank() int { return rankDropIndex }

func (s DropIndex) Describe(schemas schema.Schemas) string {
	idx := schemas.Previous.WalkIndex(s.Index)
	return fmt.Sprintf("drop index %q on %q", idx.Name(), idx.Table().Name())
}

// RenameIndex renames an index whose structure is unchanged.
type RenameIndex struct {
	Indexes schema.Pair[schema.IndexID]
}

func (RenameIndex) rank() int { return rankRenameIndex }

func (s RenameIndex) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("rename index %q to %q",
		schemas.Previous.WalkIndex(s.Indexes.Previous).Name(),
		schemas.Next.WalkIndex(s.Indexes.Next).Name())
}

// AddForeignKey creates a foreign key of the next snapshot.
type AddForeignKey struct {
	ForeignKey schema.ForeignKeyID
}

func (AddForeignKey) rank() int { return rankAddForeignKey }

func (s AddForeignKey) Describe(schemas schema.Schemas) string {
	fk := schemas.Next.WalkForeignKey(s.ForeignKey)
	return fmt.Sprintf("add foreign key on %q referencing %q", fk.Table().Name(), fk.ReferencedTable().Name())
}

// DropForeignKey removes a foreign key of the previous snapshot.
type DropForeignKey struct {
	ForeignKey schema.ForeignKeyID
}

func (DropForeignKey) rank() int { return rankDropForeignKey }

func (s DropForeignKey) Describe(schemas schema.Schemas) string {
	fk := schemas.Previous.WalkForeignKey(s.ForeignKey)
	return fmt.Sprintf("drop foreign key %q on %q", fk.ConstraintName(), fk.Table().Name())
}

// RenameForeignKey renames a foreign key whose structure is unchanged.
type RenameForeignKey struct {
	ForeignKeys schema.Pair[schema.ForeignKeyID]
}

func (RenameForeignKey) rank() int { return rankRenameForeignKey }

func (s RenameForeignKey) Describe(schemas schema.Schemas) string {
	return fmt.Sprintf("rename foreign key %q to %q",
		schemas.Previous.WalkForeignKey(s.ForeignKeys.Previous).ConstraintName(),
		schemas.Next.WalkForeignKey(s.ForeignKeys.Next).ConstraintName())
}
