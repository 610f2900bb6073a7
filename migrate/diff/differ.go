package diff

import (
	"github.com/sqlmorph/sqlmorph/internal/debug"
	"github.com/sqlmorph/sqlmorph/migrate/diff/flavour"
	"github.com/sqlmorph/sqlmorph/schema"
)

// Steps computes the migration steps turning the previous snapshot into the
// next one, in execution order. Equal snapshots produce an empty slice, and
// diffing a snapshot against itself always produces nothing.
func Steps(previous, next *schema.Schema, f flavour.DifferFlavour) []Step {
	schemas := schema.Schemas{Previous: previous, Next: next}
	db := NewDifferDatabase(schemas, f)

	var steps []Step

	for _, ns := range db.CreatedNamespaces() {
		steps = append(steps, CreateNamespace{Namespace: ns})
	}

	steps = pushExtensionSteps(db, steps)

	if f.HasEnums() {
		for _, id := range db.CreatedEnums() {
			steps = append(steps, CreateEnum{Enum: id})
		}
		for _, id := range db.DroppedEnums() {
			steps = append(steps, DropEnum{Enum: id})
		}
		steps = pushEnumSteps(db, steps)
	}

	steps = pushSequenceSteps(db, steps)

	for _, id := range db.DroppedViews() {
		steps = append(steps, DropView{View: id})
	}

	steps = pushCreatedTableSteps(db, steps)
	steps = pushDroppedTableSteps(db, steps)
	steps = pushAlteredTableSteps(db, steps)

	sortSteps(steps)

	debug.Debug("computed migration steps", "provider", f.Provider(), "steps", len(steps))
	return steps
}

// pushExtensionSteps emits extension creation, removal and alteration.
func pushExtensionSteps(db *DifferDatabase, steps []Step) []Step {
	if !db.flavour.HasExtensions() {
		return steps
	}
	for _, id := range db.CreatedExtensions() {
		steps = append(steps, CreateExtension{Extension: id})
	}
	for _, id := range db.DroppedExtensions() {
		steps = append(steps, DropExtension{Extension: id})
	}
	for _, pair := range db.ExtensionPairs() {
		prev := db.schemas.Previous.Extensions[pair.Previous]
		next := db.schemas.Next.Extensions[pair.Next]
		var changes ExtensionChange
		if next.Version != "" && prev.Version != next.Version {
			changes |= ExtensionChangedVersion
		}
		if next.Schema != "" && prev.Schema != next.Schema {
			changes |= ExtensionChangedSchema
		}
		if changes != 0 {
			steps = append(steps, AlterExtension{Extensions: pair, Changes: changes})
		}
	}
	return steps
}

// pushSequenceSteps emits sequence creation, removal and option changes.
func pushSequenceSteps(db *DifferDatabase, steps []Step) []Step {
	if !db.flavour.HasSequences() {
		return steps
	}
	for _, id := range db.CreatedSequences() {
		steps = append(steps, CreateSequence{Sequence: id})
	}
	for _, id := range db.DroppedSequences() {
		steps = append(steps, DropSequence{Sequence: id})
	}
	for _, pair := range db.SequencePairs() {
		prev := db.schemas.Previous.Sequences[pair.Previous]
		next := db.schemas.Next.Sequences[pair.Next]
		var changes SequenceChange
		if prev.MinValue != next.MinValue {
			changes |= SequenceChangedMinValue
		}
		if prev.MaxValue != next.MaxValue {
			changes |= SequenceChangedMaxValue
		}
		if prev.Increment != next.Increment {
			changes |= SequenceChangedIncrement
		}
		if prev.Start != next.Start {
			changes |= SequenceChangedStart
		}
		if prev.Cache != next.Cache {
			changes |= SequenceChangedCache
		}
		if changes != 0 {
			steps = append(steps, AlterSequence{Sequences: pair, Changes: changes})
		}
	}
	return steps
}

// pushCreatedTableSteps emits a CreateTable per new table plus its indexes
// and, where the dialect does not inline them, its foreign keys.
func pushCreatedTableSteps(db *DifferDatabase, steps []Step) []Step {
	for _, id := range db.CreatedTables() {
		steps = append(steps, CreateTable{Table: id})
		table := db.schemas.Next.WalkTable(id)
		for _, idx := range table.Indexes() {
			steps = append(steps, CreateIndex{Index: idx.ID, FromCreatedTable: true})
		}
		if db.flavour.PushForeignKeysFromCreatedTables() {
			for _, fk := range table.ForeignKeys() {
				steps = append(steps, AddForeignKey{ForeignKey: fk.ID})
			}
		}
	}
	return steps
}

// pushDroppedTableSteps emits a DropTable per removed table plus explicit
// drops of the table's own foreign keys, so mutually referencing tables can
// be removed in any order. Keys referencing a dropped table from a surviving
// table fall out of that table's pair diff.
func pushDroppedTableSteps(db *DifferDatabase, steps []Step) []Step {
	for _, id := range db.DroppedTables() {
		steps = append(steps, DropTable{Table: id})
		for _, fk := range db.schemas.Previous.WalkTable(id).ForeignKeys() {
			steps = append(steps, DropForeignKey{ForeignKey: fk.ID})
		}
	}
	return steps
}

// pushAlteredTableSteps diffs each surviving table pair and emits either an
// AlterTable with index and foreign key steps, or folds the pair into one
// RedefineTables step when the dialect cannot alter it in place.
func pushAlteredTableSteps(db *DifferDatabase, steps []Step) []Step {
	var redefined []RedefineTable

	for _, tables := range db.TablePairs() {
		td := diffTable(db, tables)

		if db.flavour.ShouldRedefineTable(td.causes) {
			db.MarkTableForRedefinition(tables)
			redefined = append(redefined, td.redefinition(db))
			continue
		}

		if len(td.changes) > 0 {
			steps = append(steps, AlterTable{Tables: tables, Changes: td.changes})
		}
		for _, id := range td.droppedIndexes {
			steps = append(steps, DropIndex{Index: id})
		}
		for _, id := range td.createdIndexes {
			steps = append(steps, CreateIndex{Index: id})
		}
		for _, pair := range td.renamedIndexes {
			steps = append(steps, RenameIndex{Indexes: pair})
		}
		for _, id := range td.droppedForeignKeys {
			steps = append(steps, DropForeignKey{ForeignKey: id})
		}
		for _, id := range td.addedForeignKeys {
			steps = append(steps, AddForeignKey{ForeignKey: id})
		}
		for _, pair := range td.renamedForeignKeys {
			steps = append(steps, RenameForeignKey{ForeignKeys: pair})
		}
	}

	if len(redefined) > 0 {
		steps = append(steps, RedefineTables{Tables: redefined})
	}
	return steps
}
