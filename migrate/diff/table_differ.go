package diff

import (
	"sort"

	"github.com/sqlmorph/sqlmorph/migrate/diff/flavour"
	"github.com/sqlmorph/sqlmorph/schema"
)

// tableDiff is everything the differ derives from one surviving table pair
// before deciding between ALTER TABLE and a full redefinition.
type tableDiff struct {
	tables  schema.Pair[schema.TableID]
	changes []TableChange
	causes  flavour.RedefineCause

	createdIndexes []schema.IndexID
	droppedIndexes []schema.IndexID
	renamedIndexes []schema.Pair[schema.IndexID]

	addedForeignKeys   []schema.ForeignKeyID
	droppedForeignKeys []schema.ForeignKeyID
	renamedForeignKeys []schema.Pair[schema.ForeignKeyID]
}

// diffTable computes the table-level changes for one surviving pair.
func diffTable(db *DifferDatabase, tables schema.Pair[schema.TableID]) tableDiff {
	td := tableDiff{tables: tables}
	walkers := schema.TablePair(db.schemas, tables)

	td.diffPrimaryKey(walkers)
	td.diffColumns(db, tables, walkers)
	td.diffIndexes(db.flavour, walkers)
	td.diffForeignKeys(db.flavour, walkers)

	return td
}

// diffPrimaryKey emits primary key changes. Drops come first and adds go
// last so the constraint never references a column mid-change.
func (td *tableDiff) diffPrimaryKey(walkers schema.Pair[schema.TableWalker]) {
	prev, next := walkers.Previous.PrimaryKey(), walkers.Next.PrimaryKey()
	switch {
	case prev == nil && next == nil:
	case prev == nil:
		td.changes = append(td.changes, AddPrimaryKey{})
		td.causes |= flavour.CauseChangedPrimaryKey
	case next == nil:
		td.changes = append(td.changes, DropPrimaryKey{})
		td.causes |= flavour.CauseChangedPrimaryKey
	default:
		if !primaryKeyColumnsMatch(walkers) {
			td.changes = append(td.changes, DropPrimaryKey{}, AddPrimaryKey{})
			td.causes |= flavour.CauseChangedPrimaryKey
		} else if prev.Name != next.Name && prev.Name != "" && next.Name != "" {
			td.changes = append(td.changes, RenamePrimaryKey{})
		}
	}
}

func primaryKeyColumnsMatch(walkers schema.Pair[schema.TableWalker]) bool {
	prev := walkers.Previous.PrimaryKeyColumns()
	next := walkers.Next.PrimaryKeyColumns()
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if prev[i].Name() != next[i].Name() {
			return false
		}
	}
	return true
}

// diffColumns emits column drops, alterations and adds, in that order.
func (td *tableDiff) diffColumns(db *DifferDatabase, tables schema.Pair[schema.TableID], walkers schema.Pair[schema.TableWalker]) {
	var changes []TableChange

	for _, dropped := range db.DroppedColumns(tables) {
		changes = append(changes, DropColumn{Column: dropped})
		td.causes |= flavour.CauseDroppedColumn
	}

	for _, d := range db.ColumnDiffs(tables) {
		if !d.Changes.DiffersInSomething() {
			continue
		}
		td.causes |= flavour.CauseAlteredColumn
		if d.Changes.AutoIncrementChanged() {
			td.causes |= flavour.CauseChangedAutoIncrement
		}
		if d.TypeChange == flavour.NotCastable {
			td.causes |= flavour.CauseNotCastableColumn
			if walkers.Previous.Schema.WalkColumn(d.Columns.Previous).IsSinglePrimaryKey() {
				td.causes |= flavour.CauseNotCastablePrimaryKeyColumn
			}
			changes = append(changes, DropAndRecreateColumn{Columns: d.Columns, Changes: d.Changes})
			continue
		}
		changes = append(changes, AlterColumn{Columns: d.Columns, Changes: d.Changes, TypeChange: d.TypeChange})
	}

	for _, created := range db.CreatedColumns(tables) {
		changes = append(changes, AddColumn{Column: created})
	}

	// Column changes slot between primary key drops and adds.
	var head, tail []TableChange
	for _, c := range td.changes {
		if _, isAdd := c.(AddPrimaryKey); isAdd {
			tail = append(tail, c)
		} else {
			head = append(head, c)
		}
	}
	td.changes = append(append(head, changes...), tail...)
}

// diffIndexes matches indexes by name first, then pairs leftovers by
// structure to detect renames.
func (td *tableDiff) diffIndexes(f flavour.DifferFlavour, walkers schema.Pair[schema.TableWalker]) {
	prevByName := make(map[string]schema.IndexWalker)
	for _, idx := range walkers.Previous.Indexes() {
		prevByName[idx.Name()] = idx
	}
	nextByName := make(map[string]schema.IndexWalker)
	for _, idx := range walkers.Next.Indexes() {
		nextByName[idx.Name()] = idx
	}

	var droppedNames, createdNames []string
	for _, prev := range walkers.Previous.Indexes() {
		next, ok := nextByName[prev.Name()]
		if !ok {
			droppedNames = append(droppedNames, prev.Name())
			continue
		}
		if !f.IndexesMatch(prev, next) {
			td.droppedIndexes = append(td.droppedIndexes, prev.ID)
			td.createdIndexes = append(td.createdIndexes, next.ID)
		}
	}
	for _, next := range walkers.Next.Indexes() {
		if _, ok := prevByName[next.Name()]; !ok {
			createdNames = append(createdNames, next.Name())
		}
	}
	sort.Strings(droppedNames)
	sort.Strings(createdNames)

	renamed := make(map[string]bool)
	for _, droppedName := range droppedNames {
		prev := prevByName[droppedName]
		matched := false
		if f.CanRenameIndex() {
			for _, createdName := range createdNames {
				if renamed[createdName] {
					continue
				}
				next := nextByName[createdName]
				if f.IndexesMatch(prev, next) {
					td.renamedIndexes = append(td.renamedIndexes, schema.Pair[schema.IndexID]{Previous: prev.ID, Next: next.ID})
					renamed[createdName] = true
					matched = true
					break
				}
			}
		}
		if !matched {
			td.droppedIndexes = append(td.droppedIndexes, prev.ID)
		}
	}
	for _, createdName := range createdNames {
		if !renamed[createdName] {
			td.createdIndexes = append(td.createdIndexes, nextByName[createdName].ID)
		}
	}
}

// diffForeignKeys matches foreign keys by structure. Structural matches with
// diverging names become renames where supported; everything else is dropped
// or added.
func (td *tableDiff) diffForeignKeys(f flavour.DifferFlavour, walkers schema.Pair[schema.TableWalker]) {
	nextKeys := walkers.Next.ForeignKeys()
	matchedNext := make(map[schema.ForeignKeyID]bool)

	for _, prev := range walkers.Previous.ForeignKeys() {
		var match *schema.ForeignKeyWalker
		for i := range nextKeys {
			if matchedNext[nextKeys[i].ID] {
				continue
			}
			if f.ForeignKeysMatch(prev, nextKeys[i]) {
				match = &nextKeys[i]
				break
			}
		}
		if match == nil {
			td.droppedForeignKeys = append(td.droppedForeignKeys, prev.ID)
			continue
		}
		matchedNext[match.ID] = true
		if prev.ConstraintName() != match.ConstraintName() && f.CanRenameForeignKey() &&
			prev.ConstraintName() != "" && match.ConstraintName() != "" {
			td.renamedForeignKeys = append(td.renamedForeignKeys, schema.Pair[schema.ForeignKeyID]{
				Previous: prev.ID,
				Next:     match.ID,
			})
		}
	}
	for _, next := range nextKeys {
		if !matchedNext[next.ID] {
			td.addedForeignKeys = append(td.addedForeignKeys, next.ID)
		}
	}
}

// redefinition converts the accumulated diff into a RedefineTable payload.
func (td *tableDiff) redefinition(db *DifferDatabase) RedefineTable {
	rt := RedefineTable{
		Tables:         td.tables,
		AddedColumns:   db.CreatedColumns(td.tables),
		DroppedColumns: db.DroppedColumns(td.tables),
	}
	for _, d := range db.ColumnDiffs(td.tables) {
		rt.ColumnPairs = append(rt.ColumnPairs, RedefineColumn{
			Columns:    d.Columns,
			Changes:    d.Changes,
			TypeChange: d.TypeChange,
		})
	}
	rt.DroppedPrimaryKey = td.causes&flavour.CauseChangedPrimaryKey != 0
	return rt
}
