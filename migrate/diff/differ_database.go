package diff

import (
	"sort"
	"strings"

	"github.com/sqlmorph/sqlmorph/migrate/diff/flavour"
	"github.com/sqlmorph/sqlmorph/schema"
)

// absent marks the missing side of an id pair.
const absent = -1

// idPair tracks one named entity across the two snapshots. Either side can
// be absent.
type idPair struct {
	previous int
	next     int
}

func (p idPair) hasBoth() bool     { return p.previous != absent && p.next != absent }
func (p idPair) createdOnly() bool { return p.previous == absent && p.next != absent }
func (p idPair) droppedOnly() bool { return p.previous != absent && p.next == absent }

// columnEntry is one column tracked across a surviving table pair.
type columnEntry struct {
	ids        idPair
	changes    ColumnChanges
	typeChange TypeChange
}

// ColumnDiff is one surviving column of a table pair together with its
// accumulated changes.
type ColumnDiff struct {
	Columns    schema.Pair[schema.ColumnID]
	Changes    ColumnChanges
	TypeChange TypeChange
}

// DifferDatabase matches the entities of two snapshots by name and caches
// per-column change bitmasks. All accessors iterate in sorted name order so
// the emitted steps are deterministic.
type DifferDatabase struct {
	flavour flavour.DifferFlavour
	schemas schema.Schemas

	tableKeys []string
	tables    map[string]idPair

	// Per surviving table key: sorted column names and their entries.
	columnNames map[string][]string
	columns     map[string]map[string]columnEntry

	enumNames      []string
	enums          map[string]idPair
	sequenceNames  []string
	sequences      map[string]idPair
	extensionNames []string
	extensions     map[string]idPair
	namespaceNames []string
	namespaces     map[string]idPair
	viewNames      []string
	views          map[string]idPair

	tablesToRedefine map[string]bool
}

// NewDifferDatabase builds the name-matched view of two snapshots.
func NewDifferDatabase(schemas schema.Schemas, f flavour.DifferFlavour) *DifferDatabase {
	db := &DifferDatabase{
		flavour:          f,
		schemas:          schemas,
		tables:           make(map[string]idPair),
		columnNames:      make(map[string][]string),
		columns:          make(map[string]map[string]columnEntry),
		enums:            make(map[string]idPair),
		sequences:        make(map[string]idPair),
		extensions:       make(map[string]idPair),
		namespaces:       make(map[string]idPair),
		views:            make(map[string]idPair),
		tablesToRedefine: make(map[string]bool),
	}

	db.buildNamespaces()
	db.buildTables()
	db.buildColumns()
	db.buildEnums()
	db.buildSequences()
	db.buildExtensions()
	db.buildViews()

	return db
}

// Schemas returns the diffed snapshot pair.
func (db *DifferDatabase) Schemas() schema.Schemas { return db.schemas }

// Flavour returns the dialect flavour driving the diff.
func (db *DifferDatabase) Flavour() flavour.DifferFlavour { return db.flavour }

// tableKey is the identity under which tables of both snapshots are matched:
// the optional namespace plus the (possibly case-folded) table name.
func (db *DifferDatabase) tableKey(t schema.TableWalker) string {
	name := t.Name()
	if db.flavour.LowerCasesTableNames() {
		name = strings.ToLower(name)
	}
	if ns, ok := t.NamespaceName(); ok {
		return ns + "." + name
	}
	return name
}

func (db *DifferDatabase) enumKey(e schema.EnumWalker) string {
	if ns, ok := e.NamespaceName(); ok {
		return ns + "." + e.Name()
	}
	return e.Name()
}

func (db *DifferDatabase) buildTables() {
	for _, t := range db.schemas.Previous.WalkTables() {
		key := db.tableKey(t)
		if db.flavour.TableShouldBeIgnored(t.Name()) {
			continue
		}
		db.tables[key] = idPair{previous: int(t.ID), next: absent}
	}
	for _, t := range db.schemas.Next.WalkTables() {
		key := db.tableKey(t)
		if db.flavour.TableShouldBeIgnored(t.Name()) {
			continue
		}
		pair, seen := db.tables[key]
		if !seen {
			pair = idPair{previous: absent}
		}
		pair.next = int(t.ID)
		db.tables[key] = pair
	}
	db.tableKeys = sortedKeys(db.tables)
}

func (db *DifferDatabase) buildColumns() {
	for key, pair := range db.tables {
		if !pair.hasBoth() {
			continue
		}
		prevTable := db.schemas.Previous.WalkTable(schema.TableID(pair.previous))
		nextTable := db.schemas.Next.WalkTable(schema.TableID(pair.next))

		cols := make(map[string]columnEntry)
		for _, c := range prevTable.Columns() {
			cols[c.Name()] = columnEntry{ids: idPair{previous: int(c.ID), next: absent}}
		}
		for _, c := range nextTable.Columns() {
			entry, seen := cols[c.Name()]
			if !seen {
				entry = columnEntry{ids: idPair{previous: absent}}
			}
			entry.ids.next = int(c.ID)
			cols[c.Name()] = entry
		}
		for name, entry := range cols {
			if !entry.ids.hasBoth() {
				continue
			}
			columns := schema.ColumnPair(db.schemas, schema.Pair[schema.ColumnID]{
				Previous: schema.ColumnID(entry.ids.previous),
				Next:     schema.ColumnID(entry.ids.next),
			})
			entry.changes, entry.typeChange = compareColumns(db.flavour, columns)
			cols[name] = entry
		}

		db.columns[key] = cols
		db.columnNames[key] = sortedKeys(cols)
	}
}

func (db *DifferDatabase) buildEnums() {
	if !db.flavour.HasEnums() {
		return
	}
	for _, e := range db.schemas.Previous.WalkEnums() {
		db.enums[db.enumKey(e)] = idPair{previous: int(e.ID), next: absent}
	}
	for _, e := range db.schemas.Next.WalkEnums() {
		key := db.enumKey(e)
		pair, seen := db.enums[key]
		if !seen {
			pair = idPair{previous: absent}
		}
		pair.next = int(e.ID)
		db.enums[key] = pair
	}
	db.enumNames = sortedKeys(db.enums)
}

func (db *DifferDatabase) buildSequences() {
	if !db.flavour.HasSequences() {
		return
	}
	for i := range db.schemas.Previous.Sequences {
		db.sequences[db.schemas.Previous.Sequences[i].Name] = idPair{previous: i, next: absent}
	}
	for i := range db.schemas.Next.Sequences {
		name := db.schemas.Next.Sequences[i].Name
		pair, seen := db.sequences[name]
		if !seen {
			pair = idPair{previous: absent}
		}
		pair.next = i
		db.sequences[name] = pair
	}
	db.sequenceNames = sortedKeys(db.sequences)
}

func (db *DifferDatabase) buildExtensions() {
	if !db.flavour.HasExtensions() {
		return
	}
	for i := range db.schemas.Previous.Extensions {
		db.extensions[db.schemas.Previous.Extensions[i].Name] = idPair{previous: i, next: absent}
	}
	for i := range db.schemas.Next.Extensions {
		name := db.schemas.Next.Extensions[i].Name
		pair, seen := db.extensions[name]
		if !seen {
			pair = idPair{previous: absent}
		}
		pair.next = i
		db.extensions[name] = pair
	}
	db.extensionNames = sortedKeys(db.extensions)
}

func (db *DifferDatabase) buildNamespaces() {
	if !db.flavour.HasNamespaces() {
		return
	}
	for i := range db.schemas.Previous.Namespaces {
		db.namespaces[db.schemas.Previous.Namespaces[i].Name] = idPair{previous: i, next: absent}
	}
	for i := range db.schemas.Next.Namespaces {
		name := db.schemas.Next.Namespaces[i].Name
		pair, seen := db.namespaces[name]
		if !seen {
			pair = idPair{previous: absent}
		}
		pair.next = i
		db.namespaces[name] = pair
	}
	db.namespaceNames = sortedKeys(db.namespaces)
}

func (db *DifferDatabase) buildViews() {
	for i := range db.schemas.Previous.Views {
		db.views[db.schemas.Previous.Views[i].Name] = idPair{previous: i, next: absent}
	}
	for i := range db.schemas.Next.Views {
		name := db.schemas.Next.Views[i].Name
		pair, seen := db.views[name]
		if !seen {
			pair = idPair{previous: absent}
		}
		pair.next = i
		db.views[name] = pair
	}
	db.viewNames = sortedKeys(db.views)
}

// CreatedTables returns tables present only in the next snapshot, sorted by
// name.
func (db *DifferDatabase) CreatedTables() []schema.TableID {
	var out []schema.TableID
	for _, key := range db.tableKeys {
		if pair := db.tables[key]; pair.createdOnly() {
			out = append(out, schema.TableID(pair.next))
		}
	}
	return out
}

// DroppedTables returns tables present only in the previous snapshot, sorted
// by name.
func (db *DifferDatabase) DroppedTables() []schema.TableID {
	var out []schema.TableID
	for _, key := range db.tableKeys {
		if pair := db.tables[key]; pair.droppedOnly() {
			out = append(out, schema.TableID(pair.previous))
		}
	}
	return out
}

// TablePairs returns tables present in both snapshots, sorted by name.
func (db *DifferDatabase) TablePairs() []schema.Pair[schema.TableID] {
	var out []schema.Pair[schema.TableID]
	for _, key := range db.tableKeys {
		if pair := db.tables[key]; pair.hasBoth() {
			out = append(out, schema.Pair[schema.TableID]{
				Previous: schema.TableID(pair.previous),
				Next:     schema.TableID(pair.next),
			})
		}
	}
	return out
}

// CreatedColumns returns columns added to a surviving table, sorted by name.
func (db *DifferDatabase) CreatedColumns(tables schema.Pair[schema.TableID]) []schema.ColumnID {
	key := db.tableKey(db.schemas.Next.WalkTable(tables.Next))
	var out []schema.ColumnID
	for _, name := range db.columnNames[key] {
		if entry := db.columns[key][name]; entry.ids.createdOnly() {
			out = append(out, schema.ColumnID(entry.ids.next))
		}
	}
	return out
}

// DroppedColumns returns columns removed from a surviving table, sorted by
// name.
func (db *DifferDatabase) DroppedColumns(tables schema.Pair[schema.TableID]) []schema.ColumnID {
	key := db.tableKey(db.schemas.Next.WalkTable(tables.Next))
	var out []schema.ColumnID
	for _, name := range db.columnNames[key] {
		if entry := db.columns[key][name]; entry.ids.droppedOnly() {
			out = append(out, schema.ColumnID(entry.ids.previous))
		}
	}
	return out
}

// ColumnDiffs returns the surviving columns of a table pair with their
// changes, sorted by name.
func (db *DifferDatabase) ColumnDiffs(tables schema.Pair[schema.TableID]) []ColumnDiff {
	key := db.tableKey(db.schemas.Next.WalkTable(tables.Next))
	var out []ColumnDiff
	for _, name := range db.columnNames[key] {
		entry := db.columns[key][name]
		if !entry.ids.hasBoth() {
			continue
		}
		out = append(out, ColumnDiff{
			Columns: schema.Pair[schema.ColumnID]{
				Previous: schema.ColumnID(entry.ids.previous),
				Next:     schema.ColumnID(entry.ids.next),
			},
			Changes:    entry.changes,
			TypeChange: entry.typeChange,
		})
	}
	return out
}

// CreatedEnums returns enums present only in the next snapshot, sorted by
// name.
func (db *DifferDatabase) CreatedEnums() []schema.EnumID {
	var out []schema.EnumID
	for _, name := range db.enumNames {
		if pair := db.enums[name]; pair.createdOnly() {
			out = append(out, schema.EnumID(pair.next))
		}
	}
	return out
}

// DroppedEnums returns enums present only in the previous snapshot, sorted
// by name.
func (db *DifferDatabase) DroppedEnums() []schema.EnumID {
	var out []schema.EnumID
	for _, name := range db.enumNames {
		if pair := db.enums[name]; pair.droppedOnly() {
			out = append(out, schema.EnumID(pair.previous))
		}
	}
	return out
}

// EnumPairs returns enums present in both snapshots, sorted by name.
func (db *DifferDatabase) EnumPairs() []schema.Pair[schema.EnumID] {
	var out []schema.Pair[schema.EnumID]
	for _, name := range db.enumNames {
		if pair := db.enums[name]; pair.hasBoth() {
			out = append(out, schema.Pair[schema.EnumID]{
				Previous: schema.EnumID(pair.previous),
				Next:     schema.EnumID(pair.next),
			})
		}
	}
	return out
}

// CreatedSequences returns sequences present only in the next snapshot.
func (db *DifferDatabase) CreatedSequences() []schema.SequenceID {
	var out []schema.SequenceID
	for _, name := range db.sequenceNames {
		if pair := db.sequences[name]; pair.createdOnly() {
			out = append(out, schema.SequenceID(pair.next))
		}
	}
	return out
}

// DroppedSequences returns sequences present only in the previous snapshot.
func (db *DifferDatabase) DroppedSequences() []schema.SequenceID {
	var out []schema.SequenceID
	for _, name := range db.sequenceNames {
		if pair := db.sequences[name]; pair.droppedOnly() {
			out = append(out, schema.SequenceID(pair.previous))
		}
	}
	return out
}

// SequencePairs returns sequences present in both snapshots.
func (db *DifferDatabase) SequencePairs() []schema.Pair[schema.SequenceID] {
	var out []schema.Pair[schema.SequenceID]
	for _, name := range db.sequenceNames {
		if pair := db.sequences[name]; pair.hasBoth() {
			out = append(out, schema.Pair[schema.SequenceID]{
				Previous: schema.SequenceID(pair.previous),
				Next:     schema.SequenceID(pair.next),
			})
		}
	}
	return out
}

// CreatedExtensions returns extensions present only in the next snapshot.
func (db *DifferDatabase) CreatedExtensions() []schema.ExtensionID {
	var out []schema.ExtensionID
	for _, name := range db.extensionNames {
		if pair := db.extensions[name]; pair.createdOnly() {
			out = append(out, schema.ExtensionID(pair.next))
		}
	}
	return out
}

// DroppedExtensions returns extensions present only in the previous snapshot.
func (db *DifferDatabase) DroppedExtensions() []schema.ExtensionID {
	var out []schema.ExtensionID
	for _, name := range db.extensionNames {
		if pair := db.extensions[name]; pair.droppedOnly() {
			out = append(out, schema.ExtensionID(pair.previous))
		}
	}
	return out
}

// ExtensionPairs returns extensions present in both snapshots.
func (db *DifferDatabase) ExtensionPairs() []schema.Pair[schema.ExtensionID] {
	var out []schema.Pair[schema.ExtensionID]
	for _, name := range db.extensionNames {
		if pair := db.extensions[name]; pair.hasBoth() {
			out = append(out, schema.Pair[schema.ExtensionID]{
				Previous: schema.ExtensionID(pair.previous),
				Next:     schema.ExtensionID(pair.next),
			})
		}
	}
	return out
}

// CreatedNamespaces returns namespaces present only in the next snapshot.
func (db *DifferDatabase) CreatedNamespaces() []schema.NamespaceID {
	var out []schema.NamespaceID
	for _, name := range db.namespaceNames {
		if pair := db.namespaces[name]; pair.createdOnly() {
			out = append(out, schema.NamespaceID(pair.next))
		}
	}
	return out
}

// DroppedViews returns views present only in the previous snapshot.
func (db *DifferDatabase) DroppedViews() []schema.ViewID {
	var out []schema.ViewID
	for _, name := range db.viewNames {
		if pair := db.views[name]; pair.droppedOnly() {
			out = append(out, schema.ViewID(pair.previous))
		}
	}
	return out
}

// survivingColumn maps a column of the previous snapshot to its namesake in
// the next snapshot, when both the table and the column survive.
func (db *DifferDatabase) survivingColumn(prev schema.ColumnWalker) (schema.ColumnID, bool) {
	key := db.tableKey(prev.Table())
	entry, ok := db.columns[key][prev.Name()]
	if !ok || entry.ids.next == absent {
		return 0, false
	}
	return schema.ColumnID(entry.ids.next), true
}

// MarkTableForRedefinition records that a surviving table must be rebuilt
// instead of altered.
func (db *DifferDatabase) MarkTableForRedefinition(tables schema.Pair[schema.TableID]) {
	db.tablesToRedefine[db.tableKey(db.schemas.Next.WalkTable(tables.Next))] = true
}

// TableIsRedefined reports whether a surviving table is marked for rebuild.
func (db *DifferDatabase) TableIsRedefined(tables schema.Pair[schema.TableID]) bool {
	return db.tablesToRedefine[db.tableKey(db.schemas.Next.WalkTable(tables.Next))]
}

// sortedKeys returns the map's keys in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
