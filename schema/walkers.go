package schema

// Walkers are small value types bundling a snapshot with an id. They give
// ergonomic navigation (column -> table, index -> columns) without copying
// entity data, and are safe to pass around by value.

// TableWalker navigates one table of a snapshot.
type TableWalker struct {
	Schema *Schema
	ID     TableID
}

// ColumnWalker navigates one column of a snapshot.
type ColumnWalker struct {
	Schema *Schema
	ID     ColumnID
}

// IndexWalker navigates one index of a snapshot.
type IndexWalker struct {
	Schema *Schema
	ID     IndexID
}

// ForeignKeyWalker navigates one foreign key of a snapshot.
type ForeignKeyWalker struct {
	Schema *Schema
	ID     ForeignKeyID
}

// EnumWalker navigates one enumerated type of a snapshot.
type EnumWalker struct {
	Schema *Schema
	ID     EnumID
}

// NamespaceWalker navigates one namespace of a snapshot.
type NamespaceWalker struct {
	Schema *Schema
	ID     NamespaceID
}

// SequenceWalker navigates one sequence of a snapshot.
type SequenceWalker struct {
	Schema *Schema
	ID     SequenceID
}

// ExtensionWalker navigates one extension of a snapshot.
type ExtensionWalker struct {
	Schema *Schema
	ID     ExtensionID
}

// ViewWalker navigates one view of a snapshot.
type ViewWalker struct {
	Schema *Schema
	ID     ViewID
}

// WalkTable returns a walker over the table with the given id.
func (s *Schema) WalkTable(id TableID) TableWalker { return TableWalker{s, id} }

// WalkColumn returns a walker over the column with the given id.
func (s *Schema) WalkColumn(id ColumnID) ColumnWalker { return ColumnWalker{s, id} }

// WalkIndex returns a walker over the index with the given id.
func (s *Schema) WalkIndex(id IndexID) IndexWalker { return IndexWalker{s, id} }

// WalkForeignKey returns a walker over the foreign key with the given id.
func (s *Schema) WalkForeignKey(id ForeignKeyID) ForeignKeyWalker { return ForeignKeyWalker{s, id} }

// WalkEnum returns a walker over the enum with the given id.
func (s *Schema) WalkEnum(id EnumID) EnumWalker { return EnumWalker{s, id} }

// WalkNamespace returns a walker over the namespace with the given id.
func (s *Schema) WalkNamespace(id NamespaceID) NamespaceWalker { return NamespaceWalker{s, id} }

// WalkSequence returns a walker over the sequence with the given id.
func (s *Schema) WalkSequence(id SequenceID) SequenceWalker { return SequenceWalker{s, id} }

// WalkExtension returns a walker over the extension with the given id.
func (s *Schema) WalkExtension(id ExtensionID) ExtensionWalker { return ExtensionWalker{s, id} }

// WalkView returns a walker over the view with the given id.
func (s *Schema) WalkView(id ViewID) ViewWalker { return ViewWalker{s, id} }

// WalkTables returns walkers over every table, in id order.
func (s *Schema) WalkTables() []TableWalker {
	out := make([]TableWalker, len(s.Tables))
	for i := range s.Tables {
		out[i] = TableWalker{s, TableID(i)}
	}
	return out
}

// WalkEnums returns walkers over every enum, in id order.
func (s *Schema) WalkEnums() []EnumWalker {
	out := make([]EnumWalker, len(s.Enums))
	for i := range s.Enums {
		out[i] = EnumWalker{s, EnumID(i)}
	}
	return out
}

// Table accessors.

func (w TableWalker) Get() *Table   { return &w.Schema.Tables[w.ID] }
func (w TableWalker) Name() string  { return w.Get().Name }

// NamespaceName returns the explicit namespace name, or "" and false when the
// table lives in the default namespace.
func (w TableWalker) NamespaceName() (string, bool) {
	ns := w.Get().Namespace
	if ns == NoNamespace {
		return "", false
	}
	return w.Schema.Namespaces[ns].Name, true
}

// Columns returns the table's columns in definition order.
func (w TableWalker) Columns() []ColumnWalker {
	var out []ColumnWalker
	for i := range w.Schema.Columns {
		if w.Schema.Columns[i].Table == w.ID {
			out = append(out, ColumnWalker{w.Schema, ColumnID(i)})
		}
	}
	return out
}

// Column looks a column up by name.
func (w TableWalker) Column(name string) (ColumnWalker, bool) {
	for _, c := range w.Columns() {
		if c.Name() == name {
			return c, true
		}
	}
	return ColumnWalker{}, false
}

// PrimaryKey returns the table's primary key, or nil.
func (w TableWalker) PrimaryKey() *PrimaryKey { return w.Get().PrimaryKey }

// PrimaryKeyColumns returns walkers over the primary key columns, or nil when
// the table has no primary key.
func (w TableWalker) PrimaryKeyColumns() []ColumnWalker {
	pk := w.PrimaryKey()
	if pk == nil {
		return nil
	}
	out := make([]ColumnWalker, len(pk.Columns))
	for i, id := range pk.Columns {
		out[i] = ColumnWalker{w.Schema, id}
	}
	return out
}

// IsPartOfPrimaryKey reports whether the named column is part of the table's
// primary key.
func (w TableWalker) IsPartOfPrimaryKey(column string) bool {
	for _, c := range w.PrimaryKeyColumns() {
		if c.Name() == column {
			return true
		}
	}
	return false
}

// Indexes returns the table's secondary indexes in id order.
func (w TableWalker) Indexes() []IndexWalker {
	var out []IndexWalker
	for i := range w.Schema.Indexes {
		if w.Schema.Indexes[i].Table == w.ID {
			out = append(out, IndexWalker{w.Schema, IndexID(i)})
		}
	}
	return out
}

// ForeignKeys returns the foreign keys constraining this table, in id order.
func (w TableWalker) ForeignKeys() []ForeignKeyWalker {
	var out []ForeignKeyWalker
	for i := range w.Schema.ForeignKeys {
		if w.Schema.ForeignKeys[i].Table == w.ID {
			out = append(out, ForeignKeyWalker{w.Schema, ForeignKeyID(i)})
		}
	}
	return out
}

// ReferencingForeignKeys returns the foreign keys of other tables that point
// at this table.
func (w TableWalker) ReferencingForeignKeys() []ForeignKeyWalker {
	var out []ForeignKeyWalker
	for i := range w.Schema.ForeignKeys {
		fk := &w.Schema.ForeignKeys[i]
		if fk.ReferencedTable == w.ID && fk.Table != w.ID {
			out = append(out, ForeignKeyWalker{w.Schema, ForeignKeyID(i)})
		}
	}
	return out
}

// Column accessors.

func (w ColumnWalker) Get() *Column         { return &w.Schema.Columns[w.ID] }
func (w ColumnWalker) Name() string         { return w.Get().Name }
func (w ColumnWalker) Type() ColumnType     { return w.Get().Type }
func (w ColumnWalker) Arity() Arity         { return w.Get().Type.Arity }
func (w ColumnWalker) Default() *Default    { return w.Get().Default }
func (w ColumnWalker) IsAutoIncrement() bool { return w.Get().AutoIncrement }

// Table returns the owning table.
func (w ColumnWalker) Table() TableWalker { return TableWalker{w.Schema, w.Get().Table} }

// EnumType returns the referenced enum when the column is enum-typed.
func (w ColumnWalker) EnumType() (EnumWalker, bool) {
	t := w.Type()
	if t.Family != FamilyEnum {
		return EnumWalker{}, false
	}
	return EnumWalker{w.Schema, t.Enum}, true
}

// IsRequired reports whether the column is NOT NULL and scalar.
func (w ColumnWalker) IsRequired() bool { return w.Arity() == ArityRequired }

// IsList reports whether the column is array-typed.
func (w ColumnWalker) IsList() bool { return w.Arity() == ArityList }

// IsSinglePrimaryKey reports whether the column is the sole primary key
// column of its table.
func (w ColumnWalker) IsSinglePrimaryKey() bool {
	pk := w.Table().PrimaryKey()
	return pk != nil && len(pk.Columns) == 1 && pk.Columns[0] == w.ID
}

// Index accessors.

func (w IndexWalker) Get() *Index    { return &w.Schema.Indexes[w.ID] }
func (w IndexWalker) Name() string   { return w.Get().Name }
func (w IndexWalker) IsUnique() bool { return w.Get().Unique }

// Table returns the indexed table.
func (w IndexWalker) Table() TableWalker { return TableWalker{w.Schema, w.Get().Table} }

// Columns returns the indexed columns in key order.
func (w IndexWalker) Columns() []ColumnWalker {
	ids := w.Get().Columns
	out := make([]ColumnWalker, len(ids))
	for i, id := range ids {
		out[i] = ColumnWalker{w.Schema, id}
	}
	return out
}

// ColumnNames returns the indexed column names in key order.
func (w IndexWalker) ColumnNames() []string {
	cols := w.Columns()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name()
	}
	return out
}

// Foreign key accessors.

func (w ForeignKeyWalker) Get() *ForeignKey { return &w.Schema.ForeignKeys[w.ID] }

// ConstraintName returns the constraint name, which may be empty.
func (w ForeignKeyWalker) ConstraintName() string { return w.Get().Name }

// Table returns the constrained table.
func (w ForeignKeyWalker) Table() TableWalker { return TableWalker{w.Schema, w.Get().Table} }

// ReferencedTable returns the table the constraint points at.
func (w ForeignKeyWalker) ReferencedTable() TableWalker {
	return TableWalker{w.Schema, w.Get().ReferencedTable}
}

// ConstrainedColumns returns the constrained columns in constraint order.
func (w ForeignKeyWalker) ConstrainedColumns() []ColumnWalker {
	ids := w.Get().Columns
	out := make([]ColumnWalker, len(ids))
	for i, id := range ids {
		out[i] = ColumnWalker{w.Schema, id}
	}
	return out
}

// ReferencedColumns returns the referenced columns in constraint order.
func (w ForeignKeyWalker) ReferencedColumns() []ColumnWalker {
	ids := w.Get().ReferencedColumns
	out := make([]ColumnWalker, len(ids))
	for i, id := range ids {
		out[i] = ColumnWalker{w.Schema, id}
	}
	return out
}

func (w ForeignKeyWalker) OnDelete() ReferentialAction { return w.Get().OnDelete }
func (w ForeignKeyWalker) OnUpdate() ReferentialAction { return w.Get().OnUpdate }

// Enum accessors.

func (w EnumWalker) Get() *Enum         { return &w.Schema.Enums[w.ID] }
func (w EnumWalker) Name() string       { return w.Get().Name }
func (w EnumWalker) Variants() []string { return w.Get().Variants }

// NamespaceName returns the explicit namespace name, or "" and false.
func (w EnumWalker) NamespaceName() (string, bool) {
	ns := w.Get().Namespace
	if ns == NoNamespace {
		return "", false
	}
	return w.Schema.Namespaces[ns].Name, true
}

// HasVariant reports whether the enum contains the named variant.
func (w EnumWalker) HasVariant(name string) bool {
	for _, v := range w.Variants() {
		if v == name {
			return true
		}
	}
	return false
}

// Namespace accessors.

func (w NamespaceWalker) Get() *Namespace { return &w.Schema.Namespaces[w.ID] }
func (w NamespaceWalker) Name() string    { return w.Get().Name }

// Sequence accessors.

func (w SequenceWalker) Get() *Sequence { return &w.Schema.Sequences[w.ID] }
func (w SequenceWalker) Name() string   { return w.Get().Name }

// Extension accessors.

func (w ExtensionWalker) Get() *Extension { return &w.Schema.Extensions[w.ID] }
func (w ExtensionWalker) Name() string    { return w.Get().Name }

// View accessors.

func (w ViewWalker) Get() *View   { return &w.Schema.Views[w.ID] }
func (w ViewWalker) Name() string { return w.Get().Name }
