package schema

// Builder constructs snapshots incrementally. It exists for describers and
// tests; the resulting Schema is treated as immutable afterwards.
type Builder struct {
	schema Schema
}

// NewBuilder returns an empty snapshot builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build finalizes the snapshot.
func (b *Builder) Build() *Schema {
	s := b.schema
	return &s
}

// Namespace appends a namespace and returns its id.
func (b *Builder) Namespace(name string) NamespaceID {
	b.schema.Namespaces = append(b.schema.Namespaces, Namespace{Name: name})
	return NamespaceID(len(b.schema.Namespaces) - 1)
}

// Enum appends an enumerated type in the default namespace.
func (b *Builder) Enum(name string, variants ...string) EnumID {
	return b.EnumIn(NoNamespace, name, variants...)
}

// EnumIn appends an enumerated type in an explicit namespace.
func (b *Builder) EnumIn(ns NamespaceID, name string, variants ...string) EnumID {
	b.schema.Enums = append(b.schema.Enums, Enum{Name: name, Namespace: ns, Variants: variants})
	return EnumID(len(b.schema.Enums) - 1)
}

// Sequence appends a sequence object. A zero Namespace is normalized to
// NoNamespace; use an explicit id for namespaced sequences.
func (b *Builder) Sequence(seq Sequence) SequenceID {
	if seq.Namespace == 0 {
		seq.Namespace = NoNamespace
	}
	b.schema.Sequences = append(b.schema.Sequences, seq)
	return SequenceID(len(b.schema.Sequences) - 1)
}

// Extension appends an extension.
func (b *Builder) Extension(ext Extension) ExtensionID {
	b.schema.Extensions = append(b.schema.Extensions, ext)
	return ExtensionID(len(b.schema.Extensions) - 1)
}

// View appends a view in the default namespace.
func (b *Builder) View(name, definition string) ViewID {
	b.schema.Views = append(b.schema.Views, View{Name: name, Namespace: NoNamespace, Definition: definition})
	return ViewID(len(b.schema.Views) - 1)
}

// Table starts a table in the default namespace.
func (b *Builder) Table(name string) *TableBuilder {
	return b.TableIn(NoNamespace, name)
}

// TableIn starts a table in an explicit namespace.
func (b *Builder) TableIn(ns NamespaceID, name string) *TableBuilder {
	b.schema.Tables = append(b.schema.Tables, Table{Name: name, Namespace: ns})
	return &TableBuilder{builder: b, id: TableID(len(b.schema.Tables) - 1)}
}

// TableBuilder adds columns, keys and indexes to one table.
type TableBuilder struct {
	builder *Builder
	id      TableID
}

// ID returns the table's id.
func (t *TableBuilder) ID() TableID { return t.id }

// ColumnOption tweaks a column under construction.
type ColumnOption func(*Column)

// Nullable makes the column nullable.
func Nullable() ColumnOption {
	return func(c *Column) { c.Type.Arity = ArityNullable }
}

// AsList makes the column array-typed.
func AsList() ColumnOption {
	return func(c *Column) { c.Type.Arity = ArityList }
}

// Native sets the dialect-native type text.
func Native(t string) ColumnOption {
	return func(c *Column) { c.Type.Native = t }
}

// WithDefault sets a constant literal default.
func WithDefault(v Value) ColumnOption {
	return func(c *Column) { c.Default = &Default{Kind: DefaultValue, Value: v} }
}

// WithDefaultNow defaults the column to the current timestamp.
func WithDefaultNow() ColumnOption {
	return func(c *Column) { c.Default = &Default{Kind: DefaultNow} }
}

// WithSequenceDefault makes the column draw its default from a named
// sequence.
func WithSequenceDefault(name string) ColumnOption {
	return func(c *Column) { c.Default = &Default{Kind: DefaultSequence, Sequence: name} }
}

// WithDBDefault sets an opaque database expression default.
func WithDBDefault(expr string) ColumnOption {
	return func(c *Column) { c.Default = &Default{Kind: DefaultDBGenerated, Expr: expr} }
}

// AutoIncrement marks the column auto-incrementing.
func AutoIncrement() ColumnOption {
	return func(c *Column) { c.AutoIncrement = true }
}

// OfEnum types the column with an enumerated type.
func OfEnum(id EnumID) ColumnOption {
	return func(c *Column) {
		c.Type.Family = FamilyEnum
		c.Type.Enum = id
	}
}

// Column appends a required column of the given family and returns its id.
func (t *TableBuilder) Column(name string, family Family, opts ...ColumnOption) ColumnID {
	col := Column{
		Table: t.id,
		Name:  name,
		Type:  ColumnType{Family: family, Arity: ArityRequired},
	}
	for _, opt := range opts {
		opt(&col)
	}
	s := &t.builder.schema
	s.Columns = append(s.Columns, col)
	return ColumnID(len(s.Columns) - 1)
}

// PrimaryKey sets the table's primary key.
func (t *TableBuilder) PrimaryKey(name string, columns ...ColumnID) *TableBuilder {
	t.builder.schema.Tables[t.id].PrimaryKey = &PrimaryKey{Name: name, Columns: columns}
	return t
}

// Index appends a secondary index on the table.
func (t *TableBuilder) Index(name string, unique bool, columns ...ColumnID) IndexID {
	s := &t.builder.schema
	s.Indexes = append(s.Indexes, Index{Table: t.id, Name: name, Columns: columns, Unique: unique})
	return IndexID(len(s.Indexes) - 1)
}

// ForeignKey appends a foreign key constraining the table.
func (t *TableBuilder) ForeignKey(name string, columns []ColumnID, referenced TableID, referencedColumns []ColumnID, onDelete, onUpdate ReferentialAction) ForeignKeyID {
	s := &t.builder.schema
	s.ForeignKeys = append(s.ForeignKeys, ForeignKey{
		Table:             t.id,
		Name:              name,
		Columns:           columns,
		ReferencedTable:   referenced,
		ReferencedColumns: referencedColumns,
		OnDelete:          onDelete,
		OnUpdate:          onUpdate,
	})
	return ForeignKeyID(len(s.ForeignKeys) - 1)
}
