// Package schema defines the immutable, id-indexed snapshot of one database
// schema, plus read-only walker views over it. A snapshot is a flat arena:
// every entity is addressed by a small integer id, and cross-references
// (column -> table, index -> columns, ...) are stored as ids rather than
// pointers, so snapshots are cheap to clone and safe to inspect from two
// sides of a diff at once.
package schema

// Entity ids. Ids are indexes into the owning Schema's slices and are only
// meaningful within that snapshot.
type (
	NamespaceID  int
	TableID      int
	ColumnID     int
	IndexID      int
	ForeignKeyID int
	EnumID       int
	SequenceID   int
	ExtensionID  int
	ViewID       int
)

// NoNamespace marks a table or enum without an explicit namespace.
const NoNamespace NamespaceID = -1

// Schema is one snapshot. All slices are append-only during construction and
// never mutated afterwards.
type Schema struct {
	Namespaces  []Namespace  `json:"namespaces,omitempty"`
	Tables      []Table      `json:"tables,omitempty"`
	Columns     []Column     `json:"columns,omitempty"`
	Indexes     []Index      `json:"indexes,omitempty"`
	ForeignKeys []ForeignKey `json:"foreignKeys,omitempty"`
	Enums       []Enum       `json:"enums,omitempty"`
	Sequences   []Sequence   `json:"sequences,omitempty"`
	Extensions  []Extension  `json:"extensions,omitempty"`
	Views       []View       `json:"views,omitempty"`

	// Ext carries optional dialect-specific side data keyed by entity id,
	// kept out of the core entities. See PostgresExt.
	Ext any `json:"-"`
}

// Namespace is a named schema (PostgreSQL/SQL Server sense).
type Namespace struct {
	Name string `json:"name"`
}

// Table is a named relation. Columns, indexes and foreign keys referencing
// the table live in the Schema arenas and point back via TableID.
type Table struct {
	Name       string      `json:"name"`
	Namespace  NamespaceID `json:"namespace"`
	PrimaryKey *PrimaryKey `json:"primaryKey,omitempty"`
}

// PrimaryKey is the optional primary key constraint of a table.
type PrimaryKey struct {
	Name    string     `json:"name,omitempty"`
	Columns []ColumnID `json:"columns"`
}

// Arity says whether a column is required, nullable or array-valued.
type Arity int

const (
	ArityRequired Arity = iota
	ArityNullable
	ArityList
)

func (a Arity) String() string {
	switch a {
	case ArityRequired:
		return "Required"
	case ArityNullable:
		return "Nullable"
	case ArityList:
		return "List"
	}
	return "unknown"
}

// Family is the abstract type family of a column, independent of the
// dialect-native type text.
type Family int

const (
	FamilyInt Family = iota
	FamilyBigInt
	FamilyFloat
	FamilyDecimal
	FamilyBoolean
	FamilyString
	FamilyDateTime
	FamilyJSON
	FamilyBytes
	FamilyUUID
	FamilyEnum
	FamilyUnsupported
)

// ColumnType is the full type of a column: abstract family, optional
// dialect-native type text, and arity.
type ColumnType struct {
	Family Family `json:"family"`
	// Native is the dialect-native type text ("VARCHAR(191)", "TIMESTAMPTZ(6)").
	// When empty, renderers fall back to their default mapping for Family.
	Native string `json:"native,omitempty"`
	Arity  Arity  `json:"arity"`
	// Enum is the referenced enumerated type when Family is FamilyEnum.
	Enum EnumID `json:"enum,omitempty"`
	// Unsupported carries the raw type text when Family is FamilyUnsupported.
	Unsupported string `json:"unsupported,omitempty"`
}

// Column belongs to exactly one table.
type Column struct {
	Table         TableID    `json:"table"`
	Name          string     `json:"name"`
	Type          ColumnType `json:"type"`
	Default       *Default   `json:"default,omitempty"`
	AutoIncrement bool       `json:"autoIncrement,omitempty"`
}

// DefaultKind discriminates the possible default values of a column.
type DefaultKind int

const (
	// DefaultValue is a constant literal.
	DefaultValue DefaultKind = iota
	// DefaultDBGenerated is an opaque database expression.
	DefaultDBGenerated
	// DefaultNow is the current timestamp at insertion time.
	DefaultNow
	// DefaultSequence draws from a named sequence (SERIAL-style columns).
	DefaultSequence
	// DefaultUniqueRowID is CockroachDB's unique_rowid().
	DefaultUniqueRowID
)

// Default is a column default.
type Default struct {
	Kind  DefaultKind `json:"kind"`
	Value Value       `json:"value,omitempty"`
	// Expr is set for DefaultDBGenerated.
	Expr string `json:"expr,omitempty"`
	// Sequence is the sequence name for DefaultSequence.
	Sequence string `json:"sequence,omitempty"`
	// ConstraintName names the default constraint on dialects with named
	// defaults (SQL Server).
	ConstraintName string `json:"constraintName,omitempty"`
}

// ValueKind discriminates literal default values.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
	ValueBytes
	ValueEnum
	ValueJSON
	ValueDateTime
	ValueList
)

// Value is a constant literal used as a column default.
type Value struct {
	Kind  ValueKind `json:"kind"`
	Str   string    `json:"str,omitempty"`
	Int   int64     `json:"int,omitempty"`
	Float float64   `json:"float,omitempty"`
	Bool  bool      `json:"bool,omitempty"`
	Bytes []byte    `json:"bytes,omitempty"`
	List  []Value   `json:"list,omitempty"`
}

// StringValue builds a string literal value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// IntValue builds an integer literal value.
func IntValue(i int64) Value { return Value{Kind: ValueInt, Int: i} }

// EnumValue builds an enum variant literal value.
func EnumValue(s string) Value { return Value{Kind: ValueEnum, Str: s} }

// BoolValue builds a boolean literal value.
func BoolValue(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// Index is a secondary index over one table.
type Index struct {
	Table   TableID    `json:"table"`
	Name    string     `json:"name"`
	Columns []ColumnID `json:"columns"`
	Unique  bool       `json:"unique,omitempty"`
}

// ReferentialAction is a foreign key ON DELETE / ON UPDATE action.
type ReferentialAction int

const (
	NoAction ReferentialAction = iota
	Restrict
	Cascade
	SetNull
	SetDefault
)

func (a ReferentialAction) String() string {
	switch a {
	case NoAction:
		return "NO ACTION"
	case Restrict:
		return "RESTRICT"
	case Cascade:
		return "CASCADE"
	case SetNull:
		return "SET NULL"
	case SetDefault:
		return "SET DEFAULT"
	}
	return "NO ACTION"
}

// ForeignKey is a referential constraint between two tables of the same
// snapshot.
type ForeignKey struct {
	Table             TableID    `json:"table"`
	Name              string     `json:"name,omitempty"`
	Columns           []ColumnID `json:"columns"`
	ReferencedTable   TableID    `json:"referencedTable"`
	ReferencedColumns []ColumnID `json:"referencedColumns"`

	OnDelete ReferentialAction `json:"onDelete,omitempty"`
	OnUpdate ReferentialAction `json:"onUpdate,omitempty"`
}

// Enum is a named enumerated type. Variant names are unique within a type
// and their order is significant.
type Enum struct {
	Name      string      `json:"name"`
	Namespace NamespaceID `json:"namespace"`
	Variants  []string    `json:"variants"`
}

// Sequence describes a sequence object (PostgreSQL/CockroachDB identity
// columns).
type Sequence struct {
	Name      string      `json:"name"`
	Namespace NamespaceID `json:"namespace"`
	MinValue  int64       `json:"minValue,omitempty"`
	MaxValue  int64       `json:"maxValue,omitempty"`
	Increment int64       `json:"increment,omitempty"`
	Start     int64       `json:"start,omitempty"`
	Cache     int64       `json:"cache,omitempty"`
	// Virtual marks CockroachDB virtual sequences.
	Virtual bool `json:"virtual,omitempty"`
}

// Extension is a PostgreSQL extension.
type Extension struct {
	Name        string `json:"name"`
	Schema      string `json:"schema,omitempty"`
	Version     string `json:"version,omitempty"`
	Relocatable bool   `json:"relocatable,omitempty"`
}

// View is a named view. Only drops are rendered by the migration planner.
type View struct {
	Name       string      `json:"name"`
	Namespace  NamespaceID `json:"namespace"`
	Definition string      `json:"definition,omitempty"`
}
