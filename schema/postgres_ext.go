package schema

// PostgresExt carries PostgreSQL- and CockroachDB-specific side data that the
// core entities deliberately do not model. It hangs off Schema.Ext and is
// keyed by entity id.
type PostgresExt struct {
	// ConstraintIndexes marks indexes that back a constraint (UNIQUE or
	// EXCLUDE) and must be dropped with ALTER TABLE ... DROP CONSTRAINT.
	ConstraintIndexes map[IndexID]bool `json:"constraintIndexes,omitempty"`

	// IndexMethods records non-default index access methods ("gin", "gist",
	// "hash") per index.
	IndexMethods map[IndexID]string `json:"indexMethods,omitempty"`

	// IdentityColumns records columns declared GENERATED ... AS IDENTITY
	// (CockroachDB) together with their sequence options.
	IdentityColumns map[ColumnID]SequenceOptions `json:"identityColumns,omitempty"`
}

// SequenceOptions are the numeric knobs of an identity column's backing
// sequence. Zero values mean "engine default".
type SequenceOptions struct {
	MinValue  int64 `json:"minValue,omitempty"`
	MaxValue  int64 `json:"maxValue,omitempty"`
	Increment int64 `json:"increment,omitempty"`
	Start     int64 `json:"start,omitempty"`
	Cache     int64 `json:"cache,omitempty"`
}

// IsDefault reports whether every option is the engine default.
func (o SequenceOptions) IsDefault() bool {
	return o == SequenceOptions{}
}

// PostgresExtOf returns the PostgreSQL side data of a snapshot, or nil.
func PostgresExtOf(s *Schema) *PostgresExt {
	ext, _ := s.Ext.(*PostgresExt)
	return ext
}

// EnsurePostgresExt returns the snapshot's PostgreSQL side data, creating it
// when absent.
func EnsurePostgresExt(s *Schema) *PostgresExt {
	if ext := PostgresExtOf(s); ext != nil {
		return ext
	}
	ext := &PostgresExt{
		ConstraintIndexes: map[IndexID]bool{},
		IndexMethods:      map[IndexID]string{},
		IdentityColumns:   map[ColumnID]SequenceOptions{},
	}
	s.Ext = ext
	return ext
}
