package flavour

import (
	"testing"

	"github.com/sqlmorph/sqlmorph/schema"
)

func columnPair(t *testing.T, prevOpts, nextOpts []schema.ColumnOption) schema.Pair[schema.ColumnWalker] {
	t.Helper()
	build := func(opts []schema.ColumnOption) *schema.Schema {
		b := schema.NewBuilder()
		b.Table("T").Column("c", schema.FamilyString, opts...)
		return b.Build()
	}
	return schema.Pair[schema.ColumnWalker]{
		Previous: build(prevOpts).WalkColumn(0),
		Next:     build(nextOpts).WalkColumn(0),
	}
}

func familyPair(t *testing.T, prev, next schema.Family) schema.Pair[schema.ColumnWalker] {
	t.Helper()
	build := func(family schema.Family) *schema.Schema {
		b := schema.NewBuilder()
		b.Table("T").Column("c", family)
		return b.Build()
	}
	return schema.Pair[schema.ColumnWalker]{
		Previous: build(prev).WalkColumn(0),
		Next:     build(next).WalkColumn(0),
	}
}

func TestColumnTypeChangeMatrix(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		previous schema.Family
		next     schema.Family
		want     TypeChange
	}{
		{"postgres same type", "postgresql", schema.FamilyInt, schema.FamilyInt, TypeChangeNone},
		{"postgres int widens", "postgresql", schema.FamilyInt, schema.FamilyBigInt, SafeCast},
		{"postgres bigint narrows", "postgresql", schema.FamilyBigInt, schema.FamilyInt, RiskyCast},
		{"postgres anything to string", "postgresql", schema.FamilyDateTime, schema.FamilyString, SafeCast},
		{"postgres decimal to boolean", "postgresql", schema.FamilyDecimal, schema.FamilyBoolean, NotCastable},
		{"mysql lossy is risky", "mysql", schema.FamilyDecimal, schema.FamilyBoolean, RiskyCast},
		{"mysql unsupported stays not castable", "mysql", schema.FamilyUnsupported, schema.FamilyInt, NotCastable},
		{"sqlite same family", "sqlite", schema.FamilyInt, schema.FamilyInt, TypeChangeNone},
		{"sqlite cross family", "sqlite", schema.FamilyDecimal, schema.FamilyBoolean, RiskyCast},
		{"mssql bytes to string", "sqlserver", schema.FamilyBytes, schema.FamilyString, NotCastable},
		{"mssql int to bigint", "sqlserver", schema.FamilyInt, schema.FamilyBigInt, SafeCast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := ForProvider(tt.provider)
			if !ok {
				t.Fatalf("unknown provider %q", tt.provider)
			}
			got := f.ColumnTypeChange(familyPair(t, tt.previous, tt.next))
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCockroachPrimaryKeyRetypeIsNotCastable(t *testing.T) {
	build := func(family schema.Family) *schema.Schema {
		b := schema.NewBuilder()
		table := b.Table("T")
		id := table.Column("c", family)
		table.PrimaryKey("T_pkey", id)
		return b.Build()
	}
	pair := schema.Pair[schema.ColumnWalker]{
		Previous: build(schema.FamilyInt).WalkColumn(0),
		Next:     build(schema.FamilyString).WalkColumn(0),
	}

	crdb, _ := ForProvider("cockroachdb")
	if got := crdb.ColumnTypeChange(pair); got != NotCastable {
		t.Errorf("cockroachdb: got %v, want NotCastable", got)
	}
	pg, _ := ForProvider("postgresql")
	if got := pg.ColumnTypeChange(pair); got != SafeCast {
		t.Errorf("postgresql: got %v, want SafeCast", got)
	}
}

func TestNativeTypeWidening(t *testing.T) {
	pair := columnPair(t,
		[]schema.ColumnOption{schema.Native("VARCHAR(100)")},
		[]schema.ColumnOption{schema.Native("VARCHAR(200)")},
	)
	f, _ := ForProvider("postgresql")
	if got := f.ColumnTypeChange(pair); got != SafeCast {
		t.Errorf("widening: got %v, want SafeCast", got)
	}

	narrowed := columnPair(t,
		[]schema.ColumnOption{schema.Native("VARCHAR(200)")},
		[]schema.ColumnOption{schema.Native("VARCHAR(100)")},
	)
	if got := f.ColumnTypeChange(narrowed); got != RiskyCast {
		t.Errorf("narrowing: got %v, want RiskyCast", got)
	}
}

func TestRedefineCapabilities(t *testing.T) {
	tests := []struct {
		provider string
		causes   RedefineCause
		want     bool
	}{
		{"postgresql", CauseChangedPrimaryKey | CauseDroppedColumn, false},
		{"mysql", CauseChangedPrimaryKey, false},
		{"sqlite", CauseAlteredColumn, true},
		{"sqlite", 0, false},
		{"sqlserver", CauseChangedPrimaryKey, true},
		{"sqlserver", CauseAlteredColumn, false},
		{"cockroachdb", CauseNotCastablePrimaryKeyColumn, true},
		{"cockroachdb", CauseNotCastableColumn, false},
	}
	for _, tt := range tests {
		f, _ := ForProvider(tt.provider)
		if got := f.ShouldRedefineTable(tt.causes); got != tt.want {
			t.Errorf("%s with causes %b: got %v, want %v", tt.provider, tt.causes, got, tt.want)
		}
	}
}
