package checker

import (
	"strings"
	"testing"

	"github.com/sqlmorph/sqlmorph/migrate/diff"
	"github.com/sqlmorph/sqlmorph/migrate/diff/flavour"
	"github.com/sqlmorph/sqlmorph/schema"
)

func check(t *testing.T, provider string, previous, next *schema.Schema) []Diagnostic {
	t.Helper()
	f, ok := flavour.ForProvider(provider)
	if !ok {
		t.Fatalf("unknown provider %q", provider)
	}
	steps := diff.Steps(previous, next, f)
	return Check(steps, schema.Schemas{Previous: previous, Next: next})
}

func TestDropTableWarns(t *testing.T) {
	b := schema.NewBuilder()
	cat := b.Table("Cat")
	id := cat.Column("id", schema.FamilyInt)
	cat.PrimaryKey("Cat_pkey", id)
	previous := b.Build()

	diagnostics := check(t, "postgresql", previous, schema.NewBuilder().Build())
	if len(diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diagnostics))
	}
	d := diagnostics[0]
	if d.Severity != SeverityWarning || d.Table != "Cat" {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
	if !strings.Contains(d.Message, "drop the `Cat` table") {
		t.Errorf("unexpected message: %s", d.Message)
	}
}

func TestRequiredColumnWithoutDefaultIsUnexecutable(t *testing.T) {
	build := func(withTag bool) *schema.Schema {
		b := schema.NewBuilder()
		cat := b.Table("Cat")
		id := cat.Column("id", schema.FamilyInt)
		cat.PrimaryKey("Cat_pkey", id)
		if withTag {
			cat.Column("tag", schema.FamilyString)
		}
		return b.Build()
	}

	diagnostics := check(t, "postgresql", build(false), build(true))
	if !HasUnexecutable(diagnostics) {
		t.Fatalf("expected an unexecutable diagnostic, got %+v", diagnostics)
	}
	d := diagnostics[0]
	if d.Column != "tag" || d.Table != "Cat" {
		t.Errorf("diagnostic does not name the column: %+v", d)
	}
}

func TestNotCastableRetypeIsUnexecutable(t *testing.T) {
	build := func(family schema.Family) *schema.Schema {
		b := schema.NewBuilder()
		cat := b.Table("Cat")
		id := cat.Column("id", schema.FamilyInt)
		cat.Column("tag", family)
		cat.PrimaryKey("Cat_pkey", id)
		return b.Build()
	}

	diagnostics := check(t, "postgresql", build(schema.FamilyDecimal), build(schema.FamilyBoolean))
	if !HasUnexecutable(diagnostics) {
		t.Fatalf("expected an unexecutable diagnostic, got %+v", diagnostics)
	}
	d := diagnostics[0]
	if d.Column != "tag" {
		t.Errorf("diagnostic does not name the column: %+v", d)
	}
	if !strings.Contains(d.Message, "No cast exists") {
		t.Errorf("unexpected message: %s", d.Message)
	}
}

func TestNullableRetypeOnlyWarns(t *testing.T) {
	build := func(family schema.Family) *schema.Schema {
		b := schema.NewBuilder()
		cat := b.Table("Cat")
		id := cat.Column("id", schema.FamilyInt)
		cat.Column("tag", family, schema.Nullable())
		cat.PrimaryKey("Cat_pkey", id)
		return b.Build()
	}

	diagnostics := check(t, "postgresql", build(schema.FamilyDecimal), build(schema.FamilyBoolean))
	if len(diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diagnostics))
	}
	if diagnostics[0].Severity != SeverityWarning {
		t.Errorf("expected a warning, got %+v", diagnostics[0])
	}
}

func TestRedefinedTableIsChecked(t *testing.T) {
	// On sqlite the retype forces a table redefinition; the diagnostics
	// must come out the same as for the alter-table path.
	build := func(family schema.Family, extra bool) *schema.Schema {
		b := schema.NewBuilder()
		cat := b.Table("Cat")
		id := cat.Column("id", schema.FamilyInt)
		cat.Column("tag", family, schema.Nullable())
		if extra {
			cat.Column("note", schema.FamilyString, schema.Nullable())
		}
		cat.PrimaryKey("", id)
		return b.Build()
	}

	diagnostics := check(t, "sqlite", build(schema.FamilyInt, true), build(schema.FamilyDateTime, false))
	var droppedColumn bool
	for _, d := range diagnostics {
		if d.Column == "note" && strings.Contains(d.Message, "drop the column") {
			droppedColumn = true
		}
	}
	if !droppedColumn {
		t.Errorf("missing dropped-column diagnostic: %+v", diagnostics)
	}
}

func TestDroppedEnumVariantWarns(t *testing.T) {
	build := func(variants ...string) *schema.Schema {
		b := schema.NewBuilder()
		color := b.Enum("Color", variants...)
		cat := b.Table("Cat")
		id := cat.Column("id", schema.FamilyInt)
		cat.Column("color", schema.FamilyEnum, schema.OfEnum(color))
		cat.PrimaryKey("Cat_pkey", id)
		return b.Build()
	}

	diagnostics := check(t, "postgresql", build("RED", "GREEN"), build("RED"))
	if len(diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diagnostics))
	}
	if !strings.Contains(diagnostics[0].Message, "[GREEN] on the enum `Color`") {
		t.Errorf("unexpected message: %s", diagnostics[0].Message)
	}
}
