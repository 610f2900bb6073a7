package diff

import (
	"testing"

	"github.com/sqlmorph/sqlmorph/migrate/diff/flavour"
	"github.com/sqlmorph/sqlmorph/schema"
)

func mustFlavour(t *testing.T, provider string) flavour.DifferFlavour {
	t.Helper()
	f, ok := flavour.ForProvider(provider)
	if !ok {
		t.Fatalf("unknown provider %q", provider)
	}
	return f
}

func catSchema(withAge bool) *schema.Schema {
	b := schema.NewBuilder()
	cat := b.Table("Cat")
	id := cat.Column("id", schema.FamilyInt)
	cat.PrimaryKey("Cat_pkey", id)
	if withAge {
		cat.Column("age", schema.FamilyInt, schema.Nullable(), schema.WithDefault(schema.IntValue(5)))
	}
	return b.Build()
}

func TestStepsSelfDiffIsEmpty(t *testing.T) {
	providers := []string{"postgresql", "cockroachdb", "mysql", "sqlite", "sqlserver"}
	s := catSchema(true)
	for _, provider := range providers {
		t.Run(provider, func(t *testing.T) {
			steps := Steps(s, s, mustFlavour(t, provider))
			if len(steps) != 0 {
				t.Fatalf("self diff produced %d steps: %v", len(steps), steps)
			}
		})
	}
}

func TestAddColumn(t *testing.T) {
	steps := Steps(catSchema(false), catSchema(true), mustFlavour(t, "postgresql"))
	if len(steps) != 1 {
		t.Fatalf("got %d steps, want 1", len(steps))
	}
	alter, ok := steps[0].(AlterTable)
	if !ok {
		t.Fatalf("step is %T, want AlterTable", steps[0])
	}
	if len(alter.Changes) != 1 {
		t.Fatalf("got %d table changes, want 1", len(alter.Changes))
	}
	add, ok := alter.Changes[0].(AddColumn)
	if !ok {
		t.Fatalf("change is %T, want AddColumn", alter.Changes[0])
	}
	if name := catSchema(true).WalkColumn(add.Column).Name(); name != "age" {
		t.Errorf("added column = %q, want age", name)
	}
}

func TestCreatedTablesSortedByName(t *testing.T) {
	b := schema.NewBuilder()
	for _, name := range []string{"Zebra", "Ant", "Moose"} {
		tb := b.Table(name)
		id := tb.Column("id", schema.FamilyInt)
		tb.PrimaryKey(name+"_pkey", id)
	}
	next := b.Build()
	prev := schema.NewBuilder().Build()

	steps := Steps(prev, next, mustFlavour(t, "postgresql"))
	var names []string
	for _, s := range steps {
		if ct, ok := s.(CreateTable); ok {
			names = append(names, next.WalkTable(ct.Table).Name())
		}
	}
	want := []string{"Ant", "Moose", "Zebra"}
	if len(names) != len(want) {
		t.Fatalf("created tables = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("created tables = %v, want %v", names, want)
		}
	}
}

func TestDropTableDropsReferencingForeignKeysFirst(t *testing.T) {
	build := func(withTag bool) *schema.Schema {
		b := schema.NewBuilder()
		post := b.Table("Post")
		postID := post.Column("id", schema.FamilyInt)
		post.PrimaryKey("Post_pkey", postID)
		var tagID schema.TableID
		if withTag {
			tag := b.Table("Tag")
			tid := tag.Column("id", schema.FamilyInt)
			tag.PrimaryKey("Tag_pkey", tid)
			tagID = tag.ID()
			post.Column("tagId", schema.FamilyInt, schema.Nullable())
			post.ForeignKey("Post_tagId_fkey", []schema.ColumnID{2}, tagID, []schema.ColumnID{1}, schema.SetNull, schema.Cascade)
		}
		return b.Build()
	}
	prev := build(true)
	// Next keeps Post (without the fk column) and drops Tag.
	next := func() *schema.Schema {
		b := schema.NewBuilder()
		post := b.Table("Post")
		postID := post.Column("id", schema.FamilyInt)
		post.PrimaryKey("Post_pkey", postID)
		return b.Build()
	}()

	steps := Steps(prev, next, mustFlavour(t, "postgresql"))
	fkRank, tableRank := -1, -1
	for i, s := range steps {
		switch s.(type) {
		case DropForeignKey:
			fkRank = i
		case DropTable:
			tableRank = i
		}
	}
	if fkRank == -1 || tableRank == -1 {
		t.Fatalf("missing DropForeignKey or DropTable in %v", steps)
	}
	if fkRank > tableRank {
		t.Errorf("DropForeignKey at %d comes after DropTable at %d", fkRank, tableRank)
	}
}

func TestIndexRename(t *testing.T) {
	build := func(indexName string) *schema.Schema {
		b := schema.NewBuilder()
		tb := b.Table("User")
		id := tb.Column("id", schema.FamilyInt)
		email := tb.Column("email", schema.FamilyString)
		tb.PrimaryKey("User_pkey", id)
		tb.Index(indexName, true, email)
		return b.Build()
	}
	prev, next := build("User_email_idx"), build("User_email_key")

	t.Run("postgresql", func(t *testing.T) {
		steps := Steps(prev, next, mustFlavour(t, "postgresql"))
		if len(steps) != 1 {
			t.Fatalf("got %d steps, want 1: %v", len(steps), steps)
		}
		if _, ok := steps[0].(RenameIndex); !ok {
			t.Fatalf("step is %T, want RenameIndex", steps[0])
		}
	})

	t.Run("sqlite drops and recreates", func(t *testing.T) {
		steps := Steps(prev, next, mustFlavour(t, "sqlite"))
		if len(steps) != 2 {
			t.Fatalf("got %d steps, want 2: %v", len(steps), steps)
		}
		if _, ok := steps[0].(DropIndex); !ok {
			t.Fatalf("first step is %T, want DropIndex", steps[0])
		}
		if _, ok := steps[1].(CreateIndex); !ok {
			t.Fatalf("second step is %T, want CreateIndex", steps[1])
		}
	})
}

func TestEnumDiff(t *testing.T) {
	build := func(variants ...string) *schema.Schema {
		b := schema.NewBuilder()
		color := b.Enum("Color", variants...)
		tb := b.Table("Cat")
		id := tb.Column("id", schema.FamilyInt)
		tb.PrimaryKey("Cat_pkey", id)
		tb.Column("color", schema.FamilyEnum, schema.OfEnum(color), schema.WithDefault(schema.EnumValue(variants[0])))
		return b.Build()
	}

	t.Run("identical variants are a no-op", func(t *testing.T) {
		steps := Steps(build("RED", "GREEN"), build("RED", "GREEN"), mustFlavour(t, "postgresql"))
		if len(steps) != 0 {
			t.Fatalf("got %d steps, want 0: %v", len(steps), steps)
		}
	})

	t.Run("added variants only", func(t *testing.T) {
		steps := Steps(build("RED", "GREEN"), build("RED", "GREEN", "BLUE"), mustFlavour(t, "postgresql"))
		if len(steps) != 1 {
			t.Fatalf("got %d steps, want 1: %v", len(steps), steps)
		}
		alter := steps[0].(AlterEnum)
		if len(alter.CreatedVariants) != 1 || alter.CreatedVariants[0] != "BLUE" {
			t.Errorf("created variants = %v", alter.CreatedVariants)
		}
		if len(alter.DroppedVariants) != 0 {
			t.Errorf("dropped variants = %v", alter.DroppedVariants)
		}
		if len(alter.PreviousUsagesAsDefault) != 0 {
			t.Errorf("usages recorded without dropped variants: %v", alter.PreviousUsagesAsDefault)
		}
	})

	t.Run("dropped variant records default usages", func(t *testing.T) {
		steps := Steps(build("RED", "GREEN"), build("RED"), mustFlavour(t, "postgresql"))
		if len(steps) != 1 {
			t.Fatalf("got %d steps, want 1: %v", len(steps), steps)
		}
		alter := steps[0].(AlterEnum)
		if len(alter.DroppedVariants) != 1 || alter.DroppedVariants[0] != "GREEN" {
			t.Errorf("dropped variants = %v", alter.DroppedVariants)
		}
		if len(alter.PreviousUsagesAsDefault) != 1 {
			t.Fatalf("usages = %v, want 1 entry", alter.PreviousUsagesAsDefault)
		}
		if alter.PreviousUsagesAsDefault[0].Next == nil {
			t.Error("surviving column with default should be recorded")
		}
	})
}

func TestNotCastableBecomesDropAndRecreate(t *testing.T) {
	build := func(family schema.Family) *schema.Schema {
		b := schema.NewBuilder()
		tb := b.Table("Doc")
		id := tb.Column("id", schema.FamilyInt)
		tb.PrimaryKey("Doc_pkey", id)
		tb.Column("payload", family)
		return b.Build()
	}
	steps := Steps(build(schema.FamilyString), build(schema.FamilyInt), mustFlavour(t, "postgresql"))
	if len(steps) != 1 {
		t.Fatalf("got %d steps, want 1: %v", len(steps), steps)
	}
	alter := steps[0].(AlterTable)
	if len(alter.Changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(alter.Changes))
	}
	if _, ok := alter.Changes[0].(DropAndRecreateColumn); !ok {
		t.Fatalf("change is %T, want DropAndRecreateColumn", alter.Changes[0])
	}
}

func TestSQLiteAlteredColumnForcesRedefine(t *testing.T) {
	build := func(arity schema.ColumnOption) *schema.Schema {
		b := schema.NewBuilder()
		tb := b.Table("Note")
		id := tb.Column("id", schema.FamilyInt)
		tb.PrimaryKey("Note_pkey", id)
		if arity != nil {
			tb.Column("body", schema.FamilyString, arity)
		} else {
			tb.Column("body", schema.FamilyString)
		}
		return b.Build()
	}
	steps := Steps(build(schema.Nullable()), build(nil), mustFlavour(t, "sqlite"))
	if len(steps) != 1 {
		t.Fatalf("got %d steps, want 1: %v", len(steps), steps)
	}
	redefine, ok := steps[0].(RedefineTables)
	if !ok {
		t.Fatalf("step is %T, want RedefineTables", steps[0])
	}
	if len(redefine.Tables) != 1 {
		t.Fatalf("got %d redefined tables, want 1", len(redefine.Tables))
	}
	rt := redefine.Tables[0]
	if len(rt.ColumnPairs) != 2 {
		t.Errorf("column pairs = %d, want 2", len(rt.ColumnPairs))
	}
	var sawArityChange bool
	for _, pair := range rt.ColumnPairs {
		if pair.Changes.ArityChanged() {
			sawArityChange = true
		}
	}
	if !sawArityChange {
		t.Error("no column pair records the arity change")
	}
}

func TestPrimaryKeyReplacement(t *testing.T) {
	build := func(pkCol string) *schema.Schema {
		b := schema.NewBuilder()
		tb := b.Table("Account")
		id := tb.Column("id", schema.FamilyInt)
		code := tb.Column("code", schema.FamilyString)
		if pkCol == "id" {
			tb.PrimaryKey("Account_pkey", id)
		} else {
			tb.PrimaryKey("Account_pkey", code)
		}
		return b.Build()
	}

	t.Run("postgresql alters in place", func(t *testing.T) {
		steps := Steps(build("id"), build("code"), mustFlavour(t, "postgresql"))
		if len(steps) != 1 {
			t.Fatalf("got %d steps, want 1: %v", len(steps), steps)
		}
		alter := steps[0].(AlterTable)
		if len(alter.Changes) != 2 {
			t.Fatalf("changes = %v, want drop then add", alter.Changes)
		}
		if _, ok := alter.Changes[0].(DropPrimaryKey); !ok {
			t.Errorf("first change is %T, want DropPrimaryKey", alter.Changes[0])
		}
		if _, ok := alter.Changes[1].(AddPrimaryKey); !ok {
			t.Errorf("second change is %T, want AddPrimaryKey", alter.Changes[1])
		}
	})

	t.Run("sqlserver redefines", func(t *testing.T) {
		steps := Steps(build("id"), build("code"), mustFlavour(t, "sqlserver"))
		if len(steps) != 1 {
			t.Fatalf("got %d steps, want 1: %v", len(steps), steps)
		}
		if _, ok := steps[0].(RedefineTables); !ok {
			t.Fatalf("step is %T, want RedefineTables", steps[0])
		}
	})
}

func TestMySQLMatchesTablesCaseInsensitively(t *testing.T) {
	build := func(name string) *schema.Schema {
		b := schema.NewBuilder()
		tb := b.Table(name)
		id := tb.Column("id", schema.FamilyInt)
		tb.PrimaryKey("", id)
		return b.Build()
	}
	steps := Steps(build("User"), build("user"), mustFlavour(t, "mysql"))
	for _, s := range steps {
		switch s.(type) {
		case CreateTable, DropTable:
			t.Fatalf("case-only difference produced %T", s)
		}
	}
}

func TestRebuiltIndexOrderIsStable(t *testing.T) {
	build := func(unique bool) *schema.Schema {
		b := schema.NewBuilder()
		table := b.Table("T")
		a := table.Column("a", schema.FamilyInt)
		c := table.Column("c", schema.FamilyInt)
		table.Index("a_idx", unique, a)
		table.Index("c_idx", unique, c)
		return b.Build()
	}
	previous, next := build(false), build(true)
	f := mustFlavour(t, "postgresql")

	for run := 0; run < 50; run++ {
		steps := Steps(previous, next, f)
		if len(steps) != 4 {
			t.Fatalf("run %d: got %d steps, want 4: %v", run, len(steps), steps)
		}
		wantDropped := []schema.IndexID{0, 1}
		wantCreated := []schema.IndexID{0, 1}
		for i, want := range wantDropped {
			drop, ok := steps[i].(DropIndex)
			if !ok {
				t.Fatalf("run %d: step %d is %T, want DropIndex", run, i, steps[i])
			}
			if drop.Index != want {
				t.Fatalf("run %d: dropped index %d = %d, want %d", run, i, drop.Index, want)
			}
		}
		for i, want := range wantCreated {
			create, ok := steps[2+i].(CreateIndex)
			if !ok {
				t.Fatalf("run %d: step %d is %T, want CreateIndex", run, 2+i, steps[2+i])
			}
			if create.Index != want {
				t.Fatalf("run %d: created index %d = %d, want %d", run, i, create.Index, want)
			}
		}
	}
}
