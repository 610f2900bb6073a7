package sqlgen

import (
	"errors"
	"strings"
	"testing"

	version "github.com/hashicorp/go-version"

	"github.com/sqlmorph/sqlmorph/migrate/diff"
	"github.com/sqlmorph/sqlmorph/migrate/diff/flavour"
	"github.com/sqlmorph/sqlmorph/schema"
)

func planStatements(t *testing.T, provider string, previous, next *schema.Schema) []string {
	t.Helper()
	f, ok := flavour.ForProvider(provider)
	if !ok {
		t.Fatalf("unknown provider %q", provider)
	}
	gen, ok := ForProvider(provider)
	if !ok {
		t.Fatalf("no generator for provider %q", provider)
	}
	steps := diff.Steps(previous, next, f)
	result, err := gen.Render(steps, schema.Schemas{Previous: previous, Next: next})
	if err != nil {
		t.Fatalf("rendering steps: %v", err)
	}
	return result.Statements
}

func assertStatements(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d statements, want %d:\n%s", len(got), len(want), strings.Join(got, "\n---\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statement %d:\ngot:  %s\nwant: %s", i, got[i], want[i])
		}
	}
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

func TestPostgresAddColumn(t *testing.T) {
	got := planStatements(t, "postgresql", catSchema(false), catSchema(true))
	assertStatements(t, got, []string{
		`ALTER TABLE "Cat" ADD COLUMN "age" INTEGER DEFAULT 5`,
	})
}

func TestPostgresCreateTable(t *testing.T) {
	b := schema.NewBuilder()
	user := b.Table("User")
	id := user.Column("id", schema.FamilyInt, schema.AutoIncrement())
	user.Column("name", schema.FamilyString)
	user.Column("email", schema.FamilyString, schema.Nullable())
	user.PrimaryKey("User_pkey", id)
	next := b.Build()

	got := planStatements(t, "postgresql", schema.NewBuilder().Build(), next)
	want := `CREATE TABLE "User" (
    "id" SERIAL NOT NULL,
    "name" TEXT NOT NULL,
    "email" TEXT,

    CONSTRAINT "User_pkey" PRIMARY KEY ("id")
)`
	assertStatements(t, got, []string{want})
}

func TestPostgresCreateTableWithIndexAndForeignKey(t *testing.T) {
	build := func(withPost bool) *schema.Schema {
		b := schema.NewBuilder()
		user := b.Table("User")
		userID := user.Column("id", schema.FamilyInt)
		user.PrimaryKey("User_pkey", userID)
		if withPost {
			post := b.Table("Post")
			postID := post.Column("id", schema.FamilyInt)
			author := post.Column("authorId", schema.FamilyInt)
			post.PrimaryKey("Post_pkey", postID)
			post.Index("Post_authorId_idx", false, author)
			post.ForeignKey("Post_authorId_fkey", []schema.ColumnID{author},
				user.ID(), []schema.ColumnID{userID}, schema.SetNull, schema.Cascade)
		}
		return b.Build()
	}

	got := planStatements(t, "postgresql", build(false), build(true))
	assertStatements(t, got, []string{
		"CREATE TABLE \"Post\" (\n    \"id\" INTEGER NOT NULL,\n    \"authorId\" INTEGER NOT NULL,\n\n    CONSTRAINT \"Post_pkey\" PRIMARY KEY (\"id\")\n)",
		`CREATE INDEX "Post_authorId_idx" ON "Post"("authorId")`,
		`ALTER TABLE "Post" ADD CONSTRAINT "Post_authorId_fkey" FOREIGN KEY ("authorId") REFERENCES "User"("id") ON DELETE SET NULL ON UPDATE CASCADE`,
	})
}

func colorSchema(variants []string, withDefault bool) *schema.Schema {
	b := schema.NewBuilder()
	color := b.Enum("Color", variants...)
	cat := b.Table("Cat")
	id := cat.Column("id", schema.FamilyInt)
	opts := []schema.ColumnOption{schema.OfEnum(color)}
	if withDefault {
		opts = append(opts, schema.WithDefault(schema.EnumValue("RED")))
	}
	cat.Column("color", schema.FamilyEnum, opts...)
	cat.PrimaryKey("Cat_pkey", id)
	return b.Build()
}

func TestPostgresAlterEnumDroppedVariant(t *testing.T) {
	previous := colorSchema([]string{"RED", "GREEN", "BLUE"}, true)
	next := colorSchema([]string{"RED", "BLUE"}, true)

	got := planStatements(t, "postgresql", previous, next)
	assertStatements(t, got, []string{
		"BEGIN",
		`CREATE TYPE "Color_new" AS ENUM ('RED', 'BLUE')`,
		`ALTER TABLE "Cat" ALTER COLUMN "color" DROP DEFAULT`,
		`ALTER TABLE "Cat" ALTER COLUMN "color" TYPE "Color_new" USING ("color"::text::"Color_new")`,
		`ALTER TYPE "Color" RENAME TO "Color_old"`,
		`ALTER TYPE "Color_new" RENAME TO "Color"`,
		`DROP TYPE "Color_old"`,
		`ALTER TABLE "Cat" ALTER COLUMN "color" SET DEFAULT 'RED'`,
		"COMMIT",
	})
}

func TestPostgresAlterEnumAddedVariants(t *testing.T) {
	previous := colorSchema([]string{"RED"}, false)
	next := colorSchema([]string{"RED", "GREEN", "BLUE"}, false)

	t.Run("unknown version keeps the advisory", func(t *testing.T) {
		got := planStatements(t, "postgresql", previous, next)
		if len(got) != 2 {
			t.Fatalf("got %d statements, want 2", len(got))
		}
		if !strings.HasPrefix(got[0], "-- This migration adds more than one value to an enum.") {
			t.Errorf("first statement is missing the advisory:\n%s", got[0])
		}
		if !strings.HasSuffix(got[0], `ALTER TYPE "Color" ADD VALUE 'GREEN'`) {
			t.Errorf("advisory is not joined to the first statement:\n%s", got[0])
		}
		if got[1] != `ALTER TYPE "Color" ADD VALUE 'BLUE'` {
			t.Errorf("unexpected second statement: %s", got[1])
		}
	})

	t.Run("recent version drops the advisory", func(t *testing.T) {
		f, _ := flavour.ForProvider("postgresql")
		gen := NewGenerator(NewPostgresRenderer(WithEngineVersion(version.Must(version.NewVersion("14.1")))))
		steps := diff.Steps(previous, next, f)
		result, err := gen.Render(steps, schema.Schemas{Previous: previous, Next: next})
		if err != nil {
			t.Fatalf("rendering steps: %v", err)
		}
		assertStatements(t, result.Statements, []string{
			`ALTER TYPE "Color" ADD VALUE 'GREEN'`,
			`ALTER TYPE "Color" ADD VALUE 'BLUE'`,
		})
	})
}

func TestCockroachAlterEnumDropValue(t *testing.T) {
	previous := colorSchema([]string{"RED", "GREEN", "BLUE"}, false)
	next := colorSchema([]string{"RED", "BLUE"}, false)

	got := planStatements(t, "cockroachdb", previous, next)
	assertStatements(t, got, []string{
		`ALTER TYPE "Color" DROP VALUE 'GREEN'`,
	})
}

func TestExpandAlterColumn(t *testing.T) {
	build := func(opts ...schema.ColumnOption) *schema.Schema {
		b := schema.NewBuilder()
		cat := b.Table("Cat")
		cat.Column("c", schema.FamilyInt, opts...)
		return b.Build()
	}
	pair := func(previous, next *schema.Schema) schema.Pair[schema.ColumnWalker] {
		return schema.Pair[schema.ColumnWalker]{
			Previous: previous.WalkColumn(0),
			Next:     next.WalkColumn(0),
		}
	}

	tests := []struct {
		name     string
		previous *schema.Schema
		next     *schema.Schema
		changes  diff.ColumnChanges
		want     []AlterColumnKind
	}{
		{
			name:     "default added",
			previous: build(),
			next:     build(schema.WithDefault(schema.IntValue(1))),
			changes:  diff.ChangedDefault,
			want:     []AlterColumnKind{AlterColumnSetDefault},
		},
		{
			name:     "default removed",
			previous: build(schema.WithDefault(schema.IntValue(1))),
			next:     build(),
			changes:  diff.ChangedDefault,
			want:     []AlterColumnKind{AlterColumnDropDefault},
		},
		{
			name:     "required to nullable",
			previous: build(),
			next:     build(schema.Nullable()),
			changes:  diff.ChangedArity,
			want:     []AlterColumnKind{AlterColumnDropNotNull},
		},
		{
			name:     "list to required restates the type once",
			previous: build(schema.AsList()),
			next:     build(),
			changes:  diff.ChangedArity | diff.ChangedType,
			want:     []AlterColumnKind{AlterColumnSetNotNull, AlterColumnSetType},
		},
		{
			name:     "scalar to list",
			previous: build(schema.Nullable()),
			next:     build(schema.AsList()),
			changes:  diff.ChangedArity,
			want:     []AlterColumnKind{AlterColumnSetType},
		},
		{
			name:     "autoincrement added",
			previous: build(),
			next:     build(schema.AutoIncrement()),
			changes:  diff.ChangedAutoIncrement,
			want:     []AlterColumnKind{AlterColumnAddSequence},
		},
		{
			name:     "autoincrement removed drops the backing sequence",
			previous: build(schema.AutoIncrement(), schema.WithSequenceDefault("cat_c_seq")),
			next:     build(),
			changes:  diff.ChangedAutoIncrement,
			want:     []AlterColumnKind{AlterColumnDropDefault, AlterColumnDropSequence},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := ExpandAlterColumn(pair(tt.previous, tt.next), tt.changes)
			if len(ops) != len(tt.want) {
				t.Fatalf("got %d ops, want %d", len(ops), len(tt.want))
			}
			for i, op := range ops {
				if op.Kind != tt.want[i] {
					t.Errorf("op %d: got kind %d, want %d", i, op.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestPostgresAddSequenceStatements(t *testing.T) {
	build := func(autoincrement bool) *schema.Schema {
		b := schema.NewBuilder()
		cat := b.Table("Cat")
		opts := []schema.ColumnOption{}
		if autoincrement {
			opts = append(opts, schema.AutoIncrement())
		}
		id := cat.Column("id", schema.FamilyInt, opts...)
		cat.PrimaryKey("Cat_pkey", id)
		return b.Build()
	}

	got := planStatements(t, "postgresql", build(false), build(true))
	assertStatements(t, got, []string{
		`CREATE SEQUENCE "cat_id_seq"`,
		`ALTER TABLE "Cat" ALTER COLUMN "id" SET DEFAULT nextval('"cat_id_seq"')`,
		`ALTER SEQUENCE "cat_id_seq" OWNED BY "Cat"."id"`,
	})
}

func TestMySQLAlterColumn(t *testing.T) {
	build := func(opts ...schema.ColumnOption) *schema.Schema {
		b := schema.NewBuilder()
		cat := b.Table("Cat")
		id := cat.Column("id", schema.FamilyInt)
		cat.Column("name", schema.FamilyString, opts...)
		cat.PrimaryKey("", id)
		return b.Build()
	}

	t.Run("default change stays an alter", func(t *testing.T) {
		got := planStatements(t, "mysql", build(), build(schema.WithDefault(schema.StringValue("kitty"))))
		assertStatements(t, got, []string{
			"ALTER TABLE `Cat` ALTER COLUMN `name` SET DEFAULT 'kitty'",
		})
	})

	t.Run("type change becomes a modify", func(t *testing.T) {
		got := planStatements(t, "mysql", build(), build(schema.Native("TEXT")))
		assertStatements(t, got, []string{
			"ALTER TABLE `Cat` MODIFY `name` TEXT NOT NULL",
		})
	})
}

func TestMySQLCreateTableCharset(t *testing.T) {
	b := schema.NewBuilder()
	cat := b.Table("Cat")
	id := cat.Column("id", schema.FamilyInt, schema.AutoIncrement())
	cat.PrimaryKey("", id)
	next := b.Build()

	got := planStatements(t, "mysql", schema.NewBuilder().Build(), next)
	want := "CREATE TABLE `Cat` (\n    `id` INTEGER NOT NULL AUTO_INCREMENT,\n\n    PRIMARY KEY (`id`)\n) DEFAULT CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci"
	assertStatements(t, got, []string{want})
}

func TestSQLiteRedefineTable(t *testing.T) {
	build := func(required bool) *schema.Schema {
		b := schema.NewBuilder()
		cat := b.Table("Cat")
		id := cat.Column("id", schema.FamilyInt)
		opts := []schema.ColumnOption{schema.WithDefault(schema.StringValue("kitty"))}
		if !required {
			opts = append(opts, schema.Nullable())
		}
		cat.Column("name", schema.FamilyString, opts...)
		cat.PrimaryKey("", id)
		cat.Index("Cat_name_idx", false, schema.ColumnID(1))
		return b.Build()
	}

	got := planStatements(t, "sqlite", build(false), build(true))
	assertStatements(t, got, []string{
		"PRAGMA defer_foreign_keys=ON",
		"PRAGMA foreign_keys=OFF",
		"CREATE TABLE \"new_Cat\" (\n    \"id\" INTEGER NOT NULL,\n    \"name\" TEXT NOT NULL DEFAULT 'kitty',\n    PRIMARY KEY (\"id\")\n)",
		`INSERT INTO "new_Cat" ("id", "name") SELECT "id", coalesce("name", 'kitty') AS "name" FROM "Cat"`,
		`DROP TABLE "Cat"`,
		`ALTER TABLE "new_Cat" RENAME TO "Cat"`,
		`CREATE INDEX "Cat_name_idx" ON "Cat"("name")`,
		"PRAGMA foreign_keys=ON",
		"PRAGMA defer_foreign_keys=OFF",
	})
}

func TestSQLiteInlinesForeignKeysAndRowid(t *testing.T) {
	b := schema.NewBuilder()
	user := b.Table("User")
	userID := user.Column("id", schema.FamilyInt, schema.AutoIncrement())
	user.PrimaryKey("", userID)
	post := b.Table("Post")
	postID := post.Column("id", schema.FamilyInt, schema.AutoIncrement())
	author := post.Column("authorId", schema.FamilyInt)
	post.PrimaryKey("", postID)
	post.ForeignKey("Post_authorId_fkey", []schema.ColumnID{author},
		user.ID(), []schema.ColumnID{userID}, schema.Restrict, schema.Cascade)
	next := b.Build()

	got := planStatements(t, "sqlite", schema.NewBuilder().Build(), next)
	assertStatements(t, got, []string{
		"CREATE TABLE \"Post\" (\n    \"id\" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,\n    \"authorId\" INTEGER NOT NULL,\n    CONSTRAINT \"Post_authorId_fkey\" FOREIGN KEY (\"authorId\") REFERENCES \"User\" (\"id\") ON DELETE RESTRICT ON UPDATE CASCADE\n)",
		"CREATE TABLE \"User\" (\n    \"id\" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT\n)",
	})
}

func TestMSSQLScriptWrapper(t *testing.T) {
	b := schema.NewBuilder()
	cat := b.Table("Cat")
	id := cat.Column("id", schema.FamilyInt)
	cat.PrimaryKey("Cat_pkey", id)
	next := b.Build()

	f, _ := flavour.ForProvider("sqlserver")
	gen, _ := ForProvider("sqlserver")
	previous := schema.NewBuilder().Build()
	script, err := gen.Script(diff.Steps(previous, next, f), schema.Schemas{Previous: previous, Next: next})
	if err != nil {
		t.Fatalf("rendering script: %v", err)
	}
	if !strings.HasPrefix(script, "BEGIN TRY\n\nBEGIN TRAN;") {
		t.Errorf("script is missing the prologue:\n%s", script)
	}
	if !strings.Contains(script, "CREATE TABLE [dbo].[Cat] (\n    [id] INT NOT NULL,\n    CONSTRAINT [Cat_pkey] PRIMARY KEY CLUSTERED ([id])\n);") {
		t.Errorf("script is missing the create table:\n%s", script)
	}
	if !strings.Contains(script, "END CATCH\n") {
		t.Errorf("script is missing the epilogue:\n%s", script)
	}
}

func TestEmptyScript(t *testing.T) {
	s := catSchema(true)
	for _, provider := range []string{"postgresql", "cockroachdb", "mysql", "sqlite", "sqlserver"} {
		f, _ := flavour.ForProvider(provider)
		gen, _ := ForProvider(provider)
		script, err := gen.Script(diff.Steps(s, s, f), schema.Schemas{Previous: s, Next: s})
		if err != nil {
			t.Fatalf("%s: rendering script: %v", provider, err)
		}
		if script != "-- This is an empty migration." {
			t.Errorf("%s: got %q", provider, script)
		}
	}
}

func TestScriptStatementSeparation(t *testing.T) {
	got := AssembleScript([]string{"CREATE TABLE a (x int)", "DROP TABLE b"}, NewPostgresRenderer())
	want := "CREATE TABLE a (x int);\n\nDROP TABLE b;\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnsupportedStepsError(t *testing.T) {
	b := schema.NewBuilder()
	b.Enum("Color", "RED")
	next := b.Build()

	gen, _ := ForProvider("mysql")
	_, err := gen.Render([]diff.Step{diff.CreateEnum{Enum: 0}}, schema.Schemas{Previous: schema.NewBuilder().Build(), Next: next})
	if err == nil {
		t.Fatal("expected an error for CreateEnum on mysql")
	}
	var unsupportedErr *UnsupportedError
	if !errors.As(err, &unsupportedErr) {
		t.Fatalf("expected UnsupportedError, got %T: %v", err, err)
	}
	if unsupportedErr.Provider != "mysql" || unsupportedErr.Operation != "CreateEnum" {
		t.Errorf("unexpected error fields: %+v", unsupportedErr)
	}
}

func TestExpandAlterColumnSharedSequenceIsKept(t *testing.T) {
	build := func(shared bool) *schema.Schema {
		b := schema.NewBuilder()
		cat := b.Table("Cat")
		opts := []schema.ColumnOption{schema.AutoIncrement(), schema.WithSequenceDefault("cat_seq")}
		cat.Column("id", schema.FamilyInt, opts...)
		if shared {
			cat.Column("shadow", schema.FamilyInt, schema.WithSequenceDefault("cat_seq"))
		}
		return b.Build()
	}
	plain := func() *schema.Schema {
		b := schema.NewBuilder()
		cat := b.Table("Cat")
		cat.Column("id", schema.FamilyInt)
		return b.Build()
	}

	t.Run("sole user drops the sequence", func(t *testing.T) {
		pair := schema.Pair[schema.ColumnWalker]{
			Previous: build(false).WalkColumn(0),
			Next:     plain().WalkColumn(0),
		}
		ops := ExpandAlterColumn(pair, diff.ChangedAutoIncrement)
		if len(ops) != 2 {
			t.Fatalf("got %d ops, want 2", len(ops))
		}
		if ops[1].Kind != AlterColumnDropSequence || ops[1].Sequence != "cat_seq" {
			t.Errorf("got op %+v, want DropSequence of cat_seq", ops[1])
		}
	})

	t.Run("shared sequence survives", func(t *testing.T) {
		pair := schema.Pair[schema.ColumnWalker]{
			Previous: build(true).WalkColumn(0),
			Next:     plain().WalkColumn(0),
		}
		ops := ExpandAlterColumn(pair, diff.ChangedAutoIncrement)
		if len(ops) != 1 {
			t.Fatalf("got %d ops, want 1: %+v", len(ops), ops)
		}
		if ops[0].Kind != AlterColumnDropDefault {
			t.Errorf("got kind %d, want AlterColumnDropDefault", ops[0].Kind)
		}
	})
}

func TestCockroachAlterEnumAddAndDropValue(t *testing.T) {
	previous := colorSchema([]string{"RED", "GREEN"}, false)
	next := colorSchema([]string{"GREEN", "BLUE"}, false)

	got := planStatements(t, "cockroachdb", previous, next)
	assertStatements(t, got, []string{
		`ALTER TYPE "Color" ADD VALUE 'BLUE'`,
		`ALTER TYPE "Color" DROP VALUE 'RED'`,
	})
	for _, stmt := range got {
		if strings.Contains(stmt, "CREATE TYPE") || strings.Contains(stmt, "RENAME") {
			t.Errorf("variant changes must not recreate the type: %s", stmt)
		}
	}
}

func TestMySQLEnumVariantChangeRewritesColumn(t *testing.T) {
	previous := colorSchema([]string{"RED", "GREEN"}, false)
	next := colorSchema([]string{"GREEN", "BLUE"}, false)

	got := planStatements(t, "mysql", previous, next)
	assertStatements(t, got, []string{
		"ALTER TABLE `Cat` MODIFY `color` ENUM('GREEN', 'BLUE') NOT NULL",
	})
}

func TestMSSQLRedefineRecreatesIndexes(t *testing.T) {
	build := func(compositeKey bool) *schema.Schema {
		b := schema.NewBuilder()
		cat := b.Table("Cat")
		id := cat.Column("id", schema.FamilyInt)
		name := cat.Column("name", schema.FamilyString)
		if compositeKey {
			cat.PrimaryKey("Cat_pkey", id, name)
		} else {
			cat.PrimaryKey("Cat_pkey", id)
		}
		cat.Index("Cat_name_idx", false, name)
		return b.Build()
	}

	got := planStatements(t, "sqlserver", build(false), build(true))
	assertStatements(t, got, []string{
		"BEGIN TRANSACTION",
		"DROP INDEX [Cat_name_idx] ON [dbo].[Cat]",
		`DECLARE @SQL NVARCHAR(MAX) = N''
SELECT @SQL += N'ALTER TABLE '
    + QUOTENAME(OBJECT_SCHEMA_NAME(PARENT_OBJECT_ID))
    + '.'
    + QUOTENAME(OBJECT_NAME(PARENT_OBJECT_ID))
    + ' DROP CONSTRAINT '
    + OBJECT_NAME(OBJECT_ID) + ';'
FROM SYS.OBJECTS
WHERE TYPE_DESC LIKE '%CONSTRAINT'
    AND OBJECT_NAME(PARENT_OBJECT_ID) = 'Cat'
    AND SCHEMA_NAME(SCHEMA_ID) = 'dbo'
EXEC sp_executesql @SQL`,
		"CREATE TABLE [dbo].[_sqlmorph_new_Cat] (\n    [id] INT NOT NULL,\n    [name] NVARCHAR(1000) NOT NULL,\n    CONSTRAINT [Cat_pkey] PRIMARY KEY CLUSTERED ([id],[name])\n)",
		"IF EXISTS(SELECT * FROM [dbo].[Cat]) EXEC('INSERT INTO [dbo].[_sqlmorph_new_Cat] ([id],[name]) SELECT [id],[name] FROM [dbo].[Cat] WITH (holdlock tablockx)')",
		"DROP TABLE [dbo].[Cat]",
		"EXEC SP_RENAME N'dbo._sqlmorph_new_Cat', N'Cat'",
		"CREATE NONCLUSTERED INDEX [Cat_name_idx] ON [dbo].[Cat]([name])",
		"COMMIT",
	})
}

func TestCockroachRedefineRecreatesIndexesAndForeignKeys(t *testing.T) {
	build := func(idFamily schema.Family) *schema.Schema {
		b := schema.NewBuilder()
		cat := b.Table("Cat")
		id := cat.Column("id", idFamily)
		name := cat.Column("name", schema.FamilyString)
		cat.PrimaryKey("Cat_pkey", id)
		cat.Index("Cat_name_idx", false, name)
		toy := b.Table("Toy")
		toyID := toy.Column("id", schema.FamilyInt)
		catRef := toy.Column("catId", schema.FamilyInt)
		toy.PrimaryKey("Toy_pkey", toyID)
		toy.ForeignKey("Toy_catId_fkey", []schema.ColumnID{catRef},
			cat.ID(), []schema.ColumnID{id}, schema.Restrict, schema.Cascade)
		return b.Build()
	}

	got := planStatements(t, "cockroachdb", build(schema.FamilyInt), build(schema.FamilyString))
	assertStatements(t, got, []string{
		"CREATE TABLE \"_sqlmorph_new_Cat\" (\n    \"id\" STRING NOT NULL,\n    \"name\" STRING NOT NULL,\n\n    CONSTRAINT \"Cat_pkey\" PRIMARY KEY (\"id\")\n)",
		`INSERT INTO "_sqlmorph_new_Cat" ("id", "name") SELECT "id", "name" FROM "Cat"`,
		`DROP TABLE "Cat" CASCADE`,
		`ALTER TABLE "_sqlmorph_new_Cat" RENAME TO "Cat"`,
		`CREATE INDEX "Cat_name_idx" ON "Cat"("name")`,
		`ALTER TABLE "Toy" ADD CONSTRAINT "Toy_catId_fkey" FOREIGN KEY ("catId") REFERENCES "Cat"("id") ON DELETE RESTRICT ON UPDATE CASCADE`,
	})
}
