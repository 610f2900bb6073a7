package sqlgen

import (
	"fmt"
	"strings"

	"github.com/sqlmorph/sqlmorph/migrate/diff"
	"github.com/sqlmorph/sqlmorph/schema"
)

// sqliteRedefinePrefix names the temporary table during a redefinition.
const sqliteRedefinePrefix = "new_"

// SQLiteRenderer renders DDL for SQLite. Foreign keys and primary keys are
// inlined into CREATE TABLE, and most alterations go through a full table
// rewrite.
type SQLiteRenderer struct{}

// NewSQLiteRenderer creates a SQLite renderer.
func NewSQLiteRenderer() *SQLiteRenderer { return &SQLiteRenderer{} }

// Provider returns the provider name.
func (r *SQLiteRenderer) Provider() string { return "sqlite" }

// ScriptWrapper returns the script prologue and epilogue.
func (r *SQLiteRenderer) ScriptWrapper() (string, string) { return "", "" }

func (r *SQLiteRenderer) RenderCreateNamespace(schema.NamespaceWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "CreateNamespace")
}

func (r *SQLiteRenderer) RenderCreateExtension(schema.ExtensionWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "CreateExtension")
}

func (r *SQLiteRenderer) RenderDropExtension(schema.ExtensionWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "DropExtension")
}

func (r *SQLiteRenderer) RenderAlterExtension(diff.AlterExtension, schema.Schemas) ([]string, error) {
	return nil, unsupported(r.Provider(), "AlterExtension")
}

func (r *SQLiteRenderer) RenderCreateEnum(schema.EnumWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "CreateEnum")
}

func (r *SQLiteRenderer) RenderDropEnum(schema.EnumWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "DropEnum")
}

func (r *SQLiteRenderer) RenderAlterEnum(diff.AlterEnum, schema.Schemas) (StepOutput, error) {
	return StepOutput{}, unsupported(r.Provider(), "AlterEnum")
}

func (r *SQLiteRenderer) RenderCreateSequence(schema.SequenceWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "CreateSequence")
}

func (r *SQLiteRenderer) RenderDropSequence(schema.SequenceWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "DropSequence")
}

func (r *SQLiteRenderer) RenderAlterSequence(diff.AlterSequence, schema.Schemas) ([]string, error) {
	return nil, unsupported(r.Provider(), "AlterSequence")
}

func (r *SQLiteRenderer) RenderDropView(view schema.ViewWalker) ([]string, error) {
	return []string{fmt.Sprintf("DROP VIEW %s", quoteDouble(view.Name()))}, nil
}

func (r *SQLiteRenderer) RenderCreateTable(table schema.TableWalker) ([]string, error) {
	return []string{r.renderCreateTableAs(table, quoteDouble(table.Name()))}, nil
}

func (r *SQLiteRenderer) renderCreateTableAs(table schema.TableWalker, tableName string) string {
	var lines []string
	for _, column := range table.Columns() {
		lines = append(lines, r.renderColumn(column))
	}

	// A single-column integer primary key is declared inline so SQLite
	// treats it as the rowid alias. renderColumn already emitted it.
	pk := table.PrimaryKey()
	if pk != nil && !r.primaryKeyIsInline(table) {
		var pkCols []string
		for _, col := range table.PrimaryKeyColumns() {
			pkCols = append(pkCols, quoteDouble(col.Name()))
		}
		named := ""
		if pk.Name != "" {
			named = fmt.Sprintf("CONSTRAINT %s ", quoteDouble(pk.Name))
		}
		lines = append(lines, fmt.Sprintf("%s%sPRIMARY KEY (%s)", sqlIndentation, named, strings.Join(pkCols, ", ")))
	}

	// Foreign keys cannot be added after the fact, they live in the
	// CREATE TABLE.
	for _, fk := range table.ForeignKeys() {
		lines = append(lines, sqlIndentation+r.renderForeignKeyClause(fk))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)", tableName, strings.Join(lines, ",\n"))
}

// primaryKeyIsInline reports whether the primary key is declared on its
// single autoincrementing column instead of a table constraint.
func (r *SQLiteRenderer) primaryKeyIsInline(table schema.TableWalker) bool {
	cols := table.PrimaryKeyColumns()
	return len(cols) == 1 && cols[0].IsAutoIncrement()
}

func (r *SQLiteRenderer) renderForeignKeyClause(fk schema.ForeignKeyWalker) string {
	var b strings.Builder
	if fk.ConstraintName() != "" {
		fmt.Fprintf(&b, "CONSTRAINT %s ", quoteDouble(fk.ConstraintName()))
	}
	var cols, refs []string
	for _, col := range fk.ConstrainedColumns() {
		cols = append(cols, quoteDouble(col.Name()))
	}
	for _, col := range fk.ReferencedColumns() {
		refs = append(refs, quoteDouble(col.Name()))
	}
	fmt.Fprintf(&b, "FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s ON UPDATE %s",
		strings.Join(cols, ", "), quoteDouble(fk.ReferencedTable().Name()), strings.Join(refs, ", "),
		fk.OnDelete(), fk.OnUpdate())
	return b.String()
}

func (r *SQLiteRenderer) RenderDropTable(table schema.TableWalker) ([]string, error) {
	return []string{fmt.Sprintf("DROP TABLE %s", quoteDouble(table.Name()))}, nil
}

// RenderAlterTable handles only added and dropped columns. Everything else
// forces a table redefinition on this dialect.
func (r *SQLiteRenderer) RenderAlterTable(step diff.AlterTable, schemas schema.Schemas) ([]string, error) {
	tables := schema.TablePair(schemas, step.Tables)
	var stmts []string
	for _, change := range step.Changes {
		switch c := change.(type) {
		case diff.AddColumn:
			column := schemas.Next.WalkColumn(c.Column)
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s",
				quoteDouble(tables.Next.Name()), strings.TrimPrefix(r.renderColumn(column), sqlIndentation)))
		case diff.DropColumn:
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s",
				quoteDouble(tables.Previous.Name()), quoteDouble(schemas.Previous.WalkColumn(c.Column).Name())))
		default:
			return nil, invariantf("table change %T should have forced a redefinition on sqlite", change)
		}
	}
	return stmts, nil
}

// RenderRedefineTables rebuilds each table under a temporary name with
// foreign key enforcement suspended, copies the surviving columns over,
// swaps the names and recreates the indexes.
func (r *SQLiteRenderer) RenderRedefineTables(step diff.RedefineTables, schemas schema.Schemas) ([]string, error) {
	stmts := []string{
		"PRAGMA defer_foreign_keys=ON",
		"PRAGMA foreign_keys=OFF",
	}

	for _, redefine := range step.Tables {
		tables := schema.TablePair(schemas, redefine.Tables)
		tmpName := sqliteRedefinePrefix + tables.Next.Name()

		stmts = append(stmts, r.renderCreateTableAs(tables.Next, quoteDouble(tmpName)))

		var destCols, sourceExprs []string
		for _, pair := range redefine.ColumnPairs {
			columns := schema.ColumnPair(schemas, pair.Columns)
			destCols = append(destCols, quoteDouble(columns.Next.Name()))
			sourceExprs = append(sourceExprs, r.copyExpression(columns, pair.Changes))
		}
		if len(destCols) > 0 {
			stmts = append(stmts, fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s",
				quoteDouble(tmpName), strings.Join(destCols, ", "),
				strings.Join(sourceExprs, ", "), quoteDouble(tables.Previous.Name())))
		}

		stmts = append(stmts,
			fmt.Sprintf("DROP TABLE %s", quoteDouble(tables.Previous.Name())),
			fmt.Sprintf("ALTER TABLE %s RENAME TO %s", quoteDouble(tmpName), quoteDouble(tables.Next.Name())),
		)

		for _, index := range tables.Next.Indexes() {
			created, err := r.RenderCreateIndex(index)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, created...)
		}
	}

	stmts = append(stmts,
		"PRAGMA foreign_keys=ON",
		"PRAGMA defer_foreign_keys=OFF",
	)
	return stmts, nil
}

// copyExpression renders the SELECT expression copying one surviving column.
// A column becoming required with a default falls back to that default for
// existing NULL rows.
func (r *SQLiteRenderer) copyExpression(columns schema.Pair[schema.ColumnWalker], changes diff.ColumnChanges) string {
	name := quoteDouble(columns.Previous.Name())
	if !changes.ArityChanged() || !columns.Next.IsRequired() {
		return name
	}
	d := columns.Next.Default()
	if d == nil {
		return name
	}
	rendered := r.renderDefault(d)
	if rendered == "" {
		return name
	}
	return fmt.Sprintf("coalesce(%s, %s) AS %s", name, rendered, quoteDouble(columns.Next.Name()))
}

func (r *SQLiteRenderer) RenderCreateIndex(index schema.IndexWalker) ([]string, error) {
	unique := ""
	if index.IsUnique() {
		unique = "UNIQUE "
	}
	var cols []string
	for _, col := range index.Columns() {
		cols = append(cols, quoteDouble(col.Name()))
	}
	return []string{fmt.Sprintf("CREATE %sINDEX %s ON %s(%s)",
		unique, quoteDouble(index.Name()), quoteDouble(index.Table().Name()), strings.Join(cols, ", "))}, nil
}

func (r *SQLiteRenderer) RenderDropIndex(index schema.IndexWalker) ([]string, error) {
	return []string{fmt.Sprintf("DROP INDEX %s", quoteDouble(index.Name()))}, nil
}

func (r *SQLiteRenderer) RenderRenameIndex(schema.Pair[schema.IndexWalker]) ([]string, error) {
	return nil, unsupported(r.Provider(), "RenameIndex")
}

func (r *SQLiteRenderer) RenderAddForeignKey(schema.ForeignKeyWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "AddForeignKey")
}

func (r *SQLiteRenderer) RenderDropForeignKey(schema.ForeignKeyWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "DropForeignKey")
}

func (r *SQLiteRenderer) RenderRenameForeignKey(schema.Pair[schema.ForeignKeyWalker]) ([]string, error) {
	return nil, unsupported(r.Provider(), "RenameForeignKey")
}

// renderColumn renders one column definition line. A single autoincrementing
// primary key column carries the PRIMARY KEY AUTOINCREMENT clause inline.
func (r *SQLiteRenderer) renderColumn(column schema.ColumnWalker) string {
	if column.IsSinglePrimaryKey() && column.IsAutoIncrement() {
		return fmt.Sprintf("%s%s INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT",
			sqlIndentation, quoteDouble(column.Name()))
	}
	nullability := ""
	if column.IsRequired() {
		nullability = " NOT NULL"
	}
	defaultStr := ""
	if d := column.Default(); d != nil {
		if rendered := r.renderDefault(d); rendered != "" {
			defaultStr = " DEFAULT " + rendered
		}
	}
	return fmt.Sprintf("%s%s %s%s%s", sqlIndentation, quoteDouble(column.Name()),
		r.columnType(column), nullability, defaultStr)
}

func (r *SQLiteRenderer) columnType(column schema.ColumnWalker) string {
	if native := column.Type().Native; native != "" {
		return native
	}
	switch column.Type().Family {
	case schema.FamilyInt:
		return "INTEGER"
	case schema.FamilyBigInt:
		return "BIGINT"
	case schema.FamilyFloat:
		return "REAL"
	case schema.FamilyDecimal:
		return "DECIMAL"
	case schema.FamilyBoolean:
		return "BOOLEAN"
	case schema.FamilyString:
		return "TEXT"
	case schema.FamilyDateTime:
		return "DATETIME"
	case schema.FamilyJSON:
		return "JSONB"
	case schema.FamilyBytes:
		return "BLOB"
	case schema.FamilyUUID:
		return "TEXT"
	case schema.FamilyUnsupported:
		return column.Type().Unsupported
	}
	return "TEXT"
}

func (r *SQLiteRenderer) renderDefault(d *schema.Default) string {
	switch d.Kind {
	case schema.DefaultDBGenerated:
		return d.Expr
	case schema.DefaultNow:
		return "CURRENT_TIMESTAMP"
	case schema.DefaultValue:
		switch d.Value.Kind {
		case schema.ValueString, schema.ValueEnum, schema.ValueJSON, schema.ValueDateTime:
			return quoteLiteral(d.Value.Str)
		case schema.ValueInt:
			return fmt.Sprintf("%d", d.Value.Int)
		case schema.ValueFloat:
			return formatFloat(d.Value.Float)
		case schema.ValueBool:
			if d.Value.Bool {
				return "true"
			}
			return "false"
		case schema.ValueBytes:
			return fmt.Sprintf("x'%x'", d.Value.Bytes)
		}
	}
	return ""
}
