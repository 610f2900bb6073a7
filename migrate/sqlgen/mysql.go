package sqlgen

import (
	"fmt"
	"strings"

	"github.com/sqlmorph/sqlmorph/migrate/diff"
	"github.com/sqlmorph/sqlmorph/schema"
)

// mysqlTableSuffix pins the character set of newly created tables.
const mysqlTableSuffix = " DEFAULT CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci"

// MySQLRenderer renders DDL for MySQL and MariaDB.
type MySQLRenderer struct{}

// NewMySQLRenderer creates a MySQL renderer.
func NewMySQLRenderer() *MySQLRenderer { return &MySQLRenderer{} }

// Provider returns the provider name.
func (r *MySQLRenderer) Provider() string { return "mysql" }

// ScriptWrapper returns the script prologue and epilogue.
func (r *MySQLRenderer) ScriptWrapper() (string, string) { return "", "" }

func (r *MySQLRenderer) RenderCreateNamespace(schema.NamespaceWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "CreateNamespace")
}

func (r *MySQLRenderer) RenderCreateExtension(schema.ExtensionWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "CreateExtension")
}

func (r *MySQLRenderer) RenderDropExtension(schema.ExtensionWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "DropExtension")
}

func (r *MySQLRenderer) RenderAlterExtension(diff.AlterExtension, schema.Schemas) ([]string, error) {
	return nil, unsupported(r.Provider(), "AlterExtension")
}

// Enums are inlined into column types, they have no DDL of their own.
func (r *MySQLRenderer) RenderCreateEnum(schema.EnumWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "CreateEnum")
}

func (r *MySQLRenderer) RenderDropEnum(schema.EnumWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "DropEnum")
}

func (r *MySQLRenderer) RenderAlterEnum(diff.AlterEnum, schema.Schemas) (StepOutput, error) {
	return StepOutput{}, unsupported(r.Provider(), "AlterEnum")
}

func (r *MySQLRenderer) RenderCreateSequence(schema.SequenceWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "CreateSequence")
}

func (r *MySQLRenderer) RenderDropSequence(schema.SequenceWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "DropSequence")
}

func (r *MySQLRenderer) RenderAlterSequence(diff.AlterSequence, schema.Schemas) ([]string, error) {
	return nil, unsupported(r.Provider(), "AlterSequence")
}

func (r *MySQLRenderer) RenderDropView(view schema.ViewWalker) ([]string, error) {
	return []string{fmt.Sprintf("DROP VIEW %s", quoteBacktick(view.Name()))}, nil
}

func (r *MySQLRenderer) RenderCreateTable(table schema.TableWalker) ([]string, error) {
	var columns []string
	for _, column := range table.Columns() {
		columns = append(columns, r.renderColumn(column))
	}

	pk := ""
	if table.PrimaryKey() != nil {
		var pkCols []string
		for _, col := range table.PrimaryKeyColumns() {
			pkCols = append(pkCols, quoteBacktick(col.Name()))
		}
		pk = fmt.Sprintf(",\n\n%sPRIMARY KEY (%s)", sqlIndentation, strings.Join(pkCols, ", "))
	}

	return []string{fmt.Sprintf("CREATE TABLE %s (\n%s%s\n)%s",
		quoteBacktick(table.Name()), strings.Join(columns, ",\n"), pk, mysqlTableSuffix)}, nil
}

func (r *MySQLRenderer) RenderDropTable(table schema.TableWalker) ([]string, error) {
	return []string{fmt.Sprintf("DROP TABLE %s", quoteBacktick(table.Name()))}, nil
}

func (r *MySQLRenderer) RenderAlterTable(step diff.AlterTable, schemas schema.Schemas) ([]string, error) {
	tables := schema.TablePair(schemas, step.Tables)
	var lines []string

	for _, change := range step.Changes {
		switch c := change.(type) {
		case diff.DropPrimaryKey:
			lines = append(lines, "DROP PRIMARY KEY")
		case diff.RenamePrimaryKey:
			// Primary keys are anonymous in MySQL.
			return nil, invariantf("RenamePrimaryKey is not expressible on mysql")
		case diff.AddPrimaryKey:
			var pkCols []string
			for _, col := range tables.Next.PrimaryKeyColumns() {
				pkCols = append(pkCols, quoteBacktick(col.Name()))
			}
			lines = append(lines, fmt.Sprintf("ADD PRIMARY KEY (%s)", strings.Join(pkCols, ", ")))
		case diff.AddColumn:
			column := schemas.Next.WalkColumn(c.Column)
			lines = append(lines, fmt.Sprintf("ADD COLUMN %s", strings.TrimPrefix(r.renderColumn(column), sqlIndentation)))
		case diff.DropColumn:
			lines = append(lines, fmt.Sprintf("DROP COLUMN %s", quoteBacktick(schemas.Previous.WalkColumn(c.Column).Name())))
		case diff.AlterColumn:
			columns := schema.ColumnPair(schemas, c.Columns)
			lines = append(lines, r.renderAlterColumn(columns, c.Changes)...)
		case diff.DropAndRecreateColumn:
			columns := schema.ColumnPair(schemas, c.Columns)
			lines = append(lines, fmt.Sprintf("DROP COLUMN %s", quoteBacktick(columns.Previous.Name())))
			lines = append(lines, fmt.Sprintf("ADD COLUMN %s", strings.TrimPrefix(r.renderColumn(columns.Next), sqlIndentation)))
		default:
			return nil, invariantf("unexpected table change %T", change)
		}
	}

	if len(lines) == 0 {
		return nil, nil
	}
	return []string{fmt.Sprintf("ALTER TABLE %s %s", quoteBacktick(tables.Previous.Name()), strings.Join(lines, ",\n"))}, nil
}

// renderAlterColumn prefers a full MODIFY over primitive clauses. Only a
// pure default change keeps the cheaper ALTER COLUMN form.
func (r *MySQLRenderer) renderAlterColumn(columns schema.Pair[schema.ColumnWalker], changes diff.ColumnChanges) []string {
	if changes.OnlyDefaultChanged() {
		prefix := fmt.Sprintf("ALTER COLUMN %s", quoteBacktick(columns.Next.Name()))
		if d := columns.Next.Default(); d != nil {
			return []string{fmt.Sprintf("%s SET DEFAULT %s", prefix, r.renderDefault(d, columns.Next))}
		}
		return []string{prefix + " DROP DEFAULT"}
	}
	return []string{fmt.Sprintf("MODIFY %s", strings.TrimPrefix(r.renderColumn(columns.Next), sqlIndentation))}
}

func (r *MySQLRenderer) RenderRedefineTables(diff.RedefineTables, schema.Schemas) ([]string, error) {
	return nil, unsupported(r.Provider(), "RedefineTables")
}

func (r *MySQLRenderer) RenderCreateIndex(index schema.IndexWalker) ([]string, error) {
	unique := ""
	if index.IsUnique() {
		unique = "UNIQUE "
	}
	var cols []string
	for _, col := range index.Columns() {
		cols = append(cols, quoteBacktick(col.Name()))
	}
	return []string{fmt.Sprintf("CREATE %sINDEX %s ON %s(%s)",
		unique, quoteBacktick(index.Name()), quoteBacktick(index.Table().Name()), strings.Join(cols, ", "))}, nil
}

func (r *MySQLRenderer) RenderDropIndex(index schema.IndexWalker) ([]string, error) {
	return []string{fmt.Sprintf("DROP INDEX %s ON %s",
		quoteBacktick(index.Name()), quoteBacktick(index.Table().Name()))}, nil
}

func (r *MySQLRenderer) RenderRenameIndex(indexes schema.Pair[schema.IndexWalker]) ([]string, error) {
	return []string{fmt.Sprintf("ALTER TABLE %s RENAME INDEX %s TO %s",
		quoteBacktick(indexes.Next.Table().Name()),
		quoteBacktick(indexes.Previous.Name()), quoteBacktick(indexes.Next.Name()))}, nil
}

func (r *MySQLRenderer) RenderAddForeignKey(fk schema.ForeignKeyWalker) ([]string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ADD ", quoteBacktick(fk.Table().Name()))
	if fk.ConstraintName() != "" {
		fmt.Fprintf(&b, "CONSTRAINT %s ", quoteBacktick(fk.ConstraintName()))
	}
	var cols, refs []string
	for _, col := range fk.ConstrainedColumns() {
		cols = append(cols, quoteBacktick(col.Name()))
	}
	for _, col := range fk.ReferencedColumns() {
		refs = append(refs, quoteBacktick(col.Name()))
	}
	fmt.Fprintf(&b, "FOREIGN KEY (%s) REFERENCES %s(%s) ON DELETE %s ON UPDATE %s",
		strings.Join(cols, ", "), quoteBacktick(fk.ReferencedTable().Name()), strings.Join(refs, ", "),
		fk.OnDelete(), fk.OnUpdate())
	return []string{b.String()}, nil
}

func (r *MySQLRenderer) RenderDropForeignKey(fk schema.ForeignKeyWalker) ([]string, error) {
	return []string{fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s",
		quoteBacktick(fk.Table().Name()), quoteBacktick(fk.ConstraintName()))}, nil
}

func (r *MySQLRenderer) RenderRenameForeignKey(keys schema.Pair[schema.ForeignKeyWalker]) ([]string, error) {
	return nil, unsupported(r.Provider(), "RenameForeignKey")
}

// renderColumn renders one column definition line.
func (r *MySQLRenderer) renderColumn(column schema.ColumnWalker) string {
	nullability := " NULL"
	if column.IsRequired() {
		nullability = " NOT NULL"
	}
	defaultStr := ""
	if d := column.Default(); d != nil {
		if rendered := r.renderDefault(d, column); rendered != "" {
			defaultStr = " DEFAULT " + rendered
		}
	}
	autoincrement := ""
	if column.IsAutoIncrement() {
		autoincrement = " AUTO_INCREMENT"
	}
	return fmt.Sprintf("%s%s %s%s%s%s", sqlIndentation, quoteBacktick(column.Name()),
		r.columnType(column), nullability, defaultStr, autoincrement)
}

// columnType renders the column type. Enums are inlined as ENUM(...).
func (r *MySQLRenderer) columnType(column schema.ColumnWalker) string {
	if native := column.Type().Native; native != "" {
		return native
	}
	switch column.Type().Family {
	case schema.FamilyInt:
		return "INTEGER"
	case schema.FamilyBigInt:
		return "BIGINT"
	case schema.FamilyFloat:
		return "DOUBLE"
	case schema.FamilyDecimal:
		return "DECIMAL(65,30)"
	case schema.FamilyBoolean:
		return "BOOLEAN"
	case schema.FamilyString:
		return "VARCHAR(191)"
	case schema.FamilyDateTime:
		return "DATETIME(3)"
	case schema.FamilyJSON:
		return "JSON"
	case schema.FamilyBytes:
		return "LONGBLOB"
	case schema.FamilyUUID:
		return "CHAR(36)"
	case schema.FamilyEnum:
		if enum, ok := column.EnumType(); ok {
			variants := make([]string, len(enum.Variants()))
			for i, v := range enum.Variants() {
				variants[i] = quoteLiteral(v)
			}
			return fmt.Sprintf("ENUM(%s)", strings.Join(variants, ", "))
		}
	case schema.FamilyUnsupported:
		return column.Type().Unsupported
	}
	return "VARCHAR(191)"
}

func (r *MySQLRenderer) renderDefault(d *schema.Default, column schema.ColumnWalker) string {
	switch d.Kind {
	case schema.DefaultDBGenerated:
		return d.Expr
	case schema.DefaultNow:
		return "CURRENT_TIMESTAMP(3)"
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
			return fmt.Sprintf("0x%x", d.Value.Bytes)
		}
	}
	return ""
}
