package sqlgen

import (
	"fmt"
	"strings"

	"github.com/sqlmorph/sqlmorph/migrate/diff"
	"github.com/sqlmorph/sqlmorph/schema"
)

// mssqlRedefinePrefix names the temporary table during a redefinition.
const mssqlRedefinePrefix = "_sqlmorph_new_"

// mssqlDefaultSchema qualifies unqualified object names.
const mssqlDefaultSchema = "dbo"

// MSSQLRenderer renders DDL for SQL Server. Statements are emitted one
// clause at a time and the whole script runs inside a guarded transaction,
// see ScriptWrapper.
type MSSQLRenderer struct{}

// NewMSSQLRenderer creates a SQL Server renderer.
func NewMSSQLRenderer() *MSSQLRenderer { return &MSSQLRenderer{} }

// Provider returns the provider name.
func (r *MSSQLRenderer) Provider() string { return "sqlserver" }

// ScriptWrapper wraps the script in a transaction that rolls back on the
// first error.
func (r *MSSQLRenderer) ScriptWrapper() (string, string) {
	prologue := "BEGIN TRY\n\nBEGIN TRAN;"
	epilogue := `COMMIT TRAN;

END TRY
BEGIN CATCH

IF @@TRANCOUNT > 0
BEGIN
    ROLLBACK TRAN;
END;
THROW

END CATCH`
	return prologue, epilogue
}

// tableName renders the schema-qualified table name.
func (r *MSSQLRenderer) tableName(t schema.TableWalker) string {
	ns := mssqlDefaultSchema
	if name, ok := t.NamespaceName(); ok {
		ns = name
	}
	return quoteBracket(ns) + "." + quoteBracket(t.Name())
}

// rawTableName renders the schema-qualified name without brackets, as
// sp_rename wants it.
func (r *MSSQLRenderer) rawTableName(t schema.TableWalker) string {
	ns := mssqlDefaultSchema
	if name, ok := t.NamespaceName(); ok {
		ns = name
	}
	return ns + "." + t.Name()
}

func (r *MSSQLRenderer) RenderCreateNamespace(ns schema.NamespaceWalker) ([]string, error) {
	return []string{fmt.Sprintf(
		"IF NOT EXISTS (SELECT * FROM sys.schemas WHERE name = %s) EXEC('CREATE SCHEMA %s')",
		quoteLiteral(ns.Name()), quoteBracket(ns.Name()))}, nil
}

func (r *MSSQLRenderer) RenderCreateExtension(schema.ExtensionWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "CreateExtension")
}

func (r *MSSQLRenderer) RenderDropExtension(schema.ExtensionWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "DropExtension")
}

func (r *MSSQLRenderer) RenderAlterExtension(diff.AlterExtension, schema.Schemas) ([]string, error) {
	return nil, unsupported(r.Provider(), "AlterExtension")
}

func (r *MSSQLRenderer) RenderCreateEnum(schema.EnumWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "CreateEnum")
}

func (r *MSSQLRenderer) RenderDropEnum(schema.EnumWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "DropEnum")
}

func (r *MSSQLRenderer) RenderAlterEnum(diff.AlterEnum, schema.Schemas) (StepOutput, error) {
	return StepOutput{}, unsupported(r.Provider(), "AlterEnum")
}

func (r *MSSQLRenderer) RenderCreateSequence(schema.SequenceWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "CreateSequence")
}

func (r *MSSQLRenderer) RenderDropSequence(schema.SequenceWalker) ([]string, error) {
	return nil, unsupported(r.Provider(), "DropSequence")
}

func (r *MSSQLRenderer) RenderAlterSequence(diff.AlterSequence, schema.Schemas) ([]string, error) {
	return nil, unsupported(r.Provider(), "AlterSequence")
}

func (r *MSSQLRenderer) RenderDropView(view schema.ViewWalker) ([]string, error) {
	return []string{fmt.Sprintf("DROP VIEW %s", quoteBracket(view.Name()))}, nil
}

func (r *MSSQLRenderer) RenderCreateTable(table schema.TableWalker) ([]string, error) {
	return []string{r.renderCreateTableAs(table, r.tableName(table))}, nil
}

func (r *MSSQLRenderer) renderCreateTableAs(table schema.TableWalker, tableName string) string {
	var lines []string
	for _, column := range table.Columns() {
		lines = append(lines, r.renderColumn(column))
	}

	if pk := table.PrimaryKey(); pk != nil {
		var pkCols []string
		for _, col := range table.PrimaryKeyColumns() {
			pkCols = append(pkCols, quoteBracket(col.Name()))
		}
		named := ""
		if pk.Name != "" {
			named = fmt.Sprintf("CONSTRAINT %s ", quoteBracket(pk.Name))
		}
		lines = append(lines, fmt.Sprintf("%s%sPRIMARY KEY CLUSTERED (%s)",
			sqlIndentation, named, strings.Join(pkCols, ",")))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)", tableName, strings.Join(lines, ",\n"))
}

func (r *MSSQLRenderer) RenderDropTable(table schema.TableWalker) ([]string, error) {
	return []string{fmt.Sprintf("DROP TABLE %s", r.tableName(table))}, nil
}

func (r *MSSQLRenderer) RenderAlterTable(step diff.AlterTable, schemas schema.Schemas) ([]string, error) {
	tables := schema.TablePair(schemas, step.Tables)
	tableName := r.tableName(tables.Previous)
	var stmts []string

	for _, change := range step.Changes {
		switch c := change.(type) {
		case diff.DropPrimaryKey:
			pk := tables.Previous.PrimaryKey()
			if pk == nil {
				return nil, invariantf("DropPrimaryKey on table %q without a primary key", tables.Previous.Name())
			}
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", tableName, quoteBracket(pk.Name)))
		case diff.RenamePrimaryKey:
			stmts = append(stmts, fmt.Sprintf("EXEC SP_RENAME N%s, N%s",
				quoteLiteral(r.rawTableName(tables.Previous)+"."+tables.Previous.PrimaryKey().Name),
				quoteLiteral(tables.Next.PrimaryKey().Name)))
		case diff.AddPrimaryKey:
			pk := tables.Next.PrimaryKey()
			if pk == nil {
				return nil, invariantf("AddPrimaryKey on table %q without a primary key", tables.Next.Name())
			}
			var pkCols []string
			for _, col := range tables.Next.PrimaryKeyColumns() {
				pkCols = append(pkCols, quoteBracket(col.Name()))
			}
			named := ""
			if pk.Name != "" {
				named = fmt.Sprintf("CONSTRAINT %s ", quoteBracket(pk.Name))
			}
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD %sPRIMARY KEY (%s)",
				tableName, named, strings.Join(pkCols, ", ")))
		case diff.AddColumn:
			column := schemas.Next.WalkColumn(c.Column)
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD %s",
				tableName, strings.TrimPrefix(r.renderColumn(column), sqlIndentation)))
		case diff.DropColumn:
			column := schemas.Previous.WalkColumn(c.Column)
			if d := column.Default(); d != nil {
				stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s",
					tableName, quoteBracket(r.defaultConstraintName(column, d))))
			}
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", tableName, quoteBracket(column.Name())))
		case diff.AlterColumn:
			columns := schema.ColumnPair(schemas, c.Columns)
			stmts = append(stmts, r.renderAlterColumn(tableName, columns, c.Changes)...)
		case diff.DropAndRecreateColumn:
			columns := schema.ColumnPair(schemas, c.Columns)
			if d := columns.Previous.Default(); d != nil {
				stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s",
					tableName, quoteBracket(r.defaultConstraintName(columns.Previous, d))))
			}
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", tableName, quoteBracket(columns.Previous.Name())))
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD %s",
				tableName, strings.TrimPrefix(r.renderColumn(columns.Next), sqlIndentation)))
		default:
			return nil, invariantf("unexpected table change %T", change)
		}
	}
	return stmts, nil
}

// renderAlterColumn emits a default constraint swap when the default
// changed, and a full ALTER COLUMN restating type and nullability for
// everything else.
func (r *MSSQLRenderer) renderAlterColumn(tableName string, columns schema.Pair[schema.ColumnWalker], changes diff.ColumnChanges) []string {
	var stmts []string

	if changes.DefaultChanged() {
		if d := columns.Previous.Default(); d != nil {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s",
				tableName, quoteBracket(r.defaultConstraintName(columns.Previous, d))))
		}
		if d := columns.Next.Default(); d != nil {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s DEFAULT %s FOR %s",
				tableName, quoteBracket(r.defaultConstraintName(columns.Next, d)),
				r.renderDefault(d), quoteBracket(columns.Next.Name())))
		}
	}

	if changes.TypeChanged() || changes.ArityChanged() {
		nullability := " NULL"
		if columns.Next.IsRequired() {
			nullability = " NOT NULL"
		}
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s%s",
			tableName, quoteBracket(columns.Next.Name()), r.columnType(columns.Next), nullability))
	}

	return stmts
}

// defaultConstraintName resolves the name of a column default's backing
// constraint.
func (r *MSSQLRenderer) defaultConstraintName(column schema.ColumnWalker, d *schema.Default) string {
	if d.ConstraintName != "" {
		return d.ConstraintName
	}
	return fmt.Sprintf("%s_%s_df", column.Table().Name(), column.Name())
}

// RenderRedefineTables rebuilds each table under a temporary name, copies
// the surviving columns over with IDENTITY_INSERT enabled when needed, then
// swaps the names. The previous table's indexes and constraints are dropped
// up front so the temporary table can reuse their names, and the new shape's
// indexes are recreated after the rename.
func (r *MSSQLRenderer) RenderRedefineTables(step diff.RedefineTables, schemas schema.Schemas) ([]string, error) {
	stmts := []string{"BEGIN TRANSACTION"}

	for _, redefine := range step.Tables {
		tables := schema.TablePair(schemas, redefine.Tables)
		tmpName := mssqlRedefinePrefix + tables.Next.Name()
		ns := mssqlDefaultSchema
		if name, ok := tables.Next.NamespaceName(); ok {
			ns = name
		}
		tmpQuoted := quoteBracket(ns) + "." + quoteBracket(tmpName)

		for _, index := range tables.Previous.Indexes() {
			dropped, err := r.RenderDropIndex(index)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, dropped...)
		}

		prevNs := mssqlDefaultSchema
		if name, ok := tables.Previous.NamespaceName(); ok {
			prevNs = name
		}
		stmts = append(stmts, fmt.Sprintf(`DECLARE @SQL NVARCHAR(MAX) = N''
SELECT @SQL += N'ALTER TABLE '
    + QUOTENAME(OBJECT_SCHEMA_NAME(PARENT_OBJECT_ID))
    + '.'
    + QUOTENAME(OBJECT_NAME(PARENT_OBJECT_ID))
    + ' DROP CONSTRAINT '
    + OBJECT_NAME(OBJECT_ID) + ';'
FROM SYS.OBJECTS
WHERE TYPE_DESC LIKE '%%CONSTRAINT'
    AND OBJECT_NAME(PARENT_OBJECT_ID) = '%s'
    AND SCHEMA_NAME(SCHEMA_ID) = '%s'
EXEC sp_executesql @SQL`, tables.Previous.Name(), prevNs))

		stmts = append(stmts, r.renderCreateTableAs(tables.Next, tmpQuoted))

		var destCols, sourceCols []string
		identity := false
		for _, pair := range redefine.ColumnPairs {
			columns := schema.ColumnPair(schemas, pair.Columns)
			destCols = append(destCols, quoteBracket(columns.Next.Name()))
			sourceCols = append(sourceCols, quoteBracket(columns.Previous.Name()))
			if columns.Next.IsAutoIncrement() {
				identity = true
			}
		}
		if len(destCols) > 0 {
			if identity {
				stmts = append(stmts, fmt.Sprintf("SET IDENTITY_INSERT %s ON", tmpQuoted))
			}
			stmts = append(stmts, fmt.Sprintf("IF EXISTS(SELECT * FROM %s) EXEC('INSERT INTO %s (%s) SELECT %s FROM %s WITH (holdlock tablockx)')",
				r.tableName(tables.Previous), tmpQuoted, strings.Join(destCols, ","),
				strings.Join(sourceCols, ","), r.tableName(tables.Previous)))
			if identity {
				stmts = append(stmts, fmt.Sprintf("SET IDENTITY_INSERT %s OFF", tmpQuoted))
			}
		}

		stmts = append(stmts, fmt.Sprintf("DROP TABLE %s", r.tableName(tables.Previous)))
		stmts = append(stmts, fmt.Sprintf("EXEC SP_RENAME N%s, N%s",
			quoteLiteral(ns+"."+tmpName), quoteLiteral(tables.Next.Name())))

		for _, index := range tables.Next.Indexes() {
			created, err := r.RenderCreateIndex(index)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, created...)
		}
	}

	stmts = append(stmts, "COMMIT")
	return stmts, nil
}

func (r *MSSQLRenderer) RenderCreateIndex(index schema.IndexWalker) ([]string, error) {
	kind := "NONCLUSTERED "
	if index.IsUnique() {
		kind = "UNIQUE NONCLUSTERED "
	}
	var cols []string
	for _, col := range index.Columns() {
		cols = append(cols, quoteBracket(col.Name()))
	}
	return []string{fmt.Sprintf("CREATE %sINDEX %s ON %s(%s)",
		kind, quoteBracket(index.Name()), r.tableName(index.Table()), strings.Join(cols, ", "))}, nil
}

func (r *MSSQLRenderer) RenderDropIndex(index schema.IndexWalker) ([]string, error) {
	return []string{fmt.Sprintf("DROP INDEX %s ON %s",
		quoteBracket(index.Name()), r.tableName(index.Table()))}, nil
}

func (r *MSSQLRenderer) RenderRenameIndex(indexes schema.Pair[schema.IndexWalker]) ([]string, error) {
	return []string{fmt.Sprintf("EXEC SP_RENAME N%s, N%s, N'INDEX'",
		quoteLiteral(r.rawTableName(indexes.Previous.Table())+"."+indexes.Previous.Name()),
		quoteLiteral(indexes.Next.Name()))}, nil
}

func (r *MSSQLRenderer) RenderAddForeignKey(fk schema.ForeignKeyWalker) ([]string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ADD ", r.tableName(fk.Table()))
	if fk.ConstraintName() != "" {
		fmt.Fprintf(&b, "CONSTRAINT %s ", quoteBracket(fk.ConstraintName()))
	}
	var cols, refs []string
	for _, col := range fk.ConstrainedColumns() {
		cols = append(cols, quoteBracket(col.Name()))
	}
	for _, col := range fk.ReferencedColumns() {
		refs = append(refs, quoteBracket(col.Name()))
	}
	fmt.Fprintf(&b, "FOREIGN KEY (%s) REFERENCES %s(%s) ON DELETE %s ON UPDATE %s",
		strings.Join(cols, ", "), r.tableName(fk.ReferencedTable()), strings.Join(refs, ", "),
		fk.OnDelete(), fk.OnUpdate())
	return []string{b.String()}, nil
}

func (r *MSSQLRenderer) RenderDropForeignKey(fk schema.ForeignKeyWalker) ([]string, error) {
	return []string{fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s",
		r.tableName(fk.Table()), quoteBracket(fk.ConstraintName()))}, nil
}

func (r *MSSQLRenderer) RenderRenameForeignKey(keys schema.Pair[schema.ForeignKeyWalker]) ([]string, error) {
	ns := mssqlDefaultSchema
	if name, ok := keys.Previous.Table().NamespaceName(); ok {
		ns = name
	}
	return []string{fmt.Sprintf("EXEC SP_RENAME N%s, N%s, N'OBJECT'",
		quoteLiteral(ns+"."+keys.Previous.ConstraintName()),
		quoteLiteral(keys.Next.ConstraintName()))}, nil
}

// renderColumn renders one column definition line. Defaults become named
// constraints so later migrations can drop them.
func (r *MSSQLRenderer) renderColumn(column schema.ColumnWalker) string {
	nullability := ""
	if column.IsRequired() {
		nullability = " NOT NULL"
	}
	identity := ""
	if column.IsAutoIncrement() {
		identity = " IDENTITY(1,1)"
	}
	defaultStr := ""
	if d := column.Default(); d != nil {
		if rendered := r.renderDefault(d); rendered != "" {
			defaultStr = fmt.Sprintf(" CONSTRAINT %s DEFAULT %s",
				quoteBracket(r.defaultConstraintName(column, d)), rendered)
		}
	}
	return fmt.Sprintf("%s%s %s%s%s%s", sqlIndentation, quoteBracket(column.Name()),
		r.columnType(column), nullability, identity, defaultStr)
}

func (r *MSSQLRenderer) columnType(column schema.ColumnWalker) string {
	if native := column.Type().Native; native != "" {
		return native
	}
	switch column.Type().Family {
	case schema.FamilyInt:
		return "INT"
	case schema.FamilyBigInt:
		return "BIGINT"
	case schema.FamilyFloat:
		return "FLOAT(53)"
	case schema.FamilyDecimal:
		return "DECIMAL(32,16)"
	case schema.FamilyBoolean:
		return "BIT"
	case schema.FamilyString:
		return "NVARCHAR(1000)"
	case schema.FamilyDateTime:
		return "DATETIME2"
	case schema.FamilyJSON:
		return "NVARCHAR(max)"
	case schema.FamilyBytes:
		return "VARBINARY(max)"
	case schema.FamilyUUID:
		return "UNIQUEIDENTIFIER"
	case schema.FamilyUnsupported:
		return column.Type().Unsupported
	}
	return "NVARCHAR(1000)"
}

func (r *MSSQLRenderer) renderDefault(d *schema.Default) string {
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
				return "1"
			}
			return "0"
		case schema.ValueBytes:
			return fmt.Sprintf("0x%x", d.Value.Bytes)
		}
	}
	return ""
}
