package sqlgen

import (
	"fmt"
	"strings"

	version "github.com/hashicorp/go-version"

	"github.com/sqlmorph/sqlmorph/migrate/diff"
	"github.com/sqlmorph/sqlmorph/schema"
)

// sqlIndentation indents column and constraint lines inside CREATE TABLE.
const sqlIndentation = "    "

// multiAddValueAdvisory is prepended to the first statement when one
// migration adds several values to an enum.
const multiAddValueAdvisory = `-- This migration adds more than one value to an enum.
-- With PostgreSQL versions 11 and earlier, this is not possible
-- in a single migration. This can be worked around by creating
-- multiple migrations, each migration adding only one value to
-- the enum.`

// PostgresRenderer renders DDL for PostgreSQL. With cockroach set it serves
// CockroachDB instead, which shares quoting and most statement shapes but
// differs in types, identity columns, enum alteration and statement
// packaging.
type PostgresRenderer struct {
	cockroach bool
	// engineVersion suppresses the multi ADD VALUE advisory when the
	// target server is known to be v12 or later. Unknown versions keep the
	// advisory.
	engineVersion *version.Version
}

// PostgresOption configures a PostgresRenderer.
type PostgresOption func(*PostgresRenderer)

// WithEngineVersion declares the target server version.
func WithEngineVersion(v *version.Version) PostgresOption {
	return func(r *PostgresRenderer) { r.engineVersion = v }
}

// NewPostgresRenderer creates a PostgreSQL renderer.
func NewPostgresRenderer(opts ...PostgresOption) *PostgresRenderer {
	r := &PostgresRenderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Provider returns the provider name.
func (r *PostgresRenderer) Provider() string {
	if r.cockroach {
		return "cockroachdb"
	}
	return "postgresql"
}

// ScriptWrapper returns the script prologue and epilogue.
func (r *PostgresRenderer) ScriptWrapper() (string, string) { return "", "" }

// tableName renders the optionally namespace-qualified table name.
func (r *PostgresRenderer) tableName(t schema.TableWalker) string {
	if ns, ok := t.NamespaceName(); ok {
		return quoteDouble(ns) + "." + quoteDouble(t.Name())
	}
	return quoteDouble(t.Name())
}

// enumName renders the optionally namespace-qualified enum name.
func (r *PostgresRenderer) enumName(e schema.EnumWalker) string {
	if ns, ok := e.NamespaceName(); ok {
		return quoteDouble(ns) + "." + quoteDouble(e.Name())
	}
	return quoteDouble(e.Name())
}

func (r *PostgresRenderer) RenderCreateNamespace(ns schema.NamespaceWalker) ([]string, error) {
	return []string{fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", quoteDouble(ns.Name()))}, nil
}

func (r *PostgresRenderer) RenderCreateExtension(ext schema.ExtensionWalker) ([]string, error) {
	if r.cockroach {
		return nil, unsupported(r.Provider(), "CreateExtension")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE EXTENSION IF NOT EXISTS %s", quoteDouble(ext.Name()))
	if ext.Get().Schema != "" {
		fmt.Fprintf(&b, " WITH SCHEMA %s", quoteDouble(ext.Get().Schema))
	}
	if ext.Get().Version != "" {
		fmt.Fprintf(&b, " VERSION %s", quoteLiteral(ext.Get().Version))
	}
	return []string{b.String()}, nil
}

func (r *PostgresRenderer) RenderDropExtension(ext schema.ExtensionWalker) ([]string, error) {
	if r.cockroach {
		return nil, unsupported(r.Provider(), "DropExtension")
	}
	return []string{fmt.Sprintf("DROP EXTENSION %s", quoteDouble(ext.Name()))}, nil
}

func (r *PostgresRenderer) RenderAlterExtension(step diff.AlterExtension, schemas schema.Schemas) ([]string, error) {
	if r.cockroach {
		return nil, unsupported(r.Provider(), "AlterExtension")
	}
	next := schemas.Next.WalkExtension(step.Extensions.Next)
	var stmts []string
	if step.Changes&diff.ExtensionChangedVersion != 0 {
		stmts = append(stmts, fmt.Sprintf("ALTER EXTENSION %s UPDATE TO %s",
			quoteDouble(next.Name()), quoteLiteral(next.Get().Version)))
	}
	if step.Changes&diff.ExtensionChangedSchema != 0 {
		stmts = append(stmts, fmt.Sprintf("ALTER EXTENSION %s SET SCHEMA %s",
			quoteDouble(next.Name()), quoteDouble(next.Get().Schema)))
	}
	return stmts, nil
}

func (r *PostgresRenderer) RenderCreateEnum(enum schema.EnumWalker) ([]string, error) {
	variants := make([]string, len(enum.Variants()))
	for i, v := range enum.Variants() {
		variants[i] = quoteLiteral(v)
	}
	return []string{fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", r.enumName(enum), strings.Join(variants, ", "))}, nil
}

func (r *PostgresRenderer) RenderDropEnum(enum schema.EnumWalker) ([]string, error) {
	return []string{fmt.Sprintf("DROP TYPE %s", r.enumName(enum))}, nil
}

func (r *PostgresRenderer) RenderAlterEnum(step diff.AlterEnum, schemas schema.Schemas) (StepOutput, error) {
	if r.cockroach {
		return r.renderCockroachAlterEnum(step, schemas)
	}
	return r.renderPostgresAlterEnum(step, schemas)
}

// renderPostgresAlterEnum adds values in place when nothing was dropped, and
// otherwise recreates the type under a temporary name, casting every usage
// through text, inside one transaction.
func (r *PostgresRenderer) renderPostgresAlterEnum(step diff.AlterEnum, schemas schema.Schemas) (StepOutput, error) {
	enums := schema.EnumPair(schemas, step.Enums)
	var out StepOutput

	if len(step.DroppedVariants) == 0 {
		for _, variant := range step.CreatedVariants {
			out.Statements = append(out.Statements, fmt.Sprintf("ALTER TYPE %s ADD VALUE %s",
				r.enumName(enums.Next), quoteLiteral(variant)))
		}
		if len(out.Statements) > 1 && r.advisoryNeeded() {
			out.Statements[0] = multiAddValueAdvisory + "\n\n" + out.Statements[0]
			out.Warnings = append(out.Warnings, fmt.Sprintf(
				"adding multiple values to enum %s requires PostgreSQL 12 or later in a single migration", enums.Next.Name()))
		}
		return out, nil
	}

	tmpName := enums.Next.Name() + "_new"
	tmpOldName := enums.Previous.Name() + "_old"
	tmpQuoted := r.prefixedName(enums.Next, tmpName)

	out.Statements = append(out.Statements, "BEGIN")

	variants := make([]string, len(enums.Next.Variants()))
	for i, v := range enums.Next.Variants() {
		variants[i] = quoteLiteral(v)
	}
	out.Statements = append(out.Statements, fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)",
		tmpQuoted, strings.Join(variants, ", ")))

	// Defaults referencing the type block the cast. Drop them first.
	for _, usage := range step.PreviousUsagesAsDefault {
		column := schemas.Previous.WalkColumn(usage.Previous)
		out.Statements = append(out.Statements, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT",
			r.tableName(column.Table()), quoteDouble(column.Name())))
	}

	// Retype every column using the enum, casting through text.
	for i := range schemas.Next.Columns {
		column := schemas.Next.WalkColumn(schema.ColumnID(i))
		enum, ok := column.EnumType()
		if !ok || enum.ID != enums.Next.ID {
			continue
		}
		array := ""
		if column.IsList() {
			array = "[]"
		}
		out.Statements = append(out.Statements, fmt.Sprintf(
			"ALTER TABLE %s ALTER COLUMN %s TYPE %s%s USING (%s::text::%s%s)",
			r.tableName(column.Table()), quoteDouble(column.Name()),
			tmpQuoted, array, quoteDouble(column.Name()), tmpQuoted, array))
	}

	out.Statements = append(out.Statements,
		fmt.Sprintf("ALTER TYPE %s RENAME TO %s", r.enumName(enums.Previous), quoteDouble(tmpOldName)),
		fmt.Sprintf("ALTER TYPE %s RENAME TO %s", tmpQuoted, quoteDouble(enums.Next.Name())),
		fmt.Sprintf("DROP TYPE %s", r.prefixedName(enums.Previous, tmpOldName)),
	)

	// Reinstate the defaults that survived.
	for _, usage := range step.PreviousUsagesAsDefault {
		if usage.Next == nil {
			continue
		}
		column := schemas.Next.WalkColumn(*usage.Next)
		d := column.Default()
		if d == nil {
			continue
		}
		out.Statements = append(out.Statements, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s",
			r.tableName(column.Table()), quoteDouble(column.Name()),
			r.renderDefault(d, r.columnType(column))))
	}

	out.Statements = append(out.Statements, "COMMIT")
	return out, nil
}

// advisoryNeeded reports whether the multi ADD VALUE advisory applies: the
// server version is unknown or older than 12.
func (r *PostgresRenderer) advisoryNeeded() bool {
	if r.engineVersion == nil {
		return true
	}
	return r.engineVersion.LessThan(version.Must(version.NewVersion("12.0.0")))
}

// prefixedName qualifies an arbitrary name with the enum's namespace.
func (r *PostgresRenderer) prefixedName(e schema.EnumWalker, name string) string {
	if ns, ok := e.NamespaceName(); ok {
		return quoteDouble(ns) + "." + quoteDouble(name)
	}
	return quoteDouble(name)
}

func (r *PostgresRenderer) RenderCreateSequence(seq schema.SequenceWalker) ([]string, error) {
	s := seq.Get()
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE SEQUENCE %s", quoteDouble(s.Name))
	if s.MinValue != 0 {
		fmt.Fprintf(&b, " MINVALUE %d", s.MinValue)
	}
	if s.MaxValue != 0 {
		fmt.Fprintf(&b, " MAXVALUE %d", s.MaxValue)
	}
	if s.Increment != 0 {
		fmt.Fprintf(&b, " INCREMENT %d", s.Increment)
	}
	if s.Start != 0 {
		fmt.Fprintf(&b, " START %d", s.Start)
	}
	if s.Cache != 0 {
		fmt.Fprintf(&b, " CACHE %d", s.Cache)
	}
	return []string{b.String()}, nil
}

func (r *PostgresRenderer) RenderDropSequence(seq schema.SequenceWalker) ([]string, error) {
	return []string{fmt.Sprintf("DROP SEQUENCE %s", quoteDouble(seq.Name()))}, nil
}

func (r *PostgresRenderer) RenderAlterSequence(step diff.AlterSequence, schemas schema.Schemas) ([]string, error) {
	prev := schemas.Previous.Sequences[step.Sequences.Previous]
	next := schemas.Next.Sequences[step.Sequences.Next]
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER SEQUENCE %s", quoteDouble(prev.Name))
	if step.Changes&diff.SequenceChangedMinValue != 0 {
		fmt.Fprintf(&b, " MINVALUE %d", next.MinValue)
	}
	if step.Changes&diff.SequenceChangedMaxValue != 0 {
		fmt.Fprintf(&b, " MAXVALUE %d", next.MaxValue)
	}
	if step.Changes&diff.SequenceChangedIncrement != 0 {
		fmt.Fprintf(&b, " INCREMENT %d", next.Increment)
	}
	if step.Changes&diff.SequenceChangedStart != 0 {
		fmt.Fprintf(&b, " START %d", next.Start)
	}
	if step.Changes&diff.SequenceChangedCache != 0 {
		fmt.Fprintf(&b, " CACHE %d", next.Cache)
	}
	return []string{b.String()}, nil
}

func (r *PostgresRenderer) RenderDropView(view schema.ViewWalker) ([]string, error) {
	return []string{fmt.Sprintf("DROP VIEW %s", quoteDouble(view.Name()))}, nil
}

func (r *PostgresRenderer) RenderCreateTable(table schema.TableWalker) ([]string, error) {
	return []string{r.renderCreateTableAs(table, r.tableName(table))}, nil
}

func (r *PostgresRenderer) renderCreateTableAs(table schema.TableWalker, tableName string) string {
	var columns []string
	for _, column := range table.Columns() {
		columns = append(columns, r.renderColumn(column))
	}

	pk := ""
	if table.PrimaryKey() != nil {
		var pkCols []string
		for _, col := range table.PrimaryKeyColumns() {
			pkCols = append(pkCols, quoteDouble(col.Name()))
		}
		named := ""
		if name := table.PrimaryKey().Name; name != "" {
			named = fmt.Sprintf("CONSTRAINT %s ", quoteDouble(name))
		}
		pk = fmt.Sprintf(",\n\n%s%sPRIMARY KEY (%s)", sqlIndentation, named, strings.Join(pkCols, ","))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s%s\n)", tableName, strings.Join(columns, ",\n"), pk)
}

func (r *PostgresRenderer) RenderDropTable(table schema.TableWalker) ([]string, error) {
	if r.cockroach {
		return []string{fmt.Sprintf("DROP TABLE %s CASCADE", r.tableName(table))}, nil
	}
	return []string{fmt.Sprintf("DROP TABLE %s", r.tableName(table))}, nil
}

func (r *PostgresRenderer) RenderAlterTable(step diff.AlterTable, schemas schema.Schemas) ([]string, error) {
	tables := schema.TablePair(schemas, step.Tables)
	var lines, before, after []string

	for _, change := range step.Changes {
		switch c := change.(type) {
		case diff.DropPrimaryKey:
			pk := tables.Previous.PrimaryKey()
			if pk == nil {
				return nil, invariantf("DropPrimaryKey on table %q without a primary key", tables.Previous.Name())
			}
			lines = append(lines, fmt.Sprintf("DROP CONSTRAINT %s", quoteDouble(pk.Name)))
		case diff.RenamePrimaryKey:
			lines = append(lines, fmt.Sprintf("RENAME CONSTRAINT %s TO %s",
				quoteDouble(tables.Previous.PrimaryKey().Name), quoteDouble(tables.Next.PrimaryKey().Name)))
		case diff.AddPrimaryKey:
			pk := tables.Next.PrimaryKey()
			if pk == nil {
				return nil, invariantf("AddPrimaryKey on table %q without a primary key", tables.Next.Name())
			}
			var pkCols []string
			for _, col := range tables.Next.PrimaryKeyColumns() {
				pkCols = append(pkCols, quoteDouble(col.Name()))
			}
			named := ""
			if pk.Name != "" {
				named = fmt.Sprintf("CONSTRAINT %s ", quoteDouble(pk.Name))
			}
			lines = append(lines, fmt.Sprintf("ADD %sPRIMARY KEY (%s)", named, strings.Join(pkCols, ", ")))
		case diff.AddColumn:
			column := schemas.Next.WalkColumn(c.Column)
			lines = append(lines, fmt.Sprintf("ADD COLUMN %s", strings.TrimPrefix(r.renderColumn(column), sqlIndentation)))
		case diff.DropColumn:
			lines = append(lines, fmt.Sprintf("DROP COLUMN %s", quoteDouble(schemas.Previous.WalkColumn(c.Column).Name())))
		case diff.AlterColumn:
			columns := schema.ColumnPair(schemas, c.Columns)
			r.renderAlterColumn(columns, c.Changes, &before, &lines, &after)
		case diff.DropAndRecreateColumn:
			columns := schema.ColumnPair(schemas, c.Columns)
			lines = append(lines, fmt.Sprintf("DROP COLUMN %s", quoteDouble(columns.Previous.Name())))
			lines = append(lines, fmt.Sprintf("ADD COLUMN %s", strings.TrimPrefix(r.renderColumn(columns.Next), sqlIndentation)))
		default:
			return nil, invariantf("unexpected table change %T", change)
		}
	}

	if len(lines) == 0 {
		return nil, nil
	}

	var out []string
	out = append(out, before...)
	if r.cockroach {
		// CockroachDB executes schema changes asynchronously and rejects
		// several combined clauses, so every clause is its own statement.
		for _, line := range lines {
			out = append(out, fmt.Sprintf("ALTER TABLE %s %s", r.tableName(tables.Previous), line))
		}
	} else {
		out = append(out, fmt.Sprintf("ALTER TABLE %s %s", r.tableName(tables.Previous), strings.Join(lines, ",\n")))
	}
	out = append(out, after...)
	return out, nil
}

// renderAlterColumn expands one AlterColumn into clauses plus statements
// that must run before or after the ALTER TABLE.
func (r *PostgresRenderer) renderAlterColumn(columns schema.Pair[schema.ColumnWalker], changes diff.ColumnChanges, before, lines, after *[]string) {
	prefix := fmt.Sprintf("ALTER COLUMN %s", quoteDouble(columns.Previous.Name()))

	for _, op := range ExpandAlterColumn(columns, changes) {
		switch op.Kind {
		case AlterColumnSetDefault:
			*lines = append(*lines, fmt.Sprintf("%s SET DEFAULT %s", prefix,
				r.renderDefault(op.Default, r.columnType(columns.Next))))
		case AlterColumnDropDefault:
			*lines = append(*lines, fmt.Sprintf("%s DROP DEFAULT", prefix))
		case AlterColumnDropNotNull:
			*lines = append(*lines, fmt.Sprintf("%s DROP NOT NULL", prefix))
		case AlterColumnSetNotNull:
			*lines = append(*lines, fmt.Sprintf("%s SET NOT NULL", prefix))
		case AlterColumnSetType:
			*lines = append(*lines, fmt.Sprintf("%s SET DATA TYPE %s", prefix, r.columnType(columns.Next)))
		case AlterColumnAddSequence:
			// A fresh sequence becomes the column default and is owned by
			// the column so it is dropped with it.
			seqName := strings.ToLower(fmt.Sprintf("%s_%s_seq", columns.Next.Table().Name(), columns.Next.Name()))
			*before = append(*before, fmt.Sprintf("CREATE SEQUENCE %s", quoteDouble(seqName)))
			*lines = append(*lines, fmt.Sprintf("%s SET DEFAULT nextval(%s)", prefix, quoteLiteral(quoteDouble(seqName))))
			*after = append(*after, fmt.Sprintf("ALTER SEQUENCE %s OWNED BY %s.%s",
				quoteDouble(seqName), r.tableName(columns.Next.Table()), quoteDouble(columns.Next.Name())))
		case AlterColumnDropSequence:
			// Only reached when no other column draws from the sequence.
			*after = append(*after, fmt.Sprintf("DROP SEQUENCE %s", quoteDouble(op.Sequence)))
		}
	}
}

func (r *PostgresRenderer) RenderRedefineTables(step diff.RedefineTables, schemas schema.Schemas) ([]string, error) {
	if !r.cockroach {
		return nil, unsupported(r.Provider(), "RedefineTables")
	}
	return r.renderCockroachRedefineTables(step, schemas)
}

func (r *PostgresRenderer) RenderCreateIndex(index schema.IndexWalker) ([]string, error) {
	unique := ""
	if index.IsUnique() {
		unique = "UNIQUE "
	}
	using := ""
	if ext := schema.PostgresExtOf(index.Schema); ext != nil {
		if method := ext.IndexMethods[index.ID]; method != "" {
			using = fmt.Sprintf(" USING %s", strings.ToUpper(method))
		}
	}
	var cols []string
	for _, col := range index.Columns() {
		cols = append(cols, quoteDouble(col.Name()))
	}
	return []string{fmt.Sprintf("CREATE %sINDEX %s ON %s%s(%s)",
		unique, quoteDouble(index.Name()), r.tableName(index.Table()), using, strings.Join(cols, ", "))}, nil
}

func (r *PostgresRenderer) RenderDropIndex(index schema.IndexWalker) ([]string, error) {
	// Constraint-backed indexes go through ALTER TABLE.
	if ext := schema.PostgresExtOf(index.Schema); ext != nil && ext.ConstraintIndexes[index.ID] {
		return []string{fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s",
			r.tableName(index.Table()), quoteDouble(index.Name()))}, nil
	}
	name := quoteDouble(index.Name())
	if ns, ok := index.Table().NamespaceName(); ok {
		name = quoteDouble(ns) + "." + name
	}
	return []string{fmt.Sprintf("DROP INDEX %s", name)}, nil
}

func (r *PostgresRenderer) RenderRenameIndex(indexes schema.Pair[schema.IndexWalker]) ([]string, error) {
	prevName := quoteDouble(indexes.Previous.Name())
	if ns, ok := indexes.Previous.Table().NamespaceName(); ok {
		prevName = quoteDouble(ns) + "." + prevName
	}
	return []string{fmt.Sprintf("ALTER INDEX %s RENAME TO %s", prevName, quoteDouble(indexes.Next.Name()))}, nil
}

func (r *PostgresRenderer) RenderAddForeignKey(fk schema.ForeignKeyWalker) ([]string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ADD ", r.tableName(fk.Table()))
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
	fmt.Fprintf(&b, "FOREIGN KEY (%s) REFERENCES %s(%s) ON DELETE %s ON UPDATE %s",
		strings.Join(cols, ", "), r.tableName(fk.ReferencedTable()), strings.Join(refs, ", "),
		fk.OnDelete(), fk.OnUpdate())
	return []string{b.String()}, nil
}

func (r *PostgresRenderer) RenderDropForeignKey(fk schema.ForeignKeyWalker) ([]string, error) {
	return []string{fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s",
		r.tableName(fk.Table()), quoteDouble(fk.ConstraintName()))}, nil
}

func (r *PostgresRenderer) RenderRenameForeignKey(keys schema.Pair[schema.ForeignKeyWalker]) ([]string, error) {
	return []string{fmt.Sprintf("ALTER TABLE %s RENAME CONSTRAINT %s TO %s",
		r.tableName(keys.Next.Table()), quoteDouble(keys.Previous.ConstraintName()), quoteDouble(keys.Next.ConstraintName()))}, nil
}

// renderColumn renders one column definition line of a CREATE TABLE.
func (r *PostgresRenderer) renderColumn(column schema.ColumnWalker) string {
	nullability := ""
	if column.IsRequired() {
		nullability = " NOT NULL"
	}
	defaultStr := ""
	if d := column.Default(); d != nil {
		if rendered := r.renderDefault(d, r.columnType(column)); rendered != "" {
			defaultStr = " DEFAULT " + rendered
		}
	}
	identity := ""
	if r.cockroach {
		identity = r.cockroachIdentity(column)
	}
	return fmt.Sprintf("%s%s %s%s%s%s", sqlIndentation, quoteDouble(column.Name()),
		r.columnType(column), nullability, defaultStr, identity)
}

// columnType renders the full column type text, list suffix included.
func (r *PostgresRenderer) columnType(column schema.ColumnWalker) string {
	base := column.Type().Native
	if base == "" {
		if r.cockroach {
			base = r.cockroachNativeType(column)
		} else {
			base = r.postgresNativeType(column)
		}
	}
	if column.IsList() {
		return base + "[]"
	}
	return base
}

// postgresNativeType maps a type family to PostgreSQL's default native type.
func (r *PostgresRenderer) postgresNativeType(column schema.ColumnWalker) string {
	autoincrement := column.IsAutoIncrement()
	switch column.Type().Family {
	case schema.FamilyInt:
		if autoincrement {
			return "SERIAL"
		}
		return "INTEGER"
	case schema.FamilyBigInt:
		if autoincrement {
			return "BIGSERIAL"
		}
		return "BIGINT"
	case schema.FamilyFloat:
		return "DOUBLE PRECISION"
	case schema.FamilyDecimal:
		return "DECIMAL(65,30)"
	case schema.FamilyBoolean:
		return "BOOLEAN"
	case schema.FamilyString:
		return "TEXT"
	case schema.FamilyDateTime:
		return "TIMESTAMP(3)"
	case schema.FamilyJSON:
		return "JSONB"
	case schema.FamilyBytes:
		return "BYTEA"
	case schema.FamilyUUID:
		return "UUID"
	case schema.FamilyEnum:
		if enum, ok := column.EnumType(); ok {
			return r.enumName(enum)
		}
	case schema.FamilyUnsupported:
		return column.Type().Unsupported
	}
	return "TEXT"
}

// renderDefault renders a default value expression. fullType carries the
// complete column type for array literals.
func (r *PostgresRenderer) renderDefault(d *schema.Default, fullType string) string {
	switch d.Kind {
	case schema.DefaultDBGenerated:
		return d.Expr
	case schema.DefaultNow:
		return "CURRENT_TIMESTAMP"
	case schema.DefaultUniqueRowID:
		return "unique_rowid()"
	case schema.DefaultSequence:
		return fmt.Sprintf("nextval(%s)", quoteLiteral(quoteDouble(d.Sequence)))
	case schema.DefaultValue:
		return r.renderConstant(d.Value, fullType)
	}
	return ""
}

func (r *PostgresRenderer) renderConstant(v schema.Value, fullType string) string {
	switch v.Kind {
	case schema.ValueString, schema.ValueEnum, schema.ValueJSON, schema.ValueDateTime:
		return quoteLiteral(v.Str)
	case schema.ValueInt:
		return fmt.Sprintf("%d", v.Int)
	case schema.ValueFloat:
		return formatFloat(v.Float)
	case schema.ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case schema.ValueBytes:
		return fmt.Sprintf("'\\x%x'", v.Bytes)
	case schema.ValueList:
		var elems []string
		for _, elem := range v.List {
			elems = append(elems, r.renderConstant(elem, fullType))
		}
		return fmt.Sprintf("ARRAY[%s]::%s", strings.Join(elems, ", "), fullType)
	}
	return ""
}
