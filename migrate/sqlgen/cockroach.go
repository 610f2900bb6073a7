package sqlgen

import (
	"fmt"
	"strings"

	"github.com/sqlmorph/sqlmorph/migrate/diff"
	"github.com/sqlmorph/sqlmorph/schema"
)

// cockroachRedefinePrefix names the temporary table during a redefinition.
const cockroachRedefinePrefix = "_sqlmorph_new_"

// NewCockroachRenderer creates a CockroachDB renderer. It shares quoting and
// most statement shapes with PostgreSQL.
func NewCockroachRenderer() *PostgresRenderer {
	return &PostgresRenderer{cockroach: true}
}

// cockroachNativeType maps a type family to CockroachDB's default native
// type.
func (r *PostgresRenderer) cockroachNativeType(column schema.ColumnWalker) string {
	switch column.Type().Family {
	case schema.FamilyInt:
		return "INT4"
	case schema.FamilyBigInt:
		return "INT8"
	case schema.FamilyFloat:
		return "FLOAT8"
	case schema.FamilyDecimal:
		return "DECIMAL(65,30)"
	case schema.FamilyBoolean:
		return "BOOL"
	case schema.FamilyString:
		return "STRING"
	case schema.FamilyDateTime:
		return "TIMESTAMP(3)"
	case schema.FamilyJSON:
		return "JSONB"
	case schema.FamilyBytes:
		return "BYTES"
	case schema.FamilyUUID:
		return "UUID"
	case schema.FamilyEnum:
		if enum, ok := column.EnumType(); ok {
			return r.enumName(enum)
		}
	case schema.FamilyUnsupported:
		return column.Type().Unsupported
	}
	return "STRING"
}

// cockroachIdentity renders the identity clause of an autoincrementing
// column. CockroachDB has no SERIAL pseudo-types worth emitting, identity
// columns are spelled out.
func (r *PostgresRenderer) cockroachIdentity(column schema.ColumnWalker) string {
	if !column.IsAutoIncrement() {
		return ""
	}
	var opts schema.SequenceOptions
	if ext := schema.PostgresExtOf(column.Schema); ext != nil {
		opts = ext.IdentityColumns[column.ID]
	}
	if opts.IsDefault() {
		return " GENERATED BY DEFAULT AS IDENTITY"
	}
	var parts []string
	if opts.Increment != 0 {
		parts = append(parts, fmt.Sprintf("INCREMENT %d", opts.Increment))
	}
	if opts.MinValue != 0 {
		parts = append(parts, fmt.Sprintf("MINVALUE %d", opts.MinValue))
	}
	if opts.MaxValue != 0 {
		parts = append(parts, fmt.Sprintf("MAXVALUE %d", opts.MaxValue))
	}
	if opts.Start != 0 {
		parts = append(parts, fmt.Sprintf("START %d", opts.Start))
	}
	if opts.Cache != 0 {
		parts = append(parts, fmt.Sprintf("CACHE %d", opts.Cache))
	}
	return fmt.Sprintf(" GENERATED BY DEFAULT AS IDENTITY (%s)", strings.Join(parts, " "))
}

// renderCockroachAlterEnum adds and drops enum values in place. The engine
// supports DROP VALUE, so no type recreation is needed, but defaults
// referencing a dropped value must go first.
func (r *PostgresRenderer) renderCockroachAlterEnum(step diff.AlterEnum, schemas schema.Schemas) (StepOutput, error) {
	enums := schema.EnumPair(schemas, step.Enums)
	var out StepOutput

	// Only defaults naming a dropped variant block the DROP VALUE.
	for _, usage := range step.PreviousUsagesAsDefault {
		column := schemas.Previous.WalkColumn(usage.Previous)
		d := column.Default()
		if d == nil || d.Kind != schema.DefaultValue || d.Value.Kind != schema.ValueEnum {
			continue
		}
		if !droppedVariant(step.DroppedVariants, d.Value.Str) {
			continue
		}
		out.Statements = append(out.Statements, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT",
			r.tableName(column.Table()), quoteDouble(column.Name())))
	}

	for _, variant := range step.CreatedVariants {
		out.Statements = append(out.Statements, fmt.Sprintf("ALTER TYPE %s ADD VALUE %s",
			r.enumName(enums.Next), quoteLiteral(variant)))
	}
	for _, variant := range step.DroppedVariants {
		out.Statements = append(out.Statements, fmt.Sprintf("ALTER TYPE %s DROP VALUE %s",
			r.enumName(enums.Previous), quoteLiteral(variant)))
	}
	return out, nil
}

func droppedVariant(dropped []string, name string) bool {
	for _, v := range dropped {
		if v == name {
			return true
		}
	}
	return false
}

// renderCockroachRedefineTables rebuilds each table under a temporary name,
// copies the surviving columns over, then swaps the names. Dropping the
// previous table cascades through its inbound foreign keys, so the new
// shape's indexes, its own foreign keys and the keys referencing it are all
// recreated after the rename.
func (r *PostgresRenderer) renderCockroachRedefineTables(step diff.RedefineTables, schemas schema.Schemas) ([]string, error) {
	var stmts []string
	for _, redefine := range step.Tables {
		tables := schema.TablePair(schemas, redefine.Tables)
		tmpName := cockroachRedefinePrefix + tables.Next.Name()
		tmpQuoted := quoteDouble(tmpName)
		if ns, ok := tables.Next.NamespaceName(); ok {
			tmpQuoted = quoteDouble(ns) + "." + tmpQuoted
		}

		stmts = append(stmts, r.renderCreateTableAs(tables.Next, tmpQuoted))

		var prevCols, nextCols []string
		for _, pair := range redefine.ColumnPairs {
			columns := schema.ColumnPair(schemas, pair.Columns)
			prevCols = append(prevCols, quoteDouble(columns.Previous.Name()))
			nextCols = append(nextCols, quoteDouble(columns.Next.Name()))
		}
		if len(prevCols) > 0 {
			stmts = append(stmts, fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s",
				tmpQuoted, strings.Join(nextCols, ", "), strings.Join(prevCols, ", "),
				r.tableName(tables.Previous)))
		}

		stmts = append(stmts, fmt.Sprintf("DROP TABLE %s CASCADE", r.tableName(tables.Previous)))
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s RENAME TO %s", tmpQuoted, quoteDouble(tables.Next.Name())))

		for _, index := range tables.Next.Indexes() {
			created, err := r.RenderCreateIndex(index)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, created...)
		}
		for _, fk := range tables.Next.ForeignKeys() {
			added, err := r.RenderAddForeignKey(fk)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, added...)
		}
		for _, fk := range tables.Next.ReferencingForeignKeys() {
			added, err := r.RenderAddForeignKey(fk)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, added...)
		}
	}
	return stmts, nil
}
