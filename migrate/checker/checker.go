// Package checker examines migration steps for destructive and unexecutable
// changes before anything is rendered. It never mutates the steps; callers
// decide whether diagnostics block the plan.
package checker

import (
	"fmt"
	"strings"

	"github.com/sqlmorph/sqlmorph/migrate/diff"
	"github.com/sqlmorph/sqlmorph/schema"
)

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityWarning marks a change that executes but loses data.
	SeverityWarning Severity = iota
	// SeverityUnexecutable marks a change that cannot execute against a
	// database holding rows, short of dropping the data.
	SeverityUnexecutable
)

func (s Severity) String() string {
	if s == SeverityUnexecutable {
		return "unexecutable"
	}
	return "warning"
}

// Diagnostic is one finding about a step sequence.
type Diagnostic struct {
	Severity Severity
	Message  string
	// Table and Column locate the finding when it concerns one object.
	Table  string
	Column string
}

func warning(table, column, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Table: table, Column: column, Message: fmt.Sprintf(format, args...)}
}

func unexecutable(table, column, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityUnexecutable, Table: table, Column: column, Message: fmt.Sprintf(format, args...)}
}

// HasUnexecutable reports whether any diagnostic is unexecutable.
func HasUnexecutable(diagnostics []Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Severity == SeverityUnexecutable {
			return true
		}
	}
	return false
}

// Check examines every step in order and returns the findings, preserving
// step order.
func Check(steps []diff.Step, schemas schema.Schemas) []Diagnostic {
	var diagnostics []Diagnostic
	for _, step := range steps {
		switch s := step.(type) {
		case diff.DropTable:
			table := schemas.Previous.WalkTable(s.Table)
			diagnostics = append(diagnostics, warning(table.Name(), "",
				"You are about to drop the `%s` table. All the data in it will be lost.", table.Name()))
		case diff.DropEnum:
			enum := schemas.Previous.WalkEnum(s.Enum)
			diagnostics = append(diagnostics, warning("", "",
				"You are about to drop the `%s` enum.", enum.Name()))
		case diff.AlterEnum:
			if len(s.DroppedVariants) > 0 {
				enum := schemas.Previous.WalkEnum(s.Enums.Previous)
				diagnostics = append(diagnostics, warning("", "",
					"The values [%s] on the enum `%s` will be removed. If these variants are still used in the database, this will fail.",
					strings.Join(s.DroppedVariants, ","), enum.Name()))
			}
		case diff.AlterTable:
			diagnostics = append(diagnostics, checkAlterTable(s, schemas)...)
		case diff.RedefineTables:
			for _, redefine := range s.Tables {
				diagnostics = append(diagnostics, checkRedefineTable(redefine, schemas)...)
			}
		}
	}
	return diagnostics
}

func checkAlterTable(step diff.AlterTable, schemas schema.Schemas) []Diagnostic {
	var diagnostics []Diagnostic
	tables := schema.TablePair(schemas, step.Tables)
	for _, change := range step.Changes {
		switch c := change.(type) {
		case diff.DropColumn:
			column := schemas.Previous.WalkColumn(c.Column)
			diagnostics = append(diagnostics, warning(tables.Previous.Name(), column.Name(),
				"You are about to drop the column `%s` on the `%s` table. All the data in the column will be lost.",
				column.Name(), tables.Previous.Name()))
		case diff.AddColumn:
			if d := checkAddedColumn(schemas.Next.WalkColumn(c.Column)); d != nil {
				diagnostics = append(diagnostics, *d)
			}
		case diff.DropAndRecreateColumn:
			columns := schema.ColumnPair(schemas, c.Columns)
			diagnostics = append(diagnostics, checkDropAndRecreate(columns))
		}
	}
	return diagnostics
}

func checkRedefineTable(redefine diff.RedefineTable, schemas schema.Schemas) []Diagnostic {
	var diagnostics []Diagnostic
	tables := schema.TablePair(schemas, redefine.Tables)
	for _, id := range redefine.DroppedColumns {
		column := schemas.Previous.WalkColumn(id)
		diagnostics = append(diagnostics, warning(tables.Previous.Name(), column.Name(),
			"You are about to drop the column `%s` on the `%s` table. All the data in the column will be lost.",
			column.Name(), tables.Previous.Name()))
	}
	for _, id := range redefine.AddedColumns {
		if d := checkAddedColumn(schemas.Next.WalkColumn(id)); d != nil {
			diagnostics = append(diagnostics, *d)
		}
	}
	for _, pair := range redefine.ColumnPairs {
		if pair.TypeChange != diff.NotCastable {
			continue
		}
		columns := schema.ColumnPair(schemas, pair.Columns)
		diagnostics = append(diagnostics, checkDropAndRecreate(columns))
	}
	return diagnostics
}

// checkAddedColumn flags a required column added without a default. With
// existing rows the database has no value to backfill.
func checkAddedColumn(column schema.ColumnWalker) *Diagnostic {
	if !column.IsRequired() || column.Default() != nil || column.IsAutoIncrement() {
		return nil
	}
	d := unexecutable(column.Table().Name(), column.Name(),
		"Added the required column `%s` to the `%s` table without a default value. This is not possible if the table is not empty.",
		column.Name(), column.Table().Name())
	return &d
}

// checkDropAndRecreate flags a column whose new type has no cast from the
// old one. Required columns make the step unexecutable without a force flag,
// nullable ones merely lose their values.
func checkDropAndRecreate(columns schema.Pair[schema.ColumnWalker]) Diagnostic {
	table := columns.Previous.Table().Name()
	name := columns.Previous.Name()
	if columns.Next.IsRequired() && columns.Next.Default() == nil {
		return unexecutable(table, name,
			"Changed the type of `%s` on the `%s` table. No cast exists, the column would be dropped and recreated, which cannot be done if there is data, since the column is required.",
			name, table)
	}
	return warning(table, name,
		"The `%s` column on the `%s` table would be dropped and recreated. This will lead to data loss.",
		name, table)
}
