package sqlgen

import (
	"strconv"
	"strings"

	"github.com/sqlmorph/sqlmorph/migrate/diff"
	"github.com/sqlmorph/sqlmorph/schema"
)

// StepOutput is the rendering of one step: the statements to execute plus
// any advisory warnings to surface with the plan.
type StepOutput struct {
	Statements []string
	Warnings   []string
}

// Renderer turns migration steps into dialect-correct DDL statements.
// Statements are returned without trailing semicolons; Script adds them.
type Renderer interface {
	// Provider returns the provider name the renderer serves.
	Provider() string

	RenderCreateNamespace(ns schema.NamespaceWalker) ([]string, error)

	RenderCreateExtension(ext schema.ExtensionWalker) ([]string, error)
	RenderDropExtension(ext schema.ExtensionWalker) ([]string, error)
	RenderAlterExtension(step diff.AlterExtension, schemas schema.Schemas) ([]string, error)

	RenderCreateEnum(enum schema.EnumWalker) ([]string, error)
	RenderDropEnum(enum schema.EnumWalker) ([]string, error)
	RenderAlterEnum(step diff.AlterEnum, schemas schema.Schemas) (StepOutput, error)

	RenderCreateSequence(seq schema.SequenceWalker) ([]string, error)
	RenderDropSequence(seq schema.SequenceWalker) ([]string, error)
	RenderAlterSequence(step diff.AlterSequence, schemas schema.Schemas) ([]string, error)

	RenderDropView(view schema.ViewWalker) ([]string, error)

	RenderCreateTable(table schema.TableWalker) ([]string, error)
	RenderDropTable(table schema.TableWalker) ([]string, error)
	RenderAlterTable(step diff.AlterTable, schemas schema.Schemas) ([]string, error)
	RenderRedefineTables(step diff.RedefineTables, schemas schema.Schemas) ([]string, error)

	RenderCreateIndex(index schema.IndexWalker) ([]string, error)
	RenderDropIndex(index schema.IndexWalker) ([]string, error)
	RenderRenameIndex(indexes schema.Pair[schema.IndexWalker]) ([]string, error)

	RenderAddForeignKey(fk schema.ForeignKeyWalker) ([]string, error)
	RenderDropForeignKey(fk schema.ForeignKeyWalker) ([]string, error)
	RenderRenameForeignKey(keys schema.Pair[schema.ForeignKeyWalker]) ([]string, error)

	// ScriptWrapper returns the raw text bracketing a non-empty script, or
	// two empty strings when the dialect needs none.
	ScriptWrapper() (prologue, epilogue string)
}

// quoteDouble quotes an identifier with double quotes, doubling embedded
// quotes (PostgreSQL, CockroachDB, SQLite).
func quoteDouble(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteBacktick quotes an identifier with backticks, doubling embedded
// backticks (MySQL).
func quoteBacktick(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// quoteBracket quotes an identifier with square brackets, doubling embedded
// closing brackets (SQL Server).
func quoteBracket(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// quoteLiteral quotes a string literal with single quotes, doubling embedded
// quotes. All five dialects share this escaping.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// formatFloat renders a float default without exponent notation for the
// common cases.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
