// Package sqlgen renders ordered migration steps into dialect-correct SQL.
package sqlgen

import (
	"github.com/sqlmorph/sqlmorph/internal/debug"
	"github.com/sqlmorph/sqlmorph/migrate/diff"
	"github.com/sqlmorph/sqlmorph/schema"
)

// Result is the rendered form of a step sequence. Statements carry no
// trailing semicolons, Script adds them.
type Result struct {
	Statements []string
	Warnings   []string
}

// Generator renders migration steps through a dialect renderer.
type Generator struct {
	renderer Renderer
}

// NewGenerator creates a generator around a renderer.
func NewGenerator(r Renderer) *Generator {
	return &Generator{renderer: r}
}

// ForProvider creates a generator with the default renderer of a provider.
// The second return value is false for unknown providers.
func ForProvider(provider string) (*Generator, bool) {
	switch provider {
	case "postgresql", "postgres":
		return NewGenerator(NewPostgresRenderer()), true
	case "cockroachdb":
		return NewGenerator(NewCockroachRenderer()), true
	case "mysql":
		return NewGenerator(NewMySQLRenderer()), true
	case "sqlite":
		return NewGenerator(NewSQLiteRenderer()), true
	case "sqlserver", "mssql":
		return NewGenerator(NewMSSQLRenderer()), true
	}
	return nil, false
}

// Provider returns the provider name of the underlying renderer.
func (g *Generator) Provider() string { return g.renderer.Provider() }

// Render renders every step in order.
func (g *Generator) Render(steps []diff.Step, schemas schema.Schemas) (Result, error) {
	var result Result
	for _, step := range steps {
		var (
			stmts    []string
			warnings []string
			err      error
		)
		switch s := step.(type) {
		case diff.CreateNamespace:
			stmts, err = g.renderer.RenderCreateNamespace(schemas.Next.WalkNamespace(s.Namespace))
		case diff.CreateExtension:
			stmts, err = g.renderer.RenderCreateExtension(schemas.Next.WalkExtension(s.Extension))
		case diff.DropExtension:
			stmts, err = g.renderer.RenderDropExtension(schemas.Previous.WalkExtension(s.Extension))
		case diff.AlterExtension:
			stmts, err = g.renderer.RenderAlterExtension(s, schemas)
		case diff.CreateEnum:
			stmts, err = g.renderer.RenderCreateEnum(schemas.Next.WalkEnum(s.Enum))
		case diff.DropEnum:
			stmts, err = g.renderer.RenderDropEnum(schemas.Previous.WalkEnum(s.Enum))
		case diff.AlterEnum:
			var out StepOutput
			out, err = g.renderer.RenderAlterEnum(s, schemas)
			stmts, warnings = out.Statements, out.Warnings
		case diff.CreateSequence:
			stmts, err = g.renderer.RenderCreateSequence(schemas.Next.WalkSequence(s.Sequence))
		case diff.DropSequence:
			stmts, err = g.renderer.RenderDropSequence(schemas.Previous.WalkSequence(s.Sequence))
		case diff.AlterSequence:
			stmts, err = g.renderer.RenderAlterSequence(s, schemas)
		case diff.DropView:
			stmts, err = g.renderer.RenderDropView(schemas.Previous.WalkView(s.View))
		case diff.CreateTable:
			stmts, err = g.renderer.RenderCreateTable(schemas.Next.WalkTable(s.Table))
		case diff.DropTable:
			stmts, err = g.renderer.RenderDropTable(schemas.Previous.WalkTable(s.Table))
		case diff.AlterTable:
			stmts, err = g.renderer.RenderAlterTable(s, schemas)
		case diff.RedefineTables:
			stmts, err = g.renderer.RenderRedefineTables(s, schemas)
		case diff.CreateIndex:
			stmts, err = g.renderer.RenderCreateIndex(schemas.Next.WalkIndex(s.Index))
		case diff.DropIndex:
			stmts, err = g.renderer.RenderDropIndex(schemas.Previous.WalkIndex(s.Index))
		case diff.RenameIndex:
			stmts, err = g.renderer.RenderRenameIndex(schema.IndexPair(schemas, s.Indexes))
		case diff.AddForeignKey:
			stmts, err = g.renderer.RenderAddForeignKey(schemas.Next.WalkForeignKey(s.ForeignKey))
		case diff.DropForeignKey:
			stmts, err = g.renderer.RenderDropForeignKey(schemas.Previous.WalkForeignKey(s.ForeignKey))
		case diff.RenameForeignKey:
			stmts, err = g.renderer.RenderRenameForeignKey(schema.ForeignKeyPair(schemas, s.ForeignKeys))
		default:
			err = invariantf("unknown migration step %T", step)
		}
		if err != nil {
			return Result{}, err
		}
		debug.Debug("rendered step",
			"provider", g.renderer.Provider(),
			"step", step.Describe(schemas),
			"statements", len(stmts))
		result.Statements = append(result.Statements, stmts...)
		result.Warnings = append(result.Warnings, warnings...)
	}
	return result, nil
}

// Script renders the steps and assembles them into one migration script.
func (g *Generator) Script(steps []diff.Step, schemas schema.Schemas) (string, error) {
	result, err := g.Render(steps, schemas)
	if err != nil {
		return "", err
	}
	return AssembleScript(result.Statements, g.renderer), nil
}
