// Package migrate plans schema migrations: it diffs two snapshots into typed
// steps, checks them for destructive changes and renders dialect-correct SQL.
package migrate

import (
	"fmt"
	"strings"

	version "github.com/hashicorp/go-version"

	"github.com/sqlmorph/sqlmorph/internal/debug"
	"github.com/sqlmorph/sqlmorph/migrate/checker"
	"github.com/sqlmorph/sqlmorph/migrate/diff"
	"github.com/sqlmorph/sqlmorph/migrate/diff/flavour"
	"github.com/sqlmorph/sqlmorph/migrate/sqlgen"
	"github.com/sqlmorph/sqlmorph/schema"
)

// Options tweak plan construction.
type Options struct {
	// Force renders the statements even when the checker found
	// unexecutable changes.
	Force bool
	// EngineVersion is the target server version, currently only consulted
	// by the PostgreSQL renderer.
	EngineVersion string
}

// Plan is a complete migration plan between two snapshots.
type Plan struct {
	Provider string
	// Steps is the ordered, machine-readable reflection of the plan.
	Steps []diff.Step
	// Statements is the rendered DDL. Empty when unexecutable diagnostics
	// are present and the plan was not forced.
	Statements []string
	// Script is the assembled migration file content.
	Script string
	// Warnings surfaced during rendering.
	Warnings []string
	// Diagnostics are the checker's findings, in step order.
	Diagnostics []checker.Diagnostic

	schemas schema.Schemas
}

// NewPlan diffs previous against next and renders the migration for the
// given provider.
func NewPlan(previous, next *schema.Schema, provider string, opts Options) (*Plan, error) {
	f, ok := flavour.ForProvider(provider)
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", provider)
	}

	renderer, err := rendererFor(provider, opts)
	if err != nil {
		return nil, err
	}

	schemas := schema.Schemas{Previous: previous, Next: next}
	steps := diff.Steps(previous, next, f)
	diagnostics := checker.Check(steps, schemas)

	plan := &Plan{
		Provider:    f.Provider(),
		Steps:       steps,
		Diagnostics: diagnostics,
		schemas:     schemas,
	}

	if checker.HasUnexecutable(diagnostics) && !opts.Force {
		debug.Debug("plan withheld", "provider", plan.Provider, "diagnostics", len(diagnostics))
		return plan, nil
	}

	gen := sqlgen.NewGenerator(renderer)
	result, err := gen.Render(steps, schemas)
	if err != nil {
		return nil, fmt.Errorf("rendering migration for %s: %w", f.Provider(), err)
	}

	plan.Statements = result.Statements
	plan.Warnings = result.Warnings
	plan.Script = sqlgen.AssembleScript(result.Statements, renderer)
	debug.Debug("plan rendered", "provider", plan.Provider,
		"steps", len(steps), "statements", len(plan.Statements))
	return plan, nil
}

func rendererFor(provider string, opts Options) (sqlgen.Renderer, error) {
	switch provider {
	case "postgresql", "postgres":
		var pgOpts []sqlgen.PostgresOption
		if opts.EngineVersion != "" {
			v, err := version.NewVersion(opts.EngineVersion)
			if err != nil {
				return nil, fmt.Errorf("parsing engine version %q: %w", opts.EngineVersion, err)
			}
			pgOpts = append(pgOpts, sqlgen.WithEngineVersion(v))
		}
		return sqlgen.NewPostgresRenderer(pgOpts...), nil
	case "cockroachdb":
		return sqlgen.NewCockroachRenderer(), nil
	case "mysql":
		return sqlgen.NewMySQLRenderer(), nil
	case "sqlite":
		return sqlgen.NewSQLiteRenderer(), nil
	case "sqlserver", "mssql":
		return sqlgen.NewMSSQLRenderer(), nil
	}
	return nil, fmt.Errorf("unknown provider %q", provider)
}

// HasChanges reports whether the plan contains any step.
func (p *Plan) HasChanges() bool { return len(p.Steps) > 0 }

// Blocked reports whether unexecutable diagnostics withheld the statements.
func (p *Plan) Blocked() bool {
	return checker.HasUnexecutable(p.Diagnostics) && len(p.Statements) == 0 && len(p.Steps) > 0
}

// DriftSummary renders a markdown listing of the planned changes, one bullet
// per step, followed by the checker's findings.
func (p *Plan) DriftSummary() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Migration plan (%s)\n\n", p.Provider))

	if len(p.Steps) == 0 {
		b.WriteString("No changes detected.\n")
		return b.String()
	}

	b.WriteString("## Changes\n\n")
	for _, step := range p.Steps {
		b.WriteString("- ")
		b.WriteString(step.Describe(p.schemas))
		b.WriteString("\n")
	}

	if len(p.Diagnostics) > 0 {
		b.WriteString("\n## Diagnostics\n\n")
		for _, d := range p.Diagnostics {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", d.Severity, d.Message))
		}
	}

	if len(p.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range p.Warnings {
			b.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	return b.String()
}
