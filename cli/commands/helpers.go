package commands

import (
	"fmt"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"

	"github.com/sqlmorph/sqlmorph/cli/internal/config"
	"github.com/sqlmorph/sqlmorph/migrate"
	"github.com/sqlmorph/sqlmorph/migrate/checker"
	"github.com/sqlmorph/sqlmorph/schema"
)

// loadSnapshot reads and validates one snapshot JSON file.
func loadSnapshot(fs afero.Fs, path string) (*schema.Schema, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()

	s, err := schema.DecodeJSON(f)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	if err := schema.Validate(s); err != nil {
		return nil, fmt.Errorf("validating snapshot %s: %w", path, err)
	}
	return s, nil
}

// buildPlan loads both snapshots and plans the migration.
func buildPlan(cfg *config.Config) (*migrate.Plan, error) {
	previous, err := loadSnapshot(config.AppFs, cfg.PreviousPath)
	if err != nil {
		return nil, err
	}
	next, err := loadSnapshot(config.AppFs, cfg.NextPath)
	if err != nil {
		return nil, err
	}
	return migrate.NewPlan(previous, next, cfg.Provider, migrate.Options{
		Force:         cfg.Force,
		EngineVersion: cfg.EngineVersion,
	})
}

// diagnosticRows flattens diagnostics for the table printer.
func diagnosticRows(diagnostics []checker.Diagnostic) [][]string {
	rows := make([][]string, 0, len(diagnostics))
	for _, d := range diagnostics {
		object := d.Table
		if d.Column != "" {
			object += "." + d.Column
		}
		rows = append(rows, []string{d.Severity.String(), object, d.Message})
	}
	return rows
}

// confirmDestructive asks before proceeding with a plan carrying
// diagnostics. Non-interactive callers pass --force instead.
func confirmDestructive(count int) (bool, error) {
	proceed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("The plan has %d diagnostic(s). Write the script anyway?", count),
		Default: false,
	}
	if err := survey.AskOne(prompt, &proceed); err != nil {
		return false, err
	}
	return proceed, nil
}
