package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sqlmorph/sqlmorph/cli/internal/config"
	"github.com/sqlmorph/sqlmorph/cli/internal/ui"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Render the migration script to a file or stdout",
	RunE:  runScript,
}

func init() {
	flags := scriptCmd.Flags()
	flags.StringP("output", "o", "", "write the script to this file instead of stdout")
	flags.Bool("force", false, "render statements even for unexecutable changes")
	flags.String("engine-version", "", "target server version (PostgreSQL only)")
	flags.Bool("yes", false, "skip the confirmation prompt for destructive plans")

	viper.BindPFlag("output", flags.Lookup("output"))
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if force, _ := cmd.Flags().GetBool("force"); force {
		cfg.Force = true
	}
	if v, _ := cmd.Flags().GetString("engine-version"); v != "" {
		cfg.EngineVersion = v
	}

	plan, err := buildPlan(cfg)
	if err != nil {
		return err
	}

	if plan.Blocked() {
		ui.DiagnosticsTable(diagnosticRows(plan.Diagnostics))
		return fmt.Errorf("the plan has unexecutable changes; re-run with --force")
	}

	skipPrompt, _ := cmd.Flags().GetBool("yes")
	if len(plan.Diagnostics) > 0 && !cfg.Force && !skipPrompt && cfg.OutputPath != "" {
		proceed, err := confirmDestructive(len(plan.Diagnostics))
		if err != nil {
			return err
		}
		if !proceed {
			ui.Info("aborted")
			return nil
		}
	}

	if cfg.OutputPath == "" {
		fmt.Println(plan.Script)
		return nil
	}

	if err := afero.WriteFile(config.AppFs, cfg.OutputPath, []byte(plan.Script), 0o644); err != nil {
		return fmt.Errorf("writing script to %s: %w", cfg.OutputPath, err)
	}
	ui.Success("wrote %s (%d statement(s))", cfg.OutputPath, len(plan.Statements))
	return nil
}
