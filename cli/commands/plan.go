package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sqlmorph/sqlmorph/cli/internal/config"
	"github.com/sqlmorph/sqlmorph/cli/internal/ui"
	"github.com/sqlmorph/sqlmorph/cli/internal/watch"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Diff the snapshots and show the migration plan",
	RunE:  runPlan,
}

func init() {
	flags := planCmd.Flags()
	flags.Bool("force", false, "render statements even for unexecutable changes")
	flags.String("engine-version", "", "target server version (PostgreSQL only)")
	flags.Bool("watch", false, "re-plan whenever a snapshot file changes")

	viper.BindPFlag("force", flags.Lookup("force"))
	viper.BindPFlag("engine_version", flags.Lookup("engine-version"))
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	watching, _ := cmd.Flags().GetBool("watch")
	if !watching {
		return planOnce(cfg)
	}

	w, err := watch.New(func() error {
		if err := planOnce(cfg); err != nil {
			ui.Error("%v", err)
		}
		return nil
	}, cfg.PreviousPath, cfg.NextPath)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(); err != nil {
		return err
	}
	ui.Info("watching %s and %s, press Ctrl+C to stop", cfg.PreviousPath, cfg.NextPath)
	select {}
}

func planOnce(cfg *config.Config) error {
	plan, err := buildPlan(cfg)
	if err != nil {
		return err
	}

	ui.Header("sqlmorph plan", fmt.Sprintf("provider: %s", plan.Provider))

	if !plan.HasChanges() {
		ui.Success("schemas are in sync, nothing to do")
		return nil
	}

	if len(plan.Diagnostics) > 0 {
		ui.DiagnosticsTable(diagnosticRows(plan.Diagnostics))
		fmt.Println()
	}

	if plan.Blocked() {
		ui.Error("the plan has unexecutable changes; re-run with --force to render them as drop-and-recreate")
		return nil
	}

	ui.Statements(plan.Statements)
	for _, warning := range plan.Warnings {
		ui.Warning("%s", warning)
	}
	ui.Success("%d step(s), %d statement(s)", len(plan.Steps), len(plan.Statements))
	return nil
}
