package commands

import (
	"github.com/spf13/cobra"

	"github.com/sqlmorph/sqlmorph/cli/internal/config"
	"github.com/sqlmorph/sqlmorph/cli/internal/ui"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Describe the planned changes in human-readable form",
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	plan, err := buildPlan(cfg)
	if err != nil {
		return err
	}
	return ui.Markdown(plan.DriftSummary())
}
