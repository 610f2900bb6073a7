// Package commands wires the sqlmorph CLI.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sqlmorph/sqlmorph/cli/internal/ui"
	"github.com/sqlmorph/sqlmorph/cli/internal/version"
	"github.com/sqlmorph/sqlmorph/internal/debug"
)

var rootCmd = &cobra.Command{
	Use:   "sqlmorph",
	Short: "Plan SQL schema migrations between two snapshots",
	Long: `sqlmorph diffs two schema snapshots into typed migration steps and
renders them as dialect-correct DDL for PostgreSQL, CockroachDB, MySQL,
SQLite and SQL Server.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debugEnabled, _ := cmd.Flags().GetBool("debug")
		debug.Init(debugEnabled)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("provider", "", "target dialect (postgresql, cockroachdb, mysql, sqlite, sqlserver)")
	flags.String("previous", "", "path of the previous snapshot JSON")
	flags.String("next", "", "path of the next snapshot JSON")
	flags.Bool("debug", false, "enable debug logging")

	viper.BindPFlag("provider", flags.Lookup("provider"))
	viper.BindPFlag("previous", flags.Lookup("previous"))
	viper.BindPFlag("next", flags.Lookup("next"))

	rootCmd.AddCommand(planCmd, explainCmd, scriptCmd)
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		return err
	}
	return nil
}
