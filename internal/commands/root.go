package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashbook/internal/buildinfo"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	repo     string
	logLevel string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "cashbook",
		Short:   "Cash-basis bookkeeping and financial statements",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.repo, "repo", ".", "project directory")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(),
		newAddCommand(opts),
		newListCommand(opts),
		newDeleteCommand(opts),
		newImportCommand(opts),
		newReportCommand(opts),
		newDashboardCommand(opts),
		newJournalCommand(opts),
		newLogCommand(opts),
	)

	return rootCmd
}
