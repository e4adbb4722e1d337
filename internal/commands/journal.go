package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashbook/internal/accounts"
	"github.com/cleared-dev/cashbook/internal/audit"
	"github.com/cleared-dev/cashbook/internal/journal"
)

func newJournalCommand(root *rootOptions) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Double-entry journal operations",
	}
	journalCmd.AddCommand(newJournalExportCommand(root))
	return journalCmd
}

func newJournalExportCommand(root *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the validated journal as monthly CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, root)
			if err != nil {
				return err
			}
			defer p.Close()

			chart, err := accounts.Load(p.dir)
			if err != nil {
				return err
			}
			txs, err := p.transactions(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := journal.PostAll(txs)
			if err != nil {
				return err
			}
			legs, err := journal.Legs(entries, chart)
			if err != nil {
				return err
			}

			dst := out
			if !filepath.IsAbs(dst) {
				dst = filepath.Join(p.dir, dst)
			}
			paths, err := journal.NewService(dst, chart).Export(legs)
			if err != nil {
				return fmt.Errorf("exporting journal: %w", err)
			}

			for _, path := range paths {
				rel, err := filepath.Rel(p.dir, path)
				if err != nil {
					rel = path
				}
				fmt.Fprintln(cmd.OutOrStdout(), rel)
			}
			details := fmt.Sprintf("%d legs in %d files", len(legs), len(paths))
			return p.record(cmd.Context(), "journal: export "+details,
				audit.Entry{Action: audit.ActionExport, Details: details})
		},
	}

	cmd.Flags().StringVar(&out, "out", "journal", "output directory, laid out as YYYY/MM/journal.csv")

	return cmd
}
