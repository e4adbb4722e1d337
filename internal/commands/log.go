package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashbook/internal/audit"
	"github.com/cleared-dev/cashbook/internal/report"
)

func newLogCommand(root *rootOptions) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the audit log of changes to the books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, root)
			if err != nil {
				return err
			}
			defer p.Close()

			entries, err := audit.Read(p.dir)
			if err != nil {
				return err
			}
			entries = audit.Tail(entries, limit)

			if asJSON {
				if entries == nil {
					entries = []audit.Entry{}
				}
				return report.JSON(cmd.OutOrStdout(), entries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Timestamp.In(p.loc).Format("2006-01-02 15:04"), e.Action, e.TransactionID, e.Details)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show only the most recent entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")

	return cmd
}
