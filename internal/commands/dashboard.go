package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashbook/internal/dashboard"
	"github.com/cleared-dev/cashbook/internal/period"
	"github.com/cleared-dev/cashbook/internal/report"
)

func newDashboardCommand(root *rootOptions) *cobra.Command {
	var (
		month  string
		months int
		top    int
		all    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the monthly summary, trend, top expenses and cash balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, root)
			if err != nil {
				return err
			}
			defer p.Close()

			if !cmd.Flags().Changed("months") {
				months = p.cfg.Reports.TrendMonths
			}
			if !cmd.Flags().Changed("top") {
				top = p.cfg.Reports.TopExpenses
			}
			if months <= 0 {
				return fmt.Errorf("--months must be positive, got %d", months)
			}

			txs, err := p.transactions(cmd.Context())
			if err != nil {
				return err
			}

			var span []period.Period
			if all {
				span = dashboard.Span(txs, time.Now().In(p.loc))
			} else {
				end, err := p.month(month)
				if err != nil {
					return err
				}
				span = period.LastMonths(end.Start, months)
			}

			d, err := dashboard.Build(txs, span, top)
			if err != nil {
				return err
			}
			if asJSON {
				return report.JSON(cmd.OutOrStdout(), d)
			}
			return report.Dashboard(cmd.OutOrStdout(), d, p.cfg.Business.Currency)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "last month shown YYYY-MM (default current month)")
	cmd.Flags().IntVar(&months, "months", 6, "number of months in the trend")
	cmd.Flags().IntVar(&top, "top", 5, "number of expense groups listed")
	cmd.Flags().BoolVar(&all, "all", false, "trend over every month from the first to the last transaction")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	cmd.MarkFlagsMutuallyExclusive("all", "month")
	cmd.MarkFlagsMutuallyExclusive("all", "months")

	return cmd
}
