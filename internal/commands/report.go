package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashbook/internal/report"
	"github.com/cleared-dev/cashbook/internal/statement"
)

var reportKinds = []string{"income", "balance", "cashflow", "all"}

func newReportCommand(root *rootOptions) *cobra.Command {
	var (
		month  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:       "report [income|balance|cashflow|all]",
		Short:     "Build financial statements for a month",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: reportKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "all"
			if len(args) > 0 {
				kind = args[0]
			}

			p, err := openProject(cmd, root)
			if err != nil {
				return err
			}
			defer p.Close()

			m, err := p.month(month)
			if err != nil {
				return err
			}
			txs, err := p.transactions(cmd.Context())
			if err != nil {
				return err
			}

			b := statement.NewBuilder(p.log, strictFlag(cmd, p.cfg))
			out := cmd.OutOrStdout()
			currency := p.cfg.Business.Currency

			var v any
			switch kind {
			case "income":
				s, err := b.IncomeStatement(txs, m.Start, m.End)
				if err != nil {
					return err
				}
				if !asJSON {
					return report.IncomeStatement(out, s, currency)
				}
				v = s
			case "balance":
				s, err := b.BalanceSheet(txs, m.End)
				if err != nil {
					return err
				}
				if !asJSON {
					return report.BalanceSheet(out, s, currency)
				}
				v = s
			case "cashflow":
				s, err := b.CashFlowStatement(txs, m.Start, m.End)
				if err != nil {
					return err
				}
				if !asJSON {
					return report.CashFlow(out, s, currency)
				}
				v = s
			case "all":
				s, err := b.All(txs, m)
				if err != nil {
					return err
				}
				if !asJSON {
					return report.Statements(out, s, currency)
				}
				v = s
			default:
				return fmt.Errorf("unknown report %q", kind)
			}
			return report.JSON(out, v)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "reporting month YYYY-MM (default current month)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	cmd.Flags().Bool("strict", false, "fail on an internal statement check instead of logging it")

	return cmd
}
