package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashbook/internal/audit"
	"github.com/cleared-dev/cashbook/internal/id"
	"github.com/cleared-dev/cashbook/internal/journal"
	"github.com/cleared-dev/cashbook/internal/model"
	"github.com/cleared-dev/cashbook/internal/period"
	"github.com/cleared-dev/cashbook/internal/report"
)

func newAddCommand(root *rootOptions) *cobra.Command {
	var (
		date        string
		amount      string
		txType      string
		method      string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, root)
			if err != nil {
				return err
			}
			defer p.Close()

			when := time.Now().In(p.loc)
			if date != "" {
				when, err = time.ParseInLocation(time.DateOnly, date, p.loc)
				if err != nil {
					return fmt.Errorf("parsing --date %q: want YYYY-MM-DD", date)
				}
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing --amount %q: %w", amount, err)
			}

			tx := model.Transaction{
				ID:          id.NewTransactionID(),
				Date:        when,
				Description: strings.TrimSpace(description),
				Amount:      amt,
				Type:        model.TransactionType(strings.ToLower(txType)),
				Method:      model.PaymentMethod(strings.ToLower(method)),
			}
			if err := journal.Validate(tx); err != nil {
				return err
			}
			if err := p.store.Add(cmd.Context(), tx); err != nil {
				return err
			}

			details := fmt.Sprintf("%s %s %s %s", tx.Type, tx.Amount.StringFixed(2), tx.Method, tx.Description)
			if err := p.record(cmd.Context(), "add: "+strings.TrimSpace(details),
				audit.Entry{Action: audit.ActionAdd, TransactionID: tx.ID, Details: details}); err != nil {
				return err
			}

			p.log.Info().Str("id", tx.ID).Str("type", string(tx.Type)).Msg("transaction added")
			fmt.Fprintln(cmd.OutOrStdout(), tx.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&amount, "amount", "", "non-negative amount (required)")
	cmd.Flags().StringVar(&txType, "type", "", "income or expense (required)")
	cmd.Flags().StringVar(&method, "method", string(model.MethodCash), "cash or card")
	cmd.Flags().StringVar(&description, "description", "", "free-text description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newListCommand(root *rootOptions) *cobra.Command {
	var (
		month  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, root)
			if err != nil {
				return err
			}
			defer p.Close()

			txs, err := p.store.List(cmd.Context())
			if err != nil {
				return err
			}
			if month != "" {
				m, err := period.ParseMonth(month, p.loc)
				if err != nil {
					return err
				}
				txs = period.Select(txs, period.Flow(m))
			}
			sort.SliceStable(txs, func(i, j int) bool {
				return txs[i].Date.Before(txs[j].Date)
			})

			if asJSON {
				if txs == nil {
					txs = []model.Transaction{}
				}
				return report.JSON(cmd.OutOrStdout(), txs)
			}
			return report.Transactions(cmd.OutOrStdout(), txs)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only transactions in this month (YYYY-MM)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")

	return cmd
}

func newDeleteCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, root)
			if err != nil {
				return err
			}
			defer p.Close()

			txID := args[0]
			if err := p.store.Delete(cmd.Context(), txID); err != nil {
				return err
			}
			if err := p.record(cmd.Context(), "delete: "+txID,
				audit.Entry{Action: audit.ActionDelete, TransactionID: txID, Details: "deleted"}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", txID)
			return nil
		},
	}
}
