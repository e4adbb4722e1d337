// Package report renders statements, dashboards and transaction lists as
// aligned text tables or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/dashboard"
	"github.com/cleared-dev/cashbook/internal/model"
	"github.com/cleared-dev/cashbook/internal/statement"
)

const dateLayout = "2006-01-02"

// Amount formats d with two decimals and thousands separators.
func Amount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// Lines writes a titled statement table with amounts right-aligned.
func Lines(w io.Writer, title, subtitle, currency string, lines []statement.Line) error {
	labelWidth, amountWidth := 0, len(currency)+2
	amounts := make([]string, len(lines))
	for i, l := range lines {
		if n := len(l.Label) + 2*l.Depth; n > labelWidth {
			labelWidth = n
		}
		if !l.Heading {
			amounts[i] = Amount(l.Amount)
			amountWidth = max(amountWidth, len(amounts[i]))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n%*s\n", title, subtitle, labelWidth+2+amountWidth, "("+currency+")")
	for i, l := range lines {
		label := strings.Repeat("  ", l.Depth) + l.Label
		if l.Heading {
			fmt.Fprintf(&b, "%s\n", label)
			continue
		}
		if l.Total {
			fmt.Fprintf(&b, "%*s\n", labelWidth+2+amountWidth, strings.Repeat("-", amountWidth))
		}
		fmt.Fprintf(&b, "%-*s  %*s\n", labelWidth, label, amountWidth, amounts[i])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func window(start, end time.Time) string {
	return fmt.Sprintf("For the period %s to %s", start.Format(dateLayout), end.Format(dateLayout))
}

// IncomeStatement writes the income statement.
func IncomeStatement(w io.Writer, s statement.IncomeStatement, currency string) error {
	return Lines(w, "Income Statement", window(s.PeriodStart, s.PeriodEnd), currency, s.Lines())
}

// BalanceSheet writes the balance sheet.
func BalanceSheet(w io.Writer, s statement.BalanceSheet, currency string) error {
	return Lines(w, "Balance Sheet", "As of "+s.Cutoff.Format(dateLayout), currency, s.Lines())
}

// CashFlow writes the cash flow statement.
func CashFlow(w io.Writer, s statement.CashFlowStatement, currency string) error {
	return Lines(w, "Cash Flow Statement", window(s.PeriodStart, s.PeriodEnd), currency, s.Lines())
}

// Statements writes all three statements separated by blank lines.
func Statements(w io.Writer, s statement.Statements, currency string) error {
	if err := IncomeStatement(w, s.Income, currency); err != nil {
		return err
	}
	fmt.Fprintln(w)
	if err := BalanceSheet(w, s.BalanceSheet, currency); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return CashFlow(w, s.CashFlow, currency)
}

// Dashboard writes the dashboard panels.
func Dashboard(w io.Writer, d dashboard.Dashboard, currency string) error {
	s := d.Summary
	fmt.Fprintf(w, "Dashboard %s (%s)\n\n", s.Month, currency)
	fmt.Fprintf(w, "Revenue     %s (%s%%)\n", Amount(s.Revenue), s.RevenueShare.StringFixed(2))
	fmt.Fprintf(w, "Expenses    %s (%s%%)\n", Amount(s.Expenses), s.ExpenseShare.StringFixed(2))
	fmt.Fprintf(w, "Net income  %s\n\n", Amount(s.NetIncome))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tIncome\tExpense\tNet income\tCash\t")
	cash := make(map[string]decimal.Decimal, len(d.Cash))
	for _, c := range d.Cash {
		cash[c.Month] = c.Balance
	}
	for _, m := range d.Trend {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", m.Month, Amount(m.Income), Amount(m.Expense), Amount(m.NetIncome), Amount(cash[m.Month]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTop expenses %s\n", s.Month)
	if len(d.TopExpenses) == 0 {
		fmt.Fprintln(w, "  (none)")
		return nil
	}
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, e := range d.TopExpenses {
		fmt.Fprintf(tw, "  %d.\t%s\t%s\t%s%%\n", i+1, e.Description, Amount(e.Amount), e.Share.StringFixed(2))
	}
	return tw.Flush()
}

// Transactions writes a transaction list.
func Transactions(w io.Writer, txs []model.Transaction) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tMETHOD\tAMOUNT\tDESCRIPTION")
	for _, tx := range txs {
		date := ""
		if !tx.Date.IsZero() {
			date = tx.Date.Format(dateLayout)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", tx.ID, date, tx.Type, tx.Method, Amount(tx.Amount), tx.Description)
	}
	return tw.Flush()
}
