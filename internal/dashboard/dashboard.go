// Package dashboard derives the dashboard aggregates by repeated application
// of the statement builder over a rolling set of months.
package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/journal"
	"github.com/cleared-dev/cashbook/internal/ledger"
	"github.com/cleared-dev/cashbook/internal/model"
	"github.com/cleared-dev/cashbook/internal/period"
	"github.com/cleared-dev/cashbook/internal/statement"
)

// UnknownDescription groups expenses that have no description.
const UnknownDescription = "Unknown"

var hundred = decimal.NewFromInt(100)

// MonthTotals is one point of the monthly trend.
type MonthTotals struct {
	Month     string          `json:"month"` // YYYY-MM
	Income    decimal.Decimal `json:"income"`
	Expense   decimal.Decimal `json:"expense"`
	NetIncome decimal.Decimal `json:"netIncome"`
}

// ExpenseTotal is one slice of the expense breakdown.
type ExpenseTotal struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Share       decimal.Decimal `json:"share"` // percent of the period's total expense
}

// CashPoint is the cumulative cash balance at a month end.
type CashPoint struct {
	Month   string          `json:"month"`
	Balance decimal.Decimal `json:"balance"`
}

// MonthSummary is the header panel for one month.
type MonthSummary struct {
	Month        string          `json:"month"`
	Revenue      decimal.Decimal `json:"revenue"`
	Expenses     decimal.Decimal `json:"expenses"`
	NetIncome    decimal.Decimal `json:"netIncome"`
	RevenueShare decimal.Decimal `json:"revenueShare"` // percent of revenue+expenses
	ExpenseShare decimal.Decimal `json:"expenseShare"`
}

// Dashboard bundles every aggregate for a range of months.
type Dashboard struct {
	Summary     MonthSummary   `json:"summary"`
	Trend       []MonthTotals  `json:"trend"`
	TopExpenses []ExpenseTotal `json:"topExpenses"`
	Cash        []CashPoint    `json:"cash"`
}

// Share returns part as a percentage of whole rounded to two places, or
// zero when whole is zero.
func Share(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(2)
}

// MonthlyTrend returns income, expense and net income per month.
func MonthlyTrend(txs []model.Transaction, months []period.Period) ([]MonthTotals, error) {
	out := make([]MonthTotals, 0, len(months))
	for _, m := range months {
		is, err := statement.BuildIncomeStatement(txs, m.Start, m.End)
		if err != nil {
			return nil, fmt.Errorf("trend %s: %w", m.Key(), err)
		}
		out = append(out, MonthTotals{
			Month:     m.Key(),
			Income:    is.Revenue,
			Expense:   is.Expenses,
			NetIncome: is.NetIncome,
		})
	}
	return out, nil
}

// TopExpenses groups expenses within p by description and returns the n
// largest, ties broken by description.
func TopExpenses(txs []model.Transaction, p period.Period, n int) ([]ExpenseTotal, error) {
	if _, err := journal.PostAll(txs); err != nil {
		return nil, fmt.Errorf("top expenses: %w", err)
	}

	totals := make(map[string]decimal.Decimal)
	sum := decimal.Zero
	for _, tx := range period.Select(txs, period.Flow(p)) {
		if tx.Type != model.TypeExpense {
			continue
		}
		desc := strings.TrimSpace(tx.Description)
		if desc == "" {
			desc = UnknownDescription
		}
		totals[desc] = totals[desc].Add(tx.Amount)
		sum = sum.Add(tx.Amount)
	}

	out := make([]ExpenseTotal, 0, len(totals))
	for desc, amt := range totals {
		out = append(out, ExpenseTotal{Description: desc, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Description < out[j].Description
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Share = Share(out[i].Amount, sum)
	}
	return out, nil
}

// CashSeries returns the cumulative Cash balance at the end of each month.
func CashSeries(txs []model.Transaction, months []period.Period) ([]CashPoint, error) {
	out := make([]CashPoint, 0, len(months))
	for _, m := range months {
		cash, err := ledger.CashAt(txs, m.End)
		if err != nil {
			return nil, fmt.Errorf("cash series %s: %w", m.Key(), err)
		}
		out = append(out, CashPoint{Month: m.Key(), Balance: cash})
	}
	return out, nil
}

// Summary returns the header values for p.
func Summary(txs []model.Transaction, p period.Period) (MonthSummary, error) {
	is, err := statement.BuildIncomeStatement(txs, p.Start, p.End)
	if err != nil {
		return MonthSummary{}, fmt.Errorf("summary %s: %w", p.Key(), err)
	}
	gross := is.Revenue.Add(is.Expenses)
	return MonthSummary{
		Month:        p.Key(),
		Revenue:      is.Revenue,
		Expenses:     is.Expenses,
		NetIncome:    is.NetIncome,
		RevenueShare: Share(is.Revenue, gross),
		ExpenseShare: Share(is.Expenses, gross),
	}, nil
}

// Build assembles the dashboard for months. The summary and expense
// breakdown cover the last month.
func Build(txs []model.Transaction, months []period.Period, top int) (Dashboard, error) {
	if len(months) == 0 {
		return Dashboard{}, fmt.Errorf("dashboard: no months")
	}
	last := months[len(months)-1]

	summary, err := Summary(txs, last)
	if err != nil {
		return Dashboard{}, err
	}
	trend, err := MonthlyTrend(txs, months)
	if err != nil {
		return Dashboard{}, err
	}
	expenses, err := TopExpenses(txs, last, top)
	if err != nil {
		return Dashboard{}, err
	}
	cash, err := CashSeries(txs, months)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Summary: summary, Trend: trend, TopExpenses: expenses, Cash: cash}, nil
}

// Span returns the months from the earliest to the latest transaction, or
// the single month containing now when there are none.
func Span(txs []model.Transaction, now time.Time) []period.Period {
	if len(txs) == 0 {
		return []period.Period{period.MonthOf(now)}
	}
	first, last := txs[0].Date, txs[0].Date
	for _, tx := range txs[1:] {
		if tx.Date.Before(first) {
			first = tx.Date
		}
		if tx.Date.After(last) {
			last = tx.Date
		}
	}
	return period.Months(first, last)
}
