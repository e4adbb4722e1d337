// Package statement composes ledger balances into the income statement,
// balance sheet and cash flow statement.
//
// Flow statements (income, cash flow) sum activity over an inclusive window;
// the balance sheet is a point-in-time view through a cutoff. Both go through
// ledger.ComputeWhere with a different period filter.
package statement

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/ledger"
	"github.com/cleared-dev/cashbook/internal/model"
	"github.com/cleared-dev/cashbook/internal/period"
)

// ErrInvariantViolation is wrapped by every InvariantViolationError.
var ErrInvariantViolation = errors.New("invariant violation")

// ErrInvalidPeriod is returned when a period ends before it starts.
var ErrInvalidPeriod = errors.New("invalid period")

// InvariantViolationError reports a statement whose derived figures disagree.
// It indicates a defect in the builder, not bad input.
type InvariantViolationError struct {
	Check string
	Want  decimal.Decimal
	Got   decimal.Decimal
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation: %s: want %s, got %s", e.Check, e.Want.StringFixed(2), e.Got.StringFixed(2))
}

func (e *InvariantViolationError) Unwrap() error {
	return ErrInvariantViolation
}

// Builder builds statements. In strict mode an invariant violation is
// returned as an error; otherwise it is logged and the structurally derived
// figure is kept.
type Builder struct {
	log    zerolog.Logger
	strict bool
}

// NewBuilder creates a Builder.
func NewBuilder(log zerolog.Logger, strict bool) *Builder {
	return &Builder{log: log, strict: strict}
}

var strictBuilder = NewBuilder(zerolog.Nop(), true)

// BuildIncomeStatement builds the income statement for [start, end] with a
// strict builder.
func BuildIncomeStatement(txs []model.Transaction, start, end time.Time) (IncomeStatement, error) {
	return strictBuilder.IncomeStatement(txs, start, end)
}

// BuildBalanceSheet builds the balance sheet at cutoff with a strict builder.
func BuildBalanceSheet(txs []model.Transaction, cutoff time.Time) (BalanceSheet, error) {
	return strictBuilder.BalanceSheet(txs, cutoff)
}

// BuildCashFlowStatement builds the cash flow statement for [start, end]
// with a strict builder.
func BuildCashFlowStatement(txs []model.Transaction, start, end time.Time) (CashFlowStatement, error) {
	return strictBuilder.CashFlowStatement(txs, start, end)
}

// BuildAll builds all three statements for p with a strict builder.
func BuildAll(txs []model.Transaction, p period.Period) (Statements, error) {
	return strictBuilder.All(txs, p)
}

func window(start, end time.Time) (period.Period, error) {
	if end.Before(start) {
		return period.Period{}, fmt.Errorf("%w: end %s before start %s", ErrInvalidPeriod,
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return period.Period{Start: start, End: end}, nil
}

// IncomeStatement builds the income statement for [start, end].
func (b *Builder) IncomeStatement(txs []model.Transaction, start, end time.Time) (IncomeStatement, error) {
	p, err := window(start, end)
	if err != nil {
		return IncomeStatement{}, err
	}
	flow, err := ledger.Flow(txs, p)
	if err != nil {
		return IncomeStatement{}, fmt.Errorf("income statement: %w", err)
	}

	revenue := flow.Get(model.Revenue)
	expenses := flow.Get(model.Expense)

	s := IncomeStatement{
		PeriodStart:             start,
		PeriodEnd:               end,
		Revenue:                 revenue,
		CostOfSales:             decimal.Zero,
		SellingAndAdminExpenses: expenses,
		NonOperatingIncome:      decimal.Zero,
		NonOperatingExpenses:    decimal.Zero,
		IncomeTaxExpense:        decimal.Zero,
		Expenses:                expenses,
	}
	s.GrossProfit = s.Revenue.Sub(s.CostOfSales)
	s.OperatingIncome = s.GrossProfit.Sub(s.SellingAndAdminExpenses)
	s.IncomeBeforeTax = s.OperatingIncome.Add(s.NonOperatingIncome).Sub(s.NonOperatingExpenses)
	s.NetIncome = s.IncomeBeforeTax.Sub(s.IncomeTaxExpense)

	if err := b.check("income statement net income", flow.NetIncome(), s.NetIncome); err != nil {
		return IncomeStatement{}, err
	}
	return s, nil
}

// BalanceSheet builds the balance sheet from all activity through cutoff.
// Equity is derived as assets minus liabilities, so the accounting equation
// holds by construction; cumulative net income is compared against it.
func (b *Builder) BalanceSheet(txs []model.Transaction, cutoff time.Time) (BalanceSheet, error) {
	bal, err := ledger.AsOf(txs, cutoff)
	if err != nil {
		return BalanceSheet{}, fmt.Errorf("balance sheet: %w", err)
	}

	cash := bal.Get(model.Cash)
	ar := bal.Get(model.AccountsReceivable)
	ap := bal.Get(model.AccountsPayable)

	assets := cash.Add(ar)
	liabilities := ap
	equity := assets.Sub(liabilities)

	// No closing entries are posted, so the RetainedEarnings account itself
	// stays zero and cumulative net income stands in for it.
	retained := bal.Get(model.RetainedEarnings).Add(bal.NetIncome())
	if err := b.check("balance sheet equity", retained, equity); err != nil {
		return BalanceSheet{}, err
	}

	return BalanceSheet{
		Cutoff: cutoff,
		Assets: Assets{
			Total:     assets,
			Breakdown: AssetBreakdown{Cash: cash, AccountsReceivable: ar},
		},
		Liabilities: Liabilities{
			Total:     liabilities,
			Breakdown: LiabilityBreakdown{AccountsPayable: ap},
		},
		Equity: Equity{
			Total:     equity,
			Breakdown: EquityBreakdown{RetainedEarnings: equity, CapitalStock: decimal.Zero},
		},
	}, nil
}

// CashFlowStatement builds the cash flow statement for [start, end].
// Beginning cash covers everything strictly before start; ending cash is
// checked against the cumulative Cash balance through end.
func (b *Builder) CashFlowStatement(txs []model.Transaction, start, end time.Time) (CashFlowStatement, error) {
	p, err := window(start, end)
	if err != nil {
		return CashFlowStatement{}, err
	}
	flow, err := ledger.Flow(txs, p)
	if err != nil {
		return CashFlowStatement{}, fmt.Errorf("cash flow statement: %w", err)
	}
	opening, err := ledger.ComputeWhere(txs, period.Before(start))
	if err != nil {
		return CashFlowStatement{}, fmt.Errorf("cash flow statement: %w", err)
	}
	closingCash, err := ledger.CashAt(txs, end)
	if err != nil {
		return CashFlowStatement{}, fmt.Errorf("cash flow statement: %w", err)
	}

	s := CashFlowStatement{
		PeriodStart:         start,
		PeriodEnd:           end,
		NetIncome:           flow.NetIncome(),
		NonCashAdjustments:  decimal.Zero,
		ReceivablesChange:   flow.Get(model.AccountsReceivable).Neg(),
		PayablesChange:      flow.Get(model.AccountsPayable),
		InvestingActivities: decimal.Zero,
		FinancingActivities: decimal.Zero,
		BeginningCash:       opening.Get(model.Cash),
	}
	s.OperatingActivities = s.NetIncome.Add(s.NonCashAdjustments).Add(s.ReceivablesChange).Add(s.PayablesChange)
	s.NetChangeInCash = s.OperatingActivities.Add(s.InvestingActivities).Add(s.FinancingActivities)
	s.EndingCash = s.BeginningCash.Add(s.NetChangeInCash)

	if err := b.check("cash flow ending cash", closingCash, s.EndingCash); err != nil {
		return CashFlowStatement{}, err
	}
	return s, nil
}

// All builds the income and cash flow statements over p and the balance
// sheet at p.End.
func (b *Builder) All(txs []model.Transaction, p period.Period) (Statements, error) {
	is, err := b.IncomeStatement(txs, p.Start, p.End)
	if err != nil {
		return Statements{}, err
	}
	bs, err := b.BalanceSheet(txs, p.End)
	if err != nil {
		return Statements{}, err
	}
	cf, err := b.CashFlowStatement(txs, p.Start, p.End)
	if err != nil {
		return Statements{}, err
	}
	return Statements{
		PeriodStart:  p.Start,
		PeriodEnd:    p.End,
		Income:       is,
		BalanceSheet: bs,
		CashFlow:     cf,
	}, nil
}

// check compares an independently computed figure with the derived one.
func (b *Builder) check(name string, want, got decimal.Decimal) error {
	if want.Equal(got) {
		return nil
	}
	err := &InvariantViolationError{Check: name, Want: want, Got: got}
	if b.strict {
		return err
	}
	b.log.Error().Err(err).Str("check", name).Msg("statement invariant violated; keeping derived figure")
	return nil
}
