package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one labelled row of a rendered statement.
type Line struct {
	Label   string
	Amount  decimal.Decimal
	Depth   int  // 0 = top level, 1 = detail
	Total   bool // subtotal or total row
	Heading bool // section heading, no amount
}

// IncomeStatement is the multi-step income statement for a flow window.
// Lines the cash model cannot populate are kept and fixed at zero.
type IncomeStatement struct {
	PeriodStart             time.Time       `json:"periodStart"`
	PeriodEnd               time.Time       `json:"periodEnd"`
	Revenue                 decimal.Decimal `json:"revenue"`
	CostOfSales             decimal.Decimal `json:"costOfSales"`
	GrossProfit             decimal.Decimal `json:"grossProfit"`
	SellingAndAdminExpenses decimal.Decimal `json:"sellingAndAdminExpenses"`
	OperatingIncome         decimal.Decimal `json:"operatingIncome"`
	NonOperatingIncome      decimal.Decimal `json:"nonOperatingIncome"`
	NonOperatingExpenses    decimal.Decimal `json:"nonOperatingExpenses"`
	IncomeBeforeTax         decimal.Decimal `json:"incomeBeforeTax"`
	IncomeTaxExpense        decimal.Decimal `json:"incomeTaxExpense"`
	NetIncome               decimal.Decimal `json:"netIncome"`
	// Expenses is the total of the Expense account, equal to
	// SellingAndAdminExpenses.
	Expenses decimal.Decimal `json:"expenses"`
}

// Lines returns the statement rows in conventional order.
func (s IncomeStatement) Lines() []Line {
	return []Line{
		{Label: "Revenue", Amount: s.Revenue},
		{Label: "Cost of sales", Amount: s.CostOfSales},
		{Label: "Gross profit", Amount: s.GrossProfit, Total: true},
		{Label: "Selling and administrative expenses", Amount: s.SellingAndAdminExpenses},
		{Label: "Operating income", Amount: s.OperatingIncome, Total: true},
		{Label: "Non-operating income", Amount: s.NonOperatingIncome},
		{Label: "Non-operating expenses", Amount: s.NonOperatingExpenses},
		{Label: "Income before tax", Amount: s.IncomeBeforeTax, Total: true},
		{Label: "Income tax expense", Amount: s.IncomeTaxExpense},
		{Label: "Net income", Amount: s.NetIncome, Total: true},
	}
}

// AssetBreakdown lists the asset accounts.
type AssetBreakdown struct {
	Cash               decimal.Decimal `json:"Cash"`
	AccountsReceivable decimal.Decimal `json:"AccountsReceivable"`
}

// Assets is the asset section of the balance sheet.
type Assets struct {
	Total     decimal.Decimal `json:"total"`
	Breakdown AssetBreakdown  `json:"breakdown"`
}

// LiabilityBreakdown lists the liability accounts.
type LiabilityBreakdown struct {
	AccountsPayable decimal.Decimal `json:"AccountsPayable"`
}

// Liabilities is the liability section of the balance sheet.
type Liabilities struct {
	Total     decimal.Decimal    `json:"total"`
	Breakdown LiabilityBreakdown `json:"breakdown"`
}

// EquityBreakdown lists the equity lines. CapitalStock is always zero.
type EquityBreakdown struct {
	RetainedEarnings decimal.Decimal `json:"RetainedEarnings"`
	CapitalStock     decimal.Decimal `json:"CapitalStock"`
}

// Equity is the equity section of the balance sheet.
type Equity struct {
	Total     decimal.Decimal `json:"total"`
	Breakdown EquityBreakdown `json:"breakdown"`
}

// BalanceSheet holds point-in-time balances at Cutoff.
type BalanceSheet struct {
	Cutoff      time.Time   `json:"cutoff"`
	Assets      Assets      `json:"assets"`
	Liabilities Liabilities `json:"liabilities"`
	Equity      Equity      `json:"equity"`
}

// Balanced reports whether assets equal liabilities plus equity.
func (s BalanceSheet) Balanced() bool {
	return s.Assets.Total.Equal(s.Liabilities.Total.Add(s.Equity.Total))
}

// Lines returns the statement rows in conventional order.
func (s BalanceSheet) Lines() []Line {
	return []Line{
		{Label: "Assets", Heading: true},
		{Label: "Cash", Amount: s.Assets.Breakdown.Cash, Depth: 1},
		{Label: "Accounts receivable", Amount: s.Assets.Breakdown.AccountsReceivable, Depth: 1},
		{Label: "Total assets", Amount: s.Assets.Total, Total: true},
		{Label: "Liabilities", Heading: true},
		{Label: "Accounts payable", Amount: s.Liabilities.Breakdown.AccountsPayable, Depth: 1},
		{Label: "Total liabilities", Amount: s.Liabilities.Total, Total: true},
		{Label: "Equity", Heading: true},
		{Label: "Capital stock", Amount: s.Equity.Breakdown.CapitalStock, Depth: 1},
		{Label: "Retained earnings", Amount: s.Equity.Breakdown.RetainedEarnings, Depth: 1},
		{Label: "Total equity", Amount: s.Equity.Total, Total: true},
		{Label: "Total liabilities and equity", Amount: s.Liabilities.Total.Add(s.Equity.Total), Total: true},
	}
}

// CashFlowStatement is an indirect-method cash flow statement for a flow
// window.
type CashFlowStatement struct {
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`

	NetIncome          decimal.Decimal `json:"netIncome"`
	NonCashAdjustments decimal.Decimal `json:"nonCashAdjustments"`
	ReceivablesChange  decimal.Decimal `json:"receivablesChange"` // -ΔAccountsReceivable
	PayablesChange     decimal.Decimal `json:"payablesChange"`    // +ΔAccountsPayable

	OperatingActivities decimal.Decimal `json:"operatingActivities"`
	InvestingActivities decimal.Decimal `json:"investingActivities"`
	FinancingActivities decimal.Decimal `json:"financingActivities"`
	NetChangeInCash     decimal.Decimal `json:"netChangeInCash"`
	BeginningCash       decimal.Decimal `json:"beginningCash"`
	EndingCash          decimal.Decimal `json:"endingCash"`
}

// Lines returns the statement rows in conventional order.
func (s CashFlowStatement) Lines() []Line {
	return []Line{
		{Label: "Operating activities", Heading: true},
		{Label: "Net income", Amount: s.NetIncome, Depth: 1},
		{Label: "Non-cash adjustments", Amount: s.NonCashAdjustments, Depth: 1},
		{Label: "Change in accounts receivable", Amount: s.ReceivablesChange, Depth: 1},
		{Label: "Change in accounts payable", Amount: s.PayablesChange, Depth: 1},
		{Label: "Net cash from operating activities", Amount: s.OperatingActivities, Total: true},
		{Label: "Net cash from investing activities", Amount: s.InvestingActivities, Total: true},
		{Label: "Net cash from financing activities", Amount: s.FinancingActivities, Total: true},
		{Label: "Net change in cash", Amount: s.NetChangeInCash, Total: true},
		{Label: "Beginning cash", Amount: s.BeginningCash},
		{Label: "Ending cash", Amount: s.EndingCash, Total: true},
	}
}

// Statements bundles the three statements for one reporting period.
type Statements struct {
	PeriodStart  time.Time         `json:"periodStart"`
	PeriodEnd    time.Time         `json:"periodEnd"`
	Income       IncomeStatement   `json:"incomeStatement"`
	BalanceSheet BalanceSheet      `json:"balanceSheet"`
	CashFlow     CashFlowStatement `json:"cashFlow"`
}
