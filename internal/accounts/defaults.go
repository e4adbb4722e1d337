package accounts

import "github.com/cleared-dev/cashbook/internal/model"

// DefaultChart returns the fixed chart of accounts used by the journal engine.
func DefaultChart() []model.ChartAccount {
	return []model.ChartAccount{
		{Code: 1010, Account: model.Cash, Name: "Cash", Type: model.AccountTypeAsset, Description: "Cash on hand and in bank"},
		{Code: 1200, Account: model.AccountsReceivable, Name: "Accounts Receivable", Type: model.AccountTypeAsset, Description: "Unsettled card income"},
		{Code: 2010, Account: model.AccountsPayable, Name: "Accounts Payable", Type: model.AccountTypeLiability, Description: "Card expenses not yet paid"},
		{Code: 3100, Account: model.RetainedEarnings, Name: "Retained Earnings", Type: model.AccountTypeEquity, Description: "Cumulative net income"},
		{Code: 4010, Account: model.Revenue, Name: "Sales Revenue", Type: model.AccountTypeRevenue},
		{Code: 5010, Account: model.Expense, Name: "General Expense", Type: model.AccountTypeExpense},
	}
}
