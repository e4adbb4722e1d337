package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// DebitNormal reports whether accounts of this type carry a debit balance
// when positive. Liability, equity and revenue accounts are credit-normal.
func (t AccountType) DebitNormal() bool {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return true
	case AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue:
		return false
	}
	return false
}

// Account is a member of the fixed chart of accounts.
type Account string

const (
	Cash               Account = "Cash"
	AccountsReceivable Account = "AccountsReceivable"
	AccountsPayable    Account = "AccountsPayable"
	Revenue            Account = "Revenue"
	Expense            Account = "Expense"
	RetainedEarnings   Account = "RetainedEarnings"
)

// Accounts lists the chart in presentation order.
var Accounts = []Account{Cash, AccountsReceivable, AccountsPayable, RetainedEarnings, Revenue, Expense}

// Type returns the declared type of the account, or "" for an account
// outside the chart.
func (a Account) Type() AccountType {
	switch a {
	case Cash, AccountsReceivable:
		return AccountTypeAsset
	case AccountsPayable:
		return AccountTypeLiability
	case RetainedEarnings:
		return AccountTypeEquity
	case Revenue:
		return AccountTypeRevenue
	case Expense:
		return AccountTypeExpense
	}
	return ""
}

// Valid reports whether a is part of the chart.
func (a Account) Valid() bool {
	return a.Type() != ""
}

// ChartAccount represents a row in chart-of-accounts.csv.
type ChartAccount struct {
	Code        int
	Account     Account
	Name        string
	Type        AccountType
	Description string
}
