package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func txn(id string, when time.Time, amount string, typ model.TransactionType, method model.PaymentMethod) model.Transaction {
	return model.Transaction{
		ID:          id,
		Date:        when,
		Description: "txn " + id,
		Amount:      dec(amount),
		Type:        typ,
		Method:      method,
	}
}

// chartStub implements Chart and AccountChecker with the fixed codes.
type chartStub struct{}

var stubCodes = map[model.Account]int{
	model.Cash:               1010,
	model.AccountsReceivable: 1200,
	model.AccountsPayable:    2010,
	model.RetainedEarnings:   3100,
	model.Revenue:            4010,
	model.Expense:            5010,
}

func (chartStub) Lookup(a model.Account) (model.ChartAccount, bool) {
	code, ok := stubCodes[a]
	if !ok {
		return model.ChartAccount{}, false
	}
	return model.ChartAccount{Code: code, Account: a, Type: a.Type()}, true
}

func (chartStub) Exists(code int) bool {
	for _, c := range stubCodes {
		if c == code {
			return true
		}
	}
	return false
}
