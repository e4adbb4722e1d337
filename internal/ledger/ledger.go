// Package ledger posts transactions into per-account balances.
//
// Balances are reported in normal-balance-positive terms: a debit-normal
// account (asset, expense) is Dr - Cr, a credit-normal account (liability,
// equity, revenue) is Cr - Dr. Every query recomputes from the transactions
// it is given; nothing is accumulated across calls.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/journal"
	"github.com/cleared-dev/cashbook/internal/model"
	"github.com/cleared-dev/cashbook/internal/period"
)

// Balances maps every chart account to its normal-balance value.
type Balances map[model.Account]decimal.Decimal

// Get returns the balance of a, zero when absent.
func (b Balances) Get(a model.Account) decimal.Decimal {
	if v, ok := b[a]; ok {
		return v
	}
	return decimal.Zero
}

// NetIncome is Revenue - Expense.
func (b Balances) NetIncome() decimal.Decimal {
	return b.Get(model.Revenue).Sub(b.Get(model.Expense))
}

// Compute posts every transaction.
func Compute(txs []model.Transaction) (Balances, error) {
	return ComputeWhere(txs, period.All())
}

// ComputeWhere posts the transactions selected by f. Every transaction is
// validated, selected or not, so a malformed record outside the window
// still fails the query.
func ComputeWhere(txs []model.Transaction, f period.Filter) (Balances, error) {
	raw := make(map[model.Account]decimal.Decimal, len(model.Accounts))
	for i, tx := range txs {
		entry, err := journal.Post(tx)
		if err != nil {
			return nil, journal.AtIndex(err, i)
		}
		if !f(tx) {
			continue
		}
		for _, d := range entry.Debits {
			raw[d.Account] = raw[d.Account].Add(d.Amount)
		}
		for _, c := range entry.Credits {
			raw[c.Account] = raw[c.Account].Sub(c.Amount)
		}
	}

	out := make(Balances, len(model.Accounts))
	for _, a := range model.Accounts {
		v := raw[a]
		if !a.Type().DebitNormal() {
			v = v.Neg()
		}
		out[a] = v
	}
	return out, nil
}

// Flow returns balances for activity within p.
func Flow(txs []model.Transaction, p period.Period) (Balances, error) {
	return ComputeWhere(txs, period.Flow(p))
}

// AsOf returns cumulative balances through cutoff, inclusive.
func AsOf(txs []model.Transaction, cutoff time.Time) (Balances, error) {
	return ComputeWhere(txs, period.Cutoff(cutoff))
}

// CashAt returns the cumulative Cash balance through cutoff, inclusive.
func CashAt(txs []model.Transaction, cutoff time.Time) (decimal.Decimal, error) {
	b, err := AsOf(txs, cutoff)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Get(model.Cash), nil
}
