package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting is one debit or credit line of a journal entry.
type Posting struct {
	Account Account
	Amount  decimal.Decimal
}

// JournalEntry is the double-entry form of a single Transaction.
type JournalEntry struct {
	TransactionID string
	Date          time.Time
	Description   string
	Debits        []Posting
	Credits       []Posting
}

// DebitTotal sums the debit lines.
func (e JournalEntry) DebitTotal() decimal.Decimal {
	return sumPostings(e.Debits)
}

// CreditTotal sums the credit lines.
func (e JournalEntry) CreditTotal() decimal.Decimal {
	return sumPostings(e.Credits)
}

// Balanced reports whether debits equal credits.
func (e JournalEntry) Balanced() bool {
	return e.DebitTotal().Equal(e.CreditTotal())
}

func sumPostings(ps []Posting) decimal.Decimal {
	total := decimal.Zero
	for _, p := range ps {
		total = total.Add(p.Amount)
	}
	return total
}

// Leg is a single row in an exported journal.csv (one side of a double-entry).
type Leg struct {
	EntryID       string          // "YYYY-MM-NNNx" where x = a,b,c...
	Date          time.Time       //nolint:revive // plain field name is clearest
	AccountCode   int             //nolint:revive
	Account       Account         //nolint:revive
	Description   string          //nolint:revive
	Debit         decimal.Decimal // zero if credit side
	Credit        decimal.Decimal // zero if debit side
	TransactionID string
}

// EntryGroup returns the base entry ID (without leg suffix).
// "2025-01-001a" -> "2025-01-001"
func (l Leg) EntryGroup() string {
	id := l.EntryID
	i := len(id)
	for i > 0 && id[i-1] >= 'a' && id[i-1] <= 'z' {
		i--
	}
	return id[:i]
}
