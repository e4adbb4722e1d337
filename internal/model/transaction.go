package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType says whether money came in or went out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// PaymentMethod says how a transaction was settled.
type PaymentMethod string

const (
	MethodCash PaymentMethod = "cash"
	MethodCard PaymentMethod = "card"
)

// Transaction is one user-entered cash event.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // magnitude, never negative
	Type        TransactionType `json:"type"`
	Method      PaymentMethod   `json:"method"`
	// Malformed is set by a store when a stored field could not be decoded.
	// Such a record is kept so it can be reported by ID, but never posts.
	Malformed string `json:"malformed,omitempty"`
}

// BankTransaction represents a parsed bank CSV row.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = expense, positive = income
	Reference   string
	Type        string // bank transaction type (ACH_DEBIT, etc.)
}
