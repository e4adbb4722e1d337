package journal

import (
	"errors"
	"fmt"

	"github.com/cleared-dev/cashbook/internal/model"
)

// ErrInvalidTransaction is wrapped by every InvalidTransactionError.
var ErrInvalidTransaction = errors.New("invalid transaction")

// InvalidTransactionError identifies a transaction that cannot be posted.
type InvalidTransactionError struct {
	Index  int // position in the input list; -1 when posted on its own
	ID     string
	Reason string
}

func (e *InvalidTransactionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid transaction [%s]: %s", e.ID, e.Reason)
	}
	return fmt.Sprintf("invalid transaction #%d [%s]: %s", e.Index, e.ID, e.Reason)
}

func (e *InvalidTransactionError) Unwrap() error {
	return ErrInvalidTransaction
}

// Validate checks the shape of a transaction without posting it.
func Validate(tx model.Transaction) error {
	_, err := Post(tx)
	return err
}

// Post maps a transaction to its balanced journal entry.
//
//	expense/cash: Dr Expense            Cr Cash
//	expense/card: Dr Expense            Cr AccountsPayable
//	income/cash:  Dr Cash               Cr Revenue
//	income/card:  Dr AccountsReceivable Cr Revenue
func Post(tx model.Transaction) (model.JournalEntry, error) {
	invalid := func(format string, args ...any) (model.JournalEntry, error) {
		return model.JournalEntry{}, &InvalidTransactionError{Index: -1, ID: tx.ID, Reason: fmt.Sprintf(format, args...)}
	}

	if tx.ID == "" {
		return invalid("missing id")
	}
	if tx.Malformed != "" {
		return invalid("%s", tx.Malformed)
	}
	if tx.Date.IsZero() {
		return invalid("missing date")
	}
	if tx.Amount.IsNegative() {
		return invalid("negative amount %s", tx.Amount)
	}

	var debit, credit model.Account
	switch tx.Type {
	case model.TypeExpense:
		debit = model.Expense
		switch tx.Method {
		case model.MethodCash:
			credit = model.Cash
		case model.MethodCard:
			credit = model.AccountsPayable
		default:
			return invalid("unknown method %q", tx.Method)
		}
	case model.TypeIncome:
		credit = model.Revenue
		switch tx.Method {
		case model.MethodCash:
			debit = model.Cash
		case model.MethodCard:
			debit = model.AccountsReceivable
		default:
			return invalid("unknown method %q", tx.Method)
		}
	default:
		return invalid("unknown type %q", tx.Type)
	}

	return model.JournalEntry{
		TransactionID: tx.ID,
		Date:          tx.Date,
		Description:   tx.Description,
		Debits:        []model.Posting{{Account: debit, Amount: tx.Amount}},
		Credits:       []model.Posting{{Account: credit, Amount: tx.Amount}},
	}, nil
}

// PostAll posts every transaction, stopping at the first invalid one.
func PostAll(txs []model.Transaction) ([]model.JournalEntry, error) {
	entries := make([]model.JournalEntry, 0, len(txs))
	for i, tx := range txs {
		entry, err := Post(tx)
		if err != nil {
			return nil, AtIndex(err, i)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Partition splits txs into postable records and the errors describing the
// rest. The relative order of valid records is preserved.
func Partition(txs []model.Transaction) ([]model.Transaction, []*InvalidTransactionError) {
	var valid []model.Transaction
	var rejected []*InvalidTransactionError
	for i, tx := range txs {
		if err := Validate(tx); err != nil {
			var ite *InvalidTransactionError
			if errors.As(AtIndex(err, i), &ite) {
				rejected = append(rejected, ite)
			}
			continue
		}
		valid = append(valid, tx)
	}
	return valid, rejected
}

// AtIndex returns err with the list position of the offending record set.
// Errors other than InvalidTransactionError pass through unchanged.
func AtIndex(err error, i int) error {
	var ite *InvalidTransactionError
	if errors.As(err, &ite) {
		cp := *ite
		cp.Index = i
		return &cp
	}
	return err
}
