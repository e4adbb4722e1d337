package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/id"
	"github.com/cleared-dev/cashbook/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryID, e.Description)
}

// AccountChecker tests whether an account code exists in the chart of accounts.
type AccountChecker interface {
	Exists(code int) bool
}

var hundred = decimal.NewFromInt(100)

// ValidateLegs enforces 6 invariants on a set of journal legs.
func ValidateLegs(legs []model.Leg, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	// Group legs by entry.
	groups := make(map[string][]model.Leg)
	var groupOrder []string
	for _, leg := range legs {
		g := leg.EntryGroup()
		if _, seen := groups[g]; !seen {
			groupOrder = append(groupOrder, g)
		}
		groups[g] = append(groups[g], leg)
	}

	// Invariant 1: Entry groups balance (sum(debits) == sum(credits) per group).
	for _, g := range groupOrder {
		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		for _, leg := range groups[g] {
			totalDebit = totalDebit.Add(leg.Debit)
			totalCredit = totalCredit.Add(leg.Credit)
		}
		if !totalDebit.Equal(totalCredit) {
			errs = append(errs, ValidationError{
				Invariant:   1,
				EntryID:     g,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
			})
		}
	}

	seqSeen := make(map[string]map[int]bool)
	var monthOrder []string
	for _, leg := range legs {
		// Invariant 2: Exactly one of debit/credit per row. Zero-amount
		// transactions produce all-zero legs, which are allowed.
		hasDebit := !leg.Debit.IsZero()
		hasCredit := !leg.Credit.IsZero()
		if hasDebit && hasCredit || leg.Debit.IsNegative() || leg.Credit.IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   2,
				EntryID:     leg.EntryID,
				Description: "leg must have exactly one non-negative debit or credit",
			})
		}

		// Invariant 3: Valid account references.
		if !accounts.Exists(leg.AccountCode) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("unknown account %d", leg.AccountCode),
			})
		}

		// Invariant 4: Date within the entry's month.
		year, month, seq, err := id.ParseEntryID(leg.EntryID)
		if err != nil {
			// Invariant 5: parseable entry IDs.
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("invalid entry ID: %v", err),
			})
		} else {
			if leg.Date.Year() != year || int(leg.Date.Month()) != month {
				errs = append(errs, ValidationError{
					Invariant:   4,
					EntryID:     leg.EntryID,
					Description: fmt.Sprintf("date %s not in %04d-%02d", leg.Date.Format(dateFormat), year, month),
				})
			}
			key := fmt.Sprintf("%04d-%02d", year, month)
			if seqSeen[key] == nil {
				seqSeen[key] = make(map[int]bool)
				monthOrder = append(monthOrder, key)
			}
			seqSeen[key][seq] = true
		}

		// Invariant 6: Exact decimals, no more than 2 decimal places.
		for _, amt := range []decimal.Decimal{leg.Debit, leg.Credit} {
			if !amt.Mul(hundred).Equal(amt.Mul(hundred).Floor()) {
				errs = append(errs, ValidationError{
					Invariant:   6,
					EntryID:     leg.EntryID,
					Description: fmt.Sprintf("amount %s has more than 2 decimal places", amt),
				})
			}
		}
	}

	// Invariant 5: sequences are contiguous 1..N within each month.
	for _, key := range monthOrder {
		seen := seqSeen[key]
		for i := 1; i <= len(seen); i++ {
			if !seen[i] {
				errs = append(errs, ValidationError{
					Invariant:   5,
					EntryID:     fmt.Sprintf("%s seq %d", key, i),
					Description: fmt.Sprintf("missing sequence %d in 1..%d", i, len(seen)),
				})
			}
		}
	}

	return errs
}
