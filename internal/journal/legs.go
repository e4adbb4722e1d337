package journal

import (
	"fmt"
	"sort"

	"github.com/cleared-dev/cashbook/internal/id"
	"github.com/cleared-dev/cashbook/internal/model"
)

// Chart resolves chart members to their account codes.
type Chart interface {
	Lookup(account model.Account) (model.ChartAccount, bool)
}

// Legs flattens entries into journal legs. Entries are ordered by date then
// transaction ID and numbered per calendar month, so the same entries always
// produce the same IDs regardless of input order.
func Legs(entries []model.JournalEntry, chart Chart) ([]model.Leg, error) {
	sorted := make([]model.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].TransactionID < sorted[j].TransactionID
	})

	seqs := make(map[string]int)
	var legs []model.Leg
	for _, e := range sorted {
		year, month := e.Date.Year(), int(e.Date.Month())
		key := fmt.Sprintf("%04d-%02d", year, month)
		seqs[key]++
		entryID := id.FormatEntryID(year, month, seqs[key])

		n := 0
		add := func(p model.Posting, debit bool) error {
			row, ok := chart.Lookup(p.Account)
			if !ok {
				return fmt.Errorf("entry %s: account %s not in chart", entryID, p.Account)
			}
			leg := model.Leg{
				EntryID:       id.FormatLegID(entryID, n),
				Date:          e.Date,
				AccountCode:   row.Code,
				Account:       p.Account,
				Description:   e.Description,
				TransactionID: e.TransactionID,
			}
			if debit {
				leg.Debit = p.Amount
			} else {
				leg.Credit = p.Amount
			}
			legs = append(legs, leg)
			n++
			return nil
		}

		for _, p := range e.Debits {
			if err := add(p, true); err != nil {
				return nil, err
			}
		}
		for _, p := range e.Credits {
			if err := add(p, false); err != nil {
				return nil, err
			}
		}
	}
	return legs, nil
}
