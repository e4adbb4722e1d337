package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/model"
)

// SimpleParser reads a minimal three-column export:
// date (YYYY-MM-DD), description, signed amount. A header row is required.
type SimpleParser struct {
	Location *time.Location
}

const simpleNumFields = 3

// Format returns the parser name.
func (p *SimpleParser) Format() string { return "simple" }

// Parse reads the CSV and returns BankTransactions.
func (p *SimpleParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = simpleNumFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading simple CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.BankTransaction
	for i, rec := range records[1:] {
		date, err := time.ParseInLocation(time.DateOnly, rec[0], location(p.Location))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[0], err)
		}
		amount, err := decimal.NewFromString(rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[2], err)
		}
		desc := strings.TrimSpace(rec[1])
		txns = append(txns, model.BankTransaction{
			Date:        date,
			Description: desc,
			Amount:      amount,
			Reference:   reference("simple", date, desc),
		})
	}
	return txns, nil
}
