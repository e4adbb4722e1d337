package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "entry_id,date,account_code,account,description,debit,credit,transaction_id"

const (
	numFields  = 8
	dateFormat = "2006-01-02"
	colEntryID = 0
	colDate    = 1
	colCode    = 2
	colAccount = 3
	colDesc    = 4
	colDebit   = 5
	colCredit  = 6
	colTxID    = 7
)

// ReadLegs reads all legs from a journal.csv reader.
func ReadLegs(r io.Reader) ([]model.Leg, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var legs []model.Leg
	for i, rec := range records[1:] {
		leg, err := UnmarshalLeg(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

// WriteLegs writes legs to a journal.csv writer (including header).
func WriteLegs(w io.Writer, legs []model.Leg) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, leg := range legs {
		if err := cw.Write(MarshalLeg(leg)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLeg converts a Leg to a CSV row.
func MarshalLeg(leg model.Leg) []string {
	row := make([]string, numFields)
	row[colEntryID] = leg.EntryID
	row[colDate] = leg.Date.Format(dateFormat)
	row[colCode] = strconv.Itoa(leg.AccountCode)
	row[colAccount] = string(leg.Account)
	row[colDesc] = leg.Description

	if !leg.Debit.IsZero() {
		row[colDebit] = leg.Debit.StringFixed(2)
	}
	if !leg.Credit.IsZero() {
		row[colCredit] = leg.Credit.StringFixed(2)
	}

	row[colTxID] = leg.TransactionID
	return row
}

// UnmarshalLeg converts a CSV row to a Leg.
func UnmarshalLeg(record []string) (model.Leg, error) {
	if len(record) != numFields {
		return model.Leg{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Leg{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	code, err := strconv.Atoi(record[colCode])
	if err != nil {
		return model.Leg{}, fmt.Errorf("parsing account_code %q: %w", record[colCode], err)
	}

	var debit, credit decimal.Decimal

	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return model.Leg{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}

	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return model.Leg{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	return model.Leg{
		EntryID:       record[colEntryID],
		Date:          date,
		AccountCode:   code,
		Account:       model.Account(record[colAccount]),
		Description:   record[colDesc],
		Debit:         debit,
		Credit:        credit,
		TransactionID: record[colTxID],
	}, nil
}
