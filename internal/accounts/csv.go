package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cleared-dev/cashbook/internal/model"
)

const (
	numFields  = 5
	colCode    = 0
	colAccount = 1
	colName    = 2
	colType    = 3
	colDesc    = 4
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.ChartAccount, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.ChartAccount
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.ChartAccount) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"account_code", "account", "account_name", "account_type", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts a ChartAccount to a CSV row.
func MarshalAccount(acct model.ChartAccount) []string {
	row := make([]string, numFields)
	row[colCode] = strconv.Itoa(acct.Code)
	row[colAccount] = string(acct.Account)
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row to a ChartAccount. The account must be
// a member of the fixed chart and its type must match the declared one.
func UnmarshalAccount(record []string) (model.ChartAccount, error) {
	if len(record) != numFields {
		return model.ChartAccount{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	code, err := strconv.Atoi(record[colCode])
	if err != nil {
		return model.ChartAccount{}, fmt.Errorf("parsing account_code %q: %w", record[colCode], err)
	}

	acct := model.Account(record[colAccount])
	if !acct.Valid() {
		return model.ChartAccount{}, fmt.Errorf("unknown account %q", record[colAccount])
	}
	typ := model.AccountType(record[colType])
	if typ != acct.Type() {
		return model.ChartAccount{}, fmt.Errorf("account %s has type %s, not %q", acct, acct.Type(), record[colType])
	}

	return model.ChartAccount{
		Code:        code,
		Account:     acct,
		Name:        record[colName],
		Type:        typ,
		Description: record[colDesc],
	}, nil
}
