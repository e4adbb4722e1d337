package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashbook/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "id,date,description,amount,type,method"

const (
	numFields  = 6
	colID      = 0
	colDate    = 1
	colDesc    = 2
	colAmount  = 3
	colType    = 4
	colMethod  = 5
	dateFormat = time.RFC3339
)

// CSVStore keeps transactions in a single CSV file. Every write rewrites
// the file through a temporary file and rename.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

// NewCSVStore creates a store backed by path. The file is created on the
// first write.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path returns the backing file.
func (s *CSVStore) Path() string { return s.path }

// List returns all transactions in file order.
func (s *CSVStore) List(_ context.Context) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.read()
	if err != nil {
		return nil, err
	}
	return decodeRows(rows)
}

// Add appends tx. The ID must be unique.
func (s *CSVStore) Add(_ context.Context, tx model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.read()
	if err != nil {
		return err
	}
	if indexOf(rows, tx.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicate, tx.ID)
	}
	return s.write(append(rows, MarshalTransaction(tx)))
}

// Update replaces the transaction with tx.ID.
func (s *CSVStore) Update(_ context.Context, tx model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.read()
	if err != nil {
		return err
	}
	i := indexOf(rows, tx.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, tx.ID)
	}
	rows[i] = MarshalTransaction(tx)
	return s.write(rows)
}

// Delete removes the transaction with id.
func (s *CSVStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.read()
	if err != nil {
		return err
	}
	i := indexOf(rows, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.write(append(rows[:i], rows[i+1:]...))
}

// Close is a no-op.
func (s *CSVStore) Close() error { return nil }

// ensure writes an empty file with the header if none exists.
func (s *CSVStore) ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", s.path, err)
	}
	return s.write(nil)
}

func indexOf(rows [][]string, id string) int {
	for i, row := range rows {
		if row[colID] == id {
			return i
		}
	}
	return -1
}

// read returns the data rows undecoded, so rows the store can't decode are
// written back unchanged by Add, Update and Delete.
func (s *CSVStore) read() ([][]string, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening transactions %s: %w", s.path, err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return nil, fmt.Errorf("reading transactions %s: %w", s.path, err)
	}
	return rows, nil
}

func (s *CSVStore) write(rows [][]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".transactions-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeRows(tmp, rows); err != nil {
		tmp.Close()
		return fmt.Errorf("writing transactions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

func readRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}

func writeRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func decodeRows(rows [][]string) ([]model.Transaction, error) {
	txs := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := UnmarshalTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// ReadTransactions reads a transactions.csv reader. A row whose date or
// amount can't be parsed is returned with Malformed set.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return decodeRows(rows)
}

// WriteTransactions writes transactions.csv (including header).
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	rows := make([][]string, len(txs))
	for i, tx := range txs {
		rows[i] = MarshalTransaction(tx)
	}
	return writeRows(w, rows)
}

// MarshalTransaction converts a Transaction to a CSV row. A zero date is
// written as an empty field.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = tx.ID
	if !tx.Date.IsZero() {
		row[colDate] = tx.Date.Format(dateFormat)
	}
	row[colDesc] = tx.Description
	row[colAmount] = tx.Amount.String()
	row[colType] = string(tx.Type)
	row[colMethod] = string(tx.Method)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction. Type and method
// are copied verbatim; the journal engine decides whether they are valid.
// An empty date stays zero so the engine can reject the record by ID. A date
// or amount that doesn't parse sets Malformed instead of failing the row.
// Only a wrong field count is an error.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	tx := model.Transaction{
		ID:          record[colID],
		Description: record[colDesc],
		Type:        model.TransactionType(record[colType]),
		Method:      model.PaymentMethod(record[colMethod]),
	}

	var problems []string
	if record[colDate] != "" {
		d, err := time.Parse(dateFormat, record[colDate])
		if err != nil {
			problems = append(problems, fmt.Sprintf("unparseable date %q", record[colDate]))
		} else {
			tx.Date = d
		}
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		problems = append(problems, fmt.Sprintf("non-numeric amount %q", record[colAmount]))
	} else {
		tx.Amount = amount
	}
	tx.Malformed = strings.Join(problems, "; ")
	return tx, nil
}
