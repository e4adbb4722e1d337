// Package audit keeps an append-only CSV trail of changes made to the
// books: transactions added, deleted or imported and journals exported.
package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Actions recorded by the CLI.
const (
	ActionAdd    = "add"
	ActionDelete = "delete"
	ActionImport = "import"
	ActionExport = "export"
	ActionInit   = "init"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp     time.Time `json:"timestamp"`
	Action        string    `json:"action"`
	TransactionID string    `json:"transactionId,omitempty"`
	Details       string    `json:"details"`
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,action,transaction_id,details"

const (
	numFields  = 4
	logDir     = "logs"
	logFile    = "logs/audit-log.csv"
	colTime    = 0
	colAction  = 1
	colTxnID   = 2
	colDetails = 3
)

// Path returns the audit log path for a project directory.
func Path(root string) string {
	return filepath.Join(root, logFile)
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colAction] = e.Action
	row[colTxnID] = e.TransactionID
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}
	return Entry{
		Timestamp:     ts,
		Action:        record[colAction],
		TransactionID: record[colTxnID],
		Details:       record[colDetails],
	}, nil
}

// Append writes entries to <root>/logs/audit-log.csv, creating the file
// and header if needed.
func Append(root string, entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Join(root, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(root)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries, oldest first. A missing log is empty.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()
	return readEntries(f)
}

// Tail returns the last n entries; n <= 0 returns all.
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
