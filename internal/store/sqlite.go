package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cleared-dev/cashbook/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps transactions in a SQLite database. Amounts are stored
// as decimal text so no precision is lost.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// List returns all transactions ordered by date then ID.
func (s *SQLiteStore) List(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, occurred_at, description, amount, type, method
		   FROM transactions
		  ORDER BY occurred_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var id, date, desc, amount, typ, method string
		if err := rows.Scan(&id, &date, &desc, &amount, &typ, &method); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx, err := UnmarshalTransaction([]string{id, date, desc, amount, typ, method})
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", id, err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Add inserts tx. The ID must be unique.
func (s *SQLiteStore) Add(ctx context.Context, tx model.Transaction) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM transactions WHERE id = ?`, tx.ID).Scan(&exists)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrDuplicate, tx.ID)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("check transaction %s: %w", tx.ID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, occurred_at, description, amount, type, method)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tx.ID, formatDate(tx.Date), tx.Description, tx.Amount.String(), string(tx.Type), string(tx.Method))
	if err != nil {
		return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
	}
	return nil
}

// Update replaces the transaction with tx.ID.
func (s *SQLiteStore) Update(ctx context.Context, tx model.Transaction) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions
		    SET occurred_at = ?, description = ?, amount = ?, type = ?, method = ?
		  WHERE id = ?`,
		formatDate(tx.Date), tx.Description, tx.Amount.String(), string(tx.Type), string(tx.Method), tx.ID)
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", tx.ID, err)
	}
	return expectOne(res, tx.ID)
}

// Delete removes the transaction with id.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return expectOne(res, id)
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

