package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashbook/internal/model"
)

func TestExport_WritesMonthFiles(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, chartStub{})

	entries := mustPostAll(t,
		txn("a", date(2025, 1, 10), "20", model.TypeIncome, model.MethodCash),
		txn("b", date(2025, 2, 3), "30", model.TypeIncome, model.MethodCash),
		txn("c", date(2025, 2, 4), "10", model.TypeExpense, model.MethodCard),
	)
	legs, err := Legs(entries, chartStub{})
	require.NoError(t, err)

	paths, err := svc.Export(legs)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "2025", "01", "journal.csv"),
		filepath.Join(dir, "2025", "02", "journal.csv"),
	}, paths)

	jan, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	assert.Len(t, jan, 2)

	feb, err := svc.ReadMonth(2025, 2)
	require.NoError(t, err)
	require.Len(t, feb, 4, "two entries x 2 legs")
	assert.True(t, feb[2].Debit.Equal(feb[3].Credit), "entry must balance")
}

func TestExport_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, chartStub{})

	first, err := Legs(mustPostAll(t,
		txn("a", date(2025, 1, 10), "20", model.TypeIncome, model.MethodCash),
		txn("b", date(2025, 1, 11), "5", model.TypeExpense, model.MethodCash),
	), chartStub{})
	require.NoError(t, err)
	_, err = svc.Export(first)
	require.NoError(t, err)

	second, err := Legs(mustPostAll(t, txn("a", date(2025, 1, 10), "20", model.TypeIncome, model.MethodCash)), chartStub{})
	require.NoError(t, err)
	_, err = svc.Export(second)
	require.NoError(t, err)

	legs, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	assert.Len(t, legs, 2)
}

func TestExport_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, chartStub{})

	legs := balancedEntry("2025-01-001", 9999, 1010, "50.00")
	_, err := svc.Export(legs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, err = os.Stat(filepath.Join(dir, "2025"))
	assert.True(t, os.IsNotExist(err), "nothing should be written")
}

func TestReadMonth_NonExistent(t *testing.T) {
	svc := NewService(t.TempDir(), chartStub{})
	legs, err := svc.ReadMonth(2025, 6)
	require.NoError(t, err)
	assert.Empty(t, legs)
}
