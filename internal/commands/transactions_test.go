package commands_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashbook/internal/audit"
	"github.com/cleared-dev/cashbook/internal/model"
)

func listJSON(t *testing.T, args ...string) []model.Transaction {
	t.Helper()
	out := mustRun(t, append([]string{"list", "--json"}, args...)...)
	var txs []model.Transaction
	require.NoError(t, json.Unmarshal([]byte(out), &txs))
	return txs
}

func TestAdd_AndList(t *testing.T) {
	dir := newProject(t)

	incomeID := add(t, dir, "2025-03-15", "50000", "income", "cash", "Consulting")
	expenseID := add(t, dir, "2025-03-02", "10000", "expense", "card", "Software")
	_, err := uuid.Parse(incomeID)
	require.NoError(t, err)

	txs := listJSON(t, "--repo", dir)
	require.Len(t, txs, 2)
	// Date order, not insertion order.
	assert.Equal(t, expenseID, txs[0].ID)
	assert.Equal(t, model.MethodCard, txs[0].Method)
	assert.Equal(t, "50000", txs[1].Amount.String())
	assert.Equal(t, 15, txs[1].Date.Day())

	out := mustRun(t, "list", "--repo", dir)
	assert.Contains(t, out, "Consulting")
	assert.Contains(t, out, "50,000.00")
}

func TestList_Month(t *testing.T) {
	dir := newProject(t)
	add(t, dir, "2025-01-20", "20000", "income", "cash", "January")
	add(t, dir, "2025-02-10", "30000", "income", "cash", "February")

	txs := listJSON(t, "--repo", dir, "--month", "2025-02")
	require.Len(t, txs, 1)
	assert.Equal(t, "February", txs[0].Description)

	assert.Empty(t, listJSON(t, "--repo", dir, "--month", "2024-12"))
}

func TestAdd_Rejected(t *testing.T) {
	dir := newProject(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"negative amount", []string{"--amount=-5", "--type", "expense"}, "negative"},
		{"unknown type", []string{"--amount", "5", "--type", "gift"}, "type"},
		{"unknown method", []string{"--amount", "5", "--type", "income", "--method", "cheque"}, "method"},
		{"bad date", []string{"--amount", "5", "--type", "income", "--date", "03/02/2025"}, "yyyy-mm-dd"},
		{"bad amount", []string{"--amount", "five", "--type", "income"}, "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, err := runCashbook(t, append([]string{"add", "--repo", dir}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, strings.ToLower(errOut), tt.want)
		})
	}
	assert.Empty(t, listJSON(t, "--repo", dir), "rejected records are never stored")
}

func TestAdd_ZeroAmount(t *testing.T) {
	dir := newProject(t)
	add(t, dir, "2025-03-01", "0", "income", "cash", "Free sample")
	assert.Len(t, listJSON(t, "--repo", dir), 1)
}

func TestDelete(t *testing.T) {
	dir := newProject(t)
	txID := add(t, dir, "2025-03-01", "100", "expense", "cash", "Stamps")

	out := mustRun(t, "delete", "--repo", dir, txID)
	assert.Contains(t, out, "Deleted "+txID)
	assert.Empty(t, listJSON(t, "--repo", dir))

	_, errOut, err := runCashbook(t, "delete", "--repo", dir, txID)
	require.Error(t, err)
	assert.Contains(t, errOut, "not found")
}

func TestSQLiteBackend(t *testing.T) {
	dir := newProject(t, "--backend", "sqlite")
	txID := add(t, dir, "2025-03-01", "99.95", "expense", "card", "Cables")

	txs := listJSON(t, "--repo", dir)
	require.Len(t, txs, 1)
	assert.Equal(t, txID, txs[0].ID)
	assert.Equal(t, "99.95", txs[0].Amount.StringFixed(2))
}

func TestNotAProject(t *testing.T) {
	_, errOut, err := runCashbook(t, "list", "--repo", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, errOut, "not a cashbook project")
}

func TestLog(t *testing.T) {
	dir := newProject(t)
	txID := add(t, dir, "2025-03-01", "100", "expense", "cash", "Stamps")
	mustRun(t, "delete", "--repo", dir, txID)

	out := mustRun(t, "log", "--repo", dir, "--json")
	var entries []audit.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, audit.ActionInit, entries[0].Action)
	assert.Equal(t, audit.ActionAdd, entries[1].Action)
	assert.Equal(t, txID, entries[1].TransactionID)
	assert.Equal(t, audit.ActionDelete, entries[2].Action)

	out = mustRun(t, "log", "--repo", dir, "--limit", "1")
	assert.Contains(t, out, "delete")
	assert.NotContains(t, out, "init")
}
