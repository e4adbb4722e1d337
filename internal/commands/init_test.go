package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashbook/internal/accounts"
	"github.com/cleared-dev/cashbook/internal/config"
	"github.com/cleared-dev/cashbook/internal/store"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := newProject(t)

	for _, d := range []string{"accounts", "logs", "import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	data, err := os.ReadFile(filepath.Join(dir, "transactions.csv"))
	require.NoError(t, err)
	assert.Equal(t, store.Header+"\n", string(data))
}

func TestInit_Config(t *testing.T) {
	dir := newProject(t, "--currency", "USD", "--timezone", "America/New_York")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "Test Biz", cfg.Business.Name)
	assert.Equal(t, "USD", cfg.Business.Currency)
	assert.Equal(t, "America/New_York", cfg.Fiscal.Timezone)
	assert.Equal(t, config.BackendCSV, cfg.Storage.Backend)
	assert.False(t, cfg.History.AutoCommit)
}

func TestInit_Accounts(t *testing.T) {
	dir := newProject(t)

	svc, err := accounts.Load(dir)
	require.NoError(t, err)
	assert.Len(t, svc.All(), 6, "one chart row per ledger account")
	assert.True(t, svc.Exists(1010))
}

func TestInit_SQLite(t *testing.T) {
	dir := newProject(t, "--backend", "sqlite")
	assert.FileExists(t, filepath.Join(dir, "cashbook.db"))
	assert.NoFileExists(t, filepath.Join(dir, "transactions.csv"))
}

func TestInit_RequiresName(t *testing.T) {
	_, _, err := runCashbook(t, "init", t.TempDir())
	require.Error(t, err, "init without --name should fail")
}

func TestInit_Twice(t *testing.T) {
	dir := newProject(t)
	_, errOut, err := runCashbook(t, "init", dir, "--name", "Again")
	require.Error(t, err)
	assert.Contains(t, errOut, "already exists")
}

func TestInit_BadBackend(t *testing.T) {
	_, _, err := runCashbook(t, "init", t.TempDir(), "--name", "X", "--backend", "mongo")
	require.Error(t, err)
}

func TestInit_Git(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := newProject(t, "--git")

	_, err := os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	add(t, dir, "2025-03-02", "12.50", "expense", "cash", "Coffee beans")

	log := exec.Command("git", "log", "--format=%s|%an", "-2")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "add: expense 12.50 cash Coffee beans|Cashbook")
	assert.Contains(t, string(out), "init: Initialize Test Biz|Cashbook")
}
