package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Biz")
	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.Path = "books.db"
	cfg.Reports.Strict = true

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company")

	assert.Equal(t, "My Company", cfg.Business.Name)
	assert.Equal(t, "KRW", cfg.Business.Currency)
	assert.Equal(t, "UTC", cfg.Fiscal.Timezone)
	assert.Equal(t, BackendCSV, cfg.Storage.Backend)
	assert.Equal(t, "transactions.csv", cfg.Storage.Path)
	assert.Equal(t, 6, cfg.Reports.TrendMonths)
	assert.Equal(t, 5, cfg.Reports.TopExpenses)
	assert.False(t, cfg.Reports.Strict)
	assert.False(t, cfg.History.AutoCommit)
	assert.NotEmpty(t, cfg.History.AuthorEmail)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("business: [\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Biz")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "backend: csv")
	assert.Contains(t, contents, "timezone: UTC")
	assert.Contains(t, contents, "trend_months: 6")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default("Env Biz")
	env := map[string]string{
		"CASHBOOK_STORAGE_BACKEND": "sqlite",
		"CASHBOOK_STORAGE_PATH":    "/tmp/books.db",
		"CASHBOOK_TIMEZONE":        "Asia/Seoul",
		"CASHBOOK_LOG_LEVEL":       "debug",
		"CASHBOOK_STRICT":          "true",
	}
	err := cfg.ApplyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok })
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/books.db", cfg.StoragePath("/project"))
	assert.Equal(t, "Asia/Seoul", cfg.Fiscal.Timezone)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Reports.Strict)
}

func TestApplyEnv_BadBool(t *testing.T) {
	cfg := Default("Env Biz")
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		if k == "CASHBOOK_STRICT" {
			return "sometimes", true
		}
		return "", false
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CASHBOOK_STRICT")
}

func TestLoadProject_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(filepath.Join(dir, FileName), Default("Dot Env")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CASHBOOK_STORAGE_PATH=ledger.csv\nCASHBOOK_LOG_FORMAT=json\n"), 0o644))
	t.Setenv("CASHBOOK_LOG_FORMAT", "console")

	cfg, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ledger.csv"), cfg.StoragePath(dir))
	assert.Equal(t, "console", cfg.Log.Format, "process environment wins over .env")
}

func TestLoadProject_NoDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(filepath.Join(dir, FileName), Default("Plain")))
	cfg, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "Plain", cfg.Business.Name)
}

func TestValidate(t *testing.T) {
	cfg := Default("Bad")
	cfg.Storage.Backend = "postgres"
	cfg.Storage.Path = ""
	cfg.Fiscal.Timezone = "Mars/Olympus"
	cfg.Reports.TopExpenses = -1

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"unknown storage backend", "storage path is required", "loading timezone", "invalid top_expenses"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLocation(t *testing.T) {
	cfg := Default("Loc")
	cfg.Fiscal.Timezone = ""
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg.Fiscal.Timezone = "Asia/Seoul"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Seoul", loc.String())

	cfg.Fiscal.Timezone = "Mars/Olympus"
	_, err = cfg.Location()
	assert.Error(t, err)
}
