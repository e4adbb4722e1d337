package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // fiscal timezones resolve on hosts without a zone database

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file inside a project directory.
const FileName = "cashbook.yaml"

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config represents the top-level cashbook.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
	Storage  StorageConfig  `yaml:"storage"`
	Reports  ReportsConfig  `yaml:"reports"`
	Log      LogConfig      `yaml:"log"`
	History  HistoryConfig  `yaml:"history"`
}

// BusinessConfig identifies the bookkeeping entity.
type BusinessConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// FiscalConfig defines how calendar months are cut.
type FiscalConfig struct {
	Timezone string `yaml:"timezone"` // IANA name, e.g. "Asia/Seoul"
}

// StorageConfig selects the transaction store.
type StorageConfig struct {
	Backend string `yaml:"backend"` // csv or sqlite
	Path    string `yaml:"path"`    // relative to the project directory
}

// ReportsConfig controls statement and dashboard output.
type ReportsConfig struct {
	Strict      bool `yaml:"strict"`
	TrendMonths int  `yaml:"trend_months"`
	TopExpenses int  `yaml:"top_expenses"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HistoryConfig controls git commits of the project directory after each
// change to the books.
type HistoryConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a cashbook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:     businessName,
			Currency: "KRW",
		},
		Fiscal: FiscalConfig{
			Timezone: "UTC",
		},
		Storage: StorageConfig{
			Backend: BackendCSV,
			Path:    "transactions.csv",
		},
		Reports: ReportsConfig{
			Strict:      false,
			TrendMonths: 6,
			TopExpenses: 5,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		History: HistoryConfig{
			AutoCommit:  false,
			AuthorName:  "Cashbook",
			AuthorEmail: "cashbook@localhost",
		},
	}
}

// LoadProject reads <dir>/cashbook.yaml, then applies overrides from
// <dir>/.env and the process environment, in that order of precedence
// (process environment wins).
func LoadProject(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}

	env, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from CASHBOOK_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("CASHBOOK_STORAGE_BACKEND", &c.Storage.Backend)
	str("CASHBOOK_STORAGE_PATH", &c.Storage.Path)
	str("CASHBOOK_TIMEZONE", &c.Fiscal.Timezone)
	str("CASHBOOK_LOG_LEVEL", &c.Log.Level)
	str("CASHBOOK_LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("CASHBOOK_STRICT"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing CASHBOOK_STRICT %q: %w", v, err)
		}
		c.Reports.Strict = b
	}
	return nil
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Backend {
	case BackendCSV, BackendSQLite:
	default:
		problems = append(problems, fmt.Sprintf("unknown storage backend %q: must be csv or sqlite", c.Storage.Backend))
	}
	if c.Storage.Path == "" {
		problems = append(problems, "storage path is required")
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Reports.TrendMonths < 0 {
		problems = append(problems, fmt.Sprintf("invalid trend_months %d", c.Reports.TrendMonths))
	}
	if c.Reports.TopExpenses < 0 {
		problems = append(problems, fmt.Sprintf("invalid top_expenses %d", c.Reports.TopExpenses))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location returns the time zone months are cut in. Empty means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Fiscal.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Fiscal.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Fiscal.Timezone, err)
	}
	return loc, nil
}

// StoragePath resolves the storage path against the project directory.
func (c *Config) StoragePath(dir string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(dir, c.Storage.Path)
}
