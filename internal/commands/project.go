package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashbook/internal/audit"
	"github.com/cleared-dev/cashbook/internal/config"
	"github.com/cleared-dev/cashbook/internal/gitops"
	"github.com/cleared-dev/cashbook/internal/journal"
	"github.com/cleared-dev/cashbook/internal/logging"
	"github.com/cleared-dev/cashbook/internal/model"
	"github.com/cleared-dev/cashbook/internal/period"
	"github.com/cleared-dev/cashbook/internal/store"
)

// project is an opened cashbook directory.
type project struct {
	dir   string
	cfg   *config.Config
	loc   *time.Location
	log   zerolog.Logger
	store store.Store
}

// openProject loads the config and store of the project named by --repo.
// The logger is attached to the command context.
func openProject(cmd *cobra.Command, opts *rootOptions) (*project, error) {
	dir, err := filepath.Abs(opts.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err != nil {
		return nil, fmt.Errorf("%s is not a cashbook project (run cashbook init): %w", dir, err)
	}

	cfg, err := config.LoadProject(dir)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	log, err := logging.New(logging.Options{Level: level, Format: cfg.Log.Format, Out: cmd.ErrOrStderr()})
	if err != nil {
		return nil, err
	}
	log = log.With().Str("project", cfg.Business.Name).Logger()
	cmd.SetContext(logging.WithContext(cmd.Context(), log))

	s, err := store.Open(cmd.Context(), cfg, dir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	return &project{dir: dir, cfg: cfg, loc: loc, log: log, store: s}, nil
}

func (p *project) Close() error {
	return p.store.Close()
}

// transactions loads every record and drops the ones that cannot be posted,
// logging each rejection.
func (p *project) transactions(ctx context.Context) ([]model.Transaction, error) {
	all, err := p.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	valid, rejected := journal.Partition(all)
	for _, r := range rejected {
		p.log.Warn().
			Int("index", r.Index).
			Str("id", r.ID).
			Str("reason", r.Reason).
			Msg("skipping invalid transaction")
	}
	return valid, nil
}

// month resolves a YYYY-MM flag, defaulting to the current month.
func (p *project) month(key string) (period.Period, error) {
	if key == "" {
		return period.MonthOf(time.Now().In(p.loc)), nil
	}
	return period.ParseMonth(key, p.loc)
}

// record appends to the audit log and, when enabled, commits the project.
func (p *project) record(ctx context.Context, message string, entries ...audit.Entry) error {
	now := time.Now()
	for i := range entries {
		if entries[i].Timestamp.IsZero() {
			entries[i].Timestamp = now
		}
	}
	if err := audit.Append(p.dir, entries...); err != nil {
		return err
	}
	commitHistory(ctx, p.dir, p.cfg, message, p.log)
	return nil
}

// commitHistory commits the project when auto-commit is on. A failed
// commit is logged; the books themselves are already written.
func commitHistory(ctx context.Context, dir string, cfg *config.Config, message string, log zerolog.Logger) {
	if !cfg.History.AutoCommit || !gitops.IsRepo(dir) {
		return
	}
	author := gitops.Author{Name: cfg.History.AuthorName, Email: cfg.History.AuthorEmail}
	hash, err := gitops.CommitAll(ctx, dir, message, author)
	if err != nil {
		log.Warn().Err(err).Msg("history commit failed")
		return
	}
	if hash != "" {
		log.Debug().Str("commit", hash).Msg("history committed")
	}
}

// strictFlag returns the --strict flag when set, else the config default.
func strictFlag(cmd *cobra.Command, cfg *config.Config) bool {
	if f := cmd.Flags().Lookup("strict"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("strict")
		return v
	}
	return cfg.Reports.Strict
}
