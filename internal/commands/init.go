package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashbook/internal/accounts"
	"github.com/cleared-dev/cashbook/internal/audit"
	"github.com/cleared-dev/cashbook/internal/config"
	"github.com/cleared-dev/cashbook/internal/gitops"
	"github.com/cleared-dev/cashbook/internal/importer"
	"github.com/cleared-dev/cashbook/internal/store"
)

type initOptions struct {
	name     string
	currency string
	timezone string
	backend  string
	git      bool
}

func newInitCommand() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new cashbook project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&opts.currency, "currency", "KRW", "reporting currency code")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "UTC", "IANA timezone used to cut months")
	cmd.Flags().StringVar(&opts.backend, "backend", config.BackendCSV, "transaction store: csv or sqlite")
	cmd.Flags().BoolVar(&opts.git, "git", false, "version the project with git")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, opts initOptions) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	cfg := config.Default(opts.name)
	cfg.Business.Currency = opts.currency
	cfg.Fiscal.Timezone = opts.timezone
	cfg.Storage.Backend = opts.backend
	if opts.backend == config.BackendSQLite {
		cfg.Storage.Path = "cashbook.db"
	}
	cfg.History.AutoCommit = opts.git
	if err := cfg.Validate(); err != nil {
		return err
	}

	for _, d := range []string{"accounts", "logs", importer.Dir, filepath.Join(importer.Dir, "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := accounts.Default().Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	if err := store.Init(cmd.Context(), cfg, dir); err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, importer.Dir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}
	if err := audit.Append(dir, audit.Entry{Action: audit.ActionInit, Details: "initialized " + opts.name, Timestamp: time.Now()}); err != nil {
		return err
	}

	if opts.git {
		if err := initGit(cmd.Context(), dir, cfg); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized cashbook project at %s\n", dir)
	return nil
}

func initGit(ctx context.Context, dir string, cfg *config.Config) error {
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\n"), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	if !gitops.IsRepo(dir) {
		if err := gitops.Init(ctx, dir); err != nil {
			return err
		}
	}
	author := gitops.Author{Name: cfg.History.AuthorName, Email: cfg.History.AuthorEmail}
	if _, err := gitops.CommitAll(ctx, dir, "init: Initialize "+cfg.Business.Name, author); err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}
	return nil
}
