package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/cashbook/internal/model"
)

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts  []model.ChartAccount
	byCode    map[int]model.ChartAccount
	byAccount map[model.Account]model.ChartAccount
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.ChartAccount) *Service {
	byCode := make(map[int]model.ChartAccount, len(accounts))
	byAccount := make(map[model.Account]model.ChartAccount, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a
		byAccount[a.Account] = a
	}
	return &Service{accounts: accounts, byCode: byCode, byAccount: byAccount}
}

// Default returns a Service over DefaultChart.
func Default() *Service {
	return NewService(DefaultChart())
}

// Load reads chart-of-accounts.csv from a repo root and returns a Service.
func Load(repoRoot string) (*Service, error) {
	path := filepath.Join(repoRoot, "accounts", "chart-of-accounts.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.ChartAccount {
	return s.accounts
}

// Get returns an account by code.
func (s *Service) Get(code int) (model.ChartAccount, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// Lookup returns the chart row for a chart member.
func (s *Service) Lookup(account model.Account) (model.ChartAccount, bool) {
	a, ok := s.byAccount[account]
	return a, ok
}

// Exists reports whether an account code exists.
func (s *Service) Exists(code int) bool {
	_, ok := s.byCode[code]
	return ok
}

// Name returns the display name of account, falling back to its identifier.
func (s *Service) Name(account model.Account) string {
	if a, ok := s.byAccount[account]; ok {
		return a.Name
	}
	return string(account)
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.ChartAccount {
	var result []model.ChartAccount
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	path := filepath.Join(dir, "chart-of-accounts.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
