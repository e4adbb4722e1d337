package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/cashbook/internal/model"
)

// Service writes and reads month-partitioned journal exports under a root
// directory, laid out as <root>/YYYY/MM/journal.csv.
type Service struct {
	root     string
	accounts AccountChecker
}

// NewService creates a journal Service.
func NewService(root string, accounts AccountChecker) *Service {
	return &Service{root: root, accounts: accounts}
}

// Export validates legs and replaces the journal file of every month they
// touch. Returns the written paths in month order.
func (s *Service) Export(legs []model.Leg) ([]string, error) {
	if verrs := ValidateLegs(legs, s.accounts); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return nil, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	byMonth := make(map[[2]int][]model.Leg)
	for _, leg := range legs {
		k := [2]int{leg.Date.Year(), int(leg.Date.Month())}
		byMonth[k] = append(byMonth[k], leg)
	}
	keys := make([][2]int, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	paths := make([]string, 0, len(keys))
	for _, k := range keys {
		path := s.monthPath(k[0], k[1])
		if err := writeFile(path, byMonth[k]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, legs []model.Leg) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal: %w", err)
	}
	defer f.Close()

	if err := WriteLegs(f, legs); err != nil {
		return fmt.Errorf("writing journal %s: %w", path, err)
	}
	return nil
}

// ReadMonth reads all legs for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.Leg, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	legs, err := ReadLegs(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return legs, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.root, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}
