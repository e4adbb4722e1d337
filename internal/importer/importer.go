// Package importer turns bank statement exports into transaction records.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cleared-dev/cashbook/internal/id"
	"github.com/cleared-dev/cashbook/internal/model"
)

// Parser converts a bank CSV file into BankTransactions.
type Parser interface {
	Parse(r io.Reader) ([]model.BankTransaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file waiting in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with the built-in parsers. Dates are
// read in loc; nil means UTC.
func DefaultRegistry(loc *time.Location) *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{Location: loc})
	r.Register(&SimpleParser{Location: loc})
	return r
}

// ToTransactions maps bank rows to transaction records paid by method.
// Positive amounts are income and negative amounts expense; the record
// carries the absolute value. IDs derive from the bank reference, with an
// occurrence counter so identical rows on the same day stay distinct.
func ToTransactions(bank []model.BankTransaction, method model.PaymentMethod) []model.Transaction {
	seen := make(map[string]int)
	out := make([]model.Transaction, 0, len(bank))
	for _, b := range bank {
		typ := model.TypeIncome
		if b.Amount.IsNegative() {
			typ = model.TypeExpense
		}
		seen[b.Reference]++
		ref := fmt.Sprintf("%s#%d", b.Reference, seen[b.Reference])

		out = append(out, model.Transaction{
			ID:          id.ImportedTransactionID(ref),
			Date:        b.Date,
			Description: b.Description,
			Amount:      b.Amount.Abs(),
			Type:        typ,
			Method:      method,
		})
	}
	return out
}

// ParseFile opens path and parses it with p.
func ParseFile(p Parser, path string) ([]model.BankTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s as %s: %w", filepath.Base(path), p.Format(), err)
	}
	return txns, nil
}

// Dir is the project subdirectory watched for bank exports.
const Dir = "import"

const processedDir = "import/processed"

// Scan returns CSV files in <root>/import/.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, Dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, Dir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}
	if err := os.Rename(src, filepath.Join(dstDir, fileName)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
