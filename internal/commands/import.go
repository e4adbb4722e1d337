package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashbook/internal/audit"
	"github.com/cleared-dev/cashbook/internal/importer"
	"github.com/cleared-dev/cashbook/internal/model"
	"github.com/cleared-dev/cashbook/internal/store"
)

func newImportCommand(root *rootOptions) *cobra.Command {
	var (
		format string
		method string
	)

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import bank CSV exports",
		Long: `Import bank CSV exports as transactions. Positive amounts become income,
negative amounts expenses. With no files, every CSV in import/ is imported and
moved to import/processed/. Rows already imported are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, root)
			if err != nil {
				return err
			}
			defer p.Close()

			pm := model.PaymentMethod(strings.ToLower(method))
			if pm != model.MethodCash && pm != model.MethodCard {
				return fmt.Errorf("unknown --method %q: must be cash or card", method)
			}
			parser := importer.DefaultRegistry(p.loc).Get(format)
			if parser == nil {
				return fmt.Errorf("unknown --format %q", format)
			}

			files := args
			fromInbox := len(args) == 0
			if fromInbox {
				found, err := importer.Scan(p.dir)
				if err != nil {
					return err
				}
				for _, f := range found {
					files = append(files, f.Path)
				}
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
				return nil
			}

			var entries []audit.Entry
			totalAdded := 0
			for _, path := range files {
				bank, err := importer.ParseFile(parser, path)
				if err != nil {
					return err
				}
				added, skipped := 0, 0
				for _, tx := range importer.ToTransactions(bank, pm) {
					err := p.store.Add(cmd.Context(), tx)
					switch {
					case err == nil:
						added++
					case errors.Is(err, store.ErrDuplicate):
						skipped++
					default:
						return err
					}
				}
				if fromInbox {
					if err := importer.MarkProcessed(p.dir, filepath.Base(path)); err != nil {
						return err
					}
				}

				name := filepath.Base(path)
				p.log.Info().Str("file", name).Int("added", added).Int("skipped", skipped).Msg("imported")
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d added, %d skipped\n", name, added, skipped)
				entries = append(entries, audit.Entry{
					Action:  audit.ActionImport,
					Details: fmt.Sprintf("%s (%s): %d added, %d skipped", name, parser.Format(), added, skipped),
				})
				totalAdded += added
			}

			return p.record(cmd.Context(), fmt.Sprintf("import: %d transactions", totalAdded), entries...)
		},
	}

	cmd.Flags().StringVar(&format, "format", "chase", "bank export format (chase, simple)")
	cmd.Flags().StringVar(&method, "method", string(model.MethodCash), "payment method for imported rows: cash or card")

	return cmd
}
