package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/ledger"
)

var dryRun bool

// entryFile is the YAML shape of a journal entry file.
type entryFile struct {
	Date      string `yaml:"date"`
	Memo      string `yaml:"memo"`
	Type      string `yaml:"type"`
	DocNumber string `yaml:"doc_number"`
	Lines     []struct {
		Account     string `yaml:"account"` // account name
		AccountID   int64  `yaml:"account_id"`
		Amount      string `yaml:"amount"` // signed decimal, debit-positive
		Description string `yaml:"description"`
	} `yaml:"lines"`
}

// postCmd represents the post command.
var postCmd = &cobra.Command{
	Use:   "post <entry.yaml>",
	Short: "Post a journal entry",
	Long: `Post a balanced journal entry from a YAML file.

The file lists the entry date, memo, and lines. Each line names an
account (by name or id) and a signed amount following the
debit-positive convention. Lines must sum to zero.

  date: 2026-01-12
  memo: Sample transaction
  lines:
    - account: Checking Account
      amount: "1000.00"
      description: Payment received
    - account: Service Revenue
      amount: "-1000.00"
      description: Service revenue

Example:
  oaif-ledger post entry.yaml
  oaif-ledger post entry.yaml --dry-run`,
	Args: cobra.ExactArgs(1),
	Run:  runPost,
}

func init() {
	postCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate only, post nothing")
}

func runPost(cmd *cobra.Command, args []string) {
	conn, l, err := openLedger(dryRun)
	exitOnError(err, "failed to open store")
	defer conn.Close()

	entry, err := loadEntryFile(l, args[0])
	exitOnError(err, "failed to load entry file")

	if dryRun {
		err := l.ValidateEntry(*entry)
		exitOnError(err, "entry is invalid")
		fmt.Printf("[DRY RUN] Entry is valid: %d lines on %s\n", len(entry.Lines), entry.Date)
		return
	}

	headerID, err := l.PostJournalEntry(*entry)
	exitOnError(err, "failed to post entry")

	fmt.Printf("Posted entry %d (%d lines)\n", headerID, len(entry.Lines))
	slog.Info("Entry posted", "header_id", headerID, "date", entry.Date, "lines", len(entry.Lines))
}

// loadEntryFile parses an entry YAML file and resolves account names to ids.
func loadEntryFile(l *ledger.Ledger, path string) (*ledger.JournalEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry file: %w", err)
	}

	var file entryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	entry := ledger.JournalEntry{
		Date:      file.Date,
		Memo:      file.Memo,
		Type:      file.Type,
		DocNumber: file.DocNumber,
	}

	for i, line := range file.Lines {
		accountID := line.AccountID
		if accountID == 0 {
			if line.Account == "" {
				return nil, fmt.Errorf("line %d: account or account_id is required", i+1)
			}
			acc, err := l.GetAccountByName(line.Account)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			accountID = acc.ID
		}

		amount, err := decimal.NewFromString(line.Amount)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q: %w", i+1, line.Amount, err)
		}

		entry.Lines = append(entry.Lines, ledger.EntryLine{
			AccountID:   accountID,
			Amount:      amount,
			Description: line.Description,
		})
	}

	return &entry, nil
}
