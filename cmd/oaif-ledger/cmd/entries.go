package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var entryLimit int

// entriesCmd represents the entries command.
var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List recent transactions",
	Long: `List recent posted, non-voided transactions, newest first.

Example:
  oaif-ledger entries
  oaif-ledger entries --limit 25`,
	Run: runEntries,
}

func init() {
	entriesCmd.Flags().IntVar(&entryLimit, "limit", 10, "maximum entries to show")
}

func runEntries(cmd *cobra.Command, args []string) {
	conn, l, err := openLedger(true)
	exitOnError(err, "failed to open store")
	defer conn.Close()

	entries, err := l.ListEntries(entryLimit)
	exitOnError(err, "failed to list entries")

	currency := baseCurrency(conn)

	fmt.Println("\n=== Recent Transactions ===")
	for _, entry := range entries {
		fmt.Printf("  %4d  %s %-14s %-10s %12s  %s\n",
			entry.ID,
			entry.Date,
			entry.TypeName,
			entry.DocNumber.String,
			formatAmount(entry.TotalAmount, currency),
			entry.Memo.String,
		)
	}
	fmt.Println()
}
