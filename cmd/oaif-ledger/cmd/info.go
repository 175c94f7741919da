package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/db"
)

// infoCmd represents the info command.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display store metadata and statistics",
	Long: `Display the store's metadata (company, currency, format version,
creation details) and content statistics.

Example:
  oaif-ledger info`,
	Run: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) {
	conn, l, err := openLedger(true)
	exitOnError(err, "failed to open store")
	defer conn.Close()

	meta := db.NewMetadata(conn)
	metadata, err := meta.All()
	exitOnError(err, "failed to read metadata")

	stats, err := l.GetStats()
	exitOnError(err, "failed to read statistics")

	fmt.Printf("\nOAIF Store: %s\n", conn.GetPath())
	fmt.Printf("Company:      %s\n", metadata[db.MetaCompanyName])
	fmt.Printf("Currency:     %s\n", metadata[db.MetaBaseCurrency])
	fmt.Printf("Source:       %s\n", metadata[db.MetaSourceSystem])
	fmt.Printf("Created:      %s by %s\n", metadata[db.MetaCreatedAt], metadata[db.MetaCreatedBy])
	fmt.Printf("OAIF version: %s (min reader %s)\n",
		metadata[db.MetaFormatVersion], metadata[db.MetaMinReader])

	fmt.Println("\n=== Statistics ===")
	fmt.Printf("Accounts:       %d\n", stats.Accounts)
	fmt.Printf("Posted entries: %d\n", stats.PostedEntries)
	fmt.Printf("Voided entries: %d\n", stats.VoidedEntries)
	if stats.LastPosted.Valid {
		fmt.Printf("Last posted:    %s\n", stats.LastPosted.String)
	} else {
		fmt.Printf("Last posted:    (never)\n")
	}
	fmt.Println()

	slog.Info("Info displayed successfully")
}
