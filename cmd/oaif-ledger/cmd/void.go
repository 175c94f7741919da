package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
)

// voidCmd represents the void command.
var voidCmd = &cobra.Command{
	Use:   "void <entry-id>",
	Short: "Void a posted entry",
	Long: `Void a posted journal entry. The entry stays in the store for the
audit trail but its balance effects are reversed and it is excluded
from listings and the trial balance.

Example:
  oaif-ledger void 42`,
	Args: cobra.ExactArgs(1),
	Run:  runVoid,
}

func runVoid(cmd *cobra.Command, args []string) {
	headerID, err := strconv.ParseInt(args[0], 10, 64)
	exitOnError(err, "invalid entry id")

	conn, l, err := openLedger(false)
	exitOnError(err, "failed to open store")
	defer conn.Close()

	err = l.VoidEntry(headerID)
	exitOnError(err, "failed to void entry")

	fmt.Printf("Voided entry %d\n", headerID)
	slog.Info("Entry voided", "header_id", headerID)
}
