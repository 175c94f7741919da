package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showInactive bool

// accountsCmd represents the accounts command.
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Display the chart of accounts",
	Long: `Display the chart of accounts with code, name, type, and current
balance, ordered by account code.

Example:
  oaif-ledger accounts
  oaif-ledger accounts --all`,
	Run: runAccounts,
}

func init() {
	accountsCmd.Flags().BoolVar(&showInactive, "all", false, "include deactivated accounts")
}

func runAccounts(cmd *cobra.Command, args []string) {
	conn, l, err := openLedger(true)
	exitOnError(err, "failed to open store")
	defer conn.Close()

	accounts, err := l.ListAccounts(!showInactive)
	exitOnError(err, "failed to list accounts")

	currency := baseCurrency(conn)

	fmt.Println("\n=== Chart of Accounts ===")
	for _, acc := range accounts {
		balance := ""
		if !acc.Balance.IsZero() {
			balance = formatAmount(acc.Balance, currency)
		}
		status := ""
		if !acc.IsActive {
			status = " (inactive)"
		}
		fmt.Printf("  %-6s %-40s %-24s %12s%s\n",
			acc.Code.String, acc.Name, acc.TypeName, balance, status)
	}
	fmt.Println()
}
