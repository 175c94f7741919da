package cmd

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var verifyFlag bool

// trialBalanceCmd represents the trial-balance command.
var trialBalanceCmd = &cobra.Command{
	Use:   "trial-balance",
	Short: "Display the trial balance",
	Long: `Display each account's total debits and credits over all posted,
non-voided transactions, with grand totals.

With --verify, exits non-zero if total debits and credits disagree.

Example:
  oaif-ledger trial-balance
  oaif-ledger trial-balance --verify`,
	Run: runTrialBalance,
}

func init() {
	trialBalanceCmd.Flags().BoolVar(&verifyFlag, "verify", false, "fail if the books are out of balance")
}

func runTrialBalance(cmd *cobra.Command, args []string) {
	conn, l, err := openLedger(true)
	exitOnError(err, "failed to open store")
	defer conn.Close()

	rows, err := l.ComputeTrialBalance()
	exitOnError(err, "failed to compute trial balance")

	currency := baseCurrency(conn)

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero

	fmt.Println("\n=== Trial Balance ===")
	for _, row := range rows {
		totalDebits = totalDebits.Add(row.DebitTotal)
		totalCredits = totalCredits.Add(row.CreditTotal)
		fmt.Printf("  %-40s Dr: %14s  Cr: %14s\n",
			row.AccountName,
			formatAmount(row.DebitTotal, currency),
			formatAmount(row.CreditTotal, currency),
		)
	}
	fmt.Printf("  %s\n", divider(76))
	fmt.Printf("  %-40s Dr: %14s  Cr: %14s\n",
		"TOTALS",
		formatAmount(totalDebits, currency),
		formatAmount(totalCredits, currency),
	)

	if err := l.VerifyBalance(rows); err != nil {
		fmt.Printf("  OUT OF BALANCE: %v\n\n", err)
		if verifyFlag {
			os.Exit(1)
		}
		return
	}

	fmt.Println("  Books are in balance")
	fmt.Println()
}

func divider(width int) string {
	line := make([]byte, width)
	for i := range line {
		line[i] = '-'
	}
	return string(line)
}
