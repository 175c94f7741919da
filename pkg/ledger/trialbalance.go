package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ComputeTrialBalance summarizes every account with nonzero net balance
// over all posted, non-voided transactions, ordered by account name.
//
// For each account, DebitTotal is the exact sum of its positive line
// amounts and CreditTotal the sum of the absolute values of its
// negative line amounts. The two are kept separate: both totals are
// meaningful for display even though the net balance is their
// difference.
func (l *Ledger) ComputeTrialBalance() ([]TrialBalanceRow, error) {
	rows, err := l.conn.Query(`
		SELECT a.name, l.amount
		FROM txn_line l
		JOIN account a ON a.id = l.account_id
		JOIN txn_header h ON h.id = l.txn_header_id
		WHERE h.is_posted = 1 AND h.is_voided = 0
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read posted lines: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]*TrialBalanceRow)
	for rows.Next() {
		var name, amountStr string
		if err := rows.Scan(&name, &amountStr); err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount for account %q: %w", name, err)
		}

		row, ok := totals[name]
		if !ok {
			row = &TrialBalanceRow{
				AccountName: name,
				DebitTotal:  decimal.Zero,
				CreditTotal: decimal.Zero,
			}
			totals[name] = row
		}

		if amount.IsNegative() {
			row.CreditTotal = row.CreditTotal.Add(amount.Abs())
		} else {
			row.DebitTotal = row.DebitTotal.Add(amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posted lines: %w", err)
	}

	result := make([]TrialBalanceRow, 0, len(totals))
	for _, row := range totals {
		// Accounts whose debits and credits cancel exactly carry no
		// balance and are omitted.
		if row.DebitTotal.Equal(row.CreditTotal) {
			continue
		}
		result = append(result, *row)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].AccountName < result[j].AccountName
	})

	return result, nil
}

// VerifyBalance checks that the trial balance's debit and credit totals
// agree within tolerance. The posting engine's zero-sum invariant makes
// a failure here mathematically impossible; this is a consistency
// audit, not a primary control.
func (l *Ledger) VerifyBalance(rows []TrialBalanceRow) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, row := range rows {
		debits = debits.Add(row.DebitTotal)
		credits = credits.Add(row.CreditTotal)
	}

	diff := debits.Sub(credits)
	if diff.Abs().GreaterThan(l.tolerance) {
		return &OutOfBalanceError{Difference: diff}
	}

	return nil
}
