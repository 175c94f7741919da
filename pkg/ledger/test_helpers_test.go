package ledger

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/db"
)

// createTestLedger creates a fresh store in a temp dir and opens a
// ledger session over it.
func createTestLedger(t *testing.T) *Ledger {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.oaif")
	conn, err := db.Create(path, db.CreateOptions{
		CompanyName:  "Test Company Inc.",
		BaseCurrency: "USD",
		SourceSystem: "unit-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	l, err := New(conn)
	require.NoError(t, err)
	return l
}

// createTestAccounts creates a BANK and an INCOME account and returns
// their ids.
func createTestAccounts(t *testing.T, l *Ledger) (bankID, incomeID int64) {
	t.Helper()

	bankType, err := l.Catalog().LookupAccountType("BANK")
	require.NoError(t, err)
	incomeType, err := l.Catalog().LookupAccountType("INCOME")
	require.NoError(t, err)

	bankID, err = l.CreateAccount(NewAccount{
		Name:   "Checking Account",
		TypeID: bankType,
		Code:   "1000",
	})
	require.NoError(t, err)

	incomeID, err = l.CreateAccount(NewAccount{
		Name:   "Service Revenue",
		TypeID: incomeType,
		Code:   "4000",
	})
	require.NoError(t, err)

	return bankID, incomeID
}

// dec parses a decimal literal, failing the build on typos at test
// authoring time rather than at run time.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// requireBalance asserts an account's stored balance.
func requireBalance(t *testing.T, l *Ledger, accountID int64, want string) {
	t.Helper()

	acc, err := l.GetAccount(accountID)
	require.NoError(t, err)
	require.True(t, acc.Balance.Equal(dec(want)),
		"account %d balance = %s, want %s", accountID, acc.Balance, want)
}
