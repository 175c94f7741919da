package ledger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/db"
)

func TestReadOnlySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.oaif")

	conn, err := db.Create(path, db.CreateOptions{CompanyName: "Test Co"})
	require.NoError(t, err)

	l, err := New(conn)
	require.NoError(t, err)
	bankID, incomeID := createTestAccounts(t, l)

	_, err = l.PostJournalEntry(JournalEntry{
		Date: "2026-01-12",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("100.00")},
			{AccountID: incomeID, Amount: dec("-100.00")},
		},
	})
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	ro, err := db.OpenReadOnly(path)
	require.NoError(t, err)
	defer ro.Close()

	roLedger, err := New(ro)
	require.NoError(t, err)

	// Reads work.
	rows, err := roLedger.ComputeTrialBalance()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.NoError(t, roLedger.VerifyBalance(rows))

	// Mutations are refused before touching storage.
	_, err = roLedger.PostJournalEntry(JournalEntry{
		Date: "2026-01-13",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("1.00")},
			{AccountID: incomeID, Amount: dec("-1.00")},
		},
	})
	assert.Error(t, err)

	assert.Error(t, roLedger.VoidEntry(1))
}
