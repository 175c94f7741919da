package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJournalEntry_BalancedSucceeds(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	headerID, err := l.PostJournalEntry(JournalEntry{
		Date: "2026-01-12",
		Memo: "Sample transaction",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("1000.00"), Description: "Payment received"},
			{AccountID: incomeID, Amount: dec("-1000.00"), Description: "Service revenue"},
		},
	})
	require.NoError(t, err)
	require.Greater(t, headerID, int64(0))

	// Each referenced account's balance changed by exactly its line's amount.
	requireBalance(t, l, bankID, "1000.00")
	requireBalance(t, l, incomeID, "-1000.00")

	entry, err := l.GetEntry(headerID)
	require.NoError(t, err)
	assert.True(t, entry.IsPosted)
	assert.False(t, entry.IsVoided)
	assert.Equal(t, "JOURNAL", entry.TypeName)
	assert.Equal(t, "2026-01-12", entry.Date)
	assert.True(t, entry.TotalAmount.Equal(dec("1000.00")))
	assert.True(t, entry.ExternalRef.Valid, "external ref should be generated when absent")
	require.Len(t, entry.Lines, 2)
	assert.Equal(t, 1, entry.Lines[0].LineNumber)
	assert.Equal(t, 2, entry.Lines[1].LineNumber)
}

func TestPostJournalEntry_MultiLine(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	expenseType, err := l.Catalog().LookupAccountType("EXPENSE")
	require.NoError(t, err)
	feeID, err := l.CreateAccount(NewAccount{Name: "Bank Fees", TypeID: expenseType, Code: "6000"})
	require.NoError(t, err)

	_, err = l.PostJournalEntry(JournalEntry{
		Date: "2026-02-01",
		Memo: "Payment net of fees",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("970.00")},
			{AccountID: feeID, Amount: dec("30.00")},
			{AccountID: incomeID, Amount: dec("-1000.00")},
		},
	})
	require.NoError(t, err)

	requireBalance(t, l, bankID, "970.00")
	requireBalance(t, l, feeID, "30.00")
	requireBalance(t, l, incomeID, "-1000.00")
}

func TestPostJournalEntry_LineOrderPreserved(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	headerID, err := l.PostJournalEntry(JournalEntry{
		Date: "2026-03-01",
		Lines: []EntryLine{
			{AccountID: incomeID, Amount: dec("-300.00"), Description: "third from last"},
			{AccountID: bankID, Amount: dec("100.00"), Description: "first"},
			{AccountID: bankID, Amount: dec("200.00"), Description: "second"},
		},
	})
	require.NoError(t, err)

	entry, err := l.GetEntry(headerID)
	require.NoError(t, err)
	require.Len(t, entry.Lines, 3)
	for i, line := range entry.Lines {
		assert.Equal(t, i+1, line.LineNumber)
	}
	assert.Equal(t, "third from last", entry.Lines[0].Description.String)
	assert.Equal(t, "first", entry.Lines[1].Description.String)
	assert.Equal(t, "second", entry.Lines[2].Description.String)
}

func TestPostJournalEntry_UnbalancedRejected(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	_, err := l.PostJournalEntry(JournalEntry{
		Date: "2026-01-12",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("500.00")},
			{AccountID: incomeID, Amount: dec("-499.00")},
		},
	})
	require.Error(t, err)
	assert.True(t, IsUnbalanced(err), "expected UNBALANCED_ENTRY, got %v", err)

	// The computed imbalance is carried for the caller.
	var pe *PostingError
	require.True(t, errors.As(err, &pe))
	assert.True(t, pe.Total.Equal(dec("1.00")), "imbalance = %s, want 1.00", pe.Total)

	// Store unchanged: no header, no line, no balance mutation.
	requireStoreEmpty(t, l)
	requireBalance(t, l, bankID, "0")
	requireBalance(t, l, incomeID, "0")
}

func TestPostJournalEntry_UnknownAccountRejected(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	// The entry balances and one line is valid, but one account does
	// not exist - the whole entry is rejected with no state change.
	_, err := l.PostJournalEntry(JournalEntry{
		Date: "2026-01-12",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("250.00")},
			{AccountID: 9999, Amount: dec("-250.00")},
		},
	})
	require.Error(t, err)
	assert.True(t, IsUnknownAccount(err), "expected UNKNOWN_ACCOUNT, got %v", err)

	var pe *PostingError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, int64(9999), pe.AccountID)

	requireStoreEmpty(t, l)
	requireBalance(t, l, bankID, "0")
	requireBalance(t, l, incomeID, "0")
}

func TestPostJournalEntry_EmptyRejected(t *testing.T) {
	l := createTestLedger(t)
	createTestAccounts(t, l)

	_, err := l.PostJournalEntry(JournalEntry{Date: "2026-01-12"})
	require.Error(t, err)
	assert.True(t, IsEmptyEntry(err), "expected EMPTY_ENTRY, got %v", err)
	requireStoreEmpty(t, l)
}

func TestPostJournalEntry_UnknownTypeRejected(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	_, err := l.PostJournalEntry(JournalEntry{
		Date: "2026-01-12",
		Type: "BOGUS_TYPE",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("10.00")},
			{AccountID: incomeID, Amount: dec("-10.00")},
		},
	})
	require.Error(t, err)
	assert.True(t, IsUnknownReference(err), "expected unknown reference, got %v", err)
	requireStoreEmpty(t, l)
}

func TestPostJournalEntry_InvalidDateRejected(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	_, err := l.PostJournalEntry(JournalEntry{
		Date: "12/01/2026",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("10.00")},
			{AccountID: incomeID, Amount: dec("-10.00")},
		},
	})
	require.Error(t, err)
	requireStoreEmpty(t, l)
}

func TestPostJournalEntry_ToleranceAbsorbsRounding(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	// Residue within half a minor unit is accepted as rounding, not
	// real imbalance.
	_, err := l.PostJournalEntry(JournalEntry{
		Date: "2026-01-12",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("10.004")},
			{AccountID: incomeID, Amount: dec("-10.00")},
		},
	})
	assert.NoError(t, err)

	// One tick past tolerance is rejected.
	_, err = l.PostJournalEntry(JournalEntry{
		Date: "2026-01-12",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("10.006")},
			{AccountID: incomeID, Amount: dec("-10.00")},
		},
	})
	assert.True(t, IsUnbalanced(err), "expected UNBALANCED_ENTRY, got %v", err)
}

func TestPostJournalEntry_CustomTolerance(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	// Zero tolerance for a currency with no minor unit rounding.
	l.SetTolerance(dec("0"))

	_, err := l.PostJournalEntry(JournalEntry{
		Date: "2026-01-12",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("10.004")},
			{AccountID: incomeID, Amount: dec("-10.00")},
		},
	})
	assert.True(t, IsUnbalanced(err), "expected UNBALANCED_ENTRY, got %v", err)

	_, err = l.PostJournalEntry(JournalEntry{
		Date: "2026-01-12",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("10.00")},
			{AccountID: incomeID, Amount: dec("-10.00")},
		},
	})
	assert.NoError(t, err)
}

func TestValidateEntry_Idempotent(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	valid := JournalEntry{
		Date: "2026-01-12",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("42.00")},
			{AccountID: incomeID, Amount: dec("-42.00")},
		},
	}

	// Validation alone mutates nothing: both calls succeed and the
	// store stays empty.
	require.NoError(t, l.ValidateEntry(valid))
	require.NoError(t, l.ValidateEntry(valid))
	requireStoreEmpty(t, l)
	requireBalance(t, l, bankID, "0")

	invalid := JournalEntry{
		Date: "2026-01-12",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("42.00")},
		},
	}

	err1 := l.ValidateEntry(invalid)
	err2 := l.ValidateEntry(invalid)
	require.Error(t, err1)
	require.Error(t, err2)
	assert.Equal(t, err1.Error(), err2.Error())
}

func TestVoidEntry_ReversesBalances(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	headerID, err := l.PostJournalEntry(JournalEntry{
		Date: "2026-01-12",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("750.00")},
			{AccountID: incomeID, Amount: dec("-750.00")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, l.VoidEntry(headerID))

	requireBalance(t, l, bankID, "0")
	requireBalance(t, l, incomeID, "0")

	// The entry survives for the audit trail but is flagged voided and
	// excluded from listings.
	entry, err := l.GetEntry(headerID)
	require.NoError(t, err)
	assert.True(t, entry.IsVoided)

	entries, err := l.ListEntries(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestVoidEntry_AlreadyVoided(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	headerID, err := l.PostJournalEntry(JournalEntry{
		Date: "2026-01-12",
		Lines: []EntryLine{
			{AccountID: bankID, Amount: dec("10.00")},
			{AccountID: incomeID, Amount: dec("-10.00")},
		},
	})
	require.NoError(t, err)
	require.NoError(t, l.VoidEntry(headerID))

	err = l.VoidEntry(headerID)
	require.Error(t, err)

	var pe *PostingError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrCodeEntryVoided, pe.Code)

	// Double void must not double-reverse.
	requireBalance(t, l, bankID, "0")
}

func TestVoidEntry_NotFound(t *testing.T) {
	l := createTestLedger(t)

	err := l.VoidEntry(12345)
	require.Error(t, err)

	var pe *PostingError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrCodeEntryNotFound, pe.Code)
}

func TestListEntries_NewestFirst(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	for _, date := range []string{"2026-01-05", "2026-01-20", "2026-01-10"} {
		_, err := l.PostJournalEntry(JournalEntry{
			Date: date,
			Lines: []EntryLine{
				{AccountID: bankID, Amount: dec("10.00")},
				{AccountID: incomeID, Amount: dec("-10.00")},
			},
		})
		require.NoError(t, err)
	}

	entries, err := l.ListEntries(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2026-01-20", entries[0].Date)
	assert.Equal(t, "2026-01-10", entries[1].Date)
	assert.Equal(t, "2026-01-05", entries[2].Date)
}

func TestGetStats(t *testing.T) {
	l := createTestLedger(t)
	bankID, incomeID := createTestAccounts(t, l)

	post := func() int64 {
		id, err := l.PostJournalEntry(JournalEntry{
			Date: "2026-01-12",
			Lines: []EntryLine{
				{AccountID: bankID, Amount: dec("10.00")},
				{AccountID: incomeID, Amount: dec("-10.00")},
			},
		})
		require.NoError(t, err)
		return id
	}

	first := post()
	post()
	require.NoError(t, l.VoidEntry(first))

	stats, err := l.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Accounts)
	assert.Equal(t, 1, stats.PostedEntries)
	assert.Equal(t, 1, stats.VoidedEntries)
	assert.True(t, stats.LastPosted.Valid)
}

// requireStoreEmpty asserts no headers or lines exist.
func requireStoreEmpty(t *testing.T, l *Ledger) {
	t.Helper()

	stats, err := l.GetStats()
	require.NoError(t, err)
	require.Equal(t, 0, stats.PostedEntries, "no posted entry may exist")
	require.Equal(t, 0, stats.VoidedEntries)

	var lines int
	require.NoError(t, l.conn.QueryRow(`SELECT COUNT(*) FROM txn_line`).Scan(&lines))
	require.Equal(t, 0, lines, "no line may exist")
}
