package ledger

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents one row of the chart of accounts.
// Balance is the signed sum of all posted line amounts against the
// account (debit-positive). It is mutated only by the posting engine.
type Account struct {
	ID          int64
	Name        string
	TypeID      int64
	TypeName    string
	Code        sql.NullString
	Description sql.NullString
	Balance     decimal.Decimal
	IsActive    bool
}

// NewAccount holds the fields for creating an account.
// Code and Description are the bounded optional-field set.
type NewAccount struct {
	Name        string
	TypeID      int64
	Code        string
	Description string
}

// EntryLine is one line of a journal entry to be posted.
// Amount follows the debit-positive convention.
type EntryLine struct {
	AccountID   int64
	Amount      decimal.Decimal
	Description string
}

// JournalEntry is the input to the posting engine.
// Type is a transaction type name from the reference catalog and
// defaults to JOURNAL. ExternalRef is generated when empty.
type JournalEntry struct {
	Date        string // YYYY-MM-DD
	Memo        string
	Type        string
	DocNumber   string
	ExternalRef string
	Lines       []EntryLine
}

// Entry is a stored transaction header, optionally with its lines.
type Entry struct {
	ID          int64
	TypeID      int64
	TypeName    string
	Date        string
	Memo        sql.NullString
	DocNumber   sql.NullString
	ExternalRef sql.NullString
	TotalAmount decimal.Decimal
	IsPosted    bool
	IsVoided    bool
	CreatedAt   time.Time
	Lines       []Line
}

// Line is a stored transaction line.
type Line struct {
	ID          int64
	HeaderID    int64
	LineNumber  int
	AccountID   int64
	AccountName string
	Amount      decimal.Decimal
	Description sql.NullString
}

// TrialBalanceRow summarizes one account's posted activity.
// DebitTotal and CreditTotal are never netted against each other;
// the account's net balance is DebitTotal minus CreditTotal.
type TrialBalanceRow struct {
	AccountName string
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// Stats summarizes store contents.
type Stats struct {
	Accounts      int
	PostedEntries int
	VoidedEntries int
	LastPosted    sql.NullString
}
