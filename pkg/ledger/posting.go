package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidateEntry runs the posting engine's validation without touching
// the store. It is side-effect free: calling it any number of times on
// the same input yields the same result.
//
// Checks, in order: the entry has lines, the line amounts sum to zero
// within tolerance, the transaction type exists in the catalog, and
// every referenced account exists.
func (l *Ledger) ValidateEntry(entry JournalEntry) error {
	_, _, err := l.validateEntry(entry)
	return err
}

func (l *Ledger) validateEntry(entry JournalEntry) (typeID int64, debitTotal decimal.Decimal, err error) {
	if len(entry.Lines) == 0 {
		return 0, decimal.Zero, &PostingError{Code: ErrCodeEmptyEntry}
	}

	if _, err := time.Parse("2006-01-02", entry.Date); err != nil {
		return 0, decimal.Zero, fmt.Errorf("invalid entry date %q: %w", entry.Date, err)
	}

	// Exact fixed-point accumulation: no floating-point ever touches
	// the amounts.
	total := decimal.Zero
	debitTotal = decimal.Zero
	for _, line := range entry.Lines {
		total = total.Add(line.Amount)
		if line.Amount.IsPositive() {
			debitTotal = debitTotal.Add(line.Amount)
		}
	}

	if total.Abs().GreaterThan(l.tolerance) {
		return 0, decimal.Zero, &PostingError{Code: ErrCodeUnbalancedEntry, Total: total}
	}

	typeName := entry.Type
	if typeName == "" {
		typeName = "JOURNAL"
	}
	typeID, err = l.catalog.LookupTransactionType(typeName)
	if err != nil {
		return 0, decimal.Zero, err
	}

	// Every account must exist before any write happens, so a failed
	// entry leaves the store byte-for-byte unchanged.
	for _, line := range entry.Lines {
		var exists int
		err := l.conn.QueryRow(
			`SELECT COUNT(*) FROM account WHERE id = ?`, line.AccountID,
		).Scan(&exists)
		if err != nil {
			return 0, decimal.Zero, fmt.Errorf("failed to check account %d: %w", line.AccountID, err)
		}
		if exists == 0 {
			return 0, decimal.Zero, &PostingError{Code: ErrCodeUnknownAccount, AccountID: line.AccountID}
		}
	}

	return typeID, debitTotal, nil
}

// PostJournalEntry validates a journal entry and atomically commits it:
// header, numbered lines, and account balance deltas either all become
// durable or none do. Line numbers are assigned 1..n in input order.
//
// Returns the new transaction header id on success. Validation failures
// are recoverable PostingError or LookupError values; storage failures
// during commit are reported after rollback, never retried.
func (l *Ledger) PostJournalEntry(entry JournalEntry) (int64, error) {
	if l.conn.ReadOnly() {
		return 0, fmt.Errorf("store is open read-only")
	}

	typeID, debitTotal, err := l.validateEntry(entry)
	if err != nil {
		return 0, err
	}

	externalRef := entry.ExternalRef
	if externalRef == "" {
		externalRef = uuid.NewString()
	}

	var headerID int64
	err = l.conn.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			INSERT INTO txn_header
				(txn_type_id, txn_date, memo, doc_number, external_ref, total_amount, is_posted)
			VALUES (?, ?, ?, ?, ?, ?, 1)
		`,
			typeID,
			entry.Date,
			nullable(entry.Memo),
			nullable(entry.DocNumber),
			externalRef,
			debitTotal.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert header: %w", err)
		}

		headerID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get header id: %w", err)
		}

		return l.applyLines(tx, headerID, entry.Lines)
	})
	if err != nil {
		return 0, err
	}

	return headerID, nil
}

// applyLines persists the entry's lines and applies each line's signed
// amount to its account balance. Internal only: it runs inside the same
// storage transaction as the header insert, after validation passed.
func (l *Ledger) applyLines(tx *sql.Tx, headerID int64, lines []EntryLine) error {
	for i, line := range lines {
		if _, err := tx.Exec(`
			INSERT INTO txn_line (txn_header_id, line_number, account_id, amount, description)
			VALUES (?, ?, ?, ?, ?)
		`,
			headerID,
			i+1,
			line.AccountID,
			line.Amount.String(),
			nullable(line.Description),
		); err != nil {
			return fmt.Errorf("failed to insert line %d: %w", i+1, err)
		}

		if err := adjustBalance(tx, line.AccountID, line.Amount); err != nil {
			return err
		}
	}

	return nil
}

// adjustBalance applies a signed delta to an account balance within a
// transaction. The balance is read, added exactly, and written back as
// a decimal string.
func adjustBalance(tx *sql.Tx, accountID int64, delta decimal.Decimal) error {
	var balanceStr string
	if err := tx.QueryRow(
		`SELECT balance FROM account WHERE id = ?`, accountID,
	).Scan(&balanceStr); err != nil {
		return fmt.Errorf("failed to read balance for account %d: %w", accountID, err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return fmt.Errorf("corrupt balance for account %d: %w", accountID, err)
	}

	if _, err := tx.Exec(
		`UPDATE account SET balance = ? WHERE id = ?`,
		balance.Add(delta).String(), accountID,
	); err != nil {
		return fmt.Errorf("failed to update balance for account %d: %w", accountID, err)
	}

	return nil
}

// VoidEntry marks a posted entry voided and reverses its balance
// deltas in one atomic transaction. The header and lines stay in the
// store for the audit trail; voided entries are excluded from listings
// and the trial balance.
func (l *Ledger) VoidEntry(headerID int64) error {
	if l.conn.ReadOnly() {
		return fmt.Errorf("store is open read-only")
	}

	return l.conn.Transaction(func(tx *sql.Tx) error {
		var isVoided bool
		err := tx.QueryRow(
			`SELECT is_voided FROM txn_header WHERE id = ?`, headerID,
		).Scan(&isVoided)
		if err == sql.ErrNoRows {
			return &PostingError{Code: ErrCodeEntryNotFound, EntryID: headerID}
		}
		if err != nil {
			return fmt.Errorf("failed to read header %d: %w", headerID, err)
		}
		if isVoided {
			return &PostingError{Code: ErrCodeEntryVoided, EntryID: headerID}
		}

		rows, err := tx.Query(
			`SELECT account_id, amount FROM txn_line WHERE txn_header_id = ? ORDER BY line_number`,
			headerID,
		)
		if err != nil {
			return fmt.Errorf("failed to read lines for header %d: %w", headerID, err)
		}

		type reversal struct {
			accountID int64
			amount    decimal.Decimal
		}
		var reversals []reversal
		for rows.Next() {
			var accountID int64
			var amountStr string
			if err := rows.Scan(&accountID, &amountStr); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan line: %w", err)
			}
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				rows.Close()
				return fmt.Errorf("corrupt amount on header %d: %w", headerID, err)
			}
			reversals = append(reversals, reversal{accountID, amount})
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read lines for header %d: %w", headerID, err)
		}

		for _, r := range reversals {
			if err := adjustBalance(tx, r.accountID, r.amount.Neg()); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(
			`UPDATE txn_header SET is_voided = 1 WHERE id = ?`, headerID,
		); err != nil {
			return fmt.Errorf("failed to void header %d: %w", headerID, err)
		}

		return nil
	})
}

const headerColumns = `
	h.id, h.txn_type_id, tt.name, h.txn_date, h.memo, h.doc_number,
	h.external_ref, h.total_amount, h.is_posted, h.is_voided, h.created_at
`

// GetEntry retrieves a transaction header with its ordered lines.
func (l *Ledger) GetEntry(headerID int64) (*Entry, error) {
	row := l.conn.QueryRow(`
		SELECT `+headerColumns+`
		FROM txn_header h
		JOIN transaction_type tt ON tt.id = h.txn_type_id
		WHERE h.id = ?
	`, headerID)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, &PostingError{Code: ErrCodeEntryNotFound, EntryID: headerID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	rows, err := l.conn.Query(`
		SELECT l.id, l.txn_header_id, l.line_number, l.account_id, a.name, l.amount, l.description
		FROM txn_line l
		JOIN account a ON a.id = l.account_id
		WHERE l.txn_header_id = ?
		ORDER BY l.line_number
	`, headerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line Line
		var amountStr string
		if err := rows.Scan(
			&line.ID,
			&line.HeaderID,
			&line.LineNumber,
			&line.AccountID,
			&line.AccountName,
			&amountStr,
			&line.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		line.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount on line %d: %w", line.ID, err)
		}
		entry.Lines = append(entry.Lines, line)
	}

	return entry, rows.Err()
}

// ListEntries returns recent posted, non-voided headers ordered by date
// then id, newest first. Lines are not populated.
func (l *Ledger) ListEntries(limit int) ([]Entry, error) {
	rows, err := l.conn.Query(`
		SELECT `+headerColumns+`
		FROM txn_header h
		JOIN transaction_type tt ON tt.id = h.txn_type_id
		WHERE h.is_voided = 0
		ORDER BY h.txn_date DESC, h.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

func scanEntry(s scanner) (*Entry, error) {
	var entry Entry
	var total string

	if err := s.Scan(
		&entry.ID,
		&entry.TypeID,
		&entry.TypeName,
		&entry.Date,
		&entry.Memo,
		&entry.DocNumber,
		&entry.ExternalRef,
		&total,
		&entry.IsPosted,
		&entry.IsVoided,
		&entry.CreatedAt,
	); err != nil {
		return nil, err
	}

	dec, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("corrupt total on header %d: %w", entry.ID, err)
	}
	entry.TotalAmount = dec

	return &entry, nil
}

// GetStats retrieves store statistics.
func (l *Ledger) GetStats() (*Stats, error) {
	var stats Stats

	err := l.conn.QueryRow(`SELECT COUNT(*) FROM account`).Scan(&stats.Accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to get account count: %w", err)
	}

	err = l.conn.QueryRow(
		`SELECT COUNT(*) FROM txn_header WHERE is_posted = 1 AND is_voided = 0`,
	).Scan(&stats.PostedEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry count: %w", err)
	}

	err = l.conn.QueryRow(
		`SELECT COUNT(*) FROM txn_header WHERE is_voided = 1`,
	).Scan(&stats.VoidedEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to get voided count: %w", err)
	}

	err = l.conn.QueryRow(`SELECT MAX(created_at) FROM txn_header`).Scan(&stats.LastPosted)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last posted time: %w", err)
	}

	return &stats, nil
}
