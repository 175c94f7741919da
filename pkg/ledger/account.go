package ledger

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// CreateAccount inserts a new account with zero balance.
// The account type must exist in the reference catalog.
func (l *Ledger) CreateAccount(acc NewAccount) (int64, error) {
	if acc.Name == "" {
		return 0, fmt.Errorf("account name is required")
	}

	// Unknown account type is rejected before any write.
	if _, err := l.catalog.ResolveAccountType(acc.TypeID); err != nil {
		return 0, err
	}

	result, err := l.conn.Exec(`
		INSERT INTO account (name, account_type_id, code, description, balance, is_active)
		VALUES (?, ?, ?, ?, '0', 1)
	`,
		acc.Name,
		acc.TypeID,
		nullable(acc.Code),
		nullable(acc.Description),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get account id: %w", err)
	}

	return id, nil
}

const accountColumns = `
	a.id, a.name, a.account_type_id, at.name, a.code, a.description, a.balance, a.is_active
`

// GetAccount retrieves an account by id.
func (l *Ledger) GetAccount(id int64) (*Account, error) {
	row := l.conn.QueryRow(`
		SELECT `+accountColumns+`
		FROM account a
		JOIN account_type at ON at.id = a.account_type_id
		WHERE a.id = ?
	`, id)

	acc, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, &LookupError{Table: "account", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return acc, nil
}

// GetAccountByName retrieves an account by its unique name.
func (l *Ledger) GetAccountByName(name string) (*Account, error) {
	row := l.conn.QueryRow(`
		SELECT `+accountColumns+`
		FROM account a
		JOIN account_type at ON at.id = a.account_type_id
		WHERE a.name = ?
	`, name)

	acc, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, &LookupError{Table: "account", Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return acc, nil
}

// ListAccounts returns the chart of accounts ordered by code then name.
func (l *Ledger) ListAccounts(activeOnly bool) ([]Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM account a
		JOIN account_type at ON at.id = a.account_type_id
	`
	if activeOnly {
		query += ` WHERE a.is_active = 1`
	}
	query += ` ORDER BY a.code, a.name`

	rows, err := l.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *acc)
	}

	return accounts, rows.Err()
}

// DeactivateAccount soft-deletes an account. Accounts referenced by
// posted transactions are never physically removed.
func (l *Ledger) DeactivateAccount(id int64) error {
	result, err := l.conn.Exec(`UPDATE account SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return &LookupError{Table: "account", ID: id}
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan code.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(s scanner) (*Account, error) {
	var acc Account
	var balance string

	if err := s.Scan(
		&acc.ID,
		&acc.Name,
		&acc.TypeID,
		&acc.TypeName,
		&acc.Code,
		&acc.Description,
		&balance,
		&acc.IsActive,
	); err != nil {
		return nil, err
	}

	dec, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("corrupt balance for account %d: %w", acc.ID, err)
	}
	acc.Balance = dec

	return &acc, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
