package ledger

import (
	"fmt"

	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/db"
)

// Catalog holds the store's reference taxonomies, loaded once per
// session and treated as read-mostly. Lookups are case-sensitive and
// exact-match: account and transaction types form a closed vocabulary
// known to callers, so no fuzzy resolution is offered.
type Catalog struct {
	conn *db.Connection

	accountTypeByName map[string]int64
	accountTypeByID   map[int64]string
	txnTypeByName     map[string]int64
	txnTypeByID       map[int64]string
}

// LoadCatalog reads both reference tables from the store.
func LoadCatalog(conn *db.Connection) (*Catalog, error) {
	c := &Catalog{
		conn:              conn,
		accountTypeByName: make(map[string]int64),
		accountTypeByID:   make(map[int64]string),
		txnTypeByName:     make(map[string]int64),
		txnTypeByID:       make(map[int64]string),
	}

	if err := c.loadTable("account_type", c.accountTypeByName, c.accountTypeByID); err != nil {
		return nil, err
	}
	if err := c.loadTable("transaction_type", c.txnTypeByName, c.txnTypeByID); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Catalog) loadTable(table string, byName map[string]int64, byID map[int64]string) error {
	rows, err := c.conn.Query(fmt.Sprintf(`SELECT id, name FROM %s`, table))
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return fmt.Errorf("failed to scan %s: %w", table, err)
		}
		byName[name] = id
		byID[id] = name
	}

	return rows.Err()
}

// LookupAccountType returns the id of an account type name.
func (c *Catalog) LookupAccountType(name string) (int64, error) {
	id, ok := c.accountTypeByName[name]
	if !ok {
		return 0, &LookupError{Table: "account_type", Name: name}
	}
	return id, nil
}

// ResolveAccountType returns the name of an account type id.
func (c *Catalog) ResolveAccountType(id int64) (string, error) {
	name, ok := c.accountTypeByID[id]
	if !ok {
		return "", &LookupError{Table: "account_type", ID: id}
	}
	return name, nil
}

// LookupTransactionType returns the id of a transaction type name.
func (c *Catalog) LookupTransactionType(name string) (int64, error) {
	id, ok := c.txnTypeByName[name]
	if !ok {
		return 0, &LookupError{Table: "transaction_type", Name: name}
	}
	return id, nil
}

// ResolveTransactionType returns the name of a transaction type id.
func (c *Catalog) ResolveTransactionType(id int64) (string, error) {
	name, ok := c.txnTypeByID[id]
	if !ok {
		return "", &LookupError{Table: "transaction_type", ID: id}
	}
	return name, nil
}

// AddAccountType appends a new account type row and returns its id.
// Existing rows are never renamed or removed: a duplicate name fails on
// the table's UNIQUE constraint.
func (c *Catalog) AddAccountType(name string) (int64, error) {
	id, err := c.addEntry("account_type", name)
	if err != nil {
		return 0, err
	}
	c.accountTypeByName[name] = id
	c.accountTypeByID[id] = name
	return id, nil
}

// AddTransactionType appends a new transaction type row and returns its id.
func (c *Catalog) AddTransactionType(name string) (int64, error) {
	id, err := c.addEntry("transaction_type", name)
	if err != nil {
		return 0, err
	}
	c.txnTypeByName[name] = id
	c.txnTypeByID[id] = name
	return id, nil
}

func (c *Catalog) addEntry(table, name string) (int64, error) {
	result, err := c.conn.Exec(
		fmt.Sprintf(`INSERT INTO %s (name) VALUES (?)`, table), name,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to add %s entry: %w", table, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get %s entry id: %w", table, err)
	}

	return id, nil
}
