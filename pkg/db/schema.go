// Package db provides SQLite storage for OAIF (Open Accounting
// Interchange Format) ledger stores: file identity verification,
// schema management, and metadata access.
package db

// Required metadata keys, written once at store creation.
const (
	MetaFormatVersion = "oaif_version"
	MetaMinReader     = "oaif_min_reader"
	MetaCreatedAt     = "created_at"
	MetaCreatedBy     = "created_by"
	MetaSourceSystem  = "source_system"
	MetaCompanyName   = "company_name"
	MetaBaseCurrency  = "base_currency"
)

// Schema defines the SQL statements to create the OAIF tables.
//
// Monetary columns (account.balance, txn_header.total_amount,
// txn_line.amount) are stored as TEXT holding exact decimal strings.
// All arithmetic over them happens in Go with fixed-point decimals;
// they are never summed in SQL, so no floating-point drift can enter
// the store.
const Schema = `
-- Store metadata
-- Key/value pairs describing the store: format version pair,
-- creation timestamp, creator identity, base currency.
CREATE TABLE IF NOT EXISTS oaif_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- Reference taxonomies
-- Closed vocabularies referenced by foreign key from core entities.
-- Rows referenced by any account or transaction are never renamed
-- or removed.
CREATE TABLE IF NOT EXISTS account_type (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS transaction_type (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

-- Chart of accounts
-- balance is the signed sum of all posted line amounts against the
-- account (debit-positive). It is mutated only by the posting engine.
CREATE TABLE IF NOT EXISTS account (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    account_type_id INTEGER NOT NULL REFERENCES account_type(id),
    code TEXT,                         -- optional short identifier
    description TEXT,
    balance TEXT NOT NULL DEFAULT '0', -- exact decimal string
    is_active INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_account_type
    ON account(account_type_id);

-- Transaction headers
-- Each posted, non-voided header owns lines that sum to zero.
CREATE TABLE IF NOT EXISTS txn_header (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    txn_type_id INTEGER NOT NULL REFERENCES transaction_type(id),
    txn_date TEXT NOT NULL,            -- YYYY-MM-DD
    memo TEXT,
    doc_number TEXT,
    external_ref TEXT,                 -- caller or generated reference id
    total_amount TEXT NOT NULL DEFAULT '0', -- sum of debit lines
    is_posted INTEGER NOT NULL DEFAULT 0,
    is_voided INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_txn_header_date
    ON txn_header(txn_date);

CREATE UNIQUE INDEX IF NOT EXISTS idx_txn_header_ref
    ON txn_header(external_ref);

-- Transaction lines
-- line_number is unique and ordered within a header; amount follows
-- the debit-positive convention.
CREATE TABLE IF NOT EXISTS txn_line (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    txn_header_id INTEGER NOT NULL REFERENCES txn_header(id),
    line_number INTEGER NOT NULL,
    account_id INTEGER NOT NULL REFERENCES account(id),
    amount TEXT NOT NULL,              -- exact decimal string
    description TEXT,
    UNIQUE(txn_header_id, line_number)
);

CREATE INDEX IF NOT EXISTS idx_txn_line_header
    ON txn_line(txn_header_id);

CREATE INDEX IF NOT EXISTS idx_txn_line_account
    ON txn_line(account_id);
`

// ReferenceSeed populates the reference taxonomies with the standard
// OAIF vocabularies. INSERT OR IGNORE keeps it idempotent.
const ReferenceSeed = `
INSERT OR IGNORE INTO account_type (id, name) VALUES
    (1,  'BANK'),
    (2,  'ACCOUNTS_RECEIVABLE'),
    (3,  'OTHER_CURRENT_ASSET'),
    (4,  'FIXED_ASSET'),
    (5,  'OTHER_ASSET'),
    (6,  'ACCOUNTS_PAYABLE'),
    (7,  'CREDIT_CARD'),
    (8,  'OTHER_CURRENT_LIABILITY'),
    (9,  'LONG_TERM_LIABILITY'),
    (10, 'EQUITY'),
    (11, 'INCOME'),
    (12, 'COST_OF_GOODS_SOLD'),
    (13, 'EXPENSE'),
    (14, 'OTHER_INCOME'),
    (15, 'OTHER_EXPENSE');

INSERT OR IGNORE INTO transaction_type (id, name) VALUES
    (1,  'JOURNAL'),
    (2,  'INVOICE'),
    (3,  'PAYMENT'),
    (4,  'BILL'),
    (5,  'BILL_PAYMENT'),
    (6,  'CHECK'),
    (7,  'DEPOSIT'),
    (8,  'CREDIT_MEMO'),
    (9,  'TRANSFER'),
    (10, 'OPENING_BALANCE');
`

// InitializeSchema creates the OAIF tables and seeds the reference
// taxonomies. It is idempotent.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	if _, err := conn.Exec(ReferenceSeed); err != nil {
		return err
	}
	return nil
}
