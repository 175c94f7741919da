package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Connection manages a SQLite connection to an OAIF store.
type Connection struct {
	db       *sql.DB
	dbPath   string
	readOnly bool
}

// CreateOptions holds the metadata written once when a new store is created.
type CreateOptions struct {
	CompanyName  string
	BaseCurrency string // ISO 4217 code, defaults to USD
	SourceSystem string
	CreatedBy    string
}

// Open opens an existing OAIF store for reading and writing.
// It enables WAL mode and foreign key constraints, then verifies the
// file's format signature and schema version before returning. A file
// that fails identity verification is never exposed to callers.
func Open(dbPath string) (*Connection, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("failed to stat store file: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", dbPath)
	return open(dbPath, connStr, false)
}

// OpenReadOnly opens an existing OAIF store in read-only mode.
// Useful for verification and reporting sessions that must not be able
// to mutate the store even if the single-writer assumption is violated.
func OpenReadOnly(dbPath string) (*Connection, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("failed to stat store file: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?mode=ro&_foreign_keys=on&_busy_timeout=5000", dbPath)
	return open(dbPath, connStr, true)
}

func open(dbPath, connStr string, readOnly bool) (*Connection, error) {
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	conn := &Connection{
		db:       db,
		dbPath:   dbPath,
		readOnly: readOnly,
	}

	// Identity check gates every session: no other component may touch
	// a store that fails it.
	if err := conn.VerifyIdentity(); err != nil {
		db.Close()
		return nil, err
	}

	return conn, nil
}

// Create creates a new OAIF store at the given path, stamps the format
// signature and schema version, applies the schema with its seeded
// reference tables, and records the required metadata keys.
// It fails if a file already exists at the path.
func Create(dbPath string, opts CreateOptions) (*Connection, error) {
	if _, err := os.Stat(dbPath); err == nil {
		return nil, fmt.Errorf("store already exists: %s", dbPath)
	}

	// Ensure the store file's parent directory exists.
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	conn := &Connection{
		db:     db,
		dbPath: dbPath,
	}

	if err := conn.stampIdentity(); err != nil {
		db.Close()
		os.Remove(dbPath)
		return nil, err
	}

	if err := InitializeSchema(conn); err != nil {
		db.Close()
		os.Remove(dbPath)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := conn.writeRequiredMetadata(opts); err != nil {
		db.Close()
		os.Remove(dbPath)
		return nil, err
	}

	return conn, nil
}

// stampIdentity writes the OAIF signature and schema version pragmas.
// Written once at creation, read-only thereafter.
func (c *Connection) stampIdentity() error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA application_id = %d", ApplicationID),
		fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion),
		"PRAGMA encoding = 'UTF-8'",
	}

	for _, pragma := range pragmas {
		if _, err := c.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// writeRequiredMetadata records the metadata keys every OAIF store must carry.
func (c *Connection) writeRequiredMetadata(opts CreateOptions) error {
	if opts.BaseCurrency == "" {
		opts.BaseCurrency = "USD"
	}
	if opts.SourceSystem == "" {
		opts.SourceSystem = "Unknown"
	}
	if opts.CreatedBy == "" {
		opts.CreatedBy = "oaif-ledger"
	}

	now := time.Now().UTC().Format(time.RFC3339)

	entries := [][2]string{
		{MetaFormatVersion, FormatVersion},
		{MetaMinReader, MinReaderVersion},
		{MetaCreatedAt, now},
		{MetaCreatedBy, opts.CreatedBy},
		{MetaSourceSystem, opts.SourceSystem},
		{MetaCompanyName, opts.CompanyName},
		{MetaBaseCurrency, opts.BaseCurrency},
	}

	for _, entry := range entries {
		if _, err := c.db.Exec(
			`INSERT INTO oaif_metadata (key, value) VALUES (?, ?)`,
			entry[0], entry[1],
		); err != nil {
			return fmt.Errorf("failed to write metadata %q: %w", entry[0], err)
		}
	}

	return nil
}

// Close closes the store connection.
func (c *Connection) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// GetDB returns the underlying *sql.DB instance.
// Use this for custom queries not covered by other methods.
func (c *Connection) GetDB() *sql.DB {
	return c.db
}

// GetPath returns the store file path.
func (c *Connection) GetPath() string {
	return c.dbPath
}

// ReadOnly reports whether the connection was opened in read-only mode.
func (c *Connection) ReadOnly() bool {
	return c.readOnly
}

// Query executes a query that returns rows.
func (c *Connection) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return c.db.Query(query, args...)
}

// QueryRow executes a query that is expected to return at most one row.
func (c *Connection) QueryRow(query string, args ...interface{}) *sql.Row {
	return c.db.QueryRow(query, args...)
}

// Exec executes a query that doesn't return rows.
func (c *Connection) Exec(query string, args ...interface{}) (sql.Result, error) {
	return c.db.Exec(query, args...)
}

// Begin starts a new transaction.
func (c *Connection) Begin() (*sql.Tx, error) {
	return c.db.Begin()
}

// Transaction executes a function within a storage-level transaction.
// If the function returns an error, the transaction is rolled back and
// the store keeps its pre-call state. Otherwise, the transaction is
// committed.
func (c *Connection) Transaction(fn func(*sql.Tx) error) error {
	tx, err := c.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
