package db

import (
	"database/sql"
	"fmt"
)

// Metadata provides access to the store's key/value metadata.
type Metadata struct {
	conn *Connection
}

// NewMetadata creates a new Metadata instance.
func NewMetadata(conn *Connection) *Metadata {
	return &Metadata{conn: conn}
}

// Get retrieves a metadata value. Returns empty string if the key is absent.
func (m *Metadata) Get(key string) (string, error) {
	query := `SELECT value FROM oaif_metadata WHERE key = ?`

	var value string
	err := m.conn.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// Set sets a metadata value. The required keys written at creation are
// never overwritten: attempting to change one returns an error.
func (m *Metadata) Set(key, value string) error {
	for _, required := range RequiredMetadataKeys() {
		if key == required {
			existing, err := m.Get(key)
			if err != nil {
				return err
			}
			if existing != "" && existing != value {
				return fmt.Errorf("metadata key %q is immutable after creation", key)
			}
		}
	}

	query := `
		INSERT INTO oaif_metadata (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value
	`

	if _, err := m.conn.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}

// All retrieves all metadata as a map.
func (m *Metadata) All() (map[string]string, error) {
	rows, err := m.conn.Query(`SELECT key, value FROM oaif_metadata ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		result[key] = value
	}

	return result, rows.Err()
}

// RequiredMetadataKeys returns the keys every OAIF store must carry
// after creation.
func RequiredMetadataKeys() []string {
	return []string{
		MetaFormatVersion,
		MetaMinReader,
		MetaCreatedAt,
		MetaCreatedBy,
		MetaSourceSystem,
		MetaCompanyName,
		MetaBaseCurrency,
	}
}
