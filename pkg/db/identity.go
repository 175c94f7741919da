package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ApplicationID is the OAIF format signature ("OAIF" in ASCII), stored
// in the SQLite application_id header field. Readers must check it
// before trusting any content.
const ApplicationID int32 = 0x4F414946

// SchemaVersion is the schema version this implementation writes and
// the highest it can read, stored in the SQLite user_version field.
const SchemaVersion = 1

// Format version strings recorded in oaif_metadata at creation.
const (
	// FormatVersion is the OAIF version this implementation writes.
	FormatVersion = "1.0"
	// MinReaderVersion is the minimum reader version required to safely
	// interpret stores written by this implementation.
	MinReaderVersion = "1.0"
)

// FormatErrorCode categorizes identity verification failures.
type FormatErrorCode string

const (
	// ErrCodeNotThisFormat indicates the file is not an OAIF store.
	ErrCodeNotThisFormat FormatErrorCode = "NOT_THIS_FORMAT"

	// ErrCodeUnsupportedVersion indicates the store requires a newer
	// reader than this implementation.
	ErrCodeUnsupportedVersion FormatErrorCode = "UNSUPPORTED_VERSION"
)

// FormatError reports that a file failed OAIF identity verification.
// It is fatal to the session: a store producing it must not be opened
// for read or write by any other component.
type FormatError struct {
	Code   FormatErrorCode
	Path   string
	Detail string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Detail)
}

// IsNotThisFormat returns true if the error indicates a non-OAIF file.
// Uses errors.As to handle wrapped errors.
func IsNotThisFormat(err error) bool {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Code == ErrCodeNotThisFormat
	}
	return false
}

// IsUnsupportedVersion returns true if the error indicates a store
// written for a newer reader.
func IsUnsupportedVersion(err error) bool {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Code == ErrCodeUnsupportedVersion
	}
	return false
}

// VerifyIdentity checks that the connected file is a genuine OAIF store
// this implementation can read. It is a pure check: no state is mutated.
//
// It fails with NOT_THIS_FORMAT when the application_id signature does
// not match, and with UNSUPPORTED_VERSION when either the stored
// user_version or the oaif_min_reader metadata exceeds what this
// implementation supports.
func (c *Connection) VerifyIdentity() error {
	var appID int32
	if err := c.db.QueryRow("PRAGMA application_id").Scan(&appID); err != nil {
		// A file SQLite cannot read a header from is not an OAIF store.
		return &FormatError{
			Code:   ErrCodeNotThisFormat,
			Path:   c.dbPath,
			Detail: fmt.Sprintf("failed to read application_id: %v", err),
		}
	}

	if appID != ApplicationID {
		return &FormatError{
			Code:   ErrCodeNotThisFormat,
			Path:   c.dbPath,
			Detail: fmt.Sprintf("application_id 0x%08X, want 0x%08X", uint32(appID), uint32(ApplicationID)),
		}
	}

	var userVersion int
	if err := c.db.QueryRow("PRAGMA user_version").Scan(&userVersion); err != nil {
		return &FormatError{
			Code:   ErrCodeNotThisFormat,
			Path:   c.dbPath,
			Detail: fmt.Sprintf("failed to read user_version: %v", err),
		}
	}

	if userVersion > SchemaVersion {
		return &FormatError{
			Code:   ErrCodeUnsupportedVersion,
			Path:   c.dbPath,
			Detail: fmt.Sprintf("schema version %d, this reader supports up to %d", userVersion, SchemaVersion),
		}
	}

	var minReader string
	err := c.db.QueryRow(
		`SELECT value FROM oaif_metadata WHERE key = ?`, MetaMinReader,
	).Scan(&minReader)
	switch {
	case err == sql.ErrNoRows:
		// Key absent: nothing to refuse on. The signature already matched.
		return nil
	case err != nil:
		return &FormatError{
			Code:   ErrCodeNotThisFormat,
			Path:   c.dbPath,
			Detail: fmt.Sprintf("failed to read oaif_metadata: %v", err),
		}
	}

	if compareVersions(minReader, FormatVersion) > 0 {
		return &FormatError{
			Code:   ErrCodeUnsupportedVersion,
			Path:   c.dbPath,
			Detail: fmt.Sprintf("store requires reader version %s, this implementation is %s", minReader, FormatVersion),
		}
	}

	return nil
}

// compareVersions compares dotted numeric version strings.
// Returns -1, 0, or 1. Non-numeric segments compare as 0.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}

	return 0
}
