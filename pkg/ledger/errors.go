package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// LookupError reports an unknown reference: a name or id absent from a
// reference taxonomy, or a missing account. It is recoverable - the
// caller corrects the input and retries.
type LookupError struct {
	// Table is the table the lookup ran against.
	Table string

	// Name is set for name-based lookups.
	Name string

	// ID is set for id-based lookups.
	ID int64
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown reference in %s: %q", e.Table, e.Name)
	}
	return fmt.Sprintf("unknown reference in %s: id %d", e.Table, e.ID)
}

// IsUnknownReference returns true if the error is a reference lookup
// failure. Uses errors.As to handle wrapped errors.
func IsUnknownReference(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}

// PostingErrorCode categorizes posting engine rejections.
type PostingErrorCode string

const (
	// ErrCodeEmptyEntry indicates an entry with no lines.
	ErrCodeEmptyEntry PostingErrorCode = "EMPTY_ENTRY"

	// ErrCodeUnbalancedEntry indicates line amounts that do not sum to
	// zero within the configured tolerance.
	ErrCodeUnbalancedEntry PostingErrorCode = "UNBALANCED_ENTRY"

	// ErrCodeUnknownAccount indicates a line referencing a nonexistent
	// account.
	ErrCodeUnknownAccount PostingErrorCode = "UNKNOWN_ACCOUNT"

	// ErrCodeEntryNotFound indicates a void request for a missing header.
	ErrCodeEntryNotFound PostingErrorCode = "ENTRY_NOT_FOUND"

	// ErrCodeEntryVoided indicates a void request for an already voided
	// header.
	ErrCodeEntryVoided PostingErrorCode = "ENTRY_VOIDED"
)

// PostingError reports a rejected posting operation. All posting errors
// are recoverable and leave the store byte-for-byte unchanged.
//
// Structured fields carry enough detail for callers to render an
// actionable message: Total holds the computed imbalance for
// UNBALANCED_ENTRY, AccountID the offending account for UNKNOWN_ACCOUNT,
// EntryID the header for void failures.
type PostingError struct {
	Code      PostingErrorCode
	Total     decimal.Decimal
	AccountID int64
	EntryID   int64
}

// Error implements the error interface.
func (e *PostingError) Error() string {
	switch e.Code {
	case ErrCodeEmptyEntry:
		return fmt.Sprintf("%s: journal entry has no lines", e.Code)
	case ErrCodeUnbalancedEntry:
		return fmt.Sprintf("%s: journal entry doesn't balance: %s", e.Code, e.Total)
	case ErrCodeUnknownAccount:
		return fmt.Sprintf("%s: account %d does not exist", e.Code, e.AccountID)
	case ErrCodeEntryNotFound:
		return fmt.Sprintf("%s: entry %d does not exist", e.Code, e.EntryID)
	case ErrCodeEntryVoided:
		return fmt.Sprintf("%s: entry %d is already voided", e.Code, e.EntryID)
	}
	return string(e.Code)
}

// IsUnbalanced returns true if the error is an unbalanced-entry rejection.
func IsUnbalanced(err error) bool {
	var pe *PostingError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeUnbalancedEntry
	}
	return false
}

// IsUnknownAccount returns true if the error is an unknown-account rejection.
func IsUnknownAccount(err error) bool {
	var pe *PostingError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeUnknownAccount
	}
	return false
}

// IsEmptyEntry returns true if the error is an empty-entry rejection.
func IsEmptyEntry(err error) bool {
	var pe *PostingError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeEmptyEntry
	}
	return false
}

// OutOfBalanceError reports that the trial balance totals differ beyond
// tolerance. Given the posting engine's zero-sum invariant this should
// be impossible; it exists as a consistency audit.
type OutOfBalanceError struct {
	Difference decimal.Decimal
}

// Error implements the error interface.
func (e *OutOfBalanceError) Error() string {
	return fmt.Sprintf("trial balance out of balance by %s", e.Difference)
}
