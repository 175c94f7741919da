// Package ledger implements the OAIF double-entry core: the chart of
// accounts, the posting engine with its zero-sum invariant, and the
// trial balance aggregator.
//
// All amounts are exact fixed-point decimals. The posting engine is the
// only component that mutates account balances, and it commits header,
// lines, and balance deltas as one storage-level transaction: either
// everything is durable or nothing is.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/db"
)

// DefaultTolerance is the maximum absolute imbalance accepted when
// posting: one half of a minor unit in a two-decimal currency. It
// absorbs legitimate rounding from representations with more precision
// than the display currency, not real imbalance.
var DefaultTolerance = decimal.New(5, -3) // 0.005

// Ledger is a session over an opened OAIF store. It owns the account
// and transaction collections and holds the reference catalog loaded
// at session start.
type Ledger struct {
	conn      *db.Connection
	catalog   *Catalog
	tolerance decimal.Decimal
}

// New creates a ledger session over a verified store connection.
// The connection's identity has already been checked by db.Open.
func New(conn *db.Connection) (*Ledger, error) {
	catalog, err := LoadCatalog(conn)
	if err != nil {
		return nil, err
	}

	return &Ledger{
		conn:      conn,
		catalog:   catalog,
		tolerance: DefaultTolerance,
	}, nil
}

// SetTolerance overrides the posting balance tolerance, e.g. for
// currencies with a different minor-unit precision.
func (l *Ledger) SetTolerance(t decimal.Decimal) {
	l.tolerance = t.Abs()
}

// Catalog returns the session's reference catalog.
func (l *Ledger) Catalog() *Catalog {
	return l.catalog
}
