package cmd

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/db"
)

// formatAmount renders an exact decimal amount in the store's base
// currency for display. Formatting is presentation-only; the stored
// value stays an exact decimal.
func formatAmount(d decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		return d.StringFixed(2) + " " + currencyCode
	}

	minor := d.Shift(int32(cur.Fraction)).IntPart()
	return money.New(minor, currencyCode).Display()
}

// baseCurrency reads the store's base currency metadata, defaulting to USD.
func baseCurrency(conn *db.Connection) string {
	meta := db.NewMetadata(conn)
	currency, err := meta.Get(db.MetaBaseCurrency)
	if err != nil || currency == "" {
		return "USD"
	}
	return currency
}
