package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency = "GBP"
	DefaultCategory = "General"
)

// Transaction is a statement row after bank-specific parsing, before it is
// rendered as an output Row.
type Transaction struct {
	Date          time.Time
	Amount        decimal.Decimal // sign convention depends on Bank
	Currency      string
	Description   string
	Category      string
	Bank          Bank
	Type          string
	Notes         string
	Reference     string
	SourceName    string
	Address       string
	TransactionID string
}
