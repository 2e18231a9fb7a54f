package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/stmtfmt/stmtfmt/internal/model"
)

// RevolutReader parses Revolut account statement CSV exports.
type RevolutReader struct{}

const (
	revolutColType     = "Type"
	revolutColStarted  = "Started Date"
	revolutColDesc     = "Description"
	revolutColAmount   = "Amount"
	revolutColCurrency = "Currency"
	revolutDateFormat  = "2006-01-02 15:04:05"
)

var revolutColumns = []column{
	required(revolutColStarted),
	required(revolutColAmount),
	optional(revolutColType, ""),
	optional(revolutColDesc, ""),
	optional(revolutColCurrency, model.DefaultCurrency),
}

// Read parses a Revolut CSV keyed on the started date.
func (RevolutReader) Read(r io.Reader) ([]model.Transaction, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return nil, fmt.Errorf("reading revolut CSV: %w", err)
	}
	t, err := bindColumns(header, revolutColumns)
	if err != nil {
		return nil, fmt.Errorf("reading revolut CSV: %w", err)
	}

	var txns []model.Transaction
	for _, rec := range rows {
		date, err := time.Parse(revolutDateFormat, t.get(rec, revolutColStarted))
		if err != nil {
			continue
		}
		amount, err := t.amount(rec, revolutColAmount)
		if err != nil {
			continue
		}
		txns = append(txns, model.Transaction{
			Date:        date,
			Amount:      amount.Neg(),
			Currency:    t.get(rec, revolutColCurrency),
			Description: t.get(rec, revolutColDesc),
			Category:    model.DefaultCategory,
			Bank:        model.BankRevolut,
			Type:        t.get(rec, revolutColType),
		})
	}
	return txns, nil
}
