package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/stmtfmt/stmtfmt/internal/model"
)

// WiseReader parses Wise transaction history CSV exports.
type WiseReader struct{}

const (
	wiseColID          = "ID"
	wiseColStatus      = "Status"
	wiseColDirection   = "Direction"
	wiseColCreated     = "Created on"
	wiseColAmount      = "Source amount (after fees)"
	wiseColCurrency    = "Source currency"
	wiseColSourceName  = "Source name"
	wiseColTargetName  = "Target name"
	wiseColReference   = "Reference"
	wiseColCategory    = "Category"
	wiseDateFormat     = "2006-01-02 15:04:05"
	wiseDirectionIn    = "IN"
	wiseDirectionOut   = "OUT"
	wiseStatusComplete = "COMPLETED"
	wiseStatusRefunded = "REFUNDED"
)

var wiseColumns = []column{
	required(wiseColStatus),
	required(wiseColDirection),
	required(wiseColCreated),
	required(wiseColAmount),
	optional(wiseColID, ""),
	optional(wiseColCurrency, model.DefaultCurrency),
	optional(wiseColSourceName, ""),
	optional(wiseColTargetName, ""),
	optional(wiseColReference, ""),
	optional(wiseColCategory, model.DefaultCategory),
}

// Read parses a Wise CSV. Only settled transfers (completed or refunded) with
// a known direction are kept. Money leaving the account is positive.
func (WiseReader) Read(r io.Reader) ([]model.Transaction, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return nil, fmt.Errorf("reading wise CSV: %w", err)
	}
	t, err := bindColumns(header, wiseColumns)
	if err != nil {
		return nil, fmt.Errorf("reading wise CSV: %w", err)
	}

	var txns []model.Transaction
	for _, rec := range rows {
		txn, ok := parseWiseRow(t, rec)
		if ok {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func parseWiseRow(t *table, rec []string) (model.Transaction, bool) {
	switch t.get(rec, wiseColStatus) {
	case wiseStatusComplete, wiseStatusRefunded:
	default:
		return model.Transaction{}, false
	}

	date, err := time.Parse(wiseDateFormat, t.get(rec, wiseColCreated))
	if err != nil {
		return model.Transaction{}, false
	}

	direction := t.get(rec, wiseColDirection)
	if direction != wiseDirectionIn && direction != wiseDirectionOut {
		return model.Transaction{}, false
	}

	amount, err := t.amount(rec, wiseColAmount)
	if err != nil {
		return model.Transaction{}, false
	}
	if direction == wiseDirectionIn {
		amount = amount.Neg()
	}

	id := t.get(rec, wiseColID)
	return model.Transaction{
		Date:          date,
		Amount:        amount,
		Currency:      t.get(rec, wiseColCurrency),
		Description:   t.get(rec, wiseColTargetName),
		Category:      t.get(rec, wiseColCategory),
		Bank:          model.BankWise,
		Type:          id,
		Reference:     t.get(rec, wiseColReference),
		SourceName:    t.get(rec, wiseColSourceName),
		TransactionID: id,
	}, true
}
