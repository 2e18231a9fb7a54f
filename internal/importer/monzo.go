package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/stmtfmt/stmtfmt/internal/model"
)

// MonzoReader parses Monzo current account CSV exports.
type MonzoReader struct{}

const (
	monzoColDate     = "Date"
	monzoColTime     = "Time"
	monzoColType     = "Type"
	monzoColName     = "Name"
	monzoColCategory = "Category"
	monzoColAmount   = "Amount"
	monzoColCurrency = "Currency"
	monzoColNotes    = "Notes and #tags"
	monzoColDesc     = "Description"
	monzoColID       = "Transaction ID"

	monzoDateFormatUK  = "2/1/2006 15:04:05"
	monzoDateFormatISO = "2006-01-02 15:04:05"
)

var monzoColumns = []column{
	required(monzoColDate),
	optional(monzoColTime, "00:00:00"),
	required(monzoColAmount),
	optional(monzoColType, ""),
	optional(monzoColName, ""),
	optional(monzoColCategory, model.DefaultCategory),
	optional(monzoColCurrency, model.DefaultCurrency),
	optional(monzoColNotes, ""),
	optional(monzoColDesc, ""),
	optional(monzoColID, ""),
}

// Read parses a Monzo CSV. Rows with an unparseable date or amount are skipped.
func (MonzoReader) Read(r io.Reader) ([]model.Transaction, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return nil, fmt.Errorf("reading monzo CSV: %w", err)
	}
	t, err := bindColumns(header, monzoColumns)
	if err != nil {
		return nil, fmt.Errorf("reading monzo CSV: %w", err)
	}

	var txns []model.Transaction
	for _, rec := range rows {
		txn, ok := parseMonzoRow(t, rec)
		if ok {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func parseMonzoRow(t *table, rec []string) (model.Transaction, bool) {
	date, err := parseMonzoDate(t.get(rec, monzoColDate), t.get(rec, monzoColTime))
	if err != nil {
		return model.Transaction{}, false
	}
	amount, err := t.amount(rec, monzoColAmount)
	if err != nil {
		return model.Transaction{}, false
	}

	return model.Transaction{
		Date:          date,
		Amount:        amount.Neg(),
		Currency:      t.get(rec, monzoColCurrency),
		Description:   joinNonEmpty(t.get(rec, monzoColName), t.get(rec, monzoColDesc)),
		Category:      t.get(rec, monzoColCategory),
		Bank:          model.BankMonzo,
		Type:          t.get(rec, monzoColType),
		Notes:         t.get(rec, monzoColNotes),
		TransactionID: t.get(rec, monzoColID),
	}, true
}

// parseMonzoDate accepts both the app export (DD/MM/YYYY) and the web
// export (YYYY-MM-DD) date styles.
func parseMonzoDate(date, clock string) (time.Time, error) {
	layout := monzoDateFormatISO
	if strings.Contains(date, "/") {
		layout = monzoDateFormatUK
	}
	return time.Parse(layout, date+" "+clock)
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
