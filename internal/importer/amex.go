package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stmtfmt/stmtfmt/internal/model"
)

// AmexReader parses American Express statement workbooks (.xlsx).
type AmexReader struct{}

const (
	// Amex prefixes the table with six rows of account details.
	amexHeaderRow = 6

	amexColDate     = "Date"
	amexColDesc     = "Description"
	amexColAmount   = "Amount"
	amexColAddress  = "Address"
	amexColCategory = "Category"
	amexDateFormat  = "2/1/2006"
)

var amexColumns = []column{
	required(amexColDate),
	required(amexColAmount),
	optional(amexColDesc, ""),
	optional(amexColAddress, ""),
	optional(amexColCategory, model.DefaultCategory),
}

// Read parses the first sheet of an Amex workbook. Amounts keep their sign:
// Amex already reports spend as positive.
func (AmexReader) Read(r io.Reader) ([]model.Transaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening amex workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("reading amex workbook: no sheets found")
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading amex sheet %q: %w", sheet, err)
	}
	if len(rows) <= amexHeaderRow {
		return nil, fmt.Errorf("reading amex sheet %q: header row %d not found", sheet, amexHeaderRow+1)
	}

	t, err := bindColumns(rows[amexHeaderRow], amexColumns)
	if err != nil {
		return nil, fmt.Errorf("reading amex sheet %q: %w", sheet, err)
	}

	var txns []model.Transaction
	for _, rec := range rows[amexHeaderRow+1:] {
		raw := strings.TrimSpace(t.get(rec, amexColDate))
		if raw == "" {
			continue
		}
		date, err := parseAmexDate(raw)
		if err != nil {
			continue
		}
		amount, err := t.amount(rec, amexColAmount)
		if err != nil {
			continue
		}
		txns = append(txns, model.Transaction{
			Date:        date,
			Amount:      amount,
			Currency:    model.DefaultCurrency,
			Description: t.get(rec, amexColDesc),
			Category:    t.get(rec, amexColCategory),
			Address:     t.get(rec, amexColAddress),
			Bank:        model.BankAmex,
		})
	}
	return txns, nil
}

// parseAmexDate accepts DD/MM/YYYY text cells as well as native date cells,
// which arrive as spreadsheet serial numbers.
func parseAmexDate(raw string) (time.Time, error) {
	if d, err := time.Parse(amexDateFormat, raw); err == nil {
		return d, nil
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", raw, err)
	}
	d, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", raw, err)
	}
	return d.Truncate(time.Second), nil
}
