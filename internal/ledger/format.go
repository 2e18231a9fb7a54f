package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stmtfmt/stmtfmt/internal/model"
)

// TimeFormat is the layout of the time column.
const TimeFormat = "2006-01-02 15:04:05"

const dateOnlyFormat = "2006-01-02"

// Format renders one bank's transactions as ledger rows, in input order.
func Format(bank model.Bank, txns []model.Transaction) ([]model.Row, error) {
	notes, err := notesFor(bank)
	if err != nil {
		return nil, err
	}

	rows := make([]model.Row, 0, len(txns))
	for _, txn := range txns {
		rows = append(rows, model.Row{
			Time:     formatTime(bank, txn),
			ItemName: txn.Description,
			Amount:   FormatAmount(txn.Amount),
			Notes:    notes(txn),
		})
	}
	return rows, nil
}

// FormatAmount rounds to pennies and always prints two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// Amex only reports the posting day.
func formatTime(bank model.Bank, txn model.Transaction) string {
	if bank == model.BankAmex {
		return txn.Date.Format(dateOnlyFormat) + " 00:00:00"
	}
	return txn.Date.Format(TimeFormat)
}

func notesFor(bank model.Bank) (func(model.Transaction) string, error) {
	switch bank {
	case model.BankMonzo:
		return monzoNotes, nil
	case model.BankRevolut:
		return revolutNotes, nil
	case model.BankWise:
		return wiseNotes, nil
	case model.BankAmex:
		return amexNotes, nil
	default:
		return nil, fmt.Errorf("no formatter for bank %q", bank)
	}
}

// monzoNotes yields "Type - Notes", dropping the separator when either
// side is empty.
func monzoNotes(txn model.Transaction) string {
	return strings.Trim(txn.Type+" - "+txn.Notes, " -")
}

func revolutNotes(txn model.Transaction) string {
	return txn.Description
}

func wiseNotes(txn model.Transaction) string {
	return strings.TrimSpace(txn.Reference + " " + txn.SourceName)
}

func amexNotes(txn model.Transaction) string {
	if strings.TrimSpace(txn.Address) == "" {
		return txn.Category
	}
	return strings.TrimSpace(txn.Category + " " + txn.Address)
}
