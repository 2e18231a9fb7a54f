package model

// NumColumns is the width of the combined ledger.
const NumColumns = 11

const (
	colTime     = 0
	colItemName = 1
	colAmount   = 4
	colNotes    = 10
)

// Row is one line of the combined ledger. The unnamed columns between the
// populated ones are left blank for manual spreadsheet entry.
type Row struct {
	Time     string
	ItemName string
	Amount   string
	Notes    string
}

// Record lays the row out positionally.
func (r Row) Record() []string {
	rec := make([]string, NumColumns)
	rec[colTime] = r.Time
	rec[colItemName] = r.ItemName
	rec[colAmount] = r.Amount
	rec[colNotes] = r.Notes
	return rec
}
