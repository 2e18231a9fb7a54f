package combiner

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stmtfmt/stmtfmt/internal/ledger"
	"github.com/stmtfmt/stmtfmt/internal/model"
)

func copyFixture(t *testing.T, dir, fixture, name string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("../../testdata", fixture))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeAmex(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Transaction details"))
	header := []any{"Date", "Description", "Amount", "Address", "Category"}
	require.NoError(t, f.SetSheetRow(sheet, "A7", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, 8+i)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

// monthDir builds a directory holding one export per bank.
func monthDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	copyFixture(t, dir, "monzo_202510.csv", "monzo_202510.csv")
	copyFixture(t, dir, "revolut_202510.csv", "revolut_202510.csv")
	copyFixture(t, dir, "wise_202510.csv", "wise_202510.csv")
	writeAmex(t, filepath.Join(dir, "amex_202510.xlsx"), [][]any{
		{"12/10/2025", "TESCO STORES", 23.4, "1 High Street", "Groceries"},
		{"13/10/2025", "TFL TRAVEL", 2.8, "", "Travel"},
	})
	return dir
}

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCombine_AllBanks(t *testing.T) {
	dir := monthDir(t)

	res, err := New(DefaultSources(), nil).Combine(dir)
	require.NoError(t, err)

	require.Len(t, res.Reports, 4)
	counts := map[model.Bank]int{}
	for _, r := range res.Reports {
		assert.True(t, r.OK(), "bank %s: %v", r.Bank, r.Err)
		counts[r.Bank] = r.Count
	}
	assert.Equal(t, map[model.Bank]int{
		model.BankMonzo:   3,
		model.BankRevolut: 2,
		model.BankWise:    3,
		model.BankAmex:    2,
	}, counts)
	assert.Equal(t, 10, res.Total(), "total is the sum of per-bank counts")

	assert.Equal(t, "monzo_202510.csv", res.Reports[0].File)
	assert.Equal(t, "amex_202510.xlsx", res.Reports[3].File)

	// Bank order, each bank's own order, no sorting by date.
	items := make([]string, 0, res.Total())
	for _, row := range res.Rows {
		items = append(items, row.ItemName)
	}
	assert.Equal(t, []string{
		"Pret A Manger PRET A MANGER LONDON", "Alice Smith", "Shop, Ltd",
		"Uber", "Top-up by *1234",
		"Landlord Ltd", "John Doe", "Shop",
		"TESCO STORES", "TFL TRAVEL",
	}, items)

	assert.Equal(t, model.Row{Time: "2025-10-12 00:00:00", ItemName: "TESCO STORES", Amount: "23.40", Notes: "Groceries 1 High Street"}, res.Rows[8])
	assert.Equal(t, "Travel", res.Rows[9].Notes)
}

func TestCombine_SingleMonzoRow(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "monzo_202510.csv", "Transaction ID,Date,Time,Type,Name,Category,Amount,Currency,Notes and #tags,Description\n"+
		"tx_1,01/10/2025,12:00:00,,Tesco,,10.00,GBP,,\n")

	res, err := New(DefaultSources(), nil).Combine(dir)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "2025-10-01 12:00:00", res.Rows[0].Time)
	assert.Equal(t, "-10.00", res.Rows[0].Amount)
	assert.Equal(t, "Tesco", res.Rows[0].ItemName)

	for _, r := range res.Reports[1:] {
		assert.False(t, r.Found(), "bank %s should be absent", r.Bank)
		assert.NoError(t, r.Err)
	}
}

func TestCombine_MissingDirectory(t *testing.T) {
	_, err := New(DefaultSources(), nil).Combine(filepath.Join(t.TempDir(), "202513"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDirectory)
}

func TestCombine_FileIsNotDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "x")
	_, err := New(DefaultSources(), nil).Combine(filepath.Join(dir, "notes.txt"))
	assert.ErrorIs(t, err, ErrMissingDirectory)
}

func TestCombine_NoRecognizedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "barclays_202510.csv", "Date,Amount\n01/10/2025,1\n")
	writeFile(t, dir, "Monzo_202510.csv", "Date,Amount\n01/10/2025,1\n")

	res, err := New(DefaultSources(), nil).Combine(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoInput)
	require.NotNil(t, res)
	assert.Empty(t, res.Rows)
}

func TestCombine_BrokenFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "monzo_202510.csv", "Date,Name\n01/10/2025,Tesco\n")
	copyFixture(t, dir, "revolut_202510.csv", "revolut_202510.csv")

	var logs bytes.Buffer
	res, err := New(DefaultSources(), bufferLogger(&logs)).Combine(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total())
	assert.Error(t, res.Reports[0].Err)
	assert.True(t, res.Reports[0].Found())
	assert.False(t, res.Reports[0].OK())
	assert.True(t, res.Reports[1].OK())

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "bank=Monzo")
	assert.Contains(t, logs.String(), "missing required column")
}

func TestCombine_AllBrokenIsNoInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "monzo_202510.csv", "Date,Name\n01/10/2025,Tesco\n")
	writeFile(t, dir, "amex_202510.xlsx", "not a workbook")

	res, err := New(DefaultSources(), nil).Combine(dir)
	assert.ErrorIs(t, err, ErrNoInput)
	assert.Error(t, res.Reports[0].Err)
	assert.Error(t, res.Reports[3].Err)
}

func TestCombine_DroppedRowsAreSilent(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir, "wise_202510.csv", "wise_202510.csv")

	var logs bytes.Buffer
	res, err := New(DefaultSources(), bufferLogger(&logs)).Combine(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total())
	assert.NotContains(t, logs.String(), "level=WARN")
}

func TestCombine_HeaderOnlyFileGivesEmptyResult(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "revolut_202510.csv", "Type,Started Date,Description,Amount,Currency\n")

	res, err := New(DefaultSources(), nil).Combine(dir)
	require.NoError(t, err)
	assert.Zero(t, res.Total())
	assert.True(t, res.Reports[1].OK())
}

func TestCombine_FirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir, "revolut_202510.csv", "revolut_a.csv")
	writeFile(t, dir, "revolut_b.csv", "Type,Started Date,Description,Amount,Currency\nX,2025-10-01 00:00:00,Other,1,GBP\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "revolut_0.csv"), 0o755))

	res, err := New(DefaultSources(), nil).Combine(dir)
	require.NoError(t, err)
	assert.Equal(t, "revolut_a.csv", res.Reports[1].File)
	assert.Equal(t, 2, res.Total())
}

func TestCombine_Idempotent(t *testing.T) {
	dir := monthDir(t)
	c := New(DefaultSources(), nil)

	render := func() []byte {
		res, err := c.Combine(dir)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, ledger.WriteRows(&buf, ledger.DefaultHeader, res.Rows))
		return buf.Bytes()
	}
	assert.Equal(t, render(), render())
}

func TestCombine_CustomPattern(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir, "wise_202510.csv", "transfers-october.csv")

	sources := WithPatterns(DefaultSources(), map[model.Bank]string{model.BankWise: "transfers-*.csv"})
	res, err := New(sources, nil).Combine(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total())
	assert.Equal(t, "transfers-october.csv", res.Reports[2].File)
}

func TestCombine_BadPattern(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir, "revolut_202510.csv", "revolut_202510.csv")
	writeFile(t, dir, "monzo.csv", "x")

	sources := WithPatterns(DefaultSources(), map[model.Bank]string{model.BankMonzo: "monzo[.csv"})
	res, err := New(sources, nil).Combine(dir)
	require.NoError(t, err)
	assert.Error(t, res.Reports[0].Err)
	assert.Equal(t, 2, res.Total())
}

func TestResult_DateRange(t *testing.T) {
	res := &Result{Rows: []model.Row{
		{Time: "2025-10-05 00:00:00"},
		{Time: "2025-10-01 08:00:00"},
		{Time: "2025-10-31 23:59:59"},
	}}
	first, last := res.DateRange()
	assert.Equal(t, "2025-10-01 08:00:00", first)
	assert.Equal(t, "2025-10-31 23:59:59", last)

	first, last = (&Result{}).DateRange()
	assert.Empty(t, first)
	assert.Empty(t, last)
}

func TestWithPatterns(t *testing.T) {
	sources := WithPatterns(DefaultSources(), map[model.Bank]string{model.BankAmex: "amex*.xls*", model.BankWise: ""})
	assert.Equal(t, "amex*.xls*", sources[3].Pattern)
	assert.Equal(t, "wise*.csv", sources[2].Pattern, "empty override keeps default")
	assert.Equal(t, "amex*.xlsx", DefaultSources()[3].Pattern)
}
