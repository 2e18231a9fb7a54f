package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/stmtfmt/stmtfmt/internal/model"
)

// DefaultHeader labels the ledger columns. Placeholder columns differ only
// in their number of spaces so spreadsheet imports keep them distinct.
var DefaultHeader = []string{"時間", "項目名稱", "", " ", "金額", "  ", "   ", "    ", "     ", "      ", "備註"}

// DefaultFileName is the ledger written into a month directory.
const DefaultFileName = "combined_statements.csv"

// Spreadsheet apps need the BOM to detect UTF-8.
const bom = "\ufeff"

// WriteRows writes a BOM, header and rows.
func WriteRows(w io.Writer, header []string, rows []model.Row) error {
	if len(header) != model.NumColumns {
		return fmt.Errorf("header has %d labels, want %d", len(header), model.NumColumns)
	}

	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the ledger to path. Rows go to a temporary file in the
// same directory first, so path is either fully written or untouched.
func WriteFile(path string, header []string, rows []model.Row) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := WriteRows(tmp, header, rows); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving ledger into place: %w", err)
	}
	return nil
}
