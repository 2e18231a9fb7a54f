package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMissingColumn is returned when a statement lacks a column its bank
// cannot be parsed without.
var ErrMissingColumn = errors.New("missing required column")

const utf8BOM = "\ufeff"

// column declares one source column and what it reads as when the column
// is absent or the cell is empty.
type column struct {
	name     string
	required bool
	fallback string
}

func required(name string) column { return column{name: name, required: true} }

func optional(name, fallback string) column { return column{name: name, fallback: fallback} }

// table binds a bank's column declarations to the header of one file.
type table struct {
	index    map[string]int
	fallback map[string]string
}

func bindColumns(header []string, cols []column) (*table, error) {
	t := &table{
		index:    make(map[string]int, len(header)),
		fallback: make(map[string]string, len(cols)),
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}

	var missing []string
	for _, c := range cols {
		t.fallback[c.name] = c.fallback
		if _, ok := t.index[c.name]; !ok && c.required {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return t, nil
}

// get returns the named cell, or the column's fallback when the column is
// absent or the cell is empty.
func (t *table) get(rec []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(rec) || rec[i] == "" {
		return t.fallback[name]
	}
	return rec[i]
}

// amount parses a money cell. Empty cells count as zero.
func (t *table) amount(rec []string, name string) (decimal.Decimal, error) {
	v := strings.TrimSpace(t.get(rec, name))
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", name, v, err)
	}
	return d, nil
}

// readCSV returns the header and data rows of a CSV statement.
func readCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, errors.New("empty file")
	}
	return records[0], records[1:], nil
}
