// Package combiner merges one month's bank exports into a single ledger.
package combiner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/stmtfmt/stmtfmt/internal/importer"
	"github.com/stmtfmt/stmtfmt/internal/ledger"
	"github.com/stmtfmt/stmtfmt/internal/model"
)

var (
	// ErrMissingDirectory is returned when the month directory does not exist.
	ErrMissingDirectory = errors.New("month directory does not exist")
	// ErrNoInput is returned when no bank produced any rows.
	ErrNoInput = errors.New("no bank statement files found")
	// ErrEmptyResult is returned when statements were read but no row survived.
	ErrEmptyResult = errors.New("no transactions to write")
)

// SourceReport describes how one bank's export was handled.
type SourceReport struct {
	Bank  model.Bank
	File  string // base name; empty when no file matched
	Count int
	Err   error
}

// Found reports whether a file matched the bank's pattern.
func (r SourceReport) Found() bool { return r.File != "" }

// OK reports whether the bank contributed to the result.
func (r SourceReport) OK() bool { return r.Found() && r.Err == nil }

// Result is the merged ledger for one month directory.
type Result struct {
	Rows    []model.Row
	Reports []SourceReport
}

// Total returns the number of merged rows.
func (r *Result) Total() int { return len(r.Rows) }

// DateRange returns the earliest and latest time values.
func (r *Result) DateRange() (first, last string) {
	for i, row := range r.Rows {
		if i == 0 || row.Time < first {
			first = row.Time
		}
		if i == 0 || row.Time > last {
			last = row.Time
		}
	}
	return first, last
}

// Combiner reads every bank's export in a month directory and concatenates
// the formatted rows.
type Combiner struct {
	sources []Source
	logger  *slog.Logger
}

// New creates a Combiner. A nil logger discards log output.
func New(sources []Source, logger *slog.Logger) *Combiner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Combiner{sources: sources, logger: logger}
}

// Combine processes dir. Rows keep the source order, then each export's own
// row order. A bank whose file fails to parse is logged and skipped. When
// ErrNoInput is returned the partial Result still carries the reports.
func (c *Combiner) Combine(dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrMissingDirectory, dir)
	}

	res := &Result{}
	ok := 0
	for _, src := range c.sources {
		report, rows := c.process(dir, src)
		res.Reports = append(res.Reports, report)
		if report.OK() {
			ok++
			res.Rows = append(res.Rows, rows...)
		}
	}

	if ok == 0 {
		return res, fmt.Errorf("%w in %s", ErrNoInput, dir)
	}
	return res, nil
}

func (c *Combiner) process(dir string, src Source) (SourceReport, []model.Row) {
	report := SourceReport{Bank: src.Bank}

	path, err := locate(dir, src.Pattern)
	if err != nil {
		report.Err = err
		c.logger.Warn("locating statement failed", "bank", src.Bank, "pattern", src.Pattern, "error", err)
		return report, nil
	}
	if path == "" {
		c.logger.Debug("no statement found", "bank", src.Bank, "pattern", src.Pattern)
		return report, nil
	}
	report.File = filepath.Base(path)

	logger := c.logger.With("bank", src.Bank, "file", report.File)
	logger.Debug("reading statement")

	txns, err := importer.ReadFile(src.Bank, path)
	if err != nil {
		report.Err = err
		logger.Warn("reading statement failed", "error", err)
		return report, nil
	}

	rows, err := ledger.Format(src.Bank, txns)
	if err != nil {
		report.Err = err
		logger.Warn("formatting statement failed", "error", err)
		return report, nil
	}

	report.Count = len(rows)
	logger.Debug("statement ingested", "rows", report.Count)
	return report, rows
}
