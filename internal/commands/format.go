package commands

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/stmtfmt/stmtfmt/internal/combiner"
	"github.com/stmtfmt/stmtfmt/internal/config"
	"github.com/stmtfmt/stmtfmt/internal/ledger"
)

type options struct {
	configPath string
	output     string
	verbose    bool
}

var separator = strings.Repeat("-", 50)

func runFormat(stdout, stderr io.Writer, dir string, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	patterns, err := cfg.BankPatterns()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fmt.Fprintf(stdout, "Processing month directory: %s\n", dir)
	fmt.Fprintln(stdout, separator)

	c := combiner.New(combiner.WithPatterns(combiner.DefaultSources(), patterns), logger)
	res, err := c.Combine(dir)
	if res != nil {
		printReports(stdout, res.Reports)
	}
	if err != nil {
		return err
	}
	if res.Total() == 0 {
		return fmt.Errorf("%w in %s", combiner.ErrEmptyResult, dir)
	}

	outPath := filepath.Join(dir, cfg.Output.FileName)
	if err := ledger.WriteFile(outPath, cfg.Output.Header, res.Rows); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	first, last := res.DateRange()
	fmt.Fprintln(stdout, separator)
	fmt.Fprintf(stdout, "Wrote combined statement: %s\n", outPath)
	fmt.Fprintf(stdout, "Total: %d transactions\n", res.Total())
	fmt.Fprintf(stdout, "Date range: %s to %s\n", first, last)
	fmt.Fprintf(stdout, "\nTip: %s can be imported into a spreadsheet as-is.\n", cfg.Output.FileName)
	return nil
}

func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.output != "" {
		cfg.Output.FileName = opts.output
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("--output: %w", err)
		}
	}
	return cfg, nil
}

func printReports(w io.Writer, reports []combiner.SourceReport) {
	for _, r := range reports {
		if !r.Found() {
			continue
		}
		fmt.Fprintf(w, "Reading %s file: %s\n", r.Bank, r.File)
		if r.Err != nil {
			fmt.Fprintf(w, "  ✗ %s: skipped, %v\n", r.Bank, r.Err)
			continue
		}
		fmt.Fprintf(w, "  ✓ %s: %d transactions\n", r.Bank, r.Count)
	}
}
