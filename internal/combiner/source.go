package combiner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stmtfmt/stmtfmt/internal/model"
)

// Source pairs a bank with the file-name pattern of its export.
type Source struct {
	Bank    model.Bank
	Pattern string
}

// DefaultSources returns the built-in patterns in processing order.
func DefaultSources() []Source {
	return []Source{
		{Bank: model.BankMonzo, Pattern: "monzo*.csv"},
		{Bank: model.BankRevolut, Pattern: "revolut*.csv"},
		{Bank: model.BankWise, Pattern: "wise*.csv"},
		{Bank: model.BankAmex, Pattern: "amex*.xlsx"},
	}
}

// WithPatterns returns sources with patterns replaced for the banks present
// in overrides.
func WithPatterns(sources []Source, overrides map[model.Bank]string) []Source {
	out := make([]Source, len(sources))
	for i, src := range sources {
		if p, ok := overrides[src.Bank]; ok && p != "" {
			src.Pattern = p
		}
		out[i] = src
	}
	return out
}

// locate returns the first regular file in dir (by name) matching pattern,
// or "" when none does. Matching is case-sensitive.
func locate(dir, pattern string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading month dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return "", fmt.Errorf("matching pattern %q: %w", pattern, err)
		}
		if ok {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", nil
}
