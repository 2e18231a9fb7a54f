package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stmtfmt/stmtfmt/internal/ledger"
	"github.com/stmtfmt/stmtfmt/internal/model"
)

// Config represents the optional stmtfmt.yaml configuration.
type Config struct {
	Output OutputConfig `yaml:"output"`
	// Patterns overrides the export file pattern per bank, keyed by bank name.
	Patterns map[string]string `yaml:"patterns,omitempty"`
}

// OutputConfig controls the combined ledger file.
type OutputConfig struct {
	FileName string   `yaml:"file_name"`
	Header   []string `yaml:"header"`
}

// Load reads a config file from disk. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			FileName: ledger.DefaultFileName,
			Header:   append([]string(nil), ledger.DefaultHeader...),
		},
	}
}

// Validate checks the output settings and pattern overrides.
func (c *Config) Validate() error {
	name := c.Output.FileName
	if name == "" {
		return fmt.Errorf("output.file_name is empty")
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("output.file_name %q must be a plain file name", name)
	}
	if len(c.Output.Header) != model.NumColumns {
		return fmt.Errorf("output.header has %d labels, want %d", len(c.Output.Header), model.NumColumns)
	}
	if _, err := c.BankPatterns(); err != nil {
		return err
	}
	return nil
}

// BankPatterns resolves the pattern overrides to banks.
func (c *Config) BankPatterns() (map[model.Bank]string, error) {
	out := make(map[model.Bank]string, len(c.Patterns))
	for name, pattern := range c.Patterns {
		bank, err := model.ParseBank(name)
		if err != nil {
			return nil, fmt.Errorf("patterns: %w", err)
		}
		if strings.TrimSpace(pattern) == "" {
			return nil, fmt.Errorf("patterns: empty pattern for %s", bank)
		}
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("patterns: %s pattern %q: %w", bank, pattern, err)
		}
		out[bank] = pattern
	}
	return out, nil
}
