package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/stmtfmt/stmtfmt/internal/combiner"
	"github.com/stmtfmt/stmtfmt/internal/config"
)

// DefaultConfigFile is where init writes when no path is given.
const DefaultConfigFile = "stmtfmt.yaml"

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultConfigFile
			if len(args) > 0 {
				path = args[0]
			}
			return runInit(cmd.OutOrStdout(), path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(stdout io.Writer, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	cfg := config.Default()
	cfg.Patterns = make(map[string]string)
	for _, src := range combiner.DefaultSources() {
		cfg.Patterns[string(src.Bank)] = src.Pattern
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Wrote config: %s\n", path)
	fmt.Fprintf(stdout, "Use it with --config %s or set %s.\n", path, ConfigEnv)
	return nil
}
