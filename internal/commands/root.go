package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stmtfmt/stmtfmt/internal/buildinfo"
)

// ConfigEnv names the environment variable holding the default config path.
const ConfigEnv = "STMTFMT_CONFIG"

// NewRootCommand creates the stmtfmt command.
func NewRootCommand() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "stmtfmt <month-dir>",
		Short: "Combine Monzo, Revolut, Wise and Amex exports into one ledger CSV",
		Long: `stmtfmt reads the bank exports found in a month directory
(monzo*.csv, revolut*.csv, wise*.csv, amex*.xlsx) and writes
combined_statements.csv next to them, ready for spreadsheet import.`,
		Example: "  stmtfmt statements/202510",
		Version: buildinfo.String(),
		Args:    cobra.ExactArgs(1),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.configPath, "config", os.Getenv(ConfigEnv), "config file (default $"+ConfigEnv+")")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file name inside the month directory")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details")

	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}
