// Package commands wires the services into the kidbank CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kidbank-dev/kidbank/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var dataDir string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "kidbank",
		Short:   "Family allowance and savings tracker",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			}))
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default $KIDBANK_DATA_DIR or ~/.kidbank)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand(&dataDir))
	rootCmd.AddCommand(newChildCommand(&dataDir))
	rootCmd.AddCommand(newAddCommand(&dataDir))
	rootCmd.AddCommand(newSpendCommand(&dataDir))
	rootCmd.AddCommand(newListCommand(&dataDir))
	rootCmd.AddCommand(newBalanceCommand(&dataDir))
	rootCmd.AddCommand(newDeleteCommand(&dataDir))
	rootCmd.AddCommand(newGoalCommand(&dataDir))
	rootCmd.AddCommand(newAllowanceCommand(&dataDir))
	rootCmd.AddCommand(newUnlockCommand(&dataDir))
	rootCmd.AddCommand(newExportCommand(&dataDir))

	return rootCmd
}
