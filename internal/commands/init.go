package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kidbank-dev/kidbank/internal/config"
)

func newInitCommand(dataDir *string) *cobra.Command {
	var family string
	var answer string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the kidbank data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("resolving home directory: %w", err)
			}
			dir := config.DataDir(*dataDir, filepath.Join(home, ".kidbank"))

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating data directory: %w", err)
			}

			cfgPath := filepath.Join(dir, config.FileName)
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("%s already exists", cfgPath)
			}

			cfg := config.Default()
			cfg.Family = family
			cfg.Control.Answer = answer
			if err := config.Save(dir, cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized kidbank data directory at %s\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "family name")
	cmd.Flags().StringVar(&answer, "answer", "", "parental challenge answer (default built in)")

	return cmd
}
