package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kidbank-dev/kidbank/internal/export"
)

func newExportCommand(dataDir *string) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active child's statement as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*dataDir)
			if err != nil {
				return err
			}
			child, err := a.activeChild()
			if err != nil {
				return err
			}

			txs, err := a.ledger.List(child)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}

			return export.Statement(w, txs)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to file instead of stdout")

	return cmd
}
