package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUnlockCommand(dataDir *string) *cobra.Command {
	var answer string
	var stats bool

	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Answer the parental access challenge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*dataDir)
			if err != nil {
				return err
			}
			child, err := a.children.Active()
			if err != nil {
				return err
			}

			if stats {
				s, err := a.control.Stats(child)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d attempts: %d granted, %d denied\n",
					s.Total, s.Successes, s.Failures)
				return nil
			}

			ok, err := a.control.Verify(child, answer)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("access denied")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Access granted")
			return nil
		},
	}

	cmd.Flags().StringVar(&answer, "answer", "", "challenge answer")
	cmd.Flags().BoolVar(&stats, "stats", false, "show attempt statistics instead")

	return cmd
}
