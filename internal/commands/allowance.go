package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newAllowanceCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allowance",
		Short: "Manage the weekly allowance schedule",
	}

	cmd.AddCommand(newAllowanceSetCommand(dataDir))
	cmd.AddCommand(newAllowanceShowCommand(dataDir))
	cmd.AddCommand(newAllowanceDisableCommand(dataDir))
	cmd.AddCommand(newAllowanceCatchUpCommand(dataDir))

	return cmd
}

func parseWeekday(s string) (time.Weekday, error) {
	names := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
	day, ok := names[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return day, nil
}

func newAllowanceSetCommand(dataDir *string) *cobra.Command {
	var amount string
	var day string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the weekly allowance",
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

			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}
			weekday, err := parseWeekday(day)
			if err != nil {
				return err
			}

			sched, err := a.allowances.Set(child, amt, weekday)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s gets $%s every %s\n",
				child.Name, sched.Amount.StringFixed(2), sched.Weekday)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "weekly amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&day, "day", "saturday", "payday weekday")

	return cmd
}

func newAllowanceShowCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the allowance schedule",
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

			sched, err := a.allowances.Get(child)
			if err != nil {
				return err
			}

			state := "active"
			if !sched.Active {
				state = "disabled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "$%s every %s (%s)\n",
				sched.Amount.StringFixed(2), sched.Weekday, state)
			return nil
		},
	}
}

func newAllowanceDisableCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Stop the weekly allowance",
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

			if _, err := a.allowances.Disable(child); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Allowance disabled for %s\n", child.Name)
			return nil
		},
	}
}

func newAllowanceCatchUpCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "catch-up",
		Short: "Issue any overdue allowance payments",
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

			issued, err := a.allowances.IssuePending(child, time.Time{})
			if err != nil {
				return err
			}

			if len(issued) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to issue")
				return nil
			}
			for _, tx := range issued {
				fmt.Fprintf(cmd.OutOrStdout(), "Issued $%s for %s\n",
					tx.Amount.StringFixed(2), tx.OccurredAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}
