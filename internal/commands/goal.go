package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kidbank-dev/kidbank/internal/goal"
	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

func newGoalCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage savings goals",
	}

	cmd.AddCommand(newGoalCreateCommand(dataDir))
	cmd.AddCommand(newGoalCancelCommand(dataDir))
	cmd.AddCommand(newGoalStatusCommand(dataDir))
	cmd.AddCommand(newGoalHistoryCommand(dataDir))

	return cmd
}

func newGoalCreateCommand(dataDir *string) *cobra.Command {
	var description string
	var target string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a new savings goal",
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

			amount, err := decimal.NewFromString(target)
			if err != nil {
				return fmt.Errorf("parsing target %q: %w", target, err)
			}

			status, err := a.goals.Create(child, description, amount)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Goal %q created, target $%s\n",
				status.Goal.Description, status.Goal.TargetAmount.StringFixed(2))
			printProjection(cmd, status)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "what the child is saving for (required)")
	_ = cmd.MarkFlagRequired("description")
	cmd.Flags().StringVar(&target, "target", "", "target amount (required)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newGoalCancelCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the active goal",
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

			g, err := a.goals.Cancel(child)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %q\n", g.Description)
			return nil
		},
	}
}

func newGoalStatusCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active goal and its forecast",
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

			status, err := a.goals.Current(child)
			if err != nil {
				return err
			}

			if status.Goal.State == model.GoalCompleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Goal %q reached!\n", status.Goal.Description)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saving for %q, target $%s\n",
				status.Goal.Description, status.Goal.TargetAmount.StringFixed(2))
			printProjection(cmd, status)
			return nil
		},
	}
}

func newGoalHistoryCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show every goal lifecycle entry",
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

			history, err := a.goals.History(child)
			if err != nil {
				return err
			}

			for _, g := range history {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s  %8s  %s\n",
					store.FormatDate(g.UpdatedAt), g.State, g.TargetAmount.StringFixed(2), g.Description)
			}
			return nil
		},
	}
}

func printProjection(cmd *cobra.Command, status goal.Status) {
	switch {
	case status.Projection != nil:
		p := status.Projection
		fmt.Fprintf(cmd.OutOrStdout(), "Needs $%s more; %d allowance payments away, around %s\n",
			p.AmountNeeded.StringFixed(2), p.CyclesNeeded, store.FormatDate(p.ProjectedDate))
		if p.ExceedsHorizon {
			fmt.Fprintln(cmd.OutOrStdout(), "That is a long way off. Consider a smaller goal or a bigger allowance.")
		}
	case status.ProjectionErr != nil:
		fmt.Fprintf(cmd.OutOrStdout(), "No forecast: %v\n", status.ProjectionErr)
	}
}
