package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kidbank-dev/kidbank/internal/store"
)

func newAddCommand(dataDir *string) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "add <amount> <description>",
		Short: "Record a deposit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransaction(cmd, *dataDir, args[0], args[1], date, false)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "occurrence date, YYYY-MM-DD (default today)")
	return cmd
}

func newSpendCommand(dataDir *string) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "spend <amount> <description>",
		Short: "Record a spend",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransaction(cmd, *dataDir, args[0], args[1], date, true)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "occurrence date, YYYY-MM-DD (default today)")
	return cmd
}

func runTransaction(cmd *cobra.Command, dataDir, amountArg, description, date string, spend bool) error {
	a, err := newApp(dataDir)
	if err != nil {
		return err
	}
	child, err := a.activeChild()
	if err != nil {
		return err
	}

	amount, err := decimal.NewFromString(amountArg)
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", amountArg, err)
	}
	if spend {
		amount = amount.Abs().Neg()
	}

	var when time.Time
	if date != "" {
		when, err = store.ParseDate(date)
		if err != nil {
			return err
		}
	}

	tx, err := a.ledger.Add(child, amount, description, when)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s $%s, balance $%s\n",
		child.Name, tx.Description, tx.Amount.StringFixed(2), tx.Balance.StringFixed(2))
	return nil
}

func newListCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the active child's transactions",
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

			for _, tx := range txs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s  %8s  %8s  %s\n",
					store.FormatDate(tx.OccurredAt), tx.ID[:min(10, len(tx.ID))],
					tx.Amount.StringFixed(2), tx.Balance.StringFixed(2), tx.Description)
			}
			return nil
		},
	}
}

func newBalanceCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the active child's balance",
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

			balance, err := a.ledger.CurrentBalance(child)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: $%s\n", child.Name, balance.StringFixed(2))
			return nil
		},
	}
}

func newDeleteCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete transactions by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*dataDir)
			if err != nil {
				return err
			}
			child, err := a.activeChild()
			if err != nil {
				return err
			}

			result, err := a.ledger.Delete(child, args)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d, new balance $%s\n",
				result.Deleted, result.NewBalance.StringFixed(2))
			for _, missing := range result.NotFoundIDs {
				fmt.Fprintf(cmd.OutOrStdout(), "Not found: %s\n", missing)
			}
			return nil
		},
	}
}
