package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kidbank-dev/kidbank/internal/store"
)

func newChildCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "child",
		Short: "Manage child profiles",
	}

	cmd.AddCommand(newChildCreateCommand(dataDir))
	cmd.AddCommand(newChildListCommand(dataDir))
	cmd.AddCommand(newChildUseCommand(dataDir))
	cmd.AddCommand(newChildRenameCommand(dataDir))

	return cmd
}

func newChildCreateCommand(dataDir *string) *cobra.Command {
	var name string
	var birthdate string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a child profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*dataDir)
			if err != nil {
				return err
			}

			var bd time.Time
			if birthdate != "" {
				bd, err = store.ParseDate(birthdate)
				if err != nil {
					return err
				}
			}

			c, err := a.children.Create(name, bd)
			if err != nil {
				return err
			}

			// First child becomes active automatically.
			if _, err := a.children.Active(); err != nil {
				if err := a.children.SetActive(c); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", c.Name, c.Dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&birthdate, "birthdate", "", "birthdate, YYYY-MM-DD")

	return cmd
}

func newChildListCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all children",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*dataDir)
			if err != nil {
				return err
			}

			children, err := a.children.List()
			if err != nil {
				return err
			}

			active, _ := a.children.Active()
			for _, c := range children {
				marker := " "
				if c.Dir == active.Dir {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", marker, c.Name, c.Dir)
			}
			return nil
		},
	}
}

func newChildUseCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "use <directory>",
		Short: "Select the active child",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*dataDir)
			if err != nil {
				return err
			}

			c, err := a.children.Get(args[0])
			if err != nil {
				return err
			}
			if err := a.children.SetActive(c); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Now tracking %s\n", c.Name)
			return nil
		},
	}
}

func newChildRenameCommand(dataDir *string) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename the active child",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*dataDir)
			if err != nil {
				return err
			}

			c, err := a.children.Active()
			if err != nil {
				return err
			}
			renamed, err := a.children.Rename(c, name)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed to %s\n", renamed.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
