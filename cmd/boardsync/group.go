package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpggio/boardsync/internal/domain/group"
)

func newGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Board group management commands",
	}

	cmd.AddCommand(newGroupCreateCmd())
	cmd.AddCommand(newGroupFindCmd())
	cmd.AddCommand(newGroupDeleteCmd())
	return cmd
}

func newGroupCreateCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a group on a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := group.NewService(a.client, a.logger).Create(cmd.Context(), boardID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "board id (required)")
	cmd.MarkFlagRequired("board")
	return cmd
}

func newGroupFindCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "find <name>",
		Short: "Look up a group id by its exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, found, err := group.NewService(a.client, a.logger).Find(cmd.Context(), boardID, args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no group named %q on board %s", args[0], boardID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "board id (required)")
	cmd.MarkFlagRequired("board")
	return cmd
}

func newGroupDeleteCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "delete <group-id>",
		Short: "Delete a group by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			deleted, err := group.NewService(a.client, a.logger).Delete(cmd.Context(), boardID, args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("group %s was not deleted", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted group %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "board id (required)")
	cmd.MarkFlagRequired("board")
	return cmd
}
