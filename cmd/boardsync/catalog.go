package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Column catalog cache commands",
	}

	cmd.AddCommand(newCatalogRefreshCmd())
	cmd.AddCommand(newCatalogShowCmd())
	return cmd
}

func newCatalogRefreshCmd() *cobra.Command {
	var (
		boardID   string
		boardName string
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch a board's column schema into the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			cat, err := a.catalogFor(cmd.Context(), boardID, boardName)
			if err != nil {
				return err
			}
			if err := cat.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cached %d columns for board %s\n", len(cat.Titles()), boardID)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "board id (required)")
	cmd.Flags().StringVar(&boardName, "board-name", "", "board name, stored alongside the cached catalog")
	cmd.MarkFlagRequired("board")
	return cmd
}

func newCatalogShowCmd() *cobra.Command {
	var (
		boardID   string
		boardName string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List a board's cached columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			cat, err := a.catalogFor(cmd.Context(), boardID, boardName)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TITLE\tID\tTYPE")
			for _, title := range cat.Titles() {
				desc, err := cat.Get(cmd.Context(), title)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", desc.Title, desc.ID, desc.Type)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "board id (required)")
	cmd.Flags().StringVar(&boardName, "board-name", "", "board name, stored alongside the cached catalog")
	cmd.MarkFlagRequired("board")
	return cmd
}
