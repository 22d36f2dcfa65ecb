package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpggio/boardsync/internal/domain/board"
)

func newCountCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print a board's total item count",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			count, err := board.NewReader(a.client, nil, a.logger).ItemCount(cmd.Context(), boardID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "board id (required)")
	cmd.MarkFlagRequired("board")
	return cmd
}
