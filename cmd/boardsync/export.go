package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpggio/boardsync/internal/domain/board"
)

func newExportCmd() *cobra.Command {
	var (
		boardID     string
		boardName   string
		dateColumn  string
		startDate   string
		endDate     string
		groupTitle  string
		all         bool
		outPath     string
		subitemsOut string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export board items to CSV",
		Long:  "Fetches every matching item from a board, page by page, and writes one CSV row per item. By default items are filtered to the previous calendar month on the given date column.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := board.FetchOptions{
				FilterByDate: !all,
				DateColumn:   dateColumn,
				StartDate:    startDate,
				EndDate:      endDate,
				Group:        groupTitle,
			}
			return runExport(cmd, boardID, boardName, opts, outPath, subitemsOut)
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "board id (required)")
	cmd.Flags().StringVar(&boardName, "board-name", "", "board name, stored alongside the cached catalog")
	cmd.Flags().StringVar(&dateColumn, "date-column", "", "column title for the date filter")
	cmd.Flags().StringVar(&startDate, "start", "", "filter start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "filter end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&groupTitle, "group", "", "keep only items in the group with this exact title")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every item, skipping the date filter")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "items CSV path (default stdout)")
	cmd.Flags().StringVar(&subitemsOut, "subitems-out", "", "also write a subitems CSV to this path")
	cmd.MarkFlagRequired("board")
	return cmd
}

func runExport(cmd *cobra.Command, boardID, boardName string, opts board.FetchOptions, outPath, subitemsOut string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	cat, err := a.catalogFor(cmd.Context(), boardID, boardName)
	if err != nil {
		return err
	}

	reader := board.NewReader(a.client, cat, a.logger)
	items, err := reader.FetchAll(cmd.Context(), boardID, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := writeCSVTable(out, board.ItemsTable(items)); err != nil {
		return err
	}

	if subitemsOut != "" {
		f, err := os.Create(subitemsOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := writeCSVTable(f, board.SubitemsTable(items)); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d items\n", len(items))
	return nil
}
