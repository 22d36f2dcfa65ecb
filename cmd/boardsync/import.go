package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpggio/boardsync/internal/domain/board"
	"github.com/rpggio/boardsync/internal/domain/group"
	"github.com/rpggio/boardsync/internal/domain/importer"
)

func newImportCmd() *cobra.Command {
	var (
		boardID    string
		boardName  string
		groupName  string
		filePath   string
		batchSize  int
		rateWindow time.Duration
		mapPairs   []string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-create board items from a CSV file",
		Long:  "Reads a CSV file, maps its columns onto the board's columns by title, and creates one item per row in batched mutations. The target group is created if no group with the given name exists.",
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseOverrides(mapPairs)
			if err != nil {
				return err
			}
			return runImport(cmd, boardID, boardName, groupName, filePath, batchSize, rateWindow, overrides)
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "board id (required)")
	cmd.Flags().StringVar(&boardName, "board-name", "", "board name, stored alongside the cached catalog")
	cmd.Flags().StringVar(&groupName, "group", "", "target group name (required)")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "CSV file to import (required)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "items per mutation batch (default 100)")
	cmd.Flags().DurationVar(&rateWindow, "rate-window", 0, "minimum spacing between batch starts (default 1m)")
	cmd.Flags().StringArrayVar(&mapPairs, "map", nil, "explicit field=Title column mapping, repeatable")
	cmd.MarkFlagRequired("board")
	cmd.MarkFlagRequired("group")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runImport(cmd *cobra.Command, boardID, boardName, groupName, filePath string, batchSize int, rateWindow time.Duration, overrides map[string]string) error {
	table, err := readCSVTable(filePath)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	cat, err := a.catalogFor(ctx, boardID, boardName)
	if err != nil {
		return err
	}

	groups := group.NewService(a.client, a.logger)
	groupID, found, err := groups.Find(ctx, boardID, groupName)
	if err != nil {
		return err
	}
	if !found {
		groupID, err = groups.Create(ctx, boardID, groupName)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Created group %q (%s)\n", groupName, groupID)
	}

	opts := []importer.Option{importer.WithFormatter(a.formatter())}
	if batchSize > 0 {
		opts = append(opts, importer.WithBatchSize(batchSize))
	}
	if rateWindow > 0 {
		opts = append(opts, importer.WithRateWindow(rateWindow))
	}

	counter := board.NewReader(a.client, cat, a.logger)
	writer := importer.NewWriter(a.client, cat, counter, a.logger, opts...)
	summary, err := writer.CreateItems(ctx, boardID, groupID, table, overrides)
	if summary != nil {
		encoded, encErr := json.MarshalIndent(summary, "", "  ")
		if encErr == nil {
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		}
	}
	if err != nil {
		return err
	}
	if summary.FailedCount > 0 {
		return fmt.Errorf("%d of %d items were not created", summary.FailedCount, summary.TotalRows)
	}
	return nil
}
