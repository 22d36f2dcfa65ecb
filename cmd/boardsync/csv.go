package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpggio/boardsync/internal/tabular"
)

// readCSVTable loads a CSV file into a table. The first record names the
// fields; empty cells are treated as absent values.
func readCSVTable(path string) (tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return tabular.Table{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return tabular.Table{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return tabular.Table{}, nil
	}

	table := tabular.Table{Fields: records[0]}
	for _, record := range records[1:] {
		row := tabular.Row{}
		for i, field := range table.Fields {
			if i >= len(record) || record[i] == "" {
				continue
			}
			row[field] = record[i]
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// writeCSVTable renders a table as CSV, fields in order, absent values
// as empty cells.
func writeCSVTable(w io.Writer, table tabular.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Fields); err != nil {
		return err
	}
	record := make([]string, len(table.Fields))
	for _, row := range table.Rows {
		for i, field := range table.Fields {
			record[i] = ""
			if v, ok := row[field]; ok && v != nil {
				record[i] = fmt.Sprint(v)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// parseOverrides turns repeated "field=Column Title" flags into a map.
func parseOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		field, title, ok := strings.Cut(pair, "=")
		if !ok || field == "" || title == "" {
			return nil, fmt.Errorf("invalid --map value %q, expected field=Title", pair)
		}
		overrides[field] = title
	}
	return overrides, nil
}
