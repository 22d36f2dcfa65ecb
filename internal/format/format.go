// Package format converts typed input values into the wire representation
// each column type expects. Dispatch order: column-id-specific formatter,
// then column-type formatter, then default stringification.
package format

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrFormat indicates a value that cannot be represented for its column.
var ErrFormat = errors.New("cannot format value")

// Func converts one input value into its wire value.
type Func func(value any) (any, error)

// Formatter dispatches values to the right conversion.
type Formatter struct {
	byID   map[string]Func
	byType map[string]Func
}

// New creates a Formatter with the built-in type formatters registered.
func New() *Formatter {
	return &Formatter{
		byID: map[string]Func{},
		byType: map[string]Func{
			"status":    formatStatus,
			"color":     formatStatus,
			"date":      formatDate,
			"people":    formatPeople,
			"numeric":   formatNumeric,
			"numbers":   formatNumeric,
			"link":      formatLink,
			"long_text": formatLongText,
			"text":      formatText,
		},
	}
}

// RegisterID installs a formatter for one idiosyncratic column id. It
// takes precedence over the column's type formatter.
func (f *Formatter) RegisterID(columnID string, fn Func) {
	f.byID[columnID] = fn
}

// Format converts value for the given column.
func (f *Formatter) Format(value any, columnType, columnID string) (any, error) {
	fn, ok := f.byID[columnID]
	if !ok {
		fn, ok = f.byType[columnType]
	}
	if !ok {
		fn = formatText
	}
	wire, err := fn(value)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", columnID, err)
	}
	return wire, nil
}

func formatStatus(v any) (any, error) {
	return map[string]any{"label": stringify(v)}, nil
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func formatDate(v any) (any, error) {
	var ts time.Time
	switch d := v.(type) {
	case time.Time:
		ts = d
	case string:
		var err error
		for _, layout := range dateLayouts {
			ts, err = time.Parse(layout, d)
			if err == nil {
				break
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: unparsable date %q", ErrFormat, d)
		}
	default:
		return nil, fmt.Errorf("%w: unparsable date %v", ErrFormat, v)
	}

	wire := map[string]any{"date": ts.Format("2006-01-02")}
	if ts.Hour() != 0 || ts.Minute() != 0 || ts.Second() != 0 {
		wire["time"] = ts.Format("15:04:05")
	}
	return wire, nil
}

func formatPeople(v any) (any, error) {
	var id int64
	switch n := v.(type) {
	case int:
		id = int64(n)
	case int64:
		id = n
	case float64:
		id = int64(n)
		if float64(id) != n {
			return nil, fmt.Errorf("%w: non-integral person id %v", ErrFormat, n)
		}
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: non-numeric person id %q", ErrFormat, n)
		}
		id = parsed
	default:
		return nil, fmt.Errorf("%w: non-numeric person id %v", ErrFormat, v)
	}
	return map[string]any{
		"personsAndTeams": []map[string]any{
			{"id": id, "kind": "person"},
		},
	}, nil
}

// The API requires numeric column values as stringified numbers.
func formatNumeric(v any) (any, error) {
	return stringify(v), nil
}

// Links use the same value for both the url and the display text.
func formatLink(v any) (any, error) {
	s := stringify(v)
	return map[string]any{"url": s, "text": s}, nil
}

func formatLongText(v any) (any, error) {
	return map[string]any{"text": stringify(v)}, nil
}

func formatText(v any) (any, error) {
	return stringify(v), nil
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
