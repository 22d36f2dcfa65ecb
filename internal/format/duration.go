package format

import (
	"regexp"
	"strconv"
	"strings"
)

var durationPattern = regexp.MustCompile(`(?i)^\s*(?:(\d+)\s*h)?\s*(?:(\d+)\s*m)?\s*$`)

// DurationMinutes converts "Hh Mm" text (e.g. "2h 30m") into total
// minutes as a stringified number. Unparsable input deliberately falls
// back to "0" rather than failing the row.
func DurationMinutes(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		s = stringify(v)
	}
	m := durationPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || (m[1] == "" && m[2] == "") {
		return "0", nil
	}
	total := 0
	if m[1] != "" {
		h, _ := strconv.Atoi(m[1])
		total += h * 60
	}
	if m[2] != "" {
		mins, _ := strconv.Atoi(m[2])
		total += mins
	}
	return strconv.Itoa(total), nil
}
