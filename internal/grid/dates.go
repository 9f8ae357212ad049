package grid

import (
	"strings"
	"time"
)

// StorageDateLayout is the canonical storage and display format for
// effectiveDate values (MM/dd/yyyy).
const StorageDateLayout = "01/02/2006"

// isoDateLayouts are accepted on input in addition to StorageDateLayout.
var isoDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 or MM/dd/yyyy date string.
// Returns ok=false for empty or unparseable input; never errors.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(StorageDateLayout, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatDateForStorage renders a date in the canonical MM/dd/yyyy form.
func FormatDateForStorage(t time.Time) string {
	return t.Format(StorageDateLayout)
}

// FormatDateForDisplay normalizes a stored date string for display.
// Unparseable input is returned unchanged rather than propagated as an
// error; the grid shows whatever the record holds.
func FormatDateForDisplay(s string) string {
	if s == "" {
		return ""
	}
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return FormatDateForStorage(t)
}
