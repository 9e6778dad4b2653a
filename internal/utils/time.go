package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// dateLayouts covers the formats seen in ORGA sheets: ISO dates, the German
// dotted form, and the short US forms excelize produces for styled date cells.
var dateLayouts = []string{
	layoutDate,
	"02.01.2006",
	"02.01.06",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"2 Jan 2006",
	"2 Jan 06",
}

// ParseCellDate parses a spreadsheet cell into a date, or false when the cell
// holds no recognizable date. The result is truncated to midnight UTC so date
// arithmetic stays day-exact.
func ParseCellDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}
