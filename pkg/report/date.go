// pkg/report/date.go
package report

import (
	"strings"
	"time"

	"github.com/advancementlab/donorpipe/pkg/model"
)

// DateFormats is the fixed priority order for parsing report dates.
// The first format that fully matches wins. The try-order is a
// documented contract: the two-digit-year form is ambiguous (Go maps
// years 69-99 to the 1900s) and intentionally left that way pending a
// product decision, so reordering or "fixing" it is a functional
// change, not a refactor.
var DateFormats = []string{
	"01/02/06",   // MM/DD/YY
	"2006-01-02", // YYYY-MM-DD
	"2006/01/02", // YYYY/MM/DD
}

// ParseDate attempts each format in DateFormats in order and returns
// the first full match. Returns ok=false if no format matches.
func ParseDate(text string) (time.Time, bool) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, format := range DateFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthOf maps a date to its month name in the fixed calendar order,
// so "month <= endPeriod" comparisons follow true calendar order
// rather than lexical order
func MonthOf(t time.Time) string {
	return model.MonthNames[int(t.Month())-1]
}
