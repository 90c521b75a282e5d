// Package history answers admin queries over the borrow/return ledger.
package history

import (
	"strings"
	"time"

	"librarian/internal/apperr"
)

// TypeBorrow selects open borrows. Any other non-empty type selects returned ones.
const TypeBorrow = "borrow"

const dateLayout = "2006-01-02"

// Filter narrows a search. Zero-valued fields do not filter.
type Filter struct {
	UserID    *int64
	Email     string
	BookTitle string
	Type      string
	Date      *time.Time
}

func (f Filter) openOnly() bool {
	return strings.EqualFold(strings.TrimSpace(f.Type), TypeBorrow)
}

func (f Filter) returnedOnly() bool {
	t := strings.TrimSpace(f.Type)
	return t != "" && !strings.EqualFold(t, TypeBorrow)
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 and returns the UTC start of that day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, apperr.Validation("date must be YYYY-MM-DD")
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func dayRange(d time.Time) (time.Time, time.Time) {
	y, m, day := d.Date()
	start := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
