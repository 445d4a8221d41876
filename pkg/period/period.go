package period

import (
	"fmt"
	"time"

	"github.com/hospital/dashboard/internal/platform/apperr"
)

const (
	DateLayout      = "2006-01-02"
	MonthLayout     = "2006-01"
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// DateRange holds inclusive day bounds. A nil bound is unbounded.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange validates optional YYYY-MM-DD bounds. Nil and empty strings
// are both treated as absent.
func ParseDateRange(start, end *string) (DateRange, error) {
	var r DateRange
	if s := deref(start); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return DateRange{}, apperr.Invalid("startDate %q is not a YYYY-MM-DD date", s)
		}
		r.Start = &t
	}
	if s := deref(end); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return DateRange{}, apperr.Invalid("endDate %q is not a YYYY-MM-DD date", s)
		}
		r.End = &t
	}
	return r, nil
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// MonthRange holds inclusive YYYY-MM bounds. An empty bound is unbounded.
type MonthRange struct {
	Start string
	End   string
}

// ParseMonthRange validates optional YYYY-MM bounds.
func ParseMonthRange(start, end *string) (MonthRange, error) {
	var r MonthRange
	if s := deref(start); s != "" {
		m, err := ParseMonth(s)
		if err != nil {
			return MonthRange{}, apperr.Invalid("startMonth %q is not a YYYY-MM month", s)
		}
		r.Start = m.String()
	}
	if s := deref(end); s != "" {
		m, err := ParseMonth(s)
		if err != nil {
			return MonthRange{}, apperr.Invalid("endMonth %q is not a YYYY-MM month", s)
		}
		r.End = m.String()
	}
	return r, nil
}

// PreviousYear returns the same window shifted back twelve months. Open
// bounds stay open.
func (r MonthRange) PreviousYear() (MonthRange, error) {
	var prev MonthRange
	if r.Start != "" {
		s, err := ShiftYearMonth(r.Start, -1)
		if err != nil {
			return MonthRange{}, err
		}
		prev.Start = s
	}
	if r.End != "" {
		e, err := ShiftYearMonth(r.End, -1)
		if err != nil {
			return MonthRange{}, err
		}
		prev.End = e
	}
	return prev, nil
}

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a YYYY-MM label.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// AddMonths returns the month n months later (earlier when n is negative).
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return MonthOf(t)
}

// TrailingYear is the dashboard's default window: from twelve months before
// end through end, inclusive.
func TrailingYear(end Month) MonthRange {
	return MonthRange{Start: end.AddMonths(-12).String(), End: end.String()}
}

// ShiftYearMonth moves a YYYY-MM label by whole years, keeping the month.
func ShiftYearMonth(label string, years int) (string, error) {
	m, err := ParseMonth(label)
	if err != nil {
		return "", err
	}
	m.Year += years
	return m.String(), nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTimestamp renders t as an ISO-8601 UTC timestamp with milliseconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
