// Package dashboard derives the operator dashboard from a list of complaint
// records: the filtered view, chart series and summary statistics. Every
// function here is pure and recomputes from scratch on each call.
package dashboard

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/V4T54L/transit-complaints/internal/domain"
)

// FilterAll disables the category or level filter.
const FilterAll = "all"

// dateLayout is the format of the from/to query parameters.
const dateLayout = "2006-01-02"

// SortMode orders the route frequency chart.
type SortMode string

const (
	SortByCount SortMode = "count"
	SortByRoute SortMode = "route"
	SortByTime  SortMode = "time"
)

var (
	ErrUnknownSortMode = errors.New("unknown sort mode")
	ErrInvalidDate     = errors.New("invalid date")
)

// Filter selects records for the dashboard. From and To are calendar dates;
// the date range is active only when From is set.
type Filter struct {
	Category    string     `json:"category"`
	Level       string     `json:"level"`
	SearchRoute string     `json:"route"`
	From        *time.Time `json:"from,omitempty"`
	To          *time.Time `json:"to,omitempty"`
	SortBy      SortMode   `json:"sort"`
}

// DefaultFilter is the filter after a reset: everything selected, sorted by count.
func DefaultFilter() Filter {
	return Filter{Category: FilterAll, Level: FilterAll, SortBy: SortByCount}
}

// ParseFilter reads a filter from query parameters category, level, route,
// from, to and sort. Missing parameters keep their DefaultFilter values.
func ParseFilter(q url.Values) (Filter, error) {
	f := DefaultFilter()
	if v := strings.TrimSpace(q.Get("category")); v != "" {
		f.Category = v
	}
	if v := strings.TrimSpace(q.Get("level")); v != "" {
		f.Level = v
	}
	f.SearchRoute = q.Get("route")

	if v := q.Get("sort"); v != "" {
		switch mode := SortMode(v); mode {
		case SortByCount, SortByRoute, SortByTime:
			f.SortBy = mode
		default:
			return f, fmt.Errorf("%w: %q", ErrUnknownSortMode, v)
		}
	}

	from, err := parseDateParam(q.Get("from"))
	if err != nil {
		return f, err
	}
	to, err := parseDateParam(q.Get("to"))
	if err != nil {
		return f, err
	}
	if to != nil && from == nil {
		return f, fmt.Errorf("%w: to requires from", ErrInvalidDate)
	}
	if from != nil && to != nil && to.Before(*from) {
		return f, fmt.Errorf("%w: to is before from", ErrInvalidDate)
	}
	f.From, f.To = from, to
	return f, nil
}

func parseDateParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, v)
	}
	return &t, nil
}

// Matches reports whether c passes every active predicate.
func (f Filter) Matches(c domain.Complaint) bool {
	if f.Category != "" && f.Category != FilterAll && string(c.Category) != f.Category {
		return false
	}
	if f.Level != "" && f.Level != FilterAll && string(c.Level) != f.Level {
		return false
	}
	if f.SearchRoute != "" && !strings.Contains(c.RouteNumber, f.SearchRoute) {
		return false
	}
	if f.From != nil {
		t, ok := ParseRecordTime(c.Time)
		if !ok {
			return false
		}
		to := f.From
		if f.To != nil {
			to = f.To
		}
		day := civilDay(t)
		if day < civilDay(*f.From) || day > civilDay(*to) {
			return false
		}
	}
	return true
}

// Apply returns the records matching f, in input order. The input is not
// modified; the result is never nil.
func Apply(records []domain.Complaint, f Filter) []domain.Complaint {
	out := make([]domain.Complaint, 0, len(records))
	for _, c := range records {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

var recordTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	dateLayout,
}

// ParseRecordTime parses a record's time field. Time-of-day-only values such
// as "07:55" carry no date and are rejected.
func ParseRecordTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range recordTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// civilDay encodes the calendar date of t, in t's own location, as yyyymmdd.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
