package dashboard

import (
	"sort"
	"strings"

	"github.com/V4T54L/transit-complaints/internal/domain"
)

const (
	// UnknownRoute buckets records without a route number.
	UnknownRoute = "unknown"

	RouteChartLimit    = 10
	SeverityChartLimit = 8
)

// RoutePalette colours route bars by rank.
var RoutePalette = []string{
	"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#F97316", "#84CC16", "#EC4899", "#6366F1",
}

// CategoryPalette colours category slices by first-seen order.
var CategoryPalette = []string{
	"#3B82F6", "#10B981", "#F59E0B", "#EF4444",
	"#8B5CF6", "#06B6D4", "#F97316", "#84CC16",
}

// LevelColors are the fixed series colours of the severity chart.
var LevelColors = map[domain.Level]string{
	domain.LevelHigh:   "#EF4444",
	domain.LevelMedium: "#F59E0B",
	domain.LevelLow:    "#10B981",
}

type RouteCount struct {
	Route string `json:"route"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

type SeverityCount struct {
	Route  string `json:"route"`
	High   int    `json:"high"`
	Medium int    `json:"medium"`
	Low    int    `json:"low"`
}

// Total is the number of records tallied for the route.
func (s SeverityCount) Total() int { return s.High + s.Medium + s.Low }

type CategoryCount struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
	Color    string          `json:"color"`
}

// Stats is the summary card data.
type Stats struct {
	Total        int `json:"total"`
	Routes       int `json:"routes"`
	HighPriority int `json:"high_priority"`
}

func routeKey(c domain.Complaint) string {
	if strings.TrimSpace(c.RouteNumber) == "" {
		return UnknownRoute
	}
	return c.RouteNumber
}

// RouteFrequency counts records per route, orders the groups by sortBy and
// keeps the first RouteChartLimit. SortByTime keeps first-seen order.
func RouteFrequency(records []domain.Complaint, sortBy SortMode) []RouteCount {
	index := make(map[string]int)
	groups := make([]RouteCount, 0)
	for _, c := range records {
		key := routeKey(c)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, RouteCount{Route: key})
		}
		groups[i].Count++
	}

	switch sortBy {
	case SortByRoute:
		sort.SliceStable(groups, func(i, j int) bool {
			return strings.Compare(groups[i].Route, groups[j].Route) < 0
		})
	case SortByTime:
	default:
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].Count > groups[j].Count
		})
	}

	if len(groups) > RouteChartLimit {
		groups = groups[:RouteChartLimit]
	}
	for i := range groups {
		groups[i].Color = RoutePalette[i%len(RoutePalette)]
	}
	return groups
}

// SeverityByRoute tallies levels per route and keeps the SeverityChartLimit
// routes with the most records. Unknown or missing levels count as medium.
func SeverityByRoute(records []domain.Complaint) []SeverityCount {
	index := make(map[string]int)
	groups := make([]SeverityCount, 0)
	for _, c := range records {
		key := routeKey(c)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, SeverityCount{Route: key})
		}
		switch c.Level {
		case domain.LevelHigh:
			groups[i].High++
		case domain.LevelLow:
			groups[i].Low++
		default:
			groups[i].Medium++
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total() > groups[j].Total()
	})
	if len(groups) > SeverityChartLimit {
		groups = groups[:SeverityChartLimit]
	}
	return groups
}

// CategoryFrequency counts records per category in first-seen order. Empty
// and unknown categories are counted as other.
func CategoryFrequency(records []domain.Complaint) []CategoryCount {
	index := make(map[domain.Category]int)
	groups := make([]CategoryCount, 0)
	for _, c := range records {
		key := c.Category
		if !key.Known() {
			key = domain.CategoryOther
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, CategoryCount{Category: key})
		}
		groups[i].Count++
	}
	for i := range groups {
		groups[i].Color = CategoryPalette[i%len(CategoryPalette)]
	}
	return groups
}

// Summarize computes the stat cards over records.
func Summarize(records []domain.Complaint) Stats {
	routes := make(map[string]struct{})
	s := Stats{Total: len(records)}
	for _, c := range records {
		routes[routeKey(c)] = struct{}{}
		if c.Level == domain.LevelHigh {
			s.HighPriority++
		}
	}
	s.Routes = len(routes)
	return s
}
