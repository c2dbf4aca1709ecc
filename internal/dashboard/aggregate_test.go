package dashboard

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/V4T54L/transit-complaints/internal/domain"
)

func routes(names ...string) []domain.Complaint {
	out := make([]domain.Complaint, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Complaint{RouteNumber: n})
	}
	return out
}

func TestRouteFrequency(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.Complaint
		sortBy  SortMode
		want    []RouteCount
	}{
		{
			name:    "Count descending",
			records: routes("12", "12", "5"),
			sortBy:  SortByCount,
			want: []RouteCount{
				{Route: "12", Count: 2, Color: RoutePalette[0]},
				{Route: "5", Count: 1, Color: RoutePalette[1]},
			},
		},
		{
			name:    "Ties keep first-seen order",
			records: routes("7", "3", "3", "7", "1"),
			sortBy:  SortByCount,
			want: []RouteCount{
				{Route: "7", Count: 2, Color: RoutePalette[0]},
				{Route: "3", Count: 2, Color: RoutePalette[1]},
				{Route: "1", Count: 1, Color: RoutePalette[2]},
			},
		},
		{
			name:    "Route is lexicographic",
			records: routes("5", "12", "100"),
			sortBy:  SortByRoute,
			want: []RouteCount{
				{Route: "100", Count: 1, Color: RoutePalette[0]},
				{Route: "12", Count: 1, Color: RoutePalette[1]},
				{Route: "5", Count: 1, Color: RoutePalette[2]},
			},
		},
		{
			name:    "Time keeps first-seen order",
			records: routes("5", "12", "12"),
			sortBy:  SortByTime,
			want: []RouteCount{
				{Route: "5", Count: 1, Color: RoutePalette[0]},
				{Route: "12", Count: 2, Color: RoutePalette[1]},
			},
		},
		{
			name:    "Missing route is unknown",
			records: routes("", " ", "3"),
			sortBy:  SortByCount,
			want: []RouteCount{
				{Route: UnknownRoute, Count: 2, Color: RoutePalette[0]},
				{Route: "3", Count: 1, Color: RoutePalette[1]},
			},
		},
		{
			name:    "No records",
			records: nil,
			sortBy:  SortByCount,
			want:    []RouteCount{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RouteFrequency(tt.records, tt.sortBy)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RouteFrequency() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRouteFrequency_Truncates(t *testing.T) {
	var names []string
	for i := 0; i < 15; i++ {
		for j := 0; j <= i; j++ {
			names = append(names, fmt.Sprint(i))
		}
	}
	got := RouteFrequency(routes(names...), SortByCount)
	if len(got) != RouteChartLimit {
		t.Fatalf("expected %d groups, got %d", RouteChartLimit, len(got))
	}
	if got[0].Route != "14" || got[0].Count != 15 {
		t.Errorf("top route = %+v, want 14 with 15", got[0])
	}
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Errorf("not sorted at %d: %d > %d", i, got[i].Count, got[i-1].Count)
		}
	}
}

func TestSeverityByRoute(t *testing.T) {
	records := []domain.Complaint{
		{RouteNumber: "5", Level: domain.LevelHigh},
		{RouteNumber: "5", Level: domain.LevelHigh},
		{RouteNumber: "5", Level: domain.LevelLow},
		{RouteNumber: "9", Level: ""},
		{RouteNumber: "9", Level: "critical"},
		{RouteNumber: "9", Level: domain.LevelMedium},
		{RouteNumber: "9", Level: domain.LevelLow},
		{RouteNumber: "3", Level: domain.LevelLow},
	}
	want := []SeverityCount{
		{Route: "9", High: 0, Medium: 3, Low: 1},
		{Route: "5", High: 2, Medium: 0, Low: 1},
		{Route: "3", High: 0, Medium: 0, Low: 1},
	}
	got := SeverityByRoute(records)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SeverityByRoute() = %+v, want %+v", got, want)
	}
}

func TestSeverityByRoute_Truncates(t *testing.T) {
	var names []string
	for i := 0; i < 12; i++ {
		names = append(names, fmt.Sprint(i))
	}
	got := SeverityByRoute(routes(names...))
	if len(got) != SeverityChartLimit {
		t.Fatalf("expected %d routes, got %d", SeverityChartLimit, len(got))
	}
	if got[0].Route != "0" || got[7].Route != "7" {
		t.Errorf("stable order lost: first %q last %q", got[0].Route, got[7].Route)
	}
}

func TestCategoryFrequency(t *testing.T) {
	records := []domain.Complaint{
		{Category: domain.CategorySafetyIssue},
		{Category: domain.CategoryDelay},
		{Category: ""},
		{Category: "graffiti"},
		{Category: domain.CategoryDelay},
	}
	want := []CategoryCount{
		{Category: domain.CategorySafetyIssue, Count: 1, Color: CategoryPalette[0]},
		{Category: domain.CategoryDelay, Count: 2, Color: CategoryPalette[1]},
		{Category: domain.CategoryOther, Count: 2, Color: CategoryPalette[2]},
	}
	got := CategoryFrequency(records)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryFrequency() = %+v, want %+v", got, want)
	}
}

func TestCategoryFrequency_CountsIndependentOfOrder(t *testing.T) {
	records := []domain.Complaint{
		{Category: domain.CategoryDelay},
		{Category: domain.CategoryOvercrowding},
		{Category: domain.CategoryDelay},
	}
	reversed := []domain.Complaint{records[2], records[1], records[0]}

	counts := func(in []CategoryCount) map[domain.Category]int {
		m := make(map[domain.Category]int)
		for _, c := range in {
			m[c.Category] = c.Count
		}
		return m
	}
	a, b := counts(CategoryFrequency(records)), counts(CategoryFrequency(reversed))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("counts differ by order: %v vs %v", a, b)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.Complaint
		want    Stats
	}{
		{
			name:    "No records",
			records: nil,
			want:    Stats{},
		},
		{
			name:    "Mixed",
			records: sampleRecords(),
			want:    Stats{Total: 4, Routes: 4, HighPriority: 2},
		},
		{
			name: "Repeated routes count once",
			records: []domain.Complaint{
				{RouteNumber: "12", Level: domain.LevelHigh},
				{RouteNumber: "12", Level: domain.LevelLow},
			},
			want: Stats{Total: 2, Routes: 1, HighPriority: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.records); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
