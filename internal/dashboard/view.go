package dashboard

import (
	"math"
	"time"

	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/V4T54L/transit-complaints/internal/i18n"
)

// ViewInput is the poller state a view is built from.
type ViewInput struct {
	Records     []domain.Complaint
	Loading     bool
	LastUpdated time.Time
	Filter      Filter
	Language    domain.Language
}

// View is the dashboard document served to clients. Every label is already
// localised.
type View struct {
	Language    domain.Language `json:"language"`
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle"`
	Updating    string          `json:"updating"`
	Loading     bool            `json:"loading"`
	LastUpdated *time.Time      `json:"last_updated,omitempty"`
	Filter      Filter          `json:"filter"`
	Matched     int             `json:"matched"`
	Stats       []StatCard      `json:"stats"`
	Routes      RouteChart      `json:"routes"`
	Levels      LevelChart      `json:"levels"`
	Categories  CategoryChart   `json:"categories"`
}

type StatCard struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Value int    `json:"value"`
}

type RouteChart struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ValueLabel  string     `json:"value_label"`
	Empty       string     `json:"empty,omitempty"`
	Bars        []RouteBar `json:"bars"`
}

type RouteBar struct {
	RouteCount
	Label string `json:"label"`
}

type LevelChart struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Empty       string        `json:"empty,omitempty"`
	Series      []LevelSeries `json:"series"`
	Bars        []LevelBar    `json:"bars"`
}

type LevelSeries struct {
	Level domain.Level `json:"level"`
	Label string       `json:"label"`
	Color string       `json:"color"`
}

type LevelBar struct {
	SeverityCount
	Label string `json:"label"`
	Total int    `json:"total"`
}

type CategoryChart struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Empty       string          `json:"empty,omitempty"`
	Slices      []CategorySlice `json:"slices"`
}

type CategorySlice struct {
	CategoryCount
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// BuildView filters in.Records and derives every chart from the filtered set.
func BuildView(in ViewInput) View {
	lang := in.Language
	if _, ok := i18n.ParseLanguage(string(lang)); !ok {
		lang = i18n.DefaultLanguage
	}
	t := func(k i18n.Key) string { return i18n.T(lang, k) }

	filtered := Apply(in.Records, in.Filter)
	stats := Summarize(filtered)

	v := View{
		Language: lang,
		Title:    t(i18n.KeyTitle),
		Subtitle: t(i18n.KeySubtitle),
		Updating: t(i18n.KeyUpdating),
		Loading:  in.Loading,
		Filter:   in.Filter,
		Matched:  len(filtered),
		Stats: []StatCard{
			{Key: "total", Title: t(i18n.KeyTotalComplaints), Value: stats.Total},
			{Key: "routes", Title: t(i18n.KeyRoutesWithComplaints), Value: stats.Routes},
			{Key: "high_priority", Title: t(i18n.KeyHighPriority), Value: stats.HighPriority},
		},
	}
	if !in.LastUpdated.IsZero() {
		ts := in.LastUpdated
		v.LastUpdated = &ts
	}

	v.Routes = RouteChart{
		Title:       t(i18n.KeyProblematicRoutes),
		Description: t(i18n.KeyTopRoutes),
		ValueLabel:  t(i18n.KeyComplaintsCount),
		Bars:        make([]RouteBar, 0),
	}
	for _, rc := range RouteFrequency(filtered, in.Filter.SortBy) {
		v.Routes.Bars = append(v.Routes.Bars, RouteBar{
			RouteCount: rc,
			Label:      t(i18n.KeyRoute) + " " + routeLabel(lang, rc.Route),
		})
	}

	v.Levels = LevelChart{
		Title:       t(i18n.KeyLevelDistribution),
		Description: t(i18n.KeyLevelStackChart),
		Bars:        make([]LevelBar, 0),
	}
	for _, l := range domain.Levels {
		v.Levels.Series = append(v.Levels.Series, LevelSeries{
			Level: l,
			Label: t(i18n.LevelKey(l)),
			Color: LevelColors[l],
		})
	}
	for _, sc := range SeverityByRoute(filtered) {
		v.Levels.Bars = append(v.Levels.Bars, LevelBar{
			SeverityCount: sc,
			Label:         "№" + routeLabel(lang, sc.Route),
			Total:         sc.Total(),
		})
	}

	v.Categories = CategoryChart{
		Title:       t(i18n.KeyCategoryFrequency),
		Description: t(i18n.KeyCategoryDistribution),
		Slices:      make([]CategorySlice, 0),
	}
	for _, cc := range CategoryFrequency(filtered) {
		v.Categories.Slices = append(v.Categories.Slices, CategorySlice{
			CategoryCount: cc,
			Label:         t(i18n.CategoryKey(cc.Category)),
			Percent:       percent(cc.Count, len(filtered)),
		})
	}

	if len(filtered) == 0 {
		empty := t(i18n.KeyNoData)
		v.Routes.Empty = empty
		v.Levels.Empty = empty
		v.Categories.Empty = empty
	}
	return v
}

func routeLabel(lang domain.Language, route string) string {
	if route == UnknownRoute {
		return i18n.T(lang, i18n.KeyUnknown)
	}
	return route
}

// percent rounds part/total to one decimal place.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(total)) / 10
}
