package dashboard

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/V4T54L/transit-complaints/internal/i18n"
)

func TestBuildView(t *testing.T) {
	updated := time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC)
	v := BuildView(ViewInput{
		Records:     sampleRecords(),
		LastUpdated: updated,
		Filter:      DefaultFilter(),
		Language:    domain.LanguageKazakh,
	})

	if v.Language != domain.LanguageKazakh {
		t.Errorf("language = %q", v.Language)
	}
	if v.Title != i18n.T(domain.LanguageKazakh, i18n.KeyTitle) {
		t.Errorf("title not localised: %q", v.Title)
	}
	if v.LastUpdated == nil || !v.LastUpdated.Equal(updated) {
		t.Errorf("last updated = %v", v.LastUpdated)
	}
	if v.Matched != 4 || v.Stats[0].Value != 4 || v.Stats[2].Value != 2 {
		t.Errorf("unexpected stats: matched=%d %+v", v.Matched, v.Stats)
	}
	if len(v.Routes.Bars) != 4 || v.Routes.Empty != "" {
		t.Fatalf("unexpected route chart: %+v", v.Routes)
	}
	if len(v.Levels.Series) != 3 || v.Levels.Series[0].Label != i18n.T(domain.LanguageKazakh, i18n.KeyHigh) {
		t.Errorf("unexpected level series: %+v", v.Levels.Series)
	}

	unknown := i18n.T(domain.LanguageKazakh, i18n.KeyUnknown)
	var sawUnknown bool
	for _, b := range v.Routes.Bars {
		if b.Route == UnknownRoute {
			sawUnknown = true
			if !strings.HasSuffix(b.Label, unknown) {
				t.Errorf("unknown route label = %q", b.Label)
			}
		}
	}
	if !sawUnknown {
		t.Error("expected an unknown route bar")
	}

	var total float64
	for _, s := range v.Categories.Slices {
		total += s.Percent
		if s.Label == "" {
			t.Errorf("empty label for %q", s.Category)
		}
	}
	if total < 99.9 || total > 100.1 {
		t.Errorf("category percentages sum to %v", total)
	}
}

func TestBuildView_Empty(t *testing.T) {
	v := BuildView(ViewInput{Loading: true, Filter: DefaultFilter(), Language: "de"})

	if v.Language != i18n.DefaultLanguage {
		t.Errorf("unsupported language should fall back, got %q", v.Language)
	}
	if !v.Loading || v.LastUpdated != nil {
		t.Errorf("unexpected status: loading=%v last=%v", v.Loading, v.LastUpdated)
	}
	noData := i18n.T(i18n.DefaultLanguage, i18n.KeyNoData)
	if v.Routes.Empty != noData || v.Levels.Empty != noData || v.Categories.Empty != noData {
		t.Errorf("expected no-data placeholders")
	}

	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(body), `"bars":null`) || strings.Contains(string(body), `"slices":null`) {
		t.Errorf("empty charts should encode as arrays: %s", body)
	}
}
