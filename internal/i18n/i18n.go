// Package i18n holds the UI and API strings in every supported language.
//
// Keys form a closed enumeration and every language table is a fixed-size
// array indexed by Key, so a table can never contain an unknown key. Missing
// entries are caught when the package loads: an incomplete table panics in
// init instead of silently falling back to the key name at runtime.
package i18n

import (
	"fmt"
	"strings"

	"github.com/V4T54L/transit-complaints/internal/domain"
)

// Key identifies a translatable string.
type Key int

const (
	KeyTitle Key = iota
	KeySubtitle
	KeyUpdating
	KeyTotalComplaints
	KeyRoutesWithComplaints
	KeyHighPriority
	KeyProblematicRoutes
	KeyTopRoutes
	KeyLevelDistribution
	KeyLevelStackChart
	KeyCategoryFrequency
	KeyCategoryDistribution
	KeyHigh
	KeyMedium
	KeyLow
	KeyDelay
	KeySafetyIssue
	KeyCleanliness
	KeyDriverBehavior
	KeyTechnicalIssue
	KeyOvercrowding
	KeyRouteIssue
	KeyOther
	KeyRoute
	KeyBus
	KeyUnknown
	KeyComplaintsCount
	KeyNoData
	KeyErrorLoading
	KeyErrorMessage
	KeyFetchFailed
	KeyComplaintAccepted
	KeyComplaintTextRequired
	KeyComplaintProcessingFailed
	KeyInvalidRequest
	KeyPayloadTooLarge
	KeyQRParseError
	KeyThankYou
	KeyTheme
	KeyLanguage
	KeyLight
	KeyDark
	KeySystem

	keyCount
)

var keyNames = [keyCount]string{
	KeyTitle:                     "title",
	KeySubtitle:                  "subtitle",
	KeyUpdating:                  "updating",
	KeyTotalComplaints:           "totalComplaints",
	KeyRoutesWithComplaints:      "routesWithComplaints",
	KeyHighPriority:              "highPriority",
	KeyProblematicRoutes:         "problematicRoutes",
	KeyTopRoutes:                 "topRoutes",
	KeyLevelDistribution:         "levelDistribution",
	KeyLevelStackChart:           "levelStackChart",
	KeyCategoryFrequency:         "categoryFrequency",
	KeyCategoryDistribution:      "categoryDistribution",
	KeyHigh:                      "high",
	KeyMedium:                    "medium",
	KeyLow:                       "low",
	KeyDelay:                     "delay",
	KeySafetyIssue:               "safety_issue",
	KeyCleanliness:               "cleanliness",
	KeyDriverBehavior:            "driver_behavior",
	KeyTechnicalIssue:            "technical_issue",
	KeyOvercrowding:              "overcrowding",
	KeyRouteIssue:                "route_issue",
	KeyOther:                     "other",
	KeyRoute:                     "route",
	KeyBus:                       "bus",
	KeyUnknown:                   "unknown",
	KeyComplaintsCount:           "complaintsCount",
	KeyNoData:                    "noData",
	KeyErrorLoading:              "errorLoading",
	KeyErrorMessage:              "errorMessage",
	KeyFetchFailed:               "fetchFailed",
	KeyComplaintAccepted:         "complaintAccepted",
	KeyComplaintTextRequired:     "complaintTextRequired",
	KeyComplaintProcessingFailed: "complaintProcessingFailed",
	KeyInvalidRequest:            "invalidRequest",
	KeyPayloadTooLarge:           "payloadTooLarge",
	KeyQRParseError:              "qrParseError",
	KeyThankYou:                  "thankYou",
	KeyTheme:                     "theme",
	KeyLanguage:                  "language",
	KeyLight:                     "light",
	KeyDark:                      "dark",
	KeySystem:                    "system",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

type table [keyCount]string

// DefaultLanguage is used when nothing else selects a language.
const DefaultLanguage = domain.LanguageRussian

// Languages lists the supported languages.
var Languages = []domain.Language{domain.LanguageRussian, domain.LanguageKazakh}

var tables = map[domain.Language]*table{
	domain.LanguageRussian: &russian,
	domain.LanguageKazakh:  &kazakh,
}

var examples = map[domain.Language][]string{
	domain.LanguageRussian: russianExamples,
	domain.LanguageKazakh:  kazakhExamples,
}

func init() {
	if err := Validate(); err != nil {
		panic(err)
	}
}

// Validate checks that every key has a name and every language a non-empty
// entry for every key.
func Validate() error {
	var missing []string
	for k := Key(0); k < keyCount; k++ {
		if keyNames[k] == "" {
			missing = append(missing, fmt.Sprintf("name for key %d", int(k)))
		}
	}
	for _, lang := range Languages {
		t, ok := tables[lang]
		if !ok {
			missing = append(missing, fmt.Sprintf("table for %s", lang))
			continue
		}
		for k := Key(0); k < keyCount; k++ {
			if strings.TrimSpace(t[k]) == "" {
				missing = append(missing, fmt.Sprintf("%s.%s", lang, k))
			}
		}
		if len(examples[lang]) == 0 {
			missing = append(missing, fmt.Sprintf("%s examples", lang))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("i18n: incomplete translations: %s", strings.Join(missing, ", "))
	}
	return nil
}

// T returns the text for key in lang. Unsupported languages use DefaultLanguage.
func T(lang domain.Language, key Key) string {
	t, ok := tables[lang]
	if !ok {
		t = tables[DefaultLanguage]
	}
	if key < 0 || key >= keyCount {
		return ""
	}
	return t[key]
}

// Examples returns the sample complaint texts offered to citizens.
func Examples(lang domain.Language) []string {
	ex, ok := examples[lang]
	if !ok {
		ex = examples[DefaultLanguage]
	}
	out := make([]string, len(ex))
	copy(out, ex)
	return out
}

// ParseLanguage accepts a bare or regional language tag ("kk", "ru-RU").
func ParseLanguage(s string) (domain.Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i >= 0 {
		s = s[:i]
	}
	lang := domain.Language(s)
	if _, ok := tables[lang]; ok {
		return lang, true
	}
	return "", false
}

// FromAcceptLanguage returns the first supported language of an
// Accept-Language header, in the order the client listed them.
func FromAcceptLanguage(header string) (domain.Language, bool) {
	for _, part := range strings.Split(header, ",") {
		tag := part
		if i := strings.IndexByte(tag, ';'); i >= 0 {
			tag = tag[:i]
		}
		if lang, ok := ParseLanguage(tag); ok {
			return lang, true
		}
	}
	return "", false
}

// CategoryKey maps a category to its label key. Unknown categories map to KeyOther.
func CategoryKey(c domain.Category) Key {
	switch c {
	case domain.CategoryDelay:
		return KeyDelay
	case domain.CategorySafetyIssue:
		return KeySafetyIssue
	case domain.CategoryCleanliness:
		return KeyCleanliness
	case domain.CategoryDriverBehavior:
		return KeyDriverBehavior
	case domain.CategoryTechnicalIssue:
		return KeyTechnicalIssue
	case domain.CategoryOvercrowding:
		return KeyOvercrowding
	case domain.CategoryRouteIssue:
		return KeyRouteIssue
	default:
		return KeyOther
	}
}

// LevelKey maps a severity level to its label key. Unknown levels map to KeyMedium.
func LevelKey(l domain.Level) Key {
	switch l {
	case domain.LevelHigh:
		return KeyHigh
	case domain.LevelLow:
		return KeyLow
	default:
		return KeyMedium
	}
}
