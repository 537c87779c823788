// Package i18n holds the dashboards' pluralized text and locale-aware
// date formatting. UI text is English; the request locale only picks the
// date layout.
package i18n

import (
	"net/http"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. Each is also the fallback format string.
const (
	KeyPendingSummary = "You have %d pending items that need attention."
	KeyMenteeCount    = "%d active mentees"
	KeyRequestCount   = "%d pending requests"
)

var texts = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(key string, msg catalog.Message) {
		if err := b.Set(language.English, key, msg); err != nil {
			panic("i18n: " + err.Error())
		}
	}
	set(KeyPendingSummary, plural.Selectf(1, "%d",
		"=1", "You have 1 pending item that needs attention.",
		"other", "You have %[1]d pending items that need attention."))
	set(KeyMenteeCount, plural.Selectf(1, "%d",
		"=1", "1 active mentee",
		"other", "%[1]d active mentees"))
	set(KeyRequestCount, plural.Selectf(1, "%d",
		"=1", "1 pending request",
		"other", "%[1]d pending requests"))
	return b
}

// Sprintf formats key with args, applying plural rules.
func Sprintf(key string, args ...any) string {
	return message.NewPrinter(language.English, message.Catalog(texts)).Sprintf(key, args...)
}

// PendingSummary is the admin dashboard's one-line pending total.
func PendingSummary(total int64) string {
	return Sprintf(KeyPendingSummary, total)
}

var titleCaser = cases.Title(language.English)

// Title title-cases s ("sponsor" → "Sponsor").
func Title(s string) string {
	return titleCaser.String(s)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Dates                                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

var supported = []language.Tag{
	language.AmericanEnglish, // default
	language.BritishEnglish,
	language.German,
	language.French,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

var dateTimeLayouts = map[language.Tag]string{
	language.AmericanEnglish: "Jan 2, 2006, 3:04 PM",
	language.BritishEnglish:  "2 Jan 2006, 15:04",
	language.German:          "02.01.2006, 15:04",
	language.French:          "02/01/2006 15:04",
	language.Spanish:         "02/01/2006, 15:04",
}

// Locale picks the best supported locale for the request's
// Accept-Language header, defaulting to en-US.
func Locale(r *http.Request) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return language.AmericanEnglish
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.AmericanEnglish
	}
	return supported[idx]
}

// FormatDateTime renders t as a date and time in the given locale. A zero
// time renders as the empty string.
func FormatDateTime(t time.Time, tag language.Tag) string {
	if t.IsZero() {
		return ""
	}
	layout, ok := dateTimeLayouts[tag]
	if !ok {
		layout = dateTimeLayouts[language.AmericanEnglish]
	}
	return t.Format(layout)
}
