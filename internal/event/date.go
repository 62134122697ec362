package event

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// NormalizedLayout is the timestamp format stored in normalized_date fields.
const NormalizedLayout = "2006-01-02T15:04:05"

// datePattern pairs a regexp that locates a date inside free text with the
// layouts that parse the matched text.
type datePattern struct {
	re      *regexp.Regexp
	layouts []string
	hasYear bool
}

// datePatterns are tried in order; the first regexp hit that also parses wins.
// Order matters: the weekday form must run before the bare month-day form or
// "Friday, November 7, 2025" would match as "November 7" and lose its year.
var datePatterns = []datePattern{
	{
		re:      regexp.MustCompile(`(?i)\w+day,\s+\w+\s+\d{1,2}(?:st|nd|rd|th)?,\s+\d{4}`),
		layouts: []string{"Monday, January 2, 2006", "Monday, Jan 2, 2006"},
		hasYear: true,
	},
	{
		re:      regexp.MustCompile(`(?i)\w+\s+\d{1,2}(?:st|nd|rd|th)?,\s+\d{4}`),
		layouts: []string{"January 2, 2006", "Jan 2, 2006"},
		hasYear: true,
	},
	{
		re:      regexp.MustCompile(`(?i)\w+\s+\d{1,2}(?:st|nd|rd|th)?`),
		layouts: []string{"January 2", "Jan 2"},
	},
	{
		re:      regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
		layouts: []string{"1/2/2006"},
		hasYear: true,
	},
}

var ordinalSuffix = regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)\b`)

// NormalizeDate extracts a date from free text and returns it in
// NormalizedLayout form (a midnight timestamp). The date may appear anywhere
// in the text; ordinal suffixes and mixed case are accepted. Dates without a
// year get the current Denver year, rolled to the next year when the
// resulting day has already passed: a "December 14" listing scraped in
// January means next December, not last. Returns false when no date can be
// extracted.
func NormalizeDate(text string) (string, bool) {
	t, ok := parseDate(text)
	if !ok {
		return "", false
	}
	return t.Format(NormalizedLayout), true
}

// ParseDay extracts a date from free text as a UTC midnight time value,
// applying the same rules as NormalizeDate.
func ParseDay(text string) (time.Time, bool) {
	return parseDate(text)
}

func parseDate(text string) (time.Time, bool) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, false
	}

	for _, p := range datePatterns {
		match := p.re.FindString(text)
		if match == "" {
			continue
		}
		candidate := titleCaseWords(ordinalSuffix.ReplaceAllString(match, "$1"))

		for _, layout := range p.layouts {
			t, err := time.Parse(layout, candidate)
			if err != nil {
				continue
			}
			if !p.hasYear {
				today := Today()
				t = time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
				if t.Before(today) {
					t = t.AddDate(1, 0, 0)
				}
			}
			return t, true
		}
	}

	return time.Time{}, false
}

// titleCaseWords uppercases the first letter of each word and lowercases the
// rest, so "DECEMBER 11" and "december 11" both satisfy time.Parse's
// case-sensitive month and weekday names.
func titleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// ParseNormalized parses a normalized_date value back into a time. Date-only
// values are accepted: files written by earlier versions of the per-venue
// scrapers stored "2025-12-14" without the time part.
func ParseNormalized(s string) (time.Time, bool) {
	t, err := time.Parse(NormalizedLayout, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, false
		}
	}
	return t, true
}

// IsPast reports whether the date text resolves to a day strictly before
// today in Denver. Unparseable or empty dates are never past: an event that
// can't be dated is kept rather than silently dropped. Today's events are
// not past.
func IsPast(text string) bool {
	t, ok := parseDate(text)
	if !ok {
		return false
	}
	return t.Before(Today())
}

// FormatClock12 renders a 24-hour clock reading as "H:MM AM" / "H:MM PM".
func FormatClock12(hour, minute int) string {
	suffix := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		hour -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}
