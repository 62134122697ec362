package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Class-attribute patterns shared across venue pages.
var (
	dateClassRe      = regexp.MustCompile(`(?i)date|time|when`)
	timeClassRe      = regexp.MustCompile(`(?i)time`)
	descClassRe      = regexp.MustCompile(`(?i)desc|excerpt|summary|content`)
	titleClassRe     = regexp.MustCompile(`(?i)title|name|heading`)
	linkTitleClassRe = regexp.MustCompile(`(?i)title|name`)
)

// fullMonths expands the three-letter month abbreviations venue sites print
// into the full names the date parser understands.
var fullMonths = map[string]string{
	"Jan": "January", "Feb": "February", "Mar": "March",
	"Apr": "April", "May": "May", "Jun": "June",
	"Jul": "July", "Aug": "August", "Sep": "September",
	"Oct": "October", "Nov": "November", "Dec": "December",
}

// findEvents tries each selector in turn and returns the first that matches
// anything. Returns nil when no selector matches, so callers can fall back to
// looser heuristics.
func findEvents(doc *goquery.Document, selectors ...string) *goquery.Selection {
	for _, sel := range selectors {
		found := doc.Find(sel)
		if found.Length() > 0 {
			return found
		}
	}
	return nil
}

// findByClass returns the first descendant among tags whose class attribute
// matches re, in document order.
func findByClass(sel *goquery.Selection, tags string, re *regexp.Regexp) *goquery.Selection {
	return sel.Find(tags).FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return re.MatchString(class)
	}).First()
}

// collapsedText returns the selection's text with all whitespace runs
// collapsed to single spaces.
func collapsedText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// absURL resolves href against base. Already-absolute links pass through.
func absURL(base, href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return base + href
}

// truncate caps s at n characters, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
