package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/fetch"
)

const threeHundredSunsURL = "https://300sunsbrewing.com/events/"

// "Sat • Dec 6 • 6:00-8:00 PM" and the colon-free "Th • Dec 18 • 6-8 PM".
var (
	threeSunsTimedRe = regexp.MustCompile(`(?i)(\w{2,3})\s*•\s*(\w{3})\s+(\d{1,2})\s*•\s*(\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})\s*(AM|PM)`)
	threeSunsShortRe = regexp.MustCompile(`(?i)(\w{2,3})\s*•\s*(\w{3})\s+(\d{1,2})\s*•\s*(\d{1,2})-(\d{1,2})\s*(AM|PM)`)
)

// ThreeHundredSuns scrapes the 300 Suns Brewing events page in Longmont.
type ThreeHundredSuns struct {
	renderer fetch.Renderer
	url      string
}

func NewThreeHundredSuns(renderer fetch.Renderer) *ThreeHundredSuns {
	return &ThreeHundredSuns{renderer: renderer, url: threeHundredSunsURL}
}

func (s *ThreeHundredSuns) Venue() string { return "300 Suns Brewing" }

func (s *ThreeHundredSuns) Scrape(ctx context.Context) ([]*event.Event, error) {
	html, err := s.renderer.Render(ctx, s.url, fetch.RenderOptions{
		Settle:      3 * time.Second,
		Scrolls:     3,
		ScrollPause: time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", s.url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing events page: %w", err)
	}

	return s.parse(doc), nil
}

func (s *ThreeHundredSuns) parse(doc *goquery.Document) []*event.Event {
	today := event.Today()

	var events []*event.Event
	doc.Find("li[class*='wp-block-post']").Each(func(_ int, item *goquery.Selection) {
		e, eventDay := s.parseEvent(item)
		if e == nil {
			return
		}

		e.Venue = s.Venue()
		e.Location = "Longmont"
		e.Category = "Music"
		e.SourceURL = s.url
		e.Image = "300suns.jpg"
		e.AgeRestriction = "All Ages"
		e.EventTypeTags = []string{"Live Music", "Brewery", "Family Friendly"}
		e.VenueTypeTags = []string{"Brewery", "Live Music", "Family Friendly"}

		if eventDay.IsZero() || eventDay.Before(today) {
			return
		}
		events = append(events, e)
	})

	return events
}

func (s *ThreeHundredSuns) parseEvent(item *goquery.Selection) (*event.Event, time.Time) {
	titleLink := item.Find("h2.wp-block-post-title").First().Find("a").First()
	if titleLink.Length() == 0 {
		return nil, time.Time{}
	}

	title := collapsedText(titleLink)
	if title == "" {
		return nil, time.Time{}
	}

	e := &event.Event{Title: title}
	if href, ok := titleLink.Attr("href"); ok && href != "" {
		e.Link = href
	}

	var day time.Time
	if heading := item.Find("h2.wp-block-heading").First(); heading.Length() > 0 {
		e.Date, e.Time, day = parseThreeSunsDate(collapsedText(heading))
	}

	if p := item.Find("div.entry-content").First().Find("p").First(); p.Length() > 0 {
		e.Description = truncate(collapsedText(p), 300)
	}

	return e, day
}

// parseThreeSunsDate reads the brewery's bullet-separated headings. Both time
// forms carry a single trailing meridiem covering the whole range.
func parseThreeSunsDate(text string) (date, clock string, day time.Time) {
	if m := threeSunsTimedRe.FindStringSubmatch(text); m != nil {
		clock = fmt.Sprintf("%s:%s - %s:%s %s", m[4], m[5], m[6], m[7], strings.ToUpper(m[8]))
		date, day = threeSunsFullDate(m[2], m[3])
		return date, clock, day
	}

	if m := threeSunsShortRe.FindStringSubmatch(text); m != nil {
		clock = fmt.Sprintf("%s:00 - %s:00 %s", m[4], m[5], strings.ToUpper(m[6]))
		date, day = threeSunsFullDate(m[2], m[3])
		return date, clock, day
	}

	return "", "", time.Time{}
}

// threeSunsFullDate expands "Dec 6" to "December 6, 2025", rolling into next
// year when the date has already passed.
func threeSunsFullDate(monthAbbr, dayStr string) (string, time.Time) {
	month := monthAbbr
	if full, ok := fullMonths[monthAbbr]; ok {
		month = full
	}

	year := event.Today().Year()
	parsed, err := time.Parse("January 2, 2006", fmt.Sprintf("%s %s, %d", month, dayStr, year))
	if err != nil {
		return "", time.Time{}
	}
	if parsed.Before(event.Today()) {
		year++
		parsed, err = time.Parse("January 2, 2006", fmt.Sprintf("%s %s, %d", month, dayStr, year))
		if err != nil {
			return "", time.Time{}
		}
	}

	return fmt.Sprintf("%s %s, %d", month, dayStr, year), parsed
}
