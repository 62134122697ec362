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

const rosettaHallURL = "https://rosettahall.com/live-music/"

// "thursday december 11th, 10 pm"
var rosettaDateTimeRe = regexp.MustCompile(`(?i)(\w+day)\s+(\w+)\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{1,2}(?::\d{2})?)\s*(am|pm)`)

// RosettaHall scrapes the food hall's live music schedule. The page is built
// from Elementor widgets: each show is an h2 heading followed by two text
// widgets holding the genre and the date line.
type RosettaHall struct {
	renderer fetch.Renderer
	url      string
}

func NewRosettaHall(renderer fetch.Renderer) *RosettaHall {
	return &RosettaHall{renderer: renderer, url: rosettaHallURL}
}

func (s *RosettaHall) Venue() string { return "Rosetta Hall" }

func (s *RosettaHall) Scrape(ctx context.Context) ([]*event.Event, error) {
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

func (s *RosettaHall) parse(doc *goquery.Document) []*event.Event {
	today := event.Today()

	var events []*event.Event
	doc.Find("h2.elementor-heading-title").Each(func(_ int, title *goquery.Selection) {
		e, eventDay := s.parseEvent(title)
		if e == nil {
			return
		}

		e.Venue = s.Venue()
		e.Location = "Boulder"
		e.Category = "Music"
		e.SourceURL = s.url
		e.Link = s.url
		e.Image = "rosettahall.jpg"
		e.AgeRestriction = "21+"
		e.EventTypeTags = []string{"Music", "Nightlife", "Dance", "DJ"}
		e.VenueTypeTags = []string{"Music", "Nightlife", "Dance", "DJ", "21+"}

		if eventDay.IsZero() || eventDay.Before(today) {
			return
		}
		events = append(events, e)
	})

	return events
}

func (s *RosettaHall) parseEvent(title *goquery.Selection) (*event.Event, time.Time) {
	titleText := collapsedText(title)
	if len(titleText) < 2 {
		return nil, time.Time{}
	}

	container := title.ParentsFiltered("div.elementor-widget-heading").First()
	if container.Length() == 0 {
		return nil, time.Time{}
	}

	// Genre and date live in the first two text widgets among the heading's
	// next few sibling divs.
	var widgets []*goquery.Selection
	divs := container.NextAll().Filter("div")
	for i := 0; i < divs.Length() && i < 5; i++ {
		div := divs.Eq(i)
		if div.HasClass("elementor-widget-text-editor") {
			widgets = append(widgets, div)
			if len(widgets) == 2 {
				break
			}
		}
	}

	e := &event.Event{Title: titleText}

	if len(widgets) > 0 {
		if p := widgets[0].Find("p").First(); p.Length() > 0 {
			e.Description = collapsedText(p)
		}
	}

	var day time.Time
	if len(widgets) > 1 {
		if p := widgets[1].Find("p").First(); p.Length() > 0 {
			e.Date, e.Time, day = parseRosettaDate(collapsedText(p))
		}
	}

	return e, day
}

// parseRosettaDate reads lines like "thursday december 11th, 10 pm" into a
// dated event, filling the year with roll-forward so December shows listed in
// January land in the right year.
func parseRosettaDate(text string) (date, clock string, day time.Time) {
	m := rosettaDateTimeRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", time.Time{}
	}

	meridiem := strings.ToUpper(m[5])
	if strings.Contains(m[4], ":") {
		clock = m[4] + " " + meridiem
	} else {
		clock = m[4] + ":00 " + meridiem
	}

	month := capitalizeWord(m[2])
	year := event.Today().Year()

	parsed, err := time.Parse("January 2, 2006", fmt.Sprintf("%s %s, %d", month, m[3], year))
	if err != nil {
		return fmt.Sprintf("%s %s", month, m[3]), clock, time.Time{}
	}
	if parsed.Before(event.Today()) {
		year++
		parsed, err = time.Parse("January 2, 2006", fmt.Sprintf("%s %s, %d", month, m[3], year))
		if err != nil {
			return fmt.Sprintf("%s %s", month, m[3]), clock, time.Time{}
		}
	}

	return fmt.Sprintf("%s %s, %d", month, m[3], year), clock, parsed
}

func capitalizeWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
