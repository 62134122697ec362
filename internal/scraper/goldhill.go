package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/fetch"
)

const goldHillURL = "https://www.goldhillinn.com/music/"

// "Sunday, December 14, 2025 | 07:30 pm"
var goldHillDateRe = regexp.MustCompile(`(?i)(\w+day),\s+(\w+)\s+(\d{1,2}),\s+(\d{4})\s*\|\s*(\d{1,2}):(\d{2})\s*(am|pm)`)

// GoldHill scrapes the Gold Hill Inn music schedule.
type GoldHill struct {
	renderer fetch.Renderer
	url      string
}

func NewGoldHill(renderer fetch.Renderer) *GoldHill {
	return &GoldHill{renderer: renderer, url: goldHillURL}
}

func (s *GoldHill) Venue() string { return "Gold Hill Inn" }

func (s *GoldHill) Scrape(ctx context.Context) ([]*event.Event, error) {
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

func (s *GoldHill) parse(doc *goquery.Document) []*event.Event {
	today := event.Today()

	var events []*event.Event
	doc.Find("div.showcontainer").Each(func(_ int, container *goquery.Selection) {
		e, eventDay := s.parseEvent(container)
		if e == nil || e.Title == "" {
			return
		}

		e.Venue = s.Venue()
		e.Location = "Gold Hill"
		e.Category = "Music"
		e.SourceURL = s.url
		e.Link = s.url
		e.Image = "goldhillinn.jpg"
		e.AgeRestriction = "21+"
		e.EventTypeTags = []string{"Live Music"}
		e.VenueTypeTags = []string{"Live Music", "Restaurant", "Historic"}

		if eventDay.IsZero() || eventDay.Before(today) {
			return
		}
		events = append(events, e)
	})

	return events
}

func (s *GoldHill) parseEvent(container *goquery.Selection) (*event.Event, time.Time) {
	ul := container.Find("ul").First()
	if ul.Length() == 0 {
		return nil, time.Time{}
	}

	e := &event.Event{}
	var day time.Time

	if showdate := ul.Find("li.showdate").First(); showdate.Length() > 0 {
		e.Date, e.Time, day = parseGoldHillDate(collapsedText(showdate))
	}

	if artist := ul.Find("li.artistname").First(); artist.Length() > 0 {
		e.Title = collapsedText(artist)
	}

	// The genre rides in its own list item, wrapped in parentheses.
	ul.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		text := collapsedText(li)
		if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
			e.Genre = strings.Trim(text, "()")
			return false
		}
		return true
	})

	if p := container.Find("p").First(); p.Length() > 0 {
		e.Description = truncate(collapsedText(p), 300)
	}

	if e.Genre != "" {
		if e.Description != "" {
			e.Description = e.Genre + " - " + e.Description
		} else {
			e.Description = e.Genre
		}
	}

	return e, day
}

// parseGoldHillDate splits the inn's "Weekday, Month Day, Year | HH:MM pm"
// lines. The hour's leading zero is dropped for display.
func parseGoldHillDate(text string) (date, clock string, day time.Time) {
	m := goldHillDateRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", time.Time{}
	}

	hour, _ := strconv.Atoi(m[5])
	clock = fmt.Sprintf("%d:%s %s", hour, m[6], strings.ToUpper(m[7]))

	dateStr := fmt.Sprintf("%s %s, %s", m[2], m[3], m[4])
	parsed, err := time.Parse("January 2, 2006", dateStr)
	if err != nil {
		return "", clock, time.Time{}
	}

	return dateStr, clock, parsed
}
