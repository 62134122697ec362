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

const (
	bricksURL  = "https://www.bricksretail.com/events-calendar"
	bricksBase = "https://www.bricksretail.com"
)

var (
	// "Jan 30, 2026, 6:00 PM – 9:00 PM" with an optional end time. Wix mixes
	// en dashes, em dashes, and plain hyphens between the two times.
	bricksDateRe = regexp.MustCompile(`(?i)([A-Za-z]+)\s+(\d{1,2}),\s+(\d{4}),\s+(\d{1,2}:\d{2}\s+[AP]M)(?:\s*[–—-]\s*(\d{1,2}:\d{2}\s+[AP]M))?`)

	bricksStyleURLRe = regexp.MustCompile(`url\(["']?([^"']+)["']?\)`)
	bricksDescHookRe = regexp.MustCompile(`(?i)description|excerpt`)
	bricksEventLiRe  = regexp.MustCompile(`(?i)event`)
)

// Bricks scrapes the Bricks on Main events calendar, a Wix events widget
// addressed through data-hook attributes.
type Bricks struct {
	renderer fetch.Renderer
	url      string
}

func NewBricks(renderer fetch.Renderer) *Bricks {
	return &Bricks{renderer: renderer, url: bricksURL}
}

func (s *Bricks) Venue() string { return "Bricks on Main" }

func (s *Bricks) Scrape(ctx context.Context) ([]*event.Event, error) {
	html, err := s.renderer.Render(ctx, s.url, fetch.RenderOptions{
		Settle:      5 * time.Second,
		Scrolls:     3,
		ScrollPause: 1500 * time.Millisecond,
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

func (s *Bricks) parse(doc *goquery.Document) []*event.Event {
	items := doc.Find("[data-hook='ev-list-item']")
	if items.Length() == 0 {
		items = doc.Find("li").FilterFunction(func(_ int, sel *goquery.Selection) bool {
			class, _ := sel.Attr("class")
			return bricksEventLiRe.MatchString(class)
		})
	}

	today := event.Today()

	var events []*event.Event
	items.Each(func(_ int, sel *goquery.Selection) {
		e, eventDay := s.parseEvent(sel)
		if e == nil {
			return
		}

		e.Venue = s.Venue()
		e.Location = "Longmont"
		e.Category = "Community"
		e.SourceURL = s.url
		e.EventTypeTags = []string{"Community", "Entertainment"}
		e.VenueTypeTags = []string{"Community", "Retail", "Entertainment"}
		if e.Image == "" {
			e.Image = "bricks.jpg"
		}

		if eventDay.IsZero() || eventDay.Before(today) {
			return
		}
		events = append(events, e)
	})

	return events
}

func (s *Bricks) parseEvent(sel *goquery.Selection) (*event.Event, time.Time) {
	title := collapsedText(sel.Find("[data-hook='ev-list-item-title']").First())
	if title == "" || len(title) >= 200 {
		return nil, time.Time{}
	}

	e := &event.Event{Title: title}

	var day time.Time
	if dateSel := sel.Find("[data-hook='date']").First(); dateSel.Length() > 0 {
		e.Date, e.Time, day = parseBricksDate(collapsedText(dateSel))
	}

	if href, ok := sel.Find("[data-hook='ev-rsvp-button']").First().Attr("href"); ok && href != "" {
		e.Link = absURL(bricksBase, href)
	}

	if bg := sel.Find("[data-hook='image-background']").First(); bg.Length() > 0 {
		if style, ok := bg.Attr("style"); ok && strings.Contains(style, "background-image") {
			if m := bricksStyleURLRe.FindStringSubmatch(style); m != nil {
				e.Image = m[1]
			}
		}
		if src, ok := bg.Find("img").First().Attr("src"); ok && src != "" {
			e.Image = src
		}
	}

	desc := sel.Find("[data-hook]").FilterFunction(func(_ int, d *goquery.Selection) bool {
		hook, _ := d.Attr("data-hook")
		return bricksDescHookRe.MatchString(hook)
	}).First()
	if desc.Length() == 0 {
		desc = sel.Find("p").First()
	}
	if desc.Length() > 0 {
		e.Description = truncate(collapsedText(desc), 300)
	}

	return e, day
}

// parseBricksDate reads "Jan 30, 2026, 6:00 PM – 9:00 PM" style stamps. The
// year is printed on the page, so no roll-forward guessing is needed.
func parseBricksDate(text string) (date, clock string, day time.Time) {
	m := bricksDateRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", "", time.Time{}
	}

	month := m[1]
	if full, ok := fullMonths[month]; ok {
		month = full
	}

	dateStr := fmt.Sprintf("%s %s, %s", month, m[2], m[3])
	parsed, err := time.Parse("January 2, 2006", dateStr)
	if err != nil {
		return "", "", time.Time{}
	}

	if m[5] != "" {
		clock = m[4] + " - " + m[5]
	} else {
		clock = m[4]
	}

	return dateStr, clock, parsed
}
