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

const (
	tridentURL  = "https://www.tridentcafe.com/events"
	tridentBase = "https://www.tridentcafe.com"
)

// Squarespace event list markup.
var tridentSelectors = []string{
	"li.eventlist-event",
	"div.eventlist-event",
	"article.eventlist-event",
	".sqs-block-summary-v2 .summary-item",
	"div.summary-item",
}

var (
	tridentTitleRe = regexp.MustCompile(`(?i)eventlist-title|summary-title`)
	tridentDateRe  = regexp.MustCompile(`(?i)eventlist-datetag|eventlist-meta-date|summary-metadata-item--date`)
	tridentTimeRe  = regexp.MustCompile(`(?i)eventlist-meta-time|event-time-localized`)
	tridentDescRe  = regexp.MustCompile(`(?i)eventlist-description|summary-excerpt`)

	tridentMonthDayRe = regexp.MustCompile(`(?i)([A-Z][a-z]{2,8})\s*(\d{1,2})`)
	trident24HourRe   = regexp.MustCompile(`(\d{2}):(\d{2})$`)
	trident12HourRe   = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)`)
)


// Trident scrapes the Trident Booksellers & Cafe events page.
type Trident struct {
	renderer fetch.Renderer
	url      string
}

func NewTrident(renderer fetch.Renderer) *Trident {
	return &Trident{renderer: renderer, url: tridentURL}
}

func (s *Trident) Venue() string { return "Trident Booksellers & Cafe" }

func (s *Trident) Scrape(ctx context.Context) ([]*event.Event, error) {
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

func (s *Trident) parse(doc *goquery.Document) []*event.Event {
	items := findEvents(doc, tridentSelectors...)
	if items == nil {
		return nil
	}

	today := event.Today()

	var events []*event.Event
	items.Each(func(_ int, sel *goquery.Selection) {
		e, eventDay := s.parseEvent(sel)
		if e == nil {
			return
		}

		e.Venue = s.Venue()
		e.Location = "Boulder"
		e.Category = "Books & Literary"
		e.SourceURL = s.url
		e.Image = "trident.jpg"
		e.EventTypeTags = []string{"Live Music", "Books", "Community"}
		e.VenueTypeTags = []string{"Cafe", "Bookstore", "Music Venue"}

		// Undatable or past listings are dropped.
		if eventDay.IsZero() || eventDay.Before(today) {
			return
		}
		events = append(events, e)
	})

	return events
}

func (s *Trident) parseEvent(sel *goquery.Selection) (*event.Event, time.Time) {
	title := findByClass(sel, "*", tridentTitleRe)
	if title.Length() == 0 {
		title = sel.Find("h1, h2, h3, h4").First()
	}
	if title.Length() == 0 {
		return nil, time.Time{}
	}

	titleText := collapsedText(title)
	if titleText == "" || len(titleText) >= 200 || strings.HasPrefix(titleText, "http") {
		return nil, time.Time{}
	}

	e := &event.Event{Title: titleText}

	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		e.Link = absURL(tridentBase, href)
	}

	var eventDay time.Time
	if dateSel := findByClass(sel, "*", tridentDateRe); dateSel.Length() > 0 {
		date, clock, day := parseTridentDate(collapsedText(dateSel))
		e.Date = date
		e.Time = clock
		eventDay = day
	}

	if timeSel := findByClass(sel, "*", tridentTimeRe); timeSel.Length() > 0 && e.Time == "" {
		e.Time = collapsedText(timeSel)
	}

	desc := findByClass(sel, "*", tridentDescRe)
	if desc.Length() == 0 {
		desc = sel.Find("p").First()
	}
	if desc.Length() > 0 {
		e.Description = truncate(collapsedText(desc), 300)
	}

	return e, eventDay
}

// parseTridentDate pulls a date and start time out of Squarespace's collapsed
// date tags, which run the pieces together like "Dec142:00 PM14:00". The
// trailing 24-hour clock is preferred because the 12-hour one loses its
// spacing.
func parseTridentDate(text string) (date, clock string, day time.Time) {
	text = strings.TrimSpace(text)

	if m := tridentMonthDayRe.FindStringSubmatch(text); m != nil {
		month := m[1]
		if len(month) >= 3 {
			if full, ok := fullMonths[month[:3]]; ok {
				month = full
			}
		}

		year := event.Today().Year()
		parsed, err := time.Parse("January 2, 2006", fmt.Sprintf("%s %s, %d", month, m[2], year))
		if err != nil {
			return "", "", time.Time{}
		}
		if parsed.Before(event.Today()) {
			year++
			parsed, err = time.Parse("January 2, 2006", fmt.Sprintf("%s %s, %d", month, m[2], year))
			if err != nil {
				return "", "", time.Time{}
			}
		}

		date = fmt.Sprintf("%s %s, %d", month, m[2], year)
		day = parsed
	}

	if m := trident24HourRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		clock = event.FormatClock12(hour, minute)
	} else if m := trident12HourRe.FindStringSubmatch(text); m != nil {
		clock = fmt.Sprintf("%s:%s %s", m[1], m[2], strings.ToUpper(m[3]))
	}

	return date, clock, day
}
