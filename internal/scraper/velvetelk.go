package scraper

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/fetch"
)

const (
	velvetElkURL  = "https://www.velvetelklounge.com/events/"
	velvetElkBase = "https://www.velvetelklounge.com"
)

var velvetElkSelectors = []string{
	"div.event-item",
	"div.show-item",
	"li.event",
	"div[class*='event']",
	"article.event",
	"div.bento-item",
	"div[class*='show']",
}

var (
	velvetListClassRe = regexp.MustCompile(`(?i)event|show|calendar`)

	velvetDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:st|nd|rd|th)?`),
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
		regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2}`),
	}

	velvetBulletRe = regexp.MustCompile(`^[-•*]\s*`)
	velvetLineRe   = regexp.MustCompile(`(?i)^([A-Za-z]+\s+\d{1,2}(?:st|nd|rd|th)?)[,\s-]+(.+)`)
)

// VelvetElk scrapes the Velvet Elk Lounge events page.
type VelvetElk struct {
	client *fetch.Client
	url    string
}

func NewVelvetElk(client *fetch.Client) *VelvetElk {
	return &VelvetElk{client: client, url: velvetElkURL}
}

func (s *VelvetElk) Venue() string { return "Velvet Elk Lounge" }

func (s *VelvetElk) Scrape(ctx context.Context) ([]*event.Event, error) {
	body, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing events page: %w", err)
	}

	return s.parse(doc), nil
}

func (s *VelvetElk) parse(doc *goquery.Document) []*event.Event {
	items := findEvents(doc, velvetElkSelectors...)
	if items == nil {
		items = velvetElkListItems(doc)
	}
	if items == nil {
		return nil
	}

	var events []*event.Event
	items.Each(func(_ int, sel *goquery.Selection) {
		e := s.parseEvent(sel)
		if e.Title == "" {
			return
		}
		e.Venue = s.Venue()
		e.Category = "Music"
		e.SourceURL = s.url
		events = append(events, e)
	})

	return events
}

// velvetElkListItems falls back to any list-like container whose class hints
// at events when none of the usual selectors match.
func velvetElkListItems(doc *goquery.Document) *goquery.Selection {
	var items *goquery.Selection
	doc.Find("ul, ol, div").EachWithBreak(func(_ int, list *goquery.Selection) bool {
		class, _ := list.Attr("class")
		if !velvetListClassRe.MatchString(class) {
			return true
		}
		found := list.Find("li, div, article")
		if found.Length() > 0 {
			items = found
			return false
		}
		return true
	})
	return items
}

func (s *VelvetElk) parseEvent(sel *goquery.Selection) *event.Event {
	e := &event.Event{}
	text := collapsedText(sel)

	title := sel.Find("h1, h2, h3, h4, h5, strong, b").First()
	if title.Length() == 0 {
		title = sel.Find("a").First()
	}
	if title.Length() > 0 {
		e.Title = collapsedText(title)
	} else {
		e.Title = text
	}

	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		e.Link = absURL(velvetElkBase, href)
	}

	if date := findByClass(sel, "*", dateClassRe); date.Length() > 0 {
		e.Date = collapsedText(date)
	} else {
		for _, re := range velvetDatePatterns {
			if m := re.FindString(text); m != "" {
				e.Date = m
				break
			}
		}
	}

	if desc := findByClass(sel, "p, div", descClassRe); desc.Length() > 0 {
		e.Description = collapsedText(desc)
	}

	if src, ok := sel.Find("img").First().Attr("src"); ok && src != "" {
		e.Image = src
	}

	return e
}

// ParseVelvetElkText extracts events from a plain text listing of
// "Month Day, Title" lines. Used when the events page renders its schedule
// as text rather than markup.
func ParseVelvetElkText(text string) []*event.Event {
	var events []*event.Event

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 10 {
			continue
		}
		line = velvetBulletRe.ReplaceAllString(line, "")

		m := velvetLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		events = append(events, &event.Event{
			Title:     strings.TrimSpace(m[2]),
			Date:      m[1],
			Venue:     "Velvet Elk Lounge",
			Category:  "Music",
			SourceURL: velvetElkURL,
		})
	}

	return events
}
