package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/fetch"
)

const (
	stJulienURL  = "https://stjulien.com/boulder-colorado-events/category/entertainment-events/"
	stJulienBase = "https://stjulien.com"
)

// The hotel's calendar is a Tribe Events widget rendered client-side.
var stJulienSelectors = []string{
	"article.tribe-events-calendar-list__event",
	"div.tribe-events-calendar-list__event",
	"article[class*='tribe-event']",
	"div[class*='event-item']",
	".type-tribe_events",
}

// StJulien scrapes the St Julien Hotel & Spa entertainment calendar.
type StJulien struct {
	renderer fetch.Renderer
	url      string
}

func NewStJulien(renderer fetch.Renderer) *StJulien {
	return &StJulien{renderer: renderer, url: stJulienURL}
}

func (s *StJulien) Venue() string { return "St Julien Hotel & Spa" }

func (s *StJulien) Scrape(ctx context.Context) ([]*event.Event, error) {
	html, err := s.renderer.Render(ctx, s.url, fetch.RenderOptions{
		Settle: 5 * time.Second,
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

func (s *StJulien) parse(doc *goquery.Document) []*event.Event {
	items := findEvents(doc, stJulienSelectors...)
	if items == nil {
		items = doc.Find("article").FilterFunction(func(_ int, sel *goquery.Selection) bool {
			class, _ := sel.Attr("class")
			return strings.Contains(strings.ToLower(class), "event")
		})
	}

	var events []*event.Event
	items.Each(func(_ int, sel *goquery.Selection) {
		e := s.parseEvent(sel)
		if e == nil {
			return
		}
		e.Venue = s.Venue()
		e.Category = "Entertainment"
		e.SourceURL = s.url
		events = append(events, e)
	})

	return events
}

func (s *StJulien) parseEvent(sel *goquery.Selection) *event.Event {
	title := findByClass(sel, "h1, h2, h3, h4", titleClassRe)
	if title.Length() == 0 {
		title = findByClass(sel, "a", linkTitleClassRe)
	}
	if title.Length() == 0 {
		title = sel.Find("h1, h2, h3, h4, h5").First()
	}
	if title.Length() == 0 || collapsedText(title) == "" {
		return nil
	}

	e := &event.Event{Title: collapsedText(title)}

	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		e.Link = absURL(stJulienBase, href)
	}

	dateSel := findByClass(sel, "*", dateClassRe)
	if dateSel.Length() > 0 {
		e.Date = collapsedText(dateSel)
	}

	// A dedicated time element may exist apart from the combined date block.
	timeSel := findByClass(sel, "*", timeClassRe)
	if timeSel.Length() > 0 && (dateSel.Length() == 0 || timeSel.Nodes[0] != dateSel.Nodes[0]) {
		e.Time = collapsedText(timeSel)
	}

	if desc := findByClass(sel, "p, div", descClassRe); desc.Length() > 0 {
		e.Description = collapsedText(desc)
	} else if p := sel.Find("p").First(); p.Length() > 0 {
		e.Description = collapsedText(p)
	}

	return e
}
