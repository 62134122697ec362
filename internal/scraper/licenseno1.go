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
	licenseNo1URL  = "https://www.license1boulderado.com/events-1"
	licenseNo1Base = "https://www.license1boulderado.com"
)

var licenseNo1Selectors = []string{
	"article.eventlist-event",
	"div.eventlist-event",
	"li.eventlist-event",
	"div.summary-item",
	"article.summary-item",
	"div[class*='event']",
}

var licenseNo1BroadRe = regexp.MustCompile(`(?i)event|summary`)

// LicenseNo1 scrapes the License No 1 speakeasy events page.
type LicenseNo1 struct {
	renderer fetch.Renderer
	url      string
}

func NewLicenseNo1(renderer fetch.Renderer) *LicenseNo1 {
	return &LicenseNo1{renderer: renderer, url: licenseNo1URL}
}

func (s *LicenseNo1) Venue() string { return "License No 1" }

func (s *LicenseNo1) Scrape(ctx context.Context) ([]*event.Event, error) {
	html, err := s.renderer.Render(ctx, s.url, fetch.RenderOptions{
		Settle: 3 * time.Second,
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

func (s *LicenseNo1) parse(doc *goquery.Document) []*event.Event {
	items := findEvents(doc, licenseNo1Selectors...)
	if items == nil {
		items = doc.Find("article, div, li").FilterFunction(func(_ int, sel *goquery.Selection) bool {
			class, _ := sel.Attr("class")
			return licenseNo1BroadRe.MatchString(class)
		})
	}

	var events []*event.Event
	items.Each(func(_ int, sel *goquery.Selection) {
		e := s.parseEvent(sel)
		if e.Title == "" {
			return
		}
		e.Venue = s.Venue()
		e.Category = "Nightlife"
		e.SourceURL = s.url
		events = append(events, e)
	})

	return events
}

func (s *LicenseNo1) parseEvent(sel *goquery.Selection) *event.Event {
	e := &event.Event{}

	title := findByClass(sel, "h1, h2, h3, h4", titleClassRe)
	if title.Length() == 0 {
		title = findByClass(sel, "a", linkTitleClassRe)
	}
	if title.Length() == 0 {
		title = sel.Find("h1, h2, h3, h4").First()
	}
	if title.Length() > 0 {
		e.Title = collapsedText(title)
	}

	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		e.Link = absURL(licenseNo1Base, href)
	}

	dateSel := findByClass(sel, "*", dateClassRe)
	if dateSel.Length() > 0 {
		e.Date = collapsedText(dateSel)
	}

	timeSel := findByClass(sel, "*", timeClassRe)
	if timeSel.Length() > 0 && (dateSel.Length() == 0 || timeSel.Nodes[0] != dateSel.Nodes[0]) {
		e.Time = collapsedText(timeSel)
	}

	if desc := findByClass(sel, "p, div", descClassRe); desc.Length() > 0 {
		e.Description = collapsedText(desc)
	}

	// Squarespace lazy-loads gallery images behind data-src.
	img := sel.Find("img").First()
	if src, ok := img.Attr("src"); ok && src != "" {
		e.Image = src
	} else if src, ok := img.Attr("data-src"); ok && src != "" {
		e.Image = src
	}

	return e
}
