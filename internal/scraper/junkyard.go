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
	junkyardURL  = "https://junkyardsocialclub.org/events/"
	junkyardBase = "https://junkyardsocialclub.org"
)

var junkyardSelectors = []string{
	"div.event-item",
	"article.event",
	"div.tribe-events-list-event",
	"div[class*='event']",
	"article[class*='event']",
}

var (
	junkyardUploadRe   = regexp.MustCompile(`junkyardsocialclub\.org/wp-content/uploads`)
	junkyardCategoryRe = regexp.MustCompile(`(?i)categor`)

	junkyardDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}`),
		regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}`),
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	}

	junkyardTimePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:AM|PM)`),
		regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*-\s*\d{1,2}:\d{2}\s*(?:AM|PM)`),
		regexp.MustCompile(`(?i)Doors\s+\d{1,2}:\d{2}`),
	}

	junkyardAgePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)All Ages?(?:\s+are\s+Welcome)?`),
		regexp.MustCompile(`(?i)Must be age \d+\+?`),
		regexp.MustCompile(`(?i)Ages? \d+\+`),
		regexp.MustCompile(`(?i)Family Friendly`),
		regexp.MustCompile(`\d+\+`),
	}

	junkyardTextDateRe     = regexp.MustCompile(`(?i)(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday|January|February|March|April|May|June|July|August|September|October|November|December)`)
	junkyardTextTimeRe     = regexp.MustCompile(`\d{1,2}:\d{2}`)
	junkyardTextCategoryRe = regexp.MustCompile(`(?i)(Dance/Music|Community|Educational|Performance|Family Fun)`)
	junkyardTextAgeRe      = regexp.MustCompile(`(?i)(All Ages|Must be age|Family Friendly|\d+\+)`)
	junkyardTextSkipRe     = regexp.MustCompile(`^\d|^-`)
)

// Junkyard scrapes the Junkyard Social Club events page.
type Junkyard struct {
	client *fetch.Client
	url    string
}

func NewJunkyard(client *fetch.Client) *Junkyard {
	return &Junkyard{client: client, url: junkyardURL}
}

func (s *Junkyard) Venue() string { return "Junkyard Social Club" }

func (s *Junkyard) Scrape(ctx context.Context) ([]*event.Event, error) {
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

func (s *Junkyard) parse(doc *goquery.Document) []*event.Event {
	var items []*goquery.Selection
	if found := findEvents(doc, junkyardSelectors...); found != nil {
		found.Each(func(_ int, sel *goquery.Selection) {
			items = append(items, sel)
		})
	} else {
		items = junkyardImageContainers(doc)
	}

	var events []*event.Event
	for _, sel := range items {
		e := s.parseEvent(sel)
		if e.Title == "" {
			continue
		}
		e.Venue = s.Venue()
		e.SourceURL = s.url
		events = append(events, e)
	}

	return events
}

// junkyardImageContainers locates events through their poster images when the
// page has no recognizable event containers. Each uploaded image's nearest
// block ancestor holds the event details.
func junkyardImageContainers(doc *goquery.Document) []*goquery.Selection {
	var containers []*goquery.Selection
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		if !junkyardUploadRe.MatchString(src) {
			return
		}
		parent := img.ParentsFiltered("div, article, section").First()
		if parent.Length() > 0 {
			containers = append(containers, parent)
		}
	})
	return containers
}

func (s *Junkyard) parseEvent(sel *goquery.Selection) *event.Event {
	e := &event.Event{}
	text := collapsedText(sel)

	if title := sel.Find("h1, h2, h3, h4, h5").First(); title.Length() > 0 {
		e.Title = collapsedText(title)
	}

	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		e.Link = absURL(junkyardBase, href)
	}

	if cat := findByClass(sel, "*", junkyardCategoryRe); cat.Length() > 0 {
		e.Categories = event.StringList{collapsedText(cat)}
	} else {
		var categories []string
		sel.Find("li").Each(func(_ int, li *goquery.Selection) {
			if t := collapsedText(li); len(t) < 50 {
				categories = append(categories, t)
			}
		})
		if len(categories) > 0 {
			e.Categories = event.StringList{strings.Join(categories, ", ")}
		}
	}

	for _, re := range junkyardDatePatterns {
		if m := re.FindString(text); m != "" {
			e.Date = m
			break
		}
	}

	for _, re := range junkyardTimePatterns {
		if m := re.FindString(text); m != "" {
			e.Time = m
			break
		}
	}

	for _, re := range junkyardAgePatterns {
		if m := re.FindString(text); m != "" {
			e.AgeRestriction = m
			break
		}
	}

	if src, ok := sel.Find("img").First().Attr("src"); ok && src != "" {
		e.Image = src
	}

	if desc := findByClass(sel, "p, div", descClassRe); desc.Length() > 0 {
		e.Description = collapsedText(desc)
	}

	return e
}

// ParseJunkyardText extracts events from the plain text block listing the
// site serves to simpler fetchers: a title line followed by "- " detail lines
// for date, time, categories, and age restriction.
func ParseJunkyardText(text string) []*event.Event {
	var events []*event.Event
	var current *event.Event

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case len(line) > 15 && !junkyardTextSkipRe.MatchString(line):
			if current != nil && current.Title != "" {
				events = append(events, current)
			}
			current = &event.Event{
				Title:     line,
				Venue:     "Junkyard Social Club",
				SourceURL: junkyardURL,
			}
		case junkyardTextDateRe.MatchString(line):
			if current != nil {
				current.Date = strings.ReplaceAll(line, "- ", "")
			}
		case junkyardTextTimeRe.MatchString(line):
			if current != nil {
				current.Time = strings.ReplaceAll(line, "- ", "")
			}
		case junkyardTextCategoryRe.MatchString(line):
			if current != nil {
				current.Categories = event.StringList{strings.ReplaceAll(line, "- ", "")}
			}
		case junkyardTextAgeRe.MatchString(line):
			if current != nil {
				current.AgeRestriction = strings.ReplaceAll(line, "- ", "")
			}
		}
	}

	if current != nil && current.Title != "" {
		events = append(events, current)
	}

	return events
}
