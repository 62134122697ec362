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

const rootsMusicURL = "https://www.eventbrite.com/o/roots-music-project-28110994095"

var (
	rootsCardRe        = regexp.MustCompile(`discover-search-desktop-card|event-card|Card-sc`)
	rootsArticleCardRe = regexp.MustCompile(`event|card`)
)

// RootsMusic scrapes the Roots Music Project organizer page on Eventbrite.
type RootsMusic struct {
	renderer fetch.Renderer
	url      string
}

func NewRootsMusic(renderer fetch.Renderer) *RootsMusic {
	return &RootsMusic{renderer: renderer, url: rootsMusicURL}
}

func (s *RootsMusic) Venue() string { return "Roots Music Project" }

func (s *RootsMusic) Scrape(ctx context.Context) ([]*event.Event, error) {
	html, err := s.renderer.Render(ctx, s.url, fetch.RenderOptions{
		Settle:      5 * time.Second,
		Scrolls:     3,
		ScrollPause: 2 * time.Second,
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

func (s *RootsMusic) parse(doc *goquery.Document) []*event.Event {
	cards := rootsEventCards(doc)
	today := event.Today()

	var events []*event.Event
	cards.Each(func(_ int, card *goquery.Selection) {
		e, eventDay := s.parseCard(card)
		if e == nil {
			return
		}

		e.Venue = s.Venue()
		e.Location = "Boulder"
		e.Category = "Music"
		e.SourceURL = s.url
		e.EventTypeTags = []string{"Live Music"}
		e.VenueTypeTags = []string{"Live Music", "Community"}
		if e.AgeRestriction == "" {
			e.AgeRestriction = "21+"
		}
		if e.Image == "" {
			e.Image = "roots.jpg"
		}

		// Undated cards stay in: Eventbrite hides dates behind markup changes
		// often enough that dropping them would empty the file.
		if !eventDay.IsZero() && eventDay.Before(today) {
			return
		}
		events = append(events, e)
	})

	return events
}

// rootsEventCards finds event cards across the markup variants Eventbrite
// serves, falling back to the containers of /e/ event links.
func rootsEventCards(doc *goquery.Document) *goquery.Selection {
	cards := doc.Find("div").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		return rootsCardRe.MatchString(class)
	})
	if cards.Length() > 0 {
		return cards
	}

	cards = doc.Find("article").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		return rootsArticleCardRe.MatchString(class)
	})
	if cards.Length() > 0 {
		return cards
	}

	var merged *goquery.Selection
	doc.Find("a[href*='/e/']").Each(func(_ int, link *goquery.Selection) {
		parent := link.ParentsFiltered("div, article").First()
		if parent.Length() == 0 {
			return
		}
		if merged == nil {
			merged = parent
		} else {
			merged = merged.AddSelection(parent)
		}
	})
	if merged == nil {
		return doc.Find("article.event-card-none")
	}
	return merged
}

func (s *RootsMusic) parseCard(card *goquery.Selection) (*event.Event, time.Time) {
	e := &event.Event{}

	link := card.Find("a[href*='/e/']").First()
	if link.Length() > 0 {
		if href, ok := link.Attr("href"); ok && href != "" {
			switch {
			case strings.HasPrefix(href, "http"):
				e.Link = href
			case strings.HasPrefix(href, "/"):
				e.Link = "https://www.eventbrite.com" + href
			default:
				e.Link = "https://www.eventbrite.com/" + href
			}
		}

		title, _ := link.Attr("aria-label")
		if title == "" {
			title = collapsedText(link)
		}
		if len(title) < 3 {
			if heading := card.Find("h1, h2, h3, h4").First(); heading.Length() > 0 {
				title = collapsedText(heading)
			}
		}
		e.Title = title
	}

	if e.Title == "" {
		return nil, time.Time{}
	}

	if src, ok := card.Find("img").First().Attr("src"); ok && src != "" {
		lower := strings.ToLower(src)
		if !strings.Contains(lower, "default") && !strings.Contains(lower, "placeholder") {
			e.Image = src
		}
	}

	var day time.Time
	if timeElem := card.Find("time").First(); timeElem.Length() > 0 {
		if iso, ok := timeElem.Attr("datetime"); ok && iso != "" {
			e.Date, e.Time, day = parseISOStamp(iso)
		}
		if e.Date == "" {
			if text := collapsedText(timeElem); text != "" {
				e.Date = text
			}
		}
	}

	text := strings.ToLower(card.Text())
	if strings.Contains(text, "all ages") || strings.Contains(text, "family friendly") {
		e.AgeRestriction = "All Ages"
	}

	if p := card.Find("p").First(); p.Length() > 0 {
		if desc := collapsedText(p); len(desc) > 20 {
			e.Description = truncate(desc, 300)
		}
	}

	return e, day
}

// parseISOStamp converts Eventbrite's ISO timestamps ("2025-12-20T19:00:00-07:00")
// into the feed's display forms.
func parseISOStamp(iso string) (date, clock string, day time.Time) {
	var t time.Time
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err = time.Parse(layout, iso); err == nil {
			break
		}
	}
	if err != nil {
		return "", "", time.Time{}
	}

	date = t.Format("January 02, 2006")
	clock = t.Format("3:04 PM")
	day = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return date, clock, day
}
