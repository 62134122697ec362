package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/fetch"
	"github.com/afranz/boulder-events/internal/images"
	"github.com/afranz/boulder-events/internal/logger"
)

const z2URL = "https://www.z2ent.com/events"

// z2VenueInfo maps the venue names on Z2's event cards to their feed metadata.
// Aggie Theatre and 10 Mile Music Hall are scraped alongside the Boulder rooms
// but stay out of the feed until their cities are covered.
type z2VenueInfo struct {
	location string
	image    string
	include  bool
}

var z2Venues = map[string]z2VenueInfo{
	"Boulder Theater":    {location: "Boulder", image: "images/bouldertheater.jpg", include: true},
	"Fox Theatre":        {location: "Boulder", image: "images/foxtheatre.jpg", include: true},
	"Aggie Theatre":      {location: "Fort Collins", image: "images/aggietheatre.jpg", include: false},
	"10 Mile Music Hall": {location: "Frisco", image: "images/default.jpg", include: false},
}

// Z2 scrapes the shared Z2 Entertainment calendar covering Boulder Theater and
// the Fox Theatre. Cards load in pages behind a load-more button, and each
// card's artwork is downloaded so the listings page never hotlinks.
type Z2 struct {
	renderer fetch.Renderer
	images   *images.Store
	url      string
}

func NewZ2(renderer fetch.Renderer, store *images.Store) *Z2 {
	return &Z2{renderer: renderer, images: store, url: z2URL}
}

func (s *Z2) Venue() string { return "Z2 Entertainment" }

func (s *Z2) Scrape(ctx context.Context) ([]*event.Event, error) {
	html, err := s.renderer.Render(ctx, s.url, fetch.RenderOptions{
		WaitSelector: ".eventItem",
		Settle:       2 * time.Second,
		Clicks:       4,
		ClickSelectors: []string{
			"#loadMoreEvents",
			"button.eventList__showMore",
			"button[data-options='events']",
		},
		ClickPause: 3 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", s.url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing events page: %w", err)
	}

	return s.parse(ctx, doc), nil
}

func (s *Z2) parse(ctx context.Context, doc *goquery.Document) []*event.Event {
	var events []*event.Event
	seen := make(map[string]bool)

	doc.Find("div.eventItem").Each(func(_ int, card *goquery.Selection) {
		e := s.parseCard(ctx, card)
		if e == nil {
			return
		}
		id := e.Venue + "|" + e.Title + "|" + e.Date
		if seen[id] {
			return
		}
		seen[id] = true
		events = append(events, e)
	})

	return events
}

func (s *Z2) parseCard(ctx context.Context, card *goquery.Selection) *event.Event {
	venueName := collapsedText(card.Find("div.location").First())
	if venueName == "" {
		return nil
	}

	info, ok := z2Venues[venueName]
	if !ok {
		return nil
	}
	if !info.include {
		logger.Debug("Skipping excluded venue event", logger.Fields{"venue": venueName})
		return nil
	}

	titleLink := card.Find("h3.title").First().Find("a").First()
	if titleLink.Length() == 0 {
		return nil
	}
	title := collapsedText(titleLink)

	eventURL, _ := titleLink.Attr("href")
	if eventURL != "" && !strings.HasPrefix(eventURL, "http") {
		eventURL = "https://www.z2ent.com" + eventURL
	}

	dateStr, ok := z2CardDate(card)
	if !ok {
		return nil
	}

	var normalized string
	for _, layout := range []string{"January 2, 2006", "Jan 2, 2006"} {
		if parsed, err := time.Parse(layout, dateStr); err == nil {
			normalized = parsed.Format("2006-01-02")
			break
		}
	}
	if normalized == "" {
		logger.Debug("Could not parse date", logger.Fields{"venue": venueName, "date": dateStr})
		return nil
	}

	imageURL, _ := card.Find("img").First().Attr("src")
	if imageURL != "" && !strings.HasPrefix(imageURL, "http") {
		imageURL = "https://www.z2ent.com" + imageURL
	}

	image := info.image
	if imageURL != "" && imageURL != info.image {
		local, err := s.images.Download(ctx, title, imageURL)
		if err != nil {
			logger.Debug("Image download failed, using venue default", logger.Fields{
				"venue": venueName,
				"url":   imageURL,
				"error": err.Error(),
			})
		} else {
			image = local
		}
	}

	var ticketLink string
	if buttons := card.Find("div.buttons").First(); buttons.Length() > 0 {
		ticketLink, _ = buttons.Find("a.tickets").First().Attr("href")
	}

	return &event.Event{
		Title:          title,
		Venue:          venueName,
		Location:       info.location,
		Date:           dateStr,
		NormalizedDate: normalized,
		Image:          image,
		URL:            eventURL,
		TicketLink:     ticketLink,
		Tags:           []string{"music", "concert"},
	}
}

// z2CardDate reassembles the card's date from Z2's span-per-component markup.
// Single dates carry month/day/year spans; ranges split them across rangeFirst
// and rangeLast, and the range's start date stands in for the whole run.
func z2CardDate(card *goquery.Selection) (string, bool) {
	if single := card.Find("span.m-date__singleDate").First(); single.Length() > 0 {
		month := collapsedText(single.Find("span.m-date__month").First())
		day := collapsedText(single.Find("span.m-date__day").First())
		year := collapsedText(single.Find("span.m-date__year").First())
		if month == "" || day == "" || year == "" {
			return "", false
		}
		year = strings.TrimSpace(strings.ReplaceAll(year, ",", ""))
		return fmt.Sprintf("%s %s, %s", month, day, year), true
	}

	rangeFirst := card.Find("span.m-date__rangeFirst").First()
	rangeLast := card.Find("span.m-date__rangeLast").First()
	if rangeFirst.Length() == 0 || rangeLast.Length() == 0 {
		return "", false
	}

	month := collapsedText(rangeFirst.Find("span.m-date__month").First())
	day := collapsedText(rangeFirst.Find("span.m-date__day").First())
	year := collapsedText(rangeLast.Find("span.m-date__year").First())
	if month == "" || day == "" || year == "" {
		return "", false
	}
	year = strings.TrimSpace(strings.ReplaceAll(year, ",", ""))
	return fmt.Sprintf("%s %s, %s", month, day, year), true
}
