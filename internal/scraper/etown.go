package scraper

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/fetch"
	"github.com/afranz/boulder-events/internal/logger"
)

const (
	etownBaseURL  = "https://www.etown.org/etown-hall/all-events/"
	etownMaxPages = 5
)

// ETown scrapes the paginated eTown Hall events listing.
type ETown struct {
	client  *fetch.Client
	baseURL string
}

func NewETown(client *fetch.Client) *ETown {
	return &ETown{client: client, baseURL: etownBaseURL}
}

func (s *ETown) Venue() string { return "eTown Hall" }

func (s *ETown) Scrape(ctx context.Context) ([]*event.Event, error) {
	var all []*event.Event

	for page := 1; page <= etownMaxPages; page++ {
		events, err := s.scrapePage(ctx, page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			logger.Warn("Stopping pagination early", logger.Fields{
				"venue": s.Venue(),
				"page":  page,
				"error": err.Error(),
			})
			break
		}
		if len(events) == 0 {
			break
		}
		all = append(all, events...)
	}

	return all, nil
}

func (s *ETown) scrapePage(ctx context.Context, page int) ([]*event.Event, error) {
	url := s.baseURL
	if page > 1 {
		url = fmt.Sprintf("%s?pno=%d", s.baseURL, page)
	}

	body, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing events page %d: %w", page, err)
	}

	var events []*event.Event
	doc.Find("div.event-wrapper").Each(func(_ int, item *goquery.Selection) {
		if e := parseETownEvent(item); e != nil {
			events = append(events, e)
		}
	})

	return events, nil
}

func parseETownEvent(item *goquery.Selection) *event.Event {
	var image string
	if img := item.Find("div.event-image").First().Find("img").First(); img.Length() > 0 {
		image, _ = img.Attr("src")
	}

	data := item.Find("div.event-data").First()
	if data.Length() == 0 {
		return nil
	}

	heading := data.Find("h2").First()
	if heading.Length() == 0 {
		return nil
	}
	titleLink := heading.Find("a").First()
	if titleLink.Length() == 0 {
		return nil
	}
	title := collapsedText(titleLink)
	href, _ := titleLink.Attr("href")

	var dateStr, timeStr, venueName string
	var categories []string

	data.Find("div.event-data-block").Each(func(_ int, block *goquery.Selection) {
		text := collapsedText(block)
		lower := strings.ToLower(text)

		switch {
		// "February 14, 2026 - 7:00 pm - 9:30 pm"
		case strings.Contains(text, " - ") && (strings.Contains(lower, "am") || strings.Contains(lower, "pm")):
			parts := strings.Split(text, " - ")
			dateStr = strings.TrimSpace(parts[0])
			if len(parts) == 3 {
				timeStr = strings.TrimSpace(parts[1]) + " - " + strings.TrimSpace(parts[2])
			} else {
				timeStr = strings.TrimSpace(parts[1])
			}
		// The venue line is set in all caps, typically "eTOWN HALL".
		case text == strings.ToUpper(text) && len(text) > 3:
			venueName = text
		case block.Find("ul.event-categories").Length() > 0:
			block.Find("a").Each(func(_ int, link *goquery.Selection) {
				categories = append(categories, collapsedText(link))
			})
		}
	})

	if venueName == "" {
		venueName = "eTown Hall"
	}

	var normalized string
	if dateStr != "" {
		if t, err := time.Parse("January 2, 2006", dateStr); err == nil {
			normalized = t.Format("2006-01-02")
		} else if t, err := time.Parse("Jan 2, 2006", dateStr); err == nil {
			normalized = t.Format("2006-01-02")
		} else {
			logger.Debug("Unparseable date", logger.Fields{"venue": "eTown Hall", "date": dateStr})
		}
	}

	return &event.Event{
		Title:          title,
		Venue:          venueName,
		Location:       "Boulder",
		Date:           dateStr,
		NormalizedDate: normalized,
		Time:           timeStr,
		Image:          image,
		URL:            href,
		Categories:     event.StringList(categories),
		Tags:           []string{"music", "live music", "concert"},
	}
}
