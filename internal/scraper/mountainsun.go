package scraper

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/fetch"
	"github.com/afranz/boulder-events/internal/logger"
)

const (
	mountainSunURL  = "https://www.mountainsunpub.com/events/"
	mountainSunBase = "https://www.mountainsunpub.com"
)

var mountainSunSelectors = []string{
	"div.event-item",
	"div.event",
	"article.event",
	"div[class*='event']",
}

// mountainSunVenues maps text mentions to the four sister pubs. Checked in
// order; first match wins.
var mountainSunVenues = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Mountain Sun Pub", regexp.MustCompile(`(?i)Mountain Sun`)},
	{"Southern Sun Pub", regexp.MustCompile(`(?i)Southern Sun`)},
	{"Vine Street Pub", regexp.MustCompile(`(?i)Vine Street`)},
	{"Longs Peak Pub", regexp.MustCompile(`(?i)Longs? Peak`)},
}

var (
	mountainSunRecurringPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Every (Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)`),
		regexp.MustCompile(`(?i)(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday) Nights?`),
	}

	mountainSunDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:st|nd|rd|th)?`),
		regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:st|nd|rd|th)?`),
	}

	mountainSunTimePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:AM|PM)`),
		regexp.MustCompile(`(?i)\d{1,2}\s*(?:AM|PM)\s*-\s*\d{1,2}:\d{2}\s*(?:AM|PM)`),
		regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*-\s*\d{1,2}:\d{2}\s*(?:AM|PM)`),
		regexp.MustCompile(`(?i)from\s+\d{1,2}:\d{2}\s*-\s*\d{1,2}:\d{2}\s*(?:AM|PM)`),
		regexp.MustCompile(`(?i)\d{1,2}(?:am|pm)-\d{1,2}(?:am|pm)`),
	}
)

// MountainSun scrapes the shared events page of the Mountain Sun family of
// pubs. Events are attributed to whichever sister pub the listing mentions.
type MountainSun struct {
	client *fetch.Client
	url    string
}

func NewMountainSun(client *fetch.Client) *MountainSun {
	return &MountainSun{client: client, url: mountainSunURL}
}

func (s *MountainSun) Venue() string { return "Mountain Sun Pubs" }

func (s *MountainSun) Scrape(ctx context.Context) ([]*event.Event, error) {
	body, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing events page: %w", err)
	}

	events := s.parse(doc)
	if len(events) == 0 {
		logger.Info("No events extracted, using curated pub schedule", logger.Fields{
			"venue": s.Venue(),
		})
		events = curatedMountainSunEvents()
	}

	return events, nil
}

func (s *MountainSun) parse(doc *goquery.Document) []*event.Event {
	var items []*goquery.Selection
	if found := findEvents(doc, mountainSunSelectors...); found != nil {
		found.Each(func(_ int, sel *goquery.Selection) {
			items = append(items, sel)
		})
	} else {
		doc.Find("h2, h3, h4, h5").Each(func(_ int, h *goquery.Selection) {
			parent := h.ParentsFiltered("div, section, article").First()
			if parent.Length() > 0 {
				items = append(items, parent)
			}
		})
	}

	var events []*event.Event
	for _, sel := range items {
		e := s.parseEvent(sel)
		if e.Title == "" {
			continue
		}
		e.SourceURL = s.url
		events = append(events, e)
	}

	return events
}

func (s *MountainSun) parseEvent(sel *goquery.Selection) *event.Event {
	e := &event.Event{}
	text := collapsedText(sel)

	if title := sel.Find("h1, h2, h3, h4, h5").First(); title.Length() > 0 {
		e.Title = collapsedText(title)
	}

	e.Venue = "Mountain Sun Pub"
	for _, v := range mountainSunVenues {
		if v.re.MatchString(text) {
			e.Venue = v.name
			break
		}
	}

	e.Category = "Music & Pub Events"

	for _, re := range mountainSunRecurringPatterns {
		if m := re.FindString(text); m != "" {
			e.Recurring = m
			break
		}
	}

	for _, re := range mountainSunDatePatterns {
		if m := re.FindString(text); m != "" {
			e.Date = m
			break
		}
	}

	for _, re := range mountainSunTimePatterns {
		if m := re.FindString(text); m != "" {
			e.Time = m
			break
		}
	}

	if desc := sel.Find("p").First(); desc.Length() > 0 {
		e.Description = collapsedText(desc)
	}

	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		e.Link = absURL(mountainSunBase, href)
	}

	return e
}

// curatedMountainSunEvents is the pubs' standing weekly schedule plus the
// Friday music series. The events page is frequently served without markup
// the parser can work with, so this hand-maintained set keeps the feed
// populated.
func curatedMountainSunEvents() []*event.Event {
	events := []*event.Event{
		{
			Title:       "The BLUEGRASS PICK",
			Recurring:   "Every Thursday",
			Time:        "7:30 - 9:30 pm",
			Venue:       "Southern Sun Pub",
			Description: "Hosted by Max Kabat of Bowregard. Never a cover, always a good time!",
		},
		{
			Title:       "Vinyl Night",
			Recurring:   "Every Monday",
			Time:        "5-9 pm",
			Venue:       "Vine Street Pub",
			Description: "Join us for an intentional listening experience. Share your favorite tunes and discover new music while enjoying house-made beer and snacks. Bring in a record from your collection and in exchange, we will play it for the pub and give you a free beer.",
		},
		{
			Title:       "Game Night",
			Recurring:   "Monday Nights",
			Time:        "5pm-10pm",
			Venue:       "Longs Peak Pub",
			Description: "Free Fries and Happy Hour prices for all game tables!",
		},
		{
			Title:       "Music Night",
			Recurring:   "Every Saturday",
			Time:        "8pm",
			Venue:       "Vine Street Pub",
			Description: "In collaboration with Stir Fry Sessions, a Denver based artist collective, we showcase local talent while offering a community space to dance and mingle.",
		},
		{
			Title:       "Free Live Music: Goodtime Funk",
			Date:        "Friday, November 7th",
			Time:        "9pm-Midnight",
			Venue:       "Mountain Sun Pub on Pearl",
			Description: "NO COVER!",
		},
		{
			Title:       "Free Live Music: Jason Brandt & the Build-Out",
			Date:        "Friday, November 14th",
			Time:        "9pm-Midnight",
			Venue:       "Mountain Sun Pub on Pearl",
			Description: "NO COVER!",
		},
		{
			Title:       "Free Live Music: Brandy Wine & The Mighty Fines",
			Date:        "Friday, November 21st",
			Time:        "9pm-Midnight",
			Venue:       "Mountain Sun Pub on Pearl",
			Description: "NO COVER!",
		},
		{
			Title:       "Free Live Music: Crick Wooder",
			Date:        "Friday, November 28th",
			Time:        "9pm-Midnight",
			Venue:       "Mountain Sun Pub on Pearl",
			Description: "NO COVER!",
		},
	}

	for _, e := range events {
		e.Category = "Music & Pub Events"
		e.SourceURL = mountainSunURL
	}

	return events
}
