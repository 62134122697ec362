package scraper

import (
	"context"

	"github.com/afranz/boulder-events/internal/event"
)

// Jungle emits the rum bar's standing weekly jazz night. The bar has no
// events page to scrape.
type Jungle struct{}

func NewJungle() *Jungle {
	return &Jungle{}
}

func (s *Jungle) Venue() string { return "Jungle" }

func (s *Jungle) Scrape(ctx context.Context) ([]*event.Event, error) {
	return []*event.Event{
		{
			Title:          "Live Jazz",
			Venue:          "Jungle",
			Location:       "Boulder",
			Recurring:      "Every Wednesday",
			Time:           "7:00 PM - 9:00 PM",
			Description:    "Live Jazz with Max Moore, Zach Ritchie, and William George Kuepper V",
			Link:           "https://junglerumbar.com/",
			SourceURL:      "https://junglerumbar.com/",
			Image:          "jungle.jpg",
			Category:       "Music",
			AgeRestriction: "21+",
			EventTypeTags:  []string{"Live Music", "Jazz"},
			VenueTypeTags:  []string{"Music", "Live Music", "Bar", "Nightlife"},
		},
	}, nil
}
