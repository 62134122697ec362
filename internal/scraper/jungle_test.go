package scraper

import (
	"context"
	"testing"
)

func TestJungleScrape(t *testing.T) {
	events, err := NewJungle().Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape() error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Scrape() returned %d events, want 1", len(events))
	}

	e := events[0]
	if e.Title != "Live Jazz" || e.Recurring != "Every Wednesday" {
		t.Errorf("event = %q / %q", e.Title, e.Recurring)
	}
	if e.Time != "7:00 PM - 9:00 PM" {
		t.Errorf("time = %q", e.Time)
	}
	if e.Venue != "Jungle" || e.AgeRestriction != "21+" {
		t.Errorf("venue/age = %q/%q", e.Venue, e.AgeRestriction)
	}
	if e.ID() != "jungle_live_jazz_every_wednesday_7_00_pm_9_00_pm" {
		t.Errorf("id = %q", e.ID())
	}
}
