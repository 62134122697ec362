package scraper

import (
	"context"
	"testing"
	"time"
)

const rosettaFixture = `
<html><body>
	<section>
		<div class="elementor-widget-heading"><h2 class="elementor-heading-title">DJ Kaycee</h2></div>
		<div class="elementor-widget-text-editor"><p>House and disco all night</p></div>
		<div class="elementor-widget-text-editor"><p>thursday december 11th, 10 pm</p></div>
		<div class="elementor-widget-heading"><h2 class="elementor-heading-title">Salsa Social</h2></div>
		<div class="elementor-widget-spacer"></div>
	</section>
</body></html>`

func TestRosettaHallScrape(t *testing.T) {
	freezeClock(t, time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC))

	s := NewRosettaHall(&stubRenderer{html: rosettaFixture})
	events, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape() error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Scrape() returned %d events, want 1 (heading without a date widget dropped)", len(events))
	}

	e := events[0]
	if e.Title != "DJ Kaycee" {
		t.Errorf("title = %q", e.Title)
	}
	if e.Description != "House and disco all night" {
		t.Errorf("description = %q", e.Description)
	}
	if e.Date != "December 11, 2025" {
		t.Errorf("date = %q, want December 11, 2025", e.Date)
	}
	if e.Time != "10:00 PM" {
		t.Errorf("time = %q, want 10:00 PM", e.Time)
	}
	if e.Venue != "Rosetta Hall" || e.AgeRestriction != "21+" {
		t.Errorf("venue/age = %q/%q", e.Venue, e.AgeRestriction)
	}
	if e.Image != "rosettahall.jpg" {
		t.Errorf("image = %q", e.Image)
	}
}

func TestParseRosettaDate(t *testing.T) {
	freezeClock(t, time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name      string
		text      string
		wantDate  string
		wantClock string
		wantZero  bool
	}{
		{
			name:      "bare hour",
			text:      "thursday december 11th, 10 pm",
			wantDate:  "December 11, 2025",
			wantClock: "10:00 PM",
		},
		{
			name:      "hour with minutes",
			text:      "friday november 21, 9:30 pm",
			wantDate:  "November 21, 2025",
			wantClock: "9:30 PM",
		},
		{
			name:      "passed date rolls forward",
			text:      "saturday june 7th, 8 pm",
			wantDate:  "June 7, 2026",
			wantClock: "8:00 PM",
		},
		{
			name:     "no match",
			text:     "live music most nights",
			wantZero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, clock, day := parseRosettaDate(tt.text)
			if tt.wantZero {
				if date != "" || clock != "" || !day.IsZero() {
					t.Fatalf("parseRosettaDate(%q) = %q/%q/%v, want empty", tt.text, date, clock, day)
				}
				return
			}
			if date != tt.wantDate {
				t.Errorf("date = %q, want %q", date, tt.wantDate)
			}
			if clock != tt.wantClock {
				t.Errorf("clock = %q, want %q", clock, tt.wantClock)
			}
			if day.IsZero() {
				t.Error("day should be set for parsed dates")
			}
		})
	}
}
