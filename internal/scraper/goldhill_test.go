package scraper

import (
	"context"
	"testing"
	"time"
)

const goldHillFixture = `
<html><body>
	<div class="showcontainer">
		<ul>
			<li class="showdate">Sunday, December 14, 2025 | 07:30 pm</li>
			<li class="artistname">High Lonesome Pine</li>
			<li>(Bluegrass)</li>
		</ul>
		<p>Dinner show with two sets by the fireplace.</p>
	</div>
	<div class="showcontainer">
		<ul>
			<li class="showdate">Saturday, March 1, 2025 | 08:00 pm</li>
			<li class="artistname">Last Winter's Band</li>
		</ul>
	</div>
</body></html>`

func TestGoldHillScrape(t *testing.T) {
	freezeClock(t, time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC))

	s := NewGoldHill(&stubRenderer{html: goldHillFixture})
	events, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape() error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Scrape() returned %d events, want 1 (the March show already happened)", len(events))
	}

	e := events[0]
	if e.Title != "High Lonesome Pine" {
		t.Errorf("title = %q", e.Title)
	}
	if e.Date != "December 14, 2025" {
		t.Errorf("date = %q", e.Date)
	}
	if e.Time != "7:30 PM" {
		t.Errorf("time = %q, want 7:30 PM without the leading zero", e.Time)
	}
	if e.Genre != "Bluegrass" {
		t.Errorf("genre = %q", e.Genre)
	}
	if e.Description != "Bluegrass - Dinner show with two sets by the fireplace." {
		t.Errorf("description = %q", e.Description)
	}
	if e.Venue != "Gold Hill Inn" || e.Location != "Gold Hill" {
		t.Errorf("venue/location = %q/%q", e.Venue, e.Location)
	}
}

func TestParseGoldHillDate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantDate  string
		wantClock string
	}{
		{
			name:      "leading zero hour",
			text:      "Sunday, December 14, 2025 | 07:30 pm",
			wantDate:  "December 14, 2025",
			wantClock: "7:30 PM",
		},
		{
			name:      "plain hour",
			text:      "Friday, January 9, 2026 | 9:00 pm",
			wantDate:  "January 9, 2026",
			wantClock: "9:00 PM",
		},
		{
			name: "unmatched line",
			text: "Doors at sundown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, clock, day := parseGoldHillDate(tt.text)
			if date != tt.wantDate {
				t.Errorf("date = %q, want %q", date, tt.wantDate)
			}
			if clock != tt.wantClock {
				t.Errorf("clock = %q, want %q", clock, tt.wantClock)
			}
			if (tt.wantDate == "") != day.IsZero() {
				t.Errorf("day = %v, zero expectation mismatch", day)
			}
		})
	}
}

func TestGoldHillParse_GenreOnlyDescription(t *testing.T) {
	freezeClock(t, time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC))

	doc := docFromHTML(t, `
		<html><body>
			<div class="showcontainer">
				<ul>
					<li class="showdate">Friday, December 19, 2025 | 08:00 pm</li>
					<li class="artistname">The Sweet Lillies</li>
					<li>(Americana)</li>
				</ul>
			</div>
		</body></html>`)

	s := NewGoldHill(nil)
	events := s.parse(doc)
	if len(events) != 1 {
		t.Fatalf("parse() returned %d events, want 1", len(events))
	}
	if events[0].Description != "Americana" {
		t.Errorf("description = %q, want the genre alone", events[0].Description)
	}
}
